package models

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// TaskStatus represents the current lifecycle state of a task.
type TaskStatus string

const (
	StatusActive    TaskStatus = "active"
	StatusBacklog   TaskStatus = "backlog"
	StatusBlocked   TaskStatus = "blocked"
	StatusSleeping  TaskStatus = "sleeping"
	StatusCompleted TaskStatus = "completed"
)

// AllStatuses returns every status in sort rank order.
func AllStatuses() []TaskStatus {
	return []TaskStatus{StatusActive, StatusBacklog, StatusBlocked, StatusSleeping, StatusCompleted}
}

// Rank returns the sort rank of the status. Unknown statuses sort last.
func (s TaskStatus) Rank() int {
	switch s {
	case StatusActive:
		return 0
	case StatusBacklog:
		return 1
	case StatusBlocked:
		return 2
	case StatusSleeping:
		return 3
	case StatusCompleted:
		return 4
	}
	return 5
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s.Rank() < 5
}

// ParseTaskStatus converts a user-supplied string into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q: must be one of active, backlog, blocked, sleeping, completed", s)
	}
	return status, nil
}

const (
	// MinPriority is the most urgent priority value.
	MinPriority = 1
	// MaxPriority is the least urgent priority value.
	MaxPriority = 9
	// DefaultPriority is assigned to new tasks unless configured otherwise.
	DefaultPriority = 5
	// DefaultCategory is assigned to new tasks unless configured otherwise.
	DefaultCategory = "quick"
)

// Task is a single work item tracked by the store.
type Task struct {
	ID        string     `json:"id"`
	Summary   string     `json:"summary"`
	Details   string     `json:"details"`
	Priority  int        `json:"priority"`
	Category  string     `json:"category"`
	CreatedAt time.Time  `json:"created_at"`
	Status    TaskStatus `json:"status"`
	BlockedBy []string   `json:"blocked_by"`
	WakeAt    *time.Time `json:"wake_at,omitempty"`
}

// Clone returns a deep copy of the task so callers never alias store state.
func (t Task) Clone() Task {
	c := t
	if t.BlockedBy != nil {
		c.BlockedBy = slices.Clone(t.BlockedBy)
	}
	if t.WakeAt != nil {
		w := *t.WakeAt
		c.WakeAt = &w
	}
	return c
}

// Less reports whether t is more urgent than o.
//
// Two active tasks are ordered by creation time alone. Any other pair is
// ordered by status rank, then priority, then creation time. The id breaks the
// remaining ties so distinct tasks never compare equal.
func (t Task) Less(o Task) bool {
	if t.Status == StatusActive && o.Status == StatusActive {
		if !t.CreatedAt.Equal(o.CreatedAt) {
			return t.CreatedAt.Before(o.CreatedAt)
		}
		return t.ID < o.ID
	}
	if tr, or := t.Status.Rank(), o.Status.Rank(); tr != or {
		return tr < or
	}
	if t.Priority != o.Priority {
		return t.Priority < o.Priority
	}
	if !t.CreatedAt.Equal(o.CreatedAt) {
		return t.CreatedAt.Before(o.CreatedAt)
	}
	return t.ID < o.ID
}

// HasBlocker reports whether id is in the task's blocked_by set.
func (t Task) HasBlocker(id string) bool {
	return slices.Contains(t.BlockedBy, id)
}

// SortTasks orders tasks most urgent first.
func SortTasks(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Less(tasks[j])
	})
}

// NormalizeIDSet returns ids sorted with duplicates and empty entries removed.
// A nil or empty input yields an empty, non-nil slice.
func NormalizeIDSet(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
