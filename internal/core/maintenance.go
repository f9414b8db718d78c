package core

import (
	"slices"

	"github.com/valter-silva-au/ztask/pkg/models"
)

// WakeTasks moves every sleeping task whose wake time has passed back to the
// backlog and returns how many were woken.
func (s *TaskStore) WakeTasks() int {
	now := s.clock.Now()
	woken := 0
	for _, id := range s.tasks.ids() {
		t, _ := s.tasks.get(id)
		if t.Status != models.StatusSleeping {
			continue
		}
		if t.WakeAt != nil && t.WakeAt.After(now) {
			continue
		}
		updated := t.Clone()
		setStatus(&updated, models.StatusBacklog)
		s.tasks.replace(updated)
		woken++
	}
	if woken > 0 {
		s.dirty = true
	}
	return woken
}

// UnblockTasks drops blockers that are completed or no longer exist from
// every blocked task. Tasks left with no blockers move to the backlog. It
// returns how many tasks were unblocked.
func (s *TaskStore) UnblockTasks() int {
	capable := make(map[string]bool, s.tasks.Len())
	for _, t := range s.tasks.items {
		if t.Status != models.StatusCompleted {
			capable[t.ID] = true
		}
	}

	unblocked := 0
	for _, id := range s.tasks.ids() {
		t, _ := s.tasks.get(id)
		if t.Status != models.StatusBlocked {
			continue
		}
		remaining := slices.DeleteFunc(slices.Clone(t.BlockedBy), func(b string) bool {
			return !capable[b]
		})
		if len(remaining) == len(t.BlockedBy) && len(remaining) > 0 {
			continue
		}

		updated := t.Clone()
		updated.BlockedBy = remaining
		if len(remaining) == 0 {
			setStatus(&updated, models.StatusBacklog)
			unblocked++
		}
		s.tasks.replace(updated)
		s.dirty = true
	}
	return unblocked
}
