package core

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/valter-silva-au/ztask/internal/storage"
	"github.com/valter-silva-au/ztask/pkg/models"
)

// TaskStore owns the task collection loaded from a TaskFile. It is not safe
// for concurrent use.
type TaskStore struct {
	file   storage.TaskFile
	tasks  *taskHeap
	clock  Clock
	editor Editor
	logger *log.Logger

	minPrefixLen    int
	defaultPriority int
	defaultCategory string

	dirty  bool
	closed bool
}

// StoreOption configures a TaskStore at open time.
type StoreOption func(*TaskStore)

// WithClock sets the time source. The default is SystemClock.
func WithClock(c Clock) StoreOption {
	return func(s *TaskStore) { s.clock = c }
}

// WithEditor sets the editor used by Edit and EditDetails.
func WithEditor(e Editor) StoreOption {
	return func(s *TaskStore) { s.editor = e }
}

// WithLogger sets the logger for diagnostics. The default discards output.
func WithLogger(l *log.Logger) StoreOption {
	return func(s *TaskStore) { s.logger = l }
}

// WithMinPrefixLength rejects id prefixes shorter than n. Zero disables the check.
func WithMinPrefixLength(n int) StoreOption {
	return func(s *TaskStore) { s.minPrefixLen = n }
}

// WithDefaults sets the priority and category given to new tasks. Out of range
// or empty values leave the built-in defaults in place.
func WithDefaults(priority int, category string) StoreOption {
	return func(s *TaskStore) {
		if priority >= models.MinPriority && priority <= models.MaxPriority {
			s.defaultPriority = priority
		}
		if category != "" {
			s.defaultCategory = category
		}
	}
}

// OpenTaskStore loads the tasks from file and runs the wake and unblock
// passes before returning.
func OpenTaskStore(file storage.TaskFile, opts ...StoreOption) (*TaskStore, error) {
	s := &TaskStore{
		file:            file,
		clock:           SystemClock{},
		logger:          log.NewWithOptions(io.Discard, log.Options{}),
		defaultPriority: models.DefaultPriority,
		defaultCategory: models.DefaultCategory,
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded, err := file.Load()
	if err != nil {
		return nil, fmt.Errorf("opening task store: %w", err)
	}
	seen := make(map[string]struct{}, len(loaded))
	for _, t := range loaded {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("opening task store: %s: %w %s", file.Path(), ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	now := s.clock.Now()
	for i := range loaded {
		if normalizeTask(&loaded[i], now) {
			s.dirty = true
		}
	}
	s.tasks = newTaskHeap(loaded)

	if n := s.WakeTasks(); n > 0 {
		s.logger.Info(fmt.Sprintf("awakened %d task(s)", n))
	}
	if n := s.UnblockTasks(); n > 0 {
		s.logger.Info(fmt.Sprintf("unblocked %d task(s)", n))
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *TaskStore) Path() string {
	return s.file.Path()
}

// Len returns the number of tasks in the store.
func (s *TaskStore) Len() int {
	return s.tasks.Len()
}

// Resolve returns the single task whose id starts with prefix. Zero or
// several matches, or a prefix below the minimum length, yield an
// *AmbiguousReferenceError.
func (s *TaskStore) Resolve(prefix string) (models.Task, error) {
	t, err := s.resolve(prefix)
	if err != nil {
		return models.Task{}, err
	}
	return t.Clone(), nil
}

func (s *TaskStore) resolve(prefix string) (*models.Task, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	var match string
	matches := 0
	for _, id := range s.tasks.ids() {
		if strings.HasPrefix(id, prefix) {
			match = id
			matches++
		}
	}

	if prefix == "" || len(prefix) < s.minPrefixLen {
		return nil, &AmbiguousReferenceError{Prefix: prefix, Matches: matches, TooShort: true, MinLen: max(s.minPrefixLen, 1)}
	}
	if matches != 1 {
		return nil, &AmbiguousReferenceError{Prefix: prefix, Matches: matches}
	}
	t, _ := s.tasks.get(match)
	return t, nil
}

// Get is Resolve under the name the read-side callers use.
func (s *TaskStore) Get(prefix string) (models.Task, error) {
	return s.Resolve(prefix)
}

// Tasks returns copies of the tasks, most urgent first. With statuses given,
// only tasks in one of them are returned.
func (s *TaskStore) Tasks(statuses ...models.TaskStatus) []models.Task {
	all := s.tasks.sorted()
	if len(statuses) == 0 {
		return all
	}
	out := make([]models.Task, 0, len(all))
	for _, t := range all {
		for _, st := range statuses {
			if t.Status == st {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// Next returns the most urgent task with the given status.
func (s *TaskStore) Next(status models.TaskStatus) (models.Task, bool) {
	var best *models.Task
	for i := range s.tasks.items {
		t := &s.tasks.items[i]
		if t.Status != status {
			continue
		}
		if best == nil || t.Less(*best) {
			best = t
		}
	}
	if best == nil {
		return models.Task{}, false
	}
	return best.Clone(), true
}

// Top returns the most urgent task in the store.
func (s *TaskStore) Top() (models.Task, bool) {
	t, ok := s.tasks.top()
	if !ok {
		return models.Task{}, false
	}
	return t.Clone(), true
}

// Add creates a task and returns its id. Interrupts start out active,
// everything else goes to the backlog.
func (s *TaskStore) Add(summary, category string, interrupt bool) (string, error) {
	if s.closed {
		return "", ErrStoreClosed
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", ErrEmptySummary
	}
	if category == "" {
		category = s.defaultCategory
	}

	status := models.StatusBacklog
	if interrupt {
		status = models.StatusActive
	}
	t := models.Task{
		ID:        newTaskID(),
		Summary:   summary,
		Priority:  s.defaultPriority,
		Category:  category,
		CreatedAt: s.clock.Now(),
		Status:    status,
		BlockedBy: []string{},
	}
	s.tasks.insert(t)
	s.dirty = true
	s.logger.Debug("added task", "id", t.ID, "status", t.Status)
	return t.ID, nil
}

func newTaskID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Remove deletes the task matching prefix, whatever its status.
func (s *TaskStore) Remove(prefix string) (int, error) {
	if s.closed {
		return 0, ErrStoreClosed
	}
	t, err := s.resolve(prefix)
	if err != nil {
		return 0, err
	}
	removed, _ := s.tasks.remove(t.ID)
	s.dirty = true
	s.logger.Debug("removed task", "id", removed.ID)
	return 1, nil
}

// Start makes the task active.
func (s *TaskStore) Start(prefix string) (int, error) {
	return s.transition(prefix, func(t *models.Task, _ time.Time) {
		setStatus(t, models.StatusActive)
	})
}

// Stop moves the task back to the backlog.
func (s *TaskStore) Stop(prefix string) (int, error) {
	return s.transition(prefix, func(t *models.Task, _ time.Time) {
		setStatus(t, models.StatusBacklog)
	})
}

// Suspend puts the task to sleep for the parsed duration. Zero or negative
// durations produce a sleep that has already expired.
func (s *TaskStore) Suspend(prefix, duration string) (int, error) {
	d, err := ParseDuration(duration)
	if err != nil {
		return 0, err
	}
	return s.transition(prefix, func(t *models.Task, now time.Time) {
		wake := now.Add(d)
		setStatus(t, models.StatusSleeping)
		t.WakeAt = &wake
		s.logger.Info(fmt.Sprintf("sleeping for %s", FormatDuration(d)), "id", t.ID)
	})
}

// SuspendUntil puts the task to sleep until wakeAt.
func (s *TaskStore) SuspendUntil(prefix string, wakeAt time.Time) (int, error) {
	return s.transition(prefix, func(t *models.Task, _ time.Time) {
		wake := wakeAt
		setStatus(t, models.StatusSleeping)
		t.WakeAt = &wake
	})
}

// Complete marks the task completed. Completion is terminal.
func (s *TaskStore) Complete(prefix string) (int, error) {
	if s.closed {
		return 0, ErrStoreClosed
	}
	t, err := s.resolve(prefix)
	if err != nil {
		return 0, err
	}
	updated := t.Clone()
	setStatus(&updated, models.StatusCompleted)
	s.tasks.replace(updated)
	s.dirty = true
	return 1, nil
}

// SetPriority changes the priority of the resolved task. Completed tasks may
// be reprioritized too.
func (s *TaskStore) SetPriority(prefix string, priority int) (int, error) {
	if s.closed {
		return 0, ErrStoreClosed
	}
	if priority < models.MinPriority || priority > models.MaxPriority {
		return 0, fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidPriority, priority, models.MinPriority, models.MaxPriority)
	}
	t, err := s.resolve(prefix)
	if err != nil {
		return 0, err
	}
	if t.Priority == priority {
		return 0, nil
	}
	updated := t.Clone()
	updated.Priority = priority
	s.tasks.replace(updated)
	s.dirty = true
	return 1, nil
}

// Block adds the blocker to the blockee's blocked_by set and marks the blockee
// blocked. Both prefixes must resolve to exactly one task.
func (s *TaskStore) Block(blockeePrefix, blockerPrefix string) (int, error) {
	if s.closed {
		return 0, ErrStoreClosed
	}
	blockee, err := s.resolve(blockeePrefix)
	if err != nil {
		return 0, err
	}
	blocker, err := s.resolve(blockerPrefix)
	if err != nil {
		return 0, err
	}
	if blockee.Status == models.StatusCompleted {
		return 0, fmt.Errorf("blocking task %s: %w", blockee.ID, ErrTaskCompleted)
	}

	updated := blockee.Clone()
	blockers := append(updated.BlockedBy, blocker.ID)
	setStatus(&updated, models.StatusBlocked)
	updated.BlockedBy = models.NormalizeIDSet(blockers)
	s.tasks.replace(updated)
	s.dirty = true
	return 1, nil
}

// transition applies fn to a copy of the resolved task and stores the result.
// Completed tasks are left untouched.
func (s *TaskStore) transition(prefix string, fn func(t *models.Task, now time.Time)) (int, error) {
	if s.closed {
		return 0, ErrStoreClosed
	}
	t, err := s.resolve(prefix)
	if err != nil {
		return 0, err
	}
	if t.Status == models.StatusCompleted {
		return 0, fmt.Errorf("changing task %s: %w", t.ID, ErrTaskCompleted)
	}
	updated := t.Clone()
	fn(&updated, s.clock.Now())
	s.tasks.replace(updated)
	s.dirty = true
	return 1, nil
}

// setStatus changes the status and drops the fields that only belong to the
// previous one.
func setStatus(t *models.Task, status models.TaskStatus) {
	t.Status = status
	if status != models.StatusBlocked {
		t.BlockedBy = []string{}
	}
	if status != models.StatusSleeping {
		t.WakeAt = nil
	}
}

// normalizeTask restores the blocked and sleeping invariants on a task that
// came from outside the store. It reports whether anything changed.
func normalizeTask(t *models.Task, now time.Time) bool {
	changed := false
	blockers := models.NormalizeIDSet(t.BlockedBy)
	if len(blockers) != len(t.BlockedBy) {
		changed = true
	}
	t.BlockedBy = blockers

	if t.Status != models.StatusBlocked && len(t.BlockedBy) > 0 {
		t.BlockedBy = []string{}
		changed = true
	}
	if t.Status == models.StatusBlocked && len(t.BlockedBy) == 0 {
		t.Status = models.StatusBacklog
		changed = true
	}
	if t.Status != models.StatusSleeping && t.WakeAt != nil {
		t.WakeAt = nil
		changed = true
	}
	if t.Status == models.StatusSleeping && t.WakeAt == nil {
		wake := now
		t.WakeAt = &wake
		changed = true
	}
	return changed
}

// Flush writes the current tasks to the backing file.
func (s *TaskStore) Flush() error {
	if s.closed {
		return ErrStoreClosed
	}
	if err := s.file.Save(s.tasks.sorted()); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Close saves the tasks if anything changed since they were loaded, then
// releases the store. Closing twice is a no-op. If the save fails the store
// stays open so the caller can retry.
func (s *TaskStore) Close() error {
	if s.closed {
		return nil
	}
	if s.dirty {
		if err := s.Flush(); err != nil {
			return err
		}
	}
	s.closed = true
	return nil
}
