package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/valter-silva-au/ztask/pkg/models"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)

// fixedClock always returns the same instant. Tests move it explicitly.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// memTaskFile implements storage.TaskFile in memory.
type memTaskFile struct {
	tasks   []models.Task
	loadErr error
	saveErr error
	saves   int
}

func (f *memTaskFile) Load() ([]models.Task, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]models.Task, len(f.tasks))
	for i, t := range f.tasks {
		out[i] = t.Clone()
	}
	return out, nil
}

func (f *memTaskFile) Save(tasks []models.Task) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.tasks = make([]models.Task, len(tasks))
	for i, t := range tasks {
		f.tasks[i] = t.Clone()
	}
	return nil
}

func (f *memTaskFile) Path() string { return "mem://taskdb.json" }

func (f *memTaskFile) find(id string) (models.Task, bool) {
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// editorFunc adapts a function to the Editor interface.
type editorFunc func(content []byte, ext string) ([]byte, error)

func (f editorFunc) Edit(content []byte, ext string) ([]byte, error) { return f(content, ext) }

func backlogTask(id string, priority int, created time.Time) models.Task {
	return models.Task{
		ID:        id,
		Summary:   "task " + id,
		Priority:  priority,
		Category:  models.DefaultCategory,
		CreatedAt: created,
		Status:    models.StatusBacklog,
		BlockedBy: []string{},
	}
}

func openMemStore(t *testing.T, clock *fixedClock, tasks ...models.Task) (*TaskStore, *memTaskFile) {
	t.Helper()
	file := &memTaskFile{tasks: tasks}
	s, err := OpenTaskStore(file, WithClock(clock))
	if err != nil {
		t.Fatalf("OpenTaskStore: %v", err)
	}
	return s, file
}

func mustGet(t *testing.T, s *TaskStore, id string) models.Task {
	t.Helper()
	task, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get(%s): %v", id, err)
	}
	return task
}

func checkInvariants(tasks []models.Task) error {
	for _, task := range tasks {
		if (task.Status == models.StatusBlocked) != (len(task.BlockedBy) > 0) {
			return fmt.Errorf("task %s: status %s with blocked_by %v", task.ID, task.Status, task.BlockedBy)
		}
		if (task.Status == models.StatusSleeping) != (task.WakeAt != nil) {
			return fmt.Errorf("task %s: status %s with wake_at %v", task.ID, task.Status, task.WakeAt)
		}
	}
	return nil
}
