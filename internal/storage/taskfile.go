// Package storage persists the task list as a single JSON document on disk.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valter-silva-au/ztask/pkg/models"
)

// TaskFile loads and saves the whole task list in one piece.
type TaskFile interface {
	Load() ([]models.Task, error)
	Save(tasks []models.Task) error
	Path() string
}

type jsonTaskFile struct {
	path string
}

// NewTaskFile creates a TaskFile backed by a JSON array at path. The path is
// used as given; callers expand ~ and environment variables beforehand.
func NewTaskFile(path string) TaskFile {
	return &jsonTaskFile{path: path}
}

func (f *jsonTaskFile) Path() string {
	return f.path
}

// Load reads the task list. A missing file is an empty list so the first run
// works without setup; anything unreadable or malformed is an error.
func (f *jsonTaskFile) Load() ([]models.Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Task{}, nil
		}
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if len(data) == 0 {
		return []models.Task{}, nil
	}

	if err := ValidateTaskList(data); err != nil {
		return nil, fmt.Errorf("loading tasks from %s: %w", f.path, err)
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("loading tasks: parsing JSON: %w", err)
	}
	for i := range tasks {
		tasks[i].BlockedBy = models.NormalizeIDSet(tasks[i].BlockedBy)
	}
	return tasks, nil
}

// Save writes the task list, replacing the previous file atomically.
func (f *jsonTaskFile) Save(tasks []models.Task) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("saving tasks: creating directory: %w", err)
	}

	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
		out[i].BlockedBy = models.NormalizeIDSet(t.BlockedBy)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("saving tasks: marshaling JSON: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("saving tasks: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("saving tasks: writing file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("saving tasks: closing file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("saving tasks: setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("saving tasks: replacing %s: %w", f.path, err)
	}
	return nil
}
