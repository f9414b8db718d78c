package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/valter-silva-au/ztask/internal/core"
	"github.com/valter-silva-au/ztask/internal/storage"
	"github.com/valter-silva-au/ztask/pkg/models"
)

var t0 = time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type editorFunc func(content []byte, ext string) ([]byte, error)

func (f editorFunc) Edit(content []byte, ext string) ([]byte, error) { return f(content, ext) }

func task(id string, status models.TaskStatus, priority int, created time.Time) models.Task {
	t := models.Task{
		ID:        id,
		Summary:   "task " + id,
		Priority:  priority,
		Category:  models.DefaultCategory,
		CreatedAt: created,
		Status:    status,
		BlockedBy: []string{},
	}
	if status == models.StatusSleeping {
		wake := created.Add(24 * time.Hour)
		t.WakeAt = &wake
	}
	return t
}

// setupCLI points the CLI at a temp task file seeded with tasks and captures
// log output. Package state is restored when the test ends.
func setupCLI(t *testing.T, tasks []models.Task, opts ...core.StoreOption) (storage.TaskFile, *bytes.Buffer) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "taskdb.json")
	file := storage.NewTaskFile(path)
	if len(tasks) > 0 {
		if err := file.Save(tasks); err != nil {
			t.Fatalf("seeding task file: %v", err)
		}
	}

	origOpen := OpenStore
	origConfig := Config
	origMgr := ConfigMgr
	origNow := now

	var logs bytes.Buffer
	Logger.SetOutput(&logs)
	OpenStore = func(p string) (*core.TaskStore, error) {
		return core.OpenTaskStore(storage.NewTaskFile(p), opts...)
	}
	cfg := core.DefaultConfig()
	cfg.DBPath = path
	Config = cfg
	t.Setenv("NO_COLOR", "1")

	t.Cleanup(func() {
		_ = closeStore()
		OpenStore = origOpen
		Config = origConfig
		ConfigMgr = origMgr
		now = origNow
		Logger.SetOutput(os.Stderr)
		resetFlags()
	})
	return file, &logs
}

func resetFlags() {
	dbFlag, verbose, noColor = "", 0, false
	listStatuses = nil
	addInterrupt, addEdit, addCategory, addPriority = false, false, "", 0
	startPick = false
	sleepDuration, sleepUntil = "", ""
	editDetails = false
}

// runCLI executes the root command with args and returns everything written
// to stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	if args == nil {
		args = []string{}
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), err
}

func loadTasks(t *testing.T, file storage.TaskFile) map[string]models.Task {
	t.Helper()
	tasks, err := file.Load()
	if err != nil {
		t.Fatalf("loading tasks: %v", err)
	}
	byID := make(map[string]models.Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}
	return byID
}
