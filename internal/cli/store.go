package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/valter-silva-au/ztask/internal/core"
	"github.com/valter-silva-au/ztask/pkg/models"
)

// store is the task store opened by the running command, if any.
var store *core.TaskStore

// dbPath returns the database path from --db, the config, or the default.
func dbPath() string {
	if dbFlag != "" {
		return dbFlag
	}
	if Config != nil && Config.DBPath != "" {
		return Config.DBPath
	}
	return core.DefaultConfig().DBPath
}

// requireStore opens the task store on first use.
func requireStore() (*core.TaskStore, error) {
	if store != nil {
		return store, nil
	}
	if OpenStore == nil {
		return nil, fmt.Errorf("task store not initialized")
	}
	st, err := OpenStore(dbPath())
	if err != nil {
		return nil, fmt.Errorf("opening task store: %w", err)
	}
	store = st
	return st, nil
}

// closeStore saves and releases the store opened by requireStore.
func closeStore() error {
	if store == nil {
		return nil
	}
	st := store
	store = nil
	if err := st.Close(); err != nil {
		return fmt.Errorf("saving tasks to %s: %w", st.Path(), err)
	}
	return nil
}

// report logs recoverable per-task errors as warnings and returns the rest.
func report(err error) error {
	if err == nil {
		return nil
	}
	if core.IsAmbiguous(err) ||
		errors.Is(err, core.ErrInvalidEdit) ||
		errors.Is(err, core.ErrTaskCompleted) {
		Logger.Warn(err.Error())
		return nil
	}
	return err
}

// applyEach runs op for every id and sums the affected counts. Recoverable
// failures are reported and skipped.
func applyEach(ids []string, op func(id string) (int, error)) (int, error) {
	total := 0
	for _, id := range ids {
		n, err := op(id)
		if err != nil {
			if err := report(err); err != nil {
				return total, err
			}
			continue
		}
		total += n
	}
	return total, nil
}

// activeTarget returns the most urgent active task id for commands run
// without ids.
func activeTarget(st *core.TaskStore, action string) []string {
	t, ok := st.Next(models.StatusActive)
	if !ok {
		Logger.Warn(fmt.Sprintf("There's no default active task to %s", action))
		return nil
	}
	return []string{t.ID}
}

// startDefault activates the top backlog task, but only while nothing else
// is active.
func startDefault(st *core.TaskStore) (int, error) {
	if _, ok := st.Next(models.StatusActive); ok {
		Logger.Warn("Can't activate default backlog task when there are active tasks")
		Logger.Warn("Clear your active tasks or use the start command with a task id")
		return 0, nil
	}
	t, ok := st.Next(models.StatusBacklog)
	if !ok {
		return 0, nil
	}
	return st.Start(t.ID)
}

// printCount reports how many tasks an operation touched when -v is set.
func printCount(w io.Writer, n int, verb string) {
	if verbose > 0 {
		fmt.Fprintf(w, "%d task(s) %s\n", n, verb)
	}
}
