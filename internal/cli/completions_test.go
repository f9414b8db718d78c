package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/ztask/pkg/models"
)

func TestCompleteTaskIDs_NilOpener(t *testing.T) {
	origOpen := OpenStore
	defer func() { OpenStore = origOpen }()
	OpenStore = nil

	ids, directive := completeTaskIDs()(&cobra.Command{}, nil, "")
	if ids != nil {
		t.Errorf("expected nil ids, got %v", ids)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("expected NoFileComp directive, got %d", directive)
	}
}

func TestCompleteTaskIDs_FiltersByPrefixAndStatus(t *testing.T) {
	setupCLI(t, []models.Task{
		task(idA, models.StatusBacklog, 5, t0),
		task(idAB, models.StatusCompleted, 5, t0),
		task(idB, models.StatusActive, 5, t0),
	})

	ids, directive := completeTaskIDs(models.StatusCompleted)(&cobra.Command{}, nil, "A")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("expected NoFileComp directive, got %d", directive)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 completion, got %v", ids)
	}
	if !strings.HasPrefix(ids[0], idA+"\tbacklog: ") {
		t.Errorf("unexpected completion %q", ids[0])
	}
}

func TestCompleteTaskIDs_DoesNotWriteTheFile(t *testing.T) {
	overdue := task(idA, models.StatusSleeping, 5, t0)
	wake := time.Now().Add(-time.Hour)
	overdue.WakeAt = &wake
	file, _ := setupCLI(t, []models.Task{overdue})

	ids, _ := completeTaskIDs()(&cobra.Command{}, nil, "")
	if len(ids) != 1 {
		t.Fatalf("expected 1 completion, got %v", ids)
	}
	if got := loadTasks(t, file)[idA].Status; got != models.StatusSleeping {
		t.Errorf("expected file untouched, got status %s", got)
	}
}

func TestCompleteStatuses(t *testing.T) {
	got, _ := completeStatuses(&cobra.Command{}, nil, "")
	if len(got) != len(models.AllStatuses()) {
		t.Fatalf("expected every status, got %v", got)
	}
}

func TestCompletePriorities(t *testing.T) {
	got, _ := completePriorities(&cobra.Command{}, nil, "")
	if len(got) != models.MaxPriority-models.MinPriority+1 {
		t.Fatalf("expected %d priorities, got %v", models.MaxPriority-models.MinPriority+1, got)
	}
	if got[0] != "1\tmost urgent" {
		t.Errorf("unexpected first completion %q", got[0])
	}
}
