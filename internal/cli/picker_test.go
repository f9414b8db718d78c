package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/valter-silva-au/ztask/pkg/models"
)

func pickerTasks() []models.Task {
	return []models.Task{
		task(idA, models.StatusBacklog, 1, t0),
		task(idB, models.StatusBacklog, 5, t0),
		task(idC, models.StatusSleeping, 5, t0),
	}
}

func TestPickerModel_Navigation(t *testing.T) {
	m := newPickerModel(pickerTasks(), plainRenderer(nil))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyDown})
	pm := updated.(pickerModel)
	if pm.cursor != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", pm.cursor)
	}

	updated, _ = pm.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := updated.(pickerModel).cursor; got != 1 {
		t.Errorf("expected cursor 1 after up, got %d", got)
	}

	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if got := updated.(pickerModel).cursor; got != 0 {
		t.Errorf("expected cursor 0 after g, got %d", got)
	}
}

func TestPickerModel_EnterChoosesTask(t *testing.T) {
	m := newPickerModel(pickerTasks(), plainRenderer(nil))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})

	pm := updated.(pickerModel)
	if pm.chosen != idB {
		t.Errorf("expected %s chosen, got %q", idB, pm.chosen)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestPickerModel_QuitCancels(t *testing.T) {
	m := newPickerModel(pickerTasks(), plainRenderer(nil))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	pm := updated.(pickerModel)
	if !pm.quitting || pm.chosen != "" {
		t.Errorf("expected cancelled picker, got %+v", pm)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if pm.View() != "" {
		t.Error("expected empty view after quitting")
	}
}

func TestPickerModel_View(t *testing.T) {
	m := newPickerModel(pickerTasks(), plainRenderer(nil))

	view := m.View()
	if !strings.Contains(view, "Pick a task to start") {
		t.Errorf("expected title in view:\n%s", view)
	}
	lines := strings.Split(view, "\n")
	if !strings.HasPrefix(lines[2], ">") || !strings.Contains(lines[2], idA[:9]) {
		t.Errorf("expected cursor on the first task, got %q", lines[2])
	}
	if !strings.Contains(view, "enter: start") {
		t.Errorf("expected help line in view:\n%s", view)
	}
}

func TestPickTask_NoTasks(t *testing.T) {
	if _, err := pickTask(nil, plainRenderer(nil)); err == nil {
		t.Fatal("expected error with nothing to pick")
	}
}
