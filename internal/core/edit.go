package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tailscale/hujson"

	"github.com/valter-silva-au/ztask/internal/storage"
	"github.com/valter-silva-au/ztask/pkg/models"
)

// Editor lets the user change a document interactively. ext is the file
// extension the content should be presented with, e.g. ".jsonc" or ".md".
type Editor interface {
	Edit(content []byte, ext string) ([]byte, error)
}

// editableTask is the part of a task the user may change by hand.
type editableTask struct {
	Summary   string            `json:"summary"`
	Details   string            `json:"details"`
	Priority  int               `json:"priority"`
	Category  string            `json:"category"`
	Status    models.TaskStatus `json:"status"`
	BlockedBy []string          `json:"blocked_by"`
	WakeAt    *time.Time        `json:"wake_at"`
}

const editHeader = `// Editing task %s (created %s).
// priority: %d (most urgent) to %d
// status: active, backlog, blocked, sleeping or completed
// blocked_by: ids of tasks this one waits on, only kept while blocked
// wake_at: RFC 3339 time, only kept while sleeping
`

func encodeEditable(t models.Task) ([]byte, error) {
	payload := editableTask{
		Summary:   t.Summary,
		Details:   t.Details,
		Priority:  t.Priority,
		Category:  t.Category,
		Status:    t.Status,
		BlockedBy: models.NormalizeIDSet(t.BlockedBy),
		WakeAt:    t.WakeAt,
	}
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding task %s: %w", t.ID, err)
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, editHeader, t.ID, t.CreatedAt.Format(time.RFC3339), models.MinPriority, models.MaxPriority)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func decodeEditable(data []byte) (editableTask, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return editableTask{}, fmt.Errorf("parsing edited task: %w", err)
	}
	if err := storage.ValidateEditableTask(std); err != nil {
		return editableTask{}, err
	}
	var payload editableTask
	if err := json.Unmarshal(std, &payload); err != nil {
		return editableTask{}, fmt.Errorf("decoding edited task: %w", err)
	}
	return payload, nil
}

// Edit opens the resolved task in the editor and replaces its mutable fields
// with the result. The id and creation time never change. A payload that does
// not parse or validate, or that moves a completed task out of the completed
// state, leaves the task as it was and returns an error wrapping ErrInvalidEdit.
func (s *TaskStore) Edit(prefix string) (int, error) {
	if s.closed {
		return 0, ErrStoreClosed
	}
	if s.editor == nil {
		return 0, ErrNoEditor
	}
	t, err := s.resolve(prefix)
	if err != nil {
		return 0, err
	}
	original := t.Clone()

	content, err := encodeEditable(original)
	if err != nil {
		return 0, err
	}
	edited, err := s.editor.Edit(content, ".jsonc")
	if err != nil {
		return 0, fmt.Errorf("editing task %s: %w", original.ID, err)
	}
	if bytes.Equal(edited, content) {
		return 0, nil
	}

	payload, err := decodeEditable(edited)
	if err != nil {
		return 0, fmt.Errorf("task %s: %w: %w", original.ID, ErrInvalidEdit, err)
	}
	if original.Status == models.StatusCompleted && payload.Status != models.StatusCompleted {
		return 0, fmt.Errorf("task %s: %w: %w", original.ID, ErrInvalidEdit, ErrTaskCompleted)
	}

	updated := original.Clone()
	updated.Summary = strings.TrimSpace(payload.Summary)
	updated.Details = payload.Details
	updated.Priority = payload.Priority
	updated.Category = payload.Category
	updated.Status = payload.Status
	updated.BlockedBy = payload.BlockedBy
	updated.WakeAt = payload.WakeAt
	if updated.Summary == "" {
		return 0, fmt.Errorf("task %s: %w: %w", original.ID, ErrInvalidEdit, ErrEmptySummary)
	}
	normalizeTask(&updated, s.clock.Now())

	s.tasks.replace(updated)
	s.dirty = true
	return 1, nil
}

// EditDetails opens only the details text of the resolved task, as Markdown.
func (s *TaskStore) EditDetails(prefix string) (int, error) {
	if s.closed {
		return 0, ErrStoreClosed
	}
	if s.editor == nil {
		return 0, ErrNoEditor
	}
	t, err := s.resolve(prefix)
	if err != nil {
		return 0, err
	}
	original := t.Clone()

	content := []byte(original.Details)
	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		content = append(content, '\n')
	}
	edited, err := s.editor.Edit(content, ".md")
	if err != nil {
		return 0, fmt.Errorf("editing details of task %s: %w", original.ID, err)
	}
	if !utf8.Valid(edited) {
		return 0, fmt.Errorf("task %s: %w: details are not valid UTF-8", original.ID, ErrInvalidEdit)
	}

	details := strings.TrimRight(string(edited), "\r\n")
	if details == original.Details {
		return 0, nil
	}
	updated := original.Clone()
	updated.Details = details
	s.tasks.replace(updated)
	s.dirty = true
	return 1, nil
}
