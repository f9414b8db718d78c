package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/valter-silva-au/ztask/internal/core"
	"github.com/valter-silva-au/ztask/pkg/models"
)

// Style definitions.
var (
	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	backlogStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	blockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	completedStyle = mutedStyle.Strikethrough(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	headingStyle   = labelStyle.Underline(true)
	blockersStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A7EA5"))
)

// labelWidth aligns the values of the detailed view.
const labelWidth = 11

// detailsWrap is the word-wrap width for Markdown details.
const detailsWrap = 66

var listSections = []struct {
	heading string
	status  models.TaskStatus
}{
	{"Active Tasks", models.StatusActive},
	{"Backlog Tasks", models.StatusBacklog},
	{"Blocked Tasks", models.StatusBlocked},
	{"Sleeping Tasks", models.StatusSleeping},
	{"Completed Tasks", models.StatusCompleted},
}

type renderer struct {
	w       io.Writer
	color   bool
	idWidth int
	now     time.Time
}

func newRenderer(w io.Writer) *renderer {
	width := core.DefaultConfig().IDWidth
	if Config != nil && Config.IDWidth > 0 {
		width = Config.IDWidth
	}
	return &renderer{
		w:       w,
		color:   !noColor && os.Getenv("NO_COLOR") == "",
		idWidth: width,
		now:     now(),
	}
}

func (r *renderer) paint(style lipgloss.Style, text string) string {
	if !r.color || text == "" {
		return text
	}
	return style.Render(text)
}

func (r *renderer) shortID(id string) string {
	if len(id) > r.idWidth {
		return id[:r.idWidth]
	}
	return id
}

func (r *renderer) blockers(t models.Task) string {
	short := make([]string, len(t.BlockedBy))
	for i, id := range t.BlockedBy {
		short[i] = r.shortID(id)
	}
	return strings.Join(short, ", ")
}

func idStyle(status models.TaskStatus) lipgloss.Style {
	switch status {
	case models.StatusActive:
		return activeStyle
	case models.StatusBacklog:
		return backlogStyle
	case models.StatusBlocked:
		return blockedStyle
	default:
		return mutedStyle
	}
}

// rowStyle is the style of list rows other than the current active task.
func rowStyle(status models.TaskStatus) lipgloss.Style {
	switch status {
	case models.StatusBacklog:
		return backlogStyle
	case models.StatusCompleted:
		return completedStyle
	default:
		return mutedStyle
	}
}

// oneLine renders a task on a single line with the id colored by status.
func (r *renderer) oneLine(t models.Task, showStatus bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s  %s", r.paint(idStyle(t.Status), r.shortID(t.ID)), r.paint(mutedStyle, strconv.Itoa(t.Priority)))
	if showStatus {
		fmt.Fprintf(&b, "  %s", r.paint(mutedStyle, string(t.Status)))
	}
	fmt.Fprintf(&b, "  %s  %s", r.paint(mutedStyle, t.CreatedAt.Format(time.DateOnly)), r.paint(backlogStyle, t.Summary))
	if len(t.BlockedBy) > 0 {
		fmt.Fprintf(&b, "  %s", r.paint(blockedStyle, "["+r.blockers(t)+"]"))
	}
	if t.WakeAt != nil {
		fmt.Fprintf(&b, "  %s", r.paint(mutedStyle, wakeInfo(*t.WakeAt, r.now)))
	}
	return b.String()
}

// row renders a task on a single line in one style.
func (r *renderer) row(t models.Task, style lipgloss.Style) string {
	parts := []string{
		r.shortID(t.ID),
		strconv.Itoa(t.Priority),
		t.CreatedAt.Format(time.DateOnly),
		t.Summary,
	}
	if len(t.BlockedBy) > 0 {
		parts = append(parts, "["+r.blockers(t)+"]")
	}
	if t.WakeAt != nil {
		parts = append(parts, wakeInfo(*t.WakeAt, r.now))
	}
	for i, p := range parts {
		parts[i] = r.paint(style, p)
	}
	return "  " + strings.Join(parts, "  ")
}

// list prints tasks grouped by status. tasks must already be sorted.
func (r *renderer) list(tasks []models.Task, detailed bool) {
	for _, section := range listSections {
		var group []models.Task
		for _, t := range tasks {
			if t.Status == section.status {
				group = append(group, t)
			}
		}
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(r.w, "%s:\n", r.paint(headingStyle, section.heading))
		for i, t := range group {
			switch {
			case detailed:
				r.detailed(t)
			case i == 0 && section.status == models.StatusActive:
				fmt.Fprintln(r.w, r.oneLine(t, false))
			default:
				fmt.Fprintln(r.w, r.row(t, rowStyle(section.status)))
			}
		}
	}
}

// show prints one task, detailed or on one line.
func (r *renderer) show(t models.Task, detailed bool) {
	if detailed {
		r.detailed(t)
		return
	}
	fmt.Fprintln(r.w, r.oneLine(t, true))
}

func (r *renderer) field(label, value string) {
	fmt.Fprintf(r.w, "  %s %s\n", r.paint(labelStyle, fmt.Sprintf("%-*s", labelWidth, label)), value)
}

// detailed prints every field of a task, one per line.
func (r *renderer) detailed(t models.Task) {
	r.field("summary:", r.paint(mutedStyle, t.Summary))
	r.field("id:", r.paint(mutedStyle, r.shortID(t.ID)))
	r.field("priority:", r.paint(mutedStyle, strconv.Itoa(t.Priority)))
	r.field("status:", r.paint(mutedStyle, string(t.Status)))
	if t.Category != "" {
		r.field("category:", r.paint(mutedStyle, t.Category))
	}
	r.field("created:", r.paint(mutedStyle, t.CreatedAt.Format(time.DateTime)))
	if t.Status == models.StatusBlocked {
		r.field("blocked by:", r.paint(blockersStyle, r.blockers(t)))
	}
	if t.WakeAt != nil {
		r.field("wakes:", r.paint(mutedStyle, wakeInfo(*t.WakeAt, r.now)))
	}
	if t.Details != "" {
		indent := "\n  " + strings.Repeat(" ", labelWidth) + " "
		lines := strings.Split(r.markdown(t.Details), "\n")
		r.field("details:", strings.Join(lines, indent))
	}
}

// markdown renders task details with glamour, falling back to the raw text.
func (r *renderer) markdown(text string) string {
	style := "dark"
	if !r.color {
		style = "notty"
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(detailsWrap),
	)
	if err != nil {
		return text
	}
	out, err := md.Render(text)
	if err != nil {
		return text
	}

	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(strings.TrimRight(line, " "), "  ")
	}
	return strings.Join(lines, "\n")
}

// wakeInfo formats a wake time with the time left, or how long it is overdue.
func wakeInfo(wake, now time.Time) string {
	left := wake.Sub(now)
	if left <= 0 {
		return fmt.Sprintf("%s (overdue by %s)", wake.Format(time.DateTime), core.FormatDuration(-left))
	}
	return fmt.Sprintf("%s (%s)", wake.Format(time.DateTime), core.FormatDuration(left))
}
