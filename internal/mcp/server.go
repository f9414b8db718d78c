// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the ztask store as tools for local AI assistants.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valter-silva-au/ztask/internal/core"
	"github.com/valter-silva-au/ztask/pkg/models"
)

// StoreOpener opens the task store. The server opens and closes the store
// around every tool call.
type StoreOpener func() (*core.TaskStore, error)

// Server wraps the task store and exposes it as MCP tools.
type Server struct {
	server *gomcp.Server
	open   StoreOpener
	now    func() time.Time
}

// NewServer creates a new MCP server backed by stores from open.
func NewServer(open StoreOpener, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{open: open, now: time.Now}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "ztask", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type taskOutput struct {
	ID        string   `json:"id"`
	Summary   string   `json:"summary"`
	Details   string   `json:"details,omitempty"`
	Priority  int      `json:"priority"`
	Category  string   `json:"category"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
	BlockedBy []string `json:"blocked_by,omitempty"`
	WakeAt    string   `json:"wake_at,omitempty"`
}

type listTasksInput struct {
	Status string `json:"status,omitempty" jsonschema:"only return tasks with this status (active, backlog, blocked, sleeping, completed)"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"the task id or a unique prefix of it"`
}

type addTaskInput struct {
	Summary   string `json:"summary" jsonschema:"short description of the task"`
	Category  string `json:"category,omitempty" jsonschema:"free-text category, defaults to the configured category"`
	Priority  int    `json:"priority,omitempty" jsonschema:"priority from 1 (most urgent) to 9"`
	Interrupt bool   `json:"interrupt,omitempty" jsonschema:"start the task immediately instead of adding it to the backlog"`
}

type sleepTaskInput struct {
	TaskID   string `json:"task_id" jsonschema:"the task id or a unique prefix of it"`
	Duration string `json:"duration,omitempty" jsonschema:"how long to sleep, e.g. 3h, 2m 10s, 1d"`
	Until    string `json:"until,omitempty" jsonschema:"five-field cron expression; the task wakes at its next activation"`
}

type blockTaskInput struct {
	TaskID    string   `json:"task_id" jsonschema:"the task to block"`
	BlockedBy []string `json:"blocked_by" jsonschema:"ids or unique prefixes of the tasks it waits on"`
}

type changeOutput struct {
	Message string     `json:"message"`
	Task    taskOutput `json:"task"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks, most urgent first, with an optional status filter.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get a task by id or unique id prefix, including details, blockers and wake time.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Create a task in the backlog, or as active when interrupt is set.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "start_task",
		Description: "Make a task active.",
	}, s.handleStartTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "stop_task",
		Description: "Move a task back to the backlog.",
	}, s.handleStopTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task completed. Completed tasks no longer block others.",
	}, s.handleCompleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "sleep_task",
		Description: "Put a task to sleep for a duration or until a cron schedule fires. It returns to the backlog when it wakes.",
	}, s.handleSleepTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "block_task",
		Description: "Block a task on one or more other tasks. It returns to the backlog once they are all completed or deleted.",
	}, s.handleBlockTask)
}

// --- Tool handlers ---

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	var statuses []models.TaskStatus
	if input.Status != "" {
		status, err := models.ParseTaskStatus(input.Status)
		if err != nil {
			return errorResult(err.Error()), listTasksOutput{}, nil
		}
		statuses = append(statuses, status)
	}

	var tasks []models.Task
	err := s.withStore(func(st *core.TaskStore) error {
		tasks = st.Tasks(statuses...)
		return nil
	})
	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		out.Tasks[i] = taskToOutput(t)
	}
	return nil, out, nil
}

func (s *Server) handleGetTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), taskOutput{}, nil
	}

	var task models.Task
	err := s.withStore(func(st *core.TaskStore) error {
		var err error
		task, err = st.Get(input.TaskID)
		return err
	})
	if err != nil {
		return errorResult(fmt.Sprintf("getting task %s: %s", input.TaskID, err)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Priority != 0 && (input.Priority < models.MinPriority || input.Priority > models.MaxPriority) {
		return errorResult(fmt.Sprintf("priority %d is invalid, must be between %d and %d", input.Priority, models.MinPriority, models.MaxPriority)), taskOutput{}, nil
	}

	var task models.Task
	err := s.withStore(func(st *core.TaskStore) error {
		id, err := st.Add(input.Summary, input.Category, input.Interrupt)
		if err != nil {
			return err
		}
		if input.Priority != 0 {
			if _, err := st.SetPriority(id, input.Priority); err != nil {
				return err
			}
		}
		task, err = st.Get(id)
		return err
	})
	if err != nil {
		return errorResult(fmt.Sprintf("adding task: %s", err)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleStartTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, changeOutput, error) {
	return s.change(input.TaskID, "started", func(st *core.TaskStore, id string) error {
		_, err := st.Start(id)
		return err
	})
}

func (s *Server) handleStopTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, changeOutput, error) {
	return s.change(input.TaskID, "stopped", func(st *core.TaskStore, id string) error {
		_, err := st.Stop(id)
		return err
	})
}

func (s *Server) handleCompleteTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, changeOutput, error) {
	return s.change(input.TaskID, "completed", func(st *core.TaskStore, id string) error {
		_, err := st.Complete(id)
		return err
	})
}

func (s *Server) handleSleepTask(_ context.Context, _ *gomcp.CallToolRequest, input sleepTaskInput) (*gomcp.CallToolResult, changeOutput, error) {
	if (input.Duration == "") == (input.Until == "") {
		return errorResult("exactly one of duration or until is required"), changeOutput{}, nil
	}

	var wakeAt time.Time
	if input.Until != "" {
		next, err := core.NextWake(input.Until, s.now())
		if err != nil {
			return errorResult(err.Error()), changeOutput{}, nil
		}
		wakeAt = next
	} else if _, err := core.ParseDuration(input.Duration); err != nil {
		return errorResult(err.Error()), changeOutput{}, nil
	}

	return s.change(input.TaskID, "put to sleep", func(st *core.TaskStore, id string) error {
		var err error
		if input.Until != "" {
			_, err = st.SuspendUntil(id, wakeAt)
		} else {
			_, err = st.Suspend(id, input.Duration)
		}
		return err
	})
}

func (s *Server) handleBlockTask(_ context.Context, _ *gomcp.CallToolRequest, input blockTaskInput) (*gomcp.CallToolResult, changeOutput, error) {
	if len(input.BlockedBy) == 0 {
		return errorResult("blocked_by must name at least one task"), changeOutput{}, nil
	}
	return s.change(input.TaskID, "blocked", func(st *core.TaskStore, id string) error {
		// Resolve every blocker before blocking so a bad prefix changes nothing.
		blockers := make([]string, 0, len(input.BlockedBy))
		for _, prefix := range input.BlockedBy {
			blocker, err := st.Resolve(prefix)
			if err != nil {
				return err
			}
			blockers = append(blockers, blocker.ID)
		}
		for _, blocker := range blockers {
			if _, err := st.Block(id, blocker); err != nil {
				return err
			}
		}
		return nil
	})
}

// --- Helpers ---

// withStore runs fn against a freshly opened store and closes it afterwards.
func (s *Server) withStore(fn func(*core.TaskStore) error) error {
	if s.open == nil {
		return fmt.Errorf("task store not initialized")
	}
	st, err := s.open()
	if err != nil {
		return err
	}
	return errors.Join(fn(st), st.Close())
}

// change resolves taskID, applies fn and reports the task's new state.
func (s *Server) change(taskID, verb string, fn func(st *core.TaskStore, id string) error) (*gomcp.CallToolResult, changeOutput, error) {
	if taskID == "" {
		return errorResult("task_id is required"), changeOutput{}, nil
	}

	var task models.Task
	err := s.withStore(func(st *core.TaskStore) error {
		resolved, err := st.Resolve(taskID)
		if err != nil {
			return err
		}
		if err := fn(st, resolved.ID); err != nil {
			return err
		}
		task, err = st.Get(resolved.ID)
		return err
	})
	if err != nil {
		return errorResult(fmt.Sprintf("task %s: %s", taskID, err)), changeOutput{}, nil
	}

	return nil, changeOutput{
		Message: fmt.Sprintf("task %s %s", task.ID, verb),
		Task:    taskToOutput(task),
	}, nil
}

func taskToOutput(t models.Task) taskOutput {
	out := taskOutput{
		ID:        t.ID,
		Summary:   t.Summary,
		Details:   t.Details,
		Priority:  t.Priority,
		Category:  t.Category,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		BlockedBy: t.BlockedBy,
	}
	if t.WakeAt != nil {
		out.WakeAt = t.WakeAt.Format(time.RFC3339)
	}
	return out
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
