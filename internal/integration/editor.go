package integration

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/term"
	"mvdan.cc/sh/v3/shell"
)

// ErrNotInteractive is returned when an editor is requested but stdin is not
// a terminal.
var ErrNotInteractive = errors.New("editor requires an interactive terminal")

// ExternalEditor edits content by running the user's editor on a temp file.
// It satisfies core.Editor.
type ExternalEditor struct {
	// Command is the editor command line, e.g. "vim" or "code --wait".
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer

	// interactive reports whether a user can drive the editor. Nil means
	// checking os.Stdin with term.IsTerminal.
	interactive func() bool
}

// NewExternalEditor creates an editor for the given command line. An empty
// command falls back to $VISUAL, then $EDITOR, then vi.
func NewExternalEditor(command string) *ExternalEditor {
	return &ExternalEditor{
		Command: ResolveEditorCommand(command),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// ResolveEditorCommand picks the editor to run.
func ResolveEditorCommand(configured string) string {
	for _, candidate := range []string{configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if candidate != "" {
			return candidate
		}
	}
	return "vi"
}

func (e *ExternalEditor) isInteractive() bool {
	if e.interactive != nil {
		return e.interactive()
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Edit writes content to a temp file with extension ext, waits for the editor
// to exit and returns the file's new content.
func (e *ExternalEditor) Edit(content []byte, ext string) ([]byte, error) {
	if !e.isInteractive() {
		return nil, ErrNotInteractive
	}

	argv, err := shell.Fields(e.Command, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing editor command %q: %w", e.Command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}

	f, err := os.CreateTemp("", "ztask-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}

	args := append(argv[1:len(argv):len(argv)], path)
	cmd := exec.Command(argv[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("editor %s exited with status %d", argv[0], exitErr.ExitCode())
		}
		return nil, fmt.Errorf("running editor %s: %w", argv[0], err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading edited file: %w", err)
	}
	return edited, nil
}
