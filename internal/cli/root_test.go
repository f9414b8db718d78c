package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/valter-silva-au/ztask/internal/core"
)

func TestSetVersionInfo(t *testing.T) {
	// Save originals.
	origVersion := appVersion
	origCommit := appCommit
	origDate := appDate
	defer func() {
		appVersion = origVersion
		appCommit = origCommit
		appDate = origDate
	}()

	SetVersionInfo("1.2.3", "abc1234", "2026-02-13")

	if appVersion != "1.2.3" {
		t.Errorf("appVersion = %q, want 1.2.3", appVersion)
	}
	if appCommit != "abc1234" {
		t.Errorf("appCommit = %q, want abc1234", appCommit)
	}
	if appDate != "2026-02-13" {
		t.Errorf("appDate = %q, want 2026-02-13", appDate)
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	setupCLI(t, nil)

	_, err := runCLI(t, "nonexistent-command")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExecute_VersionSubcommand(t *testing.T) {
	origVersion := appVersion
	origCommit := appCommit
	origDate := appDate
	defer func() {
		appVersion = origVersion
		appCommit = origCommit
		appDate = origDate
	}()
	SetVersionInfo("test-ver", "test-commit", "test-date")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"version"})

	if err := Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"ztask test-ver", "commit: test-commit", "built:  test-date"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output %q", want, out)
		}
	}
}

func TestLogLevel(t *testing.T) {
	origConfig := Config
	defer func() {
		Config = origConfig
		verbose = 0
	}()

	tests := []struct {
		configured string
		verbose    int
		want       log.Level
	}{
		{"", 0, log.WarnLevel},
		{"warn", 1, log.InfoLevel},
		{"warn", 2, log.DebugLevel},
		{"warn", 5, log.DebugLevel},
		{"error", 0, log.ErrorLevel},
		{"bogus", 0, log.WarnLevel},
	}
	for _, tt := range tests {
		cfg := core.DefaultConfig()
		cfg.LogLevel = tt.configured
		Config = cfg
		verbose = tt.verbose
		if got := logLevel(); got != tt.want {
			t.Errorf("logLevel(%q, -v x%d) = %v, want %v", tt.configured, tt.verbose, got, tt.want)
		}
	}
}

func TestDBPath(t *testing.T) {
	origConfig := Config
	defer func() {
		Config = origConfig
		dbFlag = ""
	}()

	Config = nil
	dbFlag = ""
	if got := dbPath(); got != core.DefaultConfig().DBPath {
		t.Errorf("expected default path, got %q", got)
	}

	Config = core.DefaultConfig()
	Config.DBPath = "/tmp/configured.json"
	if got := dbPath(); got != "/tmp/configured.json" {
		t.Errorf("expected configured path, got %q", got)
	}

	dbFlag = "/tmp/flag.json"
	if got := dbPath(); got != "/tmp/flag.json" {
		t.Errorf("expected --db path, got %q", got)
	}
}

func TestSleepHelp_DurationExamplesParse(t *testing.T) {
	var line string
	for _, l := range strings.Split(sleepCmd.Long, "\n") {
		if strings.HasPrefix(l, "Durations") {
			line = l
		}
	}
	if line == "" {
		t.Fatal("expected a durations line in sleep help")
	}
	parts := strings.Split(line, `"`)
	if len(parts) < 3 {
		t.Fatalf("expected quoted examples in %q", line)
	}
	for i := 1; i < len(parts); i += 2 {
		if _, err := core.ParseDuration(parts[i]); err != nil {
			t.Errorf("help example %q does not parse: %v", parts[i], err)
		}
	}
}
