package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	cfg, err := cm.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := DefaultConfig()
	if *cfg != *want {
		t.Fatalf("LoadConfig = %+v, want %+v", cfg, want)
	}
	if err := cm.ValidateConfig(cfg); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `
db: /tmp/tasks.json
min_prefix_length: 4
default_priority: 3
default_category: deep
editor: nano -w
log_level: debug
id_width: 12
`)

	cfg, err := NewConfigurationManager(dir).LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBPath != "/tmp/tasks.json" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.MinPrefixLength != 4 {
		t.Errorf("MinPrefixLength = %d, want 4", cfg.MinPrefixLength)
	}
	if cfg.DefaultPriority != 3 || cfg.DefaultCategory != "deep" {
		t.Errorf("defaults = %d/%q, want 3/deep", cfg.DefaultPriority, cfg.DefaultCategory)
	}
	if cfg.Editor != "nano -w" || cfg.LogLevel != "debug" || cfg.IDWidth != 12 {
		t.Errorf("got editor %q level %q width %d", cfg.Editor, cfg.LogLevel, cfg.IDWidth)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "default_category: errands\n")

	cfg, err := NewConfigurationManager(dir).LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultCategory != "errands" {
		t.Errorf("DefaultCategory = %q, want errands", cfg.DefaultCategory)
	}
	if cfg.DefaultPriority != 5 || cfg.IDWidth != 9 {
		t.Errorf("expected untouched defaults, got priority %d width %d", cfg.DefaultPriority, cfg.IDWidth)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "db: /from/file.json\n")
	t.Setenv("ZTASK_DB", "/from/env.json")
	t.Setenv("ZTASK_MIN_PREFIX_LENGTH", "6")

	cfg, err := NewConfigurationManager(dir).LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/from/env.json" {
		t.Errorf("DBPath = %q, want env value", cfg.DBPath)
	}
	if cfg.MinPrefixLength != 6 {
		t.Errorf("MinPrefixLength = %d, want 6", cfg.MinPrefixLength)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "db: [unclosed\n")

	if _, err := NewConfigurationManager(dir).LoadConfig(); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestValidateConfig(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	if err := cm.ValidateConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}

	cfg := DefaultConfig()
	cfg.DBPath = " "
	cfg.MinPrefixLength = -1
	cfg.DefaultPriority = 0
	cfg.LogLevel = "loud"
	cfg.IDWidth = 40

	err := cm.ValidateConfig(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"db", "min_prefix_length", "default_priority", "log_level", "id_width"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected error to mention %s, got:\n%v", field, err)
		}
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	home := filepath.Join(t.TempDir(), "ztask-home")
	cm := NewConfigurationManager(home)

	if err := cm.WriteDefaultConfig(); err != nil {
		t.Fatalf("WriteDefaultConfig: %v", err)
	}
	if cm.ConfigPath() != filepath.Join(home, ConfigFileName) {
		t.Errorf("ConfigPath = %q", cm.ConfigPath())
	}

	cfg, err := cm.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("written config loads as %+v", cfg)
	}

	if err := cm.WriteDefaultConfig(); err == nil {
		t.Fatal("expected error when config already exists")
	}
}
