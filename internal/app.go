// Package internal provides the App struct that wires the ztask components
// together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/valter-silva-au/ztask/internal/cli"
	"github.com/valter-silva-au/ztask/internal/core"
	"github.com/valter-silva-au/ztask/internal/integration"
	"github.com/valter-silva-au/ztask/internal/storage"
	"github.com/valter-silva-au/ztask/pkg/models"
)

// App holds the service dependencies of ztask.
type App struct {
	// Home is the directory holding config.yaml.
	Home string

	ConfigMgr core.ConfigurationManager
	Config    *models.Config

	Logger *log.Logger
	Editor core.Editor
}

// NewApp loads the configuration from home and wires the CLI.
func NewApp(home string) (*App, error) {
	app := &App{Home: home}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(home)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Logging and editor ---
	app.Logger = cli.Logger
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		app.Logger.SetLevel(level)
	}
	app.Editor = integration.NewExternalEditor(cfg.Editor)

	// --- Wire CLI ---
	cli.Config = cfg
	cli.ConfigMgr = app.ConfigMgr
	cli.OpenStore = app.OpenStore

	return app, nil
}

// OpenStore opens the task store at path after expanding ~ and environment
// variables. The parent directory is created on first use.
func (a *App) OpenStore(path string) (*core.TaskStore, error) {
	expanded, err := integration.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := integration.EnsureParentDir(expanded); err != nil {
		return nil, err
	}

	return core.OpenTaskStore(storage.NewTaskFile(expanded),
		core.WithEditor(a.Editor),
		core.WithLogger(a.Logger),
		core.WithMinPrefixLength(a.Config.MinPrefixLength),
		core.WithDefaults(a.Config.DefaultPriority, a.Config.DefaultCategory),
	)
}

// ResolveHome returns $ZTASK_HOME, or ~/.ztask when it is unset.
func ResolveHome() string {
	if home := os.Getenv("ZTASK_HOME"); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".ztask"
	}
	return filepath.Join(userHome, ".ztask")
}
