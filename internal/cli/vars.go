package cli

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/valter-silva-au/ztask/internal/core"
	"github.com/valter-silva-au/ztask/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	Config    *models.Config
	ConfigMgr core.ConfigurationManager

	// OpenStore opens the task store at path. The CLI opens at most one store
	// per invocation and saves it when the command finishes.
	OpenStore func(path string) (*core.TaskStore, error)

	Logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "ztask",
		Level:  log.WarnLevel,
	})
)

// now is the wall clock used for rendering and cron schedules.
var now = time.Now
