package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// Persistent flags.
var (
	dbFlag  string
	verbose int
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "ztask",
	Short: "ztask - a small personal task tracker",
	Long: `ztask keeps a prioritized list of tasks in a single JSON file.

Tasks move between active, backlog, blocked, sleeping and completed. Blocked
tasks return to the backlog once their blockers are completed or deleted, and
sleeping tasks wake up on their own. Tasks are referenced by any unique
prefix of their id.

Run without a command to show the task you are working on.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		Logger.SetLevel(logLevel())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, nil)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ztask %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "task database file (default from config, $HOME/.ztask/taskdb.json)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity; shows detailed task views and operation counts")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

// logLevel is the configured level, lowered one step per -v.
func logLevel() log.Level {
	level := log.WarnLevel
	if Config != nil && Config.LogLevel != "" {
		if parsed, err := log.ParseLevel(Config.LogLevel); err == nil {
			level = parsed
		}
	}
	level -= log.Level(4 * verbose)
	if level < log.DebugLevel {
		level = log.DebugLevel
	}
	return level
}

// Execute runs the root command and saves the task store if one was opened.
func Execute() error {
	err := rootCmd.Execute()
	return errors.Join(err, closeStore())
}
