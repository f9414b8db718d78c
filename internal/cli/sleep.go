package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/ztask/internal/core"
	"github.com/valter-silva-au/ztask/pkg/models"
)

var (
	sleepDuration string
	sleepUntil    string
)

var sleepCmd = &cobra.Command{
	Use:   "sleep [task-id...] (--duration <d> | --until <cron>)",
	Short: "Put tasks to sleep",
	Long: `Put tasks to sleep. Sleeping tasks return to the backlog when they wake.
Without ids, the most urgent active task is put to sleep.

Durations are numbers with units s, m, h, d or w, e.g. "3h", "2m 10s", "1d".
--until takes a five-field cron expression and wakes the task at its next
activation, e.g. "0 9 * * 1" for next Monday at 09:00.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (sleepDuration == "") == (sleepUntil == "") {
			return fmt.Errorf("exactly one of --duration or --until is required")
		}

		var op func(st *core.TaskStore, id string) (int, error)
		if sleepUntil != "" {
			wake, err := core.NextWake(sleepUntil, now())
			if err != nil {
				return err
			}
			op = func(st *core.TaskStore, id string) (int, error) { return st.SuspendUntil(id, wake) }
		} else {
			if _, err := core.ParseDuration(sleepDuration); err != nil {
				return err
			}
			op = func(st *core.TaskStore, id string) (int, error) { return st.Suspend(id, sleepDuration) }
		}

		st, err := requireStore()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			args = activeTarget(st, "sleep")
		}
		n, err := applyEach(args, func(id string) (int, error) { return op(st, id) })
		if err != nil {
			return err
		}
		printCount(cmd.OutOrStdout(), n, "suspended")
		return nil
	},
}

func init() {
	sleepCmd.Flags().StringVarP(&sleepDuration, "duration", "d", "", "how long to sleep, e.g. 3h or \"2m 10s\"")
	sleepCmd.Flags().StringVar(&sleepUntil, "until", "", "cron expression for the wake time")
	sleepCmd.ValidArgsFunction = completeTaskIDs(models.StatusCompleted)

	rootCmd.AddCommand(sleepCmd)
}
