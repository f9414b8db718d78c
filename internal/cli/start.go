package cli

import (
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/ztask/pkg/models"
)

var startPick bool

var startCmd = &cobra.Command{
	Use:   "start [task-id...]",
	Short: "Make tasks active",
	Long: `Make the given tasks active. Without ids, start the top backlog task, but
only when no task is active yet. Use --pick to choose a task interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := requireStore()
		if err != nil {
			return err
		}

		ids := args
		if startPick {
			id, err := pickTask(st.Tasks(models.StatusBacklog, models.StatusBlocked, models.StatusSleeping), newRenderer(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			if id == "" {
				return nil
			}
			ids = []string{id}
		}

		var n int
		if len(ids) == 0 {
			n, err = startDefault(st)
		} else {
			n, err = applyEach(ids, st.Start)
		}
		if err != nil {
			return err
		}
		printCount(cmd.OutOrStdout(), n, "started")
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop [task-id...]",
	Short: "Move tasks back to the backlog",
	Long:  `Move the given tasks back to the backlog. Without ids, stop the most urgent active task.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := requireStore()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			args = activeTarget(st, "stop")
		}
		n, err := applyEach(args, st.Stop)
		if err != nil {
			return err
		}
		printCount(cmd.OutOrStdout(), n, "stopped")
		return nil
	},
}

func init() {
	startCmd.Flags().BoolVar(&startPick, "pick", false, "choose the task to start interactively")
	startCmd.ValidArgsFunction = completeTaskIDs(models.StatusActive, models.StatusCompleted)
	stopCmd.ValidArgsFunction = completeTaskIDs(models.StatusBacklog, models.StatusCompleted)

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
}
