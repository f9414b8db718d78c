package cli

import (
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/ztask/pkg/models"
)

var completeCmd = &cobra.Command{
	Use:     "complete [task-id...]",
	Aliases: []string{"done"},
	Short:   "Mark tasks completed",
	Long: `Mark tasks completed. Tasks blocked only by completed tasks return to the
backlog. Without ids, complete the most urgent active task.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := requireStore()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			args = activeTarget(st, "complete")
		}
		n, err := applyEach(args, st.Complete)
		if err != nil {
			return err
		}
		if unblocked := st.UnblockTasks(); unblocked > 0 {
			Logger.Info("unblocked tasks", "count", unblocked)
		}
		printCount(cmd.OutOrStdout(), n, "updated")
		return nil
	},
}

func init() {
	completeCmd.ValidArgsFunction = completeTaskIDs(models.StatusCompleted)
	rootCmd.AddCommand(completeCmd)
}
