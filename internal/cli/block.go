package cli

import (
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/ztask/pkg/models"
)

var blockCmd = &cobra.Command{
	Use:   "block <task-id> <blocker-id...>",
	Short: "Block a task on other tasks",
	Long: `Block the first task on each of the following tasks. It returns to the
backlog once every blocker is completed or deleted.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := requireStore()
		if err != nil {
			return err
		}
		blockee := args[0]
		n, err := applyEach(args[1:], func(blocker string) (int, error) {
			return st.Block(blockee, blocker)
		})
		if err != nil {
			return err
		}
		printCount(cmd.OutOrStdout(), n, "updated")
		return nil
	},
}

func init() {
	blockCmd.ValidArgsFunction = completeTaskIDs(models.StatusCompleted)
	rootCmd.AddCommand(blockCmd)
}
