package cli

import (
	"github.com/spf13/cobra"
)

var delCmd = &cobra.Command{
	Use:     "del [task-id...]",
	Aliases: []string{"rm"},
	Short:   "Delete tasks",
	Long:    `Delete the given tasks whatever their status. Without ids, delete the most urgent task.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := requireStore()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			if t, ok := st.Top(); ok {
				args = []string{t.ID}
			}
		}
		n, err := applyEach(args, st.Remove)
		if err != nil {
			return err
		}
		printCount(cmd.OutOrStdout(), n, "removed")
		return nil
	},
}

func init() {
	delCmd.ValidArgsFunction = completeTaskIDs()
	rootCmd.AddCommand(delCmd)
}
