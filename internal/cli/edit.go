package cli

import (
	"github.com/spf13/cobra"
)

var editDetails bool

var editCmd = &cobra.Command{
	Use:   "edit [task-id...]",
	Short: "Edit tasks in your editor",
	Long: `Open each task in your editor as commented JSON. Saving an unchanged file
leaves the task alone; invalid JSON is reported and the task is kept as it was.
With --details only the Markdown details are edited.

Without ids, edit the most urgent active task. The editor comes from the
config, $VISUAL or $EDITOR.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := requireStore()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			args = activeTarget(st, "edit")
		}
		op := st.Edit
		if editDetails {
			op = st.EditDetails
		}
		n, err := applyEach(args, op)
		if err != nil {
			return err
		}
		printCount(cmd.OutOrStdout(), n, "updated")
		return nil
	},
}

func init() {
	editCmd.Flags().BoolVarP(&editDetails, "details", "d", false, "edit only the task details")
	editCmd.ValidArgsFunction = completeTaskIDs()

	rootCmd.AddCommand(editCmd)
}
