package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/ztask/pkg/models"
)

var listStatuses []string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all tasks grouped by status",
	Long: `List tasks grouped into active, backlog, blocked, sleeping and completed
sections, most urgent first within each section.

Use --status (repeatable) to limit the listing, and -v for the detailed view.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var statuses []models.TaskStatus
		for _, s := range listStatuses {
			status, err := models.ParseTaskStatus(s)
			if err != nil {
				return err
			}
			statuses = append(statuses, status)
		}

		st, err := requireStore()
		if err != nil {
			return err
		}

		tasks := st.Tasks(statuses...)
		newRenderer(cmd.OutOrStdout()).list(tasks, verbose > 0)
		if verbose > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d task(s) found\n", len(tasks))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [task-id...]",
	Short: "Show tasks, the current active task by default",
	Long: `Show the given tasks. Without ids, show the most urgent active task; when
nothing is active, the top backlog task is started first.`,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	st, err := requireStore()
	if err != nil {
		return err
	}
	r := newRenderer(cmd.OutOrStdout())

	if len(args) == 0 {
		t, ok := st.Next(models.StatusActive)
		if !ok {
			if _, err := startDefault(st); err != nil {
				return report(err)
			}
			if t, ok = st.Next(models.StatusActive); !ok {
				return nil
			}
		}
		r.show(t, verbose > 0)
		return nil
	}

	for _, id := range args {
		t, err := st.Get(id)
		if err != nil {
			if err := report(err); err != nil {
				return err
			}
			continue
		}
		r.show(t, verbose > 0)
	}
	return nil
}

func init() {
	listCmd.Flags().StringSliceVar(&listStatuses, "status", nil, "only list tasks with this status (repeatable)")
	_ = listCmd.RegisterFlagCompletionFunc("status", completeStatuses)
	showCmd.ValidArgsFunction = completeTaskIDs()

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
