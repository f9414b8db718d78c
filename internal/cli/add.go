package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/ztask/internal/core"
	"github.com/valter-silva-au/ztask/pkg/models"
)

var (
	addInterrupt bool
	addEdit      bool
	addCategory  string
	addPriority  int
)

var addCmd = &cobra.Command{
	Use:   "add [name...]",
	Short: "Add one or more tasks",
	Long: `Add tasks to the backlog.

Several single-word names are joined into one summary, so quotes are optional:
  ztask add write release notes

When any name contains a space, each name becomes its own task:
  ztask add "write release notes" "tag v1.2"

Without names a placeholder task is created. Use --interrupt to start the
task immediately and --edit to open each new task in your editor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addPriority != 0 && (addPriority < models.MinPriority || addPriority > models.MaxPriority) {
			return fmt.Errorf("priority %d is invalid, must be between %d and %d", addPriority, models.MinPriority, models.MaxPriority)
		}

		st, err := requireStore()
		if err != nil {
			return err
		}

		var ids []string
		for _, summary := range addSummaries(args, st.Len()) {
			id, err := st.Add(summary, addCategory, addInterrupt)
			if err != nil {
				return fmt.Errorf("adding task: %w", err)
			}
			if addPriority != 0 {
				if _, err := st.SetPriority(id, addPriority); err != nil {
					return fmt.Errorf("setting priority: %w", err)
				}
			}
			ids = append(ids, id)
		}

		r := newRenderer(cmd.OutOrStdout())
		for _, id := range ids {
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", r.shortID(id))
		}

		if addEdit {
			n, err := applyEach(ids, st.Edit)
			if err != nil {
				return err
			}
			printCount(cmd.OutOrStdout(), n, "edited")
		}
		return nil
	},
}

// addSummaries turns the add arguments into task summaries. count is the
// number of tasks already stored.
func addSummaries(names []string, count int) []string {
	if len(names) == 0 {
		return []string{fmt.Sprintf("New task #%d", count+1)}
	}
	if len(names) > 1 {
		for _, name := range names {
			if strings.Contains(name, " ") {
				return names
			}
		}
		return []string{strings.Join(names, " ")}
	}
	return names
}

func init() {
	addCmd.Flags().BoolVarP(&addInterrupt, "interrupt", "i", false, "start the new task immediately")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "open each new task in the editor")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", fmt.Sprintf("task category (default %q)", models.DefaultCategory))
	addCmd.Flags().IntVarP(&addPriority, "priority", "p", 0, fmt.Sprintf("task priority %d-%d (default %d)", models.MinPriority, models.MaxPriority, core.DefaultConfig().DefaultPriority))
	_ = addCmd.RegisterFlagCompletionFunc("priority", completePriorities)

	rootCmd.AddCommand(addCmd)
}
