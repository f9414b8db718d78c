package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/ztask/pkg/models"
)

// completeTaskIDs returns a completion function that lists task IDs,
// optionally filtered to exclude certain statuses.
func completeTaskIDs(excludeStatuses ...models.TaskStatus) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if OpenStore == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		// The store is never closed here so completion does not write the file.
		st, err := OpenStore(dbPath())
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		exclude := make(map[models.TaskStatus]bool)
		for _, s := range excludeStatuses {
			exclude[s] = true
		}

		prefix := strings.ToLower(toComplete)
		var ids []string
		for _, task := range st.Tasks() {
			if exclude[task.Status] {
				continue
			}
			if strings.HasPrefix(task.ID, prefix) {
				ids = append(ids, task.ID+"\t"+string(task.Status)+": "+task.Summary)
			}
		}

		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeStatuses completes task status names.
func completeStatuses(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	statuses := models.AllStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completePriorities completes priority values, 1 being the most urgent.
func completePriorities(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for p := models.MinPriority; p <= models.MaxPriority; p++ {
		desc := ""
		switch p {
		case models.MinPriority:
			desc = "\tmost urgent"
		case models.DefaultPriority:
			desc = "\tdefault"
		case models.MaxPriority:
			desc = "\tleast urgent"
		}
		out = append(out, strconv.Itoa(p)+desc)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
