package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/ztask/internal/core"
	ztaskmcp "github.com/valter-silva-au/ztask/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the ztask MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ztask MCP server on stdio",
	Long: `Start the ztask MCP server on stdio transport.

The server exposes the task list as MCP tools that AI assistants can call:
list_tasks, get_task, add_task, start_task, stop_task, complete_task,
sleep_task, block_task. Every call loads and saves the task file, so the
server can run alongside the CLI.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if OpenStore == nil {
			return fmt.Errorf("task store not initialized")
		}

		path := dbPath()
		srv := ztaskmcp.NewServer(func() (*core.TaskStore, error) {
			return OpenStore(path)
		}, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
