package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/litscout/litscout/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing project, file, and retrieval tools for AI agents like Claude Code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		session, err := newSession()
		if err != nil {
			return err
		}
		if !session.Authenticated() {
			// Tools still register; each call reports the login hint.
			fmt.Fprintln(os.Stderr, "Warning: not logged in, tools will fail until `litscout auth login` runs")
		}

		client := newClient(cfg, session)
		client.ShowProgress = false

		historyStore := openHistory()
		if historyStore != nil {
			defer historyStore.Close()
		}

		mcpserver.Version = Version
		fmt.Fprintf(os.Stderr, "litscout MCP server started on stdio (api=%s)\n", cfg.APIURL)

		srv := mcpserver.NewServer(client, historyStore)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
