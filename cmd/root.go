package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	verbose     bool
	projectFlag string
)

var rootCmd = &cobra.Command{
	Use:   "litscout",
	Short: "Research article retrieval and screening from the terminal",
	Long: `LitScout is a client for the document-research backend: it retrieves
articles from PubMed and Google Scholar into per-project libraries,
screens them in and out with reasons, and runs the backend's PDF
extraction tools. A local dashboard and an MCP server expose the same
operations to browsers and AI agents.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".litscout.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "", "project name (overrides the config default)")
}
