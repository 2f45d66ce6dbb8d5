package cmd

import (
	"github.com/spf13/cobra"

	"github.com/litscout/litscout/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure litscout with an interactive wizard",
	Long:  `Runs an interactive wizard for the backend URL, default project, and dashboard port, and writes a .litscout.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
