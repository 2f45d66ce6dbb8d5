package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract images, tables, or both from an article PDF",
}

var extractImagesCmd = &cobra.Command{
	Use:   "images <pdf>",
	Short: "Extract figures from a PDF into the project",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtractImages,
}

var extractTablesCmd = &cobra.Command{
	Use:   "tables <pdf>",
	Short: "Extract tables from a PDF into a project CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtractTables,
}

var extractCombinedCmd = &cobra.Command{
	Use:   "combined <pdf>",
	Short: "Extract figures and tables in one pass",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtractCombined,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.AddCommand(extractImagesCmd, extractTablesCmd, extractCombinedCmd)
}

func runExtractImages(cmd *cobra.Command, args []string) error {
	cfg, session, project, err := filesSetup()
	if err != nil {
		return err
	}
	urls, err := newClient(cfg, session).ExtractImages(context.Background(), project, args[0])
	if err != nil {
		return err
	}
	notifier := newNotifier()
	notifier.Success("extracted %d images", len(urls))
	for _, u := range urls {
		fmt.Println(u)
	}
	return nil
}

func runExtractTables(cmd *cobra.Command, args []string) error {
	cfg, session, project, err := filesSetup()
	if err != nil {
		return err
	}
	if err := newClient(cfg, session).ExtractTables(context.Background(), project, args[0]); err != nil {
		return err
	}
	newNotifier().Success("tables extracted into the %s project CSV folder", project)
	return nil
}

func runExtractCombined(cmd *cobra.Command, args []string) error {
	cfg, session, project, err := filesSetup()
	if err != nil {
		return err
	}
	if err := newClient(cfg, session).ExtractCombined(context.Background(), project, args[0]); err != nil {
		return err
	}
	newNotifier().Success("combined extraction finished for %s", project)
	return nil
}
