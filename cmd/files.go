package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/litscout/litscout/internal/auth"
	"github.com/litscout/litscout/internal/config"
	"github.com/litscout/litscout/internal/library"
)

var (
	filesSource  string
	filesGlob    string
	screenReason string
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Browse and screen the project's downloaded files",
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List downloaded files grouped by source",
	RunE:  runFilesList,
}

var filesIncludeCmd = &cobra.Command{
	Use:   "include <path>",
	Short: "Include an article in the review, with a reason",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesInclude,
}

var filesExcludeCmd = &cobra.Command{
	Use:   "exclude <path>",
	Short: "Exclude an article from the review, with a reason",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesExclude,
}

var filesUndoCmd = &cobra.Command{
	Use:   "undo <path>",
	Short: "Reverse an include/exclude decision",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesUndo,
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete a file from the project",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesDelete,
}

var filesMetadataCmd = &cobra.Command{
	Use:   "metadata <path>",
	Short: "Show the metadata sidecar of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesMetadata,
}

var filesDownloadCmd = &cobra.Command{
	Use:   "download <path>",
	Short: "Print a download URL for a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesDownload,
}

func init() {
	rootCmd.AddCommand(filesCmd)
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesIncludeCmd)
	filesCmd.AddCommand(filesExcludeCmd)
	filesCmd.AddCommand(filesUndoCmd)
	filesCmd.AddCommand(filesDeleteCmd)
	filesCmd.AddCommand(filesMetadataCmd)
	filesCmd.AddCommand(filesDownloadCmd)

	filesListCmd.Flags().StringVarP(&filesSource, "source", "s", "", "only one source group (PubMed, Google Scholar, CSV, Images, Included, Excluded)")
	filesListCmd.Flags().StringVarP(&filesGlob, "glob", "g", "", "filter paths by glob pattern")
	filesIncludeCmd.Flags().StringVarP(&screenReason, "reason", "r", "", "why the article is included (prompted when omitted)")
	filesExcludeCmd.Flags().StringVarP(&screenReason, "reason", "r", "", "why the article is excluded (prompted when omitted)")
}

// resolveReason returns the --reason flag, prompting when it was omitted.
// A screening decision without a reason is rejected before any network call.
func resolveReason() (string, error) {
	if screenReason != "" {
		return screenReason, nil
	}
	prompt := promptui.Prompt{
		Label: "Reason",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("a reason is required")
			}
			return nil
		},
	}
	return prompt.Run()
}

// filesSetup is the shared preamble of every files subcommand.
func filesSetup() (*config.Config, *auth.Session, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, "", err
	}
	session, err := newSession()
	if err != nil {
		return nil, nil, "", err
	}
	if err := requireAuth(session); err != nil {
		return nil, nil, "", err
	}
	project, err := resolveProject(cfg)
	if err != nil {
		return nil, nil, "", err
	}
	return cfg, session, project, nil
}

func runFilesList(cmd *cobra.Command, args []string) error {
	cfg, session, project, err := filesSetup()
	if err != nil {
		return err
	}

	paths, err := newClient(cfg, session).ListFiles(context.Background(), project)
	if err != nil {
		return err
	}
	collection := library.FromListing(paths)

	if filesGlob != "" {
		records, err := collection.Glob(filesGlob)
		if err != nil {
			return fmt.Errorf("bad glob pattern: %w", err)
		}
		for _, r := range records {
			fmt.Printf("%-16s %s\n", r.Source, r.Path)
		}
		return nil
	}

	categories := library.Categories
	if filesSource != "" {
		categories = []library.Category{library.Category(filesSource)}
	}
	for _, category := range categories {
		records := collection.BySource(category)
		if len(records) == 0 {
			continue
		}
		fmt.Printf("%s (%d):\n", category, len(records))
		for _, r := range records {
			fmt.Printf("  %-40s %s\n", r.Name, r.Path)
		}
	}
	return nil
}

func runFilesInclude(cmd *cobra.Command, args []string) error {
	cfg, session, project, err := filesSetup()
	if err != nil {
		return err
	}
	reason, err := resolveReason()
	if err != nil {
		return err
	}
	if err := newClient(cfg, session).IncludeFile(context.Background(), project, args[0], reason); err != nil {
		return err
	}
	newNotifier().Success("included %s", library.DisplayName(args[0]))
	return nil
}

func runFilesExclude(cmd *cobra.Command, args []string) error {
	cfg, session, project, err := filesSetup()
	if err != nil {
		return err
	}
	reason, err := resolveReason()
	if err != nil {
		return err
	}
	if err := newClient(cfg, session).ExcludeFile(context.Background(), project, args[0], reason); err != nil {
		return err
	}
	newNotifier().Success("excluded %s", library.DisplayName(args[0]))
	return nil
}

func runFilesUndo(cmd *cobra.Command, args []string) error {
	cfg, session, _, err := filesSetup()
	if err != nil {
		return err
	}
	if err := newClient(cfg, session).UndoFile(context.Background(), args[0]); err != nil {
		return err
	}
	newNotifier().Success("undid decision on %s", library.DisplayName(args[0]))
	return nil
}

func runFilesDelete(cmd *cobra.Command, args []string) error {
	cfg, session, _, err := filesSetup()
	if err != nil {
		return err
	}
	if err := newClient(cfg, session).DeleteFile(context.Background(), args[0]); err != nil {
		return err
	}
	newNotifier().Success("deleted %s", library.DisplayName(args[0]))
	return nil
}

func runFilesMetadata(cmd *cobra.Command, args []string) error {
	cfg, session, _, err := filesSetup()
	if err != nil {
		return err
	}

	record := library.Record{Path: args[0], Source: library.Classify(args[0])}
	content, err := newClient(cfg, session).ViewMetadata(context.Background(), record)
	if err != nil {
		return err
	}
	fmt.Println(content)
	return nil
}

func runFilesDownload(cmd *cobra.Command, args []string) error {
	cfg, session, _, err := filesSetup()
	if err != nil {
		return err
	}

	url, err := newClient(cfg, session).DownloadURL(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}
