package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litscout/litscout/internal/history"
)

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recent article searches",
	RunE:  runRecentList,
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete recorded searches",
	Long:  `Deletes recorded searches for the selected project, or all projects when none is selected.`,
	RunE:  runRecentClear,
}

var recentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one recorded search by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecentDelete,
}

func init() {
	rootCmd.AddCommand(recentCmd)
	recentCmd.AddCommand(recentClearCmd, recentDeleteCmd)
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "l", 20, "searches to show")
}

func recentStore() (*history.Store, error) {
	path, err := history.DefaultPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

func runRecentList(cmd *cobra.Command, args []string) error {
	store, err := recentStore()
	if err != nil {
		return fmt.Errorf("opening search history: %w", err)
	}
	defer store.Close()

	searches, err := store.List(projectFlag, recentLimit)
	if err != nil {
		return err
	}
	if len(searches) == 0 {
		fmt.Println("No recorded searches.")
		return nil
	}
	for _, s := range searches {
		fmt.Printf("%s  %-16s %-8s %-40s %d ok / %d failed\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Project, s.Source, strings.Join(s.Terms, " "),
			s.SuccessCount, s.ErrorCount)
		if verbose {
			fmt.Printf("  id: %s\n", s.ID)
		}
	}
	return nil
}

func runRecentClear(cmd *cobra.Command, args []string) error {
	store, err := recentStore()
	if err != nil {
		return fmt.Errorf("opening search history: %w", err)
	}
	defer store.Close()

	if err := store.Clear(projectFlag); err != nil {
		return err
	}
	if projectFlag != "" {
		newNotifier().Success("cleared searches for %s", projectFlag)
	} else {
		newNotifier().Success("cleared all recorded searches")
	}
	return nil
}

func runRecentDelete(cmd *cobra.Command, args []string) error {
	store, err := recentStore()
	if err != nil {
		return fmt.Errorf("opening search history: %w", err)
	}
	defer store.Close()

	if err := store.Delete(args[0]); err != nil {
		return err
	}
	newNotifier().Success("deleted search %s", args[0])
	return nil
}
