package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var wordsCmd = &cobra.Command{
	Use:   "words <pdf-path>",
	Short: "List the most common words in a stored article",
	Long: `Analyses a PDF already stored in the project and prints its most
frequent meaningful words. The path is the storage path shown by
` + "`litscout files list`" + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)
}

func runWords(cmd *cobra.Command, args []string) error {
	cfg, session, project, err := filesSetup()
	if err != nil {
		return err
	}
	words, err := newClient(cfg, session).CommonWords(context.Background(), project, args[0])
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Println("No common words found.")
		return nil
	}
	fmt.Println(strings.Join(words, ", "))
	return nil
}
