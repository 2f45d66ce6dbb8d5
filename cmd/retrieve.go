package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litscout/litscout/internal/api"
	"github.com/litscout/litscout/internal/config"
	"github.com/litscout/litscout/internal/history"
	"github.com/litscout/litscout/internal/library"
)

var (
	retrieveSource    string
	retrieveTerms     []string
	retrieveOperators []string
	retrieveCountry   string
	retrieveCohort    string
	retrieveMaxPDFs   int
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Retrieve articles from PubMed, Google Scholar, or both",
	Long: `Searches the chosen source and downloads matching article PDFs into
the project. Up to three terms can be joined with AND/OR operators;
each search retrieves at most 20 PDFs.`,
	Example: `  litscout retrieve -p kidney --source pubmed --term dialysis --term outcomes --operator AND
  litscout retrieve -p kidney --source both --term "renal failure" --max-pdfs 20`,
	RunE: runRetrieve,
}

func init() {
	rootCmd.AddCommand(retrieveCmd)
	retrieveCmd.Flags().StringVarP(&retrieveSource, "source", "s", "pubmed", "pubmed, scholar, or both")
	retrieveCmd.Flags().StringArrayVarP(&retrieveTerms, "term", "t", nil, "search term (repeat up to three times)")
	retrieveCmd.Flags().StringArrayVarP(&retrieveOperators, "operator", "o", nil, "operator joining terms (AND/OR)")
	retrieveCmd.Flags().StringVar(&retrieveCountry, "country", "", "restrict to a country")
	retrieveCmd.Flags().StringVar(&retrieveCohort, "cohort", "", "patient cohort")
	retrieveCmd.Flags().IntVarP(&retrieveMaxPDFs, "max-pdfs", "n", 10, "PDFs to retrieve (capped at 20)")
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := newSession()
	if err != nil {
		return err
	}
	if err := requireAuth(session); err != nil {
		return err
	}
	project, err := resolveProject(cfg)
	if err != nil {
		return err
	}
	source, err := config.ParseSource(retrieveSource)
	if err != nil {
		return err
	}

	notifier := newNotifier()
	req := api.RetrievalRequest{
		Project:       project,
		Country:       retrieveCountry,
		PatientCohort: retrieveCohort,
		Terms:         retrieveTerms,
		Operators:     retrieveOperators,
		MaxPDFs:       retrieveMaxPDFs,
	}
	if req.Clamp() {
		notifier.Error("max-pdfs capped at %d", api.MaxPDFs)
	}

	client := newClient(cfg, session)
	fmt.Printf("Searching %s for %v in %s...\n", source, req.Terms, project)

	result, err := client.RetrieveArticles(context.Background(), source, req)
	if err != nil {
		return err
	}

	if store := openHistory(); store != nil {
		defer store.Close()
		if _, herr := store.Record(history.Search{
			Project:      project,
			Source:       source,
			Terms:        req.Terms,
			Operators:    req.Operators,
			MaxPDFs:      req.MaxPDFs,
			SuccessCount: result.SuccessCount,
			ErrorCount:   result.ErrorCount,
		}); herr != nil {
			notifier.Error("recording search failed: %v", herr)
		}
	}

	notifier.Success("retrieved %d articles", result.SuccessCount)
	if result.ErrorCount > 0 {
		notifier.Error("%d articles failed to retrieve", result.ErrorCount)
	}

	// The search endpoint only reports counts; a follow-up listing shows
	// what actually landed in the project.
	paths, err := client.ListFiles(context.Background(), project)
	if err != nil {
		return fmt.Errorf("search finished but listing the project failed: %w", err)
	}
	collection := library.FromListing(paths)
	for _, category := range []library.Category{library.CategoryPubMed, library.CategoryScholar} {
		records := collection.BySource(category)
		if len(records) == 0 {
			continue
		}
		fmt.Printf("\n%s (%d):\n", category, len(records))
		for _, r := range records {
			fmt.Printf("  %s\n", r.Name)
		}
	}
	return nil
}
