package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litscout/litscout/internal/api"
)

var (
	termsArticleType string

	termsDeviceName string
	termsTechnique  string

	termsTestType      string
	termsTestName      string
	termsSampleType    string
	termsDiagTechnique string
)

var termsCmd = &cobra.Command{
	Use:   "terms <pdf>",
	Short: "Extract structured study terms from an article PDF",
	Long: `Uploads an article PDF and extracts the study terms relevant to the
chosen article type. Surgical-device articles need the device name and
technique; diagnostic articles need the test type, test name, sample
type, and technique.`,
	Example: `  litscout terms study.pdf --type device --device "Forceps X" --technique laparoscopic
  litscout terms study.pdf --type diagnostic --test-type serology --test-name ELISA --sample-type serum --diag-technique immunoassay`,
	Args: cobra.ExactArgs(1),
	RunE: runTerms,
}

func init() {
	rootCmd.AddCommand(termsCmd)
	termsCmd.Flags().StringVar(&termsArticleType, "type", "device", "article type: device or diagnostic")
	termsCmd.Flags().StringVar(&termsDeviceName, "device", "", "surgical device name (device articles)")
	termsCmd.Flags().StringVar(&termsTechnique, "technique", "", "surgical technique (device articles)")
	termsCmd.Flags().StringVar(&termsTestType, "test-type", "", "diagnostic test type")
	termsCmd.Flags().StringVar(&termsTestName, "test-name", "", "diagnostic test name")
	termsCmd.Flags().StringVar(&termsSampleType, "sample-type", "", "diagnostic sample type")
	termsCmd.Flags().StringVar(&termsDiagTechnique, "diag-technique", "", "diagnostic technique")
}

func runTerms(cmd *cobra.Command, args []string) error {
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

	req := api.TermExtractionRequest{
		FilePath:             args[0],
		SurgicalDeviceName:   termsDeviceName,
		EnterTechnique:       termsTechnique,
		DiagnosticTestType:   termsTestType,
		DiagnosticTestName:   termsTestName,
		DiagnosticSampleType: termsSampleType,
		DiagnosticTechnique:  termsDiagTechnique,
	}
	switch termsArticleType {
	case "device", "surgical-device":
		req.ArticleType = api.ArticleSurgicalDevice
	case "diagnostic":
		req.ArticleType = api.ArticleDiagnostic
	default:
		return fmt.Errorf("unknown article type %q: use device or diagnostic", termsArticleType)
	}

	client := newClient(cfg, session)
	terms, err := client.ExtractTerms(context.Background(), req)
	if err != nil {
		return err
	}

	for _, row := range terms.DisplayRows() {
		fmt.Printf("%-24s %s\n", row[0], row[1])
	}
	return nil
}
