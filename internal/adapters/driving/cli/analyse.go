package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

var analyseCmd = &cobra.Command{
	Use:     "analyse",
	Aliases: []string{"analyze", "report"},
	Short:   "Report heir authorization",
	Long: `Recompute heir authorization over every ingested document.

For each heir of each inheritance disclosure the report shows whether a power
of attorney already names them, who acts for them, whether they must attend
in person, and the legal wording a new power of attorney must carry.
Malformed documents are listed and excluded.`,
	Args: cobra.NoArgs,
	RunE: runAnalyse,
}

var (
	analyseJSON bool
	analyseLang string
)

func init() {
	analyseCmd.Flags().BoolVar(&analyseJSON, "json", false, "Write the report as JSON")
	analyseCmd.Flags().StringVarP(&analyseLang, "lang", "l", "", "Report language: en or ar (default from settings)")
	rootCmd.AddCommand(analyseCmd)
}

func runAnalyse(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	ctx := context.Background()
	var (
		report *domain.AnalysisReport
		err    error
	)
	if analyseLang != "" {
		report, err = analysisService.AnalyseIn(ctx, domain.Language(strings.ToLower(analyseLang)))
	} else {
		report, err = analysisService.Analyse(ctx)
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyseJSON {
		return writeReportJSON(cmd.OutOrStdout(), report)
	}
	renderReport(cmd.OutOrStdout(), report)
	return nil
}
