// Package cli implements the tarika command line interface.
// Commands are package-level cobra commands registered in init; the
// composition root injects services with SetServices before Execute.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tarika/internal/core/ports/driving"
	"github.com/custodia-labs/tarika/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options holds the global flags.
type Options struct {
	// Verbose enables debug logging on stderr.
	Verbose bool

	// DataDir overrides the document database directory.
	DataDir string

	// Memory keeps documents in memory for this run only.
	Memory bool
}

// Services are the driving ports the commands call.
type Services struct {
	Document driving.DocumentService
	Ingest   driving.IngestService
	Analysis driving.AnalysisService
	Settings driving.SettingsService
}

var (
	options     Options
	initializer func(Options) error

	documentService driving.DocumentService
	ingestService   driving.IngestService
	analysisService driving.AnalysisService
	settingsService driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "tarika",
	Short: "Review heir authorization across inheritance disclosures and powers of attorney",
	Long: `Tarika reads inheritance disclosures (HOSR) and powers of attorney (POA),
works out the primary estate, and reports for every heir whether a power of
attorney already covers them, who their agent is, and the legal wording a
power of attorney for them must carry.

Scanned instruments are read by the configured LLM provider; structured
records (JSON, YAML, TOML) are read directly.

Run 'tarika tui' for the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(options.Verbose)
		if initializer != nil {
			return initializer(options)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&options.Verbose, "verbose", "v", false, "Print debug logs to stderr")
	flags.StringVar(&options.DataDir, "data-dir", "", "Document database directory (default ~/.tarika/data)")
	flags.BoolVar(&options.Memory, "memory", false, "Keep documents in memory for this run only")
}

// SetVersion sets the version reported by 'tarika version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetInitializer registers the function that builds services once flags are parsed.
func SetInitializer(fn func(Options) error) {
	initializer = fn
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	documentService = s.Document
	ingestService = s.Ingest
	analysisService = s.Analysis
	settingsService = s.Settings
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
