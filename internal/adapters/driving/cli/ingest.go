package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [paths...]",
	Short: "Extract documents from files",
	Long: `Extract one document from each file and add it to the working set.

Scanned instruments (PDF, JPEG, PNG, WebP, HEIC) are read by the configured
LLM provider. Structured records (JSON, YAML, TOML) are read directly.
Directories are walked recursively; hidden files are skipped.

A file that cannot be extracted is reported and the rest continue.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

var ingestAnalyse bool

func init() {
	ingestCmd.Flags().BoolVarP(&ingestAnalyse, "analyse", "a", false, "Print the analysis report after ingesting")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		cmd.Println("No files to ingest.")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := ingestService.Ingest(ctx, paths, progressPrinter(cmd))
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("\nIngested %d of %d files", report.Succeeded(), len(paths))
	if report.Failed() > 0 {
		cmd.Printf(" (%d failed)", report.Failed())
	}
	cmd.Println()

	if ingestAnalyse {
		if analysisService == nil {
			return errors.New("analysis service not configured")
		}
		result, err := analysisService.Analyse(ctx)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		cmd.Println()
		renderReport(cmd.OutOrStdout(), result)
	}

	if report.Succeeded() == 0 {
		return errors.New("no documents ingested")
	}
	return nil
}

// progressPrinter prints one line per finished file.
func progressPrinter(cmd *cobra.Command) func(driving.IngestProgress) {
	return func(p driving.IngestProgress) {
		if !p.Done {
			return
		}
		name := filepath.Base(p.Path)
		if p.Err != nil {
			cmd.Printf("[%d/%d] %s: FAILED: %v\n", p.Current, p.Total, name, p.Err)
			return
		}
		if p.Document != nil {
			cmd.Printf("[%d/%d] %s: %s %s\n", p.Current, p.Total, name, p.Document.Type.Description(), p.Document.ID)
		}
	}
}

// expandPaths replaces directories with the files under them, in lexical order.
// Files named explicitly are kept even when hidden.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			// Missing files are reported per file by the ingest service.
			paths = append(paths, arg)
			continue
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			hidden := path != arg && strings.HasPrefix(d.Name(), ".")
			if d.IsDir() {
				if hidden {
					return filepath.SkipDir
				}
				return nil
			}
			if !hidden && d.Type().IsRegular() {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
	}
	return paths, nil
}
