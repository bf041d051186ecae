package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tarika/internal/adapters/driven/extraction/records"
	"github.com/custodia-labs/tarika/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage ingested documents",
	Long: `List, view, add, remove or export the documents the analysis runs over.

Removing a document changes the next analysis; documents are never edited in place.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [record-file]",
	Short: "Add structured records",
	Long: `Add every record in a JSON, YAML or TOML file without calling the LLM.

A file may hold one record or a list. TOML lists use [[documents]] tables.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentAdd,
}

var documentRemoveCmd = &cobra.Command{
	Use:     "remove [doc-id]",
	Aliases: []string{"rm"},
	Short:   "Remove a document",
	Args:    cobra.ExactArgs(1),
	RunE:    runDocumentRemove,
}

var documentExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export documents as structured records",
	Long:  `Write every document as a record list that 'tarika document add' reads back.`,
	Args:  cobra.NoArgs,
	RunE:  runDocumentExport,
}

var (
	listTimeline bool
	exportFormat string
)

func init() {
	documentListCmd.Flags().BoolVarP(&listTimeline, "timeline", "t", false, "Order by issue date instead of ingestion order")
	documentExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "Record format: json, yaml or toml")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	documentCmd.AddCommand(documentExportCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	list := documentService.List
	if listTimeline {
		list = documentService.Timeline
	}

	docs, err := list(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	for i := range docs {
		d := &docs[i]
		cmd.Printf("  %s\n", d.ID)
		cmd.Printf("    Type:   %s\n", d.Type.Description())
		cmd.Printf("    Issued: %s\n", orDash(d.IssueDate))
		switch {
		case d.IsInheritance():
			cmd.Printf("    Deceased: %s (%d heirs)\n", orDash(d.DeceasedName), len(d.Heirs))
		case d.IsPowerOfAttorney():
			cmd.Printf("    Agent: %s (%d principals)\n", orDash(d.AgentName), len(d.Principals))
		}
		if d.FileName != "" {
			cmd.Printf("    File:   %s\n", d.FileName)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Type:     %s\n", doc.Type.Description())
	cmd.Printf("  Issued:   %s\n", orDash(doc.IssueDate))
	if doc.FileName != "" {
		cmd.Printf("  File:     %s\n", doc.FileName)
	}
	if doc.MimeType != "" {
		cmd.Printf("  MIME:     %s\n", doc.MimeType)
	}
	if !doc.CreatedAt.IsZero() {
		cmd.Printf("  Ingested: %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	switch {
	case doc.IsInheritance():
		cmd.Printf("  Deceased: %s\n", orDash(doc.DeceasedName))
		cmd.Println("\n  Heirs:")
		for i, h := range doc.Heirs {
			cmd.Printf("    %d. %s  relation: %s  id: %s\n", i+1, h.Name, orDash(h.Relation), orDash(h.IDNo))
		}
	case doc.IsPowerOfAttorney():
		cmd.Printf("  Agent:    %s\n", orDash(doc.AgentName))
		cmd.Println("\n  Principals:")
		for i, p := range doc.Principals {
			cmd.Printf("    %d. %s\n", i+1, p)
		}
	}

	return nil
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	path := args[0]
	format, ok := records.FormatFor(path, "")
	if !ok {
		return fmt.Errorf("%s: %w: want a .json, .yaml, .yml or .toml file", path, domain.ErrUnsupportedFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	recs, err := records.DecodeAll(data, format)
	if err != nil {
		return fmt.Errorf("failed to read records from %s: %w", path, err)
	}

	ctx := context.Background()
	fileName := filepath.Base(path)
	added := 0
	for i := range recs {
		doc := recs[i].Document()
		doc.FileName = fileName
		doc.MimeType = mimeForFormat(format)

		stored, err := documentService.Add(ctx, doc)
		if err != nil {
			cmd.Printf("  record %d: %v\n", i+1, err)
			continue
		}
		added++
		cmd.Printf("  + %s (%s)\n", stored.ID, stored.Type.Description())
	}

	cmd.Printf("Added %d of %d records from %s\n", added, len(recs), fileName)
	if added == 0 {
		return errors.New("no records added")
	}
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Remove(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Removed document: %s\n", args[0])
	cmd.Println("Run 'tarika analyse' to see the updated report.")
	return nil
}

func runDocumentExport(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	format, err := records.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	docs, err := documentService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	recs := make([]records.Record, len(docs))
	for i := range docs {
		recs[i] = records.FromDocument(&docs[i])
	}

	out, err := records.EncodeAll(recs, format)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func mimeForFormat(f records.Format) string {
	switch f {
	case records.FormatJSON:
		return "application/json"
	case records.FormatYAML:
		return "application/yaml"
	case records.FormatTOML:
		return "application/toml"
	default:
		return ""
	}
}
