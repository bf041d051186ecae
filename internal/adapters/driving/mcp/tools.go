package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// AnalyseInput is the input schema for the analyse_estate tool.
type AnalyseInput struct {
	Language string `json:"language,omitempty" jsonschema:"report language, en or ar (default from settings)"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Timeline bool `json:"timeline,omitempty" jsonschema:"order by issue date instead of ingestion order"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// RemoveDocumentInput is the input schema for the remove_document tool.
type RemoveDocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document to remove"`
}

// RemoveDocumentOutput is the output schema for the remove_document tool.
type RemoveDocumentOutput struct {
	DocumentID string `json:"document_id"`
	Removed    bool   `json:"removed"`
}

// IngestInput is the input schema for the ingest_files tool.
type IngestInput struct {
	Paths []string `json:"paths" jsonschema:"local files to extract, one document per file"`
}

// IngestFailureOutput is one file that could not be ingested.
type IngestFailureOutput struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// IngestOutput is the output schema for the ingest_files tool.
type IngestOutput struct {
	Documents []DocumentOutput      `json:"documents"`
	Failures  []IngestFailureOutput `json:"failures"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyse_estate",
		Description: "Report, for every heir, whether a power of attorney covers them and the legal wording a new one must carry",
	}, s.handleAnalyse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List ingested inheritance disclosures and powers of attorney",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_document",
		Description: "Remove a document from the working set so the next analysis ignores it",
	}, s.handleRemoveDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_files",
		Description: "Extract documents from local files and add them to the working set",
	}, s.handleIngest)
}

func (s *Server) handleAnalyse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyseInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	report, err := s.analyse(ctx, input.Language)
	if err != nil {
		return nil, ReportOutput{}, err
	}
	return nil, toReportOutput(report), nil
}

func (s *Server) analyse(ctx context.Context, lang string) (*domain.AnalysisReport, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return s.ports.Analysis.Analyse(ctx)
	}
	return s.ports.Analysis.AnalyseIn(ctx, domain.Language(lang))
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if s.ports.Document == nil {
		return nil, ListDocumentsOutput{}, ErrDocumentsUnavailable
	}

	list := s.ports.Document.List
	if input.Timeline {
		list = s.ports.Document.Timeline
	}
	docs, err := list(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	return nil, ListDocumentsOutput{
		Documents: toDocumentOutputs(docs),
		Count:     len(docs),
	}, nil
}

func (s *Server) handleRemoveDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemoveDocumentInput,
) (*mcp.CallToolResult, RemoveDocumentOutput, error) {
	if s.ports.Document == nil {
		return nil, RemoveDocumentOutput{}, ErrDocumentsUnavailable
	}
	id := strings.TrimSpace(input.DocumentID)
	if id == "" {
		return nil, RemoveDocumentOutput{}, errors.New("document_id is required")
	}

	if err := s.ports.Document.Remove(ctx, id); err != nil {
		return nil, RemoveDocumentOutput{}, err
	}
	return nil, RemoveDocumentOutput{DocumentID: id, Removed: true}, nil
}

func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Ingest == nil {
		return nil, IngestOutput{}, ErrIngestUnavailable
	}
	if len(input.Paths) == 0 {
		return nil, IngestOutput{}, errors.New("paths is required")
	}

	report, err := s.ports.Ingest.Ingest(ctx, input.Paths, nil)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, toIngestOutput(report), nil
}

func toIngestOutput(r *driving.IngestReport) IngestOutput {
	out := IngestOutput{
		Documents: toDocumentOutputs(r.Documents),
		Failures:  make([]IngestFailureOutput, len(r.Failures)),
	}
	for i, f := range r.Failures {
		out.Failures[i] = IngestFailureOutput{Path: f.Path}
		if f.Err != nil {
			out.Failures[i].Error = f.Err.Error()
		}
	}
	return out
}
