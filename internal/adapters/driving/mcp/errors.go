// Package mcp provides an MCP (Model Context Protocol) server adapter for Tarika.
// It lets AI assistants read the heir authorization report and the working
// set of documents.
package mcp

import "errors"

var (
	// ErrMissingAnalysisService is returned when the analysis service is not provided.
	ErrMissingAnalysisService = errors.New("mcp: analysis service is required")

	// ErrDocumentsUnavailable is returned by document tools when no document service is wired.
	ErrDocumentsUnavailable = errors.New("mcp: document service not configured")

	// ErrIngestUnavailable is returned by the ingest tool when no ingest service is wired.
	ErrIngestUnavailable = errors.New("mcp: ingest service not configured")
)
