package mcp

import (
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls.
type Ports struct {
	// Analysis computes the heir authorization report.
	Analysis driving.AnalysisService

	// Document manages the working set. Optional.
	Document driving.DocumentService

	// Ingest extracts documents from files. Optional.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
