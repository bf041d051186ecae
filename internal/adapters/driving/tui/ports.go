// Package tui provides an interactive terminal user interface for tarika.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis computes the heir authorization report.
	Analysis driving.AnalysisService

	// Document manages the working set of documents.
	Document driving.DocumentService

	// Ingest extracts documents from files. Optional.
	Ingest driving.IngestService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(analysis driving.AnalysisService, document driving.DocumentService) *Ports {
	return &Ports{
		Analysis: analysis,
		Document: document,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
