package driven

import (
	"context"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

// ExtractionInput is one raw file handed to an Extractor.
type ExtractionInput struct {
	// FileName is the base name of the file.
	FileName string

	// MimeType is the detected content type.
	MimeType string

	// Content is the raw file content.
	Content []byte
}

// Extractor converts a raw file into a structured Document.
// Implementations leave ID, FileName, MimeType and CreatedAt for the caller to set.
type Extractor interface {
	// Extract reads input and returns the document it describes.
	// Returns an error wrapping domain.ErrExtractionFailed when no usable
	// record can be produced.
	Extract(ctx context.Context, input ExtractionInput) (*domain.Document, error)

	// Supports reports whether this extractor can handle input.
	Supports(input ExtractionInput) bool

	// Name identifies the extractor in logs and reports.
	Name() string
}
