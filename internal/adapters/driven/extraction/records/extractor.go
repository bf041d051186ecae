package records

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads one structured record per file.
type Extractor struct{}

// New creates a structured record extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name identifies the extractor.
func (e *Extractor) Name() string {
	return "records"
}

// FormatFor picks the record format from the file extension, falling back
// to the MIME type.
func FormatFor(fileName, mimeType string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	}

	mt := strings.ToLower(mimeType)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch mt {
	case "application/json":
		return FormatJSON, true
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, true
	case "application/toml", "text/toml":
		return FormatTOML, true
	}
	return "", false
}

// Supports reports whether input looks like a structured record file.
func (e *Extractor) Supports(input driven.ExtractionInput) bool {
	_, ok := FormatFor(input.FileName, input.MimeType)
	return ok
}

// Extract decodes the single record in input.
func (e *Extractor) Extract(_ context.Context, input driven.ExtractionInput) (*domain.Document, error) {
	format, ok := FormatFor(input.FileName, input.MimeType)
	if !ok {
		return nil, fmt.Errorf("%s: %w", input.FileName, domain.ErrUnsupportedFile)
	}

	recs, err := DecodeAll(input.Content, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, input.FileName, err)
	}
	if len(recs) != 1 {
		return nil, fmt.Errorf("%w: %s holds %d records, want 1 (use 'tarika document add' for batches)",
			domain.ErrExtractionFailed, input.FileName, len(recs))
	}

	doc := recs[0].Document()
	return &doc, nil
}
