package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrMalformedDocument indicates a document violates the record schema
	// and was excluded from the analysis.
	ErrMalformedDocument = errors.New("malformed document")

	// Extraction Errors.

	// ErrUnsupportedFile indicates no extractor accepts the file.
	ErrUnsupportedFile = errors.New("unsupported file")

	// ErrExtractionFailed indicates the extraction service returned no usable record.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Extraction of scanned instruments is disabled; structured records still work.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// MalformedDocumentError reports one document excluded from the analysis.
type MalformedDocumentError struct {
	// DocumentID identifies the offending document.
	DocumentID string `json:"document_id"`

	// FileName is the source file, when known.
	FileName string `json:"file_name,omitempty"`

	// Reason says which rule the document broke.
	Reason string `json:"reason"`
}

// Error implements error.
func (e *MalformedDocumentError) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("malformed document %s (%s): %s", e.DocumentID, e.FileName, e.Reason)
	}
	return fmt.Sprintf("malformed document %s: %s", e.DocumentID, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformedDocument.
func (e *MalformedDocumentError) Unwrap() error {
	return ErrMalformedDocument
}
