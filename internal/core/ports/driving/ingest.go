package driving

import (
	"context"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

// IngestService turns files into stored documents.
type IngestService interface {
	// Ingest processes paths one at a time, in order.
	// A failure on one file is recorded in the report and the rest continue.
	// The returned error is non-nil only when the whole run could not proceed,
	// such as a cancelled context or a missing extractor.
	// progress may be nil.
	Ingest(ctx context.Context, paths []string, progress func(IngestProgress)) (*IngestReport, error)
}

// IngestProgress reports the state of one file in a batch.
type IngestProgress struct {
	// Current is the 1-based position of the file in the batch.
	Current int

	// Total is the number of files in the batch.
	Total int

	// Path is the file being processed.
	Path string

	// Done is false when the file starts and true when it finishes.
	Done bool

	// Document is the stored document, set when Done and successful.
	Document *domain.Document

	// Err is the failure, set when Done and unsuccessful.
	Err error
}

// IngestFailure records one file that could not be ingested.
type IngestFailure struct {
	// Path is the file that failed.
	Path string

	// Err is the reason.
	Err error
}

// IngestReport summarises a batch.
type IngestReport struct {
	// Documents are the documents stored, in batch order.
	Documents []domain.Document

	// Failures are the files that were skipped, in batch order.
	Failures []IngestFailure
}

// Succeeded returns the number of stored documents.
func (r *IngestReport) Succeeded() int {
	return len(r.Documents)
}

// Failed returns the number of skipped files.
func (r *IngestReport) Failed() int {
	return len(r.Failures)
}
