package driving

import (
	"context"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

// DocumentService manages the working set of extracted documents.
type DocumentService interface {
	// List returns all documents in ingestion order.
	List(ctx context.Context) ([]domain.Document, error)

	// Timeline returns all documents ordered by issue date, oldest first.
	// Documents with an unparseable date come last, in ingestion order.
	Timeline(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// Add stores an already-structured document.
	// An ID and ingestion time are assigned when missing.
	Add(ctx context.Context, doc domain.Document) (*domain.Document, error)

	// Remove deletes a document. The next analysis no longer sees it.
	Remove(ctx context.Context, documentID string) error
}
