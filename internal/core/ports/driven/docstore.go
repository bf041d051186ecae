package driven

import (
	"context"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

// DocumentStore persists extracted documents.
// Backed by SQLite for durable sessions and by memory for throwaway ones.
type DocumentStore interface {
	// SaveDocument stores or replaces a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// DeleteDocument removes a document.
	// Returns domain.ErrNotFound if it does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns a snapshot of every stored document in ingestion order.
	// The returned slice is owned by the caller.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)
}
