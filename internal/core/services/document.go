package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driven"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the working set of extracted documents.
type DocumentService struct {
	docStore driven.DocumentStore
	now      func() time.Time
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		now:      time.Now,
	}
}

// List returns all documents in ingestion order.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.ListDocuments(ctx)
}

// Timeline returns all documents ordered by issue date, oldest first.
func (s *DocumentService) Timeline(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	SortTimeline(docs)
	return docs, nil
}

// SortTimeline orders docs by issue date, oldest first, in place.
// Equal dates keep their relative order; unparseable dates go last.
func SortTimeline(docs []domain.Document) {
	type entry struct {
		doc  domain.Document
		date time.Time
		ok   bool
	}

	entries := make([]entry, len(docs))
	for i := range docs {
		t, err := docs[i].ParsedIssueDate()
		entries[i] = entry{doc: docs[i], date: t, ok: err == nil}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.ok && b.ok:
			return a.date.Before(b.date)
		case a.ok:
			return true
		default:
			return false
		}
	})

	for i := range entries {
		docs[i] = entries[i].doc
	}
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.GetDocument(ctx, documentID)
}

// Add stores an already-structured document.
func (s *DocumentService) Add(ctx context.Context, doc domain.Document) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}

	doc.ID = strings.TrimSpace(doc.ID)
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	} else if _, err := s.docStore.GetDocument(ctx, doc.ID); err == nil {
		return nil, fmt.Errorf("%w: document %s", domain.ErrAlreadyExists, doc.ID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check document %s: %w", doc.ID, err)
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now()
	}

	if err := s.docStore.SaveDocument(ctx, &doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return &doc, nil
}

// Remove deletes a document.
func (s *DocumentService) Remove(ctx context.Context, documentID string) error {
	if s.docStore == nil {
		return domain.ErrNotImplemented
	}
	return s.docStore.DeleteDocument(ctx, documentID)
}
