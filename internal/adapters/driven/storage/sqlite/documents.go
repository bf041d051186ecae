package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores or replaces a document with its heirs and principals.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, doc_type, issue_date, deceased_name, agent_name, file_name, mime_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			doc_type = excluded.doc_type,
			issue_date = excluded.issue_date,
			deceased_name = excluded.deceased_name,
			agent_name = excluded.agent_name,
			file_name = excluded.file_name,
			mime_type = excluded.mime_type,
			created_at = excluded.created_at
	`, doc.ID, string(doc.Type), doc.IssueDate, doc.DeceasedName, doc.AgentName,
		doc.FileName, doc.MimeType, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM heirs WHERE document_id = ?", doc.ID); err != nil {
		return fmt.Errorf("clearing heirs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM principals WHERE document_id = ?", doc.ID); err != nil {
		return fmt.Errorf("clearing principals: %w", err)
	}

	for i, heir := range doc.Heirs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO heirs (document_id, position, name, relation, id_no) VALUES (?, ?, ?, ?, ?)
		`, doc.ID, i, heir.Name, heir.Relation, heir.IDNo)
		if err != nil {
			return fmt.Errorf("saving heir %d: %w", i+1, err)
		}
	}
	for i, name := range doc.Principals {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO principals (document_id, position, name) VALUES (?, ?, ?)
		`, doc.ID, i, name)
		if err != nil {
			return fmt.Errorf("saving principal %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, doc_type, issue_date, deceased_name, agent_name, file_name, mime_type, created_at
		FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	byID := map[string]*domain.Document{doc.ID: doc}
	if err := s.loadChildren(ctx, byID, "WHERE document_id = ?", id); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteDocument removes a document. Heirs and principals cascade.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListDocuments returns every document in ingestion order.
func (s *documentStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, doc_type, issue_date, deceased_name, agent_name, file_name, mime_type, created_at
		FROM documents ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document //nolint:prealloc // size unknown from query
	byID := make(map[string]*domain.Document)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		byID[doc.ID] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	if err := s.loadChildren(ctx, byID, ""); err != nil {
		return nil, err
	}

	result := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		result = append(result, *doc)
	}
	return result, nil
}

// CountDocuments returns the number of stored documents.
func (s *documentStore) CountDocuments(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// loadChildren attaches heirs and principals to the documents in byID.
// where filters both child tables and takes args.
func (s *documentStore) loadChildren(ctx context.Context, byID map[string]*domain.Document, where string, args ...any) error {
	if len(byID) == 0 {
		return nil
	}

	heirRows, err := s.store.db.QueryContext(ctx,
		"SELECT document_id, name, relation, id_no FROM heirs "+where+" ORDER BY document_id, position", args...)
	if err != nil {
		return fmt.Errorf("querying heirs: %w", err)
	}
	defer heirRows.Close()
	for heirRows.Next() {
		var docID string
		var heir domain.HeirEntry
		if err := heirRows.Scan(&docID, &heir.Name, &heir.Relation, &heir.IDNo); err != nil {
			return fmt.Errorf("scanning heir: %w", err)
		}
		if doc, ok := byID[docID]; ok {
			doc.Heirs = append(doc.Heirs, heir)
		}
	}
	if err := heirRows.Err(); err != nil {
		return fmt.Errorf("iterating heirs: %w", err)
	}

	principalRows, err := s.store.db.QueryContext(ctx,
		"SELECT document_id, name FROM principals "+where+" ORDER BY document_id, position", args...)
	if err != nil {
		return fmt.Errorf("querying principals: %w", err)
	}
	defer principalRows.Close()
	for principalRows.Next() {
		var docID, name string
		if err := principalRows.Scan(&docID, &name); err != nil {
			return fmt.Errorf("scanning principal: %w", err)
		}
		if doc, ok := byID[docID]; ok {
			doc.Principals = append(doc.Principals, name)
		}
	}
	if err := principalRows.Err(); err != nil {
		return fmt.Errorf("iterating principals: %w", err)
	}

	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var docType string
	var createdAt sql.NullTime
	err := row.Scan(&doc.ID, &docType, &doc.IssueDate, &doc.DeceasedName, &doc.AgentName,
		&doc.FileName, &doc.MimeType, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	doc.Type = domain.DocumentType(docType)
	if createdAt.Valid {
		doc.CreatedAt = createdAt.Time
	}
	return &doc, nil
}
