package extraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tarika/internal/adapters/driven/extraction/records"
	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driven"
)

// mockExtractor is a function-field fake.
type mockExtractor struct {
	name     string
	supports func(driven.ExtractionInput) bool
	extract  func(context.Context, driven.ExtractionInput) (*domain.Document, error)
	calls    int
}

func (m *mockExtractor) Name() string { return m.name }

func (m *mockExtractor) Supports(in driven.ExtractionInput) bool {
	if m.supports == nil {
		return false
	}
	return m.supports(in)
}

func (m *mockExtractor) Extract(ctx context.Context, in driven.ExtractionInput) (*domain.Document, error) {
	m.calls++
	if m.extract == nil {
		return &domain.Document{Type: domain.DocumentTypeInheritance}, nil
	}
	return m.extract(ctx, in)
}

func always(driven.ExtractionInput) bool { return true }

func TestRouter_FirstSupportingWins(t *testing.T) {
	first := &mockExtractor{name: "first", supports: always}
	second := &mockExtractor{name: "second", supports: always}
	r := NewRouter(first, nil, second)

	assert.Equal(t, []string{"first", "second"}, r.Names())

	_, err := r.Extract(context.Background(), driven.ExtractionInput{FileName: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestRouter_SkipsUnsupported(t *testing.T) {
	picky := &mockExtractor{name: "picky"}
	fallback := &mockExtractor{name: "fallback", supports: always}
	r := NewRouter(picky, fallback)

	require.True(t, r.Supports(driven.ExtractionInput{}))
	_, err := r.Extract(context.Background(), driven.ExtractionInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, picky.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestRouter_NothingSupports(t *testing.T) {
	r := NewRouter()
	in := driven.ExtractionInput{FileName: "notes.txt", MimeType: "text/plain"}

	assert.False(t, r.Supports(in))
	_, err := r.Extract(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
}

func TestRouter_WithRecordsExtractor(t *testing.T) {
	r := NewRouter(records.New())
	doc, err := r.Extract(context.Background(), driven.ExtractionInput{
		FileName: "hosr.yaml",
		Content:  []byte("docType: HOSR\nissueDate: \"2023-01-01\"\ndeceasedName: Ahmed\nheirs:\n  - name: Sara\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ahmed", doc.DeceasedName)
}
