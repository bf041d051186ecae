package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// MockAnalysisService implements driving.AnalysisService for testing.
type MockAnalysisService struct {
	AnalyseFunc   func(ctx context.Context) (*domain.AnalysisReport, error)
	AnalyseInFunc func(ctx context.Context, lang domain.Language) (*domain.AnalysisReport, error)
}

func (m *MockAnalysisService) Analyse(ctx context.Context) (*domain.AnalysisReport, error) {
	if m.AnalyseFunc != nil {
		return m.AnalyseFunc(ctx)
	}
	return &domain.AnalysisReport{Language: domain.LanguageEnglish}, nil
}

func (m *MockAnalysisService) AnalyseIn(ctx context.Context, lang domain.Language) (*domain.AnalysisReport, error) {
	if m.AnalyseInFunc != nil {
		return m.AnalyseInFunc(ctx, lang)
	}
	return &domain.AnalysisReport{Language: lang}, nil
}

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	TimelineFunc func(ctx context.Context) ([]domain.Document, error)
	RemoveFunc   func(ctx context.Context, documentID string) error
}

func (m *MockDocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return m.Timeline(ctx)
}

func (m *MockDocumentService) Timeline(ctx context.Context) ([]domain.Document, error) {
	if m.TimelineFunc != nil {
		return m.TimelineFunc(ctx)
	}
	return []domain.Document{}, nil
}

func (m *MockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (m *MockDocumentService) Add(_ context.Context, doc domain.Document) (*domain.Document, error) {
	return &doc, nil
}

func (m *MockDocumentService) Remove(ctx context.Context, documentID string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, documentID)
	}
	return nil
}

// MockIngestService implements driving.IngestService for testing.
type MockIngestService struct{}

func (m *MockIngestService) Ingest(
	_ context.Context, paths []string, _ func(driving.IngestProgress),
) (*driving.IngestReport, error) {
	return &driving.IngestReport{}, nil
}

func validPorts() *Ports {
	return NewPorts(&MockAnalysisService{}, &MockDocumentService{})
}

func TestNewPorts(t *testing.T) {
	analysis := &MockAnalysisService{}
	document := &MockDocumentService{}

	ports := NewPorts(analysis, document)

	require.NotNil(t, ports)
	assert.Equal(t, analysis, ports.Analysis)
	assert.Equal(t, document, ports.Document)
	assert.Nil(t, ports.Ingest)
	assert.Nil(t, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"valid", validPorts(), nil},
		{"with optional ports", &Ports{
			Analysis: &MockAnalysisService{},
			Document: &MockDocumentService{},
			Ingest:   &MockIngestService{},
		}, nil},
		{"missing analysis", &Ports{Document: &MockDocumentService{}}, ErrMissingAnalysisService},
		{"missing document", &Ports{Analysis: &MockAnalysisService{}}, ErrMissingDocumentService},
		{"empty", &Ports{}, ErrMissingAnalysisService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
