package mcp

import (
	"context"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	report  *domain.AnalysisReport
	err     error
	gotLang domain.Language
}

func (m *mockAnalysisService) Analyse(_ context.Context) (*domain.AnalysisReport, error) {
	return m.report, m.err
}

func (m *mockAnalysisService) AnalyseIn(_ context.Context, lang domain.Language) (*domain.AnalysisReport, error) {
	m.gotLang = lang
	return m.report, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	timeline  []domain.Document
	document  *domain.Document
	err       error
	removed   string
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Timeline(_ context.Context) ([]domain.Document, error) {
	if m.timeline != nil {
		return m.timeline, m.err
	}
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Add(_ context.Context, doc domain.Document) (*domain.Document, error) {
	return &doc, m.err
}

func (m *mockDocumentService) Remove(_ context.Context, id string) error {
	if m.err == nil {
		m.removed = id
	}
	return m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report *driving.IngestReport
	err    error
	paths  []string
}

func (m *mockIngestService) Ingest(
	_ context.Context,
	paths []string,
	_ func(driving.IngestProgress),
) (*driving.IngestReport, error) {
	m.paths = paths
	return m.report, m.err
}

// sampleReport is an estate with one authorized heir and one pending chain heir.
func sampleReport() *domain.AnalysisReport {
	return &domain.AnalysisReport{
		PrimaryEstate: "Ahmed",
		DocumentCount: 3,
		Language:      domain.LanguageEnglish,
		Heirs: []domain.HeirAuthorization{
			{
				HeirName:                 "Sara",
				Relation:                 "daughter",
				DeceasedName:             "Ahmed",
				SourceDocumentID:         "hosr-1",
				IsPrimaryEstate:          true,
				IsAuthorized:             true,
				MatchedPowerOfAttorneyID: "poa-1",
				AgentDisplayName:         "Khalid",
				RequiredLegalWording:     "heir of the late Ahmed",
			},
			{
				HeirName:             "Omar",
				DeceasedName:         "Fatima",
				SourceDocumentID:     "hosr-2",
				AgentDisplayName:     "No agent",
				RequiredLegalWording: "heir of the late Fatima, heir of the late Ahmed",
			},
		},
		Rejected: []*domain.MalformedDocumentError{
			{DocumentID: "bad-1", FileName: "blurry.jpg", Reason: "missing issue date"},
		},
	}
}
