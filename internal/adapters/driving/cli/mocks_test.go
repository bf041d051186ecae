package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/custodia-labs/tarika/internal/adapters/driving/inbox"
	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

var errService = errors.New("service unavailable")

// mockDocumentService implements driving.DocumentService.
type mockDocumentService struct {
	docs      []domain.Document
	err       error
	added     []domain.Document
	removed   []string
	timelined bool
	addFunc   func(doc domain.Document) (*domain.Document, error)
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocumentService) Timeline(_ context.Context) ([]domain.Document, error) {
	m.timelined = true
	return m.docs, m.err
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.docs {
		if m.docs[i].ID == id {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) Add(_ context.Context, doc domain.Document) (*domain.Document, error) {
	if m.addFunc != nil {
		return m.addFunc(doc)
	}
	if m.err != nil {
		return nil, m.err
	}
	if doc.ID == "" {
		doc.ID = "generated"
	}
	m.added = append(m.added, doc)
	return &doc, nil
}

func (m *mockDocumentService) Remove(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, id)
	return nil
}

// mockIngestService implements driving.IngestService.
type mockIngestService struct {
	paths []string
	err   error
	fail  map[string]bool
}

func (m *mockIngestService) Ingest(
	_ context.Context, paths []string, progress func(driving.IngestProgress),
) (*driving.IngestReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.paths = append(m.paths, paths...)
	report := &driving.IngestReport{}
	for i, p := range paths {
		done := driving.IngestProgress{Current: i + 1, Total: len(paths), Path: p, Done: true}
		if m.fail[p] {
			done.Err = domain.ErrExtractionFailed
			report.Failures = append(report.Failures, driving.IngestFailure{Path: p, Err: done.Err})
		} else {
			doc := domain.Document{ID: "doc-" + p, Type: domain.DocumentTypeInheritance}
			done.Document = &doc
			report.Documents = append(report.Documents, doc)
		}
		if progress != nil {
			progress(done)
		}
	}
	return report, nil
}

// mockAnalysisService implements driving.AnalysisService.
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

// mockSettingsService implements driving.SettingsService.
type mockSettingsService struct {
	settings    domain.AppSettings
	err         error
	validateErr error
	pingErr     error

	provider domain.AIProvider
	model    string
	apiKey   string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return m.err
}

func (m *mockSettingsService) SetLLMProvider(p domain.AIProvider, model, apiKey string) error {
	if m.err != nil {
		return m.err
	}
	m.provider, m.model, m.apiKey = p, model, apiKey
	m.settings.LLM = domain.LLMSettings{Provider: p, Model: model, APIKey: apiKey}
	return nil
}

func (m *mockSettingsService) SetLanguage(lang domain.Language) error {
	if !lang.IsValid() {
		return domain.ErrInvalidInput
	}
	m.settings.Report.Language = lang
	return m.err
}

func (m *mockSettingsService) SetRequestsPerMinute(n int) error {
	if n <= 0 {
		return domain.ErrInvalidInput
	}
	m.settings.Extraction.RequestsPerMinute = n
	return m.err
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) ValidateLLMConfig() error { return m.pingErr }

// withServices installs s for the duration of the test.
func withServices(t *testing.T, s Services) {
	t.Helper()
	old := Services{
		Document: documentService,
		Ingest:   ingestService,
		Analysis: analysisService,
		Settings: settingsService,
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(old) })
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores flag variables between executions.
func resetFlags() {
	listTimeline = false
	exportFormat = "yaml"
	ingestAnalyse = false
	analyseJSON = false
	analyseLang = ""
	watchExisting = false
	watchSettle = inbox.DefaultSettle
}

func sampleReport() *domain.AnalysisReport {
	return &domain.AnalysisReport{
		PrimaryEstate: "Ahmed",
		Language:      domain.LanguageEnglish,
		DocumentCount: 2,
		GeneratedAt:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Heirs: []domain.HeirAuthorization{
			{
				HeirName:                 "Fatima",
				Relation:                 "daughter",
				DeceasedName:             "Ahmed",
				SourceDocumentID:         "hosr-1",
				IsPrimaryEstate:          true,
				IsAuthorized:             true,
				MatchedPowerOfAttorneyID: "poa-1",
				AgentDisplayName:         "Khalid",
				RequiredLegalWording:     "as an heir of the late Ahmed",
			},
			{
				HeirName:             "Omar",
				DeceasedName:         "Sara",
				SourceDocumentID:     "hosr-2",
				AgentDisplayName:     "No agent",
				RequiredLegalWording: "as an heir of the late Sara, an heir of the late Ahmed",
			},
		},
	}
}

func sampleDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:           "hosr-1",
			Type:         domain.DocumentTypeInheritance,
			IssueDate:    "2020-01-10",
			DeceasedName: "Ahmed",
			Heirs:        []domain.HeirEntry{{Name: "Fatima", Relation: "daughter", IDNo: "784-1"}},
			FileName:     "hosr.pdf",
		},
		{
			ID:         "poa-1",
			Type:       domain.DocumentTypePowerOfAttorney,
			IssueDate:  "2021-03-02",
			AgentName:  "Khalid",
			Principals: []string{"Fatima"},
		},
	}
}
