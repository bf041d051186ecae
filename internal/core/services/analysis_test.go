package services

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tarika/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/succession"
	"github.com/custodia-labs/tarika/internal/logger"
)

// seedEstate stores a disclosure, a power of attorney and one malformed document.
func seedEstate(t *testing.T, store *memory.DocumentStore) {
	t.Helper()
	ctx := context.Background()
	for _, d := range []domain.Document{
		{
			ID:         "poa-1",
			Type:       domain.DocumentTypePowerOfAttorney,
			IssueDate:  "2023-02-01",
			AgentName:  "Khalid",
			Principals: []string{"Sara Ahmed"},
		},
		{
			ID:           "hosr-1",
			Type:         domain.DocumentTypeInheritance,
			IssueDate:    "2023-01-01",
			DeceasedName: "Ahmed",
			Heirs: []domain.HeirEntry{
				{Name: "Sara Ahmed", Relation: "daughter"},
				{Name: "Omar Ahmed", Relation: "son"},
			},
		},
		{
			ID:        "bad-1",
			Type:      domain.DocumentTypeInheritance,
			IssueDate: "someday",
			FileName:  "blurry.jpg",
		},
	} {
		d := d
		require.NoError(t, store.SaveDocument(ctx, &d))
	}
}

// captureLog routes verbose logs into a buffer for the test's duration.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})
	return &buf
}

func TestAnalysisService_NilStore(t *testing.T) {
	_, err := NewAnalysisService(nil, nil).Analyse(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestAnalysisService_Analyse(t *testing.T) {
	buf := captureLog(t)
	store := memory.NewDocumentStore()
	seedEstate(t, store)

	svc := NewAnalysisService(store, nil)
	fixed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	report, err := svc.Analyse(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Ahmed", report.PrimaryEstate)
	assert.Equal(t, 3, report.DocumentCount)
	assert.Equal(t, domain.LanguageEnglish, report.Language)
	assert.Equal(t, fixed, report.GeneratedAt)

	require.Len(t, report.Heirs, 2)
	sara := report.Heirs[0]
	assert.Equal(t, "Sara Ahmed", sara.HeirName)
	assert.True(t, sara.IsAuthorized)
	assert.Equal(t, "Khalid", sara.AgentDisplayName)
	assert.Equal(t, "poa-1", sara.MatchedPowerOfAttorneyID)

	omar := report.Heirs[1]
	assert.False(t, omar.IsAuthorized)
	assert.Equal(t, succession.EnglishPhrasebook().NoAgent, omar.AgentDisplayName)

	require.Len(t, report.Rejected, 1)
	assert.Equal(t, "bad-1", report.Rejected[0].DocumentID)
	assert.Contains(t, buf.String(), "[WARN] malformed document bad-1 (blurry.jpg)")
}

func TestAnalysisService_UsesConfiguredLanguage(t *testing.T) {
	store := memory.NewDocumentStore()
	seedEstate(t, store)

	config := memory.NewConfigStore()
	settings := NewSettingsService(config, nil)
	require.NoError(t, settings.SetLanguage(domain.LanguageArabic))

	report, err := NewAnalysisService(store, settings).Analyse(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.LanguageArabic, report.Language)
	arabic := succession.PhrasebookFor(domain.LanguageArabic)
	assert.Equal(t, arabic.NoAgent, report.Heirs[1].AgentDisplayName)
	assert.Contains(t, report.Heirs[0].RequiredLegalWording, "الوكالة")
	assert.Contains(t, report.Heirs[0].RequiredLegalWording, "Ahmed")
}

func TestAnalysisService_AnalyseIn(t *testing.T) {
	store := memory.NewDocumentStore()
	seedEstate(t, store)
	svc := NewAnalysisService(store, nil)

	_, err := svc.AnalyseIn(context.Background(), domain.Language("fr"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	en, err := svc.AnalyseIn(context.Background(), domain.LanguageEnglish)
	require.NoError(t, err)
	ar, err := svc.AnalyseIn(context.Background(), domain.LanguageArabic)
	require.NoError(t, err)

	require.Len(t, ar.Heirs, len(en.Heirs))
	assert.NotEqual(t, en.Heirs[0].RequiredLegalWording, ar.Heirs[0].RequiredLegalWording)
}

func TestAnalysisService_RecomputesAfterRemoval(t *testing.T) {
	store := memory.NewDocumentStore()
	seedEstate(t, store)
	svc := NewAnalysisService(store, nil)
	ctx := context.Background()

	before, err := svc.Analyse(ctx)
	require.NoError(t, err)
	require.True(t, before.Heirs[0].IsAuthorized)

	require.NoError(t, store.DeleteDocument(ctx, "poa-1"))

	after, err := svc.Analyse(ctx)
	require.NoError(t, err)
	assert.False(t, after.Heirs[0].IsAuthorized)
	assert.Empty(t, after.Heirs[0].MatchedPowerOfAttorneyID)
}

func TestAnalysisService_EmptyStore(t *testing.T) {
	report, err := NewAnalysisService(memory.NewDocumentStore(), nil).Analyse(context.Background())
	require.NoError(t, err)
	assert.True(t, report.IsEmpty())
	assert.Empty(t, report.PrimaryEstate)
}
