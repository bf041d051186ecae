package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driven"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
	"github.com/custodia-labs/tarika/internal/core/succession"
	"github.com/custodia-labs/tarika/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService recomputes heir authorization from a store snapshot.
type AnalysisService struct {
	docStore driven.DocumentStore
	settings driving.SettingsService
	now      func() time.Time
}

// NewAnalysisService creates a new analysis service.
// settings may be nil, in which case reports are rendered in English.
func NewAnalysisService(docStore driven.DocumentStore, settings driving.SettingsService) *AnalysisService {
	return &AnalysisService{
		docStore: docStore,
		settings: settings,
		now:      time.Now,
	}
}

// Analyse runs the inference using the configured report language.
func (s *AnalysisService) Analyse(ctx context.Context) (*domain.AnalysisReport, error) {
	lang := domain.LanguageEnglish
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil && settings.Report.Language.IsValid() {
			lang = settings.Report.Language
		}
	}
	return s.AnalyseIn(ctx, lang)
}

// AnalyseIn runs the inference with wording in lang.
func (s *AnalysisService) AnalyseIn(ctx context.Context, lang domain.Language) (*domain.AnalysisReport, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if !lang.IsValid() {
		return nil, fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidInput, lang)
	}

	docs, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot documents: %w", err)
	}

	logger.Section("Analysis")
	logger.Debug("Documents in snapshot: %d", len(docs))
	logger.Debug("Language: %s", lang)

	engine := succession.New(succession.WithPhrasebook(succession.PhrasebookFor(lang)))
	result := engine.Infer(docs)

	for _, rejected := range result.Rejected {
		logger.Warn("%v", rejected)
	}
	logger.Debug("Primary estate: %q", result.PrimaryEstate)
	logger.Debug("Heir records: %d", len(result.Records))

	return &domain.AnalysisReport{
		PrimaryEstate: result.PrimaryEstate,
		Heirs:         result.Records,
		Rejected:      result.Rejected,
		DocumentCount: len(docs),
		Language:      lang,
		GeneratedAt:   s.now(),
	}, nil
}
