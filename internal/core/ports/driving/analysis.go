package driving

import (
	"context"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

// AnalysisService recomputes heir authorization over the current document set.
// Every call starts from scratch; nothing is cached between calls.
type AnalysisService interface {
	// Analyse runs the inference using the configured report language.
	Analyse(ctx context.Context) (*domain.AnalysisReport, error)

	// AnalyseIn runs the inference with wording in lang.
	AnalyseIn(ctx context.Context, lang domain.Language) (*domain.AnalysisReport, error)
}
