package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewHeirs, "heirs"},
		{ViewDocuments, "documents"},
		{ViewDocDetails, "doc_details"},
		{ViewIngest, "ingest"},
		{ViewSettings, "settings"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for v := ViewMenu; v <= ViewHelp; v++ {
		name := v.String()
		assert.False(t, seen[name], "duplicate view name %s", name)
		seen[name] = true
	}
}

func TestReportLoaded(t *testing.T) {
	report := &domain.AnalysisReport{PrimaryEstate: "Ahmed"}

	msg := ReportLoaded{Report: report}
	require.NotNil(t, msg.Report)
	assert.Equal(t, "Ahmed", msg.Report.PrimaryEstate)
	assert.NoError(t, msg.Err)

	failed := ReportLoaded{Err: errors.New("x")}
	assert.Nil(t, failed.Report)
	assert.Error(t, failed.Err)
}

func TestDocumentRemoved(t *testing.T) {
	msg := DocumentRemoved{DocumentID: "doc-1", Err: domain.ErrNotFound}

	assert.Equal(t, "doc-1", msg.DocumentID)
	assert.ErrorIs(t, msg.Err, domain.ErrNotFound)
}

func TestIngestMessages(t *testing.T) {
	progress := IngestProgressed{Progress: driving.IngestProgress{Current: 1, Total: 2, Path: "a.pdf", Done: true}}
	assert.Equal(t, "a.pdf", progress.Progress.Path)
	assert.True(t, progress.Progress.Done)

	finished := IngestFinished{Report: &driving.IngestReport{Documents: []domain.Document{{ID: "d"}}}}
	assert.Equal(t, 1, finished.Report.Succeeded())
	assert.Equal(t, 0, finished.Report.Failed())
}
