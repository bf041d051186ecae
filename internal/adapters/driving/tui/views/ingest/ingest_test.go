package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// MockIngestService implements driving.IngestService for testing.
type MockIngestService struct {
	IngestFunc func(ctx context.Context, paths []string, progress func(driving.IngestProgress)) (*driving.IngestReport, error)
}

func (m *MockIngestService) Ingest(
	ctx context.Context, paths []string, progress func(driving.IngestProgress),
) (*driving.IngestReport, error) {
	if m.IngestFunc != nil {
		return m.IngestFunc(ctx, paths, progress)
	}
	return &driving.IngestReport{}, nil
}

// fakeIngest stores every path except those named bad.pdf.
func fakeIngest(got *[]string) *MockIngestService {
	return &MockIngestService{
		IngestFunc: func(_ context.Context, paths []string, progress func(driving.IngestProgress)) (*driving.IngestReport, error) {
			*got = append(*got, paths...)
			report := &driving.IngestReport{}
			for i, p := range paths {
				progress(driving.IngestProgress{Current: i + 1, Total: len(paths), Path: p})
				done := driving.IngestProgress{Current: i + 1, Total: len(paths), Path: p, Done: true}
				if filepath.Base(p) == "bad.pdf" {
					done.Err = domain.ErrExtractionFailed
					report.Failures = append(report.Failures, driving.IngestFailure{Path: p, Err: done.Err})
				} else {
					doc := domain.Document{ID: "doc-" + filepath.Base(p), Type: domain.DocumentTypeInheritance}
					done.Document = &doc
					report.Documents = append(report.Documents, doc)
				}
				progress(done)
			}
			return report, nil
		},
	}
}

// drain feeds the view every event until the ingest finishes.
func drain(t *testing.T, view *View, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 100, "ingest did not finish")
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = view.Update(msg)
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.input)
	assert.False(t, view.Running())
}

func TestView_Ingest(t *testing.T) {
	var got []string
	view := NewView(nil, fakeIngest(&got))
	view.input.SetValue("hosr.pdf  bad.pdf")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, view.Running())

	drain(t, view, cmd)

	assert.False(t, view.Running())
	assert.Equal(t, []string{"hosr.pdf", "bad.pdf"}, got)
	require.NotNil(t, view.Report())
	assert.Equal(t, 1, view.Report().Succeeded())
	assert.Equal(t, 1, view.Report().Failed())
	assert.Len(t, view.progress, 2)
	assert.Empty(t, view.input.Value())

	out := view.View()
	assert.Contains(t, out, "[1/2] hosr.pdf: Inheritance disclosure doc-hosr.pdf")
	assert.Contains(t, out, "[2/2] bad.pdf: FAILED")
	assert.Contains(t, out, "Ingested 1 of 2 files (1 failed)")
}

func TestView_Ingest_ServiceError(t *testing.T) {
	mock := &MockIngestService{
		IngestFunc: func(context.Context, []string, func(driving.IngestProgress)) (*driving.IngestReport, error) {
			return nil, errors.New("store offline")
		},
	}
	view := NewView(nil, mock)
	view.input.SetValue("hosr.pdf")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(t, view, cmd)

	assert.EqualError(t, view.Err(), "store offline")
	assert.Equal(t, "hosr.pdf", view.input.Value())
	assert.Contains(t, view.View(), "Error: store offline")
}

func TestView_Ingest_NoPaths(t *testing.T) {
	view := NewView(nil, &MockIngestService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, view.Err(), ErrNoPaths)
	assert.False(t, view.Running())
}

func TestView_Ingest_NilService(t *testing.T) {
	view := NewView(nil, nil)
	view.input.SetValue("hosr.pdf")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Error(t, view.Err())
}

func TestView_KeysIgnoredWhileRunning(t *testing.T) {
	view := NewView(nil, nil)
	view.running = true

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
}

func TestView_Escape(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_TypingUpdatesInput(t *testing.T) {
	view := NewView(nil, nil)
	view.Init()

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.pdf")})

	assert.Equal(t, "a.pdf", view.input.Value())
}

func TestWaitForEvent(t *testing.T) {
	assert.Nil(t, waitForEvent(nil))

	events := make(chan tea.Msg, 1)
	events <- messages.IngestFinished{}
	close(events)

	cmd := waitForEvent(events)
	require.NotNil(t, cmd)
	assert.IsType(t, messages.IngestFinished{}, cmd())
	assert.Nil(t, cmd())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"~/scans/a.pdf", filepath.Join(home, "scans/a.pdf")},
		{"~", home},
		{"/abs/a.pdf", "/abs/a.pdf"},
		{"~other/a.pdf", "~other/a.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, expandHome(tt.in))
		})
	}
}

// blockingIngest waits until its context ends and reports the context error.
func blockingIngest(started chan<- struct{}, stopped chan<- error) *MockIngestService {
	return &MockIngestService{
		IngestFunc: func(ctx context.Context, _ []string, _ func(driving.IngestProgress)) (*driving.IngestReport, error) {
			close(started)
			<-ctx.Done()
			stopped <- ctx.Err()
			return nil, ctx.Err()
		},
	}
}

func startBlocking(t *testing.T, view *View, started <-chan struct{}) {
	t.Helper()
	view.input.SetValue("scan.pdf")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, view.Running())

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("ingest did not start")
	}
}

func waitStopped(t *testing.T, stopped <-chan error) {
	t.Helper()
	select {
	case err := <-stopped:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("ingest was not cancelled")
	}
}

func TestView_CancelStopsRunningIngest(t *testing.T) {
	started := make(chan struct{})
	stopped := make(chan error, 1)
	view := NewView(nil, blockingIngest(started, stopped))

	startBlocking(t, view, started)
	view.Cancel()

	waitStopped(t, stopped)
}

func TestView_ParentContextCancelsIngest(t *testing.T) {
	started := make(chan struct{})
	stopped := make(chan error, 1)
	view := NewView(nil, blockingIngest(started, stopped))
	ctx, cancel := context.WithCancel(context.Background())
	view.SetContext(ctx)

	startBlocking(t, view, started)
	cancel()

	waitStopped(t, stopped)
}

func TestView_CancelWhenIdle(t *testing.T) {
	view := NewView(nil, nil)

	assert.NotPanics(t, view.Cancel)
}
