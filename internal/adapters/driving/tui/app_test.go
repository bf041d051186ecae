package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(validPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(validPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	_, err := NewApp(&Ports{})
	assert.ErrorIs(t, err, ErrMissingAnalysisService)

	_, err = NewApp(nil)
	assert.ErrorIs(t, err, ErrMissingAnalysisService)
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 50, app.height)
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_CtrlC(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_Quit(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// cancellableIngest blocks until its context ends.
type cancellableIngest struct {
	started chan struct{}
	stopped chan error
}

func (c *cancellableIngest) Ingest(
	ctx context.Context, _ []string, _ func(driving.IngestProgress),
) (*driving.IngestReport, error) {
	close(c.started)
	<-ctx.Done()
	c.stopped <- ctx.Err()
	return nil, ctx.Err()
}

func TestApp_QuitCancelsIngest(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"quit message", messages.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &cancellableIngest{started: make(chan struct{}), stopped: make(chan error, 1)}
			ports := validPorts()
			ports.Ingest = svc
			app, err := NewApp(ports)
			require.NoError(t, err)
			app.SetDimensions(100, 40)

			app.Update(messages.ViewChanged{View: messages.ViewIngest})
			for _, r := range "scan.pdf" {
				app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
			}
			app.Update(tea.KeyMsg{Type: tea.KeyEnter})

			select {
			case <-svc.started:
			case <-time.After(time.Second):
				t.Fatal("ingest did not start")
			}

			_, cmd := app.Update(tt.msg)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())

			select {
			case err := <-svc.stopped:
				assert.ErrorIs(t, err, context.Canceled)
			case <-time.After(time.Second):
				t.Fatal("quitting did not cancel the ingest")
			}
		})
	}
}

func TestApp_MenuOpensHeirs(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewHeirs, changed.View)
}

func TestApp_Update_ViewChanged_InitialisesViews(t *testing.T) {
	tests := []struct {
		view    messages.ViewType
		wantCmd bool
	}{
		{messages.ViewHeirs, true},
		{messages.ViewDocuments, true},
		{messages.ViewIngest, true},
		{messages.ViewSettings, true},
		{messages.ViewMenu, false},
		{messages.ViewHelp, false},
		{messages.ViewDocDetails, false},
	}

	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			app := newTestApp(t)

			_, cmd := app.Update(messages.ViewChanged{View: tt.view})

			assert.Equal(t, tt.view, app.CurrentView())
			if tt.wantCmd {
				assert.NotNil(t, cmd)
			} else {
				assert.Nil(t, cmd)
			}
		})
	}
}

func TestApp_HeirsFlow(t *testing.T) {
	report := &domain.AnalysisReport{
		PrimaryEstate: "Ahmed",
		Language:      domain.LanguageEnglish,
		Heirs: []domain.HeirAuthorization{
			{HeirName: "Fatima", DeceasedName: "Ahmed", IsPrimaryEstate: true, IsAuthorized: true},
		},
	}
	ports := validPorts()
	ports.Analysis = &MockAnalysisService{
		AnalyseFunc: func(context.Context) (*domain.AnalysisReport, error) { return report, nil },
	}
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(120, 40)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewHeirs})
	require.NotNil(t, cmd)
	app.Update(cmd())

	out := app.View()
	assert.Contains(t, out, "Primary estate: Ahmed")
	assert.Contains(t, out, "Fatima")
}

func TestApp_Update_ReportLoaded_Error(t *testing.T) {
	app := newTestApp(t)

	app.Update(messages.ReportLoaded{Err: errors.New("failed")})

	assert.EqualError(t, app.Err(), "failed")
}

func TestApp_DocumentsFlow(t *testing.T) {
	var removed string
	ports := validPorts()
	ports.Document = &MockDocumentService{
		TimelineFunc: func(context.Context) ([]domain.Document, error) {
			return []domain.Document{
				{ID: "hosr-1", Type: domain.DocumentTypeInheritance, IssueDate: "2020-01-01", DeceasedName: "Ahmed"},
			}, nil
		},
		RemoveFunc: func(_ context.Context, id string) error {
			removed = id
			return nil
		},
	}
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewDocuments})
	app.Update(cmd())
	assert.Contains(t, app.View(), "Documents (1)")

	// enter opens the action menu, enter again shows details
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewDocDetails, app.CurrentView())
	assert.Contains(t, app.View(), "hosr-1")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app.Update(cmd())
	assert.Equal(t, messages.ViewDocuments, app.CurrentView())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd())
	assert.Equal(t, "hosr-1", removed)
	assert.NotNil(t, cmd, "removal reloads the timeline")
}

func TestApp_Update_IngestMessages(t *testing.T) {
	app := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewIngest})

	app.Update(messages.IngestFinished{Report: &driving.IngestReport{
		Documents: []domain.Document{{ID: "doc-1"}},
	}})

	require.NotNil(t, app.ingestView.Report())
	assert.Contains(t, app.View(), "Ingested 1 of 1 files")
}

func TestApp_Update_SettingsMessages(t *testing.T) {
	app := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewSettings})

	app.Update(messages.SettingsLoaded{Err: errors.New("no settings")})

	assert.Contains(t, app.View(), "no settings")
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewDocDetails})

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.Contains(t, app.View(), "boom")
}

func TestApp_HelpView(t *testing.T) {
	app := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	out := app.View()
	assert.Contains(t, out, "Help")
	assert.Contains(t, out, "must attend in person")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_View_Menu(t *testing.T) {
	app := newTestApp(t)

	assert.Contains(t, app.View(), "Tarika")
}
