// Package ingest provides the file ingestion view for the TUI.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// ErrNoPaths is returned when ingest is submitted with an empty input.
var ErrNoPaths = errors.New("enter at least one file path")

// View accepts file paths and runs them through the ingest service.
type View struct {
	styles  *styles.Styles
	service driving.IngestService
	input   *input.PathInput

	ctx      context.Context
	cancel   context.CancelFunc
	events   chan tea.Msg
	running  bool
	progress []driving.IngestProgress
	report   *driving.IngestReport
	err      error
	width    int
	height   int
}

// NewView creates a new ingest view.
func NewView(s *styles.Styles, service driving.IngestService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		service: service,
		input:   input.NewPathInput(s, "Files"),
		ctx:     context.Background(),
	}
}

// SetContext sets the parent context of every ingest run.
func (v *View) SetContext(ctx context.Context) {
	if ctx != nil {
		v.ctx = ctx
	}
}

// Cancel stops a running ingest. Files already stored stay stored.
func (v *View) Cancel() {
	if v.cancel != nil {
		v.cancel()
	}
}

// Init focuses the path input.
func (v *View) Init() tea.Cmd {
	return v.input.Focus()
}

// Update handles messages for the ingest view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.IngestProgressed:
		if msg.Progress.Done {
			v.progress = append(v.progress, msg.Progress)
		}
		return v, waitForEvent(v.events)

	case messages.IngestFinished:
		v.Cancel()
		v.cancel = nil
		v.running = false
		v.events = nil
		v.report = msg.Report
		v.err = msg.Err
		if msg.Err == nil {
			v.input.Reset()
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.running {
		return v, nil
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "enter":
		return v, v.start()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// start launches the ingest in the background and returns a command
// that delivers its first event.
func (v *View) start() tea.Cmd {
	paths := v.input.Paths()
	if len(paths) == 0 {
		v.err = ErrNoPaths
		return nil
	}
	if v.service == nil {
		v.err = fmt.Errorf("ingest service not available")
		return nil
	}
	for i, p := range paths {
		paths[i] = expandHome(p)
	}

	v.running = true
	v.err = nil
	v.report = nil
	v.progress = nil
	v.events = make(chan tea.Msg, 16)

	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel

	go func(svc driving.IngestService, events chan<- tea.Msg) {
		defer close(events)
		defer cancel()
		// Nobody reads events once the run is cancelled.
		send := func(msg tea.Msg) {
			select {
			case events <- msg:
			case <-ctx.Done():
			}
		}
		report, err := svc.Ingest(ctx, paths, func(p driving.IngestProgress) {
			send(messages.IngestProgressed{Progress: p})
		})
		send(messages.IngestFinished{Report: report, Err: err})
	}(v.service, v.events)

	return waitForEvent(v.events)
}

// waitForEvent returns a command that blocks for the next ingest event.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// View renders the ingest view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Ingest"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Scanned instruments or structured record files, separated by spaces."))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	for _, p := range v.progress {
		name := filepath.Base(p.Path)
		line := fmt.Sprintf("[%d/%d] %s: ", p.Current, p.Total, name)
		switch {
		case p.Err != nil:
			b.WriteString(v.styles.Error.Render(line + "FAILED: " + p.Err.Error()))
		case p.Document != nil:
			b.WriteString(v.styles.Authorized.Render(line + p.Document.Type.Description() + " " + p.Document.ID))
		default:
			b.WriteString(v.styles.Normal.Render(line + "done"))
		}
		b.WriteString("\n")
	}

	switch {
	case v.running:
		b.WriteString(v.styles.Muted.Render("Ingesting..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	case v.report != nil:
		summary := fmt.Sprintf("Ingested %d of %d files", v.report.Succeeded(), v.report.Succeeded()+v.report.Failed())
		if v.report.Failed() > 0 {
			summary += fmt.Sprintf(" (%d failed)", v.report.Failed())
		}
		b.WriteString(v.styles.Subtitle.Render(summary))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] ingest  [esc] back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
}

// Running reports whether an ingest is in progress.
func (v *View) Running() bool {
	return v.running
}

// Report returns the last finished ingest report.
func (v *View) Report() *driving.IngestReport {
	return v.report
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
