// Package docdetails provides the document details view component for the TUI.
package docdetails

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tarika/internal/core/domain"
)

// View shows every extracted field of one document.
type View struct {
	styles *styles.Styles

	document     *domain.Document
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new document details view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
	}
}

// SetDocument sets the document to display.
func (v *View) SetDocument(doc domain.Document) {
	v.document = &doc
	v.scrollOffset = 0
	v.err = nil
}

// SetError sets an error to display.
func (v *View) SetError(err error) {
	v.err = err
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the document details view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	}

	return v, nil
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Title, separator, help and padding
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.buildContent()) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent builds the content lines for display.
func (v *View) buildContent() []string {
	doc := v.document
	if doc == nil {
		return nil
	}

	lines := []string{
		formatField("ID", doc.ID),
		formatField("Type", doc.Type.Description()),
		formatField("Issued", doc.IssueDate),
		formatField("File", doc.FileName),
		formatField("Mime", doc.MimeType),
	}
	if !doc.CreatedAt.IsZero() {
		lines = append(lines, formatField("Ingested", doc.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	if _, err := doc.ParsedIssueDate(); doc.Type.IsValid() && err != nil {
		lines = append(lines, formatField("Warning", "issue date does not parse; excluded from analysis"))
	}

	switch {
	case doc.IsInheritance():
		lines = append(lines, formatField("Deceased", doc.DeceasedName), "", "Heirs:")
		for i, h := range doc.Heirs {
			line := fmt.Sprintf("  %d. %s", i+1, h.Name)
			if h.Relation != "" {
				line += " (" + h.Relation + ")"
			}
			if h.IDNo != "" {
				line += " #" + h.IDNo
			}
			lines = append(lines, line)
		}
	case doc.IsPowerOfAttorney():
		lines = append(lines, formatField("Agent", doc.AgentName), "", "Principals:")
		for i, p := range doc.Principals {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, p))
		}
	}

	return lines
}

// formatField formats a field for display.
func formatField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%-10s %s", label+":", value)
}

// View renders the document details view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document Details"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 10)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.document == nil {
		b.WriteString(v.styles.Muted.Render("No document selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	visibleLines := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visibleLines; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	if len(lines) > visibleLines {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleLines, len(lines)),
			len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderLine(line string) string {
	switch {
	case line == "Heirs:" || line == "Principals:":
		return v.styles.Subtitle.Render(line)
	case strings.HasPrefix(line, "  "):
		return v.styles.Normal.Render(line)
	case strings.HasPrefix(line, "Warning:"):
		return v.styles.Error.Render(line)
	}
	if label, value, ok := strings.Cut(line, ":"); ok {
		return v.styles.Subtitle.Render(label+":") + v.styles.Normal.Render(value)
	}
	return v.styles.Normal.Render(line)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Document returns the displayed document.
func (v *View) Document() *domain.Document {
	return v.document
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
