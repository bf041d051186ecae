// Package heirs provides the heir authorization report view for the TUI.
package heirs

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// emptyText is shown when the analysis derived no heirs.
const emptyText = "No heirs to review yet. Ingest an inheritance disclosure to begin."

// View is the heir authorization report.
type View struct {
	styles   *styles.Styles
	analysis driving.AnalysisService
	bar      *status.Bar

	report   *domain.AnalysisReport
	language domain.Language
	selected int
	offset   int
	width    int
	height   int
	loading  bool
	err      error
}

// NewView creates a new heirs view.
func NewView(s *styles.Styles, analysis driving.AnalysisService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		analysis: analysis,
		bar:      status.NewBar(s, nil),
		width:    80,
		height:   24,
	}
}

// Init recomputes the report in the configured language.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.bar.SetState(status.StateLoading)
	v.bar.SetMessage("Analysing...")
	return v.load("")
}

// load returns a command that runs the analysis. An empty lang uses the configured language.
func (v *View) load(lang domain.Language) tea.Cmd {
	analysis := v.analysis
	return func() tea.Msg {
		if analysis == nil {
			return messages.ReportLoaded{Err: fmt.Errorf("analysis service not available")}
		}
		var (
			report *domain.AnalysisReport
			err    error
		)
		if lang == "" {
			report, err = analysis.Analyse(context.Background())
		} else {
			report, err = analysis.AnalyseIn(context.Background(), lang)
		}
		return messages.ReportLoaded{Report: report, Err: err}
	}
}

// Update handles messages for the heirs view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ReportLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetState(status.StateError)
			v.bar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.report = msg.Report
		if v.report != nil {
			v.language = v.report.Language
			v.bar.SetMessage("")
			v.bar.SetCounts(len(v.report.Heirs), v.report.AuthorizedCount(), len(v.report.Rejected))
		}
		if v.selected >= v.heirCount() {
			v.selected = 0
			v.offset = 0
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < v.heirCount()-1 {
			v.selected++
			v.adjustScroll()
		}
	case "r":
		v.loading = true
		return v, v.load(v.language)
	case "l":
		v.loading = true
		return v, v.load(otherLanguage(v.language))
	case "t":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// otherLanguage toggles between the supported report languages.
func otherLanguage(l domain.Language) domain.Language {
	if l == domain.LanguageArabic {
		return domain.LanguageEnglish
	}
	return domain.LanguageArabic
}

func (v *View) heirCount() int {
	if v.report == nil {
		return 0
	}
	return len(v.report.Heirs)
}

func (v *View) adjustScroll() {
	visible := v.visibleRows()
	if v.selected < v.offset {
		v.offset = v.selected
	} else if v.selected >= v.offset+visible {
		v.offset = v.selected - visible + 1
	}
}

// visibleRows is the number of table rows that fit above the detail panel.
func (v *View) visibleRows() int {
	// Title, summary, table borders, detail panel, status bar
	reserved := 16
	available := v.height - reserved
	if available < 3 {
		available = 3
	}
	return available
}

// View renders the heirs view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Heirs"))
	if v.language != "" {
		b.WriteString(v.styles.Muted.Render("  (" + v.language.Description() + ")"))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading && v.report == nil:
		b.WriteString(v.styles.Muted.Render("Analysing documents..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.report == nil || v.report.IsEmpty():
		b.WriteString(v.styles.Muted.Render(emptyText))
		b.WriteString(v.renderRejected())
	default:
		b.WriteString(v.styles.Subtitle.Render("Primary estate: " + v.report.PrimaryEstate))
		b.WriteString("\n")
		b.WriteString(v.renderTable())
		b.WriteString("\n")
		b.WriteString(v.renderDetail())
		b.WriteString(v.renderRejected())
	}

	b.WriteString("\n\n")
	v.bar.SetWidth(v.width)
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderTable() string {
	heirs := v.report.Heirs
	end := v.offset + v.visibleRows()
	if end > len(heirs) {
		end = len(heirs)
	}

	rows := make([][]string, 0, end-v.offset)
	for i := v.offset; i < end; i++ {
		h := &heirs[i]
		estate := h.DeceasedName
		if !h.IsPrimaryEstate {
			estate += " (chain)"
		}
		state := "pending"
		if h.IsAuthorized {
			state = "authorized"
		}
		attend := ""
		if h.MustAttendInPerson {
			attend = "in person"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), h.HeirName, estate, state, h.AgentDisplayName, attend})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(v.styles.Border).
		Headers("#", "Heir", "Estate", "Status", "Agent", "Attend").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return v.styles.TableHeader
			}
			idx := v.offset + row
			cell := lipgloss.NewStyle().Padding(0, 1)
			if idx == v.selected {
				return v.styles.Selected.Padding(0, 1)
			}
			if idx < len(heirs) {
				switch col {
				case 2:
					if !heirs[idx].IsPrimaryEstate {
						return v.styles.Chain.Padding(0, 1)
					}
				case 3:
					return v.styles.Status(heirs[idx].IsAuthorized).Padding(0, 1)
				}
			}
			return cell
		})

	out := t.Render()
	if len(heirs) > v.visibleRows() {
		out += "\n" + v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", v.offset+1, end, len(heirs)))
	}
	return out
}

// renderDetail shows the selected heir's identifiers and required wording.
func (v *View) renderDetail() string {
	if v.selected >= v.heirCount() {
		return ""
	}
	h := &v.report.Heirs[v.selected]

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(h.HeirName))
	b.WriteString("\n")
	b.WriteString(field("Relation", h.Relation))
	b.WriteString(field("ID No", h.IDNo))
	b.WriteString(field("Disclosure", h.SourceDocumentID))
	b.WriteString(field("POA", h.MatchedPowerOfAttorneyID))
	b.WriteString(v.styles.Muted.Render("Required wording:"))
	b.WriteString("\n  ")
	b.WriteString(v.styles.Normal.Render(h.RequiredLegalWording))
	return b.String()
}

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%-12s %s\n", label+":", value)
}

func (v *View) renderRejected() string {
	if v.report == nil || len(v.report.Rejected) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(v.styles.Error.Render(fmt.Sprintf("Excluded %d malformed document(s):", len(v.report.Rejected))))
	for _, r := range v.report.Rejected {
		b.WriteString("\n  - ")
		b.WriteString(v.styles.Muted.Render(r.Error()))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Report returns the last loaded report.
func (v *View) Report() *domain.AnalysisReport {
	return v.report
}

// SelectedIndex returns the selected heir index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Language returns the language of the current report.
func (v *View) Language() domain.Language {
	return v.language
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
