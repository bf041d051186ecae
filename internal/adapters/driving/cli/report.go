package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

// emptyReportText is shown when no heirs have been derived.
const emptyReportText = "No heirs to review yet. Ingest an inheritance disclosure to begin."

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	authorizedStyle = cellStyle.Foreground(lipgloss.Color("#10B981"))
	pendingStyle    = cellStyle.Foreground(lipgloss.Color("#F59E0B"))
	titleStyle      = lipgloss.NewStyle().Bold(true)
	warnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Column indexes of the heir table.
const (
	colStatus = 5
)

// renderReport writes a human-readable analysis report.
func renderReport(w io.Writer, report *domain.AnalysisReport) {
	if report.IsEmpty() {
		fmt.Fprintln(w, emptyReportText)
		renderRejected(w, report.Rejected)
		return
	}

	authorized := report.AuthorizedCount()
	fmt.Fprintln(w, titleStyle.Render("Primary estate: "+report.PrimaryEstate))
	fmt.Fprintf(w, "Documents: %d  Heirs: %d  Authorized: %d  Pending: %d\n\n",
		report.DocumentCount, len(report.Heirs), authorized, len(report.Heirs)-authorized)

	rows := make([][]string, len(report.Heirs))
	for i := range report.Heirs {
		h := &report.Heirs[i]
		rows[i] = []string{
			strconv.Itoa(i + 1),
			h.HeirName,
			orDash(h.Relation),
			orDash(h.IDNo),
			estateLabel(h),
			statusLabel(h),
			h.AgentDisplayName,
			yesNo(h.MustAttendInPerson),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Heir", "Relation", "ID No", "Estate", "Status", "Agent", "Attend").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == colStatus && row >= 0 && row < len(report.Heirs) {
				if report.Heirs[row].IsAuthorized {
					return authorizedStyle
				}
				return pendingStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Required wording"))
	for i := range report.Heirs {
		fmt.Fprintf(w, "  %d. %s: %s\n", i+1, report.Heirs[i].HeirName, report.Heirs[i].RequiredLegalWording)
	}

	renderRejected(w, report.Rejected)
}

func renderRejected(w io.Writer, rejected []*domain.MalformedDocumentError) {
	if len(rejected) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("Excluded %d malformed document(s):", len(rejected))))
	for _, r := range rejected {
		fmt.Fprintf(w, "  - %s\n", r.Error())
	}
}

func estateLabel(h *domain.HeirAuthorization) string {
	if h.IsPrimaryEstate {
		return h.DeceasedName
	}
	return h.DeceasedName + " (chain)"
}

func statusLabel(h *domain.HeirAuthorization) string {
	if h.IsAuthorized {
		return "authorized"
	}
	return "pending"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// reportJSON is the --json form of an analysis report.
type reportJSON struct {
	PrimaryEstate string                           `json:"primary_estate"`
	Language      domain.Language                  `json:"language"`
	DocumentCount int                              `json:"document_count"`
	GeneratedAt   time.Time                        `json:"generated_at"`
	Heirs         []domain.HeirAuthorization       `json:"heirs"`
	Rejected      []*domain.MalformedDocumentError `json:"rejected"`
}

// writeReportJSON writes report as indented JSON. Empty lists are written as [].
func writeReportJSON(w io.Writer, report *domain.AnalysisReport) error {
	out := reportJSON{
		PrimaryEstate: report.PrimaryEstate,
		Language:      report.Language,
		DocumentCount: report.DocumentCount,
		GeneratedAt:   report.GeneratedAt,
		Heirs:         report.Heirs,
		Rejected:      report.Rejected,
	}
	if out.Heirs == nil {
		out.Heirs = []domain.HeirAuthorization{}
	}
	if out.Rejected == nil {
		out.Rejected = []*domain.MalformedDocumentError{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
