package mcp

import (
	"time"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

// HeirOutput is one heir authorization record.
type HeirOutput struct {
	HeirName           string `json:"heir_name"`
	Relation           string `json:"relation"`
	IDNo               string `json:"id_no"`
	DeceasedName       string `json:"deceased_name"`
	SourceDocumentID   string `json:"source_document_id"`
	IsPrimaryEstate    bool   `json:"is_primary_estate"`
	IsAuthorized       bool   `json:"is_authorized"`
	IsActingAsAgent    bool   `json:"is_acting_as_agent"`
	MustAttendInPerson bool   `json:"must_attend_in_person"`
	MatchedPOAID       string `json:"matched_power_of_attorney_id,omitempty"`
	AgentDisplayName   string `json:"agent_display_name"`
	RequiredWording    string `json:"required_legal_wording"`
}

// RejectedOutput is one document excluded from the analysis.
type RejectedOutput struct {
	DocumentID string `json:"document_id"`
	FileName   string `json:"file_name,omitempty"`
	Reason     string `json:"reason"`
}

// ReportOutput is the analysis report.
type ReportOutput struct {
	PrimaryEstate string           `json:"primary_estate"`
	Language      string           `json:"language"`
	DocumentCount int              `json:"document_count"`
	Authorized    int              `json:"authorized"`
	GeneratedAt   time.Time        `json:"generated_at"`
	Heirs         []HeirOutput     `json:"heirs"`
	Rejected      []RejectedOutput `json:"rejected"`
}

// HeirEntryOutput is one heir listed in a disclosure.
type HeirEntryOutput struct {
	Name     string `json:"name"`
	Relation string `json:"relation,omitempty"`
	IDNo     string `json:"id_no,omitempty"`
}

// DocumentOutput is one stored document.
type DocumentOutput struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	IssueDate    string            `json:"issue_date"`
	DeceasedName string            `json:"deceased_name,omitempty"`
	Heirs        []HeirEntryOutput `json:"heirs,omitempty"`
	AgentName    string            `json:"agent_name,omitempty"`
	Principals   []string          `json:"principals,omitempty"`
	FileName     string            `json:"file_name,omitempty"`
}

func toReportOutput(r *domain.AnalysisReport) ReportOutput {
	out := ReportOutput{
		PrimaryEstate: r.PrimaryEstate,
		Language:      r.Language.String(),
		DocumentCount: r.DocumentCount,
		Authorized:    r.AuthorizedCount(),
		GeneratedAt:   r.GeneratedAt,
		Heirs:         make([]HeirOutput, len(r.Heirs)),
		Rejected:      make([]RejectedOutput, len(r.Rejected)),
	}
	for i := range r.Heirs {
		h := &r.Heirs[i]
		out.Heirs[i] = HeirOutput{
			HeirName:           h.HeirName,
			Relation:           h.Relation,
			IDNo:               h.IDNo,
			DeceasedName:       h.DeceasedName,
			SourceDocumentID:   h.SourceDocumentID,
			IsPrimaryEstate:    h.IsPrimaryEstate,
			IsAuthorized:       h.IsAuthorized,
			IsActingAsAgent:    h.IsActingAsAgent,
			MustAttendInPerson: h.MustAttendInPerson,
			MatchedPOAID:       h.MatchedPowerOfAttorneyID,
			AgentDisplayName:   h.AgentDisplayName,
			RequiredWording:    h.RequiredLegalWording,
		}
	}
	for i, bad := range r.Rejected {
		out.Rejected[i] = RejectedOutput{
			DocumentID: bad.DocumentID,
			FileName:   bad.FileName,
			Reason:     bad.Reason,
		}
	}
	return out
}

func toDocumentOutput(d *domain.Document) DocumentOutput {
	out := DocumentOutput{
		ID:           d.ID,
		Type:         d.Type.String(),
		IssueDate:    d.IssueDate,
		DeceasedName: d.DeceasedName,
		AgentName:    d.AgentName,
		FileName:     d.FileName,
	}
	for _, h := range d.Heirs {
		out.Heirs = append(out.Heirs, HeirEntryOutput{Name: h.Name, Relation: h.Relation, IDNo: h.IDNo})
	}
	if len(d.Principals) > 0 {
		out.Principals = append([]string(nil), d.Principals...)
	}
	return out
}

func toDocumentOutputs(docs []domain.Document) []DocumentOutput {
	out := make([]DocumentOutput, len(docs))
	for i := range docs {
		out[i] = toDocumentOutput(&docs[i])
	}
	return out
}
