package domain

import "time"

// HeirAuthorization is the derived authorization status of one heir occurrence.
// One is produced per heir per inheritance disclosure; the same person named in two
// disclosures yields two records.
type HeirAuthorization struct {
	// HeirName, Relation and IDNo are copied from the source heir entry.
	HeirName string `json:"heir_name"`
	Relation string `json:"relation"`
	IDNo     string `json:"id_no"`

	// DeceasedName is the deceased of the disclosure the heir came from.
	DeceasedName string `json:"deceased_name"`

	// SourceDocumentID is the disclosure the heir came from.
	SourceDocumentID string `json:"source_document_id"`

	// IsPrimaryEstate is true when the disclosure's deceased is the primary estate.
	IsPrimaryEstate bool `json:"is_primary_estate"`

	// IsAuthorized is true when some power of attorney names the heir as a principal.
	IsAuthorized bool `json:"is_authorized"`

	// IsActingAsAgent is true when the heir is the agent of some power of attorney.
	IsActingAsAgent bool `json:"is_acting_as_agent"`

	// MustAttendInPerson mirrors IsActingAsAgent: an heir who is an agent is
	// expected to be present rather than represented.
	MustAttendInPerson bool `json:"must_attend_in_person"`

	// MatchedPowerOfAttorneyID is the first matching power of attorney, if any.
	MatchedPowerOfAttorneyID string `json:"matched_power_of_attorney_id,omitempty"`

	// AgentDisplayName is the label shown in the agent column.
	AgentDisplayName string `json:"agent_display_name"`

	// RequiredLegalWording is the wording a power of attorney for this heir must carry.
	RequiredLegalWording string `json:"required_legal_wording"`
}

// AnalysisReport is the outcome of one full recomputation over the document set.
type AnalysisReport struct {
	// PrimaryEstate is the deceased of the earliest inheritance disclosure.
	// Empty when there is no valid inheritance disclosure.
	PrimaryEstate string

	// Heirs are the records in display order.
	Heirs []HeirAuthorization

	// Rejected lists documents excluded from the computation.
	Rejected []*MalformedDocumentError

	// DocumentCount is the number of documents in the snapshot.
	DocumentCount int

	// Language is the language of the labels and wording.
	Language Language

	// GeneratedAt is when the analysis ran.
	GeneratedAt time.Time
}

// IsEmpty reports whether there is nothing to review yet.
func (r *AnalysisReport) IsEmpty() bool {
	return len(r.Heirs) == 0
}

// AuthorizedCount returns the number of heirs already covered by a power of attorney.
func (r *AnalysisReport) AuthorizedCount() int {
	n := 0
	for i := range r.Heirs {
		if r.Heirs[i].IsAuthorized {
			n++
		}
	}
	return n
}
