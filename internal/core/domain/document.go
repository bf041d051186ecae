package domain

import "time"

// DocumentType identifies which kind of legal instrument a Document was extracted from.
type DocumentType string

// Known document types.
const (
	// DocumentTypeInheritance is an inheritance-disclosure instrument: a deceased
	// person and the heirs entitled to the estate.
	DocumentTypeInheritance DocumentType = "INHERITANCE_DISCLOSURE"

	// DocumentTypePowerOfAttorney is a power-of-attorney instrument: an agent and
	// the principals who granted the agent authority.
	DocumentTypePowerOfAttorney DocumentType = "POWER_OF_ATTORNEY"
)

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeInheritance, DocumentTypePowerOfAttorney:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// Description returns a human-readable label for the document type.
func (t DocumentType) Description() string {
	switch t {
	case DocumentTypeInheritance:
		return "Inheritance disclosure"
	case DocumentTypePowerOfAttorney:
		return "Power of attorney"
	default:
		return unknownDescription
	}
}

// IssueDateLayout is the canonical layout of Document.IssueDate.
const IssueDateLayout = "2006-01-02"

// Document is one structured record per ingested instrument.
// Which of the type-specific fields are populated depends on Type.
// Documents are never mutated after ingestion; removing one and
// re-running the analysis is the only way its effect changes.
type Document struct {
	// ID is the unique identifier assigned at ingestion.
	ID string

	// Type is the kind of instrument.
	Type DocumentType

	// IssueDate is the extracted issue date, expected as YYYY-MM-DD.
	// It is kept as text so that unparseable dates can be reported.
	IssueDate string

	// DeceasedName is the deceased person (inheritance disclosures only).
	DeceasedName string

	// Heirs lists the heirs in document order (inheritance disclosures only).
	Heirs []HeirEntry

	// AgentName is the appointed agent (powers of attorney only).
	AgentName string

	// Principals are the people granting the power (powers of attorney only).
	Principals []string

	// FileName is the name of the file the record was extracted from.
	FileName string

	// MimeType is the detected content type of the source file.
	MimeType string

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// IsInheritance reports whether the document is an inheritance disclosure.
func (d *Document) IsInheritance() bool {
	return d.Type == DocumentTypeInheritance
}

// IsPowerOfAttorney reports whether the document is a power of attorney.
func (d *Document) IsPowerOfAttorney() bool {
	return d.Type == DocumentTypePowerOfAttorney
}

// ParsedIssueDate parses IssueDate.
func (d *Document) ParsedIssueDate() (time.Time, error) {
	return ParseIssueDate(d.IssueDate)
}

// Label returns the file name when known, otherwise the ID.
func (d *Document) Label() string {
	if d.FileName != "" {
		return d.FileName
	}
	return d.ID
}

// Clone returns a copy that shares no slices with d.
func (d *Document) Clone() Document {
	c := *d
	if d.Heirs != nil {
		c.Heirs = append([]HeirEntry(nil), d.Heirs...)
	}
	if d.Principals != nil {
		c.Principals = append([]string(nil), d.Principals...)
	}
	return c
}

// HeirEntry is one heir listed in an inheritance disclosure.
type HeirEntry struct {
	// Name is the heir's name as extracted.
	Name string

	// Relation describes the relation to the deceased (may be empty).
	Relation string

	// IDNo is the heir's national identifier (may be empty).
	IDNo string
}
