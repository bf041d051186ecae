package succession

import (
	"sort"
	"time"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

// Result is the outcome of one inference run.
type Result struct {
	// PrimaryEstate is the deceased of the earliest inheritance disclosure,
	// or empty when no valid disclosure was given.
	PrimaryEstate string

	// Records holds one entry per heir per disclosure, in display order.
	Records []domain.HeirAuthorization

	// Rejected lists malformed documents in input order. They took no part
	// in the computation.
	Rejected []*domain.MalformedDocumentError
}

// Engine computes heir authorization records.
// The zero value is not usable; construct with New.
type Engine struct {
	phrases Phrasebook
}

// Option configures an Engine.
type Option func(*Engine)

// WithPhrasebook sets the labels and wording emitted into records.
func WithPhrasebook(p Phrasebook) Option {
	return func(e *Engine) {
		e.phrases = p
	}
}

// New creates an engine. Without options it emits English wording.
func New(opts ...Option) *Engine {
	e := &Engine{phrases: EnglishPhrasebook()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Infer runs an English-language engine over docs.
func Infer(docs []domain.Document) Result {
	return New().Infer(docs)
}

// dated pairs a valid document with its parsed issue date.
type dated struct {
	doc  *domain.Document
	date time.Time
}

// Infer derives the heir authorization records for docs.
// docs is read, never modified; the returned records share no memory with it.
func (e *Engine) Infer(docs []domain.Document) Result {
	var result Result

	valid := make([]dated, 0, len(docs))
	for i := range docs {
		if bad := check(&docs[i]); bad != nil {
			result.Rejected = append(result.Rejected, bad)
			continue
		}
		// check guarantees the date parses.
		date, _ := docs[i].ParsedIssueDate()
		valid = append(valid, dated{doc: &docs[i], date: date})
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].date.Before(valid[j].date)
	})

	var disclosures, powers []*domain.Document
	for _, d := range valid {
		switch d.doc.Type {
		case domain.DocumentTypeInheritance:
			disclosures = append(disclosures, d.doc)
		case domain.DocumentTypePowerOfAttorney:
			powers = append(powers, d.doc)
		}
	}

	if len(disclosures) == 0 {
		return result
	}

	primaryEstate := disclosures[0].DeceasedName
	result.PrimaryEstate = primaryEstate

	for _, doc := range disclosures {
		isPrimary := doc.DeceasedName == primaryEstate
		for _, heir := range doc.Heirs {
			result.Records = append(result.Records, e.authorize(doc, heir, isPrimary, primaryEstate, powers))
		}
	}

	return result
}

// authorize builds the record for one heir of one disclosure.
func (e *Engine) authorize(
	doc *domain.Document,
	heir domain.HeirEntry,
	isPrimary bool,
	primaryEstate string,
	powers []*domain.Document,
) domain.HeirAuthorization {
	var matched *domain.Document
	for _, poa := range powers {
		if anyNameMatches(heir.Name, poa.Principals) {
			matched = poa
			break
		}
	}

	isAgent := false
	for _, poa := range powers {
		if NamesMatch(heir.Name, poa.AgentName) {
			isAgent = true
			break
		}
	}

	record := domain.HeirAuthorization{
		HeirName:           heir.Name,
		Relation:           heir.Relation,
		IDNo:               heir.IDNo,
		DeceasedName:       doc.DeceasedName,
		SourceDocumentID:   doc.ID,
		IsPrimaryEstate:    isPrimary,
		IsAuthorized:       matched != nil,
		IsActingAsAgent:    isAgent,
		MustAttendInPerson: isAgent,
		AgentDisplayName:   e.phrases.NoAgent,
	}

	switch {
	case isAgent:
		record.AgentDisplayName = e.phrases.SelfAgent
	case matched != nil:
		record.AgentDisplayName = matched.AgentName
	}
	if matched != nil {
		record.MatchedPowerOfAttorneyID = matched.ID
	}

	if isPrimary {
		record.RequiredLegalWording = e.phrases.primary(primaryEstate)
	} else {
		record.RequiredLegalWording = e.phrases.chain(doc.DeceasedName, primaryEstate)
	}

	return record
}
