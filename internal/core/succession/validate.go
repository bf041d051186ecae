package succession

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

// Validate checks a document against the record schema.
// It returns a *domain.MalformedDocumentError describing the first broken rule,
// or nil when the document can take part in the analysis.
func Validate(doc domain.Document) error {
	if err := check(&doc); err != nil {
		return err
	}
	return nil
}

// check returns the first schema violation of doc, or nil.
func check(doc *domain.Document) *domain.MalformedDocumentError {
	fail := func(format string, args ...any) *domain.MalformedDocumentError {
		return &domain.MalformedDocumentError{
			DocumentID: doc.ID,
			FileName:   doc.FileName,
			Reason:     fmt.Sprintf(format, args...),
		}
	}

	if isBlank(doc.ID) {
		return fail("missing id")
	}
	if !doc.Type.IsValid() {
		return fail("unknown document type %q", doc.Type)
	}
	if _, err := doc.ParsedIssueDate(); err != nil {
		return fail("unparseable issue date %q", doc.IssueDate)
	}

	switch doc.Type {
	case domain.DocumentTypeInheritance:
		if isBlank(doc.DeceasedName) {
			return fail("missing deceased name")
		}
		for i := range doc.Heirs {
			if isBlank(doc.Heirs[i].Name) {
				return fail("heir %d has no name", i+1)
			}
		}
	case domain.DocumentTypePowerOfAttorney:
		if isBlank(doc.AgentName) {
			return fail("missing agent name")
		}
		// A blank principal would match every heir under NamesMatch.
		for i, p := range doc.Principals {
			if isBlank(p) {
				return fail("principal %d has no name", i+1)
			}
		}
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
