package succession

import (
	"fmt"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

// Phrasebook holds the labels and legal wording emitted into records.
type Phrasebook struct {
	// SelfAgent is the agent label for an heir who is an agent.
	SelfAgent string

	// NoAgent is the agent label for an heir with no power of attorney.
	NoAgent string

	// PrimaryWording names the primary estate. One %s: the primary deceased.
	PrimaryWording string

	// ChainWording names an estate, its share from the primary estate and what
	// passed between them. Two %s: the estate's deceased, then the primary deceased.
	ChainWording string
}

// EnglishPhrasebook returns the English labels and wording.
func EnglishPhrasebook() Phrasebook {
	return Phrasebook{
		SelfAgent:      "(self, acting as agent)",
		NoAgent:        "—",
		PrimaryWording: "The power of attorney must be specific to the inheritance from the deceased (%s).",
		ChainWording: "The power of attorney must be specific to the inheritance from (%s), " +
			"including what devolved to them from (%s), and whatever was inherited between them.",
	}
}

// ArabicPhrasebook returns the wording used on the instruments themselves.
func ArabicPhrasebook() Phrasebook {
	return Phrasebook{
		SelfAgent:      "نفسه (وكيل)",
		NoAgent:        "—",
		PrimaryWording: "الوكالة يجب أن تكون خاصة بالإرث العائد من المورث (%s)",
		ChainWording:   "الوكالة يجب أن تكون خاصة بالإرث العائد من (%s)، والعائد له من (%s)، وفيما توارثوه بينهم",
	}
}

// PhrasebookFor returns the phrasebook for a report language.
// Unknown languages fall back to English.
func PhrasebookFor(lang domain.Language) Phrasebook {
	if lang == domain.LanguageArabic {
		return ArabicPhrasebook()
	}
	return EnglishPhrasebook()
}

func (p Phrasebook) primary(primaryEstate string) string {
	return fmt.Sprintf(p.PrimaryWording, primaryEstate)
}

func (p Phrasebook) chain(deceased, primaryEstate string) string {
	return fmt.Sprintf(p.ChainWording, deceased, primaryEstate)
}
