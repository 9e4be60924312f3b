package lexicon

// Entry is a single word or phrase that can be offered as a suggestion.
type Entry struct {
	Text  string
	Level Level
	Hint  string
}

// CategoryID names a word bank category. Only the constants below are valid.
type CategoryID string

const (
	SentenceStarters  CategoryID = "sentenceStarters"
	FrontedAdverbials CategoryID = "frontedAdverbials"
	QuestionOpeners   CategoryID = "questionOpeners"
	ImperativeVerbs   CategoryID = "imperativeVerbs"
	Conjunctions      CategoryID = "conjunctions"
	Connectors        CategoryID = "connectors"
	TimeWords         CategoryID = "timeWords"
	ModalVerbs        CategoryID = "modalVerbs"
	PronounVerbs      CategoryID = "pronounVerbs"
	People            CategoryID = "people"
	Actions           CategoryID = "actions"
	Descriptions      CategoryID = "descriptions"
	NounPhrasePrompts CategoryID = "nounPhrasePrompts"
	ListPrompts       CategoryID = "listPrompts"
	HighFrequency     CategoryID = "highFrequency"
)

// CategoryIDs lists every category in declaration order. Iteration over a
// Store follows this order.
var CategoryIDs = []CategoryID{
	SentenceStarters,
	FrontedAdverbials,
	QuestionOpeners,
	ImperativeVerbs,
	Conjunctions,
	Connectors,
	TimeWords,
	ModalVerbs,
	PronounVerbs,
	People,
	Actions,
	Descriptions,
	NounPhrasePrompts,
	ListPrompts,
	HighFrequency,
}

// Valid reports whether id is one of the declared categories.
func (id CategoryID) Valid() bool {
	for _, known := range CategoryIDs {
		if known == id {
			return true
		}
	}
	return false
}

// Category is a named, coloured group of entries shown together in the word bank.
type Category struct {
	ID      CategoryID
	Label   string
	Color   string
	Entries []Entry
}

// Visible returns the entries of c allowed at level, in order.
func (c Category) Visible(level Level) []Entry {
	out := make([]Entry, 0, len(c.Entries))
	for _, e := range c.Entries {
		if level.Allows(e.Level) {
			out = append(out, e)
		}
	}
	return out
}

// WordClassID names a closed word class used for context classification.
type WordClassID string

const (
	Pronouns      WordClassID = "pronouns"
	Determiners   WordClassID = "determiners"
	LinkingVerbs  WordClassID = "linkingVerbs"
	TimeMarkers   WordClassID = "timeMarkers"
	ModalHelpers  WordClassID = "modalHelpers"
	QuestionWords WordClassID = "questionWords"
)
