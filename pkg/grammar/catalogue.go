package grammar

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/bastiangx/wordcoach/pkg/lexicon"
)

// ObjectiveID identifies a grammar objective.
type ObjectiveID string

const (
	CapitalLetters            ObjectiveID = "capitalLetters"
	FullStops                 ObjectiveID = "fullStops"
	QuestionMarks             ObjectiveID = "questionMarks"
	ExclamationMarks          ObjectiveID = "exclamationMarks"
	Conjunctions              ObjectiveID = "conjunctions"
	SubordinatingConjunctions ObjectiveID = "subordinatingConjunctions"
	CommasInLists             ObjectiveID = "commasInLists"
	ExpandedNounPhrases       ObjectiveID = "expandedNounPhrases"
	Suffixes                  ObjectiveID = "suffixes"
	PresentProgressive        ObjectiveID = "presentProgressive"
	PastTense                 ObjectiveID = "pastTense"
	Contractions              ObjectiveID = "contractions"
	PossessiveApostrophes     ObjectiveID = "possessiveApostrophes"
	FrontedAdverbials         ObjectiveID = "frontedAdverbials"
	InvertedCommas            ObjectiveID = "invertedCommas"
	Pronouns                  ObjectiveID = "pronouns"
	ModalVerbs                ObjectiveID = "modalVerbs"
)

// Stage is a curriculum school year, 1 to 6.
type Stage int

func (s Stage) String() string {
	return fmt.Sprintf("Year %d", int(s))
}

// Level maps a stage to the support level its examples are shown at:
// years 1-2 beginner, 3-4 intermediate, 5-6 advanced.
func (s Stage) Level() lexicon.Level {
	switch {
	case s >= 5:
		return lexicon.Advanced
	case s >= 3:
		return lexicon.Intermediate
	default:
		return lexicon.Beginner
	}
}

// Objective is one curriculum checkpoint with its detector.
type Objective struct {
	ID          ObjectiveID
	Label       string
	Area        string
	Stage       Stage
	Description string
	Tip         string
	Examples    []string
	// Related is a lexicon category whose entries are offered while the
	// objective is unmet. Empty when there is none.
	Related lexicon.CategoryID

	detect func(Text) bool
}

// Level is the support level the objective's examples belong to.
func (o Objective) Level() lexicon.Level {
	return o.Stage.Level()
}

// Detect runs the objective's detector over t.
func (o Objective) Detect(t Text) bool {
	return o.detect(t)
}

var (
	coordinating  = wordSet("and", "but", "or", "so", "yet", "nor")
	subordinating = wordSet("because", "although", "though", "unless", "whereas", "whenever",
		"while", "until", "since", "if", "when")
	progressiveAux = wordSet("am", "is", "are", "was", "were", "be", "being")
	irregularPast  = wordSet("went", "ran", "saw", "said", "came", "took", "got", "made", "had",
		"was", "were", "ate", "found", "gave", "thought", "felt", "told", "became", "left",
		"swam", "sang", "sat", "flew", "fell", "knew", "did", "began", "caught", "brought")
	contractedIs = wordSet("it's", "he's", "she's", "that's", "there's", "what's", "here's",
		"let's", "who's", "where's")
	contractionSuffixes = []string{"n't", "'m", "'re", "'ve", "'ll", "'d"}
	suffixEndings       = []string{"ful", "less", "ness", "ment", "ly", "est"}
	notSuffixed         = wordSet("only", "family", "early", "ugly", "silly", "jelly", "belly",
		"holly", "forest", "honest", "moment", "comment", "cement", "unless")

	listPattern      = regexp.MustCompile(`(?i)[\p{L}\p{N}'’-]+\s*,\s*[\p{L}\p{N}'’-]+(?:\s*,\s*[\p{L}\p{N}'’-]+)*,?\s+(?:and|or)\s+[\p{L}\p{N}]`)
	quotePattern     = regexp.MustCompile(`["“][^"“”]*\p{L}[^"“”]*["”]`)
	frontedPattern   = regexp.MustCompile(`^[\p{L}'’-]+(?:\s+[\p{L}'’-]+){0,4}\s*,`)
	pluralPossessive = regexp.MustCompile(`\p{L}s['’](?:[^\p{L}]|$)`)
)

// catalogue is the fixed objective list. Its order is the order verdicts
// are reported in.
var catalogue = []Objective{
	{
		ID: CapitalLetters, Label: "Capital letters", Area: "Punctuation", Stage: 1,
		Description: "Every sentence starts with a capital letter.",
		Tip:         "Check the first letter of each sentence.",
		Examples:    []string{"The", "I", "My"},
		Related:     lexicon.SentenceStarters,
		detect: func(t Text) bool {
			for _, s := range t.Sentences {
				if r, ok := firstLetter(s); ok && !unicode.IsUpper(r) {
					return false
				}
			}
			return true
		},
	},
	{
		ID: FullStops, Label: "Full stops", Area: "Punctuation", Stage: 1,
		Description: "Every sentence ends with a full stop.",
		Tip:         "Finish each sentence with a full stop.",
		Examples:    []string{"."},
		detect: func(t Text) bool {
			for _, s := range t.Sentences {
				if !endsWith(s, '.') {
					return false
				}
			}
			return true
		},
	},
	{
		ID: QuestionMarks, Label: "Question marks", Area: "Punctuation", Stage: 1,
		Description: "Uses a question mark.",
		Tip:         "Ask the reader a question.",
		Examples:    []string{"Why", "What", "Who"},
		Related:     lexicon.QuestionOpeners,
		detect: func(t Text) bool {
			return strings.Contains(t.Raw, "?")
		},
	},
	{
		ID: ExclamationMarks, Label: "Exclamation marks", Area: "Punctuation", Stage: 2,
		Description: "Uses an exclamation mark.",
		Tip:         "Show surprise or excitement with an exclamation mark.",
		Examples:    []string{"What a", "How amazing", "Wow"},
		detect: func(t Text) bool {
			return strings.Contains(t.Raw, "!")
		},
	},
	{
		ID: Conjunctions, Label: "Joining words", Area: "Sentence structure", Stage: 1,
		Description: "Joins ideas with and, but, or or so.",
		Tip:         "Join two ideas with a joining word.",
		Examples:    []string{"and", "but", "so"},
		Related:     lexicon.Conjunctions,
		detect: func(t Text) bool {
			return anyWord(t, coordinating)
		},
	},
	{
		ID: SubordinatingConjunctions, Label: "Subordinating conjunctions", Area: "Sentence structure", Stage: 2,
		Description: "Adds a reason or condition with because, when, if or although.",
		Tip:         "Explain why or when something happened.",
		Examples:    []string{"because", "when", "if"},
		Related:     lexicon.Connectors,
		detect: func(t Text) bool {
			return anyWord(t, subordinating)
		},
	},
	{
		ID: CommasInLists, Label: "Commas in lists", Area: "Punctuation", Stage: 2,
		Description: "Separates items in a list with commas.",
		Tip:         "Put a comma between list items and use and before the last one.",
		Examples:    []string{",", "and"},
		Related:     lexicon.ListPrompts,
		detect: func(t Text) bool {
			return listPattern.MatchString(t.Raw)
		},
	},
	{
		ID: ExpandedNounPhrases, Label: "Expanded noun phrases", Area: "Vocabulary", Stage: 2,
		Description: "Describes a noun with an adjective, as in the huge grey elephant.",
		Tip:         "Add a describing word between the and the noun.",
		Examples:    []string{"big", "shiny", "enormous"},
		Related:     lexicon.NounPhrasePrompts,
		detect:      hasExpandedNounPhrase,
	},
	{
		ID: Suffixes, Label: "Suffixes", Area: "Vocabulary", Stage: 2,
		Description: "Uses suffixes such as -ful, -less, -ness, -ment and -ly.",
		Tip:         "Change a word by adding an ending like -ful or -ly.",
		Examples:    []string{"careful", "quickly", "happiness"},
		Related:     lexicon.Descriptions,
		detect: func(t Text) bool {
			for _, w := range t.Words {
				lw := lowerWord(w)
				if !notSuffixed[lw] && hasAnySuffix(lw, suffixEndings...) {
					return true
				}
			}
			return false
		},
	},
	{
		ID: PresentProgressive, Label: "Progressive verbs", Area: "Verbs", Stage: 2,
		Description: "Shows an action in progress, as in she is running.",
		Tip:         "Use is, are or was with an -ing verb.",
		Examples:    []string{"is running", "are playing", "was walking"},
		detect: func(t Text) bool {
			for i := 1; i < len(t.Words); i++ {
				w := lowerWord(t.Words[i])
				if len([]rune(w)) > 4 && strings.HasSuffix(w, "ing") && progressiveAux[lowerWord(t.Words[i-1])] {
					return true
				}
			}
			return false
		},
	},
	{
		ID: PastTense, Label: "Past tense", Area: "Verbs", Stage: 2,
		Description: "Tells what already happened using past tense verbs.",
		Tip:         "Use verbs like walked or went to describe the past.",
		Examples:    []string{"went", "jumped", "played"},
		Related:     lexicon.Actions,
		detect: func(t Text) bool {
			for i, w := range t.Words {
				lw := lowerWord(w)
				if irregularPast[lw] {
					return true
				}
				if t.Tags[i] == Verb && len([]rune(lw)) > 3 && strings.HasSuffix(lw, "ed") {
					return true
				}
			}
			return false
		},
	},
	{
		ID: Contractions, Label: "Contractions", Area: "Punctuation", Stage: 2,
		Description: "Shortens words with an apostrophe, as in don't and I'm.",
		Tip:         "Join two words with an apostrophe.",
		Examples:    []string{"don't", "can't", "I'm"},
		detect: func(t Text) bool {
			for _, w := range t.Words {
				if isContraction(lowerWord(w)) {
					return true
				}
			}
			return false
		},
	},
	{
		ID: PossessiveApostrophes, Label: "Possessive apostrophes", Area: "Punctuation", Stage: 2,
		Description: "Shows belonging with an apostrophe, as in the dog's bone.",
		Tip:         "Add 's to show who something belongs to.",
		Examples:    []string{"the dog's", "my friend's"},
		detect: func(t Text) bool {
			for _, w := range t.Words {
				lw := lowerWord(w)
				if strings.HasSuffix(lw, "'s") && !contractedIs[lw] {
					return true
				}
			}
			return pluralPossessive.MatchString(t.Raw)
		},
	},
	{
		ID: FrontedAdverbials, Label: "Fronted adverbials", Area: "Sentence structure", Stage: 4,
		Description: "Starts a sentence with an adverbial followed by a comma.",
		Tip:         "Begin with when, where or how something happened, then a comma.",
		Examples:    []string{"Suddenly,", "Later that day,", "Without warning,"},
		Related:     lexicon.FrontedAdverbials,
		detect:      hasFrontedAdverbial,
	},
	{
		ID: InvertedCommas, Label: "Inverted commas", Area: "Punctuation", Stage: 3,
		Description: "Puts spoken words inside inverted commas.",
		Tip:         "Show what a character said inside speech marks.",
		Examples:    []string{"said", "asked", "shouted"},
		detect: func(t Text) bool {
			return quotePattern.MatchString(t.Raw)
		},
	},
	{
		ID: Pronouns, Label: "Pronouns", Area: "Vocabulary", Stage: 3,
		Description: "Uses pronouns such as he, she and they to avoid repetition.",
		Tip:         "Replace a repeated name with he, she or they.",
		Examples:    []string{"he", "she", "they"},
		detect: func(t Text) bool {
			for _, tag := range t.Tags {
				if tag == Pronoun {
					return true
				}
			}
			return false
		},
	},
	{
		ID: ModalVerbs, Label: "Modal verbs", Area: "Verbs", Stage: 5,
		Description: "Shows possibility with modal verbs such as might, could and should.",
		Tip:         "Say how likely something is with might or could.",
		Examples:    []string{"might", "could", "should"},
		Related:     lexicon.ModalVerbs,
		detect: func(t Text) bool {
			for _, tag := range t.Tags {
				if tag == Modal {
					return true
				}
			}
			return false
		},
	},
}

// Catalogue returns a copy of the objective list in reporting order.
func Catalogue() []Objective {
	out := make([]Objective, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup returns the objective with the given id.
func Lookup(id ObjectiveID) (Objective, bool) {
	for _, o := range catalogue {
		if o.ID == id {
			return o, true
		}
	}
	return Objective{}, false
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func anyWord(t Text, set map[string]bool) bool {
	for _, w := range t.Words {
		if set[lowerWord(w)] {
			return true
		}
	}
	return false
}

func isContraction(w string) bool {
	if contractedIs[w] {
		return true
	}
	for _, suf := range contractionSuffixes {
		if len(w) > len(suf) && strings.HasSuffix(w, suf) {
			return true
		}
	}
	return false
}

// hasExpandedNounPhrase looks for a determiner, one or more adjectives and
// a noun.
func hasExpandedNounPhrase(t Text) bool {
	for i := 0; i < len(t.Tags); i++ {
		if t.Tags[i] != Determiner {
			continue
		}
		j := i + 1
		for j < len(t.Tags) && t.Tags[j] == Adjective {
			j++
		}
		if j > i+1 && j < len(t.Tags) && t.Tags[j].IsNominal() && t.Tags[j] != Pronoun {
			return true
		}
	}
	return false
}

// hasFrontedAdverbial reports whether a sentence opens with a short
// adverbial phrase closed by a comma.
func hasFrontedAdverbial(t Text) bool {
	tagger := defaultTagger
	for _, s := range t.Sentences {
		head := frontedPattern.FindString(strings.TrimLeft(s, `"“'‘(`))
		if head == "" {
			continue
		}
		words := strings.Fields(strings.TrimSuffix(head, ","))
		first := lowerWord(words[0])
		switch tagger.baseline(first, true) {
		case Adverb, Preposition:
			return true
		case Conjunction:
			if subordinating[first] {
				return true
			}
		}
		if len([]rune(first)) > 4 && strings.HasSuffix(first, "ing") {
			return true
		}
	}
	return false
}
