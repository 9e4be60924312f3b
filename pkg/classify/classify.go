// Package classify decides the grammatical situation at the caret.
package classify

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bastiangx/wordcoach/internal/utils"
	"github.com/bastiangx/wordcoach/pkg/caret"
	"github.com/bastiangx/wordcoach/pkg/lexicon"
)

// Label is the grammatical context at the caret.
type Label int

const (
	Default Label = iota
	SentenceStart
	AfterPronoun
	AfterDeterminer
	AfterLinkingVerb
	AfterTimeMarker
	AfterModalHelper
	AfterQuestionOpener
	ListInProgress
)

var labelNames = map[Label]string{
	Default:             "default",
	SentenceStart:       "sentenceStart",
	AfterPronoun:        "afterPronoun",
	AfterDeterminer:     "afterDeterminer",
	AfterLinkingVerb:    "afterLinkingVerb",
	AfterTimeMarker:     "afterTimeMarker",
	AfterModalHelper:    "afterModalHelper",
	AfterQuestionOpener: "afterQuestionOpener",
	ListInProgress:      "listInProgress",
}

func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return "unknown"
}

// IsAfterWord reports whether l was chosen from the previous word's class.
func (l Label) IsAfterWord() bool {
	return l >= AfterPronoun && l <= AfterQuestionOpener
}

// Classification is the classifier's verdict. List is checked on its own and
// may be true whatever the Label is.
type Classification struct {
	Label Label
	List  bool
}

// Capitalize reports whether suggestions should start with a capital letter.
func (c Classification) Capitalize() bool {
	return c.Label == SentenceStart
}

type wordRule struct {
	class lexicon.WordClassID
	label Label
}

// wordRules is the precedence order for previous-word labels. The first
// rule whose class contains the previous word wins.
var wordRules = []wordRule{
	{lexicon.Pronouns, AfterPronoun},
	{lexicon.Determiners, AfterDeterminer},
	{lexicon.LinkingVerbs, AfterLinkingVerb},
	{lexicon.TimeMarkers, AfterTimeMarker},
	{lexicon.ModalHelpers, AfterModalHelper},
	{lexicon.QuestionWords, AfterQuestionOpener},
}

// listPattern matches two or more comma separated word groups that end in a
// trailing comma or in "and" / "or".
var listPattern = regexp.MustCompile(
	`(?i)[\p{L}\p{N}'’-]+(?:\s+[\p{L}\p{N}'’-]+)*\s*,\s*[\p{L}\p{N}'’-]+(?:\s+[\p{L}\p{N}'’-]+)*\s*(?:,|\s(?:and|or))\s*$`,
)

// Classify labels ctx. Rules are tried in order: sentence start, the
// previous-word classes in wordRules order, a list in progress, then Default.
func Classify(ctx caret.Context, store *lexicon.Store) Classification {
	lead := ctx.Lead()
	cls := Classification{List: IsListInProgress(lead)}

	switch {
	case IsSentenceStart(lead):
		cls.Label = SentenceStart
		return cls
	case ctx.PreviousWord != "" && store != nil:
		for _, rule := range wordRules {
			if store.InClass(rule.class, ctx.PreviousWord) {
				cls.Label = rule.label
				return cls
			}
		}
	}

	if cls.List {
		cls.Label = ListInProgress
		return cls
	}
	cls.Label = Default
	return cls
}

// IsSentenceStart reports whether the next word begins a sentence: lead is
// blank, or ends in a terminator (optionally followed by closing quotes or
// brackets) and then whitespace.
func IsSentenceStart(lead string) bool {
	trimmed := strings.TrimRightFunc(lead, unicode.IsSpace)
	if trimmed == "" {
		return true
	}
	if len(trimmed) == len(lead) {
		return false
	}
	rs := []rune(trimmed)
	i := len(rs) - 1
	for i >= 0 && utils.IsClosingMark(rs[i]) {
		i--
	}
	return i >= 0 && utils.IsTerminator(rs[i])
}

// IsListInProgress reports whether the current sentence of lead ends in a list
// that is still being written.
func IsListInProgress(lead string) bool {
	return listPattern.MatchString(currentSentence(lead))
}

// currentSentence returns the part of s after its last sentence terminator.
func currentSentence(s string) string {
	idx := strings.LastIndexFunc(s, utils.IsTerminator)
	if idx < 0 {
		return s
	}
	_, size := utf8.DecodeRuneInString(s[idx:])
	return s[idx+size:]
}
