package suggest

import (
	"strings"

	"github.com/bastiangx/wordcoach/internal/utils"
	"github.com/bastiangx/wordcoach/pkg/caret"
	"github.com/bastiangx/wordcoach/pkg/classify"
	"github.com/bastiangx/wordcoach/pkg/grammar"
	"github.com/bastiangx/wordcoach/pkg/lexicon"
)

// DefaultPrefixLimit caps prefix completions per request.
const DefaultPrefixLimit = 6

// Reason says which source produced a candidate.
type Reason string

const (
	ReasonPrefix    Reason = "prefix"
	ReasonContext   Reason = "context"
	ReasonList      Reason = "list"
	ReasonFallback  Reason = "fallback"
	ReasonObjective Reason = "objective"
)

// Candidate is a suggestion before merging. The same text may appear more
// than once.
type Candidate struct {
	Text      string
	Reason    Reason
	Category  lexicon.CategoryID
	Objective grammar.ObjectiveID
	Level     lexicon.Level
	Hint      string
}

// labelPools maps each classifier label to the categories it draws from.
// Default has no pool of its own and only ever gets the fallback.
var labelPools = map[classify.Label][]lexicon.CategoryID{
	classify.SentenceStart:       {lexicon.SentenceStarters, lexicon.FrontedAdverbials, lexicon.QuestionOpeners, lexicon.ImperativeVerbs},
	classify.AfterPronoun:        {lexicon.ModalVerbs, lexicon.PronounVerbs, lexicon.Actions},
	classify.AfterDeterminer:     {lexicon.NounPhrasePrompts, lexicon.People, lexicon.Actions},
	classify.AfterLinkingVerb:    {lexicon.Descriptions},
	classify.AfterTimeMarker:     {lexicon.Actions},
	classify.AfterModalHelper:    {lexicon.Actions},
	classify.AfterQuestionOpener: {lexicon.People},
	classify.ListInProgress:      {lexicon.ListPrompts, lexicon.Conjunctions},
}

var fallbackPool = []lexicon.CategoryID{lexicon.HighFrequency}

// PoolFor returns the categories suggested for label.
func PoolFor(label classify.Label) []lexicon.CategoryID {
	return append([]lexicon.CategoryID(nil), labelPools[label]...)
}

// Generator draws candidates from a lexicon store. It keeps no state
// between calls.
type Generator struct {
	store       *lexicon.Store
	prefixLimit int
}

// NewGenerator creates a Generator over store. A non-positive prefixLimit
// means DefaultPrefixLimit.
func NewGenerator(store *lexicon.Store, prefixLimit int) *Generator {
	if prefixLimit <= 0 {
		prefixLimit = DefaultPrefixLimit
	}
	return &Generator{store: store, prefixLimit: prefixLimit}
}

// Generate is a convenience wrapper around a Generator with the default
// prefix limit.
func Generate(ctx caret.Context, cls classify.Classification, assessment grammar.Assessment, store *lexicon.Store, level lexicon.Level) []Candidate {
	return NewGenerator(store, DefaultPrefixLimit).Generate(ctx, cls, assessment, level)
}

// Generate returns candidates in priority order:
//
//  1. prefix completions from the whole lexicon
//  2. the label's pool, plus list prompts when a list is in progress
//  3. common words, only if nothing above produced anything
//  4. examples and related entries of unmet objectives
//
// With a prefix, pools are only consulted after a known previous word and
// every pool entry must extend the prefix. Nothing above level is returned.
func (g *Generator) Generate(ctx caret.Context, cls classify.Classification, assessment grammar.Assessment, level lexicon.Level) []Candidate {
	if g.store == nil {
		return nil
	}
	level = level.Normalize()
	prefix := ctx.Prefix

	var out []Candidate
	if prefix != "" {
		for _, m := range g.store.Complete(prefix, level, g.prefixLimit) {
			out = append(out, fromMatch(m, ReasonPrefix))
		}
	}

	if prefix == "" || cls.Label.IsAfterWord() {
		out = g.appendPool(out, labelPools[cls.Label], level, prefix, ReasonContext)
		if cls.List && cls.Label != classify.ListInProgress {
			out = g.appendPool(out, labelPools[classify.ListInProgress], level, prefix, ReasonList)
		}
	}

	if len(out) == 0 {
		out = g.appendPool(out, fallbackPool, level, prefix, ReasonFallback)
	}

	for _, o := range assessment.Unmet() {
		if !level.Allows(o.Level()) {
			continue
		}
		for _, ex := range o.Examples {
			if !extendsPrefix(ex, prefix) {
				continue
			}
			out = append(out, Candidate{Text: ex, Reason: ReasonObjective, Objective: o.ID, Level: o.Level(), Hint: o.Tip})
		}
		if o.Related == "" {
			continue
		}
		for _, m := range g.store.Pool(level, o.Related) {
			if !extendsPrefix(m.Text, prefix) {
				continue
			}
			c := fromMatch(m, ReasonObjective)
			c.Objective = o.ID
			out = append(out, c)
		}
	}
	return out
}

func (g *Generator) appendPool(out []Candidate, ids []lexicon.CategoryID, level lexicon.Level, prefix string, reason Reason) []Candidate {
	if len(ids) == 0 {
		return out
	}
	for _, m := range g.store.Pool(level, ids...) {
		if extendsPrefix(m.Text, prefix) {
			out = append(out, fromMatch(m, reason))
		}
	}
	return out
}

func fromMatch(m lexicon.Match, reason Reason) Candidate {
	return Candidate{Text: m.Text, Reason: reason, Category: m.Category, Level: m.Level, Hint: m.Hint}
}

// extendsPrefix reports whether text starts with prefix, ignoring case, and
// is longer than it. Every text extends the empty prefix.
func extendsPrefix(text, prefix string) bool {
	if prefix == "" {
		return true
	}
	return len(text) > len(prefix) && utils.HasPrefixIgnoreCase(text, prefix) && !strings.EqualFold(text, prefix)
}
