package suggest

import (
	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordcoach/pkg/caret"
	"github.com/bastiangx/wordcoach/pkg/classify"
	"github.com/bastiangx/wordcoach/pkg/grammar"
	"github.com/bastiangx/wordcoach/pkg/lexicon"
)

// Options configures an Engine.
type Options struct {
	PrefixLimit int
	// Memoize keeps the assessment of the last text.
	Memoize bool
}

// Result is the output of one pass over text and caret.
type Result struct {
	Context        caret.Context
	Classification classify.Classification
	Assessment     grammar.Assessment
	Level          lexicon.Level
	Candidates     []Candidate
	Suggestions    []string
}

// Engine runs the whole local pipeline. It is safe for concurrent use.
type Engine struct {
	store     *lexicon.Store
	generator *Generator
	memo      *AssessCache
}

// NewEngine creates an Engine over store.
func NewEngine(store *lexicon.Store, opts Options) *Engine {
	e := &Engine{
		store:     store,
		generator: NewGenerator(store, opts.PrefixLimit),
	}
	if opts.Memoize {
		e.memo = NewAssessCache()
	}
	return e
}

// Store returns the lexicon the engine draws from.
func (e *Engine) Store() *lexicon.Store {
	return e.store
}

// Assess returns the grammar assessment of text. The returned value may be
// shared with other callers and must not be modified.
func (e *Engine) Assess(text string) grammar.Assessment {
	if e.memo == nil {
		return grammar.Assess(text)
	}
	return e.memo.Get(text, grammar.Assess)
}

// Suggest extracts the caret context, classifies it, assesses text and
// returns up to limit merged local suggestions. Out of range carets are
// clamped and unknown levels treated as beginner.
func (e *Engine) Suggest(text string, caretPos int, level lexicon.Level, limit int) Result {
	level = level.Normalize()
	ctx := caret.Extract(text, caretPos)
	cls := classify.Classify(ctx, e.store)
	assessment := e.Assess(text)
	cands := e.generator.Generate(ctx, cls, assessment, level)

	res := Result{
		Context:        ctx,
		Classification: cls,
		Assessment:     assessment,
		Level:          level,
		Candidates:     cands,
		Suggestions:    Merge(cands, nil, limit, cls.Capitalize()),
	}
	log.Debugf("Suggest prefix=%q prev=%q label=%s list=%t candidates=%d",
		ctx.Prefix, ctx.PreviousWord, cls.Label, cls.List, len(cands))
	return res
}

// Blend merges remote candidates behind the local ones of r.
func (e *Engine) Blend(r Result, remote []string, limit int) []string {
	return Merge(r.Candidates, remote, limit, r.Classification.Capitalize())
}

// MemoStats returns assessment cache counts, or nil when memoisation is off.
func (e *Engine) MemoStats() map[string]int {
	if e.memo == nil {
		return nil
	}
	return e.memo.Stats()
}
