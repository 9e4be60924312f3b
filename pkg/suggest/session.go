package suggest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordcoach/pkg/caret"
	"github.com/bastiangx/wordcoach/pkg/lexicon"
)

// DefaultDebounce is the pause after the last caret change before remote
// candidates are requested.
const DefaultDebounce = 175 * time.Millisecond

// Update is one published suggestion list.
type Update struct {
	// Token is the generation the list belongs to.
	Token uint64
	// Tag is whatever the caller passed to UpdateTagged.
	Tag         string
	Result      Result
	Suggestions []string
	// Final is set when no further list will follow for Token.
	Final bool
}

// Session tracks one editor's caret. Every Update call starts a new
// generation; remote results are only published while their generation is
// still the latest, so a slow reply never overwrites a newer list.
type Session struct {
	engine   *Engine
	fetcher  Fetcher
	debounce time.Duration
	onUpdate func(Update)

	generation atomic.Uint64

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewSession creates a Session. fetcher may be nil to disable remote
// candidates. onUpdate receives the blended list of the latest generation;
// it is called with the session lock held and must not call back into the
// Session.
func NewSession(engine *Engine, fetcher Fetcher, debounce time.Duration, onUpdate func(Update)) *Session {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Session{
		engine:   engine,
		fetcher:  fetcher,
		debounce: debounce,
		onUpdate: onUpdate,
	}
}

// Token returns the current generation.
func (s *Session) Token() uint64 {
	return s.generation.Load()
}

// Update computes local suggestions for the new text and caret and returns
// them at once. Any pending or in-flight remote fetch is abandoned, and a new
// one is scheduled after the debounce window when the context gives
// something to look up. The returned Update is Final when no remote list
// will follow.
func (s *Session) Update(text string, caretPos int, level lexicon.Level, limit int) Update {
	return s.UpdateTagged("", text, caretPos, level, limit)
}

// UpdateTagged is Update with a caller tag that is copied into every Update
// of the new generation, including the remote one.
func (s *Session) UpdateTagged(tag, text string, caretPos int, level lexicon.Level, limit int) Update {
	res := s.engine.Suggest(text, caretPos, level, limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.generation.Add(1)
	s.stopPendingLocked()

	up := Update{Token: token, Tag: tag, Result: res, Suggestions: res.Suggestions, Final: true}
	if s.closed || s.fetcher == nil {
		return up
	}
	q := remoteQueryFor(res.Context)
	if q.kind == noQuery {
		return up
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	s.timer = time.AfterFunc(s.debounce, func() {
		defer s.wg.Done()
		s.fetch(ctx, tag, token, q, res, limit)
	})
	up.Final = false
	return up
}

// Close abandons pending work and waits for in-flight fetches to return.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.generation.Add(1)
	s.stopPendingLocked()
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Session) stopPendingLocked() {
	if s.timer != nil {
		// a stopped timer never runs its func, so release its slot here
		if s.timer.Stop() {
			s.wg.Done()
		}
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) fetch(ctx context.Context, tag string, token uint64, q remoteQuery, res Result, limit int) {
	if ctx.Err() != nil || s.generation.Load() != token {
		return
	}

	var remote []string
	switch q.kind {
	case prefixQuery:
		remote = s.fetcher.PrefixMatches(ctx, q.term)
	case followupQuery:
		remote = s.fetcher.Followups(ctx, q.term)
	}

	if ctx.Err() != nil || s.generation.Load() != token {
		log.Debugf("Dropping stale remote result for generation %d", token)
		return
	}
	merged := s.engine.Blend(res, remote, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.generation.Load() != token {
		log.Debugf("Dropping stale remote result for generation %d", token)
		return
	}
	if s.onUpdate != nil {
		s.onUpdate(Update{Token: token, Tag: tag, Result: res, Suggestions: merged, Final: true})
	}
}

type queryKind int

const (
	noQuery queryKind = iota
	prefixQuery
	followupQuery
)

type remoteQuery struct {
	kind queryKind
	term string
}

// remoteQueryFor picks what to ask the remote service: completions of the
// word being typed, or else words that follow the previous word.
func remoteQueryFor(ctx caret.Context) remoteQuery {
	switch {
	case ctx.Prefix != "":
		return remoteQuery{kind: prefixQuery, term: ctx.Prefix}
	case ctx.PreviousWord != "":
		return remoteQuery{kind: followupQuery, term: ctx.PreviousWord}
	}
	return remoteQuery{kind: noQuery}
}
