//go:build test

package suggest

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordcoach/pkg/lexicon"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// typing replays a writer typing a sentence one rune at a time.
var typing = []string{
	"I like apples, pears and bananas.",
	"The big dog ran to the park because it was sunny.",
	"Suddenly, we heard a loud noise! Was it you?",
	"My friend said, \"Can we go now?\"",
}

type slowFetcher struct{ delay time.Duration }

func (f slowFetcher) PrefixMatches(ctx context.Context, fragment string) []string {
	return f.wait(ctx, fragment)
}

func (f slowFetcher) Followups(ctx context.Context, word string) []string {
	return f.wait(ctx, word)
}

func (f slowFetcher) wait(ctx context.Context, term string) []string {
	select {
	case <-time.After(f.delay):
		return []string{term + "s"}
	case <-ctx.Done():
		return nil
	}
}

func settledGoroutines() int {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	return runtime.NumGoroutine()
}

func TestSessionGoroutineLeak(t *testing.T) {
	for _, rounds := range []int{10, 50} {
		t.Run(fmt.Sprintf("rounds_%d", rounds), func(t *testing.T) {
			baseline := settledGoroutines()

			engine := NewEngine(lexicon.Builtin(), Options{Memoize: true})
			s := NewSession(engine, slowFetcher{delay: 2 * time.Millisecond}, time.Millisecond, func(Update) {})
			for i := 0; i < rounds; i++ {
				for _, sentence := range typing {
					runes := []rune(sentence)
					for n := range runes {
						s.Update(string(runes[:n+1]), n+1, lexicon.Intermediate, 10)
					}
				}
			}
			s.Close()

			delta := settledGoroutines() - baseline
			t.Logf("rounds=%d goroutine_delta=%d", rounds, delta)
			if delta > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", delta)
			}
		})
	}
}

func TestEngineConcurrentUse(t *testing.T) {
	engine := NewEngine(lexicon.Builtin(), Options{Memoize: true})

	var wg sync.WaitGroup
	var totalOps atomic.Int64
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			sentence := typing[worker%len(typing)]
			runes := []rune(sentence)
			for iter := 0; iter < 20; iter++ {
				for n := range runes {
					res := engine.Suggest(string(runes[:n+1]), n+1, lexicon.Level(worker%3), 8)
					if len(res.Suggestions) > 8 {
						t.Errorf("cap exceeded: %d", len(res.Suggestions))
					}
					totalOps.Add(1)
				}
			}
		}(worker)
	}
	wg.Wait()
	t.Logf("total_ops=%d memo=%v", totalOps.Load(), engine.MemoStats())
}
