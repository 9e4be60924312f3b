package suggest

import (
	"hash/fnv"
	"sync"

	"github.com/bastiangx/wordcoach/pkg/grammar"
)

// AssessCache remembers the assessment of the most recent text.
type AssessCache struct {
	mu     sync.Mutex
	key    uint64
	text   string
	value  grammar.Assessment
	valid  bool
	hits   int
	misses int
}

// NewAssessCache creates an empty cache.
func NewAssessCache() *AssessCache {
	return &AssessCache{}
}

// Get returns the assessment of text, computing it with assess on a miss.
func (ac *AssessCache) Get(text string, assess func(string) grammar.Assessment) grammar.Assessment {
	key := hashText(text)

	ac.mu.Lock()
	if ac.valid && ac.key == key && ac.text == text {
		ac.hits++
		v := ac.value
		ac.mu.Unlock()
		return v
	}
	ac.misses++
	ac.mu.Unlock()

	v := assess(text)

	ac.mu.Lock()
	ac.key, ac.text, ac.value, ac.valid = key, text, v, true
	ac.mu.Unlock()
	return v
}

// Stats returns hit and miss counts.
func (ac *AssessCache) Stats() map[string]int {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	return map[string]int{
		"hits":   ac.hits,
		"misses": ac.misses,
	}
}

func hashText(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
