// Package lexicon holds the categorized word and phrase lists that suggestions are drawn from.
//
// A Store is built once at start-up and never mutated afterwards, so it can be
// shared freely between goroutines. Iteration order is part of its contract:
// categories follow CategoryIDs, and entries keep the order they were declared in.
package lexicon

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Match is an entry tagged with the category it came from.
type Match struct {
	Entry
	Category CategoryID
}

// Store is an immutable lexicon: categories, a prefix index over every entry
// and the closed word classes.
type Store struct {
	categories map[CategoryID]Category
	order      []CategoryID
	flat       []Match
	index      *patricia.Trie
	classes    map[WordClassID]map[string]struct{}
}

// NewStore copies categories and classes into a new Store. Categories with an
// unknown id are dropped. Entries with empty text are skipped.
func NewStore(categories []Category, classes map[WordClassID][]string) *Store {
	byID := make(map[CategoryID]Category, len(categories))
	for _, c := range categories {
		if !c.ID.Valid() {
			log.Warnf("Dropping unknown lexicon category %q", c.ID)
			continue
		}
		existing := byID[c.ID]
		existing.ID = c.ID
		if c.Label != "" {
			existing.Label = c.Label
		}
		if c.Color != "" {
			existing.Color = c.Color
		}
		for _, e := range c.Entries {
			e.Text = strings.TrimSpace(e.Text)
			if e.Text == "" {
				continue
			}
			e.Level = e.Level.Normalize()
			existing.Entries = append(existing.Entries, e)
		}
		byID[c.ID] = existing
	}

	s := &Store{
		categories: make(map[CategoryID]Category, len(byID)),
		index:      patricia.NewTrie(),
		classes:    make(map[WordClassID]map[string]struct{}, len(classes)),
	}

	for _, id := range CategoryIDs {
		c, ok := byID[id]
		if !ok {
			continue
		}
		s.categories[id] = c
		s.order = append(s.order, id)
		for _, e := range c.Entries {
			pos := len(s.flat)
			s.flat = append(s.flat, Match{Entry: e, Category: id})
			s.indexEntry(normalizeWord(e.Text), pos)
		}
	}

	for class, words := range classes {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[normalizeWord(w)] = struct{}{}
		}
		s.classes[class] = set
	}

	log.Debugf("Lexicon ready: %d categories, %d entries", len(s.order), len(s.flat))
	return s
}

// indexEntry records pos under key. The same text can live in several
// categories, so each key holds a list of flat positions.
func (s *Store) indexEntry(key string, pos int) {
	k := patricia.Prefix(key)
	if item := s.index.Get(k); item != nil {
		s.index.Set(k, append(item.([]int), pos))
		return
	}
	s.index.Insert(k, []int{pos})
}

// Category returns a copy of the category with the given id.
func (s *Store) Category(id CategoryID) (Category, bool) {
	c, ok := s.categories[id]
	if !ok {
		return Category{}, false
	}
	c.Entries = append([]Entry(nil), c.Entries...)
	return c, true
}

// Categories returns copies of all categories in declaration order.
func (s *Store) Categories() []Category {
	out := make([]Category, 0, len(s.order))
	for _, id := range s.order {
		c, _ := s.Category(id)
		out = append(out, c)
	}
	return out
}

// WordBank returns the categories as a writer at level sees them. Categories
// with nothing visible are left out.
func (s *Store) WordBank(level Level) []Category {
	var out []Category
	for _, id := range s.order {
		c := s.categories[id]
		visible := c.Visible(level)
		if len(visible) == 0 {
			continue
		}
		c.Entries = visible
		out = append(out, c)
	}
	return out
}

// Entries returns every entry visible at level, flattened in lexicon order.
func (s *Store) Entries(level Level) []Match {
	out := make([]Match, 0, len(s.flat))
	for _, m := range s.flat {
		if level.Allows(m.Level) {
			out = append(out, m)
		}
	}
	return out
}

// Pool returns the entries of the given categories visible at level, one
// category after the other in the order requested.
func (s *Store) Pool(level Level, ids ...CategoryID) []Match {
	var out []Match
	for _, id := range ids {
		c, ok := s.categories[id]
		if !ok {
			continue
		}
		for _, e := range c.Entries {
			if level.Allows(e.Level) {
				out = append(out, Match{Entry: e, Category: id})
			}
		}
	}
	return out
}

// Complete returns up to limit entries whose lower-cased text starts with
// prefix and is not the prefix itself. Results keep lexicon order, not
// alphabetical trie order. An empty prefix or non-positive limit yields nil.
func (s *Store) Complete(prefix string, level Level, limit int) []Match {
	lowerPrefix := normalizeWord(prefix)
	if lowerPrefix == "" || limit <= 0 {
		return nil
	}

	var positions []int
	err := s.index.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		if string(p) == lowerPrefix {
			return nil
		}
		positions = append(positions, item.([]int)...)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting lexicon subtree: %v", err)
		return nil
	}

	sort.Ints(positions)

	var out []Match
	for _, pos := range positions {
		m := s.flat[pos]
		if !level.Allows(m.Level) {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out
}

// InClass reports whether word belongs to the closed word class, ignoring case.
func (s *Store) InClass(class WordClassID, word string) bool {
	if word == "" {
		return false
	}
	_, ok := s.classes[class][normalizeWord(word)]
	return ok
}

// Stats returns basic counts for debug output.
func (s *Store) Stats() map[string]int {
	stats := map[string]int{
		"categories":  len(s.order),
		"entries":     len(s.flat),
		"wordClasses": len(s.classes),
	}
	for _, lvl := range []Level{Beginner, Intermediate, Advanced} {
		stats[lvl.String()] = len(s.Entries(lvl))
	}
	return stats
}

// normalizeWord lower-cases w and folds typographic apostrophes to ASCII.
func normalizeWord(w string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(w)), "’", "'")
}
