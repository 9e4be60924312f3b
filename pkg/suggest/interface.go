// Package suggest turns text and a caret position into a short, ranked list of
// words and phrases to offer next, optionally topped up from a remote word
// service.
package suggest

import "context"

// Fetcher supplies remote candidates. Implementations must degrade to an
// empty slice on any failure and should return promptly once ctx is done.
type Fetcher interface {
	// PrefixMatches returns words that start with fragment.
	PrefixMatches(ctx context.Context, fragment string) []string

	// Followups returns words that commonly follow word.
	Followups(ctx context.Context, word string) []string
}
