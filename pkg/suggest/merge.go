package suggest

import (
	"strings"

	"github.com/bastiangx/wordcoach/internal/utils"
)

// Merge builds the display list: local candidates first, then remote ones,
// with case-insensitive duplicates dropped (first seen wins) and the result
// cut to limit entries. When capitalize is set each stored entry gets an upper
// case first letter; duplicates are still detected on the original text.
// The result is never nil.
func Merge(local []Candidate, remote []string, limit int, capitalize bool) []string {
	if limit <= 0 {
		return []string{}
	}
	out := make([]string, 0, min(limit, len(local)+len(remote)))
	filter := utils.NewSuggestionFilter()

	add := func(text string) bool {
		if strings.TrimSpace(text) == "" || !filter.ShouldInclude(text) {
			return len(out) < limit
		}
		if capitalize {
			text = utils.CapitalizeFirst(text)
		}
		out = append(out, text)
		return len(out) < limit
	}

	for _, c := range local {
		if !add(c.Text) {
			return out
		}
	}
	for _, r := range remote {
		if !add(r) {
			return out
		}
	}
	return out
}

// Texts returns the text of every candidate, duplicates included.
func Texts(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Text
	}
	return out
}
