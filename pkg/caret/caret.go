// Package caret turns raw text and a cursor position into the word context
// the classifier and candidate generator work from.
//
// Offsets are counted in runes, not bytes. Out of range offsets are clamped.
// Words are runs of Unicode letters, digits and marks; an apostrophe or hyphen
// stays inside a word only when a word rune sits on both sides of it.
package caret

import (
	"strings"
	"unicode"

	"github.com/bastiangx/wordcoach/internal/utils"
)

// Context is the word context around the caret.
type Context struct {
	// Prefix is the word being typed, directly before the caret.
	Prefix string
	// PreviousWord is the last complete word before Prefix, without
	// punctuation. It is empty when a sentence terminator lies in between.
	PreviousWord string
	// TextBeforeCaret is the full text up to the caret.
	TextBeforeCaret string
}

// Lead returns the text before the caret without the in-progress prefix.
func (c Context) Lead() string {
	return c.TextBeforeCaret[:len(c.TextBeforeCaret)-len(c.Prefix)]
}

// ClampCaret limits caret to [0, rune count of text].
func ClampCaret(text string, caret int) int {
	if caret < 0 {
		return 0
	}
	if n := len([]rune(text)); caret > n {
		return n
	}
	return caret
}

// Extract derives the caret Context for text with the caret at the given rune offset.
func Extract(text string, caret int) Context {
	runes := []rune(text)
	caret = ClampCaret(text, caret)
	before := runes[:caret]

	start := wordStart(before, len(before))
	ctx := Context{
		Prefix:          string(before[start:]),
		TextBeforeCaret: string(before),
	}

	j := start
	crossedTerminator := false
	for j > 0 && !utils.IsWordRune(before[j-1]) {
		if utils.IsTerminator(before[j-1]) {
			crossedTerminator = true
		}
		j--
	}
	if j > 0 && !crossedTerminator {
		ctx.PreviousWord = string(before[wordStart(before, j):j])
	}
	return ctx
}

// wordStart walks left from end over word runes and inner joiners and
// returns the index where the word begins. end is returned when rs[end-1]
// does not belong to a word.
func wordStart(rs []rune, end int) int {
	i := end
	for i > 0 {
		r := rs[i-1]
		if utils.IsWordRune(r) {
			i--
			continue
		}
		if utils.IsJoiner(r) && i < end && i-1 > 0 && utils.IsWordRune(rs[i-2]) && utils.IsWordRune(rs[i]) {
			i--
			continue
		}
		break
	}
	return i
}

// Words splits text into words using the same rules as Extract.
func Words(text string) []string {
	rs := []rune(text)
	var words []string
	start := -1
	for i := 0; i <= len(rs); i++ {
		in := false
		if i < len(rs) {
			r := rs[i]
			switch {
			case utils.IsWordRune(r):
				in = true
			case utils.IsJoiner(r):
				in = start >= 0 && utils.IsWordRune(rs[i-1]) && i+1 < len(rs) && utils.IsWordRune(rs[i+1])
			}
		}
		if in && start < 0 {
			start = i
		}
		if !in && start >= 0 {
			words = append(words, string(rs[start:i]))
			start = -1
		}
	}
	return words
}

// EndsWithSpace reports whether s ends in whitespace.
func EndsWithSpace(s string) bool {
	trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
	return len(trimmed) < len(s)
}
