package grammar

import (
	"strings"
	"unicode"

	"github.com/bastiangx/wordcoach/internal/utils"
	"github.com/bastiangx/wordcoach/pkg/caret"
)

// Text is a piece of writing prepared for the objective detectors.
type Text struct {
	Raw       string
	Sentences []string
	Words     []string
	Tags      []POS
}

// Analyze splits raw into sentences and words and tags the words.
func Analyze(raw string, tagger *Tagger) Text {
	words := caret.Words(raw)
	return Text{
		Raw:       raw,
		Sentences: SplitSentences(raw),
		Words:     words,
		Tags:      tagger.Tag(words),
	}
}

// SplitSentences splits text after every sentence terminator that is directly
// followed by whitespace. Sentences are trimmed and blank ones dropped.
func SplitSentences(text string) []string {
	rs := []rune(text)
	var sentences []string
	start := 0
	for i := 0; i < len(rs); i++ {
		if !utils.IsTerminator(rs[i]) || i+1 >= len(rs) || !unicode.IsSpace(rs[i+1]) {
			continue
		}
		sentences = appendSentence(sentences, string(rs[start:i+1]))
		start = i + 1
	}
	return appendSentence(sentences, string(rs[start:]))
}

func appendSentence(sentences []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// firstLetter returns the first letter of s and whether there was one.
func firstLetter(s string) (rune, bool) {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return r, true
		}
	}
	return 0, false
}

// endsWith reports whether s ends in mark, ignoring trailing closing
// quotes and brackets.
func endsWith(s string, mark rune) bool {
	rs := []rune(strings.TrimRightFunc(s, unicode.IsSpace))
	i := len(rs) - 1
	for i >= 0 && utils.IsClosingMark(rs[i]) {
		i--
	}
	return i >= 0 && rs[i] == mark
}
