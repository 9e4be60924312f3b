package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r can appear anywhere in a word: letters, digits
// and combining marks, in any script.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// IsJoiner reports whether r joins two parts of one word, as in "don't" or
// "well-known". A joiner only counts when both neighbours are word runes.
func IsJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '-' || r == '‐'
}

// IsTerminator reports whether r ends a sentence.
func IsTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

// IsClosingMark reports whether r may trail a terminator, as in `"Stop!"`.
func IsClosingMark(r rune) bool {
	switch r {
	case '"', '\'', '’', '”', ')', ']', '»':
		return true
	}
	return false
}

// HasPrefixIgnoreCase checks if string has prefix case-insensitively
func HasPrefixIgnoreCase(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

// CapitalizeFirst upper-cases the first rune of s when it is a letter.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLetter(r) || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
