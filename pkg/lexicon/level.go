package lexicon

import "strings"

// Level is the support level gating which entries a writer sees.
// Levels are ordered: an entry is visible at level L iff entry.Level <= L.
type Level int

const (
	Beginner Level = iota
	Intermediate
	Advanced
)

var levelNames = [...]string{"beginner", "intermediate", "advanced"}

func (l Level) String() string {
	if l < Beginner || l > Advanced {
		return levelNames[Beginner]
	}
	return levelNames[l]
}

// Allows reports whether an item tagged with other is visible at l.
func (l Level) Allows(other Level) bool {
	return other <= l.Normalize()
}

// Normalize maps out-of-range levels to Beginner, the most restrictive one.
func (l Level) Normalize() Level {
	if l < Beginner || l > Advanced {
		return Beginner
	}
	return l
}

// ParseLevel accepts level names ("beginner", "intermediate", "advanced"),
// their first letter, or the digits 0-2. Anything else is Beginner and
// ok is false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "b", "0", "low":
		return Beginner, true
	case "intermediate", "i", "1", "medium":
		return Intermediate, true
	case "advanced", "a", "2", "high":
		return Advanced, true
	}
	return Beginner, false
}
