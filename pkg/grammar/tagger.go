package grammar

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// POS is a part-of-speech tag.
type POS int

const (
	Noun POS = iota
	Pronoun
	ProperNoun
	Verb
	Auxiliary
	Modal
	Adjective
	Adverb
	Determiner
	Preposition
	Conjunction
	Other
)

var posNames = [...]string{"NN", "PRP", "NNP", "VB", "AUX", "MD", "JJ", "RB", "DT", "IN", "CC", "X"}

func (p POS) String() string {
	if p < 0 || int(p) >= len(posNames) {
		return "X"
	}
	return posNames[p]
}

// IsNominal returns true if the POS is noun-like
func (p POS) IsNominal() bool {
	return p == Noun || p == Pronoun || p == ProperNoun
}

// IsVerbal returns true if the POS is verb-like
func (p POS) IsVerbal() bool {
	return p == Verb || p == Auxiliary || p == Modal
}

// IsModifier returns true if the POS is a modifier
func (p POS) IsModifier() bool {
	return p == Adjective || p == Adverb
}

// Tagger is a small dictionary and suffix based part-of-speech tagger. It is
// read-only after construction.
type Tagger struct {
	lexicon map[string]POS
}

// NewTagger creates a Tagger with the default word lists.
func NewTagger() *Tagger {
	t := &Tagger{lexicon: make(map[string]POS)}
	t.load()
	return t
}

// Tag returns one tag per word. A baseline pass looks words up or guesses
// from their suffix, then a second pass corrects tags from their neighbours.
func (t *Tagger) Tag(words []string) []POS {
	tags := make([]POS, len(words))
	for i, w := range words {
		tags[i] = t.baseline(w, i == 0)
	}

	for i := 1; i < len(tags); i++ {
		prev := tags[i-1]
		cur := tags[i]
		switch {
		// "the run", "a fast attack"
		case (prev == Determiner || prev == Adjective) && cur == Verb && !strings.HasSuffix(lowerWord(words[i]), "ed"):
			tags[i] = Noun
		// "can swim", "will play"
		case prev == Modal && cur.IsNominal() && cur != Pronoun:
			tags[i] = Verb
		// "want to play"
		case strings.EqualFold(words[i-1], "to") && cur == Noun:
			tags[i] = Verb
		}
	}
	return tags
}

func (t *Tagger) baseline(word string, first bool) POS {
	lower := lowerWord(word)
	if pos, ok := t.lexicon[lower]; ok {
		return pos
	}
	return infer(word, lower, first)
}

func infer(word, lower string, first bool) POS {
	if r, _ := utf8.DecodeRuneInString(word); !first && unicode.IsUpper(r) {
		return ProperNoun
	}

	n := utf8.RuneCountInString(lower)
	switch {
	case n > 4 && strings.HasSuffix(lower, "ly"):
		return Adverb
	case n > 4 && strings.HasSuffix(lower, "ing"), n > 3 && strings.HasSuffix(lower, "ed"):
		return Verb
	case hasAnySuffix(lower, "ful", "less", "ous", "ive", "able", "ible", "ish"):
		return Adjective
	}
	return Noun
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if len(s) > len(suf)+1 && strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func lowerWord(w string) string {
	return strings.ReplaceAll(strings.ToLower(w), "’", "'")
}

func (t *Tagger) add(pos POS, words ...string) {
	for _, w := range words {
		t.lexicon[w] = pos
	}
}

func (t *Tagger) load() {
	t.add(Determiner, "the", "a", "an", "this", "that", "these", "those", "my", "your",
		"his", "her", "its", "our", "their", "some", "any", "no", "every", "each", "all", "both",
		"few", "many", "much", "several")

	t.add(Preposition, "in", "on", "at", "to", "for", "with", "by", "from", "of", "about",
		"into", "through", "during", "before", "after", "above", "below", "between", "under", "over",
		"against", "among", "around", "behind", "beside", "beyond", "near", "towards", "toward",
		"upon", "within", "without", "across", "along", "inside", "outside", "as")

	t.add(Auxiliary, "is", "are", "was", "were", "be", "been", "being", "am",
		"have", "has", "had", "do", "does", "did")

	t.add(Modal, "can", "could", "will", "would", "shall", "should", "may", "might", "must",
		"can't", "couldn't", "won't", "wouldn't", "shouldn't", "mustn't")

	t.add(Conjunction, "and", "or", "but", "nor", "yet", "so", "because", "although",
		"though", "while", "if", "unless", "until", "since", "when", "whereas", "whenever")

	t.add(Pronoun, "i", "you", "he", "she", "it", "we", "they", "me", "him", "us", "them",
		"myself", "yourself", "himself", "herself", "itself", "ourselves", "themselves",
		"who", "whom", "whose", "which", "what", "everyone", "someone", "nobody")

	t.add(Adjective, "old", "new", "good", "bad", "great", "small", "large", "big", "little",
		"young", "long", "short", "high", "low", "dark", "bright", "happy", "sad", "kind",
		"funny", "hot", "cold", "tall", "tiny", "huge", "enormous", "brave", "excited", "nervous",
		"angry", "scary", "shiny", "soft", "loud", "quiet", "fast", "slow", "pretty", "ugly",
		"red", "blue", "green", "yellow", "black", "white", "brown", "pink", "purple", "orange",
		"grey", "gray", "golden", "silver", "ancient", "crumbling", "gleaming", "anxious",
		"furious", "magnificent", "mysterious", "fluffy", "spooky", "sparkly", "muddy", "wet")

	t.add(Adverb, "very", "quite", "really", "too", "just", "only", "now", "then", "here",
		"there", "always", "never", "often", "sometimes", "already", "still", "even", "soon",
		"later", "next", "first", "finally", "suddenly", "meanwhile", "afterwards", "eventually",
		"yesterday", "today", "tomorrow", "once", "not")

	t.add(Verb, "go", "went", "gone", "come", "came", "say", "said", "see", "saw", "seen",
		"know", "knew", "take", "took", "get", "got", "make", "made", "run", "ran", "eat", "ate",
		"play", "jump", "walk", "look", "like", "want", "think", "thought", "find", "found",
		"give", "gave", "tell", "told", "feel", "felt", "leave", "left", "swim", "swam",
		"sing", "sang", "sit", "sat", "fly", "flew", "fall", "fell", "put", "stir", "mix")
}
