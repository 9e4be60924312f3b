package lexicon

func b(texts ...string) []Entry { return entries(Beginner, texts) }
func im(texts ...string) []Entry { return entries(Intermediate, texts) }
func adv(texts ...string) []Entry { return entries(Advanced, texts) }

func entries(level Level, texts []string) []Entry {
	out := make([]Entry, len(texts))
	for i, t := range texts {
		out[i] = Entry{Text: t, Level: level}
	}
	return out
}

func join(groups ...[]Entry) []Entry {
	var out []Entry
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func hinted(e Entry, hint string) Entry {
	e.Hint = hint
	return e
}

// BuiltinCategories returns the bundled word bank in declaration order.
// The returned slice is fresh on every call.
func BuiltinCategories() []Category {
	return []Category{
		{
			ID: SentenceStarters, Label: "Sentence starters", Color: "#4f86c6",
			Entries: join(
				b("I", "The", "My", "We", "There is", "There are", "It was", "One day"),
				im("Once upon a time", "In the morning", "After that", "I think that", "First of all"),
				adv("In my opinion", "Despite this", "On the other hand", "It is clear that"),
			),
		},
		{
			ID: FrontedAdverbials, Label: "Fronted adverbials", Color: "#7a5cc6",
			Entries: join(
				b("Suddenly,", "Next,", "Finally,"),
				im("Later that day,", "Without warning,", "In the distance,", "As quick as a flash,"),
				adv("Reluctantly,", "Before long,", "Having finished lunch,"),
			),
		},
		{
			ID: QuestionOpeners, Label: "Question words", Color: "#c65c8a",
			Entries: join(
				b("Who", "What", "Where", "When", "Why", "How"),
				im("Which", "Can you", "Do you"),
				adv("To what extent", "How might"),
			),
		},
		{
			ID: ImperativeVerbs, Label: "Bossy verbs", Color: "#c6785c",
			Entries: join(
				b("Put", "Take", "Mix", "Cut", "Look"),
				im("Stir", "Place", "Pour", "Remember"),
				adv("Ensure", "Carefully measure"),
			),
		},
		{
			ID: Conjunctions, Label: "Joining words", Color: "#5cc68a",
			Entries: join(
				b("and", "but", "or", "so"),
				im("yet"),
				adv("nor"),
			),
		},
		{
			ID: Connectors, Label: "Connectors", Color: "#3fa37a",
			Entries: join(
				b("because", "when", "then"),
				im("if", "that", "after", "before", "while", "until"),
				adv("although", "however", "unless", "whereas", "since"),
			),
		},
		{
			ID: TimeWords, Label: "Time words", Color: "#c6b25c",
			Entries: join(
				b("First", "Next", "Then", "After that", "Finally"),
				im("Later", "Meanwhile", "Soon", "Eventually"),
				adv("Subsequently", "Shortly afterwards"),
			),
		},
		{
			ID: ModalVerbs, Label: "Modal verbs", Color: "#5c9ec6",
			Entries: join(
				b("can", "will"),
				im("could", "would", "should", "might"),
				adv("must", "may", "ought to"),
			),
		},
		{
			ID: PronounVerbs, Label: "Verbs for I, we and they", Color: "#5cb8c6",
			Entries: join(
				b("am", "like", "want", "have", "went", "saw", "feel"),
				im("think", "wondered", "decided", "noticed"),
				adv("realised", "believe", "discovered"),
			),
		},
		{
			ID: People, Label: "People", Color: "#e0a458",
			Entries: join(
				b("boy", "girl", "teacher", "friend", "mum", "dad"),
				im("children", "doctor", "neighbour", "family"),
				adv("audience", "explorer", "scientist"),
			),
		},
		{
			ID: Actions, Label: "Actions", Color: "#d9534f",
			Entries: join(
				b("run", "ran", "jump", "play", "eat", "walk", "go", "went", "look"),
				im("climbed", "shouted", "whispered", "explored", "raced"),
				adv("hesitated", "trudged", "sprinted", "clambered"),
			),
		},
		{
			ID: Descriptions, Label: "Descriptions", Color: "#9b59b6",
			Entries: join(
				b("happy", "sad", "big", "small", "kind", "funny", "hot", "cold"),
				im("excited", "nervous", "enormous", "tiny", "brave"),
				adv("anxious", "furious", "magnificent", "mysterious"),
			),
		},
		{
			ID: NounPhrasePrompts, Label: "Noun phrase builders", Color: "#8e7cc3",
			Entries: []Entry{
				hinted(Entry{Text: "big", Level: Beginner}, "add a describing word before the noun"),
				hinted(Entry{Text: "little", Level: Beginner}, "add a describing word before the noun"),
				hinted(Entry{Text: "red", Level: Beginner}, "add a colour before the noun"),
				hinted(Entry{Text: "old", Level: Beginner}, "add a describing word before the noun"),
				hinted(Entry{Text: "tall old", Level: Intermediate}, "use two adjectives"),
				hinted(Entry{Text: "bright red", Level: Intermediate}, "use two adjectives"),
				hinted(Entry{Text: "gleaming silver", Level: Advanced}, "choose precise adjectives"),
				hinted(Entry{Text: "ancient, crumbling", Level: Advanced}, "separate two adjectives with a comma"),
			},
		},
		{
			ID: ListPrompts, Label: "Lists", Color: "#6c757d",
			Entries: []Entry{
				hinted(Entry{Text: ",", Level: Beginner}, "put a comma between items in a list"),
				hinted(Entry{Text: "and", Level: Beginner}, "use 'and' before the last item"),
				hinted(Entry{Text: "or", Level: Intermediate}, "use 'or' to offer a choice"),
				hinted(Entry{Text: "as well as", Level: Advanced}, "add one more item"),
			},
		},
		{
			ID: HighFrequency, Label: "Common words", Color: "#adb5bd",
			Entries: join(
				b("the", "a", "and", "to", "is", "it", "in", "was", "of", "he", "she",
					"they", "I", "you", "said", "my", "we", "are", "on", "with", "have",
					"for", "this", "that", "there", "went"),
				im("because", "thought", "through", "people", "different"),
				adv("although", "necessary", "especially"),
			),
		},
	}
}

// BuiltinClasses returns the closed word classes used by the classifier.
func BuiltinClasses() map[WordClassID][]string {
	return map[WordClassID][]string{
		Pronouns:      {"i", "you", "he", "she", "it", "we", "they"},
		Determiners:   {"the", "a", "an", "my", "your", "his", "her", "its", "our", "their", "this", "that", "these", "those", "some", "every", "each"},
		LinkingVerbs:  {"is", "am", "are", "was", "were", "be", "been", "seems", "seemed", "looks", "looked", "feels", "felt", "becomes", "became"},
		TimeMarkers:   {"then", "next", "later", "yesterday", "today", "tomorrow", "finally", "afterwards", "soon", "meanwhile", "eventually", "first"},
		ModalHelpers:  {"can", "could", "will", "would", "should", "might", "must", "may", "shall"},
		QuestionWords: {"who", "what", "where", "when", "why", "how", "which", "whose"},
	}
}

// Builtin returns a Store over the bundled tables.
func Builtin() *Store {
	return NewStore(BuiltinCategories(), BuiltinClasses())
}
