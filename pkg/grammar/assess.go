// Package grammar checks a piece of writing against a fixed catalogue of
// curriculum grammar objectives.
//
// Every call to Assess returns exactly one verdict per objective, in
// catalogue order. Objectives that quantify over sentences hold vacuously
// for text without sentences; objectives that look for a feature do not.
package grammar

var defaultTagger = NewTagger()

// Verdict is the result of one objective's detector.
type Verdict struct {
	Objective Objective
	Met       bool
}

// Assessment holds one verdict per catalogue objective, in catalogue order.
type Assessment []Verdict

// Assess runs every objective over text.
func Assess(text string) Assessment {
	t := Analyze(text, defaultTagger)
	out := make(Assessment, len(catalogue))
	for i, o := range catalogue {
		out[i] = Verdict{Objective: o, Met: o.detect(t)}
	}
	return out
}

// Met returns the objectives that hold.
func (a Assessment) Met() []Objective {
	return a.filter(true)
}

// Unmet returns the objectives that do not hold, in catalogue order.
func (a Assessment) Unmet() []Objective {
	return a.filter(false)
}

func (a Assessment) filter(met bool) []Objective {
	var out []Objective
	for _, v := range a {
		if v.Met == met {
			out = append(out, v.Objective)
		}
	}
	return out
}

// Score returns the fraction of objectives met, between 0 and 1.
func (a Assessment) Score() float64 {
	if len(a) == 0 {
		return 0
	}
	return float64(len(a.Met())) / float64(len(a))
}

// Verdict returns the verdict for id.
func (a Assessment) Verdict(id ObjectiveID) (Verdict, bool) {
	for _, v := range a {
		if v.Objective.ID == id {
			return v, true
		}
	}
	return Verdict{}, false
}

// IsMet reports whether the objective id holds. Unknown ids are unmet.
func (a Assessment) IsMet(id ObjectiveID) bool {
	v, ok := a.Verdict(id)
	return ok && v.Met
}
