// Package verdict decides whether the collected evidence backs an accusation.
package verdict

// Threshold is the number of clues that must point at the accused for the case to hold.
const Threshold = 2

type Outcome string

const (
	Supported    Outcome = "SUPPORTED"
	Weak         Outcome = "WEAK"
	NoEvidence   Outcome = "NO_EVIDENCE"
	NoAccusation Outcome = "NO_ACCUSATION"
)

// ClueSource yields collected clues in ascending order.
type ClueSource interface {
	Walk(fn func(clue string))
	IsEmpty() bool
}

// SuspectLookup finds the suspect a clue implicates.
type SuspectLookup interface {
	Lookup(clue string) (string, bool)
}

type Verdict struct {
	Accused string
	Count   int
	Outcome Outcome
	// Clues lists, in ledger order, the clues that implicate the accused.
	Clues []string
}

// Render counts how many collected clues implicate accused. Suspect names are compared
// exactly, case included. With an empty ledger, or no accused name, nothing is looked up.
func Render(ledger ClueSource, index SuspectLookup, accused string) Verdict {
	if ledger.IsEmpty() {
		return Verdict{Accused: accused, Outcome: NoEvidence}
	}
	if accused == "" {
		return Verdict{Outcome: NoAccusation}
	}

	v := Verdict{Accused: accused}
	ledger.Walk(func(clue string) {
		if suspect, ok := index.Lookup(clue); ok && suspect == accused {
			v.Count++
			v.Clues = append(v.Clues, clue)
		}
	})

	v.Outcome = Weak
	if v.Count >= Threshold {
		v.Outcome = Supported
	}
	return v
}
