// Package verdict judges an accusation against the clues the detective collected.
package verdict

import (
	"sort"

	"github.com/cory-johannsen/detective/internal/game/mansion"
)

// GuiltyThreshold is the number of clues that must implicate the accused for
// a conviction.
const GuiltyThreshold = 2

// Outcome classifies an accusation.
type Outcome int

// Possible outcomes.
const (
	InsufficientEvidence Outcome = iota
	Guilty
)

// String returns the outcome's report label.
func (o Outcome) String() string {
	if o == Guilty {
		return "GUILTY"
	}
	return "INSUFFICIENT_EVIDENCE"
}

// Clues is the read side of the clue ledger.
type Clues interface {
	InOrder() []string
}

// Lookup resolves a clue to the suspect it implicates.
type Lookup interface {
	SuspectFor(clue string) (string, bool)
}

// Verdict is the result of judging one accusation.
type Verdict struct {
	// Accused is the name exactly as judged.
	Accused string
	// Count is the number of collected clues implicating Accused.
	Count int
	// Outcome is Guilty when Count reaches GuiltyThreshold.
	Outcome Outcome
	// Evidence lists the implicating clues in ledger order.
	Evidence []string
}

// Judge counts every collected clue whose suspect equals accused exactly and
// classifies the result. Clues with no known suspect are skipped.
//
// Precondition: clues and index must be non-nil.
// Postcondition: Always returns a Verdict; Evidence is non-nil.
func Judge(clues Clues, index Lookup, accused string) Verdict {
	v := Verdict{Accused: accused, Evidence: []string{}}
	for _, c := range clues.InOrder() {
		if s, ok := index.SuspectFor(c); ok && s == accused {
			v.Evidence = append(v.Evidence, c)
		}
	}
	v.Count = len(v.Evidence)
	v.Outcome = classify(v.Count)
	return v
}

func classify(count int) Outcome {
	if count >= GuiltyThreshold {
		return Guilty
	}
	return InsufficientEvidence
}

// MaxAttainable reports, per suspect, the most distinct clues implicating that
// suspect that a single root-to-leaf walk of tree can collect.
// Suspects that no planted clue implicates are absent from the result.
//
// Postcondition: Returns a non-nil map.
func MaxAttainable(tree *mansion.Tree, index Lookup) map[string]int {
	best := make(map[string]int)
	for _, path := range tree.Paths() {
		seen := make(map[string]bool)
		counts := make(map[string]int)
		for _, room := range path {
			if !room.HasClue() || seen[room.Clue] {
				continue
			}
			seen[room.Clue] = true
			if s, ok := index.SuspectFor(room.Clue); ok {
				counts[s]++
			}
		}
		for s, n := range counts {
			best[s] = max(best[s], n)
		}
	}
	return best
}

// Convictable returns the suspects some single walk of tree could convict,
// sorted by name.
//
// Postcondition: Returns a non-nil slice.
func Convictable(tree *mansion.Tree, index Lookup) []string {
	out := []string{}
	for s, n := range MaxAttainable(tree, index) {
		if classify(n) == Guilty {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// Solvable reports whether any suspect can be convicted on some single walk.
func Solvable(tree *mansion.Tree, index Lookup) bool {
	return len(Convictable(tree, index)) > 0
}
