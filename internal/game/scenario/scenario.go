// Package scenario loads case files: the mansion layout and the table tying
// each planted clue to a suspect.
package scenario

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/detective/internal/game/mansion"
	"github.com/cory-johannsen/detective/internal/game/suspect"
)

// Case is a fully built, validated case.
type Case struct {
	// Title is the banner shown when the game starts.
	Title string
	// Intro is the opening narration.
	Intro string
	// Mansion is the room tree to explore.
	Mansion *mansion.Tree
	// Suspects maps clues to the suspects they implicate.
	Suspects *suspect.Index
}

// Build assembles a Case from an already-constructed room tree and a list
// of clue/suspect pairings.
//
// Precondition: root must describe a tree (see mansion.NewTree).
// Postcondition: Returns a Case or the first construction error.
func Build(title, intro string, root *mansion.Room, assocs []suspect.Association) (*Case, error) {
	tree, err := mansion.NewTree(root)
	if err != nil {
		return nil, fmt.Errorf("building mansion: %w", err)
	}
	idx, err := suspect.FromAssociations(assocs)
	if err != nil {
		return nil, fmt.Errorf("building suspect index: %w", err)
	}
	return &Case{Title: title, Intro: intro, Mansion: tree, Suspects: idx}, nil
}

// Unattributed returns planted clues that implicate nobody, sorted and
// without duplicates. Such clues are legal but can never count as evidence.
func (c *Case) Unattributed() []string {
	seen := make(map[string]bool)
	var out []string
	for _, clue := range c.Mansion.Clues() {
		if seen[clue] {
			continue
		}
		seen[clue] = true
		if _, ok := c.Suspects.SuspectFor(clue); !ok {
			out = append(out, clue)
		}
	}
	sort.Strings(out)
	return out
}

// Unplanted returns indexed clues that no room holds, sorted.
func (c *Case) Unplanted() []string {
	planted := make(map[string]bool)
	for _, clue := range c.Mansion.Clues() {
		planted[clue] = true
	}
	var out []string
	for _, s := range c.Suspects.Suspects() {
		for _, clue := range c.Suspects.CluesFor(s) {
			if !planted[clue] {
				out = append(out, clue)
			}
		}
	}
	sort.Strings(out)
	return out
}
