// Package suspect provides the lookup table that ties clues to the suspects
// they implicate.
package suspect

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultBuckets is the bucket count used by NewIndex. It is prime so the
// character-sum hash spreads reasonably over short texts.
const DefaultBuckets = 31

// Sentinel errors returned by Associate.
var (
	ErrEmptyClue    = errors.New("clue text must not be empty")
	ErrEmptySuspect = errors.New("suspect name must not be empty")
	ErrConflict     = errors.New("clue already implicates a different suspect")
)

// Association pairs a clue with the suspect it implicates.
type Association struct {
	Clue    string
	Suspect string
}

type entry struct {
	clue    string
	suspect string
	next    *entry
}

// Index maps clue text to a suspect name using separate chaining, so any
// number of clues may share a bucket.
// An Index is built once during setup and only read afterwards; it is not
// safe for concurrent mutation.
type Index struct {
	buckets []*entry
	size    int
}

// NewIndex returns an empty Index with DefaultBuckets buckets.
func NewIndex() *Index {
	return NewIndexSize(DefaultBuckets)
}

// NewIndexSize returns an empty Index with n buckets.
//
// Precondition: n must be >= 1.
func NewIndexSize(n int) *Index {
	if n < 1 {
		n = 1
	}
	return &Index{buckets: make([]*entry, n)}
}

// FromAssociations builds an Index from a list of pairings.
//
// Postcondition: Returns a populated Index or the first Associate error.
func FromAssociations(assocs []Association) (*Index, error) {
	idx := NewIndex()
	for i, a := range assocs {
		if err := idx.Associate(a.Clue, a.Suspect); err != nil {
			return nil, fmt.Errorf("association %d (%q): %w", i, a.Clue, err)
		}
	}
	return idx, nil
}

// hash sums the text's bytes modulo the bucket count.
func (x *Index) hash(text string) int {
	sum := 0
	for i := 0; i < len(text); i++ {
		sum += int(text[i])
	}
	return sum % len(x.buckets)
}

// Associate records that clue implicates suspect.
//
// Precondition: clue and suspect must be non-empty.
// Postcondition: The pairing is recorded. Repeating an identical pairing is a
// no-op; pairing a known clue with a different suspect returns ErrConflict.
func (x *Index) Associate(clue, suspect string) error {
	if clue == "" {
		return ErrEmptyClue
	}
	if suspect == "" {
		return ErrEmptySuspect
	}

	b := x.hash(clue)
	for e := x.buckets[b]; e != nil; e = e.next {
		if e.clue != clue {
			continue
		}
		if e.suspect == suspect {
			return nil
		}
		return fmt.Errorf("%w: %q implicates %q, not %q", ErrConflict, clue, e.suspect, suspect)
	}

	x.buckets[b] = &entry{clue: clue, suspect: suspect, next: x.buckets[b]}
	x.size++
	return nil
}

// SuspectFor returns the suspect implicated by clue.
//
// Postcondition: Returns (suspect, true) if clue is known, or ("", false) otherwise.
func (x *Index) SuspectFor(clue string) (string, bool) {
	if len(x.buckets) == 0 {
		return "", false
	}
	for e := x.buckets[x.hash(clue)]; e != nil; e = e.next {
		if e.clue == clue {
			return e.suspect, true
		}
	}
	return "", false
}

// Len returns the number of recorded associations.
func (x *Index) Len() int {
	return x.size
}

// Suspects returns every distinct suspect name, sorted.
//
// Postcondition: Returns a non-nil slice.
func (x *Index) Suspects() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, head := range x.buckets {
		for e := head; e != nil; e = e.next {
			if !seen[e.suspect] {
				seen[e.suspect] = true
				out = append(out, e.suspect)
			}
		}
	}
	sort.Strings(out)
	return out
}

// CluesFor returns every clue that implicates suspect, sorted.
//
// Postcondition: Returns a non-nil slice; empty for unknown suspects.
func (x *Index) CluesFor(suspect string) []string {
	out := []string{}
	for _, head := range x.buckets {
		for e := head; e != nil; e = e.next {
			if e.suspect == suspect {
				out = append(out, e.clue)
			}
		}
	}
	sort.Strings(out)
	return out
}
