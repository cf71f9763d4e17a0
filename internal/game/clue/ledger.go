// Package clue provides the detective's notebook: an ordered, duplicate-free
// collection of discovered clues.
package clue

import "errors"

// ErrEmptyClue is returned when inserting a clue with no text.
var ErrEmptyClue = errors.New("clue text must not be empty")

type node struct {
	text        string
	left, right *node
}

// Ledger holds collected clues in a binary search tree ordered by byte-wise
// string comparison. The zero value is an empty ledger ready for use.
// A Ledger is not safe for concurrent mutation.
type Ledger struct {
	root *node
	size int
}

// NewLedger returns an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Insert adds text to the ledger.
//
// Precondition: text must be non-empty.
// Postcondition: Returns (true, nil) if text was added, (false, nil) if it was
// already present, or (false, ErrEmptyClue) for empty text.
func (l *Ledger) Insert(text string) (bool, error) {
	if text == "" {
		return false, ErrEmptyClue
	}

	link := &l.root
	for *link != nil {
		n := *link
		switch {
		case text < n.text:
			link = &n.left
		case text > n.text:
			link = &n.right
		default:
			return false, nil
		}
	}
	*link = &node{text: text}
	l.size++
	return true, nil
}

// Contains reports whether text has been collected.
func (l *Ledger) Contains(text string) bool {
	n := l.root
	for n != nil {
		switch {
		case text < n.text:
			n = n.left
		case text > n.text:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// Len returns the number of distinct clues collected.
func (l *Ledger) Len() int {
	return l.size
}

// InOrder returns the collected clues in ascending order.
//
// Postcondition: Returns a non-nil slice; empty when nothing was collected.
func (l *Ledger) InOrder() []string {
	out := make([]string, 0, l.size)
	l.Each(func(text string) {
		out = append(out, text)
	})
	return out
}

// Each calls fn for every clue in ascending order.
func (l *Ledger) Each(fn func(text string)) {
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		walk(n.left)
		fn(n.text)
		walk(n.right)
	}
	walk(l.root)
}
