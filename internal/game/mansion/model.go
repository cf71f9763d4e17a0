// Package mansion provides the read-only room tree the detective explores.
package mansion

import (
	"errors"
	"fmt"
)

// ErrEmptyTree is returned when a tree is constructed without a root room.
var ErrEmptyTree = errors.New("mansion must have a root room")

// Room is a node in the mansion's navigation tree.
type Room struct {
	// Name is the display name of the room.
	Name string
	// Clue is the evidence planted in this room. Empty means no clue.
	Clue string
	// Left is the room reached by turning left, or nil.
	Left *Room
	// Right is the room reached by turning right, or nil.
	Right *Room
}

// HasClue reports whether the room holds a clue.
func (r *Room) HasClue() bool {
	return r.Clue != ""
}

// IsLeaf reports whether the room is a dead end.
func (r *Room) IsLeaf() bool {
	return r.Left == nil && r.Right == nil
}

// Tree is an immutable binary tree of rooms.
// A Tree is safe for concurrent reads since nothing mutates it after NewTree.
type Tree struct {
	root  *Room
	size  int
	depth int
}

// NewTree validates the room graph rooted at root and wraps it in a Tree.
//
// Precondition: the caller must not mutate any room after handing it to NewTree.
// Postcondition: Returns a Tree whose rooms all have names and are each
// reachable by exactly one path, or a non-nil error.
func NewTree(root *Room) (*Tree, error) {
	if root == nil {
		return nil, ErrEmptyTree
	}

	seen := make(map[*Room]string)
	var visit func(r *Room, path string, level int) (int, error)
	visit = func(r *Room, path string, level int) (int, error) {
		if r.Name == "" {
			return 0, fmt.Errorf("room at %s: name must not be empty", path)
		}
		if prev, ok := seen[r]; ok {
			return 0, fmt.Errorf("room %q reachable from both %s and %s", r.Name, prev, path)
		}
		seen[r] = path

		deepest := level
		for _, child := range []struct {
			room *Room
			dir  string
		}{{r.Left, "left"}, {r.Right, "right"}} {
			if child.room == nil {
				continue
			}
			d, err := visit(child.room, path+"/"+child.dir, level+1)
			if err != nil {
				return 0, err
			}
			deepest = max(deepest, d)
		}
		return deepest, nil
	}

	depth, err := visit(root, "root", 0)
	if err != nil {
		return nil, err
	}

	return &Tree{root: root, size: len(seen), depth: depth}, nil
}

// Root returns the entry room.
//
// Postcondition: Returns a non-nil room.
func (t *Tree) Root() *Room {
	return t.root
}

// Children returns the left and right rooms reachable from room.
// Either or both may be nil.
func (t *Tree) Children(room *Room) (left, right *Room) {
	if room == nil {
		return nil, nil
	}
	return room.Left, room.Right
}

// Len returns the number of rooms in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Depth returns the number of moves on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	return t.depth
}

// Walk visits every room in pre-order, left before right, passing the
// room's distance from the root. Walk stops early when fn returns false.
func (t *Tree) Walk(fn func(room *Room, level int) bool) {
	var walk func(r *Room, level int) bool
	walk = func(r *Room, level int) bool {
		if r == nil {
			return true
		}
		if !fn(r, level) {
			return false
		}
		return walk(r.Left, level+1) && walk(r.Right, level+1)
	}
	walk(t.root, 0)
}

// Paths returns every root-to-leaf path, ordered left before right.
//
// Postcondition: Every path starts at Root and ends at a leaf.
func (t *Tree) Paths() [][]*Room {
	var paths [][]*Room
	var walk func(r *Room, prefix []*Room)
	walk = func(r *Room, prefix []*Room) {
		path := append(prefix[:len(prefix):len(prefix)], r)
		if r.IsLeaf() {
			paths = append(paths, path)
			return
		}
		if r.Left != nil {
			walk(r.Left, path)
		}
		if r.Right != nil {
			walk(r.Right, path)
		}
	}
	walk(t.root, nil)
	return paths
}

// Clues returns the planted clue of every room that has one, in pre-order.
func (t *Tree) Clues() []string {
	var clues []string
	t.Walk(func(r *Room, _ int) bool {
		if r.HasClue() {
			clues = append(clues, r.Clue)
		}
		return true
	})
	return clues
}
