// Package mansion is the static room layout: a binary tree whose nodes are rooms and whose
// edges are the left and right exits. The tree is built once and never changes.
package mansion

import "detectivequest/internal/game/scenario"

type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Room is a node of the mansion. Each room owns its two optional exits.
type Room struct {
	name  string
	left  *Room
	right *Room
}

func (r *Room) Name() string { return r.name }
func (r *Room) Left() *Room  { return r.left }
func (r *Room) Right() *Room { return r.right }
func (r *Room) IsLeaf() bool { return r.left == nil && r.right == nil }

// Child returns the room behind the exit in direction d, or nil if there is none.
func (r *Room) Child(d Direction) *Room {
	if d == Left {
		return r.left
	}
	return r.right
}

// Walk visits r and every room below it in pre-order.
func (r *Room) Walk(fn func(*Room)) {
	if r == nil {
		return
	}
	fn(r)
	r.left.Walk(fn)
	r.right.Walk(fn)
}

// Build creates the room tree described by layout and returns its root.
func Build(layout scenario.Room) *Room {
	return build(&layout)
}

func build(layout *scenario.Room) *Room {
	if layout == nil {
		return nil
	}
	return &Room{
		name:  layout.Name,
		left:  build(layout.Left),
		right: build(layout.Right),
	}
}

// Default builds the fixed mansion shipped with the game.
func Default() *Room {
	return Build(scenario.Default().Layout)
}
