package clues

// Ledger is the player's notebook: a binary search tree of collected clue texts.
// Texts are unique and kept in ascending byte order.
type Ledger struct {
	root *node
	size int
}

type node struct {
	clue  string
	left  *node
	right *node
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Insert records clue. It reports false and leaves the tree untouched when the clue
// was already noted.
func (l *Ledger) Insert(clue string) bool {
	var added bool
	l.root, added = insert(l.root, clue)
	if added {
		l.size++
	}
	return added
}

func insert(n *node, clue string) (*node, bool) {
	if n == nil {
		return &node{clue: clue}, true
	}

	var added bool
	switch {
	case clue < n.clue:
		n.left, added = insert(n.left, clue)
	case clue > n.clue:
		n.right, added = insert(n.right, clue)
	}
	return n, added
}

func (l *Ledger) Contains(clue string) bool {
	n := l.root
	for n != nil {
		switch {
		case clue < n.clue:
			n = n.left
		case clue > n.clue:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// Walk calls fn for every clue in ascending order.
func (l *Ledger) Walk(fn func(clue string)) {
	walk(l.root, fn)
}

func walk(n *node, fn func(string)) {
	if n == nil {
		return
	}
	walk(n.left, fn)
	fn(n.clue)
	walk(n.right, fn)
}

// InOrder returns the collected clues sorted ascending.
func (l *Ledger) InOrder() []string {
	out := make([]string, 0, l.size)
	l.Walk(func(clue string) {
		out = append(out, clue)
	})
	return out
}

func (l *Ledger) Len() int {
	return l.size
}

func (l *Ledger) IsEmpty() bool {
	return l.root == nil
}

// Clear drops every entry at once.
func (l *Ledger) Clear() {
	l.root = nil
	l.size = 0
}
