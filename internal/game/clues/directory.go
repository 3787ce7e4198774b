// Package clues keeps track of evidence: which clue lies in which room (Directory) and which
// clues the player has collected so far (Ledger).
package clues

// Directory maps room names to the clue physically present in that room.
// A room holds at most one clue.
type Directory struct {
	byRoom map[string]string
}

// NewDirectory copies byRoom so later changes by the caller do not leak in.
func NewDirectory(byRoom map[string]string) *Directory {
	d := &Directory{byRoom: make(map[string]string, len(byRoom))}
	for room, clue := range byRoom {
		if clue != "" {
			d.byRoom[room] = clue
		}
	}
	return d
}

// ClueFor returns the clue lying in room. Unknown rooms and rooms without evidence
// report false.
func (d *Directory) ClueFor(room string) (string, bool) {
	clue, ok := d.byRoom[room]
	return clue, ok
}
