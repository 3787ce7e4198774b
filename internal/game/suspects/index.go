// Package suspects maps each clue to the suspect it implicates.
package suspects

import (
	"sort"

	"github.com/cespare/xxhash/v2"

	"detectivequest/internal/game/scenario"
)

// DefaultBuckets is a prime well above the number of clues in a scenario.
const DefaultBuckets = 101

// Index is a chained hash table from clue text to suspect name. The hash only picks a
// bucket; a match always requires the full clue text to be equal. The zero value is an
// empty index that allocates DefaultBuckets on the first Put.
type Index struct {
	buckets []*entry
	size    int
}

type entry struct {
	clue    string
	suspect string
	next    *entry
}

// NewIndex creates an empty index with the given number of buckets (DefaultBuckets if
// buckets < 1).
func NewIndex(buckets int) *Index {
	if buckets < 1 {
		buckets = DefaultBuckets
	}
	return &Index{buckets: make([]*entry, buckets)}
}

// FromScenario loads the clue/suspect table of s.
func FromScenario(s *scenario.Scenario) *Index {
	ix := NewIndex(DefaultBuckets)
	for _, imp := range s.Suspects {
		ix.Put(imp.Clue, imp.Suspect)
	}
	return ix
}

func (ix *Index) bucket(clue string) int {
	return int(xxhash.Sum64String(clue) % uint64(len(ix.buckets)))
}

// Put associates suspect with clue. An existing association for the same clue is
// overwritten.
func (ix *Index) Put(clue, suspect string) {
	if len(ix.buckets) == 0 {
		ix.buckets = make([]*entry, DefaultBuckets)
	}
	b := ix.bucket(clue)
	for e := ix.buckets[b]; e != nil; e = e.next {
		if e.clue == clue {
			e.suspect = suspect
			return
		}
	}
	ix.buckets[b] = &entry{clue: clue, suspect: suspect, next: ix.buckets[b]}
	ix.size++
}

// Lookup returns the suspect implicated by clue.
func (ix *Index) Lookup(clue string) (string, bool) {
	if len(ix.buckets) == 0 {
		return "", false
	}
	for e := ix.buckets[ix.bucket(clue)]; e != nil; e = e.next {
		if e.clue == clue {
			return e.suspect, true
		}
	}
	return "", false
}

// Len is the number of distinct clues in the index.
func (ix *Index) Len() int {
	return ix.size
}

// Suspects lists every distinct suspect name, sorted.
func (ix *Index) Suspects() []string {
	seen := make(map[string]bool)
	var names []string
	for _, head := range ix.buckets {
		for e := head; e != nil; e = e.next {
			if !seen[e.suspect] {
				seen[e.suspect] = true
				names = append(names, e.suspect)
			}
		}
	}
	sort.Strings(names)
	return names
}
