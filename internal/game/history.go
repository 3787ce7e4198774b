package game

type EntryKind int

const (
	PlayerEntry EntryKind = iota
	NarratorEntry
	ErrorEntry
)

// Entry is one line of the session transcript.
type Entry struct {
	Kind EntryKind
	Text string
}

func (e Entry) String() string {
	switch e.Kind {
	case PlayerEntry:
		return "Player: " + e.Text
	case ErrorEntry:
		return "Error: " + e.Text
	default:
		return "Narrator: " + e.Text
	}
}

// History keeps the last maxSize transcript entries.
type History struct {
	entries []Entry
	maxSize int
}

func NewHistory(maxSize int) *History {
	if maxSize < 1 {
		maxSize = 1
	}
	return &History{
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
	}
}

func (h *History) AddPlayerChoice(input string) {
	h.add(Entry{Kind: PlayerEntry, Text: input})
}

func (h *History) AddNarration(lines ...string) {
	for _, line := range lines {
		h.add(Entry{Kind: NarratorEntry, Text: line})
	}
}

func (h *History) AddError(err error) {
	h.add(Entry{Kind: ErrorEntry, Text: err.Error()})
}

func (h *History) add(e Entry) {
	h.entries = append(h.entries, e)

	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
}

func (h *History) Entries() []Entry {
	result := make([]Entry, len(h.entries))
	copy(result, h.entries)
	return result
}
