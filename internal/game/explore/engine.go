// Package explore drives the walk through the mansion. The Engine is a two-state machine
// (at a room, finished) fed with Moves; every transition returns the Events the player
// should be told about, so any transport can render them.
package explore

import (
	"detectivequest/internal/game/clues"
	"detectivequest/internal/game/mansion"
)

type State int

const (
	AtRoom State = iota
	Finished
)

func (s State) String() string {
	if s == Finished {
		return "finished"
	}
	return "at_room"
}

type EventType string

const (
	EventEnteredRoom   EventType = "entered_room"
	EventClueFound     EventType = "clue_found"
	EventClueKnown     EventType = "clue_known"
	EventNoClue        EventType = "no_clue"
	EventDeadEnd       EventType = "dead_end"
	EventInvalidChoice EventType = "invalid_choice"
	EventFinished      EventType = "finished"
)

// Event is something that happened during one transition.
type Event struct {
	Type EventType
	Room string
	Clue string
	Move Move
}

// ClueSource tells which clue, if any, lies in a room.
type ClueSource interface {
	ClueFor(room string) (string, bool)
}

type Engine struct {
	current   *mansion.Room
	state     State
	directory ClueSource
	ledger    *clues.Ledger
	started   bool
}

// New places a fresh engine at root. Call Start to enter the first room.
func New(root *mansion.Room, directory ClueSource, ledger *clues.Ledger) *Engine {
	return &Engine{
		current:   root,
		state:     AtRoom,
		directory: directory,
		ledger:    ledger,
	}
}

// Start enters the initial room. Calling it again has no effect.
func (e *Engine) Start() []Event {
	if e.started {
		return nil
	}
	e.started = true
	return e.enter(e.current)
}

// Apply performs one player move. Moves after the engine finished are ignored.
func (e *Engine) Apply(m Move) []Event {
	if e.state == Finished {
		return nil
	}
	if !e.started {
		events := e.Start()
		return append(events, e.Apply(m)...)
	}

	switch m {
	case MoveLeft:
		return e.step(mansion.Left, m)
	case MoveRight:
		return e.step(mansion.Right, m)
	case MoveStop:
		e.state = Finished
		return []Event{{Type: EventFinished, Room: e.current.Name(), Move: m}}
	case MoveNone:
		return nil
	default:
		return []Event{{Type: EventInvalidChoice, Room: e.current.Name(), Move: m}}
	}
}

func (e *Engine) step(d mansion.Direction, m Move) []Event {
	next := e.current.Child(d)
	if next == nil {
		return []Event{{Type: EventDeadEnd, Room: e.current.Name(), Move: m}}
	}
	e.current = next
	return e.enter(next)
}

func (e *Engine) enter(r *mansion.Room) []Event {
	events := []Event{{Type: EventEnteredRoom, Room: r.Name()}}

	clue, ok := e.directory.ClueFor(r.Name())
	switch {
	case !ok:
		events = append(events, Event{Type: EventNoClue, Room: r.Name()})
	case e.ledger.Insert(clue):
		events = append(events, Event{Type: EventClueFound, Room: r.Name(), Clue: clue})
	default:
		events = append(events, Event{Type: EventClueKnown, Room: r.Name(), Clue: clue})
	}
	return events
}

func (e *Engine) Current() *mansion.Room {
	return e.current
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Ledger() *clues.Ledger {
	return e.ledger
}
