// Package game wires the mansion, the clue ledger and the suspect index into one
// playthrough. Transports talk to a Session and print what it returns.
package game

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"detectivequest/internal/debug"
	"detectivequest/internal/game/clues"
	"detectivequest/internal/game/explore"
	"detectivequest/internal/game/mansion"
	"detectivequest/internal/game/narration"
	"detectivequest/internal/game/scenario"
	"detectivequest/internal/game/suspects"
	"detectivequest/internal/game/verdict"
	"detectivequest/internal/journal"
	"detectivequest/internal/observability"
)

const defaultHistorySize = 50

// Options carries the infrastructure a Session reports to. Every field may be nil.
type Options struct {
	Logger      *debug.Logger
	Journal     *journal.Journal
	Tracer      trace.Tracer
	HistorySize int
}

type Session struct {
	id       string
	scenario *scenario.Scenario

	root   *mansion.Room
	index  *suspects.Index
	ledger *clues.Ledger
	engine *explore.Engine

	log     *debug.Logger
	journal *journal.Journal
	tracer  trace.Tracer
	history *History

	exploreSpan trace.Span
	pendingRoom string
	step        int
	verdict     *verdict.Verdict
	closed      bool
}

func NewSession(scn *scenario.Scenario, opts Options) *Session {
	id := uuid.New().String()

	logger := opts.Logger
	if logger == nil {
		logger = debug.New(io.Discard, false)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	size := opts.HistorySize
	if size <= 0 {
		size = defaultHistorySize
	}

	root := mansion.Build(scn.Layout)
	ledger := clues.NewLedger()

	return &Session{
		id:       id,
		scenario: scn,
		root:     root,
		index:    suspects.FromScenario(scn),
		ledger:   ledger,
		engine:   explore.New(root, clues.NewDirectory(scn.Clues()), ledger),
		log:      logger.With("session", id),
		journal:  opts.Journal,
		tracer:   tracer,
		history:  NewHistory(size),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Title() string {
	return s.scenario.Title
}

// Begin opens the journal entry and enters the first room.
func (s *Session) Begin(ctx context.Context) []explore.Event {
	if s.closed || s.exploreSpan != nil {
		return nil
	}
	ctx = observability.WithSessionID(ctx, s.id)

	if s.journal != nil {
		if err := s.journal.StartSession(ctx, s.id); err != nil {
			s.log.Printf("Failed to start journal session: %v", err)
		}
	}

	_, s.exploreSpan = s.tracer.Start(ctx, "session.explore",
		trace.WithAttributes(observability.SessionAttributes(s.id, s.scenario.Title)...))
	s.log.Log("exploration started", "room", s.root.Name())

	events := s.engine.Start()
	s.record(ctx, events)
	return events
}

// Choose feeds one player line to the exploration.
func (s *Session) Choose(ctx context.Context, line string) []explore.Event {
	if s.closed {
		return nil
	}
	if s.exploreSpan == nil {
		events := s.Begin(ctx)
		return append(events, s.Choose(ctx, line)...)
	}
	ctx = observability.WithSessionID(ctx, s.id)

	move := explore.ParseMove(line)
	if move != explore.MoveNone {
		s.history.AddPlayerChoice(strings.TrimSpace(line))
	}
	s.log.Log("move", "input", line, "move", move.String(), "state", s.engine.State().String())

	events := s.engine.Apply(move)
	s.record(ctx, events)
	return events
}

func (s *Session) record(ctx context.Context, events []explore.Event) {
	for _, ev := range events {
		if text := narration.Event(ev); text != "" {
			s.history.AddNarration(text)
		}
		switch ev.Type {
		case explore.EventEnteredRoom:
			s.pendingRoom = ev.Room
			s.exploreSpan.AddEvent("room.entered", trace.WithAttributes(attribute.String("room", ev.Room)))
		case explore.EventClueFound, explore.EventClueKnown:
			s.visit(ctx, ev.Clue)
			s.log.Log("clue", "room", ev.Room, "clue", ev.Clue, "new", ev.Type == explore.EventClueFound)
		case explore.EventNoClue:
			s.visit(ctx, "")
		case explore.EventFinished:
			s.exploreSpan.SetAttributes(attribute.Int("clues.collected", s.ledger.Len()))
			s.exploreSpan.End()
			s.log.Log("exploration finished", "room", ev.Room, "clues", s.ledger.Len())
		}
	}
}

func (s *Session) visit(ctx context.Context, clue string) {
	s.step++
	if s.journal == nil {
		return
	}
	if err := s.journal.LogVisit(ctx, s.id, s.step, s.pendingRoom, clue); err != nil {
		// Journal writes are best effort; the game carries on without them.
		s.log.Printf("Failed to log visit: %v", err)
		s.history.AddError(err)
	}
}

func (s *Session) Finished() bool {
	return s.engine != nil && s.engine.State() == explore.Finished
}

// CurrentRoom is the room the player stands in, or "" once the session is closed.
func (s *Session) CurrentRoom() string {
	if s.engine == nil {
		return ""
	}
	return s.engine.Current().Name()
}

// Clues lists the collected clues in ascending order.
func (s *Session) Clues() []string {
	return s.ledger.InOrder()
}

// NeedsAccusation reports whether the player should be asked for a suspect. With no
// clues collected the judgement is rendered without asking.
func (s *Session) NeedsAccusation() bool {
	return s.Finished() && s.verdict == nil && !s.ledger.IsEmpty()
}

// Suspects lists every suspect named by the scenario.
func (s *Session) Suspects() []string {
	if s.index == nil {
		return nil
	}
	return s.index.Suspects()
}

// Accuse renders the verdict against name and records it. Exploration is stopped first
// if it is still running. A second call returns the first verdict.
func (s *Session) Accuse(ctx context.Context, name string) verdict.Verdict {
	if s.verdict != nil {
		return *s.verdict
	}
	if !s.Finished() && !s.closed {
		s.Choose(ctx, explore.MoveStop.String())
	}
	ctx = observability.WithSessionID(ctx, s.id)

	ctx, span := s.tracer.Start(ctx, "session.verdict",
		trace.WithAttributes(observability.SessionAttributes(s.id, s.scenario.Title)...))
	defer span.End()

	accused := strings.TrimSpace(name)
	v := verdict.Render(s.ledger, s.index, accused)
	s.verdict = &v

	span.SetAttributes(
		attribute.String("verdict.accused", v.Accused),
		attribute.Int("verdict.count", v.Count),
		attribute.String("verdict.outcome", string(v.Outcome)),
	)
	if accused != "" {
		s.history.AddPlayerChoice(accused)
	}
	s.history.AddNarration(narration.Verdict(v)...)
	s.log.Log("verdict", "accused", v.Accused, "count", v.Count, "outcome", string(v.Outcome))

	if s.journal != nil {
		if err := s.journal.FinishSession(ctx, s.id, v.Accused, v.Count, string(v.Outcome)); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "journal write failed")
			s.log.Printf("Failed to record verdict: %v", err)
			s.history.AddError(err)
		}
	}
	return v
}

// Verdict returns the rendered verdict, if any.
func (s *Session) Verdict() (verdict.Verdict, bool) {
	if s.verdict == nil {
		return verdict.Verdict{}, false
	}
	return *s.verdict, true
}

// Trail reads back, from the journal, the rooms visited in order.
func (s *Session) Trail(ctx context.Context) []string {
	if s.journal == nil {
		return nil
	}
	visits, err := s.journal.Trail(ctx, s.id)
	if err != nil {
		s.log.Printf("Failed to read trail: %v", err)
		return nil
	}
	rooms := make([]string, 0, len(visits))
	for _, v := range visits {
		rooms = append(rooms, v.Room)
	}
	return rooms
}

// AtLeaf reports whether the current room has no exits left.
func (s *Session) AtLeaf() bool {
	return s.engine != nil && s.engine.Current().IsLeaf()
}

// History is the transcript of the playthrough: player lines, narration and journal errors.
func (s *Session) History() *History {
	return s.history
}

// Close releases the session: the ledger first, then the room tree, then the suspect
// index. The journal and tracer belong to the caller. Close is safe to call twice.
// The transcript goes to the debug log before anything is released.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for i, e := range s.history.Entries() {
		s.log.Log("transcript", "line", i+1, "entry", e.String())
	}

	if s.exploreSpan != nil && !s.Finished() {
		s.exploreSpan.End()
	}

	s.ledger.Clear()
	s.engine = nil
	s.root = nil
	s.index = nil
	s.log.Println("session closed")
}
