package game

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"detectivequest/internal/debug"
	"detectivequest/internal/game/explore"
	"detectivequest/internal/game/scenario"
	"detectivequest/internal/game/verdict"
	"detectivequest/internal/journal"
)

func newTestSession(t *testing.T) (*Session, *journal.Journal) {
	t.Helper()
	j, err := journal.Open(journal.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	s := NewSession(scenario.Default(), Options{Journal: j})
	t.Cleanup(s.Close)
	return s, j
}

func play(ctx context.Context, s *Session, lines ...string) []explore.Event {
	events := s.Begin(ctx)
	for _, line := range lines {
		events = append(events, s.Choose(ctx, line)...)
	}
	return events
}

func TestSession_Playthroughs(t *testing.T) {
	tests := []struct {
		name      string
		moves     []string
		accused   string
		wantClues []string
		wantCount int
		want      verdict.Outcome
	}{
		{
			name:  "left wing backs Sra. Rosa",
			moves: []string{"l", "l", "l", "s"},
			wantClues: []string{
				"Livro deslocado", "Marcas de arraste", "Pegadas lamacentas", "Vidro quebrado",
			},
			accused:   "Sra. Rosa",
			wantCount: 2,
			want:      verdict.Supported,
		},
		{
			name:      "kitchen side is weak against Sra. Rosa",
			moves:     []string{"r", "direita", "s"},
			wantClues: []string{"Faca com impressões", "Fibra vermelha", "Pegadas lamacentas"},
			accused:   "Sra. Rosa",
			wantCount: 1,
			want:      verdict.Weak,
		},
		{
			name:      "names are matched exactly",
			moves:     []string{"l", "l", "l", "s"},
			wantClues: []string{"Livro deslocado", "Marcas de arraste", "Pegadas lamacentas", "Vidro quebrado"},
			accused:   "  sr. verde ",
			want:      verdict.Weak,
		},
		{
			name:      "blank accusation",
			moves:     []string{"s"},
			wantClues: []string{"Pegadas lamacentas"},
			accused:   "",
			want:      verdict.NoAccusation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, _ := newTestSession(t)

			play(ctx, s, tt.moves...)
			require.True(t, s.Finished())
			require.True(t, s.NeedsAccusation())
			if diff := cmp.Diff(tt.wantClues, s.Clues()); diff != "" {
				t.Errorf("clues mismatch (-want +got):\n%s", diff)
			}

			v := s.Accuse(ctx, tt.accused)
			assert.Equal(t, tt.want, v.Outcome)
			assert.Equal(t, tt.wantCount, v.Count)
			assert.False(t, s.NeedsAccusation())
		})
	}
}

func TestSession_DeadEndKeepsRoom(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)

	play(ctx, s, "l", "l", "l")
	require.Equal(t, "Sótão", s.CurrentRoom())

	events := s.Choose(ctx, "l")
	require.Equal(t, []explore.Event{{Type: explore.EventDeadEnd, Room: "Sótão", Move: explore.MoveLeft}}, events)
	require.Equal(t, "Sótão", s.CurrentRoom())
	require.False(t, s.Finished())
}

func TestSession_TrailFromJournal(t *testing.T) {
	ctx := context.Background()
	s, j := newTestSession(t)

	play(ctx, s, "l", "x", "", "l", "s")
	s.Accuse(ctx, "Sra. Rosa")

	require.Equal(t, []string{"Entrada", "Salão", "Biblioteca"}, s.Trail(ctx))

	recent, err := j.RecentSessions(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, s.ID(), recent[0].ID)
	assert.Equal(t, "Sra. Rosa", recent[0].Accused)
	assert.Equal(t, 2, recent[0].Count)
	assert.Equal(t, string(verdict.Supported), recent[0].Outcome)
	assert.Equal(t, 3, recent[0].Visits)
}

func TestSession_NoCluesSkipsAccusation(t *testing.T) {
	scn, err := scenario.Load([]byte(`
title: Empty house
layout:
  name: Hall
  left:
    name: Closet
`))
	require.NoError(t, err)

	ctx := context.Background()
	s := NewSession(scn, Options{})
	defer s.Close()

	play(ctx, s, "l", "s")
	require.True(t, s.Finished())
	require.Empty(t, s.Clues())
	require.False(t, s.NeedsAccusation())

	v := s.Accuse(ctx, "")
	require.Equal(t, verdict.NoEvidence, v.Outcome)
	require.Nil(t, s.Trail(ctx))
}

func TestSession_AccuseStopsExploration(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)

	s.Begin(ctx)
	s.Choose(ctx, "r")
	v := s.Accuse(ctx, "Sr. Preto")
	require.True(t, s.Finished())
	require.Equal(t, 1, v.Count)

	again := s.Accuse(ctx, "Sra. Rosa")
	require.Equal(t, v, again)

	got, ok := s.Verdict()
	require.True(t, ok)
	require.Equal(t, v, got)
}

func TestSession_ChooseBeginsImplicitly(t *testing.T) {
	s, _ := newTestSession(t)

	events := s.Choose(context.Background(), "r")
	require.Equal(t, explore.EventEnteredRoom, events[0].Type)
	require.Equal(t, "Entrada", events[0].Room)
	require.Equal(t, "Cozinha", s.CurrentRoom())
	require.Nil(t, s.Begin(context.Background()))
}

func TestSession_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx := context.Background()
	s := NewSession(scenario.Default(), Options{Tracer: tp.Tracer("test")})
	defer s.Close()

	play(ctx, s, "l", "r", "s")
	s.Accuse(ctx, "Sr. Preto")

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "session.explore", spans[0].Name())
	assert.Len(t, spans[0].Events(), 3)
	assert.Equal(t, "session.verdict", spans[1].Name())
}

func TestSession_Close(t *testing.T) {
	ctx := context.Background()
	s := NewSession(scenario.Default(), Options{})

	play(ctx, s, "l")
	require.NotEmpty(t, s.Clues())

	s.Close()
	s.Close()

	assert.Empty(t, s.Clues())
	assert.Empty(t, s.CurrentRoom())
	assert.Nil(t, s.Suspects())
	assert.Nil(t, s.Choose(ctx, "l"))
	assert.False(t, s.Finished())
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory(3)
	h.AddPlayerChoice("l")
	h.AddNarration("You are in: Salão", "Clue found")
	h.AddPlayerChoice("s")
	h.AddError(errors.New("disk full"))

	entries := h.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, "Narrator: Clue found", entries[0].String())
	require.Equal(t, "Player: s", entries[1].String())
	require.Equal(t, "Error: disk full", entries[2].String())

	entries[0].Text = "changed"
	require.Equal(t, "Clue found", h.Entries()[0].Text)
}

func TestSession_HistoryRecordsChoices(t *testing.T) {
	s, _ := newTestSession(t)
	play(context.Background(), s, " l ", "", "s")

	var texts []string
	for _, e := range s.History().Entries() {
		if e.Kind == PlayerEntry {
			texts = append(texts, e.Text)
		}
	}
	require.Equal(t, []string{"l", "s"}, texts)
}

func TestSession_HistoryNarrates(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)
	play(ctx, s, "l", "l", "s")
	s.Accuse(ctx, "Sra. Rosa")

	var got []string
	for _, e := range s.History().Entries() {
		got = append(got, e.String())
	}
	want := []string{
		"Narrator: You are in: Entrada",
		`Narrator: Clue found: "Pegadas lamacentas". Added to your notebook.`,
		"Player: l",
		"Narrator: You are in: Salão",
		`Narrator: Clue found: "Vidro quebrado". Added to your notebook.`,
		"Player: l",
		"Narrator: You are in: Biblioteca",
		`Narrator: Clue found: "Livro deslocado". Added to your notebook.`,
		"Player: s",
		"Narrator: Leaving the exploration...",
		"Player: Sra. Rosa",
		"Narrator: You accused: Sra. Rosa",
		"Narrator: Clues pointing to Sra. Rosa: 2",
		"Narrator: OUTCOME: Valid accusation! There is enough evidence to hold the case.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_CloseLogsTranscript(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		want    []string
	}{
		{
			name:    "debug on",
			enabled: true,
			want: []string{
				`msg=transcript`,
				`entry="Narrator: You are in: Salão"`,
				`entry="Player: Sr. Preto"`,
				`entry="Narrator: OUTCOME: Weak accusation. At least 2 clues are needed to convict."`,
			},
		},
		{name: "debug off", enabled: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			var buf bytes.Buffer
			s := NewSession(scenario.Default(), Options{Logger: debug.New(&buf, tt.enabled)})

			play(ctx, s, "l", "s")
			s.Accuse(ctx, "Sr. Preto")
			s.Close()

			if !tt.enabled {
				require.Empty(t, buf.String())
				return
			}
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			assert.Less(t, strings.Index(buf.String(), "msg=transcript"), strings.Index(buf.String(), `msg="session closed"`))
		})
	}
}

func TestSession_AtLeaf(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
		want  bool
	}{
		{name: "entrance", want: false},
		{name: "attic", moves: []string{"l", "l", "l"}, want: true},
		{name: "attic after a dead end", moves: []string{"l", "l", "l", "r"}, want: true},
		{name: "veranda", moves: []string{"r", "r"}, want: true},
		{name: "kitchen", moves: []string{"r"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			play(context.Background(), s, tt.moves...)
			require.Equal(t, tt.want, s.AtLeaf())
		})
	}

	s, _ := newTestSession(t)
	s.Close()
	require.False(t, s.AtLeaf())
}
