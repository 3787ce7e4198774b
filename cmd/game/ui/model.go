package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"detectivequest/internal/debug"
	"detectivequest/internal/game"
)

type phase int

const (
	exploring phase = iota
	accusing
	done
)

func (p phase) String() string {
	switch p {
	case exploring:
		return "exploring"
	case accusing:
		return "accusing"
	default:
		return "done"
	}
}

type lineKind int

const (
	textLine lineKind = iota
	blankLine
	titleLine
	roomLine
	clueLine
	playerLine
	promptLine
	noticeLine
	verdictLine
)

type line struct {
	kind lineKind
	text string
}

type Model struct {
	ctx     context.Context
	session *game.Session
	debug   *debug.Logger

	input textinput.Model
	lines []line
	phase phase

	width  int
	height int
}

func NewModel(ctx context.Context, session *game.Session, debugLogger *debug.Logger) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "l, r or s"
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	return Model{
		ctx:     ctx,
		session: session,
		debug:   debugLogger,
		input:   ti,
		phase:   exploring,
	}
}

type beginMsg struct{}

func (m Model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return beginMsg{} }, textinput.Blink)
}

func (m *Model) add(kind lineKind, texts ...string) {
	for _, text := range texts {
		m.lines = append(m.lines, line{kind: kind, text: text})
	}
}

func (m *Model) blank() {
	m.lines = append(m.lines, line{kind: blankLine})
}
