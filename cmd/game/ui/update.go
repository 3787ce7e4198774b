package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"detectivequest/internal/game/explore"
	"detectivequest/internal/game/narration"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case beginMsg:
		return m.handleBegin()
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleBegin() (tea.Model, tea.Cmd) {
	events := m.session.Begin(m.ctx)
	if events == nil {
		return m, nil
	}
	m.add(titleLine, narration.Title(m.session.Title()))
	m.blank()
	m.addEvents(events)
	m.add(promptLine, m.movePrompt())
	return m, nil
}

func (m Model) movePrompt() string {
	if m.session.AtLeaf() {
		return narration.LeafPrompt()
	}
	return narration.Prompt()
}

func (m Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	if msg.Width > 10 {
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.debug.Printf("Aborted while %s", m.phase)
		m.phase = done
		return m, tea.Quit

	case tea.KeyCtrlD:
		m.input.Reset()
		return m.submit("", true)

	case tea.KeyEnter:
		value := m.input.Value()
		m.input.Reset()
		return m.submit(value, false)
	}

	if m.phase == done {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles one finished line. eof marks Ctrl+D, which stops the exploration or
// leaves the accusation without a suspect.
func (m Model) submit(value string, eof bool) (tea.Model, tea.Cmd) {
	switch m.phase {
	case exploring:
		if eof {
			value = explore.MoveStop.String()
		}
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		m.add(playerLine, "> "+strings.TrimSpace(value))
		m.addEvents(m.session.Choose(m.ctx, value))

		if !m.session.Finished() {
			m.add(promptLine, m.movePrompt())
			return m, nil
		}
		return m.judge()

	case accusing:
		if eof {
			value = ""
		}
		if name := strings.TrimSpace(value); name != "" {
			m.add(playerLine, "> "+name)
		}
		return m.conclude(value)

	default:
		return m, tea.Quit
	}
}

// judge lists the notebook and asks for a suspect, or concludes straight away when
// there is nothing to judge.
func (m Model) judge() (tea.Model, tea.Cmd) {
	m.blank()
	if clues := m.session.Clues(); len(clues) > 0 {
		m.add(clueLine, narration.ClueList(clues)...)
	}

	if !m.session.NeedsAccusation() {
		return m.conclude("")
	}

	m.phase = accusing
	m.input.Placeholder = "suspect name"
	m.blank()
	m.add(promptLine, narration.AccusePrompt(m.session.Suspects()))
	return m, nil
}

func (m Model) conclude(accused string) (tea.Model, tea.Cmd) {
	v := m.session.Accuse(m.ctx, accused)

	m.blank()
	m.add(verdictLine, narration.Verdict(v)...)
	if trail := narration.Trail(m.session.Trail(m.ctx)); trail != "" {
		m.add(textLine, trail)
	}
	m.blank()
	m.add(titleLine, narration.Farewell(m.session.Title()))

	m.phase = done
	m.input.Blur()
	return m, tea.Quit
}

func (m *Model) addEvents(events []explore.Event) {
	for _, ev := range events {
		text := narration.Event(ev)
		if text == "" {
			continue
		}
		switch ev.Type {
		case explore.EventEnteredRoom:
			m.blank()
			m.add(roomLine, text)
		case explore.EventClueFound, explore.EventClueKnown:
			m.add(clueLine, text)
		case explore.EventDeadEnd, explore.EventInvalidChoice:
			m.add(noticeLine, text)
		default:
			m.add(textLine, text)
		}
	}
}
