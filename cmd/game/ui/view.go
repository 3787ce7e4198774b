package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	lineStyles = map[lineKind]lipgloss.Style{
		textLine:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		titleLine:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		roomLine:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		clueLine:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		playerLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		promptLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true),
		noticeLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		verdictLine: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
)

const inputHeight = 3

func (m Model) View() string {
	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 76
	}

	visible := m.lines
	panel := panelStyle
	if m.height > 0 {
		chatHeight := m.height - inputHeight
		maxLines := chatHeight - 4
		if maxLines < 1 {
			maxLines = 1
		}
		visible = lastWrapped(m.lines, contentWidth-2, maxLines)
		panel = panel.Height(chatHeight - 2)
	}
	if m.width > 0 {
		panel = panel.Width(m.width - 2)
	}

	var chat strings.Builder
	for _, l := range visible {
		if l.kind == blankLine {
			chat.WriteString("\n")
			continue
		}
		chat.WriteString(lineStyles[l.kind].Render(wrapAndIndent(l.text, contentWidth-2, " ")) + "\n")
	}

	view := panel.Render(strings.TrimSuffix(chat.String(), "\n"))
	if m.phase == done {
		return view + "\n"
	}
	return view + "\n" + inputStyle.Render(m.input.View())
}

// lastWrapped keeps the tail of lines that fits in maxLines rows once wrapped.
func lastWrapped(lines []line, width, maxLines int) []line {
	rows := 0
	for i := len(lines) - 1; i >= 0; i-- {
		rows += strings.Count(wrapAndIndent(lines[i].text, width, " "), "\n") + 1
		if rows > maxLines {
			return lines[i+1:]
		}
	}
	return lines
}

func wrapAndIndent(text string, width int, indent string) string {
	if len(text) <= width {
		return indent + text
	}

	var result strings.Builder
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent + text
	}

	currentLine := indent + words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result.WriteString(currentLine + "\n")
			currentLine = indent + word
		}
	}

	result.WriteString(currentLine)
	return result.String()
}
