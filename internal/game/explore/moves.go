package explore

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Move is one player choice at a room.
type Move int

const (
	MoveNone Move = iota
	MoveLeft
	MoveRight
	MoveStop
	MoveInvalid
)

func (m Move) String() string {
	switch m {
	case MoveNone:
		return "none"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveStop:
		return "stop"
	default:
		return "invalid"
	}
}

// ParseMove reads a player line. Only the first character counts and case is ignored:
// l/e go left (left, esquerda), r/d go right (right, direita), s stops. A blank line is
// MoveNone; anything else is MoveInvalid.
func ParseMove(input string) Move {
	input = strings.TrimSpace(input)
	if input == "" {
		return MoveNone
	}

	first, _ := utf8.DecodeRuneInString(input)
	switch unicode.ToLower(first) {
	case 'l', 'e':
		return MoveLeft
	case 'r', 'd':
		return MoveRight
	case 's':
		return MoveStop
	default:
		return MoveInvalid
	}
}
