package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"detectivequest/internal/game"
	"detectivequest/internal/game/explore"
	"detectivequest/internal/game/narration"
)

// runPlain plays a session over a line-oriented reader and writer. End of input stops the
// exploration, and at the accusation prompt it means no suspect was named. Lines have no
// length limit; a read error ends the input the same way and is returned at the end.
func runPlain(ctx context.Context, s *game.Session, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	var readErr error
	readLine := func() (string, bool) {
		if readErr != nil {
			return "", false
		}
		line, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
				return "", false
			}
			if line == "" {
				return "", false
			}
		}
		return strings.TrimRight(line, "\r\n"), true
	}
	emit := func(lines ...string) {
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
	}

	emit(narration.Title(s.Title()), "")
	emit(narration.Events(s.Begin(ctx))...)

	for !s.Finished() {
		prompt := narration.Prompt()
		if s.AtLeaf() {
			prompt = narration.LeafPrompt()
		}
		fmt.Fprintf(out, "\n%s\n> ", prompt)
		line, ok := readLine()
		if !ok {
			fmt.Fprintln(out)
			line = explore.MoveStop.String()
		}
		emit(narration.Events(s.Choose(ctx, line))...)
	}

	emit("")
	if clues := s.Clues(); len(clues) > 0 {
		emit(narration.ClueList(clues)...)
	}

	var accused string
	if s.NeedsAccusation() {
		fmt.Fprintf(out, "\n%s\n> ", narration.AccusePrompt(s.Suspects()))
		accused, _ = readLine()
		emit("")
	}
	emit(narration.Verdict(s.Accuse(ctx, accused))...)

	if trail := narration.Trail(s.Trail(ctx)); trail != "" {
		emit(trail)
	}
	emit("", narration.Farewell(s.Title()))

	if readErr != nil {
		return fmt.Errorf("failed to read input: %w", readErr)
	}
	return nil
}
