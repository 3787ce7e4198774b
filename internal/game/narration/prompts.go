// Package narration turns engine events and verdicts into the sentences shown to the
// player. Every transport prints through here so the wording stays in one place.
package narration

import (
	"fmt"
	"strings"

	"detectivequest/internal/game/explore"
	"detectivequest/internal/game/verdict"
)

func Title(name string) string {
	return fmt.Sprintf("--- %s: exploring the mansion ---", name)
}

// Prompt is shown whenever the player must pick a direction.
func Prompt() string {
	return "Choose: (l)eft, (r)ight or (s)top exploring"
}

// LeafPrompt replaces Prompt in a room with no exits.
func LeafPrompt() string {
	return "No exits from here. Choose (s)top exploring, or try (l)eft / (r)ight"
}

// Event describes one engine event. Events that need no sentence return "".
func Event(ev explore.Event) string {
	switch ev.Type {
	case explore.EventEnteredRoom:
		return "You are in: " + ev.Room
	case explore.EventClueFound:
		return fmt.Sprintf("Clue found: %q. Added to your notebook.", ev.Clue)
	case explore.EventClueKnown:
		return fmt.Sprintf("%q is already in your notebook.", ev.Clue)
	case explore.EventNoClue:
		return "No apparent clues in this room."
	case explore.EventDeadEnd:
		return fmt.Sprintf("There is no room to the %s.", ev.Move)
	case explore.EventInvalidChoice:
		return "Invalid option. Use l, r or s."
	case explore.EventFinished:
		return "Leaving the exploration..."
	default:
		return ""
	}
}

// Events describes a batch of events, skipping the silent ones.
func Events(events []explore.Event) []string {
	var lines []string
	for _, ev := range events {
		if line := Event(ev); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ClueList renders the notebook before the accusation.
func ClueList(clues []string) []string {
	lines := []string{"Collected clues:"}
	for _, c := range clues {
		lines = append(lines, " - "+c)
	}
	return lines
}

// AccusePrompt asks for the suspect's name, listing the known suspects as a hint.
func AccusePrompt(suspects []string) string {
	if len(suspects) == 0 {
		return "Who do you accuse?"
	}
	return fmt.Sprintf("Who do you accuse? (%s)", strings.Join(suspects, ", "))
}

// Verdict renders the outcome of the judgement.
func Verdict(v verdict.Verdict) []string {
	switch v.Outcome {
	case verdict.NoEvidence:
		return []string{"No clues were collected. There is no ground for an accusation."}
	case verdict.NoAccusation:
		return []string{"No suspect named. The judgement is closed."}
	}

	lines := []string{
		"You accused: " + v.Accused,
		fmt.Sprintf("Clues pointing to %s: %d", v.Accused, v.Count),
	}
	if v.Outcome == verdict.Supported {
		lines = append(lines, "OUTCOME: Valid accusation! There is enough evidence to hold the case.")
	} else {
		lines = append(lines, fmt.Sprintf("OUTCOME: Weak accusation. At least %d clues are needed to convict.", verdict.Threshold))
	}
	return lines
}

func Trail(rooms []string) string {
	if len(rooms) == 0 {
		return ""
	}
	return "Your path: " + strings.Join(rooms, " -> ")
}

func Farewell(title string) string {
	return fmt.Sprintf("Thanks for playing %s!", title)
}
