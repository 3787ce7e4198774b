package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"detectivequest/internal/config"
	"detectivequest/internal/journal"
)

var reviewFlags struct {
	limit int
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List recent sessions recorded in the journal",
	Long:  "Reads the journal file named by DETECTIVE_JOURNAL and prints the latest sessions\nwith the rooms they visited and how the accusation ended.",
	Args:  cobra.NoArgs,
	RunE:  runReview,
}

func init() {
	reviewCmd.Flags().IntVar(&reviewFlags.limit, "limit", 10, "Number of sessions to show")
}

func runReview(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if cfg.JournalPath == journal.MemoryPath {
		fmt.Fprintln(out, "The journal is kept in memory only. Set DETECTIVE_JOURNAL to a file to keep sessions.")
		return nil
	}

	j, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer j.Close()

	ctx := cmd.Context()
	sessions, err := j.RecentSessions(ctx, reviewFlags.limit)
	if err != nil {
		return fmt.Errorf("failed to get sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions found. Play the game first to generate data!")
		return nil
	}

	fmt.Fprintf(out, "Recent sessions (%d):\n\n", len(sessions))
	for _, s := range sessions {
		fmt.Fprintf(out, "[%s] %s | %d rooms\n", s.ID, s.StartedAt.Format("2006-01-02 15:04:05"), s.Visits)

		visits, err := j.Trail(ctx, s.ID)
		if err != nil {
			return fmt.Errorf("failed to get trail: %w", err)
		}
		rooms := make([]string, 0, len(visits))
		for _, v := range visits {
			rooms = append(rooms, v.Room)
		}
		fmt.Fprintf(out, "Path: %s\n", strings.Join(rooms, " -> "))

		if s.Outcome == "" {
			fmt.Fprintln(out, "Verdict: unfinished")
		} else if s.Accused == "" {
			fmt.Fprintf(out, "Verdict: %s\n", s.Outcome)
		} else {
			fmt.Fprintf(out, "Verdict: %s against %s (%d clues)\n", s.Outcome, s.Accused, s.Count)
		}
		fmt.Fprintln(out, strings.Repeat("-", 50))
	}
	return nil
}
