package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"detectivequest/cmd/game/ui"
	"detectivequest/internal/config"
	"detectivequest/internal/debug"
	"detectivequest/internal/game"
	"detectivequest/internal/game/scenario"
	"detectivequest/internal/journal"
	"detectivequest/internal/observability"
)

type app struct {
	session *game.Session
	debug   *debug.Logger
}

func createApp(ctx context.Context, cfg config.Config) (*app, func(), error) {
	debugLogger := debug.NewLogger(cfg.Debug)

	tracerProvider, err := observability.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		debugLogger.Printf("Failed to initialize tracing: %v", err)
	} else if tracerProvider.IsEnabled() {
		debugLogger.Println("OpenTelemetry tracing initialized and enabled")
	} else {
		debugLogger.Println("OpenTelemetry tracing disabled (set OTEL_TRACES_ENABLED=true to enable)")
	}

	j, err := journal.Open(cfg.JournalPath)
	if err != nil {
		debugLogger.Close()
		return nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}
	debugLogger.Printf("Journal opened at %s", cfg.JournalPath)

	session := game.NewSession(scenario.Default(), game.Options{
		Logger:  debugLogger,
		Journal: j,
		Tracer:  tracerProvider.GetTracer("detectivequest/game"),
	})
	debugLogger.Printf("Starting %s, session %s", session.Title(), session.ID())

	cleanup := func() {
		session.Close()
		if err := j.Close(); err != nil {
			debugLogger.Printf("Failed to close journal: %v", err)
		}
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			debugLogger.Printf("Failed to shut down tracing: %v", err)
		}
		debugLogger.Close()
	}

	return &app{session: session, debug: debugLogger}, cleanup, nil
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if rootFlags.debug {
		cfg.Debug = true
	}

	ctx := cmd.Context()
	a, cleanup, err := createApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if rootFlags.plain || !interactive(os.Stdin, os.Stdout) {
		a.debug.Println("Using plain console")
		return runPlain(ctx, a.session, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	p := tea.NewProgram(ui.NewModel(ctx, a.session, a.debug))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run UI: %w", err)
	}
	return nil
}

// interactive reports whether both ends are attached to a terminal.
func interactive(in, out *os.File) bool {
	return isTerminal(in) && isTerminal(out)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
