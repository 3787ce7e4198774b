// Package config gathers runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"detectivequest/internal/journal"
	"detectivequest/internal/observability"
)

type Config struct {
	Debug bool
	// JournalPath is the sqlite file for the session journal. The default keeps it in
	// memory so nothing outlives the process.
	JournalPath string
	Tracing     observability.Config
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(os.Getenv), nil
}

// FromEnv builds a Config using getenv for lookups.
func FromEnv(getenv func(string) string) Config {
	journalPath := getenv("DETECTIVE_JOURNAL")
	if journalPath == "" {
		journalPath = journal.MemoryPath
	}

	return Config{
		Debug:       getenv("DEBUG") == "1" || getenv("DEBUG") == "true",
		JournalPath: journalPath,
		Tracing:     observability.LoadConfig(getenv),
	}
}
