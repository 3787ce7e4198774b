package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// LogFile is where debug output goes when debug mode is on.
const LogFile = "debug.log"

// Logger writes slog text records when debug mode is enabled and discards them otherwise.
type Logger struct {
	enabled bool
	log     *slog.Logger
	closer  io.Closer
}

func NewLogger(enabled bool) *Logger {
	if !enabled {
		return New(io.Discard, false)
	}

	logFile, err := os.OpenFile(LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// Without a file there is nowhere to put the records; stay quiet rather than
		// writing over the game screen.
		return New(io.Discard, false)
	}

	d := New(logFile, true)
	d.closer = logFile
	d.Println("=== DEBUG MODE ENABLED ===")
	return d
}

// New builds a logger on top of w.
func New(w io.Writer, enabled bool) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &Logger{enabled: enabled, log: slog.New(handler)}
}

// With returns a logger that adds attrs to every record.
func (d *Logger) With(attrs ...any) *Logger {
	return &Logger{enabled: d.enabled, log: d.log.With(attrs...)}
}

func (d *Logger) Printf(format string, args ...interface{}) {
	if d.enabled {
		d.log.Debug(fmt.Sprintf(format, args...))
	}
}

func (d *Logger) Println(args ...interface{}) {
	if d.enabled {
		d.log.Debug(fmt.Sprint(args...))
	}
}

// Log emits msg with structured key/value pairs.
func (d *Logger) Log(msg string, args ...any) {
	if d.enabled {
		d.log.Debug(msg, args...)
	}
}

func (d *Logger) IsEnabled() bool {
	return d.enabled
}

func (d *Logger) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}
