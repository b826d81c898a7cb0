// Package logging wraps zerolog for the CLI boundary. Nothing inside the
// compiler core imports this package; it exists solely so cmd/compile can
// drain the core's returned []compile.Warning values and report fatal
// errors as structured log lines instead of bare stderr text.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-writer logger tagged with the given component name,
// the way other_examples' crossfade manager derives a child logger via
// .With().Str("component", ...).Logger() for each subsystem it touches.
func New(component string) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).With().Timestamp().Str("component", component).Logger()
}

// NewTo is New with an explicit writer, for tests that want to capture
// output instead of writing to stderr.
func NewTo(w io.Writer, component string) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(writer).With().Timestamp().Str("component", component).Logger()
}

// DrainWarnings logs one warn-level line per message.
func DrainWarnings(log zerolog.Logger, runID string, messages []string) {
	for _, m := range messages {
		log.Warn().Str("runId", runID).Msg(m)
	}
}
