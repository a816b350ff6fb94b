// Package logging builds the structured logger injected into every
// component. Components never log through a package-level global.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with the component name. When pretty is
// true output is human-readable console format, otherwise JSON.
func New(component string, pretty bool) zerolog.Logger {
	var out io.Writer = os.Stderr
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).With().
		Timestamp().
		Str("component", component).
		Logger()
}

// Nop returns a disabled logger for tests and optional dependencies.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
