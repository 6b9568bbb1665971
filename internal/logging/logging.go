package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON lines to the given file. The UI owns
// the terminal, so logs never go to stdout. An unwritable path degrades
// to a disabled logger rather than failing startup.
func New(path string) zerolog.Logger {
	w, err := open(path)
	if err != nil {
		return zerolog.New(io.Discard)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	return zerolog.New(w).With().
		Timestamp().
		Logger()
}

func open(path string) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
