package logging

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

// New builds the application logger. An unknown level falls back to info.
func New(level string, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "timelog",
		Level:  lvl,
		Output: w,
	})
}

// Discard is used by tests and callers that do not want advisory output.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
