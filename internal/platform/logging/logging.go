package logging

import (
	"io"
	"strings"

	hclog "github.com/hashicorp/go-hclog"
)

const name = "miftah"

// New builds the process logger. Unknown levels fall back to info.
func New(level string, out io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(strings.TrimSpace(level))
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  lvl,
		Output: out,
	})
}

// ValidLevel reports whether level names an hclog level.
func ValidLevel(level string) bool {
	return hclog.LevelFromString(strings.TrimSpace(level)) != hclog.NoLevel
}

func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
