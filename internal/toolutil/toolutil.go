// Package toolutil provides shared helper functions for go_digest MCP tools.
package toolutil

import (
	"strings"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

// DefaultMode is used when a tool call leaves the summary mode empty.
const DefaultMode = "quick"

// NormMode normalises a mode field: empty string → "quick".
// Anything else is passed through so the summarizer can reject it by name.
func NormMode(mode string) string {
	if strings.TrimSpace(mode) == "" {
		return DefaultMode
	}
	return mode
}

// ErrorFields converts a stage error into the error/error_kind pair every
// tool output carries. A failed stage is reported in the output rather than as
// a protocol error so callers can branch on the kind. Untagged errors keep
// their text and get an empty kind.
func ErrorFields(err error) (msg, kind string) {
	if err == nil {
		return "", ""
	}
	return err.Error(), string(engine.KindOf(err))
}

// ModeNames lists the accepted wire names, for tool descriptions.
func ModeNames() string {
	modes := engine.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}
