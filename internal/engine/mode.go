package engine

import (
	"fmt"
	"strings"
)

// Mode selects the summary style. The set is closed: the zero value is invalid
// and ParseMode is the only way in from untrusted input.
type Mode int

const (
	ModeQuick Mode = iota + 1
	ModeDeepDive
	ModeKeyQuotes
	ModeKeyPrinciples
)

type modeSpec struct {
	name   string // wire name
	label  string // human label, also sent to the narration pass
	prompt string // system prompt
}

var modeSpecs = map[Mode]modeSpec{
	ModeQuick: {
		name:   "quick",
		label:  "Quick Summary",
		prompt: fmt.Sprintf(quickSummaryPrompt, fmt.Sprintf(summaryOutputContract, "Concise bullet summary of the key points")),
	},
	ModeDeepDive: {
		name:   "deep_dive",
		label:  "Deep Dive",
		prompt: fmt.Sprintf(deepDiveSummaryPrompt, fmt.Sprintf(summaryOutputContract, "Detailed summary organized with headings and subheadings")),
	},
	ModeKeyQuotes: {
		name:   "key_quotes",
		label:  "Key Quotes",
		prompt: fmt.Sprintf(keyQuotesSummaryPrompt, fmt.Sprintf(summaryOutputContract, "Extracted quotes")),
	},
	ModeKeyPrinciples: {
		name:   "key_principles",
		label:  "Key Principles",
		prompt: fmt.Sprintf(keyPrinciplesSummaryPrompt, fmt.Sprintf(summaryOutputContract, "Core principles or lessons with explanations")),
	},
}

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{ModeQuick, ModeDeepDive, ModeKeyQuotes, ModeKeyPrinciples}
}

// ParseMode maps a wire name ("quick", "deep_dive", ...) to its Mode.
// Matching is exact after trimming; labels are accepted too.
func ParseMode(s string) (Mode, bool) {
	s = strings.TrimSpace(s)
	for m, spec := range modeSpecs {
		if s == spec.name || s == spec.label {
			return m, true
		}
	}
	return 0, false
}

// String returns the wire name.
func (m Mode) String() string {
	if spec, ok := modeSpecs[m]; ok {
		return spec.name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Label returns the human-readable name.
func (m Mode) Label() string { return modeSpecs[m].label }

// SystemPrompt returns the instruction template for the mode.
func (m Mode) SystemPrompt() string { return modeSpecs[m].prompt }
