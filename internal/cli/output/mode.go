// Package output renders command results for terminals, markdown consumers
// and JSON scripts.
package output

import "fmt"

// Mode selects how command output is rendered.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"     // text on a terminal, markdown otherwise
	ModeText     Mode = "text"     // styled for humans
	ModeMarkdown Mode = "markdown" // plain markdown, agent friendly
	ModeJSON     Mode = "json"     // machine readable
)

// Modes lists the accepted modes for flag completion and validation.
func Modes() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}
}

// ParseMode validates s. An empty string means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return m, nil
	default:
		return "", fmt.Errorf("invalid output format %q (expected one of auto, text, markdown, json)", s)
	}
}
