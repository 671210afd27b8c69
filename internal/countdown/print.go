package countdown

import (
	"encoding/json"
	"fmt"
	"io"
)

// Line renders a snapshot as one line of plain text.
func Line(s Snapshot, finishedMessage string) string {
	switch s.State {
	case StateIdle:
		return "Set a deadline to start the countdown"
	case StateExpired:
		if finishedMessage == "" {
			return "TIME'S UP!"
		}
		return "TIME'S UP! " + finishedMessage
	}
	line := fmt.Sprintf("%s  [%s]", s.Remaining, s.Urgency)
	if s.Urgency == Critical {
		line += "  FINAL COUNTDOWN"
	}
	return line
}

// PrintSnapshot writes s to w, as indented JSON when jsonOutput is set.
func PrintSnapshot(w io.Writer, s Snapshot, finishedMessage string, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	_, err := fmt.Fprintln(w, Line(s, finishedMessage))
	return err
}
