// Package prompts assembles the text sent to a generation backend.
package prompts

import (
	"strings"

	"github.com/stokhos-ai/parley/chatmodel"
)

// AssistantCue is the trailing marker that signals the backend to produce
// the next assistant turn.
const AssistantCue = "\nassistant:"

// RenderTranscript concatenates the history as "<role>: <content>\n" lines in
// insertion order, appends the tool context verbatim when present, and ends
// with the assistant cue. No truncation or token budgeting is applied.
func RenderTranscript(msgs []chatmodel.Message, toolContext string) string {
	var buf strings.Builder
	for _, msg := range msgs {
		buf.WriteString(msg.Role.String())
		buf.WriteString(": ")
		buf.WriteString(msg.Content)
		buf.WriteByte('\n')
	}
	buf.WriteString(toolContext)
	buf.WriteString(AssistantCue)
	return buf.String()
}
