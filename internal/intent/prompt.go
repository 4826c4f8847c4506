package intent

import (
	"fmt"
	"time"
)

// systemInstruction pins the model to the action schema. The response is
// requested as bare JSON; extractJSON still strips any wrapping the model
// adds despite the instruction.
const systemInstruction = `You are a scheduling assistant. Convert the user's request into a single JSON object and nothing else - no markdown, no commentary.

The object must have an "action" field with one of these values: "list", "create", "delete", "update", "none".

Required fields per action:
- "create": "title" (string), "start" and "end" (ISO-8601 timestamps with offset)
- "delete": "title" (string)
- "list": no other fields
- "update": no other fields
- "none": "reply" (a short conversational answer to the user)

Use "none" when the request is not about calendar events. Resolve relative dates against NOW_ISO in the user message.`

// userPrompt prefixes the raw text with the clock and timezone the model
// should resolve relative dates against.
func userPrompt(text, timezone string, now time.Time) string {
	return fmt.Sprintf("NOW_TZ: %s\nNOW_ISO: %s\nUser request:\n%s",
		timezone, now.Format(time.RFC3339), text)
}
