// Package intent turns free-form user text into one of a small fixed set of
// calendar actions by round-tripping it through a completion endpoint.
package intent

// Action identifies which calendar operation the user asked for.
type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
	ActionUpdate Action = "update"
	ActionNone   Action = "none"
)

// Intent is the resolved action plus its parameters. For ActionNone, Reply
// carries the text to send back verbatim; every other field is meaningful
// only for the action that names it.
type Intent struct {
	Action Action
	Title  string
	Start  string
	End    string
	Reply  string
}

// FallbackReply is returned whenever intent extraction fails: a completion
// error, unparseable output, or missing required fields. The schema is
// all-or-nothing; partial successes are never dispatched.
const FallbackReply = "Sorry, I couldn't work out what you meant. Try something like \"schedule standup tomorrow at 9am\"."

// NoAction builds the uniform failure result.
func NoAction(reply string) Intent {
	return Intent{Action: ActionNone, Reply: reply}
}
