// Package dispatch maps a resolved intent to a calendar operation and a
// user-facing reply string.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/russhil/telegram-ai-calendar/internal/calendar"
	"github.com/russhil/telegram-ai-calendar/internal/intent"
)

// maxUpcoming bounds every list query.
const maxUpcoming = 5

// Canned replies. Provider errors are logged internally and never surfaced
// verbatim to the user.
const (
	replyNoEvents       = "No upcoming events."
	replyNotFound       = "No matching event found."
	replyCreateFailed   = "Sorry, I couldn't create that event."
	replyDeleteFailed   = "Sorry, I couldn't delete that event."
	replyListFailed     = "Sorry, I couldn't fetch your events."
	replyNotImplemented = "Updating events isn't supported yet."
)

// Dispatcher executes a single intent against the gateway. It holds no
// state between calls.
type Dispatcher struct {
	gateway  calendar.Gateway
	timezone string
}

func NewDispatcher(gateway calendar.Gateway, timezone string) *Dispatcher {
	return &Dispatcher{gateway: gateway, timezone: timezone}
}

// Dispatch runs the side effect for the intent and returns the reply text.
// It never returns an error; every failure maps to a canned reply.
func (d *Dispatcher) Dispatch(ctx context.Context, in intent.Intent) string {
	switch in.Action {
	case intent.ActionList:
		return d.listEvents(ctx)
	case intent.ActionCreate:
		return d.createEvent(ctx, in)
	case intent.ActionDelete:
		return d.deleteEvent(ctx, in)
	case intent.ActionUpdate:
		return replyNotImplemented
	case intent.ActionNone:
		return in.Reply
	default:
		log.Warn().Str("action", string(in.Action)).Msg("Unknown action reached dispatcher")
		return intent.FallbackReply
	}
}

func (d *Dispatcher) listEvents(ctx context.Context) string {
	events, err := d.gateway.ListUpcoming(ctx, maxUpcoming)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list upcoming events")
		return replyListFailed
	}

	if len(events) == 0 {
		return replyNoEvents
	}

	var b strings.Builder
	b.WriteString("Upcoming events:")
	for _, event := range events {
		b.WriteString(fmt.Sprintf("\n%s at %s", event.Summary, event.Start))
	}
	return b.String()
}

func (d *Dispatcher) createEvent(ctx context.Context, in intent.Intent) string {
	created, err := d.gateway.Insert(ctx, in.Title, in.Start, in.End, d.timezone)
	if err != nil {
		log.Error().Err(err).Str("title", in.Title).Msg("Failed to create event")
		return replyCreateFailed
	}

	log.Info().Str("event_id", created.ID).Str("title", in.Title).Msg("Created event")
	return fmt.Sprintf("Created %q starting %s", in.Title, in.Start)
}

func (d *Dispatcher) deleteEvent(ctx context.Context, in intent.Intent) string {
	matches, err := d.gateway.FindByTitle(ctx, in.Title)
	if err != nil {
		log.Error().Err(err).Str("title", in.Title).Msg("Failed to search events")
		return replyDeleteFailed
	}

	if len(matches) == 0 {
		return replyNotFound
	}

	// Deletes the first match only. When several events share a title the
	// selection is the provider's search order, not a disambiguation.
	target := matches[0]
	if err := d.gateway.Delete(ctx, target.ID); err != nil {
		log.Error().Err(err).Str("event_id", target.ID).Msg("Failed to delete event")
		return replyDeleteFailed
	}

	log.Info().Str("event_id", target.ID).Str("summary", target.Summary).Msg("Deleted event")
	return fmt.Sprintf("Deleted %q", target.Summary)
}
