package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	calendarID     = "primary"
	searchMax      = 10
	requestTimeout = 30 * time.Second
)

// GoogleGateway implements Gateway against the Google Calendar v3 API using
// a stored OAuth2 token. The token source handles refresh; the credential
// state is not mutated by this package after construction.
type GoogleGateway struct {
	svc *gcal.Service
	now func() time.Time
}

func NewGoogleGateway(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) (*GoogleGateway, error) {
	client := conf.Client(ctx, token)

	svc, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar service: %w", err)
	}

	log.Info().Str("calendar_id", calendarID).Msg("Initialised Google Calendar gateway")
	return &GoogleGateway{svc: svc, now: time.Now}, nil
}

func (g *GoogleGateway) ListUpcoming(ctx context.Context, maxResults int64) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.svc.Events.List(calendarID).
		Context(ctx).
		TimeMin(g.now().Format(time.RFC3339)).
		MaxResults(maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return convertEvents(resp.Items), nil
}

func (g *GoogleGateway) Insert(ctx context.Context, summary, start, end, timezone string) (*Event, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	event := &gcal.Event{
		Summary: summary,
		Start:   &gcal.EventDateTime{DateTime: start, TimeZone: timezone},
		End:     &gcal.EventDateTime{DateTime: end, TimeZone: timezone},
	}

	created, err := g.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	converted := convertEvent(created)
	return &converted, nil
}

func (g *GoogleGateway) FindByTitle(ctx context.Context, query string) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.svc.Events.List(calendarID).
		Context(ctx).
		Q(query).
		TimeMin(g.now().Format(time.RFC3339)).
		MaxResults(searchMax).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}

	return convertEvents(resp.Items), nil
}

func (g *GoogleGateway) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := g.svc.Events.Delete(calendarID, id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func convertEvents(items []*gcal.Event) []Event {
	events := make([]Event, 0, len(items))
	for _, item := range items {
		events = append(events, convertEvent(item))
	}
	return events
}

func convertEvent(item *gcal.Event) Event {
	event := Event{
		ID:      item.Id,
		Summary: item.Summary,
	}
	// All-day events carry Date instead of DateTime
	if item.Start != nil {
		event.Start = item.Start.DateTime
		if event.Start == "" {
			event.Start = item.Start.Date
		}
	}
	if item.End != nil {
		event.End = item.End.DateTime
		if event.End == "" {
			event.End = item.End.Date
		}
	}
	return event
}
