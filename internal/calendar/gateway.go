// Package calendar defines the provider-facing surface the dispatcher
// consumes. Authentication and token refresh live entirely behind it.
package calendar

import "context"

// Event is the provider's view of a calendar entry. Nothing in this process
// caches or indexes these; every read re-queries the provider.
type Event struct {
	ID      string
	Summary string
	Start   string
	End     string
}

// Gateway exposes the four operations the dispatcher needs. Implementations
// own credentials; callers never see them.
type Gateway interface {
	// ListUpcoming returns up to maxResults single-occurrence events
	// starting at or after now, ordered by start time ascending.
	ListUpcoming(ctx context.Context, maxResults int64) ([]Event, error)

	// Insert creates one event with the given summary, bounds, and the
	// fixed bot timezone.
	Insert(ctx context.Context, summary, start, end, timezone string) (*Event, error)

	// FindByTitle runs the provider's text search over upcoming events.
	FindByTitle(ctx context.Context, query string) ([]Event, error)

	// Delete removes the event with the given provider id.
	Delete(ctx context.Context, id string) error
}
