package domain

import (
	"context"
)

// DiscoveryClient is the outbound side of the service. Implementations never
// return errors: failed lookups come back as empty results.
type DiscoveryClient interface {
	EventsByCity(ctx context.Context, city string, size int) []Event
	EventByID(ctx context.Context, id string) *Event
	SearchEvents(ctx context.Context, keyword string) []Event
	CategoryContent(ctx context.Context, category string, filters CategoryFilters) CategoryContent
	Suggest(ctx context.Context, keyword string) CategoryContent
	Festivals(ctx context.Context) []Event
}

// WishlistStore holds the events a session has saved, keyed by event id.
type WishlistStore interface {
	Add(ctx context.Context, event Event) error
	Remove(ctx context.Context, eventID string) error
	Contains(ctx context.Context, eventID string) (bool, error)
	List(ctx context.Context) ([]Event, error)
	Len(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
