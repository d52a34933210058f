package interfaces

import (
	"context"
	"time"

	"github.com/yair/billettlyst/pkg/collectors"
	"github.com/yair/billettlyst/pkg/domain"
)

type mockClient struct {
	eventsByCityFunc    func(ctx context.Context, city string, size int) []domain.Event
	eventByIDFunc       func(ctx context.Context, id string) *domain.Event
	searchEventsFunc    func(ctx context.Context, keyword string) []domain.Event
	categoryContentFunc func(ctx context.Context, category string, filters domain.CategoryFilters) domain.CategoryContent
	suggestFunc         func(ctx context.Context, keyword string) domain.CategoryContent
	festivalsFunc       func(ctx context.Context) []domain.Event
}

func (m *mockClient) EventsByCity(ctx context.Context, city string, size int) []domain.Event {
	if m.eventsByCityFunc != nil {
		return m.eventsByCityFunc(ctx, city, size)
	}
	return []domain.Event{}
}

func (m *mockClient) EventByID(ctx context.Context, id string) *domain.Event {
	if m.eventByIDFunc != nil {
		return m.eventByIDFunc(ctx, id)
	}
	return nil
}

func (m *mockClient) SearchEvents(ctx context.Context, keyword string) []domain.Event {
	if m.searchEventsFunc != nil {
		return m.searchEventsFunc(ctx, keyword)
	}
	return []domain.Event{}
}

func (m *mockClient) CategoryContent(ctx context.Context, category string, filters domain.CategoryFilters) domain.CategoryContent {
	if m.categoryContentFunc != nil {
		return m.categoryContentFunc(ctx, category, filters)
	}
	return domain.EmptyCategoryContent()
}

func (m *mockClient) Suggest(ctx context.Context, keyword string) domain.CategoryContent {
	if m.suggestFunc != nil {
		return m.suggestFunc(ctx, keyword)
	}
	return domain.EmptyCategoryContent()
}

func (m *mockClient) Festivals(ctx context.Context) []domain.Event {
	if m.festivalsFunc != nil {
		return m.festivalsFunc(ctx)
	}
	return []domain.Event{}
}

func memorySessions() *Sessions {
	return NewSessions(func(string) domain.WishlistStore {
		return collectors.NewMemoryWishlist()
	}, "Oslo", time.Hour)
}

func eventsByID(events ...domain.Event) func(ctx context.Context, id string) *domain.Event {
	return func(ctx context.Context, id string) *domain.Event {
		for _, e := range events {
			if e.ID == id {
				event := e
				return &event
			}
		}
		return nil
	}
}

func sampleEvent(id, name string) domain.Event {
	return domain.Event{
		ID:   id,
		Name: name,
		URL:  "https://www.ticketmaster.no/event/" + id,
		Dates: &domain.EventDates{
			Start: domain.DateSpec{LocalDate: "2025-07-10", LocalTime: "19:30:00"},
		},
		Embedded: domain.EventEmbedded{
			Venues: []domain.Venue{{
				ID:      "v1",
				Name:    "Tøyenparken",
				City:    &domain.NamedPlace{Name: "Oslo"},
				Country: &domain.Country{Name: "Norway", CountryCode: "NO"},
			}},
		},
	}
}

func sampleFestival(id string) domain.Event {
	event := sampleEvent(id, "Øyafestivalen 2025")
	event.Dates.End = &domain.DateSpec{LocalDate: "2025-07-12"}
	event.Classifications = []domain.Classification{{Segment: &domain.ClassificationItem{Name: "Music"}}}
	event.PriceRanges = []domain.PriceRange{{Type: "standard", Currency: "NOK", Min: 100, Max: 300}}
	return event
}
