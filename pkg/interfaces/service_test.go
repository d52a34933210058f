package interfaces

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yair/billettlyst/pkg/domain"
)

var testCities = []string{"Oslo", "London", "Berlin", "Paris", "New York"}

func TestDiscoveryService_Home(t *testing.T) {
	var requestedCity string
	client := &mockClient{
		festivalsFunc: func(ctx context.Context) []domain.Event {
			return []domain.Event{sampleFestival("oya")}
		},
		eventsByCityFunc: func(ctx context.Context, city string, size int) []domain.Event {
			requestedCity = city
			assert.Equal(t, cityPageSize, size)
			return []domain.Event{sampleEvent("e1", "Kygo")}
		},
	}
	service := NewDiscoveryService(client, testCities)
	session := memorySessions().Create()
	session.SetCity("Bergen")

	view, err := service.Home(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, "Bergen", requestedCity)
	assert.Equal(t, "Bergen", view.City)
	assert.Equal(t, testCities, view.Cities)
	require.Len(t, view.Festivals, 1)
	assert.Equal(t, "oya", view.Festivals[0].ID)
	require.Len(t, view.Events, 1)
}

func TestDiscoveryService_HomeWithFailingUpstream(t *testing.T) {
	service := NewDiscoveryService(&mockClient{}, testCities)

	view, err := service.Home(context.Background(), memorySessions().Create())
	require.NoError(t, err)
	assert.NotNil(t, view.Festivals)
	assert.Empty(t, view.Festivals)
	assert.NotNil(t, view.Events)
	assert.Empty(t, view.Events)
}

func TestDiscoveryService_CityEvents(t *testing.T) {
	service := NewDiscoveryService(&mockClient{
		eventsByCityFunc: func(ctx context.Context, city string, size int) []domain.Event {
			return []domain.Event{sampleEvent("e1", "Event in "+city)}
		},
	}, testCities)
	session := memorySessions().Create()

	view, err := service.CityEvents(context.Background(), session, " London ")
	require.NoError(t, err)
	assert.Equal(t, "London", view.City)
	assert.Equal(t, "London", session.City())
	assert.Equal(t, "Event in London", view.Events[0].Name)

	_, err = service.CityEvents(context.Background(), session, "")
	var validation domain.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "London", session.City())
}

func TestDiscoveryService_SearchEvents(t *testing.T) {
	service := NewDiscoveryService(&mockClient{
		searchEventsFunc: func(ctx context.Context, keyword string) []domain.Event {
			assert.Equal(t, "kygo", keyword)
			return []domain.Event{sampleEvent("e1", "Kygo")}
		},
	}, testCities)
	session := memorySessions().Create()

	view, err := service.SearchEvents(context.Background(), session, "kygo")
	require.NoError(t, err)
	assert.Equal(t, "kygo", view.Query)
	assert.Len(t, view.Events, 1)

	_, err = service.SearchEvents(context.Background(), session, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestDiscoveryService_Category(t *testing.T) {
	filters := domain.CategoryFilters{Date: "2025-07-01T00:00:00Z", Country: "NO", City: "Oslo"}
	service := NewDiscoveryService(&mockClient{
		categoryContentFunc: func(ctx context.Context, category string, got domain.CategoryFilters) domain.CategoryContent {
			assert.Equal(t, "arts-theatre", category)
			assert.Equal(t, filters, got)
			content := domain.EmptyCategoryContent()
			content.Events = []domain.Event{sampleEvent("e1", "Hamlet")}
			content.Attractions = []domain.Attraction{{ID: "a1", Name: "Det Norske Teatret"}}
			return content
		},
	}, testCities)

	view, err := service.Category(context.Background(), memorySessions().Create(), "arts-theatre", filters)
	require.NoError(t, err)
	assert.Equal(t, "Arts Theatre", view.Title)
	assert.Equal(t, filters, view.Filters)
	assert.Len(t, view.Events, 1)
	assert.Len(t, view.Artists, 1)
	assert.NotNil(t, view.Venues)
	assert.Empty(t, view.Venues)

	_, err = service.Category(context.Background(), memorySessions().Create(), "", filters)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestDiscoveryService_CategorySuggest(t *testing.T) {
	service := NewDiscoveryService(&mockClient{
		suggestFunc: func(ctx context.Context, keyword string) domain.CategoryContent {
			content := domain.EmptyCategoryContent()
			content.Venues = []domain.Venue{{ID: "v1", Name: "Spektrum"}}
			return content
		},
	}, testCities)
	session := memorySessions().Create()

	view, err := service.CategorySuggest(context.Background(), session, "music", "spek")
	require.NoError(t, err)
	assert.Equal(t, "Music", view.Title)
	assert.Equal(t, "spek", view.Query)
	assert.Len(t, view.Venues, 1)

	_, err = service.CategorySuggest(context.Background(), session, "music", "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestDiscoveryService_EventPage(t *testing.T) {
	concert := sampleEvent("e1", "Kygo")
	concert.Info = "Doors open at 18:00"
	concert.Classifications = []domain.Classification{{
		Segment: &domain.ClassificationItem{Name: "Music"},
		Genre:   &domain.ClassificationItem{Name: "Pop"},
	}}
	concert.PriceRanges = []domain.PriceRange{{Type: "standard", Currency: "NOK", Min: 450, Max: 450}}
	concert.Embedded.Attractions = []domain.Attraction{{ID: "a1", Name: "Kygo"}}

	service := NewDiscoveryService(&mockClient{
		eventByIDFunc: eventsByID(concert, sampleFestival("oya")),
	}, testCities)

	t.Run("regular event", func(t *testing.T) {
		view, err := service.EventPage(context.Background(), memorySessions().Create(), "e1")
		require.NoError(t, err)
		assert.Equal(t, "Thursday, July 10, 2025", view.Date)
		assert.Equal(t, "19:30", view.Time)
		assert.Equal(t, "Tøyenparken", view.Venue)
		assert.Equal(t, "Oslo, Norway", view.Location)
		assert.Equal(t, "Music - Pop", view.Genre)
		assert.Equal(t, "Doors open at 18:00", view.Info)
		assert.Equal(t, []PriceRangeView{{Type: "standard", Label: "450 NOK"}}, view.PriceRanges)
		assert.Len(t, view.Artists, 1)
		assert.False(t, view.IsFestival)
		assert.NotNil(t, view.Passes)
		assert.Empty(t, view.Passes)
		assert.False(t, view.InWishlist)
	})

	t.Run("festival offers passes", func(t *testing.T) {
		session := memorySessions().Create()
		require.NoError(t, session.Wishlist.Add(context.Background(), sampleFestival("oya")))

		view, err := service.EventPage(context.Background(), session, "oya")
		require.NoError(t, err)
		assert.True(t, view.IsFestival)
		assert.True(t, view.InWishlist)
		require.Len(t, view.Passes, 5)
		assert.Equal(t, domain.PassStandard, view.Passes[0].Type)
		assert.Equal(t, "100 - 300 NOK", view.Passes[0].PriceLabel)
		assert.Equal(t, domain.PassPremium, view.Passes[1].Type)
		assert.Equal(t, "Jul 11, 2025", view.Passes[3].DateLabel)
		assert.Equal(t, "60 - 70 NOK", view.Passes[3].PriceLabel)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := service.EventPage(context.Background(), memorySessions().Create(), "missing")
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("blank id", func(t *testing.T) {
		_, err := service.EventPage(context.Background(), memorySessions().Create(), " ")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestDiscoveryService_Passes(t *testing.T) {
	service := NewDiscoveryService(&mockClient{
		eventByIDFunc: eventsByID(sampleEvent("e1", "Kygo"), sampleFestival("oya")),
	}, testCities)

	view, err := service.Passes(context.Background(), "oya")
	require.NoError(t, err)
	assert.True(t, view.IsFestival)
	assert.Len(t, view.Passes, 5)

	view, err = service.Passes(context.Background(), "e1")
	require.NoError(t, err)
	assert.False(t, view.IsFestival)
	assert.Empty(t, view.Passes)

	_, err = service.Passes(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestDiscoveryService_Wishlist(t *testing.T) {
	ctx := context.Background()
	service := NewDiscoveryService(&mockClient{
		eventByIDFunc: eventsByID(sampleEvent("e1", "Kygo"), sampleEvent("e2", "Sigrid")),
	}, testCities)
	session := memorySessions().Create()

	status, err := service.AddToWishlist(ctx, session, "e2")
	require.NoError(t, err)
	assert.True(t, status.InWishlist)

	_, err = service.AddToWishlist(ctx, session, "e1")
	require.NoError(t, err)

	_, err = service.AddToWishlist(ctx, session, "missing")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	dashboard, err := service.Dashboard(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.Count)
	assert.Equal(t, "e2", dashboard.Events[0].ID)
	assert.True(t, dashboard.Events[0].InWishlist)

	status, err = service.InWishlist(ctx, session, "e1")
	require.NoError(t, err)
	assert.True(t, status.InWishlist)

	status, err = service.RemoveFromWishlist(ctx, session, "e1")
	require.NoError(t, err)
	assert.False(t, status.InWishlist)

	status, err = service.InWishlist(ctx, session, "e1")
	require.NoError(t, err)
	assert.False(t, status.InWishlist)

	_, err = service.RemoveFromWishlist(ctx, session, "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	dashboard, err = service.Dashboard(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.Count)
}
