package interfaces

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yair/billettlyst/pkg/collectors"
	"github.com/yair/billettlyst/pkg/domain"
	"github.com/yair/billettlyst/pkg/festival"
)

func TestNewEventCard(t *testing.T) {
	t.Run("complete event", func(t *testing.T) {
		event := sampleEvent("e1", "Kygo")
		event.Images = []domain.Image{
			{Ratio: "4_3", URL: "small.jpg", Width: 305},
			{Ratio: "16_9", URL: "wide.jpg", Width: 1024},
		}

		card := newEventCard(event)
		assert.Equal(t, "e1", card.ID)
		assert.Equal(t, "wide.jpg", card.Image)
		assert.Equal(t, "Jul 10, 2025", card.Date)
		assert.Equal(t, "Oslo, Norway", card.Location)
	})

	t.Run("missing data falls back to placeholders", func(t *testing.T) {
		card := newEventCard(domain.Event{ID: "e2", Name: "Mystery"})
		assert.Equal(t, festival.PlaceholderImage, card.Image)
		assert.Equal(t, dateMissing, card.Date)
		assert.Equal(t, locationMissing, card.Location)
	})
}

type failingWishlist struct {
	*collectors.MemoryWishlist
}

func (failingWishlist) Contains(ctx context.Context, eventID string) (bool, error) {
	return false, errors.New("store offline")
}

func TestEventCards_WishlistFlag(t *testing.T) {
	ctx := context.Background()
	events := []domain.Event{sampleEvent("e1", "Kygo"), sampleEvent("e2", "Sigrid")}

	wishlist := collectors.NewMemoryWishlist()
	assert.NoError(t, wishlist.Add(ctx, events[1]))

	cards := eventCards(ctx, events, wishlist)
	assert.False(t, cards[0].InWishlist)
	assert.True(t, cards[1].InWishlist)

	cards = eventCards(ctx, events, failingWishlist{collectors.NewMemoryWishlist()})
	assert.Len(t, cards, 2)
	assert.False(t, cards[1].InWishlist)

	assert.NotNil(t, eventCards(ctx, nil, wishlist))
}

func TestArtistCards(t *testing.T) {
	cards := artistCards([]domain.Attraction{
		{
			ID:   "a1",
			Name: "Sigrid",
			Images: []domain.Image{
				{Ratio: "16_9", URL: "wide.jpg"},
				{Ratio: "1_1", URL: "square.jpg"},
			},
			Classifications: []domain.Classification{{Genre: &domain.ClassificationItem{Name: "Pop"}}},
			UpcomingEvents:  &domain.UpcomingEvents{Total: 4},
		},
		{ID: "a2", Name: "Nobody"},
	})

	assert.Equal(t, "square.jpg", cards[0].Image)
	assert.Equal(t, "Pop", cards[0].Genre)
	assert.Equal(t, 4, cards[0].UpcomingEvents)

	assert.Equal(t, festival.PlaceholderImage, cards[1].Image)
	assert.Equal(t, genreUnknown, cards[1].Genre)
	assert.Zero(t, cards[1].UpcomingEvents)
}

func TestVenueCards(t *testing.T) {
	cards := venueCards([]domain.Venue{
		{
			ID:      "v1",
			Name:    "Grieghallen",
			City:    &domain.NamedPlace{Name: "Bergen"},
			Country: &domain.Country{Name: "Norway"},
			Address: &domain.Address{Line1: "Edvard Griegs plass 1"},
		},
		{ID: "v2", Name: "Somewhere", City: &domain.NamedPlace{Name: "Trondheim"}},
		{ID: "v3", Name: "Nowhere"},
	})

	assert.Equal(t, "Bergen, Norway", cards[0].Location)
	assert.Equal(t, "Edvard Griegs plass 1", cards[0].Address)
	assert.Equal(t, "Trondheim", cards[1].Location)
	assert.Equal(t, locationMissing, cards[2].Location)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "Thursday, July 10, 2025", formatDate("2025-07-10", detailDateLayout))
	assert.Equal(t, dateMissing, formatDate("10/07/2025", detailDateLayout))
	assert.Equal(t, "19:30", formatClock("19:30:00"))
	assert.Equal(t, "08:05", formatClock("08:05"))
	assert.Equal(t, timeMissing, formatClock(""))
	assert.Equal(t, timeMissing, formatClock("late"))
}
