package interfaces

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yair/billettlyst/pkg/domain"
	"github.com/yair/billettlyst/pkg/festival"
)

const (
	dateMissing     = "Date not available"
	timeMissing     = "Time not available"
	locationMissing = "Location not available"
	genreUnknown    = "Unknown Genre"

	cardDateLayout   = "Jan 2, 2006"
	detailDateLayout = "Monday, January 2, 2006"
	clockLayout      = "15:04"
)

type EventCard struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	Date       string `json:"date"`
	Location   string `json:"location"`
	URL        string `json:"url,omitempty"`
	InWishlist bool   `json:"in_wishlist"`
}

type ArtistCard struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Image          string `json:"image"`
	Genre          string `json:"genre"`
	UpcomingEvents int    `json:"upcoming_events"`
	URL            string `json:"url,omitempty"`
}

type VenueCard struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Address  string `json:"address"`
	Location string `json:"location"`
	URL      string `json:"url,omitempty"`
}

// eventCards builds cards and marks the events already in the wishlist. A
// failing wishlist lookup leaves the flag unset.
func eventCards(ctx context.Context, events []domain.Event, wishlist domain.WishlistStore) []EventCard {
	cards := make([]EventCard, 0, len(events))
	for _, event := range events {
		card := newEventCard(event)
		if wishlist != nil {
			saved, err := wishlist.Contains(ctx, event.ID)
			if err != nil {
				log.Printf("wishlist lookup for %s failed: %v", event.ID, err)
			}
			card.InWishlist = saved
		}
		cards = append(cards, card)
	}
	return cards
}

func newEventCard(event domain.Event) EventCard {
	return EventCard{
		ID:       event.ID,
		Name:     event.Name,
		Image:    festival.BestImage(event),
		Date:     formatDate(event.StartDate(), cardDateLayout),
		Location: eventLocation(event),
		URL:      event.URL,
	}
}

func artistCards(attractions []domain.Attraction) []ArtistCard {
	cards := make([]ArtistCard, 0, len(attractions))
	for _, a := range attractions {
		card := ArtistCard{
			ID:    a.ID,
			Name:  a.Name,
			Image: squareImage(a.Images),
			Genre: a.GenreName(),
			URL:   a.URL,
		}
		if card.Genre == "" {
			card.Genre = genreUnknown
		}
		if a.UpcomingEvents != nil {
			card.UpcomingEvents = a.UpcomingEvents.Total
		}
		cards = append(cards, card)
	}
	return cards
}

func venueCards(venues []domain.Venue) []VenueCard {
	cards := make([]VenueCard, 0, len(venues))
	for _, v := range venues {
		card := VenueCard{
			ID:       v.ID,
			Name:     v.Name,
			Image:    squareImage(v.Images),
			Address:  v.AddressLine(),
			Location: placeLabel(v.CityName(), v.CountryName()),
			URL:      v.URL,
		}
		cards = append(cards, card)
	}
	return cards
}

func squareImage(images []domain.Image) string {
	for _, img := range images {
		if img.Ratio == "1_1" && img.URL != "" {
			return img.URL
		}
	}
	if len(images) > 0 && images[0].URL != "" {
		return images[0].URL
	}
	return festival.PlaceholderImage
}

func eventLocation(event domain.Event) string {
	venue, ok := event.PrimaryVenue()
	if !ok {
		return locationMissing
	}
	return placeLabel(venue.CityName(), venue.CountryName())
}

func placeLabel(city, country string) string {
	switch {
	case city != "" && country != "":
		return fmt.Sprintf("%s, %s", city, country)
	case city != "":
		return city
	case country != "":
		return country
	default:
		return locationMissing
	}
}

func formatDate(localDate, layout string) string {
	if localDate == "" {
		return dateMissing
	}
	t, err := time.Parse("2006-01-02", localDate)
	if err != nil {
		return dateMissing
	}
	return t.Format(layout)
}

func formatClock(localTime string) string {
	if localTime == "" {
		return timeMissing
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, localTime); err == nil {
			return t.Format(clockLayout)
		}
	}
	return timeMissing
}
