package festival

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yair/billettlyst/pkg/domain"
)

const undefinedClassification = "Undefined"

// BestImage prefers a wide 16:9 image, then any image, then the placeholder.
func BestImage(event domain.Event) string {
	for _, img := range event.Images {
		if img.Ratio == "16_9" && img.Width > 800 {
			return img.URL
		}
	}
	if len(event.Images) > 0 && event.Images[0].URL != "" {
		return event.Images[0].URL
	}
	return PlaceholderImage
}

// VenueLabel renders "Name, City" for the event's first venue.
func VenueLabel(event domain.Event) string {
	venue, ok := event.PrimaryVenue()
	if !ok {
		return UnknownVenue
	}
	return fmt.Sprintf("%s, %s", venue.Name, venue.CityName())
}

// GenreLabel joins the segment, genre and sub-genre of each classification,
// skipping the API's "Undefined" placeholders.
func GenreLabel(classifications []domain.Classification) string {
	if len(classifications) == 0 {
		return "Genre not available"
	}

	labels := make([]string, 0, len(classifications))
	for _, c := range classifications {
		var parts []string
		for _, item := range []*domain.ClassificationItem{c.Segment, c.Genre, c.SubGenre} {
			if item != nil && item.Name != "" && item.Name != undefinedClassification {
				parts = append(parts, item.Name)
			}
		}
		labels = append(labels, strings.Join(parts, " - "))
	}
	return strings.Join(labels, ", ")
}

// PriceLabel renders a band as "min currency" or "min - max currency".
func PriceLabel(price domain.PriceBand) string {
	if price.Min == price.Max {
		return fmt.Sprintf("%s %s", formatAmount(price.Min), price.Currency)
	}
	return fmt.Sprintf("%s - %s %s", formatAmount(price.Min), formatAmount(price.Max), price.Currency)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
