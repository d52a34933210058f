// Package festival derives the synthetic pass offerings shown on a festival's
// event page, along with the labels shared by those passes.
package festival

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yair/billettlyst/pkg/domain"
)

const (
	PlaceholderImage = "https://via.placeholder.com/400x225?text=No+Image"
	UnknownVenue     = "Venue unknown"

	premiumThreshold = 1.5
	premiumFloor     = 0.8
	dayPassFloor     = 0.6
	dayPassCeiling   = 0.7

	// Events ending more than this many days after they start get no day passes.
	maxSpanDays = 31

	dateLayout = "2006-01-02"
)

// Day labels follow the pass index, not the weekday of the computed date.
var dayNames = []string{"Friday", "Saturday", "Sunday"}

// IsFestival reports whether an event should be offered as festival passes.
// Events without classifications never are, whatever their name.
func IsFestival(event domain.Event) bool {
	namedFestival := strings.Contains(strings.ToLower(event.Name), "festival")
	for _, c := range event.Classifications {
		if namedFestival {
			return true
		}
		if c.SubType != nil && strings.EqualFold(c.SubType.Name, "festival") {
			return true
		}
		if c.Segment != nil && strings.Contains(strings.ToLower(c.Segment.Name), "festival") {
			return true
		}
		if c.Genre != nil && strings.Contains(strings.ToLower(c.Genre.Name), "festival") {
			return true
		}
	}
	return false
}

// DerivePasses returns the full pass, the premium pass when the price spread
// allows one, and one day pass per calendar day of a multi-day event.
func DerivePasses(event domain.Event) []domain.FestivalPass {
	venue := VenueLabel(event)
	image := BestImage(event)
	start := event.StartDate()

	base := domain.FestivalPass{
		EventID: event.ID,
		Venue:   venue,
		Image:   image,
		URL:     event.URL,
		Date:    start,
	}

	priceRange, hasPrice := event.FirstPriceRange()

	full := base
	full.ID = event.ID + "-full"
	full.Name = event.Name + " - Festival Pass"
	full.Type = domain.PassStandard
	if hasPrice {
		full.Price = &domain.PriceBand{
			Min:      priceRange.Min,
			Max:      priceRange.Max,
			Currency: priceRange.Currency,
		}
	}
	passes := []domain.FestivalPass{full}

	if hasPrice && priceRange.Max > priceRange.Min*premiumThreshold {
		premium := base
		premium.ID = event.ID + "-premium"
		premium.Name = event.Name + " - Premium Festival Pass"
		premium.Type = domain.PassPremium
		premium.Price = &domain.PriceBand{
			Min:      math.Min(roundCents(priceRange.Max*premiumFloor), priceRange.Max),
			Max:      priceRange.Max,
			Currency: priceRange.Currency,
		}
		passes = append(passes, premium)
	}

	days := spanDays(start, event.EndDate())
	for i, day := range days {
		pass := base
		pass.ID = fmt.Sprintf("%s-day-%d", event.ID, i+1)
		pass.Name = fmt.Sprintf("%s - Day Pass %s", event.Name, dayLabel(i))
		pass.Type = domain.PassDay
		pass.Day = i + 1
		pass.Date = day.Format(dateLayout)
		if hasPrice {
			pass.Price = band(priceRange.Min*dayPassFloor, priceRange.Min*dayPassCeiling, priceRange.Currency)
		}
		passes = append(passes, pass)
	}

	return passes
}

// spanDays lists every calendar day in [start, end]. It returns nil unless
// both dates parse, differ and lie at most maxSpanDays apart.
func spanDays(start, end string) []time.Time {
	if start == "" || end == "" || start == end {
		return nil
	}
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil || to.Before(from) || to.Sub(from) > maxSpanDays*24*time.Hour {
		return nil
	}

	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func dayLabel(i int) string {
	if i < len(dayNames) {
		return dayNames[i]
	}
	return fmt.Sprintf("Day %d", i+1)
}

func band(lo, hi float64, currency string) *domain.PriceBand {
	return &domain.PriceBand{
		Min:      roundCents(lo),
		Max:      roundCents(hi),
		Currency: currency,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
