package domain

type PassType string

const (
	PassStandard PassType = "standard"
	PassPremium  PassType = "premium"
	PassDay      PassType = "day"
)

// FestivalPass is a purchasable offering derived locally from a single
// event. It is never returned by the Discovery API.
type FestivalPass struct {
	ID      string     `json:"id"`
	EventID string     `json:"event_id"`
	Name    string     `json:"name"`
	Type    PassType   `json:"type"`
	Day     int        `json:"day,omitempty"`
	Date    string     `json:"date"`
	Venue   string     `json:"venue"`
	Image   string     `json:"image"`
	URL     string     `json:"url,omitempty"`
	Price   *PriceBand `json:"price,omitempty"`
}

type PriceBand struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}
