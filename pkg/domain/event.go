package domain

import (
	"strconv"
	"strings"
)

// Event mirrors the Discovery API event resource. Only the fields the
// service reads are decoded; absent nested collections decode to nil.
type Event struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	URL             string           `json:"url,omitempty"`
	Images          []Image          `json:"images,omitempty"`
	Dates           *EventDates      `json:"dates,omitempty"`
	Classifications []Classification `json:"classifications,omitempty"`
	PriceRanges     []PriceRange     `json:"priceRanges,omitempty"`
	Promoter        *Promoter        `json:"promoter,omitempty"`
	Info            string           `json:"info,omitempty"`
	PleaseNote      string           `json:"pleaseNote,omitempty"`
	Sales           *Sales           `json:"sales,omitempty"`
	Embedded        EventEmbedded    `json:"_embedded"`
}

type EventEmbedded struct {
	Venues      []Venue      `json:"venues,omitempty"`
	Attractions []Attraction `json:"attractions,omitempty"`
}

type Image struct {
	Ratio  string `json:"ratio,omitempty"`
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type EventDates struct {
	Start    DateSpec    `json:"start"`
	End      *DateSpec   `json:"end,omitempty"`
	Timezone string      `json:"timezone,omitempty"`
	Status   *DateStatus `json:"status,omitempty"`
}

// DateSpec holds the local date (2006-01-02) and optional local time
// (15:04:05) of an event boundary.
type DateSpec struct {
	LocalDate string `json:"localDate,omitempty"`
	LocalTime string `json:"localTime,omitempty"`
	DateTime  string `json:"dateTime,omitempty"`
}

type DateStatus struct {
	Code string `json:"code"`
}

type Classification struct {
	Primary  bool                `json:"primary"`
	Segment  *ClassificationItem `json:"segment,omitempty"`
	Genre    *ClassificationItem `json:"genre,omitempty"`
	SubGenre *ClassificationItem `json:"subGenre,omitempty"`
	Type     *ClassificationItem `json:"type,omitempty"`
	SubType  *ClassificationItem `json:"subType,omitempty"`
}

type ClassificationItem struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type PriceRange struct {
	Type     string  `json:"type,omitempty"`
	Currency string  `json:"currency"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

type Promoter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Sales struct {
	Public SalesWindow `json:"public"`
}

type SalesWindow struct {
	StartDateTime string `json:"startDateTime,omitempty"`
	EndDateTime   string `json:"endDateTime,omitempty"`
}

// StartDate returns the local start date or "" when unknown.
func (e Event) StartDate() string {
	if e.Dates == nil {
		return ""
	}
	return e.Dates.Start.LocalDate
}

// EndDate returns the local end date or "" when the event has none.
func (e Event) EndDate() string {
	if e.Dates == nil || e.Dates.End == nil {
		return ""
	}
	return e.Dates.End.LocalDate
}

func (e Event) StartTime() string {
	if e.Dates == nil {
		return ""
	}
	return e.Dates.Start.LocalTime
}

// PrimaryVenue returns the first embedded venue, if any.
func (e Event) PrimaryVenue() (Venue, bool) {
	if len(e.Embedded.Venues) == 0 {
		return Venue{}, false
	}
	return e.Embedded.Venues[0], true
}

// FirstPriceRange returns the first listed price range, if any.
func (e Event) FirstPriceRange() (PriceRange, bool) {
	if len(e.PriceRanges) == 0 {
		return PriceRange{}, false
	}
	return e.PriceRanges[0], true
}

type Venue struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	URL      string       `json:"url,omitempty"`
	City     *NamedPlace  `json:"city,omitempty"`
	State    *NamedPlace  `json:"state,omitempty"`
	Country  *Country     `json:"country,omitempty"`
	Address  *Address     `json:"address,omitempty"`
	Location *GeoLocation `json:"location,omitempty"`
	Images   []Image      `json:"images,omitempty"`
}

type NamedPlace struct {
	Name string `json:"name"`
}

type Country struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode,omitempty"`
}

type Address struct {
	Line1 string `json:"line1"`
}

// GeoLocation keeps the API's string-encoded coordinates.
type GeoLocation struct {
	Longitude string `json:"longitude"`
	Latitude  string `json:"latitude"`
}

func (v Venue) CityName() string {
	if v.City == nil {
		return ""
	}
	return v.City.Name
}

func (v Venue) CountryName() string {
	if v.Country == nil {
		return ""
	}
	return v.Country.Name
}

func (v Venue) AddressLine() string {
	if v.Address == nil {
		return ""
	}
	return v.Address.Line1
}

// Coordinates parses the venue location. ok is false when either value is
// missing or malformed.
func (v Venue) Coordinates() (lat, lon float64, ok bool) {
	if v.Location == nil {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(v.Location.Latitude), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(v.Location.Longitude), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

type Attraction struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	URL             string           `json:"url,omitempty"`
	Images          []Image          `json:"images,omitempty"`
	Classifications []Classification `json:"classifications,omitempty"`
	UpcomingEvents  *UpcomingEvents  `json:"upcomingEvents,omitempty"`
}

type UpcomingEvents struct {
	Total int `json:"_total"`
}

// GenreName returns the genre of the first classification or "".
func (a Attraction) GenreName() string {
	if len(a.Classifications) == 0 || a.Classifications[0].Genre == nil {
		return ""
	}
	return a.Classifications[0].Genre.Name
}

// CategoryContent groups the three resource kinds returned by category and
// autosuggest queries.
type CategoryContent struct {
	Attractions []Attraction `json:"attractions"`
	Events      []Event      `json:"events"`
	Venues      []Venue      `json:"venues"`
}

// EmptyCategoryContent is the sentinel returned when a query fails.
func EmptyCategoryContent() CategoryContent {
	return CategoryContent{
		Attractions: []Attraction{},
		Events:      []Event{},
		Venues:      []Venue{},
	}
}

type CategoryFilters struct {
	Date    string `json:"date,omitempty"`
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
}
