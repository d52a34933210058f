package interfaces

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yair/billettlyst/pkg/domain"
	"github.com/yair/billettlyst/pkg/festival"
)

const cityPageSize = 10

type HomeView struct {
	City      string      `json:"city"`
	Cities    []string    `json:"cities"`
	Festivals []EventCard `json:"festivals"`
	Events    []EventCard `json:"events"`
}

type EventListView struct {
	City   string      `json:"city,omitempty"`
	Query  string      `json:"query,omitempty"`
	Events []EventCard `json:"events"`
}

type CategoryView struct {
	Slug    string                 `json:"slug"`
	Title   string                 `json:"title"`
	Query   string                 `json:"query,omitempty"`
	Filters domain.CategoryFilters `json:"filters"`
	Events  []EventCard            `json:"events"`
	Artists []ArtistCard           `json:"artists"`
	Venues  []VenueCard            `json:"venues"`
}

type PriceRangeView struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label"`
}

// PassView is a derived pass with its display labels.
type PassView struct {
	domain.FestivalPass
	DateLabel  string `json:"date_label"`
	PriceLabel string `json:"price_label,omitempty"`
}

type EventPageView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Image       string           `json:"image"`
	URL         string           `json:"url,omitempty"`
	Date        string           `json:"date"`
	Time        string           `json:"time"`
	Venue       string           `json:"venue"`
	Location    string           `json:"location"`
	Genre       string           `json:"genre"`
	Info        string           `json:"info,omitempty"`
	PleaseNote  string           `json:"please_note,omitempty"`
	PriceRanges []PriceRangeView `json:"price_ranges"`
	Artists     []ArtistCard     `json:"artists"`
	IsFestival  bool             `json:"is_festival"`
	Passes      []PassView       `json:"passes"`
	InWishlist  bool             `json:"in_wishlist"`
}

type PassesView struct {
	EventID    string     `json:"event_id"`
	IsFestival bool       `json:"is_festival"`
	Passes     []PassView `json:"passes"`
}

type DashboardView struct {
	Count  int         `json:"count"`
	Events []EventCard `json:"events"`
}

type WishlistStatus struct {
	EventID    string `json:"event_id"`
	InWishlist bool   `json:"in_wishlist"`
}

// DiscoveryService turns Discovery API results into the views served to the
// browser.
type DiscoveryService struct {
	client domain.DiscoveryClient
	cities []string
}

func NewDiscoveryService(client domain.DiscoveryClient, cities []string) *DiscoveryService {
	return &DiscoveryService{
		client: client,
		cities: cities,
	}
}

// Home loads the festival lineup and the events of the session's city in
// parallel.
func (s *DiscoveryService) Home(ctx context.Context, session *Session) (*HomeView, error) {
	city := session.City()

	var (
		wg        sync.WaitGroup
		festivals []domain.Event
		events    []domain.Event
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		festivals = s.client.Festivals(ctx)
	}()
	go func() {
		defer wg.Done()
		events = s.client.EventsByCity(ctx, city, cityPageSize)
	}()
	wg.Wait()

	cities := make([]string, len(s.cities))
	copy(cities, s.cities)

	return &HomeView{
		City:      city,
		Cities:    cities,
		Festivals: eventCards(ctx, festivals, session.Wishlist),
		Events:    eventCards(ctx, events, session.Wishlist),
	}, nil
}

func (s *DiscoveryService) CityEvents(ctx context.Context, session *Session, city string) (*EventListView, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, domain.ValidationError{Field: "city", Message: "must not be empty"}
	}

	session.SetCity(city)
	events := s.client.EventsByCity(ctx, city, cityPageSize)

	return &EventListView{
		City:   city,
		Events: eventCards(ctx, events, session.Wishlist),
	}, nil
}

func (s *DiscoveryService) SearchEvents(ctx context.Context, session *Session, query string) (*EventListView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	events := s.client.SearchEvents(ctx, query)

	return &EventListView{
		Query:  query,
		Events: eventCards(ctx, events, session.Wishlist),
	}, nil
}

func (s *DiscoveryService) Category(ctx context.Context, session *Session, slug string, filters domain.CategoryFilters) (*CategoryView, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrInvalidRequest
	}

	content := s.client.CategoryContent(ctx, slug, filters)
	view := categoryView(ctx, session, slug, content)
	view.Filters = filters
	return view, nil
}

func (s *DiscoveryService) CategorySuggest(ctx context.Context, session *Session, slug, query string) (*CategoryView, error) {
	slug = strings.TrimSpace(slug)
	query = strings.TrimSpace(query)
	if slug == "" || query == "" {
		return nil, domain.ErrInvalidRequest
	}

	content := s.client.Suggest(ctx, query)
	view := categoryView(ctx, session, slug, content)
	view.Query = query
	return view, nil
}

func categoryView(ctx context.Context, session *Session, slug string, content domain.CategoryContent) *CategoryView {
	return &CategoryView{
		Slug:    slug,
		Title:   categoryTitle(slug),
		Events:  eventCards(ctx, content.Events, session.Wishlist),
		Artists: artistCards(content.Attractions),
		Venues:  venueCards(content.Venues),
	}
}

func categoryTitle(slug string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(slug, "-", " "))
}

func (s *DiscoveryService) EventPage(ctx context.Context, session *Session, id string) (*EventPageView, error) {
	event, err := s.event(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &EventPageView{
		ID:          event.ID,
		Name:        event.Name,
		Image:       festival.BestImage(*event),
		URL:         event.URL,
		Date:        formatDate(event.StartDate(), detailDateLayout),
		Time:        formatClock(event.StartTime()),
		Location:    eventLocation(*event),
		Genre:       festival.GenreLabel(event.Classifications),
		Info:        event.Info,
		PleaseNote:  event.PleaseNote,
		PriceRanges: priceRanges(event.PriceRanges),
		Artists:     artistCards(event.Embedded.Attractions),
		IsFestival:  festival.IsFestival(*event),
		Passes:      []PassView{},
	}

	if venue, ok := event.PrimaryVenue(); ok {
		view.Venue = venue.Name
	} else {
		view.Venue = festival.UnknownVenue
	}

	if view.IsFestival {
		view.Passes = passViews(festival.DerivePasses(*event))
	}

	saved, err := session.Wishlist.Contains(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check wishlist: %w", err)
	}
	view.InWishlist = saved

	return view, nil
}

// Passes returns the derived passes of a festival event. Other events get an
// empty list.
func (s *DiscoveryService) Passes(ctx context.Context, id string) (*PassesView, error) {
	event, err := s.event(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &PassesView{
		EventID:    event.ID,
		IsFestival: festival.IsFestival(*event),
		Passes:     []PassView{},
	}
	if view.IsFestival {
		view.Passes = passViews(festival.DerivePasses(*event))
	}
	return view, nil
}

func (s *DiscoveryService) Dashboard(ctx context.Context, session *Session) (*DashboardView, error) {
	events, err := session.Wishlist.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}

	cards := make([]EventCard, 0, len(events))
	for _, event := range events {
		card := newEventCard(event)
		card.InWishlist = true
		cards = append(cards, card)
	}

	return &DashboardView{
		Count:  len(cards),
		Events: cards,
	}, nil
}

// AddToWishlist fetches the event so the wishlist can render it without
// further lookups.
func (s *DiscoveryService) AddToWishlist(ctx context.Context, session *Session, eventID string) (*WishlistStatus, error) {
	event, err := s.event(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := session.Wishlist.Add(ctx, *event); err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}

	return &WishlistStatus{EventID: event.ID, InWishlist: true}, nil
}

func (s *DiscoveryService) RemoveFromWishlist(ctx context.Context, session *Session, eventID string) (*WishlistStatus, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domain.ErrInvalidRequest
	}

	if err := session.Wishlist.Remove(ctx, eventID); err != nil {
		return nil, fmt.Errorf("failed to remove from wishlist: %w", err)
	}

	return &WishlistStatus{EventID: eventID, InWishlist: false}, nil
}

func (s *DiscoveryService) InWishlist(ctx context.Context, session *Session, eventID string) (*WishlistStatus, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domain.ErrInvalidRequest
	}

	saved, err := session.Wishlist.Contains(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check wishlist: %w", err)
	}

	return &WishlistStatus{EventID: eventID, InWishlist: saved}, nil
}

func (s *DiscoveryService) event(ctx context.Context, id string) (*domain.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	event := s.client.EventByID(ctx, id)
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func priceRanges(ranges []domain.PriceRange) []PriceRangeView {
	views := make([]PriceRangeView, 0, len(ranges))
	for _, r := range ranges {
		views = append(views, PriceRangeView{
			Type: r.Type,
			Label: festival.PriceLabel(domain.PriceBand{
				Min:      r.Min,
				Max:      r.Max,
				Currency: r.Currency,
			}),
		})
	}
	return views
}

func passViews(passes []domain.FestivalPass) []PassView {
	views := make([]PassView, 0, len(passes))
	for _, p := range passes {
		view := PassView{
			FestivalPass: p,
			DateLabel:    formatDate(p.Date, cardDateLayout),
		}
		if p.Price != nil {
			view.PriceLabel = festival.PriceLabel(*p.Price)
		}
		views = append(views, view)
	}
	return views
}
