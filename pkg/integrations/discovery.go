package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yair/billettlyst/pkg/domain"
)

const (
	DefaultBaseURL    = "https://app.ticketmaster.com/discovery/v2"
	DefaultLocale     = "no"
	defaultPageSize   = 10
	maxPageSize       = 200
	defaultDailyLimit = 5000
	defaultConcurrent = 8
)

// DefaultFestivalNames is the fixed set of Norwegian festivals on the front page.
var DefaultFestivalNames = []string{
	"Øyafestivalen",
	"Tons of Rock",
	"Findings Festival",
	"Palmesus",
	"Norwegian Wood",
	"Over Oslo",
	"Piknik i Parken",
	"Stavernfestivalen",
}

var tracer = otel.Tracer("github.com/yair/billettlyst/pkg/integrations")

type DiscoveryConfig struct {
	APIKey                string
	BaseURL               string
	Locale                string
	Timeout               time.Duration
	DailyLimit            int
	MaxConcurrentRequests int
	FestivalNames         []string
	HTTPClient            *http.Client
}

// DiscoveryClient talks to the Ticketmaster Discovery v2 API. Every public
// method swallows failures and returns an empty result instead.
type DiscoveryClient struct {
	baseURL       string
	apiKey        string
	locale        string
	httpClient    *http.Client
	rateLimiter   *quotaLimiter
	concurrency   int
	festivalNames []string
}

func NewDiscoveryClient(config DiscoveryConfig) (*DiscoveryClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("discovery API key is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Locale == "" {
		config.Locale = DefaultLocale
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.DailyLimit <= 0 {
		config.DailyLimit = defaultDailyLimit
	}
	if config.MaxConcurrentRequests <= 0 {
		config.MaxConcurrentRequests = defaultConcurrent
	}
	if len(config.FestivalNames) == 0 {
		config.FestivalNames = DefaultFestivalNames
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &DiscoveryClient{
		baseURL:       strings.TrimRight(config.BaseURL, "/"),
		apiKey:        config.APIKey,
		locale:        config.Locale,
		httpClient:    httpClient,
		rateLimiter:   newQuotaLimiter(config.DailyLimit),
		concurrency:   config.MaxConcurrentRequests,
		festivalNames: config.FestivalNames,
	}, nil
}

// discoveryPage covers the HAL envelope of every list endpoint, including
// suggest.json which fills all three collections.
type discoveryPage struct {
	Embedded struct {
		Events      []domain.Event      `json:"events"`
		Attractions []domain.Attraction `json:"attractions"`
		Venues      []domain.Venue      `json:"venues"`
	} `json:"_embedded"`
	Page struct {
		Size          int `json:"size"`
		TotalElements int `json:"totalElements"`
		TotalPages    int `json:"totalPages"`
		Number        int `json:"number"`
	} `json:"page"`
}

func (c *DiscoveryClient) EventsByCity(ctx context.Context, city string, size int) []domain.Event {
	city = strings.TrimSpace(city)
	if city == "" {
		return []domain.Event{}
	}

	params := url.Values{}
	params.Set("city", city)
	params.Set("size", strconv.Itoa(clampSize(size)))

	var page discoveryPage
	if err := c.getJSON(ctx, "events_by_city", "/events.json", params, &page); err != nil {
		log.Printf("discovery: events by city %q: %v", city, err)
		return []domain.Event{}
	}
	return normalizeEvents(page.Embedded.Events)
}

func (c *DiscoveryClient) EventByID(ctx context.Context, id string) *domain.Event {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	var event domain.Event
	path := "/events/" + url.PathEscape(id) + ".json"
	if err := c.getJSON(ctx, "event_by_id", path, url.Values{}, &event); err != nil {
		log.Printf("discovery: event %q: %v", id, err)
		return nil
	}
	if event.ID == "" {
		log.Printf("discovery: event %q: response carried no event", id)
		return nil
	}

	normalized := normalizeEvents([]domain.Event{event})
	return &normalized[0]
}

func (c *DiscoveryClient) SearchEvents(ctx context.Context, keyword string) []domain.Event {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []domain.Event{}
	}

	params := url.Values{}
	params.Set("keyword", keyword)

	var page discoveryPage
	if err := c.getJSON(ctx, "search_events", "/events.json", params, &page); err != nil {
		log.Printf("discovery: search %q: %v", keyword, err)
		return []domain.Event{}
	}
	return normalizeEvents(page.Embedded.Events)
}

// CategoryContent queries attractions, events and venues for one category
// concurrently. Each collection settles on its own: a failed venue lookup
// still returns the attractions and events that did load.
func (c *DiscoveryClient) CategoryContent(ctx context.Context, category string, filters domain.CategoryFilters) domain.CategoryContent {
	content := domain.EmptyCategoryContent()

	category = strings.TrimSpace(category)
	if category == "" {
		return content
	}

	params := url.Values{}
	params.Set("keyword", category)
	if filters.Date != "" {
		params.Set("startDateTime", filters.Date)
	}
	if filters.Country != "" {
		params.Set("countryCode", strings.ToUpper(filters.Country))
	}
	if filters.City != "" {
		params.Set("city", filters.City)
	}

	var attractions, events, venues discoveryPage
	errs := settle(ctx, c.concurrency,
		func(ctx context.Context) error {
			return c.getJSON(ctx, "category_attractions", "/attractions.json", params, &attractions)
		},
		func(ctx context.Context) error {
			return c.getJSON(ctx, "category_events", "/events.json", params, &events)
		},
		func(ctx context.Context) error {
			return c.getJSON(ctx, "category_venues", "/venues.json", params, &venues)
		},
	)

	kinds := []string{"attractions", "events", "venues"}
	for i, err := range errs {
		if err != nil {
			log.Printf("discovery: category %q %s: %v", category, kinds[i], err)
		}
	}

	if errs[0] == nil && attractions.Embedded.Attractions != nil {
		content.Attractions = attractions.Embedded.Attractions
	}
	if errs[1] == nil && events.Embedded.Events != nil {
		content.Events = normalizeEvents(events.Embedded.Events)
	}
	if errs[2] == nil && venues.Embedded.Venues != nil {
		content.Venues = venues.Embedded.Venues
	}
	return content
}

func (c *DiscoveryClient) Suggest(ctx context.Context, keyword string) domain.CategoryContent {
	content := domain.EmptyCategoryContent()

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return content
	}

	params := url.Values{}
	params.Set("keyword", keyword)

	var page discoveryPage
	if err := c.getJSON(ctx, "suggest", "/suggest.json", params, &page); err != nil {
		log.Printf("discovery: suggest %q: %v", keyword, err)
		return content
	}

	if page.Embedded.Attractions != nil {
		content.Attractions = page.Embedded.Attractions
	}
	if page.Embedded.Events != nil {
		content.Events = normalizeEvents(page.Embedded.Events)
	}
	if page.Embedded.Venues != nil {
		content.Venues = page.Embedded.Venues
	}
	return content
}

// Festivals looks up the earliest upcoming event for each configured festival
// name. Lookups run concurrently; names that fail or match nothing are left
// out and the rest keep their configured order.
func (c *DiscoveryClient) Festivals(ctx context.Context) []domain.Event {
	found := make([]*domain.Event, len(c.festivalNames))
	tasks := make([]task, len(c.festivalNames))

	for i, name := range c.festivalNames {
		tasks[i] = func(ctx context.Context) error {
			params := url.Values{}
			params.Set("keyword", name)
			params.Set("classificationName", "festival")
			params.Set("size", "1")
			params.Set("sort", "date,asc")

			var page discoveryPage
			if err := c.getJSON(ctx, "festival", "/events.json", params, &page); err != nil {
				return err
			}
			if len(page.Embedded.Events) > 0 {
				event := page.Embedded.Events[0]
				found[i] = &event
			}
			return nil
		}
	}

	errs := settle(ctx, c.concurrency, tasks...)

	festivals := make([]domain.Event, 0, len(found))
	for i, event := range found {
		if errs[i] != nil {
			log.Printf("discovery: festival %q: %v", c.festivalNames[i], errs[i])
			continue
		}
		if event != nil {
			festivals = append(festivals, *event)
		}
	}
	return normalizeEvents(festivals)
}

func (c *DiscoveryClient) getJSON(ctx context.Context, intent, path string, params url.Values, out any) error {
	ctx, span := tracer.Start(ctx, "discovery."+intent,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("discovery.path", path)),
	)
	defer span.End()

	err := c.do(ctx, span, path, params, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *DiscoveryClient) do(ctx context.Context, span trace.Span, path string, params url.Values, out any) error {
	if err := c.rateLimiter.Allow(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("apikey", c.apiKey)
	q.Set("locale", c.locale)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusTooManyRequests {
		return domain.ErrRateLimitExceeded
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrExternalAPIFailure, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func normalizeEvents(events []domain.Event) []domain.Event {
	if events == nil {
		return []domain.Event{}
	}
	for i := range events {
		events[i].Info = PlainText(events[i].Info)
		events[i].PleaseNote = PlainText(events[i].PleaseNote)
	}
	return events
}

func clampSize(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}
