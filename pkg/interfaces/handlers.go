package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/yair/billettlyst/pkg/domain"
)

const requestTimeout = 30 * time.Second

// EventService is the view layer behind the HTTP handlers.
type EventService interface {
	Home(ctx context.Context, session *Session) (*HomeView, error)
	CityEvents(ctx context.Context, session *Session, city string) (*EventListView, error)
	SearchEvents(ctx context.Context, session *Session, query string) (*EventListView, error)
	Category(ctx context.Context, session *Session, slug string, filters domain.CategoryFilters) (*CategoryView, error)
	CategorySuggest(ctx context.Context, session *Session, slug, query string) (*CategoryView, error)
	EventPage(ctx context.Context, session *Session, id string) (*EventPageView, error)
	Passes(ctx context.Context, id string) (*PassesView, error)
	Dashboard(ctx context.Context, session *Session) (*DashboardView, error)
	AddToWishlist(ctx context.Context, session *Session, eventID string) (*WishlistStatus, error)
	RemoveFromWishlist(ctx context.Context, session *Session, eventID string) (*WishlistStatus, error)
	InWishlist(ctx context.Context, session *Session, eventID string) (*WishlistStatus, error)
}

type EventHandler struct {
	service    EventService
	sessions   *Sessions
	cookieName string
}

func NewEventHandler(service EventService, sessions *Sessions, cookieName string) *EventHandler {
	return &EventHandler{
		service:    service,
		sessions:   sessions,
		cookieName: cookieName,
	}
}

func (h *EventHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()
	api.Use(h.sessions.Middleware(h.cookieName))

	api.HandleFunc("/home", h.Home).Methods("GET")
	api.HandleFunc("/events/search", h.SearchEvents).Methods("GET")
	api.HandleFunc("/events", h.CityEvents).Methods("GET")
	api.HandleFunc("/events/{id}/passes", h.Passes).Methods("GET")
	api.HandleFunc("/events/{id}", h.EventPage).Methods("GET")
	api.HandleFunc("/categories/{slug}/suggest", h.CategorySuggest).Methods("GET")
	api.HandleFunc("/categories/{slug}", h.Category).Methods("GET")
	api.HandleFunc("/wishlist", h.Dashboard).Methods("GET")
	api.HandleFunc("/wishlist", h.AddToWishlist).Methods("POST")
	api.HandleFunc("/wishlist/{id}", h.InWishlist).Methods("GET")
	api.HandleFunc("/wishlist/{id}", h.RemoveFromWishlist).Methods("DELETE")
}

func (h *EventHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, session *Session) (any, error) {
		return h.service.Home(ctx, session)
	})
}

func (h *EventHandler) CityEvents(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		h.respondWithError(w, http.StatusBadRequest, "query parameter 'city' is required")
		return
	}

	h.withSession(w, r, func(ctx context.Context, session *Session) (any, error) {
		return h.service.CityEvents(ctx, session, city)
	})
}

func (h *EventHandler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.respondWithError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	h.withSession(w, r, func(ctx context.Context, session *Session) (any, error) {
		return h.service.SearchEvents(ctx, session, query)
	})
}

func (h *EventHandler) EventPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.withSession(w, r, func(ctx context.Context, session *Session) (any, error) {
		return h.service.EventPage(ctx, session, id)
	})
}

func (h *EventHandler) Passes(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.withSession(w, r, func(ctx context.Context, _ *Session) (any, error) {
		return h.service.Passes(ctx, id)
	})
}

func (h *EventHandler) Category(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	q := r.URL.Query()
	filters := domain.CategoryFilters{
		Date:    q.Get("date"),
		Country: q.Get("country"),
		City:    q.Get("city"),
	}

	h.withSession(w, r, func(ctx context.Context, session *Session) (any, error) {
		return h.service.Category(ctx, session, slug, filters)
	})
}

func (h *EventHandler) CategorySuggest(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	query := r.URL.Query().Get("q")
	if query == "" {
		h.respondWithError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	h.withSession(w, r, func(ctx context.Context, session *Session) (any, error) {
		return h.service.CategorySuggest(ctx, session, slug, query)
	})
}

func (h *EventHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, session *Session) (any, error) {
		return h.service.Dashboard(ctx, session)
	})
}

type wishlistRequest struct {
	EventID string `json:"event_id"`
}

func (h *EventHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req wishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EventID == "" {
		h.respondWithError(w, http.StatusBadRequest, "event_id is required")
		return
	}

	session, err := SessionFromContext(r.Context())
	if err != nil {
		h.respondWithError(w, http.StatusUnauthorized, "session required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	status, err := h.service.AddToWishlist(ctx, session, req.EventID)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, status)
}

func (h *EventHandler) InWishlist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.withSession(w, r, func(ctx context.Context, session *Session) (any, error) {
		return h.service.InWishlist(ctx, session, id)
	})
}

func (h *EventHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.withSession(w, r, func(ctx context.Context, session *Session) (any, error) {
		return h.service.RemoveFromWishlist(ctx, session, id)
	})
}

func (h *EventHandler) withSession(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, session *Session) (any, error)) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		h.respondWithError(w, http.StatusUnauthorized, "session required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := fn(ctx, session)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, response)
}

func (h *EventHandler) respondWithServiceError(w http.ResponseWriter, err error) {
	var validation domain.ValidationError
	switch {
	case errors.As(err, &validation):
		h.respondWithError(w, http.StatusBadRequest, validation.Error())
	case errors.Is(err, domain.ErrInvalidRequest):
		h.respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		h.respondWithError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, domain.ErrSessionNotFound):
		h.respondWithError(w, http.StatusUnauthorized, "session required")
	case errors.Is(err, domain.ErrExternalAPIFailure), errors.Is(err, domain.ErrRateLimitExceeded):
		h.respondWithError(w, http.StatusServiceUnavailable, "external service unavailable")
	default:
		log.Printf("request failed: %v", err)
		h.respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *EventHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]string{"error": message})
}

func (h *EventHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
