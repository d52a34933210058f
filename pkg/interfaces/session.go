package interfaces

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yair/billettlyst/pkg/domain"
)

// WishlistFactory builds the wishlist store of a new session.
type WishlistFactory func(sessionID string) domain.WishlistStore

// Session is the state of one visitor: the saved events and the city picked
// on the front page.
type Session struct {
	ID       string
	Wishlist domain.WishlistStore

	mu       sync.Mutex
	city     string
	lastSeen time.Time
	closed   bool
	store    domain.WishlistStore
}

func (s *Session) City() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city
}

func (s *Session) SetCity(city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.city = city
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// close clears the wishlist and refuses any later wishlist access. Requests
// still holding the session get ErrSessionNotFound.
func (s *Session) close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.store.Clear(ctx)
}

// sessionWishlist serializes wishlist access with close, so nothing is
// written after the session's wishlist has been cleared.
type sessionWishlist struct {
	session *Session
}

func (w *sessionWishlist) guard(fn func() error) error {
	w.session.mu.Lock()
	defer w.session.mu.Unlock()

	if w.session.closed {
		return domain.ErrSessionNotFound
	}
	return fn()
}

func (w *sessionWishlist) Add(ctx context.Context, event domain.Event) error {
	return w.guard(func() error { return w.session.store.Add(ctx, event) })
}

func (w *sessionWishlist) Remove(ctx context.Context, eventID string) error {
	return w.guard(func() error { return w.session.store.Remove(ctx, eventID) })
}

func (w *sessionWishlist) Contains(ctx context.Context, eventID string) (saved bool, err error) {
	err = w.guard(func() error {
		saved, err = w.session.store.Contains(ctx, eventID)
		return err
	})
	return saved, err
}

func (w *sessionWishlist) List(ctx context.Context) (events []domain.Event, err error) {
	err = w.guard(func() error {
		events, err = w.session.store.List(ctx)
		return err
	})
	return events, err
}

func (w *sessionWishlist) Len(ctx context.Context) (n int, err error) {
	err = w.guard(func() error {
		n, err = w.session.store.Len(ctx)
		return err
	})
	return n, err
}

func (w *sessionWishlist) Clear(ctx context.Context) error {
	return w.guard(func() error { return w.session.store.Clear(ctx) })
}

// Sessions tracks live sessions in memory. Sessions idle for longer than the
// idle timeout are dropped together with their wishlist.
type Sessions struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	newWishlist WishlistFactory
	defaultCity string
	idleTimeout time.Duration
	now         func() time.Time
}

func NewSessions(newWishlist WishlistFactory, defaultCity string, idleTimeout time.Duration) *Sessions {
	return &Sessions{
		sessions:    make(map[string]*Session),
		newWishlist: newWishlist,
		defaultCity: defaultCity,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Get returns a live session and marks it as seen.
func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	now := s.now()
	if s.idleTimeout > 0 && session.idleSince(now) > s.idleTimeout {
		s.drop(session)
		return nil, domain.ErrSessionNotFound
	}

	session.touch(now)
	return session, nil
}

// Create starts a new session and sweeps expired ones.
func (s *Sessions) Create() *Session {
	s.sweep()

	id := uuid.NewString()
	session := &Session{
		ID:       id,
		city:     s.defaultCity,
		lastSeen: s.now(),
		store:    s.newWishlist(id),
	}
	session.Wishlist = &sessionWishlist{session: session}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return session
}

// Resolve returns the session for id, creating one when id is unknown.
func (s *Sessions) Resolve(id string) (session *Session, created bool) {
	if id != "" {
		if existing, err := s.Get(id); err == nil {
			return existing, false
		}
	}
	return s.Create(), true
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Sessions) sweep() {
	if s.idleTimeout <= 0 {
		return
	}

	now := s.now()
	var expired []*Session

	s.mu.Lock()
	for _, session := range s.sessions {
		if session.idleSince(now) > s.idleTimeout {
			expired = append(expired, session)
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		s.drop(session)
	}
}

func (s *Sessions) drop(session *Session) {
	s.mu.Lock()
	delete(s.sessions, session.ID)
	s.mu.Unlock()

	if err := session.close(context.Background()); err != nil {
		log.Printf("sessions: clear wishlist of %s: %v", session.ID, err)
	}
}

type sessionKey struct{}

// Middleware attaches the visitor's session to the request context, issuing
// a new session cookie when the request carries none or an expired one.
func (s *Sessions) Middleware(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cookie, err := r.Cookie(cookieName); err == nil {
				id = cookie.Value
			}

			session, created := s.Resolve(id)
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    session.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session attached by Middleware.
func SessionFromContext(ctx context.Context) (*Session, error) {
	session, ok := ctx.Value(sessionKey{}).(*Session)
	if !ok || session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}
