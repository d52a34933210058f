package collectors

import (
	"context"
	"sync"

	"github.com/yair/billettlyst/pkg/domain"
)

// MemoryWishlist keeps saved events in insertion order.
type MemoryWishlist struct {
	mu     sync.RWMutex
	order  []string
	events map[string]domain.Event
}

func NewMemoryWishlist() *MemoryWishlist {
	return &MemoryWishlist{
		events: make(map[string]domain.Event),
	}
}

func (w *MemoryWishlist) Add(ctx context.Context, event domain.Event) error {
	if event.ID == "" {
		return domain.ErrInvalidRequest
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.events[event.ID]; exists {
		return nil
	}
	w.events[event.ID] = event
	w.order = append(w.order, event.ID)
	return nil
}

func (w *MemoryWishlist) Remove(ctx context.Context, eventID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.events[eventID]; !exists {
		return nil
	}
	delete(w.events, eventID)
	for i, id := range w.order {
		if id == eventID {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return nil
}

func (w *MemoryWishlist) Contains(ctx context.Context, eventID string) (bool, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, exists := w.events[eventID]
	return exists, nil
}

func (w *MemoryWishlist) List(ctx context.Context) ([]domain.Event, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	events := make([]domain.Event, 0, len(w.order))
	for _, id := range w.order {
		events = append(events, w.events[id])
	}
	return events, nil
}

func (w *MemoryWishlist) Len(ctx context.Context) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.order), nil
}

func (w *MemoryWishlist) Clear(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.order = nil
	w.events = make(map[string]domain.Event)
	return nil
}
