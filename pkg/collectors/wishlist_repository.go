package collectors

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yair/billettlyst/pkg/domain"
)

// WishlistRepository stores the wishlists of all sessions in one table.
// Use ForSession to get the store of a single session.
type WishlistRepository struct {
	db *sql.DB
}

func NewWishlistRepository(db *sql.DB) (*WishlistRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	repo := &WishlistRepository{db: db}
	if err := repo.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return repo, nil
}

func (r *WishlistRepository) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS wishlist_items (
		position INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		event_id TEXT NOT NULL,
		event_name TEXT NOT NULL,
		start_date TEXT,
		payload TEXT NOT NULL,
		added_at TIMESTAMP NOT NULL,
		UNIQUE (session_id, event_id)
	);

	CREATE INDEX IF NOT EXISTS idx_wishlist_items_session ON wishlist_items(session_id);
	`

	_, err := r.db.Exec(query)
	return err
}

// ForSession returns the wishlist of one session.
func (r *WishlistRepository) ForSession(sessionID string) *SQLiteWishlist {
	return &SQLiteWishlist{db: r.db, sessionID: sessionID}
}

// SQLiteWishlist is a session-scoped view over wishlist_items.
type SQLiteWishlist struct {
	db        *sql.DB
	sessionID string
}

func (w *SQLiteWishlist) Add(ctx context.Context, event domain.Event) error {
	if event.ID == "" {
		return domain.ErrInvalidRequest
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	query := `
	INSERT OR IGNORE INTO wishlist_items (session_id, event_id, event_name, start_date, payload, added_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = w.db.ExecContext(ctx, query,
		w.sessionID,
		event.ID,
		event.Name,
		event.StartDate(),
		string(payload),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

func (w *SQLiteWishlist) Remove(ctx context.Context, eventID string) error {
	query := `DELETE FROM wishlist_items WHERE session_id = ? AND event_id = ?`

	if _, err := w.db.ExecContext(ctx, query, w.sessionID, eventID); err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}

func (w *SQLiteWishlist) Contains(ctx context.Context, eventID string) (bool, error) {
	query := `SELECT 1 FROM wishlist_items WHERE session_id = ? AND event_id = ?`

	var found int
	err := w.db.QueryRowContext(ctx, query, w.sessionID, eventID).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up wishlist item: %w", err)
	}
	return true, nil
}

func (w *SQLiteWishlist) List(ctx context.Context) ([]domain.Event, error) {
	query := `
	SELECT payload
	FROM wishlist_items
	WHERE session_id = ?
	ORDER BY position ASC
	`

	rows, err := w.db.QueryContext(ctx, query, w.sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}

		var event domain.Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			return nil, fmt.Errorf("failed to decode wishlist item: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishlist: %w", err)
	}

	return events, nil
}

func (w *SQLiteWishlist) Len(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM wishlist_items WHERE session_id = ?`

	var count int
	if err := w.db.QueryRowContext(ctx, query, w.sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count wishlist: %w", err)
	}
	return count, nil
}

func (w *SQLiteWishlist) Clear(ctx context.Context) error {
	query := `DELETE FROM wishlist_items WHERE session_id = ?`

	if _, err := w.db.ExecContext(ctx, query, w.sessionID); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	return nil
}
