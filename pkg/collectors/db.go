package collectors

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB opens a named in-memory database shared by every connection in
// the pool. Nothing is written to disk; the data lives as long as one
// connection stays open.
func NewSQLiteDB(name string) (*sql.DB, error) {
	if name == "" {
		return nil, fmt.Errorf("database name is required")
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(name))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// one connection keeps the database alive and avoids shared-cache
	// table locks between writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
