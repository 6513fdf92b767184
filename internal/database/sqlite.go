package database

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite" // pure Go sqlite driver
)

// Open opens (creating if necessary) the SQLite database at path and
// verifies the connection. Pass ":memory:" for an ephemeral database.
// SQLite serializes writers, so the pool is kept at a single
// connection; that also makes ":memory:" safe to share.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
