package database

import (
	"context"
	"database/sql"
)

// schema contains every table the platform persists locally. All
// statements are idempotent so Bootstrap can run on every startup.
// Timestamps are stored as RFC 3339 strings; JSON array columns
// (depts, tags, certs, specialties) hold marshalled arrays and are
// treated as empty when unreadable.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		avatar        TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (lower(email))`,

	// Single-row table: the device holds at most one live session.
	`CREATE TABLE IF NOT EXISTS session (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		user_id    TEXT NOT NULL,
		token_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS clinic_profiles (
		id            TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		short         TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		lat           REAL NOT NULL DEFAULT 0,
		lng           REAL NOT NULL DEFAULT 0,
		tel           TEXT NOT NULL DEFAULT '',
		hours         TEXT NOT NULL DEFAULT '',
		access        TEXT NOT NULL DEFAULT '',
		description   TEXT NOT NULL DEFAULT '',
		depts         TEXT NOT NULL DEFAULT '[]',
		beds          INTEGER NOT NULL DEFAULT 0,
		founded       INTEGER NOT NULL DEFAULT 0,
		parking       INTEGER NOT NULL DEFAULT 0,
		night_service INTEGER NOT NULL DEFAULT 0,
		female_doctor INTEGER NOT NULL DEFAULT 0,
		online        INTEGER NOT NULL DEFAULT 0,
		logo_url      TEXT NOT NULL DEFAULT '',
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS clinic_doctors (
		id          TEXT PRIMARY KEY,
		clinic_id   TEXT NOT NULL,
		name        TEXT NOT NULL,
		title       TEXT NOT NULL DEFAULT '',
		dept        TEXT NOT NULL DEFAULT '',
		exp         INTEGER NOT NULL DEFAULT 0,
		edu         TEXT NOT NULL DEFAULT '',
		certs       TEXT NOT NULL DEFAULT '[]',
		specialties TEXT NOT NULL DEFAULT '[]',
		bio         TEXT NOT NULL DEFAULT '',
		photo       TEXT NOT NULL DEFAULT '',
		female      INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS clinic_doctors_clinic_idx ON clinic_doctors (clinic_id)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id          TEXT PRIMARY KEY,
		clinic_id   TEXT NOT NULL,
		user_id     TEXT NOT NULL DEFAULT '',
		author      TEXT NOT NULL,
		avatar      TEXT NOT NULL DEFAULT '',
		age         TEXT NOT NULL DEFAULT '',
		date        TEXT NOT NULL DEFAULT '',
		rating      INTEGER NOT NULL,
		dept        TEXT NOT NULL DEFAULT '',
		doctor_id   TEXT NOT NULL DEFAULT '',
		title       TEXT NOT NULL DEFAULT '',
		body        TEXT NOT NULL DEFAULT '',
		tags        TEXT NOT NULL DEFAULT '[]',
		helpful     INTEGER NOT NULL DEFAULT 0,
		dr_rating   INTEGER NOT NULL DEFAULT 0,
		fac_rating  INTEGER NOT NULL DEFAULT 0,
		wait_rating INTEGER NOT NULL DEFAULT 0,
		reply       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS reviews_clinic_idx ON reviews (clinic_id)`,

	// One helpful vote per user per review.
	`CREATE TABLE IF NOT EXISTS review_votes (
		review_id     TEXT NOT NULL,
		voter_user_id TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		PRIMARY KEY (review_id, voter_user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS review_reports (
		id               TEXT PRIMARY KEY,
		review_id        TEXT NOT NULL,
		clinic_id        TEXT NOT NULL,
		reporter_user_id TEXT NOT NULL,
		reason           TEXT NOT NULL,
		created_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS review_reports_clinic_idx ON review_reports (clinic_id)`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		clinic_id    TEXT NOT NULL,
		clinic_name  TEXT NOT NULL DEFAULT '',
		booking_type TEXT NOT NULL,
		date         TEXT NOT NULL,
		time         TEXT NOT NULL,
		dept         TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL,
		concern      TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_user_idx ON bookings (user_id)`,
	`CREATE INDEX IF NOT EXISTS bookings_clinic_idx ON bookings (clinic_id)`,

	`CREATE TABLE IF NOT EXISTS favorites (
		user_id    TEXT NOT NULL,
		clinic_id  TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (user_id, clinic_id)
	)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id            TEXT PRIMARY KEY,
		actor_user_id TEXT NOT NULL DEFAULT '',
		action        TEXT NOT NULL,
		metadata      TEXT NOT NULL DEFAULT '{}',
		created_at    TEXT NOT NULL
	)`,
}

// Bootstrap creates any missing tables and indexes.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
