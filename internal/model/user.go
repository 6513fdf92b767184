package model

import "time"

// Role values stored in users.role and carried in the JWT "role"
// claim. Patients book visits and write reviews; clinic accounts
// manage a facility profile and answer reviews.
const (
	RolePatient = "patient"
	RoleClinic  = "clinic"
)

// User represents an application account as stored in the `users`
// table. Each field corresponds to a column in the database. JSON
// tags are omitted because handlers define their own sanitized
// response types and never expose the password hash.
//
// Fields:
//  ID           - opaque primary key (prefix "u_", or the remote id after migration).
//  Name         - display name shown on reviews and bookings.
//  Email        - unique email address, stored lowercase.
//  PasswordHash - bcrypt hashed password.
//  Role         - account role (patient or clinic).
//  Avatar       - single character rendered as the user's avatar.
//  CreatedAt    - timestamp of registration.
type User struct {
	ID           string    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	Avatar       string    // users.avatar
	CreatedAt    time.Time // users.created_at
}

// Session is the single active device session. The table holds at
// most one row; logging in replaces whatever session existed before,
// so two accounts can never be signed in at the same time. Only the
// SHA-256 hash of the issued access token is stored.
type Session struct {
	UserID    string    // session.user_id
	TokenHash string    // session.token_hash
	CreatedAt time.Time // session.created_at
}
