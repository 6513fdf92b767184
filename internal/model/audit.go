package model

import "time"

// AuditLogEntry is one line of the append-only action trail kept in
// the `audit_logs` table. The table is capped: once it holds the
// configured maximum the oldest rows are dropped as new ones arrive,
// so the trail is a bounded window of recent activity rather than a
// complete history.
//
// Fields:
//  ID          - opaque identifier ("log_" prefix).
//  ActorUserID - account that performed the action, empty for anonymous actions.
//  Action      - short machine-readable action name (e.g. "review.submit").
//  Metadata    - free-form JSON object describing the action.
//  CreatedAt   - when the action happened.
type AuditLogEntry struct {
	ID          string    `json:"id"`
	ActorUserID string    `json:"actor_user_id,omitempty"`
	Action      string    `json:"action"`
	Metadata    string    `json:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
}
