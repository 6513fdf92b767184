// Package queue defines message payloads exchanged over the message broker.
package queue

// AuditLoggedEvent is published whenever an audited action is
// recorded: signups, logins, bookings, reviews, replies, reports and
// profile edits. It carries enough for downstream consumers to build
// activity feeds or alerting without querying the primary database.
type AuditLoggedEvent struct {
	EntryID     string `json:"entry_id"`
	ActorUserID string `json:"actor_user_id,omitempty"`
	Action      string `json:"action"`
	Metadata    string `json:"metadata"`
	LoggedAt    string `json:"logged_at"`
}
