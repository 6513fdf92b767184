package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
	"github.com/iliyamo/clinic-review-platform/internal/queue"
	"github.com/iliyamo/clinic-review-platform/internal/remote"
	"github.com/iliyamo/clinic-review-platform/internal/repository"
	"github.com/iliyamo/clinic-review-platform/internal/utils"
)

// Auditor records the capped action trail. Recording never fails the
// surrounding user action: every sink (local table, message broker,
// remote mirror) is best-effort and failures are logged and dropped.
type Auditor struct {
	Repo         *repository.AuditRepo
	Remote       remote.Gateway // nil disables mirroring
	QueueEnabled bool           // publish AuditLoggedEvent when true
}

// Record appends an audit entry for an action performed by actorID
// (empty for anonymous actions). Metadata keys describe the action
// and must be JSON-encodable.
func (a *Auditor) Record(ctx context.Context, actorID, action string, metadata map[string]any) {
	if a == nil || a.Repo == nil {
		return
	}
	meta := "{}"
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			meta = string(b)
		}
	}
	entry := model.AuditLogEntry{
		ID:          utils.NewID("log"),
		ActorUserID: actorID,
		Action:      action,
		Metadata:    meta,
		CreatedAt:   time.Now().UTC(),
	}
	if err := a.Repo.Insert(ctx, entry); err != nil {
		log.Printf("audit: insert failed: %v", err)
		return
	}
	if a.QueueEnabled {
		_ = queue.PublishAuditLogged(ctx, queue.AuditLoggedEvent{
			EntryID:     entry.ID,
			ActorUserID: entry.ActorUserID,
			Action:      entry.Action,
			Metadata:    entry.Metadata,
			LoggedAt:    entry.CreatedAt.Format(time.RFC3339),
		})
	}
	if a.Remote != nil && actorID != "" {
		if err := a.Remote.InsertAuditLog(ctx, remote.AuditRecord{
			ActorUserID: entry.ActorUserID,
			Action:      entry.Action,
			Metadata:    entry.Metadata,
			CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			log.Printf("audit: remote mirror failed: %v", err)
		}
	}
}

// Recent returns the newest entries, up to limit.
func (a *Auditor) Recent(ctx context.Context, limit int) ([]model.AuditLogEntry, error) {
	return a.Repo.List(ctx, limit)
}
