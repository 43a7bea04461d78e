// Package audit implements the activity log: a fire-and-forget write path and
// a read-side resolver that re-binds denormalized actor/target references
// against the live collections.
package audit

import (
	"context"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

// Recorder appends audit entries. Every Record call is best-effort: a storage
// failure is logged operationally and swallowed so it can never fail or roll
// back the business operation that triggered it.
type Recorder struct {
	logs outbound.LogRepository
	log  logger.Logger
}

func NewRecorder(logs outbound.LogRepository, log logger.Logger) *Recorder {
	return &Recorder{logs: logs, log: log}
}

// Record validates and appends one entry. Unknown actions are dropped (and
// logged) rather than widening the closed action set.
func (r *Recorder) Record(ctx context.Context, entry *entity.LogEntry) {
	if entry == nil || entry.UserID == "" {
		return
	}
	if !entity.IsKnownAction(entry.Action) {
		r.log.Warn(ctx, "audit: unknown action dropped", map[string]interface{}{
			"action": entry.Action,
			"userId": entry.UserID,
		})
		return
	}
	entry.UserType = entity.NormalizeRefKind(string(entry.UserType))
	if entry.Details == nil {
		entry.Details = map[string]interface{}{}
	}
	if err := r.logs.Insert(ctx, entry); err != nil {
		r.log.Error(ctx, "audit: append failed", err, map[string]interface{}{
			"action": entry.Action,
			"userId": entry.UserID,
		})
	}
}

// RecordAuth appends an authentication entry (login, logout, password change)
// with a system target.
func (r *Recorder) RecordAuth(ctx context.Context, userID string, userType entity.UserType, action, description string, details map[string]interface{}) {
	entry := entity.NewLogEntry(userID, entity.RefKindForUserType(userType), action, description)
	entry.TargetType = entity.RefSystem
	if details != nil {
		entry.Details = details
	}
	r.Record(ctx, entry)
}

// RecordAction appends an entry pointing at a concrete target.
func (r *Recorder) RecordAction(ctx context.Context, userID string, userType entity.UserType, action, description string, targetType entity.RefKind, targetID string, details map[string]interface{}) {
	entry := entity.NewLogEntry(userID, entity.RefKindForUserType(userType), action, description)
	entry.TargetType = targetType
	entry.TargetID = targetID
	if details != nil {
		entry.Details = details
	}
	r.Record(ctx, entry)
}
