package outbound

import (
	"context"
	"time"

	"github.com/clubhub/clubhub/domain/entity"
)

type LogFilters struct {
	Action   string
	UserID   string
	From, To time.Time
}

// LogActorRef is the minimal projection used by the orphan sweep: enough to
// probe the actor's source collection without fetching full entries.
type LogActorRef struct {
	LogID    string         `bson:"_id"`
	UserID   string         `bson:"userId"`
	UserType entity.RefKind `bson:"userType"`
}

// LogStats groups entry counts for the admin debug endpoint.
type LogStats struct {
	Total      int            `json:"totalLogs"`
	ByAction   map[string]int `json:"actionStats"`
	ByUserType map[string]int `json:"userTypeStats"`
}

type LogRepository interface {
	Insert(ctx context.Context, entry *entity.LogEntry) error
	FindAll(ctx context.Context, filters LogFilters, offset, limit int) ([]*entity.LogEntry, int, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.LogEntry, error)
	Stats(ctx context.Context) (*LogStats, error)
	// ListActorRefs returns the (log id, actor id, actor type) triple of every
	// entry that carries an actor reference.
	ListActorRefs(ctx context.Context) ([]LogActorRef, error)
	// DeleteByDetailsNote bulk-deletes entries whose details carry the given
	// marker note; used for test-log cleanup.
	DeleteByDetailsNote(ctx context.Context, note string) (int64, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
