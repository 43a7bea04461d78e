package inbound

import (
	"context"

	"github.com/clubhub/clubhub/application/audit"
	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
)

// EnrichedLog is a stored entry plus the actor/target display fields resolved
// against the live collections at read time.
type EnrichedLog struct {
	entity.LogEntry
	Utilisateur audit.Display  `json:"utilisateur"`
	Target      *audit.Display `json:"target,omitempty"`
}

type LogQuery struct {
	PageQuery
	Filters outbound.LogFilters
}

type LogPage struct {
	Logs       []EnrichedLog `json:"logs"`
	Pagination PageMeta      `json:"pagination"`
}

// OrphanReport is returned by the orphan sweep.
type OrphanReport struct {
	TotalLogsChecked  int   `json:"totalLogsChecked"`
	OrphanLogsFound   int   `json:"orphanLogsFound"`
	OrphanLogsDeleted int64 `json:"orphanLogsDeleted"`
}

type LogUseCase interface {
	List(ctx context.Context, query LogQuery) (*LogPage, error)
	Recent(ctx context.Context, limit int) ([]EnrichedLog, error)
	Stats(ctx context.Context) (*outbound.LogStats, error)
	// CreateTestLogs seeds marked sample entries for the given admin; they
	// are recognized and purged by DeleteTestLogs.
	CreateTestLogs(ctx context.Context, adminID string) (int, error)
	DeleteTestLogs(ctx context.Context) (int64, error)
	// CleanOrphanLogs deletes entries whose actor no longer resolves in its
	// source collection. Running it twice deletes nothing the second time.
	CleanOrphanLogs(ctx context.Context) (*OrphanReport, error)
}
