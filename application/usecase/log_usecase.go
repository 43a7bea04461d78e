package usecase

import (
	"context"
	"errors"

	"github.com/clubhub/clubhub/application/audit"
	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/apperror"
	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

// testLogNote marks entries seeded by CreateTestLogs so DeleteTestLogs can
// find them again.
const testLogNote = "Log créé pour test"

type LogUseCase struct {
	logs     outbound.LogRepository
	admins   outbound.AdminRepository
	users    outbound.UserRepository
	clubs    outbound.ClubRepository
	resolver *audit.Resolver
	recorder *audit.Recorder
	log      logger.Logger
}

func NewLogUseCase(
	logs outbound.LogRepository,
	admins outbound.AdminRepository,
	users outbound.UserRepository,
	clubs outbound.ClubRepository,
	resolver *audit.Resolver,
	recorder *audit.Recorder,
	log logger.Logger,
) inbound.LogUseCase {
	return &LogUseCase{
		logs:     logs,
		admins:   admins,
		users:    users,
		clubs:    clubs,
		resolver: resolver,
		recorder: recorder,
		log:      log,
	}
}

func (uc *LogUseCase) List(ctx context.Context, query inbound.LogQuery) (*inbound.LogPage, error) {
	page, limit := query.Normalize(20, 100)

	entries, total, err := uc.logs.FindAll(ctx, query.Filters, inbound.Offset(page, limit), limit)
	if err != nil {
		return nil, apperror.Internal("log query failed", err)
	}

	enriched := uc.enrich(ctx, entries)
	return &inbound.LogPage{
		Logs:       enriched,
		Pagination: inbound.NewPageMeta(page, limit, len(enriched), total),
	}, nil
}

func (uc *LogUseCase) Recent(ctx context.Context, limit int) ([]inbound.EnrichedLog, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	entries, err := uc.logs.FindRecent(ctx, limit)
	if err != nil {
		return nil, apperror.Internal("log query failed", err)
	}
	return uc.enrich(ctx, entries), nil
}

// enrich resolves actor and target references with one request-scoped
// resolution session, so repeated references inside a page share lookups and
// miss tombstones.
func (uc *LogUseCase) enrich(ctx context.Context, entries []*entity.LogEntry) []inbound.EnrichedLog {
	resolution := uc.resolver.NewResolution()
	enriched := make([]inbound.EnrichedLog, 0, len(entries))
	for _, e := range entries {
		enriched = append(enriched, inbound.EnrichedLog{
			LogEntry:    *e,
			Utilisateur: resolution.ResolveActor(ctx, e.UserType, e.UserID),
			Target:      resolution.ResolveTarget(ctx, e.TargetType, e.TargetID),
		})
	}
	return enriched
}

func (uc *LogUseCase) Stats(ctx context.Context) (*outbound.LogStats, error) {
	stats, err := uc.logs.Stats(ctx)
	if err != nil {
		return nil, apperror.Internal("log stats failed", err)
	}
	return stats, nil
}

func (uc *LogUseCase) CreateTestLogs(ctx context.Context, adminID string) (int, error) {
	samples := []struct {
		action, description string
		targetType          entity.RefKind
	}{
		{entity.ActionCreateClub, "Création d'un nouveau club de test", entity.RefClub},
		{entity.ActionUpdateClub, "Modification des informations du club", entity.RefClub},
		{entity.ActionApproveClub, "Approbation d'un club en attente", entity.RefClub},
		{entity.ActionCreateEvent, "Création d'un nouvel événement", entity.RefEvent},
		{entity.ActionApproveEvent, "Approbation d'un événement", entity.RefEvent},
		{entity.ActionRejectEvent, "Rejet d'un événement", entity.RefEvent},
		{entity.ActionCreateUser, "Création d'un nouvel utilisateur", entity.RefUser},
		{entity.ActionUpdateUser, "Modification d'un utilisateur", entity.RefUser},
		{entity.ActionDeleteUser, "Suppression d'un utilisateur", entity.RefUser},
		{entity.ActionLogout, "Déconnexion", entity.RefSystem},
	}

	for _, s := range samples {
		uc.recorder.RecordAction(ctx, adminID, entity.UserTypeAdmin, s.action, s.description, s.targetType, "", map[string]interface{}{
			"note": testLogNote,
		})
	}
	return len(samples), nil
}

func (uc *LogUseCase) DeleteTestLogs(ctx context.Context) (int64, error) {
	deleted, err := uc.logs.DeleteByDetailsNote(ctx, testLogNote)
	if err != nil {
		return 0, apperror.Internal("test log cleanup failed", err)
	}
	return deleted, nil
}

// CleanOrphanLogs probes every actor reference for existence (never a full
// fetch) and batch-deletes entries whose actor vanished. Probe failures count
// the entry as orphaned, matching the read side's tombstone policy.
func (uc *LogUseCase) CleanOrphanLogs(ctx context.Context) (*inbound.OrphanReport, error) {
	refs, err := uc.logs.ListActorRefs(ctx)
	if err != nil {
		return nil, apperror.Internal("orphan scan failed", err)
	}

	var orphanIDs []string
	for _, ref := range refs {
		exists, err := uc.actorExists(ctx, ref)
		if err != nil {
			uc.log.Warn(ctx, "orphan probe failed, treating as orphan", map[string]interface{}{
				"logId": ref.LogID,
				"error": err.Error(),
			})
			exists = false
		}
		if !exists {
			orphanIDs = append(orphanIDs, ref.LogID)
		}
	}

	var deleted int64
	if len(orphanIDs) > 0 {
		deleted, err = uc.logs.DeleteByIDs(ctx, orphanIDs)
		if err != nil {
			return nil, apperror.Internal("orphan deletion failed", err)
		}
	}

	return &inbound.OrphanReport{
		TotalLogsChecked:  len(refs),
		OrphanLogsFound:   len(orphanIDs),
		OrphanLogsDeleted: deleted,
	}, nil
}

func (uc *LogUseCase) actorExists(ctx context.Context, ref outbound.LogActorRef) (bool, error) {
	switch entity.NormalizeRefKind(string(ref.UserType)) {
	case entity.RefAdmin:
		return uc.admins.Exists(ctx, ref.UserID)
	case entity.RefClub:
		return uc.clubs.Exists(ctx, ref.UserID)
	case entity.RefUser:
		return uc.users.Exists(ctx, ref.UserID)
	}
	// Unknown actor tag: nothing can resolve it, treat as orphaned.
	return false, errors.New("unknown actor type " + string(ref.UserType))
}
