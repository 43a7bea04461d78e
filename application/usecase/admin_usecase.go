package usecase

import (
	"context"
	"time"

	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/apperror"
	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type AdminUseCase struct {
	clubs  outbound.ClubRepository
	users  outbound.UserRepository
	events outbound.EventRepository
	log    logger.Logger
}

func NewAdminUseCase(
	clubs outbound.ClubRepository,
	users outbound.UserRepository,
	events outbound.EventRepository,
	log logger.Logger,
) inbound.AdminUseCase {
	return &AdminUseCase{clubs: clubs, users: users, events: events, log: log}
}

// DashboardStats aggregates the admin landing page numbers. The counts come
// from independent queries; the dashboard tolerates slight skew between them.
func (uc *AdminUseCase) DashboardStats(ctx context.Context) (*inbound.DashboardStats, error) {
	var (
		stats inbound.DashboardStats
		err   error
	)

	if stats.Overview.TotalClubs, err = uc.clubs.Count(ctx, outbound.ClubFilters{}); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}
	if stats.Overview.ClubsActifs, err = uc.clubs.Count(ctx, outbound.ClubFilters{Statut: entity.StatusActif}); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}
	if stats.Overview.ClubsEnAttente, err = uc.clubs.Count(ctx, outbound.ClubFilters{Statut: entity.StatusEnAttente}); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}
	if stats.Overview.TotalEvents, err = uc.events.Count(ctx, outbound.EventFilters{}); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}
	if stats.Overview.EventsEnAttente, err = uc.events.Count(ctx, outbound.EventFilters{Statut: entity.EventEnAttente}); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}
	monthStart := time.Now().AddDate(0, 0, -30)
	if stats.Overview.EventsCeMois, err = uc.events.Count(ctx, outbound.EventFilters{From: monthStart}); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}
	if stats.Overview.TotalUsers, err = uc.users.Count(ctx, outbound.UserFilters{}); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}
	if stats.Overview.UsersActifs, err = uc.users.Count(ctx, outbound.UserFilters{Statut: entity.StatusActif}); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}

	if stats.Charts.EventsByCategory, err = uc.events.CountByType(ctx, entity.EventValide); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}
	if stats.Charts.ClubsByCategory, err = uc.clubs.CountByCategorie(ctx); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}
	if stats.Charts.WeeklyActivity, err = uc.events.CreatedPerDay(ctx, time.Now().AddDate(0, 0, -7)); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}

	if stats.Recent.Events, err = uc.events.FindRecent(ctx, "", 5); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}
	if stats.Recent.Clubs, err = uc.clubs.FindRecent(ctx, 5); err != nil {
		return nil, apperror.Internal("dashboard aggregation failed", err)
	}

	return &stats, nil
}
