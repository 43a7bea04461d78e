package inbound

import (
	"context"

	"github.com/clubhub/clubhub/domain/entity"
)

type DashboardOverview struct {
	TotalClubs     int `json:"totalClubs"`
	ClubsActifs    int `json:"clubsActifs"`
	ClubsEnAttente int `json:"clubsEnAttente"`
	TotalEvents    int `json:"totalEvents"`
	EventsEnAttente int `json:"eventsEnAttente"`
	EventsCeMois   int `json:"eventsCeMois"`
	TotalUsers     int `json:"totalUsers"`
	UsersActifs    int `json:"usersActifs"`
}

type DashboardCharts struct {
	EventsByCategory map[string]int `json:"eventsByCategory"`
	ClubsByCategory  map[string]int `json:"clubsByCategory"`
	WeeklyActivity   map[string]int `json:"weeklyActivity"`
}

type DashboardRecent struct {
	Events []*entity.Event `json:"events"`
	Clubs  []*entity.Club  `json:"clubs"`
}

type DashboardStats struct {
	Overview DashboardOverview `json:"overview"`
	Charts   DashboardCharts   `json:"charts"`
	Recent   DashboardRecent   `json:"recent"`
}

type AdminUseCase interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}
