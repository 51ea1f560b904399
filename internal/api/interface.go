package api

import (
	"context"

	"clan-dashboard/internal/domain"
)

// StatsProvider is the set of stats service lookups the dashboard needs.
// Batch lookups take one chunk of ids; chunking is the caller's concern.
type StatsProvider interface {
	ClanInfo(ctx context.Context, realm domain.Realm, clanID string) (*ClanInfo, error)
	AccountInfo(ctx context.Context, realm domain.Realm, accountIDs []string) (map[string]AccountInfo, error)
	TankStats(ctx context.Context, realm domain.Realm, accountID string) ([]TankStat, error)
	Vehicles(ctx context.Context, realm domain.Realm, tankIDs []string) (map[string]Vehicle, error)
}

var _ StatsProvider = (*Client)(nil)
