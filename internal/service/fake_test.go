package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"clan-dashboard/internal/api"
	"clan-dashboard/internal/config"
	"clan-dashboard/internal/domain"

	"github.com/rs/zerolog"
)

type fakeStats struct {
	mu sync.Mutex

	clan     *api.ClanInfo
	clanErr  error
	accounts map[string]api.AccountInfo
	accErr   error
	tanks    map[string][]api.TankStat
	tanksErr error
	vehicles map[string]api.Vehicle
	vehErr   error

	accountCalls [][]string
	tankCalls    []string
	vehicleCalls [][]string
}

var _ api.StatsProvider = (*fakeStats)(nil)

func (f *fakeStats) ClanInfo(ctx context.Context, realm domain.Realm, clanID string) (*api.ClanInfo, error) {
	if f.clanErr != nil {
		return nil, f.clanErr
	}
	if f.clan == nil {
		return nil, api.ErrNotFound
	}
	return f.clan, nil
}

func (f *fakeStats) AccountInfo(ctx context.Context, realm domain.Realm, ids []string) (map[string]api.AccountInfo, error) {
	f.mu.Lock()
	f.accountCalls = append(f.accountCalls, ids)
	f.mu.Unlock()
	if f.accErr != nil {
		return nil, f.accErr
	}
	out := make(map[string]api.AccountInfo)
	for _, id := range ids {
		if a, ok := f.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (f *fakeStats) TankStats(ctx context.Context, realm domain.Realm, accountID string) ([]api.TankStat, error) {
	f.mu.Lock()
	f.tankCalls = append(f.tankCalls, accountID)
	f.mu.Unlock()
	if f.tanksErr != nil {
		return nil, f.tanksErr
	}
	return f.tanks[accountID], nil
}

func (f *fakeStats) Vehicles(ctx context.Context, realm domain.Realm, ids []string) (map[string]api.Vehicle, error) {
	f.mu.Lock()
	f.vehicleCalls = append(f.vehicleCalls, ids)
	f.mu.Unlock()
	if f.vehErr != nil {
		return nil, f.vehErr
	}
	out := make(map[string]api.Vehicle)
	for _, id := range ids {
		if v, ok := f.vehicles[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func ptr[T any](v T) *T {
	return &v
}

func clanMember(id int64, role string, joined *int64) api.ClanMember {
	return api.ClanMember{AccountID: id, Role: role, JoinedAt: joined}
}

func account(id int64, nickname string, battles, wins, survived, avgXP int, lastBattle *int64) api.AccountInfo {
	a := api.AccountInfo{
		AccountID:      id,
		Nickname:       ptr(nickname),
		GlobalRating:   battles * 10,
		LastBattleTime: lastBattle,
	}
	a.Statistics.Random = api.RandomStats{
		Battles:         battles,
		Wins:            wins,
		Losses:          battles - wins,
		SurvivedBattles: survived,
		BattleAvgXP:     avgXP,
	}
	return a
}

func tankStat(id int64, battles, wins, mark int) api.TankStat {
	st := api.TankStat{TankID: id, MarkOfMastery: mark}
	st.All.Battles = battles
	st.All.Wins = wins
	return st
}

func vehicle(id int64, name string, tier int) api.Vehicle {
	return api.Vehicle{TankID: id, Name: ptr(name), Tier: tier, Type: ptr("mediumTank")}
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}

func testConfig() *config.Config {
	return &config.Config{
		AppID:            "test",
		ServerPort:       "8080",
		APITimeout:       time.Second,
		ActiveWindow:     7 * 24 * time.Hour,
		TopTanksPerTier:  10,
		ChunkConcurrency: 1,
	}
}

func newTestService(f *fakeStats) *DashboardService {
	return NewDashboardService(f, testConfig(), zerolog.New(nil).Level(zerolog.Disabled))
}
