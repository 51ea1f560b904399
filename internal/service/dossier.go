package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"clan-dashboard/internal/api"
	"clan-dashboard/internal/batch"
	"clan-dashboard/internal/constants"
	"clan-dashboard/internal/domain"
)

// buildDossier fetches the account's vehicle statistics, resolves vehicle
// metadata in chunks and groups the result by tier.
func (s *DashboardService) buildDossier(ctx context.Context, req domain.Request, accountID int64) (domain.Dossier, error) {
	id := strconv.FormatInt(accountID, 10)
	log := s.logger.With().Str("account_id", id).Str("realm", req.Realm.String()).Logger()

	stats, err := s.stats.TankStats(ctx, req.Realm, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch tank stats")
		return nil, fmt.Errorf("unable to load tank stats: %w", err)
	}

	tankIDs := make([]string, 0, len(stats))
	for _, st := range stats {
		if st.TankID != 0 {
			tankIDs = append(tankIDs, strconv.FormatInt(st.TankID, 10))
		}
	}

	vehicles, err := batch.Fetch(ctx, tankIDs, batch.Options{
		Size:        constants.VehicleChunkSize,
		Concurrency: s.cfg.ChunkConcurrency,
	}, func(ctx context.Context, chunk []string) (map[string]api.Vehicle, error) {
		return s.stats.Vehicles(ctx, req.Realm, chunk)
	})
	if err != nil {
		log.Error().Err(err).Int("tank_count", len(tankIDs)).Msg("failed to resolve vehicles")
		return nil, fmt.Errorf("unable to load tank encyclopedia: %w", err)
	}

	dossier := GroupTanks(stats, vehicles, s.cfg.TopTanksPerTier)
	log.Debug().Int("tank_count", len(stats)).Int("tiers", len(dossier)).Msg("dossier built")
	return dossier, nil
}

// GroupTanks buckets vehicle statistics by tier, keeps the topN most played
// vehicles per tier and orders tiers ascending. Rows without metadata or with
// tier 0 are dropped.
func GroupTanks(stats []api.TankStat, vehicles map[string]api.Vehicle, topN int) domain.Dossier {
	byTier := make(map[int][]domain.TankRecord)
	for _, st := range stats {
		if st.TankID == 0 {
			continue
		}
		v, ok := vehicles[strconv.FormatInt(st.TankID, 10)]
		if !ok || v.Tier <= 0 {
			continue
		}
		byTier[v.Tier] = append(byTier[v.Tier], newTankRecord(st, v))
	}

	tiers := make([]int, 0, len(byTier))
	for tier := range byTier {
		tiers = append(tiers, tier)
	}
	slices.Sort(tiers)

	dossier := make(domain.Dossier, 0, len(tiers))
	for _, tier := range tiers {
		tanks := byTier[tier]
		slices.SortStableFunc(tanks, func(a, b domain.TankRecord) int {
			return b.Battles - a.Battles
		})
		if len(tanks) > topN {
			tanks = tanks[:topN]
		}
		dossier = append(dossier, domain.TierGroup{Tier: tier, Tanks: tanks})
	}
	return dossier
}

func newTankRecord(st api.TankStat, v api.Vehicle) domain.TankRecord {
	name := "Unknown tank"
	if v.Name != nil {
		name = *v.Name
	}
	vehicleType := "unknown"
	if v.Type != nil {
		vehicleType = *v.Type
	}

	var winRate float64
	if st.All.Battles > 0 {
		winRate = float64(st.All.Wins) / float64(st.All.Battles)
	}

	return domain.TankRecord{
		TankID:  st.TankID,
		Name:    name,
		Image:   v.Images.ContourIcon,
		Type:    vehicleType,
		Tier:    v.Tier,
		Battles: st.All.Battles,
		WinRate: winRate,
		Mark:    st.MarkOfMastery,
		Status:  winRate >= 0.5,
	}
}
