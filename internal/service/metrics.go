package service

import (
	"math"
	"slices"
	"time"

	"clan-dashboard/internal/domain"
)

// DeriveAggregates computes clan-wide totals. A member is active when its last
// battle is present and no older than window at now.
func DeriveAggregates(roster domain.Roster, now time.Time, window time.Duration) domain.Aggregates {
	var agg domain.Aggregates
	var totalWins int
	for _, m := range roster.Members() {
		agg.TotalBattles += m.Battles
		totalWins += m.Wins
		if m.LastBattleAt != nil && now.Sub(*m.LastBattleAt) <= window {
			agg.ActiveMembers++
		}
	}
	if agg.TotalBattles > 0 {
		agg.AverageWinRate = float64(totalWins) / float64(agg.TotalBattles) * 100
	}
	return agg
}

// SelectMember returns the requested member when it is on the roster, otherwise
// the first member in membership order.
func SelectMember(roster domain.Roster, requested int64) (domain.Member, bool) {
	if requested > 0 {
		if m, ok := roster.Get(requested); ok {
			return m, true
		}
	}
	return roster.First()
}

// DerivePerformance builds the chart vector of selected relative to the roster.
// Roster maxima are floored at 1.
func DerivePerformance(roster domain.Roster, selected domain.Member) domain.PerformanceVector {
	maxBattles, maxWins := 1, 1
	for _, m := range roster.Members() {
		maxBattles = max(maxBattles, m.Battles)
		maxWins = max(maxWins, m.Wins)
	}

	return domain.NewPerformanceVector([domain.PerformanceSize]float64{
		round2(selected.WinRate * 100),
		float64(selected.AvgXP),
		round2(selected.SurvivalRate * 100),
		round2(float64(selected.Battles) / float64(maxBattles) * 100),
		round2(float64(selected.Wins) / float64(maxWins) * 100),
	})
}

// BuildTimeline returns the earliest joiners first; members without a join date
// sort after everyone else.
func BuildTimeline(roster domain.Roster, limit int) []domain.Member {
	members := roster.Members()
	slices.SortStableFunc(members, func(a, b domain.Member) int {
		switch {
		case a.JoinedAt == nil && b.JoinedAt == nil:
			return 0
		case a.JoinedAt == nil:
			return 1
		case b.JoinedAt == nil:
			return -1
		default:
			return a.JoinedAt.Compare(*b.JoinedAt)
		}
	})
	if len(members) > limit {
		members = members[:limit]
	}
	return members
}

// DaysInService counts whole days between joining and now, 0 without a join date.
func DaysInService(m domain.Member, now time.Time) int {
	if m.JoinedAt == nil {
		return 0
	}
	d := now.Sub(*m.JoinedAt)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
