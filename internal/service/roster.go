package service

import (
	"errors"
	"strconv"
	"time"

	"clan-dashboard/internal/api"
	"clan-dashboard/internal/domain"
)

var ErrNoDisplayableMembers = errors.New("unable to assemble clan roster")

// BuildRoster joins membership records with account statistics. Members without
// statistics are skipped; the roster must not end up empty.
func BuildRoster(members []api.ClanMember, accounts map[string]api.AccountInfo) (domain.Roster, error) {
	out := make([]domain.Member, 0, len(members))
	for _, m := range members {
		account, ok := accounts[strconv.FormatInt(m.AccountID, 10)]
		if !ok {
			continue
		}
		out = append(out, newMember(m, account))
	}

	roster := domain.NewRoster(out)
	if roster.Len() == 0 {
		return domain.Roster{}, ErrNoDisplayableMembers
	}
	return roster, nil
}

func newMember(m api.ClanMember, account api.AccountInfo) domain.Member {
	stats := account.Statistics.Random
	nickname := "Unknown"
	if account.Nickname != nil {
		nickname = *account.Nickname
	}

	return domain.NewMember(
		m.AccountID,
		nickname,
		domain.ParseRole(m.Role),
		unixTime(m.JoinedAt, true),
		unixTime(account.LastBattleTime, false),
		domain.MemberStats{
			Battles:         stats.Battles,
			Wins:            stats.Wins,
			Losses:          stats.Losses,
			SurvivedBattles: stats.SurvivedBattles,
			AvgXP:           stats.BattleAvgXP,
			GlobalRating:    account.GlobalRating,
		},
	)
}

// unixTime converts an optional epoch. Unless allowZero is set, 0 counts as absent.
func unixTime(sec *int64, allowZero bool) *time.Time {
	if sec == nil || (*sec == 0 && !allowZero) {
		return nil
	}
	t := time.Unix(*sec, 0).UTC()
	return &t
}

// RoleFilters lists each distinct role key once, in first-seen roster order.
func RoleFilters(roster domain.Roster) []domain.RoleFilter {
	seen := make(map[string]bool)
	var filters []domain.RoleFilter
	for _, m := range roster.Members() {
		if seen[m.RoleKey] {
			continue
		}
		seen[m.RoleKey] = true
		filters = append(filters, domain.RoleFilter{Key: m.RoleKey, Label: m.RoleLabel})
	}
	return filters
}
