package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"clan-dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole_Known(t *testing.T) {
	tests := []struct {
		key   string
		label string
		color string
	}{
		{key: "commander", label: "Commander", color: "#ff7a18"},
		{key: "executive_officer", label: "Executive Officer", color: "#f472b6"},
		{key: "recruitment_officer", label: "Recruitment Officer", color: "#22d3ee"},
		{key: "reservist", label: "Reservist", color: "#0ea5e9"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			role := domain.ParseRole(tt.key)
			assert.True(t, role.Known())
			assert.Equal(t, tt.label, role.Label())
			assert.Equal(t, tt.color, role.Color())
		})
	}
}

func TestParseRole_Fallback(t *testing.T) {
	tests := []struct {
		key   string
		label string
	}{
		{key: "recruit", label: "Recruit"},
		{key: "field_marshal", label: "Field Marshal"},
		{key: "deputy_TL", label: "Deputy TL"},
		{key: "vice-leader_o'brien", label: "Vice-leader O'brien"},
		{key: "quarter_master's_aide", label: "Quarter Master's Aide"},
		{key: "", label: ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			role := domain.ParseRole(tt.key)
			assert.False(t, role.Known())
			assert.Equal(t, domain.RoleOther, role.Kind)
			assert.Equal(t, tt.key, role.Key)
			assert.Equal(t, tt.label, role.Label())
			assert.Equal(t, domain.DefaultRoleColor, role.Color())
		})
	}
}

func TestParseRealm(t *testing.T) {
	assert.Equal(t, domain.RealmNA, domain.ParseRealm("NA"))
	assert.Equal(t, domain.RealmAsia, domain.ParseRealm(" asia "))
	assert.Equal(t, domain.RealmEU, domain.ParseRealm(""))
	assert.Equal(t, domain.RealmEU, domain.ParseRealm("moon"))

	assert.Equal(t, "com", domain.RealmNA.HostSuffix())
	assert.Equal(t, "eu", domain.Realm("bogus").HostSuffix())
}

func TestNewRequest_Sanitizes(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		name       string
		realm      string
		clanID     string
		player     string
		wantRealm  domain.Realm
		wantClanID string
		wantPlayer int64
	}{
		{name: "clean", realm: "ru", clanID: "12345", player: "678", wantRealm: domain.RealmRU, wantClanID: "12345", wantPlayer: 678},
		{name: "digits only clan id", realm: "eu", clanID: " 12-34<script>5 ", wantRealm: domain.RealmEU, wantClanID: "12345"},
		{name: "bad player id", realm: "eu", clanID: "1", player: "abc", wantRealm: domain.RealmEU, wantClanID: "1"},
		{name: "player id with suffix", realm: "eu", clanID: "1", player: "42abc", wantRealm: domain.RealmEU, wantClanID: "1", wantPlayer: 42},
		{name: "negative player id", realm: "eu", clanID: "1", player: "-5", wantRealm: domain.RealmEU, wantClanID: "1"},
		{name: "unknown realm", realm: "mars", clanID: "", wantRealm: domain.RealmEU, wantClanID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := domain.NewRequest(tt.realm, tt.clanID, tt.player, now)
			assert.Equal(t, tt.wantRealm, req.Realm)
			assert.Equal(t, tt.wantClanID, req.ClanID)
			assert.Equal(t, tt.wantPlayer, req.PlayerID)
			assert.Equal(t, time.UTC, req.Now.Location())
		})
	}
}

func TestRequestControls(t *testing.T) {
	req := domain.NewRequest("asia", "77", "", time.Now())

	c := req.Controls()

	assert.Equal(t, "asia", c.Realm)
	assert.Equal(t, "77", c.ClanID)
	assert.Empty(t, c.PlayerID)
	assert.Equal(t, []string{"eu", "na", "asia", "ru"}, c.Realms)
}

func TestNewMember_Rates(t *testing.T) {
	tests := []struct {
		name         string
		stats        domain.MemberStats
		wantWin      float64
		wantSurvival float64
	}{
		{name: "no battles", stats: domain.MemberStats{}, wantWin: 0, wantSurvival: 0},
		{name: "no battles with stray counters", stats: domain.MemberStats{Wins: 3, SurvivedBattles: 2}, wantWin: 0, wantSurvival: 0},
		{name: "regular", stats: domain.MemberStats{Battles: 200, Wins: 104, SurvivedBattles: 50}, wantWin: 0.52, wantSurvival: 0.25},
		{name: "all won", stats: domain.MemberStats{Battles: 3, Wins: 3, SurvivedBattles: 3}, wantWin: 1, wantSurvival: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.NewMember(1, "nick", domain.ParseRole("private"), nil, nil, tt.stats)
			assert.InDelta(t, tt.wantWin, m.WinRate, 1e-9)
			assert.InDelta(t, tt.wantSurvival, m.SurvivalRate, 1e-9)
			assert.GreaterOrEqual(t, m.WinRate, 0.0)
			assert.LessOrEqual(t, m.WinRate, 1.0)
		})
	}
}

func TestNewMember_Labels(t *testing.T) {
	joined := time.Date(2019, time.May, 3, 10, 0, 0, 0, time.UTC)
	last := time.Date(2024, time.February, 28, 21, 7, 0, 0, time.UTC)

	m := domain.NewMember(1, "nick", domain.ParseRole("combat_officer"), &joined, &last, domain.MemberStats{})

	assert.Equal(t, "May 03, 2019", m.JoinedLabel)
	assert.Equal(t, "2024-02-28 21:07 UTC", m.LastBattleLabel)
	assert.Equal(t, "Combat Officer", m.RoleLabel)
	assert.Equal(t, "#a855f7", m.Color)

	bare := domain.NewMember(2, "nick", domain.ParseRole("private"), nil, nil, domain.MemberStats{})
	assert.Equal(t, "Unknown", bare.JoinedLabel)
	assert.Equal(t, "No data", bare.LastBattleLabel)
}

func TestRoster(t *testing.T) {
	roster := domain.NewRoster([]domain.Member{
		domain.NewMember(3, "c", domain.ParseRole("private"), nil, nil, domain.MemberStats{}),
		domain.NewMember(1, "a", domain.ParseRole("private"), nil, nil, domain.MemberStats{}),
		domain.NewMember(3, "dup", domain.ParseRole("private"), nil, nil, domain.MemberStats{}),
	})

	assert.Equal(t, 2, roster.Len())

	first, ok := roster.First()
	require.True(t, ok)
	assert.Equal(t, int64(3), first.AccountID)
	assert.Equal(t, "c", first.Nickname)

	m, ok := roster.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", m.Nickname)

	_, ok = roster.Get(99)
	assert.False(t, ok)

	members := roster.Members()
	members[0].Nickname = "changed"
	again, _ := roster.First()
	assert.Equal(t, "c", again.Nickname)
}

func TestRoster_JSON(t *testing.T) {
	roster := domain.NewRoster([]domain.Member{
		domain.NewMember(5, "e", domain.ParseRole("private"), nil, nil, domain.MemberStats{Battles: 2, Wins: 1}),
	})

	data, err := json.Marshal(roster)
	require.NoError(t, err)

	var decoded domain.Roster
	require.NoError(t, json.Unmarshal(data, &decoded))
	m, ok := decoded.Get(5)
	require.True(t, ok)
	assert.InDelta(t, 0.5, m.WinRate, 1e-9)

	empty, err := json.Marshal(domain.Roster{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))
}

func TestNewPerformanceVector(t *testing.T) {
	v := domain.NewPerformanceVector([domain.PerformanceSize]float64{51.2, 900, 33.3, 80, 75})

	require.Len(t, v, 5)
	assert.Equal(t, "Win rate %", v[0].Label)
	assert.Equal(t, "#34d399", v[0].Color)
	assert.Equal(t, "Victories percentile", v[4].Label)
	assert.Equal(t, []float64{51.2, 900, 33.3, 80, 75}, v.Values())
}

func TestFormatCreated(t *testing.T) {
	assert.Equal(t, "—", domain.FormatCreated(nil))
	created := time.Unix(1420070400, 0)
	assert.Equal(t, "2015-01-01", domain.FormatCreated(&created))
}
