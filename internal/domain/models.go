package domain

import (
	"encoding/json"
	"time"
)

const (
	joinedLabelLayout     = "Jan 02, 2006"
	lastBattleLabelLayout = "2006-01-02 15:04"
	createdLayout         = "2006-01-02"
)

type ClanSummary struct {
	ClanID       int64  `json:"clan_id"`
	Name         string `json:"name"`
	Tag          string `json:"tag"`
	Description  string `json:"description"`
	Motto        string `json:"motto"`
	Leader       string `json:"leader"`
	Created      string `json:"created"`
	MembersCount int    `json:"members_count"`
}

// FormatCreated renders a clan creation timestamp as a UTC date, or "—" when unknown.
func FormatCreated(createdAt *time.Time) string {
	if createdAt == nil {
		return "—"
	}
	return createdAt.UTC().Format(createdLayout)
}

// MemberStats are the raw random-battle counters of one account.
type MemberStats struct {
	Battles         int
	Wins            int
	Losses          int
	SurvivedBattles int
	AvgXP           int
	GlobalRating    int
}

type Member struct {
	AccountID       int64      `json:"account_id"`
	Nickname        string     `json:"nickname"`
	Role            Role       `json:"-"`
	RoleKey         string     `json:"role_key"`
	RoleLabel       string     `json:"role_label"`
	Color           string     `json:"color"`
	JoinedAt        *time.Time `json:"joined_at,omitempty"`
	JoinedLabel     string     `json:"joined_label"`
	Battles         int        `json:"battles"`
	Wins            int        `json:"wins"`
	Losses          int        `json:"losses"`
	SurvivedBattles int        `json:"survived_battles"`
	AvgXP           int        `json:"avg_xp"`
	GlobalRating    int        `json:"global_rating"`
	LastBattleAt    *time.Time `json:"last_battle_at,omitempty"`
	LastBattleLabel string     `json:"last_battle_label"`
	WinRate         float64    `json:"win_rate"`
	SurvivalRate    float64    `json:"survival_rate"`
}

// NewMember derives rates and display labels once; a Member is not modified afterwards.
func NewMember(accountID int64, nickname string, role Role, joinedAt, lastBattleAt *time.Time, stats MemberStats) Member {
	m := Member{
		AccountID:       accountID,
		Nickname:        nickname,
		Role:            role,
		RoleKey:         role.Key,
		RoleLabel:       role.Label(),
		Color:           role.Color(),
		JoinedAt:        joinedAt,
		JoinedLabel:     "Unknown",
		Battles:         stats.Battles,
		Wins:            stats.Wins,
		Losses:          stats.Losses,
		SurvivedBattles: stats.SurvivedBattles,
		AvgXP:           stats.AvgXP,
		GlobalRating:    stats.GlobalRating,
		LastBattleAt:    lastBattleAt,
		LastBattleLabel: "No data",
		WinRate:         ratio(stats.Wins, stats.Battles),
		SurvivalRate:    ratio(stats.SurvivedBattles, stats.Battles),
	}
	if joinedAt != nil {
		m.JoinedLabel = joinedAt.UTC().Format(joinedLabelLayout)
	}
	if lastBattleAt != nil {
		m.LastBattleLabel = lastBattleAt.UTC().Format(lastBattleLabelLayout) + " UTC"
	}
	return m
}

// ratio is clamped to [0,1]; zero battles yield 0.
func ratio(part, battles int) float64 {
	if battles <= 0 || part <= 0 {
		return 0
	}
	r := float64(part) / float64(battles)
	if r > 1 {
		return 1
	}
	return r
}

// Roster keeps members in clan membership order and indexes them by account id.
type Roster struct {
	members []Member
	index   map[int64]int
}

// NewRoster keeps the first occurrence of a repeated account id.
func NewRoster(members []Member) Roster {
	r := Roster{
		members: make([]Member, 0, len(members)),
		index:   make(map[int64]int, len(members)),
	}
	for _, m := range members {
		if _, dup := r.index[m.AccountID]; dup {
			continue
		}
		r.index[m.AccountID] = len(r.members)
		r.members = append(r.members, m)
	}
	return r
}

func (r Roster) Len() int {
	return len(r.members)
}

// Members returns a copy in membership order.
func (r Roster) Members() []Member {
	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}

func (r Roster) Get(accountID int64) (Member, bool) {
	i, ok := r.index[accountID]
	if !ok {
		return Member{}, false
	}
	return r.members[i], true
}

func (r Roster) First() (Member, bool) {
	if len(r.members) == 0 {
		return Member{}, false
	}
	return r.members[0], true
}

func (r Roster) MarshalJSON() ([]byte, error) {
	if r.members == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.members)
}

func (r *Roster) UnmarshalJSON(data []byte) error {
	var members []Member
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	*r = NewRoster(members)
	return nil
}

type RoleFilter struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type Aggregates struct {
	TotalBattles   int     `json:"total_battles"`
	AverageWinRate float64 `json:"average_win_rate"`
	ActiveMembers  int     `json:"active_members"`
}

type PerformanceMetric struct {
	Label string  `json:"label"`
	Color string  `json:"color"`
	Value float64 `json:"value"`
}

const PerformanceSize = 5

// PerformanceVector is win rate %, average XP, survival %, battles percentile and
// victories percentile, in that order.
type PerformanceVector [PerformanceSize]PerformanceMetric

var (
	PerformanceLabels = [PerformanceSize]string{"Win rate %", "Average XP", "Survival %", "Battles percentile", "Victories percentile"}
	PerformanceColors = [PerformanceSize]string{"#34d399", "#f472b6", "#60a5fa", "#f97316", "#c084fc"}
)

func NewPerformanceVector(values [PerformanceSize]float64) PerformanceVector {
	var v PerformanceVector
	for i, value := range values {
		v[i] = PerformanceMetric{
			Label: PerformanceLabels[i],
			Color: PerformanceColors[i],
			Value: value,
		}
	}
	return v
}

func (v PerformanceVector) Values() []float64 {
	out := make([]float64, 0, PerformanceSize)
	for _, m := range v {
		out = append(out, m.Value)
	}
	return out
}

type TankRecord struct {
	TankID  int64   `json:"tank_id"`
	Name    string  `json:"name"`
	Image   *string `json:"image,omitempty"`
	Type    string  `json:"type"`
	Tier    int     `json:"tier"`
	Battles int     `json:"battles"`
	WinRate float64 `json:"win_rate"`
	Mark    int     `json:"mark"`
	// Status is true when the win rate is at least 50%.
	Status bool `json:"status"`
}

type TierGroup struct {
	Tier  int          `json:"tier"`
	Tanks []TankRecord `json:"tanks"`
}

// Dossier holds tier groups in ascending tier order.
type Dossier []TierGroup
