package api

import (
	"context"
	"fmt"
	"strings"

	"clan-dashboard/internal/domain"
)

const (
	ClanInfoPath    = "/wot/clans/info/"
	AccountInfoPath = "/wot/account/info/"
	TankStatsPath   = "/wot/tanks/stats/"
	VehiclesPath    = "/wot/encyclopedia/vehicles/"
)

const (
	clanInfoFields    = "tag,name,clan_id,description,motto,members.account_id,members.role,members.joined_at,created_at,leader_name"
	accountInfoFields = "account_id,nickname,global_rating,last_battle_time,statistics.random.battles,statistics.random.wins,statistics.random.losses,statistics.random.survived_battles,statistics.random.battle_avg_xp,statistics.random.damage_dealt"
	tankStatsFields   = "tank_id,mark_of_mastery,all.battles,all.wins"
	vehicleFields     = "tank_id,name,tier,type,images.contour_icon"
)

type ClanInfo struct {
	ClanID      int64        `json:"clan_id"`
	Name        *string      `json:"name"`
	Tag         *string      `json:"tag"`
	Description *string      `json:"description"`
	Motto       *string      `json:"motto"`
	LeaderName  *string      `json:"leader_name"`
	CreatedAt   *int64       `json:"created_at"`
	Members     []ClanMember `json:"members"`
}

type ClanMember struct {
	AccountID int64  `json:"account_id"`
	Role      string `json:"role"`
	JoinedAt  *int64 `json:"joined_at"`
}

type AccountInfo struct {
	AccountID      int64   `json:"account_id"`
	Nickname       *string `json:"nickname"`
	GlobalRating   int     `json:"global_rating"`
	LastBattleTime *int64  `json:"last_battle_time"`
	Statistics     struct {
		Random RandomStats `json:"random"`
	} `json:"statistics"`
}

type RandomStats struct {
	Battles         int   `json:"battles"`
	Wins            int   `json:"wins"`
	Losses          int   `json:"losses"`
	SurvivedBattles int   `json:"survived_battles"`
	BattleAvgXP     int   `json:"battle_avg_xp"`
	DamageDealt     int64 `json:"damage_dealt"`
}

type TankStat struct {
	TankID        int64 `json:"tank_id"`
	MarkOfMastery int   `json:"mark_of_mastery"`
	All           struct {
		Battles int `json:"battles"`
		Wins    int `json:"wins"`
	} `json:"all"`
}

type Vehicle struct {
	TankID int64   `json:"tank_id"`
	Name   *string `json:"name"`
	Tier   int     `json:"tier"`
	Type   *string `json:"type"`
	Images struct {
		ContourIcon *string `json:"contour_icon"`
	} `json:"images"`
}

// ClanInfo returns ErrNotFound when the service has no clan under clanID.
func (c *Client) ClanInfo(ctx context.Context, realm domain.Realm, clanID string) (*ClanInfo, error) {
	data, err := doRequest[map[string]*ClanInfo](ctx, c, realm, ClanInfoPath, map[string]string{
		"clan_id": clanID,
		"fields":  clanInfoFields,
	})
	if err != nil {
		return nil, err
	}
	clan := data[clanID]
	if clan == nil {
		return nil, fmt.Errorf("clan %s: %w", clanID, ErrNotFound)
	}
	return clan, nil
}

// AccountInfo looks up one chunk of accounts. Ids the service answers with null
// are left out of the result.
func (c *Client) AccountInfo(ctx context.Context, realm domain.Realm, accountIDs []string) (map[string]AccountInfo, error) {
	data, err := doRequest[map[string]*AccountInfo](ctx, c, realm, AccountInfoPath, map[string]string{
		"account_id": strings.Join(accountIDs, ","),
		"extra":      "statistics.random",
		"fields":     accountInfoFields,
	})
	if err != nil {
		return nil, err
	}
	return dropNil(data), nil
}

func (c *Client) TankStats(ctx context.Context, realm domain.Realm, accountID string) ([]TankStat, error) {
	data, err := doRequest[map[string][]TankStat](ctx, c, realm, TankStatsPath, map[string]string{
		"account_id": accountID,
		"fields":     tankStatsFields,
	})
	if err != nil {
		return nil, err
	}
	return data[accountID], nil
}

func (c *Client) Vehicles(ctx context.Context, realm domain.Realm, tankIDs []string) (map[string]Vehicle, error) {
	data, err := doRequest[map[string]*Vehicle](ctx, c, realm, VehiclesPath, map[string]string{
		"tank_id": strings.Join(tankIDs, ","),
		"fields":  vehicleFields,
	})
	if err != nil {
		return nil, err
	}
	return dropNil(data), nil
}

func dropNil[T any](in map[string]*T) map[string]T {
	out := make(map[string]T, len(in))
	for k, v := range in {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}
