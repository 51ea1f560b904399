package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Request is the immutable selection context of one render.
type Request struct {
	Realm    Realm
	ClanID   string
	PlayerID int64
	Now      time.Time
}

// NewRequest sanitizes raw selection parameters: unknown realms fall back to the
// default, non-digits are stripped from the clan id and an unparseable player id
// means no explicit selection.
func NewRequest(realm, clanID, playerID string, now time.Time) Request {
	return Request{
		Realm:    ParseRealm(realm),
		ClanID:   digitsOnly(clanID),
		PlayerID: parsePlayerID(playerID),
		Now:      now.UTC(),
	}
}

func (r Request) Controls() Controls {
	realms := make([]string, 0, len(Realms))
	for _, realm := range Realms {
		realms = append(realms, realm.String())
	}
	c := Controls{
		Realm:  r.Realm.String(),
		ClanID: r.ClanID,
		Realms: realms,
	}
	if r.PlayerID > 0 {
		c.PlayerID = strconv.FormatInt(r.PlayerID, 10)
	}
	return c
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func parsePlayerID(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	id, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// Controls echo the request so a client can re-render its selection form.
type Controls struct {
	Realm    string   `json:"realm"`
	ClanID   string   `json:"clan_id"`
	PlayerID string   `json:"player,omitempty"`
	Realms   []string `json:"realms"`
}

type Dashboard struct {
	RenderID      string            `json:"render_id"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Controls      Controls          `json:"controls"`
	Clan          ClanSummary       `json:"clan"`
	Roster        Roster            `json:"roster"`
	RoleFilters   []RoleFilter      `json:"role_filters"`
	Aggregates    Aggregates        `json:"aggregates"`
	Performance   PerformanceVector `json:"performance"`
	Timeline      []Member          `json:"timeline"`
	Dossier       Dossier           `json:"dossier"`
	DossierError  string            `json:"dossier_error,omitempty"`
	Selected      Member            `json:"selected"`
	DaysInService int               `json:"days_in_service"`
}

// Refresh is the subset of a Dashboard a client swaps in without a full reload.
type Refresh struct {
	RenderID      string            `json:"render_id"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Roster        Roster            `json:"roster"`
	RoleFilters   []RoleFilter      `json:"role_filters"`
	Aggregates    Aggregates        `json:"aggregates"`
	Performance   PerformanceVector `json:"performance"`
	Timeline      []Member          `json:"timeline"`
	Dossier       Dossier           `json:"dossier"`
	DossierError  string            `json:"dossier_error,omitempty"`
	Selected      Member            `json:"selected"`
	DaysInService int               `json:"days_in_service"`
}

func (d *Dashboard) Refresh() Refresh {
	return Refresh{
		RenderID:      d.RenderID,
		UpdatedAt:     d.UpdatedAt,
		Roster:        d.Roster,
		RoleFilters:   d.RoleFilters,
		Aggregates:    d.Aggregates,
		Performance:   d.Performance,
		Timeline:      d.Timeline,
		Dossier:       d.Dossier,
		DossierError:  d.DossierError,
		Selected:      d.Selected,
		DaysInService: d.DaysInService,
	}
}

// ErrorPanel replaces the whole dashboard when a render fails.
type ErrorPanel struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	RequestID string   `json:"request_id,omitempty"`
	Controls  Controls `json:"controls"`
}
