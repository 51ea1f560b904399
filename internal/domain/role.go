package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type RoleKind int

const (
	RoleOther RoleKind = iota
	RoleCommander
	RoleExecutiveOfficer
	RolePersonnelOfficer
	RoleCombatOfficer
	RoleIntelligenceOfficer
	RoleQuartermaster
	RoleRecruitmentOfficer
	RoleJuniorOfficer
	RolePrivate
	RoleReservist
)

const DefaultRoleColor = "#7c3aed"

type roleInfo struct {
	key   string
	label string
	color string
}

var roleTable = map[RoleKind]roleInfo{
	RoleCommander:           {"commander", "Commander", "#ff7a18"},
	RoleExecutiveOfficer:    {"executive_officer", "Executive Officer", "#f472b6"},
	RolePersonnelOfficer:    {"personnel_officer", "Personnel Officer", "#3b82f6"},
	RoleCombatOfficer:       {"combat_officer", "Combat Officer", "#a855f7"},
	RoleIntelligenceOfficer: {"intelligence_officer", "Intelligence Officer", "#10b981"},
	RoleQuartermaster:       {"quartermaster", "Quartermaster", "#f97316"},
	RoleRecruitmentOfficer:  {"recruitment_officer", "Recruitment Officer", "#22d3ee"},
	RoleJuniorOfficer:       {"junior_officer", "Junior Officer", "#8b5cf6"},
	RolePrivate:             {"private", "Private", "#94a3b8"},
	RoleReservist:           {"reservist", "Reservist", "#0ea5e9"},
}

var roleByKey = func() map[string]RoleKind {
	m := make(map[string]RoleKind, len(roleTable))
	for kind, info := range roleTable {
		m[info.key] = kind
	}
	return m
}()

// Role is one of the known clan positions, or RoleOther carrying the raw key.
type Role struct {
	Kind RoleKind
	Key  string
}

func ParseRole(key string) Role {
	if kind, ok := roleByKey[key]; ok {
		return Role{Kind: kind, Key: key}
	}
	return Role{Kind: RoleOther, Key: key}
}

func (r Role) Known() bool {
	return r.Kind != RoleOther
}

func (r Role) Label() string {
	if !r.Known() {
		return titleKey(r.Key)
	}
	return roleTable[r.Kind].label
}

func (r Role) Color() string {
	if !r.Known() {
		return DefaultRoleColor
	}
	return roleTable[r.Kind].color
}

// titleKey replaces underscores with spaces and upper-cases the first letter
// after each run of whitespace. Hyphens and apostrophes do not start a word.
func titleKey(key string) string {
	upper := cases.Upper(language.English)

	var b strings.Builder
	wordStart := true
	for _, r := range strings.ReplaceAll(key, "_", " ") {
		if wordStart && !unicode.IsSpace(r) {
			b.WriteString(upper.String(string(r)))
		} else {
			b.WriteRune(r)
		}
		wordStart = unicode.IsSpace(r)
	}
	return b.String()
}
