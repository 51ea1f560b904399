package domain

import "strings"

type Realm string

const (
	RealmEU   Realm = "eu"
	RealmNA   Realm = "na"
	RealmAsia Realm = "asia"
	RealmRU   Realm = "ru"
)

const DefaultRealm = RealmEU

// Realms in selector display order.
var Realms = []Realm{RealmEU, RealmNA, RealmAsia, RealmRU}

var realmHosts = map[Realm]string{
	RealmEU:   "eu",
	RealmNA:   "com",
	RealmAsia: "asia",
	RealmRU:   "ru",
}

// ParseRealm is case-insensitive; anything unknown maps to DefaultRealm.
func ParseRealm(s string) Realm {
	r := Realm(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := realmHosts[r]; ok {
		return r
	}
	return DefaultRealm
}

// HostSuffix is the top-level domain of the realm's API host.
func (r Realm) HostSuffix() string {
	if host, ok := realmHosts[r]; ok {
		return host
	}
	return realmHosts[DefaultRealm]
}

func (r Realm) String() string {
	return string(r)
}
