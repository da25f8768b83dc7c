package cbl

import (
	"strings"

	"github.com/leighmacdonald/steamid/v4/steamid"
)

// NormalizePlayerID converts Steam2 (STEAM_0:1:123) and Steam3 ([U:1:123])
// ids into the SteamID64 form CBL keys on. Anything else, plain numbers
// included, is returned trimmed but otherwise untouched so CBL decides.
func NormalizePlayerID(raw string) string {
	id := strings.TrimSpace(raw)
	upper := strings.ToUpper(id)
	if !strings.HasPrefix(upper, "STEAM_") && !strings.HasPrefix(upper, "[U:") {
		return id
	}

	sid := steamid.New(id)
	if !sid.Valid() {
		return id
	}
	return sid.String()
}
