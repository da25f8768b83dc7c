package banview

import (
	"fmt"

	"cblbot/internal/cbl"
)

// Category selects one of the two ban collections of a profile.
type Category int

const (
	Active Category = iota
	Expired
)

// Categories is the delivery order: active bans always go out first.
var Categories = []Category{Active, Expired}

func (c Category) String() string {
	if c == Expired {
		return "Expired"
	}
	return "Active"
}

// noExpiry is what a ban without an expiry date shows in this category.
func (c Category) noExpiry() string {
	if c == Expired {
		return "Unknown"
	}
	return "Never"
}

// Bans returns the category's records from p.
func (c Category) Bans(p *cbl.PlayerBanProfile) []cbl.BanRecord {
	if c == Expired {
		return p.ExpiredBans
	}
	return p.ActiveBans
}

// Title is used both as the page title and the thread name.
func (c Category) Title(p *cbl.PlayerBanProfile) string {
	return fmt.Sprintf("%s Bans for %s", c, p.DisplayName())
}

// ThreadName is Title cut to the thread name limit.
func (c Category) ThreadName(p *cbl.PlayerBanProfile) string {
	return truncateRunes(c.Title(p), maxThreadNameLength)
}

// Pages paginates the category's bans of p.
func (c Category) Pages(p *cbl.PlayerBanProfile, chunkSize int) []Page {
	return Paginate(c.Bans(p), c.Title(p), chunkSize)
}
