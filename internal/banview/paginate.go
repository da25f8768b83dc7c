// Package banview turns a CBL profile into Discord embeds. It does no I/O.
package banview

import (
	"cblbot/internal/cbl"
)

// Page is one embed worth of bans. All pages of a category share a title.
type Page struct {
	Title string
	Bans  []cbl.BanRecord
	Color int
}

// Paginate splits records into pages of at most chunkSize bans, preserving
// order. Boundaries depend only on position. A chunkSize below 1 is treated
// as 1. No records means no pages, never one empty page.
func Paginate(records []cbl.BanRecord, title string, chunkSize int) []Page {
	if len(records) == 0 {
		return nil
	}
	if chunkSize < 1 {
		chunkSize = 1
	}

	pages := make([]Page, 0, (len(records)+chunkSize-1)/chunkSize)
	for start := 0; start < len(records); start += chunkSize {
		end := min(start+chunkSize, len(records))
		pages = append(pages, Page{
			Title: title,
			Bans:  records[start:end:end],
			Color: PageColor,
		})
	}
	return pages
}
