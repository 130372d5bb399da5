package models

import "time"

// MaxTrendNameLength is the column limit for trend names. Longer names are
// truncated with a trailing ellipsis before persistence.
const MaxTrendNameLength = 255

// CanonicalTrend is a deduplicated, named fashion trend derived from
// multiple scraped sources. (Name, SearchPhrase) is unique at insert time;
// duplicate pairs are skipped rather than erred.
type CanonicalTrend struct {
	ID           int64     `json:"trend_id"`
	Name         string    `json:"trend_name"`
	Description  string    `json:"trend_description"`
	SearchPhrase string    `json:"trend_search_phrase,omitempty"`
	DateAdded    time.Time `json:"date_added"`
}

// TruncateTrendName enforces the column limit, marking truncation with "...".
// The cut is made on rune boundaries; slicing bytes could split a multi-byte
// character and produce invalid UTF-8, which Postgres rejects at insert.
func TruncateTrendName(name string) string {
	runes := []rune(name)
	if len(runes) <= MaxTrendNameLength {
		return name
	}
	return string(runes[:MaxTrendNameLength-3]) + "..."
}
