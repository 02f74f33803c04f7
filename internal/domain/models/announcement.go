package models

import "time"

// Source identifies the exchange feed an announcement came from.
type Source string

const (
	SourceBinance Source = "binance"
	SourceBybit   Source = "bybit"
)

// RawAnnouncement is a single feed item exactly as received from a source.
// At least one of Title/Body is non-empty. It is immutable and lives for
// one pipeline pass.
type RawAnnouncement struct {
	Source     Source
	Identifier string // article id, URL, or composite; unique within source
	Title      string
	Body       string // plain text or HTML, may be empty
	URL        string
}

// UnknownSentinel stands in for a date or time that could not be extracted.
// It is a renderable placeholder, never an empty string.
const UnknownSentinel = "see announcement"

// ParsedAnnouncement is the canonical extraction result.
type ParsedAnnouncement struct {
	Tickers []string // deduplicated, upper-case, lexicographic order
	Date    string   // YYYY-MM-DD or UnknownSentinel
	Time    string   // HH:MM, optionally suffixed " (UTC)", or UnknownSentinel
}

// HasTickers reports whether any ticker survived extraction.
func (p *ParsedAnnouncement) HasTickers() bool { return len(p.Tickers) > 0 }

// Fallback returns the full best-effort result for unparseable input.
func Fallback() *ParsedAnnouncement {
	return &ParsedAnnouncement{
		Tickers: nil,
		Date:    UnknownSentinel,
		Time:    UnknownSentinel,
	}
}

// Alert is a dispatched notification, archived and published downstream.
type Alert struct {
	Source     Source    `json:"source"`
	NoticeID   string    `json:"notice_id"`
	Tickers    []string  `json:"tickers"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	URL        string    `json:"url"`
	IsTest     bool      `json:"is_test"`
	DispatchAt time.Time `json:"dispatch_at"`
}
