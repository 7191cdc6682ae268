package shortener

import "time"

// Code represents a short link code.
type Code string

// Link represents a shortened locator record. Once persisted it is
// read-only: the canonical locator and creation time never change.
type Link struct {
	Locator   string
	ShortCode Code
	CreatedAt time.Time
}

// Visit represents a single successful resolution of a short code.
type Visit struct {
	ShortCode Code
	ClientTag string // optional originating-client tag, empty when unknown
	VisitedAt time.Time
}
