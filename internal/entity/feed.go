package entity

import "time"

// Feed is one RSS channel variant, written to FileName under the feeds
// directory.
type Feed struct {
	FileName    string
	Title       string
	Link        string
	Description string
	Items       []*Item
}

// Item is a single feed entry. One item is produced per published
// asset.
type Item struct {
	Title       string
	Link        string
	GUID        string // Stable identifier, derived from release tag and asset name
	PubDate     time.Time
	Description string // HTML rendered from the release body
	Enclosure   Enclosure
}

// Enclosure points a feed reader at the downloadable file itself.
type Enclosure struct {
	URL    string
	Length int64
	Type   string
}
