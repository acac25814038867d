// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort        = "8080"
	DefaultDBPath      = "musicflow.db"
	DefaultSearchURL   = "http://127.0.0.1:8000/search"
	DefaultSearchRPS   = 2
	DefaultHTTPTimeout = 10 * time.Second
	DefaultVolume      = 0.7
	DefaultCacheTTL    = 10 * time.Minute
)

// Search
const (
	MaxSearchResults = 15
	SearchHitLimit   = 15
)

// Playback widget
const (
	// VideoIDLength is the exact length of a canonical video identifier.
	VideoIDLength = 11
	PollInterval  = 500 * time.Millisecond
	EventBuffer   = 16
)

// Thumbnails
const (
	ThumbnailHost    = "img.youtube.com"
	ThumbnailVariant = "mqdefault"
)

// Settings keys
const (
	SettingPlayerState = "player_state"
)

// Cache key prefixes
const (
	CacheKeySearch = "search:"
)
