// Package domain holds the core value types shared across the application.
package domain

// Track is the canonical representation of a playable item. It is immutable
// once constructed; two Tracks with the same VideoID are the same track
// everywhere, regardless of other field differences.
type Track struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"` // display string like "3:45", empty when unknown
	URL       string `json:"url"`
}

// Same reports whether two tracks refer to the same media item.
func (t Track) Same(other Track) bool {
	return t.VideoID == other.VideoID
}
