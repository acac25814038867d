// Package media extracts canonical video identifiers from provider URLs.
package media

import (
	"fmt"
	"regexp"

	"github.com/unai-a/MusicFlow/internal/constants"
)

// Recognized URL shapes, tried in order. The capture group is always the
// 11-character identifier drawn from [A-Za-z0-9_-].
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([A-Za-z0-9_-]{11})`),
}

// ExtractVideoID returns the canonical identifier embedded in a provider URL.
// Unrecognized URLs yield ok=false; callers skip those rather than fail.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, pattern := range idPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ThumbnailURL derives the deterministic thumbnail location for an identifier.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://%s/vi/%s/%s.jpg", constants.ThumbnailHost, videoID, constants.ThumbnailVariant)
}

// ValidVideoID reports whether s could be a canonical identifier.
func ValidVideoID(s string) bool {
	if len(s) != constants.VideoIDLength {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
