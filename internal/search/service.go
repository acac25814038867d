package search

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/unai-a/MusicFlow/internal/constants"
	"github.com/unai-a/MusicFlow/internal/domain"
	"github.com/unai-a/MusicFlow/internal/logger"
	"github.com/unai-a/MusicFlow/internal/media"
)

// ErrEmptyQuery is returned for empty or whitespace-only queries. It is the
// only error surfaced to callers as their fault.
var ErrEmptyQuery = errors.New("query is required")

var (
	titleSuffixRe = regexp.MustCompile(`\s*-\s*YouTube\s*$`)
	durationRe    = regexp.MustCompile(`\d+:\d+(?::\d+)?`)
)

// Cache stores normalized results keyed by query for a short TTL. store.DB
// satisfies it.
type Cache interface {
	GetCache(key string) ([]byte, error)
	SetCache(key string, data []byte, ttl time.Duration) error
}

// Service widens, normalizes and de-duplicates search results.
type Service struct {
	searcher Searcher
	cache    Cache
	log      *logger.Logger
}

// NewService creates the normalizer. cache may be nil.
func NewService(searcher Searcher, cache Cache, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		searcher: searcher,
		cache:    cache,
		log:      log.WithComponent("search"),
	}
}

// Search issues two query variants to widen recall, extracts canonical video
// ids, de-duplicates across variants preserving first-seen order, and caps
// the result at 15 tracks. A failing variant is logged and skipped; the whole
// operation only fails on an empty query.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Track, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	if cached, ok := s.fromCache(query); ok {
		return cached, nil
	}

	variants := []string{
		query + " youtube",
		query + " official video youtube",
	}

	seen := make(map[string]bool)
	var tracks []domain.Track

	for _, variant := range variants {
		hits, err := s.searcher.Search(ctx, variant, constants.SearchHitLimit)
		if err != nil {
			s.log.Warn("search variant failed", "query", variant, "error", err)
			continue
		}
		for _, hit := range hits {
			videoID, ok := media.ExtractVideoID(hit.URL)
			if !ok || seen[videoID] {
				continue
			}
			seen[videoID] = true
			tracks = append(tracks, normalizeHit(videoID, hit))
		}
	}

	if len(tracks) > constants.MaxSearchResults {
		tracks = tracks[:constants.MaxSearchResults]
	}

	s.toCache(query, tracks)
	return tracks, nil
}

// normalizeHit derives the canonical Track fields from a raw hit.
func normalizeHit(videoID string, hit Hit) domain.Track {
	title := titleSuffixRe.ReplaceAllString(hit.Name, "")

	channel := strings.TrimPrefix(hit.HostName, "www.")
	if parts := strings.SplitN(hit.Snippet, "·", 2); len(parts) > 1 {
		if name := strings.TrimSpace(parts[0]); name != "" {
			channel = name
		}
	}

	return domain.Track{
		VideoID:   videoID,
		Title:     title,
		Channel:   channel,
		Thumbnail: media.ThumbnailURL(videoID),
		Duration:  durationRe.FindString(hit.Snippet),
		URL:       hit.URL,
	}
}

func (s *Service) fromCache(query string) ([]domain.Track, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.GetCache(constants.CacheKeySearch + query)
	if err != nil || data == nil {
		return nil, false
	}
	var tracks []domain.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, false
	}
	return tracks, true
}

func (s *Service) toCache(query string, tracks []domain.Track) {
	if s.cache == nil || len(tracks) == 0 {
		return
	}
	data, err := json.Marshal(tracks)
	if err != nil {
		return
	}
	if err := s.cache.SetCache(constants.CacheKeySearch+query, data, constants.DefaultCacheTTL); err != nil {
		s.log.Warn("failed to cache search results", "query", query, "error", err)
	}
}
