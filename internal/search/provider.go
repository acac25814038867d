// Package search turns free-text queries into canonical tracks using an
// external web-search capability.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/unai-a/MusicFlow/internal/constants"
)

// Hit is one raw result from the external search capability.
type Hit struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	HostName string `json:"host_name"`
	Snippet  string `json:"snippet"`
}

// Searcher is the external search capability. Each call is independent and
// best-effort; a failing call is skipped by the normalizer, not retried.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Hit, error)
}

// WebSearcher calls a web-search HTTP endpoint. Requests are rate limited;
// each request is attempted exactly once.
type WebSearcher struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewWebSearcher validates the endpoint and builds the client. An error here
// means the search capability cannot be initialized at all.
func NewWebSearcher(endpoint string, rps int) (*WebSearcher, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid search endpoint %q", endpoint)
	}
	if rps < 1 {
		rps = constants.DefaultSearchRPS
	}
	return &WebSearcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: constants.DefaultHTTPTimeout},
		limiter:  rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (w *WebSearcher) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if err := w.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]any{
		"query": query,
		"num":   limit,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search endpoint returned status %d", resp.StatusCode)
	}

	var hits []Hit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, fmt.Errorf("search endpoint returned non-sequence data: %w", err)
	}
	return hits, nil
}
