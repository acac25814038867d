package search

import "context"

// MockSearcher is a test double for the external search capability.
type MockSearcher struct {
	// Hits maps a query to the raw hits it returns.
	Hits map[string][]Hit
	// Errs maps a query to an error, simulating a failing variant.
	Errs map[string]error
	// Calls records the queries issued, in order.
	Calls []string
}

func (m *MockSearcher) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	m.Calls = append(m.Calls, query)
	if err, ok := m.Errs[query]; ok {
		return nil, err
	}
	hits := m.Hits[query]
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}
