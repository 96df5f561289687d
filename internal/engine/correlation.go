package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/smehra/proconnect/internal/domain"
	"github.com/smehra/proconnect/internal/graph"
	"github.com/smehra/proconnect/internal/vectormath"
)

// CorrelationRanker surfaces "people you may know": users whose feature
// vectors correlate positively with the source user's, excluding existing
// direct connections. A full scan over all users is the correctness baseline.
type CorrelationRanker struct {
	accessor graph.Accessor
}

// NewCorrelationRanker constructs a CorrelationRanker over the given accessor.
func NewCorrelationRanker(accessor graph.Accessor) *CorrelationRanker {
	return &CorrelationRanker{accessor: accessor}
}

// Rank returns suggestions ordered by descending correlation, ties broken by
// ascending user ID. Pairs with undefined (zero-variance) or non-positive
// correlation are excluded; a dimension mismatch aborts the whole ranking.
func (r *CorrelationRanker) Rank(ctx context.Context, userID string, limit int) ([]domain.PersonSuggestion, error) {
	source, err := r.accessor.FeatureVector(ctx, userID)
	if err != nil {
		return nil, notFound(userID, err)
	}
	if source == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrFeaturesMissing)
	}

	// The neighbor set and the user listing are causally unrelated reads, so
	// issue them concurrently against the backing store.
	type neighborsResult struct {
		ids []string
		err error
	}
	neighborsCh := make(chan neighborsResult, 1)
	go func() {
		ids, err := r.accessor.DirectNeighbors(ctx, userID)
		neighborsCh <- neighborsResult{ids: ids, err: err}
	}()

	users, err := r.accessor.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	nres := <-neighborsCh
	if nres.err != nil {
		return nil, notFound(userID, nres.err)
	}
	connected := make(map[string]struct{}, len(nres.ids))
	for _, id := range nres.ids {
		connected[id] = struct{}{}
	}

	suggestions := make([]domain.PersonSuggestion, 0)
	for _, candidate := range users {
		if err := checkDeadline(ctx); err != nil {
			return nil, err
		}

		if candidate.ID == userID {
			continue
		}
		if _, ok := connected[candidate.ID]; ok {
			continue
		}
		if candidate.Features == nil {
			continue
		}

		coeff, err := vectormath.Pearson(source, candidate.Features)
		if errors.Is(err, vectormath.ErrUndefined) {
			// Zero-variance pair: excluded, never ranked as uncorrelated.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("correlate %s with %s: %w", userID, candidate.ID, err)
		}
		if coeff <= 0 {
			continue
		}

		suggestions = append(suggestions, domain.PersonSuggestion{
			UserID:      candidate.ID,
			Name:        candidate.Name,
			Correlation: coeff,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Correlation != suggestions[j].Correlation {
			return suggestions[i].Correlation > suggestions[j].Correlation
		}
		return suggestions[i].UserID < suggestions[j].UserID
	})

	return truncate(suggestions, limit), nil
}
