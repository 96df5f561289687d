package engine

import (
	"context"
	"sort"

	"github.com/smehra/proconnect/internal/domain"
	"github.com/smehra/proconnect/internal/graph"
)

// MutualRanker recommends new friends from 2-hop graph structure: candidates
// are neighbors-of-neighbors that are neither the source nor already
// connected, scored by the number of distinct shared direct connections.
type MutualRanker struct {
	accessor graph.Accessor
}

// NewMutualRanker constructs a MutualRanker over the given accessor.
func NewMutualRanker(accessor graph.Accessor) *MutualRanker {
	return &MutualRanker{accessor: accessor}
}

// Rank returns friend suggestions ordered by descending mutual count, ties
// broken by ascending user ID. limit <= 0 returns all candidates.
func (r *MutualRanker) Rank(ctx context.Context, userID string, limit int) ([]domain.FriendSuggestion, error) {
	_, suggestions, err := r.scan(ctx, userID)
	if err != nil {
		return nil, err
	}
	return truncate(suggestions, limit), nil
}

// RankWithCounts returns the truncated suggestions together with the
// neighbourhood counts, all derived from one 2-hop scan.
func (r *MutualRanker) RankWithCounts(ctx context.Context, userID string, limit int) ([]domain.FriendSuggestion, domain.ConnectionCounts, error) {
	direct, suggestions, err := r.scan(ctx, userID)
	if err != nil {
		return nil, domain.ConnectionCounts{}, err
	}
	counts := domain.ConnectionCounts{
		Direct:           len(direct),
		FriendsOfFriends: len(suggestions),
	}
	return truncate(suggestions, limit), counts, nil
}

// Counts reports the size of the direct neighbourhood and the number of
// friend-of-friend candidates for a user.
func (r *MutualRanker) Counts(ctx context.Context, userID string) (domain.ConnectionCounts, error) {
	_, counts, err := r.RankWithCounts(ctx, userID, 0)
	return counts, err
}

// scan performs the 2-hop traversal once and yields both the direct neighbor
// set and the full sorted candidate list.
func (r *MutualRanker) scan(ctx context.Context, userID string) ([]string, []domain.FriendSuggestion, error) {
	direct, err := r.accessor.DirectNeighbors(ctx, userID)
	if err != nil {
		return nil, nil, notFound(userID, err)
	}

	directSet := make(map[string]struct{}, len(direct))
	for _, id := range direct {
		directSet[id] = struct{}{}
	}

	// Each distinct shared neighbor contributes exactly one to a candidate's
	// score, since DirectNeighbors returns a set.
	mutuals := make(map[string]int)
	for _, neighbor := range direct {
		if err := checkDeadline(ctx); err != nil {
			return nil, nil, err
		}

		second, err := r.accessor.DirectNeighbors(ctx, neighbor)
		if err != nil {
			return nil, nil, notFound(neighbor, err)
		}
		for _, candidate := range second {
			if candidate == userID {
				continue
			}
			if _, connected := directSet[candidate]; connected {
				continue
			}
			mutuals[candidate]++
		}
	}

	suggestions := make([]domain.FriendSuggestion, 0, len(mutuals))
	for id, count := range mutuals {
		suggestions = append(suggestions, domain.FriendSuggestion{UserID: id, Mutuals: count})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Mutuals != suggestions[j].Mutuals {
			return suggestions[i].Mutuals > suggestions[j].Mutuals
		}
		return suggestions[i].UserID < suggestions[j].UserID
	})

	return direct, suggestions, nil
}

// truncate applies a caller-supplied bound; non-positive limits keep all
// elements, leaving truncation policy to the caller.
func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
