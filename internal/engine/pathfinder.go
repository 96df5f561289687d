package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/smehra/proconnect/internal/domain"
	"github.com/smehra/proconnect/internal/graph"
)

// PathFinder computes shortest connection paths over the KNOWS graph with
// unit edge weights. Neighbors are expanded in ascending ID order so repeated
// calls on an unchanged graph reproduce the same path.
type PathFinder struct {
	accessor graph.Accessor
}

// NewPathFinder constructs a PathFinder over the given accessor.
func NewPathFinder(accessor graph.Accessor) *PathFinder {
	return &PathFinder{accessor: accessor}
}

// Shortest runs a breadth-first search from source to target. It fails with
// ErrUserNotFound when either endpoint is absent and ErrNoPath when the two
// users are in disconnected components.
func (f *PathFinder) Shortest(ctx context.Context, sourceID, targetID string) (domain.ConnectionPath, error) {
	sourceNeighbors, err := f.accessor.DirectNeighbors(ctx, sourceID)
	if err != nil {
		return domain.ConnectionPath{}, notFound(sourceID, err)
	}
	if _, err := f.accessor.DirectNeighbors(ctx, targetID); err != nil {
		return domain.ConnectionPath{}, notFound(targetID, err)
	}

	if sourceID == targetID {
		return domain.ConnectionPath{
			SourceUserID: sourceID,
			TargetUserID: targetID,
			UserIDs:      []string{sourceID},
			Hops:         0,
		}, nil
	}

	parent := map[string]string{sourceID: ""}
	frontier := sortedCopy(sourceNeighbors)
	for _, id := range frontier {
		parent[id] = sourceID
	}

	for len(frontier) > 0 {
		if err := checkDeadline(ctx); err != nil {
			return domain.ConnectionPath{}, err
		}

		current := frontier[0]
		frontier = frontier[1:]

		if current == targetID {
			return f.buildPath(sourceID, targetID, parent), nil
		}

		neighbors, err := f.accessor.DirectNeighbors(ctx, current)
		if err != nil {
			return domain.ConnectionPath{}, notFound(current, err)
		}
		for _, next := range sortedCopy(neighbors) {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			frontier = append(frontier, next)
		}
	}

	return domain.ConnectionPath{}, fmt.Errorf("%s to %s: %w", sourceID, targetID, ErrNoPath)
}

func (f *PathFinder) buildPath(sourceID, targetID string, parent map[string]string) domain.ConnectionPath {
	var reversed []string
	for id := targetID; id != ""; id = parent[id] {
		reversed = append(reversed, id)
	}

	userIDs := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		userIDs = append(userIDs, reversed[i])
	}

	return domain.ConnectionPath{
		SourceUserID: sourceID,
		TargetUserID: targetID,
		UserIDs:      userIDs,
		Hops:         len(userIDs) - 1,
	}
}

// sortedCopy keeps traversal order independent of the accessor's iteration
// order.
func sortedCopy(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}
