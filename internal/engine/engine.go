// Package engine implements the recommendation and path engine: mutual
// connection ranking, correlation-based "people you may know", embedding-based
// job matching and shortest-path search over the professional graph.
package engine

import (
	"context"
	"time"

	"github.com/smehra/proconnect/internal/domain"
	"github.com/smehra/proconnect/internal/graph"
	"github.com/smehra/proconnect/internal/metrics"
)

// Engine orchestrates the rankers and the path finder behind the public
// contract consumed by the API layer. It is stateless: every call observes
// one consistent graph snapshot, never mutates it, and concurrent calls need
// no coordination.
type Engine struct {
	mutual      *MutualRanker
	correlation *CorrelationRanker
	embedding   *EmbeddingRanker
	paths       *PathFinder
	collector   metrics.Collector
}

// New builds an Engine over the accessor. A nil collector disables metrics.
func New(accessor graph.Accessor, collector metrics.Collector) *Engine {
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &Engine{
		mutual:      NewMutualRanker(accessor),
		correlation: NewCorrelationRanker(accessor),
		embedding:   NewEmbeddingRanker(accessor),
		paths:       NewPathFinder(accessor),
		collector:   collector,
	}
}

// RecommendFriends returns friend-of-friend suggestions scored by mutual
// connection count.
func (e *Engine) RecommendFriends(ctx context.Context, userID string, limit int) ([]domain.FriendSuggestion, error) {
	start := time.Now()
	out, err := e.mutual.Rank(ctx, userID, limit)
	e.observe("recommend_friends", start, err)
	return out, err
}

// FriendRecommendations returns friend suggestions together with the
// neighbourhood counts from a single 2-hop scan, so callers surfacing both
// pay for one traversal.
func (e *Engine) FriendRecommendations(ctx context.Context, userID string, limit int) ([]domain.FriendSuggestion, domain.ConnectionCounts, error) {
	start := time.Now()
	out, counts, err := e.mutual.RankWithCounts(ctx, userID, limit)
	e.observe("recommend_friends", start, err)
	return out, counts, err
}

// RecommendPeople returns "people you may know" suggestions scored by Pearson
// correlation over feature vectors.
func (e *Engine) RecommendPeople(ctx context.Context, userID string, limit int) ([]domain.PersonSuggestion, error) {
	start := time.Now()
	out, err := e.correlation.Rank(ctx, userID, limit)
	e.observe("recommend_people", start, err)
	return out, err
}

// RecommendJobs returns job matches scored by cosine similarity between
// embeddings, excluding candidates below minSimilarity.
func (e *Engine) RecommendJobs(ctx context.Context, userID string, limit int, minSimilarity float64) ([]domain.JobMatch, error) {
	start := time.Now()
	out, err := e.embedding.Rank(ctx, userID, limit, minSimilarity)
	e.observe("recommend_jobs", start, err)
	return out, err
}

// ShortestPath returns a deterministic shortest connection path between two
// users.
func (e *Engine) ShortestPath(ctx context.Context, sourceID, targetID string) (domain.ConnectionPath, error) {
	start := time.Now()
	out, err := e.paths.Shortest(ctx, sourceID, targetID)
	e.observe("shortest_path", start, err)
	return out, err
}

// ConnectionCounts reports the direct and friend-of-friend candidate counts
// shown alongside friend recommendations.
func (e *Engine) ConnectionCounts(ctx context.Context, userID string) (domain.ConnectionCounts, error) {
	start := time.Now()
	out, err := e.mutual.Counts(ctx, userID)
	e.observe("connection_counts", start, err)
	return out, err
}

func (e *Engine) observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		e.collector.RecordError(operation, ErrorKind(err))
	}
	e.collector.RecordOperation(operation, status, time.Since(start))
}
