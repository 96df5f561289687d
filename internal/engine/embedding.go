package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/smehra/proconnect/internal/domain"
	"github.com/smehra/proconnect/internal/graph"
	"github.com/smehra/proconnect/internal/vectormath"
)

// EmbeddingRanker recommends jobs by cosine similarity between the user's
// embedding and every job embedding. The projection of raw features into the
// shared embedding space happens upstream; this ranker only compares.
type EmbeddingRanker struct {
	accessor graph.Accessor
}

// NewEmbeddingRanker constructs an EmbeddingRanker over the given accessor.
func NewEmbeddingRanker(accessor graph.Accessor) *EmbeddingRanker {
	return &EmbeddingRanker{accessor: accessor}
}

// Rank returns job matches at or above minSimilarity, ordered by descending
// similarity with ties broken by ascending job ID. Candidates strictly below
// the threshold are excluded, not ranked low.
func (r *EmbeddingRanker) Rank(ctx context.Context, userID string, limit int, minSimilarity float64) ([]domain.JobMatch, error) {
	embedding, err := r.accessor.EmbeddingVector(ctx, userID)
	if err != nil {
		return nil, notFound(userID, err)
	}
	if embedding == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrEmbeddingMissing)
	}

	jobs, err := r.accessor.ListJobs(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.JobMatch, 0, len(jobs))
	for _, job := range jobs {
		if err := checkDeadline(ctx); err != nil {
			return nil, err
		}
		if job.Embedding == nil {
			continue
		}

		score, err := vectormath.Cosine(embedding, job.Embedding)
		if err != nil {
			return nil, fmt.Errorf("score job %s for %s: %w", job.ID, userID, err)
		}
		if score < minSimilarity {
			continue
		}

		matches = append(matches, domain.JobMatch{
			JobID:            job.ID,
			Title:            job.Title,
			Company:          job.Company,
			Location:         job.Location,
			PostingURL:       job.PostingURL,
			NormalizedSalary: job.NormalizedSalary,
			Score:            score,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].JobID < matches[j].JobID
	})

	return truncate(matches, limit), nil
}
