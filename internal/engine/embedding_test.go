package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smehra/proconnect/internal/domain"
	"github.com/smehra/proconnect/internal/graph"
	"github.com/smehra/proconnect/internal/vectormath"
)

func buildJobGraph() *graph.MemoryAccessor {
	acc := graph.NewMemoryAccessor()
	acc.AddUser("u1", "Asha", nil, []float64{1, 0})
	acc.AddJob(domain.Job{ID: "j1", Title: "Backend Engineer", Embedding: []float64{1, 0}})
	acc.AddJob(domain.Job{ID: "j2", Title: "Data Engineer", Embedding: []float64{0.6, 0.8}})
	acc.AddJob(domain.Job{ID: "j3", Title: "Designer", Embedding: []float64{0, 1}})
	acc.AddJob(domain.Job{ID: "j4", Title: "Opposite", Embedding: []float64{-1, 0}})
	return acc
}

func TestEmbeddingRankerThresholdAndOrder(t *testing.T) {
	ranker := NewEmbeddingRanker(buildJobGraph())

	got, err := ranker.Rank(context.Background(), "u1", 0, 0.5)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "j1", got[0].JobID)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	assert.Equal(t, "j2", got[1].JobID)
	assert.InDelta(t, 0.6, got[1].Score, 1e-9)
}

func TestEmbeddingRankerThresholdMonotonicity(t *testing.T) {
	ranker := NewEmbeddingRanker(buildJobGraph())
	ctx := context.Background()

	loose, err := ranker.Rank(ctx, "u1", 0, 0.1)
	require.NoError(t, err)
	strict, err := ranker.Rank(ctx, "u1", 0, 0.9)
	require.NoError(t, err)

	looseIDs := make(map[string]struct{}, len(loose))
	for _, m := range loose {
		looseIDs[m.JobID] = struct{}{}
	}
	for _, m := range strict {
		_, ok := looseIDs[m.JobID]
		assert.True(t, ok, "raising the threshold must never add candidates")
	}
	assert.LessOrEqual(t, len(strict), len(loose))
}

func TestEmbeddingRankerDeterministicTies(t *testing.T) {
	acc := graph.NewMemoryAccessor()
	acc.AddUser("u1", "", nil, []float64{1, 0})
	acc.AddJob(domain.Job{ID: "jb", Embedding: []float64{2, 0}})
	acc.AddJob(domain.Job{ID: "ja", Embedding: []float64{3, 0}})

	ranker := NewEmbeddingRanker(acc)
	got, err := ranker.Rank(context.Background(), "u1", 0, 0)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "ja", got[0].JobID)
	assert.Equal(t, "jb", got[1].JobID)
}

func TestEmbeddingRankerLimit(t *testing.T) {
	ranker := NewEmbeddingRanker(buildJobGraph())

	got, err := ranker.Rank(context.Background(), "u1", 1, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "j1", got[0].JobID)
}

func TestEmbeddingRankerDistinguishesFailures(t *testing.T) {
	acc := graph.NewMemoryAccessor()
	acc.AddUser("features-only", "", []float64{1, 2}, nil)
	ranker := NewEmbeddingRanker(acc)
	ctx := context.Background()

	_, err := ranker.Rank(ctx, "ghost", 0, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = ranker.Rank(ctx, "features-only", 0, 0)
	assert.ErrorIs(t, err, ErrEmbeddingMissing)
	assert.NotErrorIs(t, err, ErrUserNotFound, "not embedded yet and unknown user are distinct causes")
}

func TestEmbeddingRankerDimensionMismatchAborts(t *testing.T) {
	acc := graph.NewMemoryAccessor()
	acc.AddUser("u1", "", nil, []float64{1, 0})
	acc.AddJob(domain.Job{ID: "corrupt", Embedding: []float64{1, 0, 0}})

	ranker := NewEmbeddingRanker(acc)
	_, err := ranker.Rank(context.Background(), "u1", 0, 0)
	assert.ErrorIs(t, err, vectormath.ErrDimensionMismatch)
}
