package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smehra/proconnect/internal/domain"
	"github.com/smehra/proconnect/internal/graph"
)

type recordedOp struct {
	operation string
	status    string
}

// recorderCollector captures metrics calls for assertions.
type recorderCollector struct {
	mu         sync.Mutex
	operations []recordedOp
	errorKinds map[string]string
}

func newRecorderCollector() *recorderCollector {
	return &recorderCollector{errorKinds: make(map[string]string)}
}

func (r *recorderCollector) RecordOperation(operation, status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, recordedOp{operation, status})
}

func (r *recorderCollector) RecordError(operation, errorKind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorKinds[operation] = errorKind
}

func buildEngineGraph() *graph.MemoryAccessor {
	acc := graph.NewMemoryAccessor()
	acc.AddUser("u1", "Asha", []float64{1, 1, 0}, []float64{1, 0})
	acc.AddUser("u2", "Ben", []float64{1, 1, 0}, nil)
	acc.AddUser("u3", "Cleo", []float64{0.9, 1.1, 0}, nil)
	acc.Connect("u1", "u2")
	acc.Connect("u2", "u3")
	acc.AddJob(domain.Job{ID: "j1", Title: "Backend Engineer", Embedding: []float64{1, 0}})
	return acc
}

func TestEngineDelegatesAndRecordsMetrics(t *testing.T) {
	collector := newRecorderCollector()
	eng := New(buildEngineGraph(), collector)
	ctx := context.Background()

	friends, err := eng.RecommendFriends(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "u3", friends[0].UserID)

	people, err := eng.RecommendPeople(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "u3", people[0].UserID)

	jobs, err := eng.RecommendJobs(ctx, "u1", 10, 0.5)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "j1", jobs[0].JobID)

	path, err := eng.ShortestPath(ctx, "u1", "u3")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, path.UserIDs)

	counts, err := eng.ConnectionCounts(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionCounts{Direct: 1, FriendsOfFriends: 1}, counts)

	require.Len(t, collector.operations, 5)
	for _, op := range collector.operations {
		assert.Equal(t, "ok", op.status)
	}
}

// countingAccessor wraps an accessor and tallies DirectNeighbors calls.
type countingAccessor struct {
	graph.Accessor
	mu    sync.Mutex
	calls int
}

func (c *countingAccessor) DirectNeighbors(ctx context.Context, userID string) ([]string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.Accessor.DirectNeighbors(ctx, userID)
}

func TestFriendRecommendationsScansOnce(t *testing.T) {
	acc := &countingAccessor{Accessor: buildEngineGraph()}
	eng := New(acc, nil)

	friends, counts, err := eng.FriendRecommendations(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "u3", friends[0].UserID)
	assert.Equal(t, domain.ConnectionCounts{Direct: 1, FriendsOfFriends: 1}, counts)

	// One lookup for u1 plus one per direct neighbor; the counts must come
	// from the same traversal, not a second one.
	assert.Equal(t, 2, acc.calls)
}

func TestEnginePropagatesTypedFailures(t *testing.T) {
	collector := newRecorderCollector()
	eng := New(buildEngineGraph(), collector)
	ctx := context.Background()

	_, err := eng.RecommendFriends(ctx, "ghost", 10)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = eng.RecommendJobs(ctx, "u2", 10, 0)
	assert.ErrorIs(t, err, ErrEmbeddingMissing)

	_, err = eng.ShortestPath(ctx, "u1", "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.Equal(t, "not_found", collector.errorKinds["recommend_friends"])
	assert.Equal(t, "not_found", collector.errorKinds["recommend_jobs"])
	assert.Equal(t, "not_found", collector.errorKinds["shortest_path"])
}

func TestEngineSurfacesTimeout(t *testing.T) {
	collector := newRecorderCollector()
	eng := New(buildEngineGraph(), collector)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := eng.RecommendPeople(ctx, "u1", 10)
	assert.ErrorIs(t, err, ErrTimeout)

	_, err = eng.ShortestPath(ctx, "u1", "u3")
	assert.ErrorIs(t, err, ErrTimeout)

	_, err = eng.RecommendJobs(ctx, "u1", 10, 0)
	assert.ErrorIs(t, err, ErrTimeout)

	assert.Equal(t, "timeout", collector.errorKinds["recommend_people"])
	assert.Equal(t, "timeout", collector.errorKinds["shortest_path"])
	assert.Equal(t, "timeout", collector.errorKinds["recommend_jobs"])
}

func TestEngineIsSafeForConcurrentCalls(t *testing.T) {
	eng := New(buildEngineGraph(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := eng.RecommendPeople(ctx, "u1", 10)
			assert.NoError(t, err)
			_, err = eng.ShortestPath(ctx, "u1", "u3")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
