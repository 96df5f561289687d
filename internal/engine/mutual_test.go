package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smehra/proconnect/internal/domain"
	"github.com/smehra/proconnect/internal/graph"
)

// buildMutualGraph wires u1-{u2,u3}, u2-{u4,u5}, u3-{u4,u6}: from u1's view,
// u4 is reachable through two shared connections, u5 and u6 through one each.
func buildMutualGraph() *graph.MemoryAccessor {
	acc := graph.NewMemoryAccessor()
	for _, id := range []string{"u1", "u2", "u3", "u4", "u5", "u6"} {
		acc.AddUser(id, "", nil, nil)
	}
	acc.Connect("u1", "u2")
	acc.Connect("u1", "u3")
	acc.Connect("u2", "u4")
	acc.Connect("u2", "u5")
	acc.Connect("u3", "u4")
	acc.Connect("u3", "u6")
	return acc
}

func TestMutualRankerOrdering(t *testing.T) {
	ranker := NewMutualRanker(buildMutualGraph())

	got, err := ranker.Rank(context.Background(), "u1", 0)
	require.NoError(t, err)

	want := []domain.FriendSuggestion{
		{UserID: "u4", Mutuals: 2},
		{UserID: "u5", Mutuals: 1},
		{UserID: "u6", Mutuals: 1},
	}
	assert.Equal(t, want, got, "descending mutual count, ties ascending by ID")
}

func TestMutualRankerNeverSuggestsSelfOrExistingConnections(t *testing.T) {
	ranker := NewMutualRanker(buildMutualGraph())

	got, err := ranker.Rank(context.Background(), "u1", 0)
	require.NoError(t, err)

	for _, s := range got {
		assert.NotEqual(t, "u1", s.UserID)
		assert.NotContains(t, []string{"u2", "u3"}, s.UserID)
	}
}

func TestMutualRankerLimit(t *testing.T) {
	ranker := NewMutualRanker(buildMutualGraph())

	got, err := ranker.Rank(context.Background(), "u1", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u4", got[0].UserID)
}

func TestMutualRankerUnknownUser(t *testing.T) {
	ranker := NewMutualRanker(buildMutualGraph())

	_, err := ranker.Rank(context.Background(), "ghost", 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMutualRankerIsolatedUser(t *testing.T) {
	acc := graph.NewMemoryAccessor()
	acc.AddUser("loner", "", nil, nil)
	ranker := NewMutualRanker(acc)

	got, err := ranker.Rank(context.Background(), "loner", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMutualRankerCounts(t *testing.T) {
	ranker := NewMutualRanker(buildMutualGraph())

	counts, err := ranker.Counts(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionCounts{Direct: 2, FriendsOfFriends: 3}, counts)
}
