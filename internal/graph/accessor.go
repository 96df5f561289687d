package graph

import (
	"context"
	"errors"

	"github.com/smehra/proconnect/internal/domain"
)

// Accessor is the read-only capability set the recommendation engine needs
// from the underlying property graph. Implementations must be snapshot
// consistent within a single engine call; no cross-call consistency is
// assumed.
type Accessor interface {
	// DirectNeighbors returns the IDs of users directly connected to userID.
	// Fails with ErrNotFound when the user has no graph presence.
	DirectNeighbors(ctx context.Context, userID string) ([]string, error)

	// FeatureVector returns the user's feature vector, or nil when the node
	// exists but carries no features. Fails with ErrNotFound when the user
	// is absent.
	FeatureVector(ctx context.Context, userID string) ([]float64, error)

	// EmbeddingVector returns the user's embedding vector, or nil when the
	// node exists but has not been embedded yet. Fails with ErrNotFound when
	// the user is absent.
	EmbeddingVector(ctx context.Context, userID string) ([]float64, error)

	// ListUsers returns every user node with whatever vectors it holds.
	ListUsers(ctx context.Context) ([]domain.UserVectors, error)

	// ListJobs returns every job node that carries an embedding.
	ListJobs(ctx context.Context) ([]domain.Job, error)

	// EdgeExists reports whether a KNOWS edge runs from userA to userB.
	EdgeExists(ctx context.Context, userA, userB string) (bool, error)
}

// Options configures a graph accessor implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")

// ErrNotFound indicates the referenced node is absent from the graph.
var ErrNotFound = errors.New("node not found in graph")
