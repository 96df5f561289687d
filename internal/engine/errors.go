package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/smehra/proconnect/internal/graph"
	"github.com/smehra/proconnect/internal/vectormath"
)

// Failure kinds surfaced by the engine. Callers match with errors.Is; the API
// layer maps each kind to its own response.
var (
	// ErrUserNotFound indicates the referenced user has no graph presence.
	ErrUserNotFound = errors.New("user not found")

	// ErrFeaturesMissing indicates the user exists but carries no feature
	// vector, so correlation ranking cannot run.
	ErrFeaturesMissing = errors.New("user has no feature vector")

	// ErrEmbeddingMissing indicates the user exists but has not been
	// embedded yet, distinct from an unknown user.
	ErrEmbeddingMissing = errors.New("user has no embedding vector")

	// ErrNoPath indicates the two users live in disconnected components. A
	// valid outcome, not a fault.
	ErrNoPath = errors.New("no connection path exists")

	// ErrTimeout indicates the caller's deadline expired mid-computation.
	// The engine never returns a partial result in its place.
	ErrTimeout = errors.New("deadline exceeded during computation")
)

// notFound translates the accessor's absence signal into the engine taxonomy.
func notFound(userID string, err error) error {
	if errors.Is(err, graph.ErrNotFound) {
		return fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}
	return err
}

// checkDeadline polls the context inside full scans so deadline expiry
// surfaces as ErrTimeout instead of a partial ranking.
func checkDeadline(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return err
	}
	return nil
}

// ErrorKind classifies an engine error for metrics labels.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrFeaturesMissing),
		errors.Is(err, ErrEmbeddingMissing):
		return "not_found"
	case errors.Is(err, ErrNoPath):
		return "no_path"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, vectormath.ErrDimensionMismatch):
		return "dimension_mismatch"
	default:
		return "internal"
	}
}
