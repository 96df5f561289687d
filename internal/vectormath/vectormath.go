// Package vectormath implements the numeric primitives used by the
// recommendation rankers: dot product, Euclidean norm, cosine similarity and
// Pearson correlation over float64 vectors.
package vectormath

import (
	"errors"
	"math"
)

// ErrDimensionMismatch indicates two vectors of different lengths were
// compared. This always signals corrupt upstream data and is never retried.
var ErrDimensionMismatch = errors.New("vector dimensions do not match")

// ErrUndefined indicates a Pearson correlation is mathematically undefined
// because at least one input has zero variance. Callers exclude the pair
// rather than treating it as uncorrelated.
var ErrUndefined = errors.New("correlation undefined for zero-variance input")

// Dot returns the dot product of two equal-length vectors. Callers are
// expected to have validated lengths.
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the Euclidean (L2) norm of v.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b in [-1, 1]. A zero vector
// carries no directional signal, so either norm being zero yields 0 rather
// than an error.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	normA := Norm(a)
	normB := Norm(b)
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return clampUnit(Dot(a, b) / (normA * normB)), nil
}

// Pearson returns the Pearson correlation coefficient of a and b in [-1, 1].
// Zero-variance input makes the coefficient undefined and returns
// ErrUndefined.
func Pearson(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	n := len(a)
	if n == 0 {
		return 0, ErrUndefined
	}

	var meanA, meanB float64
	for i := 0; i < n; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	var cov, varA, varB float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0, ErrUndefined
	}

	return clampUnit(cov / math.Sqrt(varA*varB)), nil
}

// ProjectToDim maps a raw feature vector into a dense vector of length dim:
// L2-normalize to remove scale, then truncate or zero-pad. Used to place
// feature-only users into the job embedding space.
func ProjectToDim(v []float64, dim int) []float64 {
	if dim <= 0 {
		return nil
	}

	out := make([]float64, dim)
	if len(v) == 0 {
		return out
	}

	norm := Norm(v)
	for i := 0; i < len(v) && i < dim; i++ {
		if norm > 0 {
			out[i] = v[i] / norm
		} else {
			out[i] = v[i]
		}
	}
	return out
}

// clampUnit guards against floating-point drift pushing a coefficient
// marginally outside [-1, 1].
func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
