// Package search provides the embedding-based ranking core: vector
// similarity, searchable-text composition, and result ranking.
package search

import "math"

// Vector is an embedding vector of fixed, model-dependent length.
type Vector []float64

// IsZero returns true if the vector is empty.
func (v Vector) IsZero() bool { return len(v) == 0 }

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 (opposite) and 1 (identical), or 0 if either
// vector has zero magnitude. Vectors of different lengths are an error,
// not a zero result.
func CosineSimilarity(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dotProduct, magA, magB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return dotProduct / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}
