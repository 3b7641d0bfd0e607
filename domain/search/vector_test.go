package search

import (
	"errors"
	"math"
	"testing"
)

func TestCosineSimilarity_Identical(t *testing.T) {
	v := Vector{0.5, 0.5, 0.5}

	got, err := CosineSimilarity(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-1.0) > 1e-10 {
		t.Errorf("expected similarity 1.0, got %f", got)
	}
}

func TestCosineSimilarity_Opposite(t *testing.T) {
	a := Vector{1, 0}
	b := Vector{-1, 0}

	got, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-(-1.0)) > 1e-10 {
		t.Errorf("expected similarity -1.0, got %f", got)
	}
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	a := Vector{1, 0}
	b := Vector{0, 1}

	got, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got) > 1e-10 {
		t.Errorf("expected similarity 0, got %f", got)
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := Vector{0.1, 0.8, 0.3}
	b := Vector{0.9, 0.2, 0.4}

	ab, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := CosineSimilarity(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(ab-ba) > 1e-10 {
		t.Errorf("expected symmetric similarity, got %f and %f", ab, ba)
	}
}

func TestCosineSimilarity_ZeroMagnitude(t *testing.T) {
	a := Vector{0, 0, 0}
	b := Vector{1, 2, 3}

	got, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("expected 0 for zero-magnitude vector, got %f", got)
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	a := Vector{1, 2}
	b := Vector{1, 2, 3}

	_, err := CosineSimilarity(a, b)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestRank_ThresholdIsStrict(t *testing.T) {
	matches := []Match{
		NewMatch(1, 0.31),
		NewMatch(2, 0.3),
		NewMatch(3, 0.29),
	}

	got := Rank(matches, SimilarityThreshold, TopK)

	if len(got) != 1 {
		t.Fatalf("expected 1 match above the threshold, got %d", len(got))
	}
	if got[0].ProjectID() != 1 {
		t.Errorf("expected project 1, got %d", got[0].ProjectID())
	}
}

func TestRank_SortsDescending(t *testing.T) {
	matches := []Match{
		NewMatch(1, 0.5),
		NewMatch(2, 0.9),
		NewMatch(3, 0.7),
	}

	got := Rank(matches, SimilarityThreshold, TopK)

	wantIDs := []int64{2, 3, 1}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d matches, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ProjectID() != id {
			t.Errorf("position %d: expected project %d, got %d", i, id, got[i].ProjectID())
		}
	}
}

func TestRank_TieBreaksByProjectID(t *testing.T) {
	matches := []Match{
		NewMatch(9, 0.8),
		NewMatch(3, 0.8),
		NewMatch(5, 0.8),
	}

	got := Rank(matches, SimilarityThreshold, TopK)

	wantIDs := []int64{3, 5, 9}
	for i, id := range wantIDs {
		if got[i].ProjectID() != id {
			t.Errorf("position %d: expected project %d, got %d", i, id, got[i].ProjectID())
		}
	}
}

func TestRank_TruncatesToTopK(t *testing.T) {
	matches := make([]Match, 25)
	for i := range matches {
		matches[i] = NewMatch(int64(i+1), 0.4+float64(i)*0.01)
	}

	got := Rank(matches, SimilarityThreshold, TopK)

	if len(got) != TopK {
		t.Fatalf("expected %d matches, got %d", TopK, len(got))
	}
	// Highest score is project 25 at 0.64.
	if got[0].ProjectID() != 25 {
		t.Errorf("expected project 25 first, got %d", got[0].ProjectID())
	}
}

func TestRank_Empty(t *testing.T) {
	got := Rank(nil, SimilarityThreshold, TopK)
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}
