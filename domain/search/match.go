package search

import "sort"

// Ranking constants. The threshold is strict: a score equal to it is
// excluded.
const (
	// SimilarityThreshold is the minimum similarity for a result to surface.
	SimilarityThreshold = 0.3

	// TopK is the maximum number of ranked results returned per search.
	TopK = 20
)

// Match pairs a project ID with its similarity score against a query.
type Match struct {
	projectID  int64
	similarity float64
}

// NewMatch creates a new Match.
func NewMatch(projectID int64, similarity float64) Match {
	return Match{projectID: projectID, similarity: similarity}
}

// ProjectID returns the matched project's identifier.
func (m Match) ProjectID() int64 { return m.projectID }

// Similarity returns the similarity score.
func (m Match) Similarity() float64 { return m.similarity }

// Rank filters matches by the strict threshold, sorts by similarity
// descending with project ID ascending as the tie-break, and truncates to k.
func Rank(matches []Match, threshold float64, k int) []Match {
	kept := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.similarity > threshold {
			kept = append(kept, m)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].similarity != kept[j].similarity {
			return kept[i].similarity > kept[j].similarity
		}
		return kept[i].projectID < kept[j].projectID
	})

	if k > 0 && len(kept) > k {
		kept = kept[:k]
	}
	return kept
}
