package dto

import "github.com/foliolabs/folio/application/service"

// SearchRequest is the search request body.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse is the search response: the narrative analysis (or an
// advisory), the ranked projects, and the per-project similarity scores.
type SearchResponse struct {
	Success          bool              `json:"success"`
	Analysis         string            `json:"analysis"`
	Projects         []ProjectResponse `json:"projects"`
	Count            int               `json:"count"`
	SimilarityScores map[int64]float64 `json:"similarityScores"`
}

// SearchFromService converts a service search response to its API shape.
func SearchFromService(resp service.SearchResponse) SearchResponse {
	projects := make([]ProjectResponse, len(resp.Results))
	scores := make(map[int64]float64, len(resp.Results))

	for i, r := range resp.Results {
		projects[i] = ProjectFromDomain(r.Project)
		scores[r.Project.ID()] = r.Similarity
	}

	return SearchResponse{
		Success:          true,
		Analysis:         resp.Analysis,
		Projects:         projects,
		Count:            len(projects),
		SimilarityScores: scores,
	}
}
