package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/foliolabs/folio/domain/project"
	"github.com/foliolabs/folio/domain/search"
	"github.com/foliolabs/folio/infrastructure/provider"
)

// Advisory messages returned instead of a generated analysis when there is
// nothing to analyze. Both are valid terminal states, not errors.
const (
	AdvisoryNotIndexed = "No projects have been indexed for search yet. Please run the embedding generation script first."
	AdvisoryNoMatch    = "No matching projects found for your query. Try using different keywords or a more general description."
)

// FallbackAnalysis replaces the generated narrative when the completion
// provider fails. The ranked results are the primary value; the narrative
// degrades gracefully.
const FallbackAnalysis = "## Analysis\nUnable to generate AI analysis. Please review the matching projects below.\n\n## Matching Projects\nThe projects are sorted by relevance to your query."

const analysisSystemPrompt = `You are a helpful assistant analyzing a freelancer's portfolio. The user will provide a client query or job post. Based on the matching projects found in the portfolio, provide a professional analysis to help the freelancer respond to the client.

Format your response as markdown with:

## Analysis
Brief analysis of what the client needs based on their query.

## Recommended Projects
For each relevant project (top 3-5), explain why it matches the client's requirements and how it demonstrates relevant experience.

## Summary
Overall assessment of how well the portfolio matches the client's needs, and any suggestions for the freelancer when responding to this inquiry.`

// Completion parameters for the analysis request.
const (
	analysisTemperature = 0.7
	analysisMaxTokens   = 1500
)

// SearchResult pairs a project with its similarity score.
type SearchResult struct {
	Project    project.Project
	Similarity float64
}

// SearchResponse is the outcome of a search: the narrative analysis (or an
// advisory when the result set is empty) plus the ranked results.
type SearchResponse struct {
	Analysis string
	Results  []SearchResult
}

// Search orchestrates semantic search: query embedding, similarity ranking,
// and narrative generation.
type Search struct {
	projects  project.Store
	embedder  provider.Embedder
	generator provider.TextGenerator
	logger    *slog.Logger
}

// NewSearch creates a Search service. A nil embedder means no provider is
// configured and every query fails with ErrProviderNotConfigured. A nil
// generator skips narrative generation and uses the fallback analysis.
func NewSearch(projects project.Store, embedder provider.Embedder, generator provider.TextGenerator, logger *slog.Logger) *Search {
	return &Search{
		projects:  projects,
		embedder:  embedder,
		generator: generator,
		logger:    logger,
	}
}

// Query runs a semantic search over the indexed portfolio.
func (s *Search) Query(ctx context.Context, query string) (SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return SearchResponse{}, search.ErrInvalidQuery
	}

	if s.embedder == nil {
		return SearchResponse{}, search.ErrProviderNotConfigured
	}

	queryVector, err := s.embedQuery(ctx, query)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("%w: %w", search.ErrQueryEmbeddingFailed, err)
	}

	indexed, err := s.projects.FindIndexed(ctx)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("load indexed projects: %w", err)
	}

	if len(indexed) == 0 {
		return SearchResponse{Analysis: AdvisoryNotIndexed, Results: []SearchResult{}}, nil
	}

	ranked := s.rank(queryVector, indexed)
	if len(ranked) == 0 {
		return SearchResponse{Analysis: AdvisoryNoMatch, Results: []SearchResult{}}, nil
	}

	analysis := s.generateAnalysis(ctx, query, ranked)

	return SearchResponse{Analysis: analysis, Results: ranked}, nil
}

func (s *Search) embedQuery(ctx context.Context, query string) (search.Vector, error) {
	resp, err := s.embedder.Embed(ctx, provider.NewEmbeddingRequest([]string{query}))
	if err != nil {
		return nil, err
	}
	embeddings := resp.Embeddings()
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return search.Vector(embeddings[0]), nil
}

// rank scores every indexed project against the query vector, keeps scores
// strictly above the threshold, sorts descending with ascending project id
// as the tie-break, and truncates to the top-K.
func (s *Search) rank(queryVector search.Vector, projects []project.Project) []SearchResult {
	matches := make([]search.Match, 0, len(projects))
	byID := make(map[int64]project.Project, len(projects))

	for _, p := range projects {
		byID[p.ID()] = p

		similarity, err := search.CosineSimilarity(queryVector, p.Embedding())
		if err != nil {
			// Stale vector from an older embedding model; skip, keep searching.
			s.logger.Warn("skipping project with unusable embedding",
				slog.Int64("project_id", p.ID()),
				slog.String("error", err.Error()),
			)
			continue
		}

		matches = append(matches, search.NewMatch(p.ID(), similarity))
	}

	top := search.Rank(matches, search.SimilarityThreshold, search.TopK)

	results := make([]SearchResult, len(top))
	for i, m := range top {
		results[i] = SearchResult{
			Project:    byID[m.ProjectID()],
			Similarity: m.Similarity(),
		}
	}
	return results
}

// generateAnalysis asks the completion provider for a narrative over the
// ranked results, substituting the fixed fallback on any failure.
func (s *Search) generateAnalysis(ctx context.Context, query string, results []SearchResult) string {
	if s.generator == nil {
		return FallbackAnalysis
	}

	req := provider.NewChatCompletionRequest([]provider.Message{
		provider.SystemMessage(analysisSystemPrompt),
		provider.UserMessage(fmt.Sprintf("Client Query/Job Post:\n\"%s\"\n\nMatching Projects from Portfolio:\n%s",
			query, contextBlock(results))),
	}).WithTemperature(analysisTemperature).WithMaxTokens(analysisMaxTokens)

	resp, err := s.generator.ChatCompletion(ctx, req)
	if err != nil {
		s.logger.Warn("analysis generation failed, using fallback",
			slog.String("error", err.Error()),
		)
		return FallbackAnalysis
	}

	content := resp.Content()
	if strings.TrimSpace(content) == "" {
		return FallbackAnalysis
	}
	return content
}

// contextBlock renders the ranked results as the numbered context the
// completion prompt embeds.
func contextBlock(results []SearchResult) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		p := r.Project

		budget := "N/A"
		if b := p.Budget(); b != nil {
			budget = formatBudget(*b)
		}

		blocks[i] = fmt.Sprintf(`%d. **%s** (%d%% match)
   - Category: %s
   - Platform: %s
   - Description: %s
   - Features: %s
   - Budget: $%s`,
			i+1,
			p.Title(),
			int(math.Round(r.Similarity*100)),
			p.Category(),
			p.Platform(),
			p.ShortDescription(),
			strings.Join(p.Features(), ", "),
			budget,
		)
	}
	return strings.Join(blocks, "\n\n")
}

// formatBudget renders a budget without trailing zeros for whole amounts.
func formatBudget(b float64) string {
	if b == math.Trunc(b) {
		return fmt.Sprintf("%.0f", b)
	}
	return fmt.Sprintf("%.2f", b)
}
