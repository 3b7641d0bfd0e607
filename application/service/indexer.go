package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foliolabs/folio/domain/project"
	"github.com/foliolabs/folio/domain/search"
	"github.com/foliolabs/folio/domain/storage"
	"github.com/foliolabs/folio/infrastructure/provider"
	"github.com/foliolabs/folio/internal/config"
)

// Indexer recomputes the searchable text and embedding for projects.
// Indexing is best-effort: the project write that triggered it has already
// committed, so failures are logged by the caller and never surfaced to the
// user who created or updated the project.
type Indexer struct {
	projects project.Store
	embedder provider.Embedder
	delay    time.Duration
	logger   *slog.Logger
}

// NewIndexer creates a new Indexer. A nil embedder disables indexing:
// Reindex becomes a no-op rather than an error.
func NewIndexer(projects project.Store, embedder provider.Embedder, logger *slog.Logger) *Indexer {
	return &Indexer{
		projects: projects,
		embedder: embedder,
		delay:    config.DefaultReindexDelay,
		logger:   logger,
	}
}

// WithReindexDelay sets the pause between provider calls during ReindexAll.
func (ix *Indexer) WithReindexDelay(d time.Duration) *Indexer {
	ix.delay = d
	return ix
}

// Reindex recomputes and persists the searchable text and embedding for one
// project. No-op when no embedding provider is configured.
func (ix *Indexer) Reindex(ctx context.Context, projectID int64) error {
	if ix.embedder == nil {
		ix.logger.Debug("skipping reindex, no embedding provider configured",
			slog.Int64("project_id", projectID),
		)
		return nil
	}

	p, err := ix.projects.Get(ctx, storage.WithID(projectID))
	if err != nil {
		return fmt.Errorf("load project %d: %w", projectID, err)
	}

	return ix.reindexProject(ctx, p)
}

func (ix *Indexer) reindexProject(ctx context.Context, p project.Project) error {
	text := search.ComposeText(p.Document())

	resp, err := ix.embedder.Embed(ctx, provider.NewEmbeddingRequest([]string{text}))
	if err != nil {
		return fmt.Errorf("embed project %d: %w", p.ID(), err)
	}

	embeddings := resp.Embeddings()
	if len(embeddings) == 0 {
		return fmt.Errorf("embed project %d: empty response", p.ID())
	}

	if err := ix.projects.UpdateSearchFields(ctx, p.ID(), text, search.Vector(embeddings[0])); err != nil {
		return fmt.Errorf("persist search fields for project %d: %w", p.ID(), err)
	}

	ix.logger.Info("project indexed",
		slog.Int64("project_id", p.ID()),
		slog.Int("dimensions", len(embeddings[0])),
	)
	return nil
}

// ReindexSummary reports the outcome of a batch reindex.
type ReindexSummary struct {
	Total     int
	Succeeded int
	Failed    int
}

// ReindexAll recomputes search fields for every project. Per-project
// failures are logged and counted; the pass continues. A short pause
// between provider calls keeps the batch under rate limits.
func (ix *Indexer) ReindexAll(ctx context.Context) (ReindexSummary, error) {
	summary := ReindexSummary{}

	if ix.embedder == nil {
		ix.logger.Warn("reindex all skipped, no embedding provider configured")
		return summary, nil
	}

	projects, err := ix.projects.Find(ctx, storage.WithOrderAsc("id"))
	if err != nil {
		return summary, fmt.Errorf("load projects: %w", err)
	}
	summary.Total = len(projects)

	for i, p := range projects {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if err := ix.reindexProject(ctx, p); err != nil {
			summary.Failed++
			ix.logger.Warn("reindex failed",
				slog.Int64("project_id", p.ID()),
				slog.String("error", err.Error()),
			)
		} else {
			summary.Succeeded++
		}

		if i < len(projects)-1 && ix.delay > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(ix.delay):
			}
		}
	}

	ix.logger.Info("reindex all complete",
		slog.Int("total", summary.Total),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
	)
	return summary, nil
}
