package service

import (
	"context"
	"fmt"
)

// IndexHandler executes project index tasks from the queue.
type IndexHandler struct {
	indexer *Indexer
}

// NewIndexHandler creates an IndexHandler.
func NewIndexHandler(indexer *Indexer) IndexHandler {
	return IndexHandler{indexer: indexer}
}

// Execute reindexes the project named in the payload.
func (h IndexHandler) Execute(ctx context.Context, payload map[string]any) error {
	id := projectIDFrom(payload)
	if id == 0 {
		return fmt.Errorf("index task missing project_id: %v", payload)
	}
	return h.indexer.Reindex(ctx, id)
}

// ReindexAllHandler executes batch reindex tasks from the queue.
type ReindexAllHandler struct {
	indexer *Indexer
}

// NewReindexAllHandler creates a ReindexAllHandler.
func NewReindexAllHandler(indexer *Indexer) ReindexAllHandler {
	return ReindexAllHandler{indexer: indexer}
}

// Execute walks every project and reindexes each one.
func (h ReindexAllHandler) Execute(ctx context.Context, _ map[string]any) error {
	_, err := h.indexer.ReindexAll(ctx)
	return err
}

// projectIDFrom extracts the project_id payload value. JSON round-trips
// integers as float64.
func projectIDFrom(payload map[string]any) int64 {
	switch v := payload["project_id"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
