package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foliolabs/folio/application/service"
	"github.com/foliolabs/folio/infrastructure/api/middleware"
)

// QueueRouter exposes the pending background task queue for operators.
type QueueRouter struct {
	queue  *service.Queue
	logger *slog.Logger
}

// NewQueueRouter creates a new QueueRouter.
func NewQueueRouter(queue *service.Queue, logger *slog.Logger) *QueueRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueueRouter{queue: queue, logger: logger}
}

// Routes returns the chi router for queue endpoints.
func (rt *QueueRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", rt.List)

	return router
}

// taskResponse represents a pending task in API responses.
type taskResponse struct {
	ID        int64  `json:"id"`
	Operation string `json:"operation"`
	Priority  int    `json:"priority"`
	ProjectID int64  `json:"projectId,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// List handles GET /api/v1/queue.
func (rt *QueueRouter) List(w http.ResponseWriter, req *http.Request) {
	tasks, err := rt.queue.List(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = taskResponse{
			ID:        t.ID(),
			Operation: t.Operation().String(),
			Priority:  t.Priority(),
			ProjectID: t.ProjectID(),
			CreatedAt: t.CreatedAt().UTC().Format(time.RFC3339),
		}
	}

	middleware.WriteData(w, http.StatusOK, resp)
}
