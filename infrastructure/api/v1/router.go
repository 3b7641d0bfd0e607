package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foliolabs/folio/application/service"
	"github.com/foliolabs/folio/infrastructure/api/middleware"
	"github.com/foliolabs/folio/infrastructure/filestore"
)

// Dependencies carries the services the v1 router mounts.
type Dependencies struct {
	Projects   *service.Project
	Taxonomies *service.Taxonomy
	Search     *service.Search
	Queue      *service.Queue
	Files      filestore.Store
	APIKeys    []string
	Logger     *slog.Logger
}

// NewRouter assembles the /api/v1 router.
func NewRouter(deps Dependencies) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.APIKeyAuth(deps.APIKeys))

	router.Mount("/projects", NewProjectsRouter(deps.Projects, logger).Routes())
	router.Mount("/taxonomies", NewTaxonomiesRouter(deps.Taxonomies, logger).Routes())
	router.Mount("/search", NewSearchRouter(deps.Search, logger).Routes())
	router.Mount("/queue", NewQueueRouter(deps.Queue, logger).Routes())
	router.Mount("/uploads", NewUploadsRouter(deps.Files, logger).Routes())

	return router
}

// Health handles GET /healthz.
func Health(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
