// Package v1 provides the v1 API routes.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/foliolabs/folio/application/service"
	"github.com/foliolabs/folio/infrastructure/api"
	"github.com/foliolabs/folio/infrastructure/api/middleware"
	"github.com/foliolabs/folio/infrastructure/api/v1/dto"
)

// ProjectsRouter handles project API endpoints.
type ProjectsRouter struct {
	projects *service.Project
	logger   *slog.Logger
}

// NewProjectsRouter creates a new ProjectsRouter.
func NewProjectsRouter(projects *service.Project, logger *slog.Logger) *ProjectsRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectsRouter{projects: projects, logger: logger}
}

// Routes returns the chi router for project endpoints.
func (rt *ProjectsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", rt.List)
	router.Post("/", rt.Create)
	router.Get("/{id}", rt.Get)
	router.Put("/{id}", rt.Update)
	router.Delete("/{id}", rt.Delete)

	return router
}

// List handles GET /api/v1/projects.
func (rt *ProjectsRouter) List(w http.ResponseWriter, req *http.Request) {
	projects, err := rt.projects.List(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	middleware.WriteData(w, http.StatusOK, dto.ProjectsFromDomain(projects))
}

// Get handles GET /api/v1/projects/{id}.
func (rt *ProjectsRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := projectID(req)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	p, err := rt.projects.Get(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	middleware.WriteData(w, http.StatusOK, dto.ProjectFromDomain(p))
}

// Create handles POST /api/v1/projects.
func (rt *ProjectsRouter) Create(w http.ResponseWriter, req *http.Request) {
	var body dto.ProjectRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, api.NewAPIError(http.StatusBadRequest, "invalid request body", err), rt.logger)
		return
	}

	p, err := body.ToDomain(0)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	saved, err := rt.projects.Create(req.Context(), p)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	middleware.WriteData(w, http.StatusCreated, dto.ProjectFromDomain(saved))
}

// Update handles PUT /api/v1/projects/{id}.
func (rt *ProjectsRouter) Update(w http.ResponseWriter, req *http.Request) {
	id, err := projectID(req)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	var body dto.ProjectRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, api.NewAPIError(http.StatusBadRequest, "invalid request body", err), rt.logger)
		return
	}

	p, err := body.ToDomain(id)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	saved, err := rt.projects.Update(req.Context(), p)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	middleware.WriteData(w, http.StatusOK, dto.ProjectFromDomain(saved))
}

// Delete handles DELETE /api/v1/projects/{id}.
func (rt *ProjectsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := projectID(req)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	if err := rt.projects.Delete(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	middleware.WriteData(w, http.StatusOK, map[string]any{"deleted": id})
}

// projectID parses the {id} URL parameter.
func projectID(req *http.Request) (int64, error) {
	raw := chi.URLParam(req, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, api.NewAPIError(http.StatusBadRequest, "invalid project id", err)
	}
	return id, nil
}
