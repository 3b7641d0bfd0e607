package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foliolabs/folio/application/service"
	"github.com/foliolabs/folio/infrastructure/api"
	"github.com/foliolabs/folio/infrastructure/api/middleware"
	"github.com/foliolabs/folio/infrastructure/api/v1/dto"
)

// SearchRouter handles the semantic search endpoint.
type SearchRouter struct {
	search *service.Search
	logger *slog.Logger
}

// NewSearchRouter creates a new SearchRouter.
func NewSearchRouter(search *service.Search, logger *slog.Logger) *SearchRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchRouter{search: search, logger: logger}
}

// Routes returns the chi router for search endpoints.
func (rt *SearchRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", rt.Search)

	return router
}

// Search handles POST /api/v1/search.
func (rt *SearchRouter) Search(w http.ResponseWriter, req *http.Request) {
	var body dto.SearchRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, api.NewAPIError(http.StatusBadRequest, "invalid request body", err), rt.logger)
		return
	}

	resp, err := rt.search.Query(req.Context(), body.Query)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SearchFromService(resp))
}
