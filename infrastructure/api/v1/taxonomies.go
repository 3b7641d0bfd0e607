package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foliolabs/folio/application/service"
	"github.com/foliolabs/folio/domain/taxonomy"
	"github.com/foliolabs/folio/infrastructure/api"
	"github.com/foliolabs/folio/infrastructure/api/middleware"
	"github.com/foliolabs/folio/infrastructure/api/v1/dto"
)

// TaxonomiesRouter handles taxonomy API endpoints. Every kind gets a list
// endpoint; the select-list kinds also support create.
type TaxonomiesRouter struct {
	taxonomies *service.Taxonomy
	logger     *slog.Logger
}

// NewTaxonomiesRouter creates a new TaxonomiesRouter.
func NewTaxonomiesRouter(taxonomies *service.Taxonomy, logger *slog.Logger) *TaxonomiesRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaxonomiesRouter{taxonomies: taxonomies, logger: logger}
}

// Routes returns the chi router for taxonomy endpoints.
func (rt *TaxonomiesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{kind}", rt.List)
	router.Post("/{kind}", rt.Create)

	return router
}

// List handles GET /api/v1/taxonomies/{kind}.
func (rt *TaxonomiesRouter) List(w http.ResponseWriter, req *http.Request) {
	kind, err := taxonomy.ParseKind(chi.URLParam(req, "kind"))
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	terms, err := rt.taxonomies.List(req.Context(), kind)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	middleware.WriteData(w, http.StatusOK, dto.TermsFromDomain(terms))
}

// Create handles POST /api/v1/taxonomies/{kind}.
func (rt *TaxonomiesRouter) Create(w http.ResponseWriter, req *http.Request) {
	kind, err := taxonomy.ParseKind(chi.URLParam(req, "kind"))
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	var body dto.CreateTermRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, api.NewAPIError(http.StatusBadRequest, "invalid request body", err), rt.logger)
		return
	}

	term, err := rt.taxonomies.Create(req.Context(), kind, body.Name)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	middleware.WriteData(w, http.StatusCreated, dto.TermFromDomain(term))
}
