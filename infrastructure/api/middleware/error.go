// Package middleware provides HTTP middleware and response helpers.
package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/foliolabs/folio/domain/project"
	"github.com/foliolabs/folio/domain/search"
	"github.com/foliolabs/folio/domain/taxonomy"
	"github.com/foliolabs/folio/infrastructure/api"
	"github.com/foliolabs/folio/internal/database"
)

// ErrorResponse is the JSON envelope for failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// DataResponse is the JSON envelope for successful requests.
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// WriteError writes a JSON error response, mapping domain errors to HTTP
// status codes.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := statusFor(err)

	if logger != nil {
		logger.Error("request error",
			slog.String("request_id", chimiddleware.GetReqID(r.Context())),
			slog.Int("status", status),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	WriteJSON(w, status, ErrorResponse{Success: false, Error: err.Error()})
}

// statusFor maps an error to its HTTP status code.
func statusFor(err error) int {
	var apiErr *api.APIError
	var authErr *api.AuthenticationError

	switch {
	case errors.As(err, &apiErr):
		return apiErr.Code()
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, project.ErrValidation),
		errors.Is(err, taxonomy.ErrEmptyName),
		errors.Is(err, taxonomy.ErrUnknownKind),
		errors.Is(err, search.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, taxonomy.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, search.ErrProviderNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, search.ErrQueryEmbeddingFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteData writes a successful JSON response in the standard envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, DataResponse{Success: true, Data: data})
}
