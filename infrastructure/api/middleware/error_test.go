package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foliolabs/folio/domain/project"
	"github.com/foliolabs/folio/domain/search"
	"github.com/foliolabs/folio/domain/taxonomy"
	"github.com/foliolabs/folio/infrastructure/api"
	"github.com/foliolabs/folio/internal/database"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"api error", api.NewAPIError(http.StatusTeapot, "teapot", nil), http.StatusTeapot},
		{"authentication", api.NewAuthenticationError("bad key"), http.StatusUnauthorized},
		{"not found", database.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get project: %w", database.ErrNotFound), http.StatusNotFound},
		{"validation", project.ErrValidation, http.StatusBadRequest},
		{"empty term name", taxonomy.ErrEmptyName, http.StatusBadRequest},
		{"unknown kind", taxonomy.ErrUnknownKind, http.StatusBadRequest},
		{"invalid query", search.ErrInvalidQuery, http.StatusBadRequest},
		{"duplicate term", taxonomy.ErrDuplicate, http.StatusConflict},
		{"no provider", search.ErrProviderNotConfigured, http.StatusServiceUnavailable},
		{"embedding failed", search.ErrQueryEmbeddingFailed, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Errorf("statusFor(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestWriteError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/9", nil)

	WriteError(w, req, fmt.Errorf("get project: %w", database.ErrNotFound), nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %v, want %v", w.Code, http.StatusNotFound)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestWriteData_Envelope(t *testing.T) {
	w := httptest.NewRecorder()

	WriteData(w, http.StatusCreated, map[string]int{"id": 7})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %v, want %v", w.Code, http.StatusCreated)
	}

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Data["id"] != 7 {
		t.Errorf("data = %v", resp.Data)
	}
}
