package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/foliolabs/folio/application/service"
	"github.com/foliolabs/folio/domain/project"
)

type fakeSearcher struct {
	resp service.SearchResponse
	err  error
}

func (f *fakeSearcher) Query(_ context.Context, _ string) (service.SearchResponse, error) {
	return f.resp, f.err
}

type fakeLookup struct {
	p   project.Project
	err error
}

func (f *fakeLookup) Get(_ context.Context, _ int64) (project.Project, error) {
	return f.p, f.err
}

func testProject() project.Project {
	return project.New(project.Params{
		ID:               7,
		Title:            "Dental Clinic Site",
		ClientName:       "Acme Dental",
		Category:         "Healthcare",
		ShortDescription: "Booking site",
		Platform:         "Wix Studio",
		StartDate:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Features:         []string{"Online Booking"},
	})
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("len(content) = %v, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestHandleSearch(t *testing.T) {
	searcher := &fakeSearcher{resp: service.SearchResponse{
		Analysis: "## Analysis\nGood fit.",
		Results: []service.SearchResult{
			{Project: testProject(), Similarity: 0.91},
		},
	}}
	s := NewServer(searcher, &fakeLookup{}, slog.New(slog.DiscardHandler))

	result, err := s.handleSearch(context.Background(), toolRequest("search_projects", map[string]any{"query": "dental site"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", resultText(t, result))
	}

	var payload struct {
		Analysis string `json:"analysis"`
		Projects []struct {
			ID    int64   `json:"id"`
			Title string  `json:"title"`
			Score float64 `json:"score"`
		} `json:"projects"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}

	if payload.Analysis != "## Analysis\nGood fit." {
		t.Errorf("analysis = %q", payload.Analysis)
	}
	if len(payload.Projects) != 1 {
		t.Fatalf("len(projects) = %v, want 1", len(payload.Projects))
	}
	if payload.Projects[0].ID != 7 || payload.Projects[0].Title != "Dental Clinic Site" {
		t.Errorf("project = %+v", payload.Projects[0])
	}
	if payload.Projects[0].Score != 0.91 {
		t.Errorf("score = %v, want 0.91", payload.Projects[0].Score)
	}
}

func TestHandleSearch_MissingQuery(t *testing.T) {
	s := NewServer(&fakeSearcher{}, &fakeLookup{}, slog.New(slog.DiscardHandler))

	result, err := s.handleSearch(context.Background(), toolRequest("search_projects", map[string]any{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error for a missing query")
	}
}

func TestHandleSearch_ServiceFailure(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("provider down")}
	s := NewServer(searcher, &fakeLookup{}, slog.New(slog.DiscardHandler))

	result, err := s.handleSearch(context.Background(), toolRequest("search_projects", map[string]any{"query": "x"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error when the search service fails")
	}
}

func TestHandleGetProject(t *testing.T) {
	s := NewServer(&fakeSearcher{}, &fakeLookup{p: testProject()}, slog.New(slog.DiscardHandler))

	result, err := s.handleGetProject(context.Background(), toolRequest("get_project", map[string]any{"id": "7"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", resultText(t, result))
	}

	var payload struct {
		ID       int64  `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if payload.ID != 7 || payload.Category != "Healthcare" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestHandleGetProject_InvalidID(t *testing.T) {
	s := NewServer(&fakeSearcher{}, &fakeLookup{}, slog.New(slog.DiscardHandler))

	result, err := s.handleGetProject(context.Background(), toolRequest("get_project", map[string]any{"id": "seven"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error for a non-numeric id")
	}
}

func TestHandleGetProject_NotFound(t *testing.T) {
	s := NewServer(&fakeSearcher{}, &fakeLookup{err: errors.New("not found")}, slog.New(slog.DiscardHandler))

	result, err := s.handleGetProject(context.Background(), toolRequest("get_project", map[string]any{"id": "42"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error when the project is missing")
	}
}
