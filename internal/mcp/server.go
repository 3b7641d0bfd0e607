// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/foliolabs/folio/application/service"
	"github.com/foliolabs/folio/domain/project"
)

// Searcher runs semantic searches for MCP tools.
type Searcher interface {
	Query(ctx context.Context, query string) (service.SearchResponse, error)
}

// ProjectLookup retrieves projects by id for MCP tools.
type ProjectLookup interface {
	Get(ctx context.Context, id int64) (project.Project, error)
}

// Server wraps the MCP server with folio-specific tools.
type Server struct {
	mcpServer *server.MCPServer
	search    Searcher
	projects  ProjectLookup
	logger    *slog.Logger
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(search Searcher, projects ProjectLookup, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		search:   search,
		projects: projects,
		logger:   logger,
	}

	mcpServer := server.NewMCPServer(
		"folio",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

// registerTools registers all folio tools with the MCP server.
func (s *Server) registerTools(mcpServer *server.MCPServer) {
	searchTool := mcp.NewTool("search_projects",
		mcp.WithDescription("Search the portfolio for projects matching a client query or job post"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The client query or job post text"),
		),
	)

	mcpServer.AddTool(searchTool, s.handleSearch)

	getProjectTool := mcp.NewTool("get_project",
		mcp.WithDescription("Get a portfolio project by its ID"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The numeric project ID"),
		),
	)

	mcpServer.AddTool(getProjectTool, s.handleGetProject)
}

// projectSummary is the compact project shape MCP tools return.
type projectSummary struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Platform    string   `json:"platform"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Developers  []string `json:"developers"`
	Budget      *float64 `json:"budget"`
	Score       float64  `json:"score,omitempty"`
}

func summarize(p project.Project, score float64) projectSummary {
	return projectSummary{
		ID:          p.ID(),
		Title:       p.Title(),
		Category:    p.Category(),
		Platform:    p.Platform(),
		Status:      p.Status(),
		Description: p.ShortDescription(),
		Features:    p.Features(),
		Developers:  p.Developers(),
		Budget:      p.Budget(),
		Score:       score,
	}
}

// handleSearch handles the search_projects tool invocation.
func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil
	}

	resp, err := s.search.Query(ctx, query)
	if err != nil {
		s.logger.Error("search failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	type searchResult struct {
		Analysis string           `json:"analysis"`
		Projects []projectSummary `json:"projects"`
	}

	result := searchResult{
		Analysis: resp.Analysis,
		Projects: make([]projectSummary, len(resp.Results)),
	}
	for i, r := range resp.Results {
		result.Projects[i] = summarize(r.Project, r.Similarity)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// handleGetProject handles the get_project tool invocation.
func (s *Server) handleGetProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid id: %s", idStr)), nil
	}

	p, err := s.projects.Get(ctx, id)
	if err != nil {
		s.logger.Error("failed to get project", slog.String("id", idStr), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to get project: %v", err)), nil
	}

	jsonBytes, err := json.Marshal(summarize(p, 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// MCPServer returns the underlying MCP server for stdio serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
