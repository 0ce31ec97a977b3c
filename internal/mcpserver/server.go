// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes portfolio content to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/pages"
	"github.com/starford/folio/internal/portfolio"
)

const schemaURI = "folio://content-schema"

// Server wraps the MCP server with Folio tools.
type Server struct {
	mcp  *server.MCPServer
	site *portfolio.Service
}

// New creates a new MCP server with all Folio tools registered.
func New(site *portfolio.Service, version string) *Server {
	s := &Server{site: site}

	s.mcp = server.NewMCPServer(
		"Folio",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_experience",
		mcp.WithDescription("List every career entry, newest start date first. Entries without a start date come last."),
	), s.listExperience)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List every showcase project in display order, with the tech stack split into a list."),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Get one project by id, including architecture details and design decisions."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Project id")),
	), s.getProject)

	s.mcp.AddTool(mcp.NewTool("search_content",
		mcp.WithDescription("Full-text search through experience and project titles, descriptions and tech stacks."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), s.searchContent)

	s.mcp.AddTool(mcp.NewTool("get_content_schema",
		mcp.WithDescription("Returns the format of the experience and projects documents. "+
			"Read it before proposing edits to the content files."),
	), s.getContentSchema)

	// Resource: content document schema.
	s.mcp.AddResource(
		mcp.NewResource(schemaURI, "Content Schema",
			mcp.WithResourceDescription("Format of the experience and projects collection documents."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readSchemaResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listExperience(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exp, err := s.site.Facade().Experience(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(pages.SortExperiences(exp))
}

func (s *Server) listProjects(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.site.Facade().Projects(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	views := make([]pages.ProjectView, len(projects))
	for i, p := range projects {
		views[i] = pages.ProjectView{Project: p, Tech: p.TechList()}
	}
	return jsonResult(views)
}

func (s *Server) getProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.site.Facade().Project(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(pages.ProjectView{Project: p, Tech: p.TechList()})
}

func (s *Server) searchContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.site.Search(ctx, query, req.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

func (s *Server) getContentSchema(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ContentSchema), nil
}

func (s *Server) readSchemaResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      schemaURI,
			MIMEType: "text/markdown",
			Text:     ContentSchema,
		},
	}, nil
}
