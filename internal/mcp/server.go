// Package mcp exposes the research backend to MCP hosts: the tools reuse
// the CLI's stored session and backend client, so an agent can browse
// projects and run searches the same way a user would.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/litscout/litscout/internal/api"
	"github.com/litscout/litscout/internal/history"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server around the backend client.
type Server struct {
	client  *api.Client
	history *history.Store
	mcp     *server.MCPServer
}

// NewServer creates the MCP server. The history store may be nil; search
// runs are then simply not recorded.
func NewServer(client *api.Client, historyStore *history.Store) *Server {
	s := &Server{client: client, history: historyStore}

	s.mcp = server.NewMCPServer(
		"litscout",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(listProjectsTool, s.handleListProjects)
	s.mcp.AddTool(listFilesTool, s.handleListFiles)
	s.mcp.AddTool(searchArticlesTool, s.handleSearchArticles)
	s.mcp.AddTool(commonWordsTool, s.handleCommonWords)
}

// Serve starts the MCP server on stdio. Stdout carries protocol messages;
// all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
