// Package mcpserver exposes the chat pipeline as MCP tools.
package mcpserver

import (
	"context"
	"net/http"

	"github.com/akolanti/portfolio/internal/rag"
	"github.com/akolanti/portfolio/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	Name    = "portfolio"
	Version = "1.0.0"

	// ClientID is the rate limit identity shared by every MCP caller.
	ClientID = "mcp"
)

type Server struct {
	chat   rag.Service
	server *mcp.Server
	logger *logger_i.Logger
}

func NewServer(chat rag.Service) *Server {
	s := &Server{
		chat:   chat,
		server: mcp.NewServer(&mcp.Implementation{Name: Name, Version: Version}, nil),
		logger: logger_i.NewLogger("mcp"),
	}
	s.registerTools()
	return s
}

// Handler serves the tools over streamable HTTP.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// Run serves the tools over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Serving MCP over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
