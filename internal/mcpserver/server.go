package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/solr-hybrid/searchgw/internal/searchservice"
	"github.com/solr-hybrid/searchgw/pkg/version"
)

// Server bridges MCP clients to searchservice.Service's single Search
// operation.
type Server struct {
	mcp     *mcp.Server
	service *searchservice.Service
	logger  *slog.Logger
}

// NewServer builds a Server backed by service.
func NewServer(service *searchservice.Service, logger *slog.Logger) (*Server, error) {
	if service == nil {
		return nil, errors.New("search service is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{service: service, logger: logger}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "searchgw",
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// MCPServer returns the underlying SDK server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search",
		Description: "Runs a hybrid lexical + semantic search against the configured Solr collection and returns ranked, faceted, and optionally highlighted results.",
	}, s.handleSearch)
	s.logger.Debug("MCP tools registered", slog.Int("count", 1))
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	req := toSearchRequest(input)

	resp, err := s.service.Search(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, MapError(err)
	}

	return nil, toSearchOutput(resp), nil
}

// Serve starts the server with the given transport ("stdio" is the only
// one currently implemented by the SDK dependency this gateway uses).
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("starting MCP server", slog.String("transport", transport))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
			return err
		}
		s.logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio)", transport)
	}
}
