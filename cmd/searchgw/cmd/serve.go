package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/solr-hybrid/searchgw/internal/config"
	"github.com/solr-hybrid/searchgw/internal/embedding"
	"github.com/solr-hybrid/searchgw/internal/mcpserver"
	"github.com/solr-hybrid/searchgw/internal/queryplan"
	"github.com/solr-hybrid/searchgw/internal/searchservice"
	"github.com/solr-hybrid/searchgw/internal/solrclient"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the search gateway MCP server",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := slog.Default()

	embeddingClient := embedding.NewHTTPClient(
		cfg.EmbeddingService.Address,
		cfg.EmbeddingService.Timeout,
		cfg.EmbeddingService.MaxRetries,
	)
	cache := embedding.NewCache(embeddingClient, cfg.EmbeddingService.CacheSize)

	solr := solrclient.NewHTTPClient(cfg.Solr.URL)

	planner := queryplan.NewSolrQueryPlanner(cache)

	service := searchservice.New(&cfg.Collection, planner, solr, logger)

	server, err := mcpserver.NewServer(service, logger)
	if err != nil {
		return fmt.Errorf("building MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("searchgw serving",
		slog.String("collection", cfg.Collection.CollectionName),
		slog.String("solrURL", cfg.Solr.URL),
		slog.String("transport", cfg.Server.Transport),
	)

	return server.Serve(ctx, cfg.Server.Transport)
}
