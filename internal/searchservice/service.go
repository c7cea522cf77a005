// Package searchservice implements C11, the gateway's single RPC
// operation: Search(SearchRequest) -> SearchResponse. It orchestrates
// planning (C9), the outbound Solr call, and response mapping (C10),
// applying the §7 error-kind mapping at each boundary and performing no
// retries of its own.
package searchservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/solr-hybrid/searchgw/internal/config"
	"github.com/solr-hybrid/searchgw/internal/gwerrors"
	"github.com/solr-hybrid/searchgw/internal/queryplan"
	"github.com/solr-hybrid/searchgw/internal/response"
	"github.com/solr-hybrid/searchgw/internal/solrclient"
)

// Service is the gateway's entry point: Plan -> Select -> Map.
type Service struct {
	Config  *config.CollectionConfig
	Planner *queryplan.SolrQueryPlanner
	Solr    solrclient.Client
	Logger  *slog.Logger
}

// New builds a Service from its collaborators. A nil logger defaults to
// slog.Default().
func New(cfg *config.CollectionConfig, planner *queryplan.SolrQueryPlanner, solr solrclient.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Config: cfg, Planner: planner, Solr: solr, Logger: logger}
}

// Search implements C11. It honors ctx cancellation at both suspension
// points (embedding acquisition inside planning, and the Solr call) and
// never returns partial results: a failed Solr call fails the whole
// search (§5, §7).
func (s *Service) Search(ctx context.Context, req *queryplan.SearchRequest) (*response.SearchResponse, error) {
	requestID := uuid.NewString()
	logger := s.Logger.With(slog.String("requestID", requestID))
	start := time.Now()

	params, err := s.Planner.Plan(ctx, s.Config, req)
	if err != nil {
		logger.Warn("search planning failed", slog.String("error", err.Error()))
		return nil, err
	}

	qr, err := s.Solr.Select(ctx, s.Config.CollectionName, params)
	if err != nil {
		ge, ok := err.(*gwerrors.GatewayError)
		if !ok {
			ge = gwerrors.Unavailable(gwerrors.ErrCodeSolrUnavailable, "solr select failed", err)
		}
		logger.Warn("solr select failed", slog.String("error", ge.Error()))
		return nil, ge
	}

	fieldList := queryplan.ResolveFieldList(s.Config, req.FieldList, s.Logger)
	highlightRequested := req.Highlight != nil

	resp := response.Map(qr, fieldList, highlightRequested, s.Logger)
	logger.Info("search completed",
		slog.Int("totalResults", resp.TotalResults),
		slog.Int("qtime", resp.QTime),
		slog.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}
