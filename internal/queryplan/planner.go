package queryplan

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/solr-hybrid/searchgw/internal/config"
	"github.com/solr-hybrid/searchgw/internal/embedding"
	"github.com/solr-hybrid/searchgw/internal/gwerrors"
	"github.com/solr-hybrid/searchgw/internal/solrparam"
)

// SolrQueryPlanner is C9: it composes a SearchRequest into a single Solr
// parameter map (q plus its $var bindings, paging, fq, sort, facets,
// highlighting, fl, and passthrough params). Plan() is pure given its
// inputs: it does not call Solr and it does not hold state across calls.
type SolrQueryPlanner struct {
	Cache *embedding.Cache
}

// NewSolrQueryPlanner builds a planner backed by the given embedding cache.
func NewSolrQueryPlanner(cache *embedding.Cache) *SolrQueryPlanner {
	return &SolrQueryPlanner{Cache: cache}
}

// slotPlan is the precomputed, deterministic $var naming for one strategy,
// assigned sequentially over the strategy list before any fragment
// building starts (P6): naming must be a pure function of position, never
// of goroutine completion order.
type slotPlan struct {
	keywordVar   string // set when the strategy is KEYWORD
	semanticVar  string // set when the strategy is SEMANTIC (field suffixes appended inside FragmentSemantic)
	preFilterVar string // set when the strategy is SEMANTIC and needs a pre-filter slot
}

// Plan implements the ten-step algorithm of §4.9.
func (pl *SolrQueryPlanner) Plan(ctx context.Context, cfg *config.CollectionConfig, req *SearchRequest) (*solrparam.Params, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, gwerrors.InvalidArgument(gwerrors.ErrCodeEmptyQueryText, "query must not be empty")
	}

	strategies := NormalizeLegacyKeyword(req.Strategy.Strategies)
	if len(strategies) == 0 {
		return nil, gwerrors.InvalidArgument(gwerrors.ErrCodeEmptyStrategies, "strategy.strategies must not be empty")
	}

	// Step 1: assign every $var slot name sequentially, up front. This only
	// needs cfg (to resolve how many vector fields a semantic strategy
	// spans), never the embedding itself, so it is cheap and safe to do
	// before any concurrent work starts.
	plans := make([]slotPlan, len(strategies))
	preFilterCount := 0
	for i, s := range strategies {
		switch s.Type {
		case StrategyKeyword:
			plans[i].keywordVar = fmt.Sprintf("keywordQuery_%d", i+1)
		case StrategySemantic:
			plans[i].semanticVar = fmt.Sprintf("vectorQuery_%d", i+1)
			if NeedsPreFilterVar(s.Semantic) {
				preFilterCount++
				if preFilterCount == 1 {
					plans[i].preFilterVar = "knnPreFilter"
				} else {
					plans[i].preFilterVar = fmt.Sprintf("knnPreFilter_%d", preFilterCount)
				}
			}
		}
	}

	// Step 2: build each strategy's fragment concurrently; names are
	// already fixed, so completion order cannot affect the result.
	fragments := make([]string, len(strategies))
	bindings := make([]map[string]string, len(strategies))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		i, s := i, s
		g.Go(func() error {
			switch s.Type {
			case StrategyKeyword:
				frag, err := FragmentKeyword(cfg, s.Keyword, req.Query, plans[i].keywordVar)
				if err != nil {
					return err
				}
				fragments[i] = wrapBoost(frag.Fragment, s.Boost)
				bindings[i] = frag.Bindings
			case StrategySemantic:
				frag, err := FragmentSemantic(gctx, cfg, pl.Cache, s.Semantic, req.Query, s.Boost, i+1, plans[i].preFilterVar)
				if err != nil {
					return err
				}
				fragments[i] = frag.Fragment
				bindings[i] = frag.Bindings
			default:
				return gwerrors.Internal(fmt.Sprintf("strategy %d: unrecognized type %q", i, s.Type), nil)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := solrparam.New()

	// Step 3: compose q by joining strategy fragments with the request's
	// logical operator (or using the single fragment directly).
	q := fragments[0]
	if len(fragments) > 1 {
		joiner := " OR "
		if req.Strategy.Operator == OperatorAnd {
			joiner = " AND "
		}
		q = "(" + strings.Join(fragments, joiner) + ")"
	}
	p.Set("q", q)
	for _, b := range bindings {
		for k, v := range b {
			p.Set(k, v)
		}
	}

	// Step 4: paging.
	p.Set("start", strconv.Itoa(req.Start))
	rows := cfg.DefaultRows
	if req.NumResults != nil {
		rows = *req.NumResults
	}
	p.Set("rows", strconv.Itoa(rows))

	// Step 5: filter queries, in request order.
	for _, fq := range req.FilterQueries {
		p.Add("fq", fq)
	}

	// Step 6: sort.
	p.Set("sort", resolveSort(cfg, req.Sort))

	// Step 7: facets.
	if err := ApplyFacets(p, req.FacetRequests); err != nil {
		return nil, err
	}

	// Step 8: highlighting.
	ApplyHighlight(p, req.Highlight)

	// Step 9: field list.
	fl := ResolveFieldList(cfg, req.FieldList, nil)
	p.Set("fl", strings.Join(fl, ","))

	// Step 10: passthrough params, appended last. A key the planner already
	// set is never overridden, but its value is still appended as an
	// additional value where Solr allows multi-value params, rather than
	// silently dropped.
	for _, kv := range req.AdditionalParams {
		p.Add(kv.Key, kv.Value)
	}

	return p, nil
}

func resolveSort(cfg *config.CollectionConfig, s *Sort) string {
	if s == nil {
		return cfg.DefaultSort
	}
	order := "desc"
	if s.SortOrder == SortAsc {
		order = "asc"
	}
	if s.SortType == SortTypeField && s.SortField != "" {
		return fmt.Sprintf("%s %s", s.SortField, order)
	}
	return fmt.Sprintf("score %s", order)
}
