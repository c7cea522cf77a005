package mcpserver

import (
	"time"

	"github.com/solr-hybrid/searchgw/internal/queryplan"
	"github.com/solr-hybrid/searchgw/internal/response"
)

// toSearchRequest converts the wire-level SearchInput into the core's
// queryplan.SearchRequest.
func toSearchRequest(in SearchInput) *queryplan.SearchRequest {
	req := &queryplan.SearchRequest{
		Query:         in.Query,
		Start:         in.Start,
		NumResults:    in.NumResults,
		FilterQueries: in.FilterQueries,
		Strategy: queryplan.SearchStrategyOptions{
			Operator: queryplan.Operator(in.Strategy.Operator),
		},
	}

	if in.Sort != nil {
		req.Sort = &queryplan.Sort{
			SortType:  queryplan.SortType(in.Sort.SortType),
			SortField: in.Sort.SortField,
			SortOrder: queryplan.SortOrder(in.Sort.SortOrder),
		}
	}

	for _, f := range in.FacetRequests {
		req.FacetRequests = append(req.FacetRequests, toFacetRequest(f))
	}

	if in.Highlight != nil {
		req.Highlight = &queryplan.HighlightOptions{
			Fields:            in.Highlight.Fields,
			PreTag:            in.Highlight.PreTag,
			PostTag:           in.Highlight.PostTag,
			SnippetCount:      in.Highlight.SnippetCount,
			SnippetSize:       in.Highlight.SnippetSize,
			SemanticHighlight: in.Highlight.SemanticHighlight,
		}
	}

	if in.FieldList != nil {
		req.FieldList = &queryplan.FieldListRequest{
			InclusionFields: in.FieldList.InclusionFields,
			ExclusionFields: in.FieldList.ExclusionFields,
		}
	}

	for _, kv := range in.AdditionalParams {
		req.AdditionalParams = append(req.AdditionalParams, queryplan.KV{Key: kv.Key, Value: kv.Value})
	}

	for _, s := range in.Strategy.Strategies {
		req.Strategy.Strategies = append(req.Strategy.Strategies, toStrategy(s))
	}

	return req
}

func toFacetRequest(f FacetRequestInput) queryplan.FacetRequest {
	var out queryplan.FacetRequest
	if f.Field != nil {
		out.Field = &queryplan.FacetField{
			Field:   f.Field.Field,
			Limit:   f.Field.Limit,
			Missing: f.Field.Missing,
			Prefix:  f.Field.Prefix,
		}
	}
	if f.Range != nil {
		out.Range = &queryplan.FacetRange{
			Field:   f.Range.Field,
			Start:   f.Range.Start,
			End:     f.Range.End,
			Gap:     f.Range.Gap,
			HardEnd: f.Range.HardEnd,
			Other:   f.Range.Other,
		}
	}
	if f.Query != nil {
		out.Query = &queryplan.FacetQuery{RawQuery: f.Query.RawQuery}
	}
	return out
}

func toStrategy(s SearchStrategyInput) queryplan.SearchStrategy {
	out := queryplan.SearchStrategy{
		Type:  queryplan.StrategyType(s.Type),
		Boost: s.Boost,
	}
	if s.Keyword != nil {
		out.Keyword = &queryplan.KeywordOptions{
			QueryTextOverride:      s.Keyword.QueryTextOverride,
			OverrideFieldsToQuery:  s.Keyword.OverrideFieldsToQuery,
			KeywordLogicalOperator: queryplan.KeywordLogicalOperator(s.Keyword.KeywordLogicalOperator),
			BoostWithSemantic:      s.Keyword.BoostWithSemantic,
		}
	}
	if s.Semantic != nil {
		out.Semantic = &queryplan.SemanticOptions{
			TopK:         s.Semantic.TopK,
			VectorFields: s.Semantic.VectorFields,
			IncludeTags:  s.Semantic.IncludeTags,
			ExcludeTags:  s.Semantic.ExcludeTags,
		}
		if s.Semantic.Similarity != nil {
			sim := &queryplan.SimilarityOptions{
				MinReturn:   s.Semantic.Similarity.MinReturn,
				MinTraverse: s.Semantic.Similarity.MinTraverse,
			}
			for _, c := range s.Semantic.Similarity.PreFilter {
				sim.PreFilter = append(sim.PreFilter, queryplan.PreFilterClause{Field: c.Field, Value: c.Value})
			}
			out.Semantic.Similarity = sim
		}
	}
	return out
}

// toSearchOutput converts the core's response.SearchResponse into the
// wire-level SearchOutput.
func toSearchOutput(resp *response.SearchResponse) SearchOutput {
	out := SearchOutput{
		Facets:       make(map[string]FacetOutput, len(resp.Facets)),
		TotalResults: resp.TotalResults,
		QTime:        resp.QTime,
		TimeOfSearch: resp.TimeOfSearch.Format(time.RFC3339),
	}

	for _, r := range resp.Results {
		out.Results = append(out.Results, SearchResultOutput{
			ID:          r.ID,
			Fields:      r.Fields,
			Snippet:     r.Snippet,
			MatchedText: r.MatchedText,
		})
	}
	for name, f := range resp.Facets {
		out.Facets[name] = FacetOutput{Buckets: f.Buckets}
	}

	return out
}
