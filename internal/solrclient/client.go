// Package solrclient is the outbound collaborator that issues the select
// request SolrQueryPlanner built and maps the raw Solr response into a
// QueryResponse the response mapper (C10) can consume.
package solrclient

import (
	"context"
	"fmt"

	solr "github.com/stevenferrer/solr-go"

	"github.com/solr-hybrid/searchgw/internal/gwerrors"
	"github.com/solr-hybrid/searchgw/internal/solrparam"
)

// Client is the narrow interface searchservice depends on; HTTPClient is
// its only production implementation.
type Client interface {
	Select(ctx context.Context, collection string, params *solrparam.Params) (*QueryResponse, error)
}

// QueryResponse is the subset of a Solr select response the gateway cares
// about: result documents, any highlighting snippets, facet counts, and
// the bookkeeping fields response mapping needs.
type QueryResponse struct {
	Docs        []map[string]interface{}
	NumFound    int
	QTime       int
	Highlights  map[string]map[string][]string
	FacetFields map[string][]FacetCount
	FacetRanges map[string][]FacetCount
	FacetQueries map[string]int
}

// FacetCount is one bucket of a field or range facet.
type FacetCount struct {
	Value string
	Count int
}

// HTTPClient issues select requests against Solr's JSON Request API via
// github.com/stevenferrer/solr-go, carrying the gateway's already-built
// classic query parameters (q, fq, facet.*, ...) through its params
// passthrough rather than its structured query builder, since the
// gateway's local-params fragments (C3/C4) are assembled as plain Solr
// query syntax, not the JSON DSL this library otherwise targets.
type HTTPClient struct {
	inner *solr.JSONClient
}

// NewHTTPClient builds an HTTPClient talking to the Solr node at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{inner: solr.NewJSONClient(baseURL)}
}

// Select issues the select request for collection and maps the response.
func (c *HTTPClient) Select(ctx context.Context, collection string, params *solrparam.Params) (*QueryResponse, error) {
	query := solr.Query{Params: toParamsMap(params)}

	resp, err := c.inner.Query(ctx, collection, query)
	if err != nil {
		return nil, gwerrors.Unavailable(gwerrors.ErrCodeSolrUnavailable,
			fmt.Sprintf("solr select against collection %q failed", collection), err)
	}

	return mapResponse(resp), nil
}

// toParamsMap converts the ordered, multi-valued Params into the
// map[string]interface{} shape Solr's JSON Request API "params" block
// expects: single-valued keys collapse to a bare string, multi-valued keys
// stay as a string slice.
func toParamsMap(params *solrparam.Params) map[string]interface{} {
	out := make(map[string]interface{}, len(params.Keys()))
	for _, k := range params.Keys() {
		vs := params.Values(k)
		if len(vs) == 1 {
			out[k] = vs[0]
		} else {
			out[k] = vs
		}
	}
	return out
}
