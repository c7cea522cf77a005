package response

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/solr-hybrid/searchgw/internal/solrclient"
)

// Map implements C10. It never returns an error: a document without a
// non-empty string id is skipped and logged as a warning instead of
// failing the whole search.
func Map(qr *solrclient.QueryResponse, fieldList []string, highlightRequested bool, logger *slog.Logger) *SearchResponse {
	resp := &SearchResponse{
		Facets:       make(map[string]FacetResults),
		TotalResults: qr.NumFound,
		QTime:        qr.QTime,
		TimeOfSearch: time.Now(),
	}

	includeAll := fieldListIncludesAll(fieldList)
	inclusion := make(map[string]bool, len(fieldList))
	for _, f := range fieldList {
		inclusion[f] = true
	}

	for _, doc := range qr.Docs {
		result, ok := mapDoc(doc, includeAll, inclusion, qr.Highlights, highlightRequested)
		if !ok {
			if logger != nil {
				logger.Warn("skipping Solr document with no id field")
			}
			continue
		}
		resp.Results = append(resp.Results, result)
	}

	for field, buckets := range qr.FacetFields {
		resp.Facets[field] = FacetResults{Buckets: bucketsToMap(buckets)}
	}
	for field, buckets := range qr.FacetRanges {
		resp.Facets[field] = FacetResults{Buckets: bucketsToMap(buckets)}
	}
	for query, count := range qr.FacetQueries {
		resp.Facets[query] = FacetResults{Buckets: map[string]int{query: count}}
	}

	return resp
}

func mapDoc(doc map[string]interface{}, includeAll bool, inclusion map[string]bool, highlights map[string]map[string][]string, highlightRequested bool) (SearchResult, bool) {
	rawID, ok := doc["id"]
	if !ok {
		return SearchResult{}, false
	}
	id, ok := rawID.(string)
	if !ok || id == "" {
		return SearchResult{}, false
	}

	fields := make(map[string]interface{})
	for name, value := range doc {
		if includeAll || inclusion[name] {
			fields[name] = value
		}
	}

	result := SearchResult{ID: id, Fields: fields}
	if highlightRequested {
		if frags, ok := highlights[id]; ok {
			result.MatchedText = flattenFragments(frags)
			result.Snippet = strings.Join(result.MatchedText, " ... ")
		}
	}
	return result, true
}

// flattenFragments joins fragments in field-name order so Snippet is
// deterministic regardless of map iteration order.
func flattenFragments(frags map[string][]string) []string {
	fields := make([]string, 0, len(frags))
	for field := range frags {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []string
	for _, field := range fields {
		out = append(out, frags[field]...)
	}
	return out
}

func bucketsToMap(buckets []solrclient.FacetCount) map[string]int {
	m := make(map[string]int, len(buckets))
	for _, b := range buckets {
		m[b.Value] = b.Count
	}
	return m
}

func fieldListIncludesAll(fieldList []string) bool {
	for _, f := range fieldList {
		if f == "*" {
			return true
		}
	}
	return false
}
