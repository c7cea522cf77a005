package solrclient

import (
	solr "github.com/stevenferrer/solr-go"
)

// mapResponse adapts the library's raw Solr response shape (which mirrors
// Solr's classic response JSON: responseHeader/response/highlighting/
// facet_counts) into the gateway's own QueryResponse. Each facet_ranges
// entry carries the same flat [value1, count1, value2, count2, ...] counts
// encoding as a facet.field bucket, nested under the range's own object
// (which also carries gap/start/end, irrelevant to FacetResults).
func mapResponse(resp *solr.QueryResponse) *QueryResponse {
	qr := &QueryResponse{
		Docs:         resp.Response.Docs,
		NumFound:     resp.Response.NumFound,
		QTime:        resp.ResponseHeader.QTime,
		Highlights:   resp.Highlighting,
		FacetFields:  make(map[string][]FacetCount),
		FacetRanges:  make(map[string][]FacetCount),
		FacetQueries: map[string]int{},
	}

	for field, buckets := range resp.FacetCounts.FacetFields {
		qr.FacetFields[field] = decodeFacetBuckets(buckets)
	}
	for field, rangeFacet := range resp.FacetCounts.FacetRanges {
		qr.FacetRanges[field] = decodeFacetBuckets(rangeFacet.Counts)
	}
	for field, counts := range resp.FacetCounts.FacetQueries {
		qr.FacetQueries[field] = counts
	}

	return qr
}

// decodeFacetBuckets unpacks Solr's flat [value1, count1, value2, count2,
// ...] facet.field encoding into (value, count) pairs.
func decodeFacetBuckets(raw []interface{}) []FacetCount {
	out := make([]FacetCount, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		value, _ := raw[i].(string)
		var count int
		switch c := raw[i+1].(type) {
		case int:
			count = c
		case float64:
			count = int(c)
		}
		out = append(out, FacetCount{Value: value, Count: count})
	}
	return out
}
