package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solr-hybrid/searchgw/internal/solrclient"
)

func TestMap_SkipsDocsWithoutID(t *testing.T) {
	qr := &solrclient.QueryResponse{
		Docs: []map[string]interface{}{
			{"title": "no id here"},
			{"id": "doc-1", "title": "has an id"},
		},
		NumFound: 2,
	}
	resp := Map(qr, []string{"*"}, false, nil)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "doc-1", resp.Results[0].ID)
}

func TestMap_FiltersFieldsByInclusionSet(t *testing.T) {
	qr := &solrclient.QueryResponse{
		Docs: []map[string]interface{}{
			{"id": "doc-1", "title": "t", "body": "b", "internal": "secret"},
		},
	}
	resp := Map(qr, []string{"title", "body"}, false, nil)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, map[string]interface{}{"title": "t", "body": "b"}, resp.Results[0].Fields)
}

func TestMap_StarIncludesAllFields(t *testing.T) {
	qr := &solrclient.QueryResponse{
		Docs: []map[string]interface{}{{"id": "doc-1", "anything": "goes"}},
	}
	resp := Map(qr, []string{"*", "score"}, false, nil)
	assert.Equal(t, "goes", resp.Results[0].Fields["anything"])
}

func TestMap_SnippetJoinsFragmentsInFieldOrder(t *testing.T) {
	qr := &solrclient.QueryResponse{
		Docs: []map[string]interface{}{{"id": "doc-1"}},
		Highlights: map[string]map[string][]string{
			"doc-1": {
				"body":  {"body snippet"},
				"title": {"title snippet"},
			},
		},
	}
	resp := Map(qr, []string{"*"}, true, nil)
	assert.Equal(t, "title snippet ... body snippet", resp.Results[0].Snippet)
}

func TestMap_NoHighlightRequestedLeavesSnippetEmpty(t *testing.T) {
	qr := &solrclient.QueryResponse{
		Docs:       []map[string]interface{}{{"id": "doc-1"}},
		Highlights: map[string]map[string][]string{"doc-1": {"title": {"snippet"}}},
	}
	resp := Map(qr, []string{"*"}, false, nil)
	assert.Empty(t, resp.Results[0].Snippet)
}

func TestMap_FacetsMergedByKind(t *testing.T) {
	qr := &solrclient.QueryResponse{
		FacetFields:  map[string][]solrclient.FacetCount{"category": {{Value: "books", Count: 3}}},
		FacetQueries: map[string]int{"price:[0 TO 10]": 5},
	}
	resp := Map(qr, []string{"*"}, false, nil)
	assert.Equal(t, 3, resp.Facets["category"].Buckets["books"])
	assert.Equal(t, 5, resp.Facets["price:[0 TO 10]"].Buckets["price:[0 TO 10]"])
}

func TestMap_Totals(t *testing.T) {
	qr := &solrclient.QueryResponse{NumFound: 42, QTime: 7}
	resp := Map(qr, []string{"*"}, false, nil)
	assert.Equal(t, 42, resp.TotalResults)
	assert.Equal(t, 7, resp.QTime)
	assert.False(t, resp.TimeOfSearch.IsZero())
}
