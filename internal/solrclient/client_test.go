package solrclient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solr-hybrid/searchgw/internal/solrparam"
)

func TestToParamsMap_SingleValuedCollapsesToString(t *testing.T) {
	p := solrparam.New()
	p.Set("q", "hello")
	p.Set("rows", "10")
	m := toParamsMap(p)
	assert.Equal(t, "hello", m["q"])
	assert.Equal(t, "10", m["rows"])
}

func TestToParamsMap_MultiValuedStaysSlice(t *testing.T) {
	p := solrparam.New()
	p.Add("fq", "a")
	p.Add("fq", "b")
	m := toParamsMap(p)
	assert.Equal(t, []string{"a", "b"}, m["fq"])
}

func TestDecodeFacetBuckets_PairsValuesAndCounts(t *testing.T) {
	raw := []interface{}{"electronics", 12, "books", float64(7)}
	buckets := decodeFacetBuckets(raw)
	assert.Equal(t, []FacetCount{{Value: "electronics", Count: 12}, {Value: "books", Count: 7}}, buckets)
}

func TestDecodeFacetBuckets_Empty(t *testing.T) {
	assert.Empty(t, decodeFacetBuckets(nil))
}
