package queryplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solr-hybrid/searchgw/internal/config"
	"github.com/solr-hybrid/searchgw/internal/embedding"
	"github.com/solr-hybrid/searchgw/internal/gwerrors"
)

type fakeEmbeddingClient struct {
	vec []float32
	err error
}

func (f *fakeEmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

func testCollectionConfig() *config.CollectionConfig {
	return &config.CollectionConfig{
		VectorFields: map[string]config.VectorFieldInfo{
			"title": {Name: "title", SolrFieldName: "title-vector", Kind: config.KindInline, DefaultTopK: 30},
		},
	}
}

func TestFragmentSemantic_SingleFieldDefaultTopK(t *testing.T) {
	cache := embedding.NewCache(&fakeEmbeddingClient{vec: []float32{0.1, 0.2}}, 10)
	frag, err := FragmentSemantic(context.Background(), testCollectionConfig(), cache, &SemanticOptions{}, "hello", 0, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "{!knn f=title-vector topK=30 v=$vectorQuery_1}", frag.Fragment)
}

func TestFragmentSemantic_MultipleFieldsGetSuffixedVarNames(t *testing.T) {
	cfg := &config.CollectionConfig{
		VectorFields: map[string]config.VectorFieldInfo{
			"title": {Name: "title", SolrFieldName: "title-vector", Kind: config.KindInline, DefaultTopK: 30},
			"body":  {Name: "body", SolrFieldName: "body-vector", Kind: config.KindInline, DefaultTopK: 30},
		},
	}
	cache := embedding.NewCache(&fakeEmbeddingClient{vec: []float32{0.1}}, 10)
	frag, err := FragmentSemantic(context.Background(), cfg, cache, &SemanticOptions{}, "hello", 0, 1, "")
	require.NoError(t, err)
	assert.Contains(t, frag.Fragment, "$vectorQuery_1_1")
	assert.Contains(t, frag.Fragment, "$vectorQuery_1_2")
	assert.Contains(t, frag.Fragment, " OR ")
}

func TestFragmentSemantic_UnknownVectorField(t *testing.T) {
	cache := embedding.NewCache(&fakeEmbeddingClient{vec: []float32{0.1}}, 10)
	opts := &SemanticOptions{VectorFields: []string{"nonexistent"}}
	_, err := FragmentSemantic(context.Background(), testCollectionConfig(), cache, opts, "hello", 0, 1, "")
	require.Error(t, err)
	assert.Equal(t, gwerrors.ErrCodeUnknownVectorField, err.(*gwerrors.GatewayError).Code)
}

func TestFragmentSemantic_PreFilterAndTagsAreMutuallyExclusive(t *testing.T) {
	cache := embedding.NewCache(&fakeEmbeddingClient{vec: []float32{0.1}}, 10)
	opts := &SemanticOptions{
		Similarity:  &SimilarityOptions{PreFilter: []PreFilterClause{{Field: "status", Value: "published"}}},
		IncludeTags: []string{"news"},
	}
	_, err := FragmentSemantic(context.Background(), testCollectionConfig(), cache, opts, "hello", 0, 1, "knnPreFilter")
	require.Error(t, err)
	assert.Equal(t, gwerrors.ErrCodeMutuallyExclusive, err.(*gwerrors.GatewayError).Code)
}

func TestFragmentSemantic_EmbeddingFailureIsUnavailable(t *testing.T) {
	cache := embedding.NewCache(&fakeEmbeddingClient{err: assert.AnError}, 10)
	_, err := FragmentSemantic(context.Background(), testCollectionConfig(), cache, &SemanticOptions{}, "hello", 0, 1, "")
	require.Error(t, err)
	assert.Equal(t, gwerrors.ErrCodeEmbeddingUnavailable, err.(*gwerrors.GatewayError).Code)
}

func TestFragmentSemantic_SingleFieldBoostWrapsFragment(t *testing.T) {
	cache := embedding.NewCache(&fakeEmbeddingClient{vec: []float32{0.1}}, 10)
	frag, err := FragmentSemantic(context.Background(), testCollectionConfig(), cache, &SemanticOptions{}, "hello", 1.2, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "scale({!knn f=title-vector topK=30 v=$vectorQuery_1},0,1)^1.20", frag.Fragment)
}

// TestFragmentSemantic_MultiFieldBoostAppliesPerField covers Scenario C
// (§8) and §4.5 steps 4-5: each field's fragment is scaled individually
// before the fields are OR'd, not the OR group as a whole.
func TestFragmentSemantic_MultiFieldBoostAppliesPerField(t *testing.T) {
	cfg := &config.CollectionConfig{
		VectorFields: map[string]config.VectorFieldInfo{
			"title": {Name: "title", SolrFieldName: "title-vector", Kind: config.KindInline, DefaultTopK: 30},
			"body":  {Name: "body", SolrFieldName: "body-vector", Kind: config.KindInline, DefaultTopK: 30},
		},
	}
	cache := embedding.NewCache(&fakeEmbeddingClient{vec: []float32{0.1}}, 10)
	frag, err := FragmentSemantic(context.Background(), cfg, cache, &SemanticOptions{}, "hello", 1.2, 1, "")
	require.NoError(t, err)
	assert.Equal(t,
		"(scale({!knn f=title-vector topK=30 v=$vectorQuery_1_1},0,1)^1.20 OR scale({!knn f=body-vector topK=30 v=$vectorQuery_1_2},0,1)^1.20)",
		frag.Fragment)
}

func TestFragmentSemantic_IncludeExcludeTagsPropagateToFragment(t *testing.T) {
	cache := embedding.NewCache(&fakeEmbeddingClient{vec: []float32{0.1}}, 10)
	opts := &SemanticOptions{IncludeTags: []string{"news"}, ExcludeTags: []string{"archived"}}
	frag, err := FragmentSemantic(context.Background(), testCollectionConfig(), cache, opts, "hello", 0, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "{!vectorSimilarity f=title-vector topK=30 includeTags=news excludeTags=archived v=$vectorQuery_1}", frag.Fragment)
}

func TestNeedsPreFilterVar(t *testing.T) {
	assert.False(t, NeedsPreFilterVar(nil))
	assert.False(t, NeedsPreFilterVar(&SemanticOptions{}))
	assert.True(t, NeedsPreFilterVar(&SemanticOptions{Similarity: &SimilarityOptions{PreFilter: []PreFilterClause{{Field: "a", Value: "b"}}}}))
}
