package queryplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLegacyKeyword_PassesThroughWithoutFlag(t *testing.T) {
	strategies := []SearchStrategy{
		{Type: StrategyKeyword, Keyword: &KeywordOptions{}, Boost: 1},
	}
	out := NormalizeLegacyKeyword(strategies)
	assert.Len(t, out, 1)
	assert.Equal(t, StrategyKeyword, out[0].Type)
}

func TestNormalizeLegacyKeyword_ExpandsBoostWithSemantic(t *testing.T) {
	strategies := []SearchStrategy{
		{Type: StrategyKeyword, Keyword: &KeywordOptions{BoostWithSemantic: true}, Boost: 1.5},
	}
	out := NormalizeLegacyKeyword(strategies)
	assert.Len(t, out, 2)
	assert.Equal(t, StrategyKeyword, out[0].Type)
	assert.False(t, out[0].Keyword.BoostWithSemantic)
	assert.Equal(t, 1.5, out[0].Boost)
	assert.Equal(t, StrategySemantic, out[1].Type)
	assert.Equal(t, 1.5, out[1].Boost)
	assert.NotNil(t, out[1].Semantic)
}

func TestNormalizeLegacyKeyword_MixedStrategiesPreserveOrder(t *testing.T) {
	strategies := []SearchStrategy{
		{Type: StrategySemantic, Semantic: &SemanticOptions{}},
		{Type: StrategyKeyword, Keyword: &KeywordOptions{BoostWithSemantic: true}},
	}
	out := NormalizeLegacyKeyword(strategies)
	assert.Len(t, out, 3)
	assert.Equal(t, StrategySemantic, out[0].Type)
	assert.Equal(t, StrategyKeyword, out[1].Type)
	assert.Equal(t, StrategySemantic, out[2].Type)
}
