package queryplan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solr-hybrid/searchgw/internal/config"
)

func TestResolveFieldList_UsesConfigDefaultsWhenNoRequest(t *testing.T) {
	cfg := &config.CollectionConfig{DefaultInclusionFields: []string{"title", "body"}}
	fields := ResolveFieldList(cfg, nil, nil)
	assert.Equal(t, []string{"title", "body"}, fields)
}

func TestResolveFieldList_MergesRequestWithDefaults(t *testing.T) {
	cfg := &config.CollectionConfig{DefaultInclusionFields: []string{"title"}}
	req := &FieldListRequest{InclusionFields: []string{"body"}}
	fields := ResolveFieldList(cfg, req, nil)
	assert.Equal(t, []string{"title", "body"}, fields)
}

func TestResolveFieldList_ConflictResolvesToExclusion(t *testing.T) {
	cfg := &config.CollectionConfig{DefaultInclusionFields: []string{"title", "body"}}
	req := &FieldListRequest{ExclusionFields: []string{"body"}}
	fields := ResolveFieldList(cfg, req, nil)
	assert.Equal(t, []string{"title"}, fields)
}

func TestResolveFieldList_EmptyResultFallsBackToStarScore(t *testing.T) {
	cfg := &config.CollectionConfig{}
	fields := ResolveFieldList(cfg, nil, nil)
	assert.Equal(t, []string{"*", "score"}, fields)
}
