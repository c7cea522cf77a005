package queryplan

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/solr-hybrid/searchgw/internal/config"
	"github.com/solr-hybrid/searchgw/internal/embedding"
	"github.com/solr-hybrid/searchgw/internal/gwerrors"
)

// SemanticFragment is the output of FragmentSemantic.
type SemanticFragment struct {
	Fragment           string
	Bindings           map[string]string
	ExtraFilterQueries []string
}

// NeedsPreFilterVar reports whether opts will require a preFilter $var
// slot, so the planner can assign that slot's name up front (a pure
// function of strategy position, §4.9/P6) before any concurrent fragment
// building starts.
func NeedsPreFilterVar(opts *SemanticOptions) bool {
	return opts != nil && opts.Similarity != nil && len(opts.Similarity.PreFilter) > 0
}

// FragmentSemantic resolves vector fields, fetches the shared query
// embedding via C2, and composes one C3 fragment per field, OR'd together
// (C5, §4.5). strategyIndex is 1-based and feeds $var naming for each
// field's vector literal slot; preFilterVarName is the (already assigned)
// slot name for the strategy's similarity pre-filter, if any.
func FragmentSemantic(ctx context.Context, cfg *config.CollectionConfig, cache *embedding.Cache, opts *SemanticOptions, queryText string, boost float64, strategyIndex int, preFilterVarName string) (*SemanticFragment, error) {
	if opts == nil {
		opts = &SemanticOptions{}
	}

	// Step 1: validate similarity/tag mutual exclusion.
	hasTags := len(opts.IncludeTags) > 0 || len(opts.ExcludeTags) > 0
	if NeedsPreFilterVar(opts) && hasTags {
		return nil, gwerrors.InvalidArgument(gwerrors.ErrCodeMutuallyExclusive,
			"semantic options cannot set both preFilter and include/exclude tags")
	}

	// Step 2: resolve vector fields.
	fields, err := resolveVectorFields(cfg, opts.VectorFields)
	if err != nil {
		return nil, err
	}

	// Step 3: acquire the shared query embedding for this request text.
	vec, err := cache.Embed(ctx, queryText)
	if err != nil {
		return nil, gwerrors.Unavailable(gwerrors.ErrCodeEmbeddingUnavailable, "failed to acquire query embedding", err)
	}

	// Step 4-5: build and OR the per-field fragments.
	bindings := make(map[string]string)
	fragments := make([]string, 0, len(fields))

	for fieldIdx, field := range fields {
		topK := field.DefaultTopK
		if opts.TopK != nil {
			topK = *opts.TopK
		}

		varName := fmt.Sprintf("vectorQuery_%d", strategyIndex)
		if len(fields) > 1 {
			varName = fmt.Sprintf("vectorQuery_%d_%d", strategyIndex, fieldIdx+1)
		}

		frag, err := FragmentVector(field, vec, topK, boost, opts.Similarity, opts.IncludeTags, opts.ExcludeTags, varName, preFilterVarName)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, frag.Fragment)
		for k, v := range frag.Bindings {
			bindings[k] = v
		}
	}

	combined := strings.Join(fragments, " OR ")
	if len(fragments) > 1 {
		combined = "(" + combined + ")"
	}

	return &SemanticFragment{
		Fragment: combined,
		Bindings: bindings,
	}, nil
}

func resolveVectorFields(cfg *config.CollectionConfig, names []string) ([]config.VectorFieldInfo, error) {
	if len(names) == 0 {
		fields := make([]config.VectorFieldInfo, 0, len(cfg.VectorFields))
		keys := sortedKeys(cfg.VectorFields)
		for _, k := range keys {
			fields = append(fields, cfg.VectorFields[k])
		}
		return fields, nil
	}

	fields := make([]config.VectorFieldInfo, 0, len(names))
	for _, name := range names {
		field, ok := cfg.VectorFields[name]
		if !ok {
			return nil, gwerrors.InvalidArgument(gwerrors.ErrCodeUnknownVectorField,
				fmt.Sprintf("unknown vector field %q", name))
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func sortedKeys(m map[string]config.VectorFieldInfo) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
