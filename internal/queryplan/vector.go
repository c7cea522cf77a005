package queryplan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/solr-hybrid/searchgw/internal/config"
	"github.com/solr-hybrid/searchgw/internal/gwerrors"
)

// FormatVectorLiteral renders an embedding as a Solr dense-vector literal:
// fixed 6-fractional-digit decimal formatting, no scientific notation, so
// serialization is byte-identical for the same input vector (P6).
func FormatVectorLiteral(vec []float32) string {
	parts := make([]string, len(vec))
	for i, f := range vec {
		parts[i] = strconv.FormatFloat(float64(f), 'f', 6, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func formatBoost(boost float64) string {
	return strconv.FormatFloat(boost, 'f', 2, 64)
}

// wrapBoost applies the scale/boost wrapper when boost > 0; boost == 0
// returns inner unwrapped (P10).
func wrapBoost(inner string, boost float64) string {
	if boost <= 0 {
		return inner
	}
	return fmt.Sprintf("scale(%s,0,1)^%s", inner, formatBoost(boost))
}

// VectorFragment is the output of FragmentVector: the Solr fragment text
// plus any parameter-variable bindings it references via $name.
type VectorFragment struct {
	Fragment string
	Bindings map[string]string
}

// FragmentVector produces a Solr local-parameters fragment for one vector
// field and one embedding (C3, §4.3). preFilterVarName names the
// parameter slot for sim.PreFilter, if any; callers choose it so naming
// stays a pure function of the strategy's position (P6).
func FragmentVector(field config.VectorFieldInfo, embedding []float32, topK int, boost float64, sim *SimilarityOptions, includeTags, excludeTags []string, varName, preFilterVarName string) (*VectorFragment, error) {
	if topK <= 0 {
		return nil, gwerrors.InvalidArgument(gwerrors.ErrCodeInvalidTopK, fmt.Sprintf("topK must be > 0, got %d", topK))
	}
	if boost < 0 {
		return nil, gwerrors.InvalidArgument(gwerrors.ErrCodeInvalidBoost, fmt.Sprintf("boost must be >= 0, got %f", boost))
	}

	bindings := map[string]string{varName: FormatVectorLiteral(embedding)}

	var knn string
	switch field.Kind {
	case config.KindInline:
		knn = inlineKnnFragment(field.SolrFieldName, topK, sim, includeTags, excludeTags, varName, preFilterVarName, bindings)
	case config.KindEmbeddedDoc:
		inner := inlineKnnFragment(field.SolrFieldName, topK, sim, includeTags, excludeTags, varName, preFilterVarName, bindings)
		// Standard Solr nested-document convention: a parent query whose
		// "which" selects root documents, so the kNN match against a child
		// vector field resolves to its parent document.
		knn = fmt.Sprintf(`{!parent which="*:* -_nest_path_:*"}%s`, inner)
	case config.KindChildCollection:
		if field.ChunkCollection == "" {
			return nil, gwerrors.InvalidArgument(gwerrors.ErrCodeUnknownVectorField,
				fmt.Sprintf("vector field %q: malformed CHILD_COLLECTION (no chunkCollection)", field.Name))
		}
		inner := inlineKnnFragment(field.SolrFieldName, topK, sim, includeTags, excludeTags, varName, preFilterVarName, bindings)
		knn = fmt.Sprintf(`{!join from=parent_id to=id fromIndex=%s}%s`, field.ChunkCollection, inner)
	default:
		return nil, gwerrors.InvalidArgument(gwerrors.ErrCodeUnknownVectorField,
			fmt.Sprintf("vector field %q: unrecognized kind %q", field.Name, field.Kind))
	}

	return &VectorFragment{Fragment: wrapBoost(knn, boost), Bindings: bindings}, nil
}

// inlineKnnFragment builds the {!knn ...} or {!vectorSimilarity ...}
// fragment that every field kind wraps. The pre-filter clause (if any) is
// merged into bindings under preFilterVarName.
func inlineKnnFragment(solrField string, topK int, sim *SimilarityOptions, includeTags, excludeTags []string, varName, preFilterVarName string, bindings map[string]string) string {
	hasTags := len(includeTags) > 0 || len(excludeTags) > 0
	needsSimilarity := hasTags || (sim != nil && (sim.MinReturn != nil || sim.MinTraverse != nil || len(sim.PreFilter) > 0))

	if !needsSimilarity {
		return fmt.Sprintf("{!knn f=%s topK=%d v=$%s}", solrField, topK, varName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "{!vectorSimilarity f=%s topK=%d", solrField, topK)
	if sim != nil && sim.MinReturn != nil {
		fmt.Fprintf(&b, " minReturn=%s", strconv.FormatFloat(*sim.MinReturn, 'f', -1, 64))
	}
	if sim != nil && sim.MinTraverse != nil {
		fmt.Fprintf(&b, " minTraverse=%s", strconv.FormatFloat(*sim.MinTraverse, 'f', -1, 64))
	}
	if len(includeTags) > 0 {
		fmt.Fprintf(&b, " includeTags=%s", strings.Join(includeTags, ","))
	}
	if len(excludeTags) > 0 {
		fmt.Fprintf(&b, " excludeTags=%s", strings.Join(excludeTags, ","))
	}
	if sim != nil && len(sim.PreFilter) > 0 {
		clauses := make([]string, len(sim.PreFilter))
		for i, c := range sim.PreFilter {
			clauses[i] = fmt.Sprintf("%s:%s", c.Field, c.Value)
		}
		bindings[preFilterVarName] = strings.Join(clauses, " AND ")
		fmt.Fprintf(&b, " preFilter=$%s", preFilterVarName)
	}
	fmt.Fprintf(&b, " v=$%s}", varName)
	return b.String()
}
