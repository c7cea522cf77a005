package queryplan

// NormalizeLegacyKeyword rewrites any KEYWORD strategy with
// BoostWithSemantic set into its explicit two-strategy equivalent: the
// original KEYWORD strategy (with the flag cleared) followed by an
// appended SEMANTIC strategy over every configured vector field, carrying
// the same boost (§4.9 tie-break, §9 Open Question 1). Strategies without
// the flag pass through unchanged. The rewrite happens once, before
// Plan() assigns any $var names, so it cannot disturb P6 ordering.
func NormalizeLegacyKeyword(strategies []SearchStrategy) []SearchStrategy {
	out := make([]SearchStrategy, 0, len(strategies))
	for _, s := range strategies {
		if s.Type != StrategyKeyword || s.Keyword == nil || !s.Keyword.BoostWithSemantic {
			out = append(out, s)
			continue
		}

		kw := *s.Keyword
		kw.BoostWithSemantic = false
		out = append(out, SearchStrategy{
			Type:    StrategyKeyword,
			Keyword: &kw,
			Boost:   s.Boost,
		})
		out = append(out, SearchStrategy{
			Type:     StrategySemantic,
			Semantic: &SemanticOptions{},
			Boost:    s.Boost,
		})
	}
	return out
}
