package queryplan

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/solr-hybrid/searchgw/internal/config"
)

// ResolveFieldList computes the fl projection from the request's
// inclusion/exclusion lists merged with the collection's defaults (C7,
// §4.7). A field present in both the merged inclusion and exclusion sets
// resolves to exclusion and is logged as a warning, never an error (P3).
func ResolveFieldList(cfg *config.CollectionConfig, req *FieldListRequest, logger *slog.Logger) []string {
	inclusion := orderedSet{}
	inclusion.addAll(cfg.DefaultInclusionFields)
	exclusion := orderedSet{}
	exclusion.addAll(cfg.DefaultExclusionFields)

	if req != nil {
		inclusion.addAll(req.InclusionFields)
		exclusion.addAll(req.ExclusionFields)
	}

	var conflicts []string
	var fields []string
	for _, f := range inclusion.ordered {
		if exclusion.has(f) {
			conflicts = append(conflicts, f)
			continue
		}
		fields = append(fields, f)
	}

	if len(conflicts) > 0 && logger != nil {
		sort.Strings(conflicts)
		logger.Warn("field list conflict: field present in both inclusion and exclusion, excluding it",
			"fields", strings.Join(conflicts, ","))
	}

	if len(fields) == 0 {
		return []string{"*", "score"}
	}
	return fields
}

// orderedSet is an insertion-order-preserving string set.
type orderedSet struct {
	ordered []string
	seen    map[string]bool
}

func (s *orderedSet) addAll(items []string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, item := range items {
		if item == "" || s.seen[item] {
			continue
		}
		s.seen[item] = true
		s.ordered = append(s.ordered, item)
	}
}

func (s *orderedSet) has(item string) bool {
	return s.seen[item]
}
