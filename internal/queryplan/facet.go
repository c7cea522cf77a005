package queryplan

import (
	"fmt"
	"strconv"

	"github.com/solr-hybrid/searchgw/internal/gwerrors"
	"github.com/solr-hybrid/searchgw/internal/solrparam"
)

// ApplyFacets translates facetRequests into Solr facet parameters (C6,
// §4.6), preserving request order, and enables facet=true whenever at
// least one facet is present (P2).
func ApplyFacets(p *solrparam.Params, facetRequests []FacetRequest) error {
	if len(facetRequests) == 0 {
		return nil
	}
	p.Set("facet", "true")

	for _, fr := range facetRequests {
		switch {
		case fr.Field != nil:
			applyFacetField(p, fr.Field)
		case fr.Range != nil:
			if err := applyFacetRange(p, fr.Range); err != nil {
				return err
			}
		case fr.Query != nil:
			p.Add("facet.query", fr.Query.RawQuery)
		default:
			return gwerrors.InvalidArgument(gwerrors.ErrCodeInvalidFacetRequest,
				"facetRequest must set exactly one of field, range, or query")
		}
	}
	return nil
}

func applyFacetField(p *solrparam.Params, f *FacetField) {
	p.Add("facet.field", f.Field)
	if f.Limit > 0 {
		p.Set(fmt.Sprintf("f.%s.facet.limit", f.Field), strconv.Itoa(f.Limit))
	}
	if f.Missing {
		p.Set(fmt.Sprintf("f.%s.facet.missing", f.Field), "true")
	}
	if f.Prefix != "" {
		p.Set(fmt.Sprintf("f.%s.facet.prefix", f.Field), f.Prefix)
	}
}

func applyFacetRange(p *solrparam.Params, r *FacetRange) error {
	if r.Field == "" || r.Start == "" || r.End == "" || r.Gap == "" {
		return gwerrors.InvalidArgument(gwerrors.ErrCodeInvalidFacetRequest,
			fmt.Sprintf("facetRange %q: field, start, end, and gap are all required", r.Field))
	}
	p.Add("facet.range", r.Field)
	p.Set(fmt.Sprintf("f.%s.facet.range.start", r.Field), r.Start)
	p.Set(fmt.Sprintf("f.%s.facet.range.end", r.Field), r.End)
	p.Set(fmt.Sprintf("f.%s.facet.range.gap", r.Field), r.Gap)
	if r.HardEnd {
		p.Set(fmt.Sprintf("f.%s.facet.range.hardend", r.Field), "true")
	}
	if r.Other != "" {
		p.Set(fmt.Sprintf("f.%s.facet.range.other", r.Field), r.Other)
	}
	return nil
}
