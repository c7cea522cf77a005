package queryplan

import (
	"strconv"
	"strings"

	"github.com/solr-hybrid/searchgw/internal/solrparam"
)

// ApplyHighlight emits highlighting parameters when opts is non-nil (C8,
// §4.8). semanticHighlight has no separate Solr parameter; it is a hint
// consumed by response mapping.
func ApplyHighlight(p *solrparam.Params, opts *HighlightOptions) {
	if opts == nil {
		return
	}
	p.Set("hl", "true")

	fields := opts.Fields
	if len(fields) == 0 {
		fields = []string{"title", "body"}
	}
	p.Set("hl.fl", strings.Join(fields, ","))

	preTag := opts.PreTag
	if preTag == "" {
		preTag = "<em>"
	}
	p.Set("hl.simple.pre", preTag)

	postTag := opts.PostTag
	if postTag == "" {
		postTag = "</em>"
	}
	p.Set("hl.simple.post", postTag)

	snippets := opts.SnippetCount
	if snippets < 1 {
		snippets = 1
	}
	p.Set("hl.snippets", strconv.Itoa(snippets))

	fragsize := opts.SnippetSize
	if fragsize < 1 {
		fragsize = 100
	}
	p.Set("hl.fragsize", strconv.Itoa(fragsize))
}
