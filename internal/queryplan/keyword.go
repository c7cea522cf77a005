package queryplan

import (
	"fmt"
	"strings"

	"github.com/solr-hybrid/searchgw/internal/config"
	"github.com/solr-hybrid/searchgw/internal/gwerrors"
)

// KeywordFragment is the output of FragmentKeyword.
type KeywordFragment struct {
	Fragment string
	Bindings map[string]string
}

var solrReservedChars = []string{
	`\`, `+`, `-`, `&&`, `||`, `!`, `(`, `)`, `{`, `}`, `[`, `]`, `^`, `"`, `~`, `*`, `?`, `:`, `/`,
}

// EscapeSolrText escapes Solr query-syntax reserved characters in free text.
func EscapeSolrText(text string) string {
	escaped := text
	for _, ch := range solrReservedChars {
		escaped = strings.ReplaceAll(escaped, ch, `\`+ch)
	}
	return strings.ReplaceAll(escaped, " ", `\ `)
}

// FragmentKeyword emits one edismax fragment over the configured (or
// overridden) keyword fields for queryText (C4, §4.4).
func FragmentKeyword(cfg *config.CollectionConfig, opts *KeywordOptions, queryText, varName string) (*KeywordFragment, error) {
	text := queryText
	if opts != nil && opts.QueryTextOverride != "" {
		text = opts.QueryTextOverride
	}

	fields := cfg.KeywordQueryFields
	if opts != nil && len(opts.OverrideFieldsToQuery) > 0 {
		fields = opts.OverrideFieldsToQuery
	}
	if len(fields) == 0 {
		return nil, gwerrors.InvalidArgument(gwerrors.ErrCodeNoKeywordFieldsRequest,
			"keyword strategy requires overrideFieldsToQuery or a non-empty config.keywordQueryFields")
	}

	op := KeywordOpOr
	if opts != nil && opts.KeywordLogicalOperator != "" {
		op = opts.KeywordLogicalOperator
	}

	fragment := fmt.Sprintf(`{!edismax q.op=%s qf="%s" v=$%s}`, op, strings.Join(fields, " "), varName)
	return &KeywordFragment{
		Fragment: fragment,
		Bindings: map[string]string{varName: EscapeSolrText(text)},
	}, nil
}
