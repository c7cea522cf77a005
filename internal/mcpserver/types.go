// Package mcpserver is the gateway's inbound RPC surface (§6.1): it
// exposes searchservice.Service.Search as a single MCP tool, "search".
package mcpserver

// SearchInput is the MCP tool input schema, mirroring the SearchRequest
// data model of §3 field-for-field.
type SearchInput struct {
	Query            string             `json:"query" jsonschema:"the search query text"`
	Start            int                `json:"start,omitempty" jsonschema:"zero-based result offset, default 0"`
	NumResults       *int               `json:"numResults,omitempty" jsonschema:"maximum number of results; defaults to the collection's configured rows"`
	FilterQueries    []string           `json:"filterQueries,omitempty" jsonschema:"raw Solr filter query clauses, applied in order"`
	Sort             *SortInput         `json:"sort,omitempty" jsonschema:"explicit sort override; omit to use the collection default"`
	FacetRequests    []FacetRequestInput `json:"facetRequests,omitempty" jsonschema:"ordered facet requests"`
	Highlight        *HighlightInput    `json:"highlight,omitempty" jsonschema:"highlighting options; omit to disable highlighting"`
	FieldList        *FieldListInput    `json:"fieldList,omitempty" jsonschema:"field projection inclusion/exclusion override"`
	AdditionalParams []KVInput          `json:"additionalParams,omitempty" jsonschema:"raw passthrough Solr parameters, appended last"`
	Strategy         StrategyInput      `json:"strategy" jsonschema:"the retrieval strategy composition"`
}

// SortInput is an explicit sort directive.
type SortInput struct {
	SortType  string `json:"sortType" jsonschema:"SCORE or FIELD"`
	SortField string `json:"sortField,omitempty" jsonschema:"the field to sort by, required when sortType is FIELD"`
	SortOrder string `json:"sortOrder" jsonschema:"ASC or DESC"`
}

// FacetFieldInput requests a field facet.
type FacetFieldInput struct {
	Field   string `json:"field" jsonschema:"the field to facet on"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of facet buckets"`
	Missing bool   `json:"missing,omitempty" jsonschema:"include a bucket for documents missing the field"`
	Prefix  string `json:"prefix,omitempty" jsonschema:"restrict buckets to values with this prefix"`
}

// FacetRangeInput requests a range facet; start, end, and gap are all
// required.
type FacetRangeInput struct {
	Field   string `json:"field" jsonschema:"the field to range-facet on"`
	Start   string `json:"start" jsonschema:"range start"`
	End     string `json:"end" jsonschema:"range end"`
	Gap     string `json:"gap" jsonschema:"range bucket width"`
	HardEnd bool   `json:"hardEnd,omitempty" jsonschema:"clamp the last bucket to end instead of overflowing"`
	Other   string `json:"other,omitempty" jsonschema:"before/after/between/all/none"`
}

// FacetQueryInput requests a query facet.
type FacetQueryInput struct {
	RawQuery string `json:"rawQuery" jsonschema:"raw Solr query to facet on"`
}

// FacetRequestInput is exactly one of Field, Range, or Query.
type FacetRequestInput struct {
	Field *FacetFieldInput `json:"field,omitempty"`
	Range *FacetRangeInput `json:"range,omitempty"`
	Query *FacetQueryInput `json:"query,omitempty"`
}

// HighlightInput configures Solr highlighting.
type HighlightInput struct {
	Fields            []string `json:"fields,omitempty" jsonschema:"fields to highlight, default title,body"`
	PreTag            string   `json:"preTag,omitempty" jsonschema:"snippet open tag, default <em>"`
	PostTag           string   `json:"postTag,omitempty" jsonschema:"snippet close tag, default </em>"`
	SnippetCount      int      `json:"snippetCount,omitempty" jsonschema:"snippets per field, default 1"`
	SnippetSize       int      `json:"snippetSize,omitempty" jsonschema:"snippet character size, default 100"`
	SemanticHighlight bool     `json:"semanticHighlight,omitempty" jsonschema:"hint consumed by response mapping only"`
}

// FieldListInput overrides the projected field list.
type FieldListInput struct {
	InclusionFields []string `json:"inclusionFields,omitempty"`
	ExclusionFields []string `json:"exclusionFields,omitempty"`
}

// KVInput is one raw passthrough Solr parameter.
type KVInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// KeywordInput configures a KEYWORD sub-strategy.
type KeywordInput struct {
	QueryTextOverride      string   `json:"queryTextOverride,omitempty"`
	OverrideFieldsToQuery  []string `json:"overrideFieldsToQuery,omitempty"`
	KeywordLogicalOperator string   `json:"keywordLogicalOperator,omitempty" jsonschema:"AND or OR, default OR"`
	BoostWithSemantic      bool     `json:"boostWithSemantic,omitempty" jsonschema:"legacy: true appends an implicit semantic strategy over all vector fields"`
}

// SimilarityInput tunes vectorSimilarity; PreFilter cannot coexist with
// IncludeTags/ExcludeTags on the owning SemanticInput.
type SimilarityInput struct {
	MinReturn   *float64            `json:"minReturn,omitempty"`
	MinTraverse *float64            `json:"minTraverse,omitempty"`
	PreFilter   []PreFilterClauseInput `json:"preFilter,omitempty"`
}

// PreFilterClauseInput is one field:value clause ANDed into a pre-filter.
type PreFilterClauseInput struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SemanticInput configures a SEMANTIC sub-strategy.
type SemanticInput struct {
	TopK         *int             `json:"topK,omitempty"`
	VectorFields []string         `json:"vectorFields,omitempty" jsonschema:"logical vector field names; empty means all configured fields"`
	Similarity   *SimilarityInput `json:"similarity,omitempty"`
	IncludeTags  []string         `json:"includeTags,omitempty"`
	ExcludeTags  []string         `json:"excludeTags,omitempty"`
}

// SearchStrategyInput is one retrieval unit.
type SearchStrategyInput struct {
	Type     string         `json:"type" jsonschema:"KEYWORD or SEMANTIC"`
	Keyword  *KeywordInput  `json:"keyword,omitempty"`
	Semantic *SemanticInput `json:"semantic,omitempty"`
	Boost    float64        `json:"boost,omitempty" jsonschema:"boost >= 0; 0 means no boost wrapper"`
}

// StrategyInput is the ordered set of strategies making up a request's
// retrieval plan.
type StrategyInput struct {
	Operator   string                `json:"operator" jsonschema:"OR or AND"`
	Strategies []SearchStrategyInput `json:"strategies" jsonschema:"ordered, non-empty list of sub-strategies"`
}

// SearchOutput is the MCP tool output schema, mirroring SearchResponse.
type SearchOutput struct {
	Results      []SearchResultOutput    `json:"results"`
	Facets       map[string]FacetOutput  `json:"facets"`
	TotalResults int                     `json:"totalResults"`
	QTime        int                     `json:"qTime"`
	TimeOfSearch string                  `json:"timeOfSearch" jsonschema:"RFC3339 timestamp"`
}

// SearchResultOutput is one mapped document.
type SearchResultOutput struct {
	ID          string                 `json:"id"`
	Fields      map[string]interface{} `json:"fields"`
	Snippet     string                 `json:"snippet,omitempty"`
	MatchedText []string               `json:"matchedText,omitempty"`
}

// FacetOutput is one facet's bucket counts.
type FacetOutput struct {
	Buckets map[string]int `json:"buckets"`
}
