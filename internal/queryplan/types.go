// Package queryplan implements C3-C9: the per-strategy fragment builders
// and the top-level SolrQueryPlanner that composes a SearchRequest into a
// Solr parameter map.
package queryplan

// SortType selects whether a request's explicit sort targets relevance
// score or a field.
type SortType string

const (
	SortTypeScore SortType = "SCORE"
	SortTypeField SortType = "FIELD"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Sort is a request's explicit sort directive.
type Sort struct {
	SortType  SortType
	SortField string
	SortOrder SortOrder
}

// FacetField requests a Solr field facet.
type FacetField struct {
	Field   string
	Limit   int
	Missing bool
	Prefix  string
}

// FacetRange requests a Solr range facet. Start, End, and Gap are all
// required for a well-formed range.
type FacetRange struct {
	Field   string
	Start   string
	End     string
	Gap     string
	HardEnd bool
	Other   string
}

// FacetQuery requests a Solr query facet.
type FacetQuery struct {
	RawQuery string
}

// FacetRequest is exactly one of Field, Range, or Query.
type FacetRequest struct {
	Field *FacetField
	Range *FacetRange
	Query *FacetQuery
}

// HighlightOptions configures Solr highlighting. A nil *HighlightOptions
// on a request disables highlighting entirely.
type HighlightOptions struct {
	Fields            []string
	PreTag            string
	PostTag           string
	SnippetCount      int
	SnippetSize       int
	SemanticHighlight bool
}

// FieldListRequest is a request's inclusion/exclusion override for the
// projected field list.
type FieldListRequest struct {
	InclusionFields []string
	ExclusionFields []string
}

// PreFilterClause is one field:value clause ANDed into a vector
// similarity pre-filter.
type PreFilterClause struct {
	Field string
	Value string
}

// SimilarityOptions tunes a semantic sub-strategy's vectorSimilarity
// parser. PreFilter cannot coexist with IncludeTags/ExcludeTags.
type SimilarityOptions struct {
	MinReturn   *float64
	MinTraverse *float64
	PreFilter   []PreFilterClause
}

// SemanticOptions configures a SEMANTIC sub-strategy.
type SemanticOptions struct {
	TopK         *int
	VectorFields []string
	Similarity   *SimilarityOptions
	IncludeTags  []string
	ExcludeTags  []string
}

// KeywordLogicalOperator is edismax's q.op.
type KeywordLogicalOperator string

const (
	KeywordOpAnd KeywordLogicalOperator = "AND"
	KeywordOpOr  KeywordLogicalOperator = "OR"
)

// KeywordOptions configures a KEYWORD sub-strategy.
type KeywordOptions struct {
	QueryTextOverride      string
	OverrideFieldsToQuery  []string
	KeywordLogicalOperator KeywordLogicalOperator
	// BoostWithSemantic is legacy sugar: true is equivalent to appending an
	// implicit SEMANTIC strategy over all configured vector fields (§4.9,
	// §9 Open Question 1). Normalized away by NormalizeLegacyKeyword
	// before planning.
	BoostWithSemantic bool
}

// StrategyType selects which sub-builder handles a SearchStrategy.
type StrategyType string

const (
	StrategyKeyword  StrategyType = "KEYWORD"
	StrategySemantic StrategyType = "SEMANTIC"
)

// SearchStrategy is one retrieval unit combined with others by the
// request's logical Operator.
type SearchStrategy struct {
	Type     StrategyType
	Keyword  *KeywordOptions
	Semantic *SemanticOptions
	Boost    float64
}

// Operator combines sibling strategy fragments.
type Operator string

const (
	OperatorOr  Operator = "OR"
	OperatorAnd Operator = "AND"
)

// SearchStrategyOptions is the ordered set of strategies making up a
// request's retrieval plan.
type SearchStrategyOptions struct {
	Operator   Operator
	Strategies []SearchStrategy
}

// KV is one passthrough key/value pair, order-preserved, appended last.
type KV struct {
	Key   string
	Value string
}

// SearchRequest is the inbound request to SearchService.Search.
type SearchRequest struct {
	Query         string
	Start         int
	NumResults    *int // nil means "use config.DefaultRows"
	FilterQueries []string
	Sort          *Sort
	FacetRequests []FacetRequest
	Highlight     *HighlightOptions
	FieldList     *FieldListRequest
	AdditionalParams []KV
	Strategy      SearchStrategyOptions
}
