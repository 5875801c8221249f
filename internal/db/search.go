package db

// SearchQuery is the input for an FT.SEARCH execution. Query is a dialect-2
// query string produced by the repository's serializer.
type SearchQuery struct {
	IndexName    string
	Query        string
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// AggregateQuery is the input for an FT.AGGREGATE GROUPBY execution with a
// COUNT reducer.
type AggregateQuery struct {
	IndexName string
	Query     string // match expression, "*" for the whole corpus
	GroupBy   string // field to bucket on
	SortBy    string // "count" or the group field
	Ascending bool
	Limit     int
}

// AggregateResult is the output of an aggregation.
type AggregateResult struct {
	Rows []AggregateRow
}

// AggregateRow is a single aggregation bucket.
type AggregateRow struct {
	Key   string
	Count int64
}
