package query

// TermsAggregation buckets documents by the distinct values of a stored
// field, keeping the top Size buckets by document count.
type TermsAggregation struct {
	Field string
	Size  int
}

// DateHistogramAggregation buckets documents into calendar days over a date
// field. Buckets with fewer than MinDocCount documents are excluded.
type DateHistogramAggregation struct {
	Field       string
	MinDocCount int
}
