package domain

// Summary is the tabular sentiment summary handed to the report sender:
// the file it was read from plus its parsed rows.
type Summary struct {
	Path string
	Rows []SummaryRow
}

// SummaryRow is one tracked entity from the sentiment summary produced by
// the collection step. The pipeline reads it and hands it to the report
// sender; it never mutates or re-derives any of these aggregates.
type SummaryRow struct {
	Ticker             string
	Company            string
	DateRange          string
	TotalArticles      int
	AverageSentiment   float64
	SentimentStd       float64
	LastWeekSentiment  float64
	LastMonthSentiment float64
	PositiveRatio      float64
	NegativeRatio      float64
	LatestUpdate       string
}
