// Package summarycsv reads the sentiment summary produced by the collection
// step. The file is consumed once per run and never mutated here.
package summarycsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
	"github.com/TheEMeraldNetwork/Kalimera/internal/ports"
)

const (
	// LatestSummary is the conventionally-named file overwritten each run.
	LatestSummary = "sentiment_summary_latest.csv"
	datedPattern  = "sentiment_summary_*.csv"
)

type Loader struct{}

func New() *Loader {
	return &Loader{}
}

var _ ports.SummaryLoader = (*Loader)(nil)

// LoadLatest reads the latest summary from resultsDir, preferring the
// stable alias and falling back to the newest dated file.
func (l *Loader) LoadLatest(resultsDir string) (domain.Summary, error) {
	path := filepath.Join(resultsDir, LatestSummary)
	if _, err := os.Stat(path); err != nil {
		fallback, ferr := newestDated(resultsDir)
		if ferr != nil {
			return domain.Summary{}, ferr
		}
		path = fallback
	}

	rows, err := parseFile(path)
	if err != nil {
		return domain.Summary{Path: path}, err
	}
	return domain.Summary{Path: path, Rows: rows}, nil
}

// newestDated picks the most recently modified dated summary, skipping the
// latest alias itself.
func newestDated(resultsDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(resultsDir, datedPattern))
	if err != nil {
		return "", &domain.OpError{Op: "summarycsv.glob", Kind: domain.KindExecution, Path: resultsDir, Err: err}
	}

	var newest string
	var newestMod int64
	for _, m := range matches {
		if filepath.Base(m) == LatestSummary {
			continue
		}
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().UnixNano() > newestMod {
			newest = m
			newestMod = info.ModTime().UnixNano()
		}
	}

	if newest == "" {
		return "", &domain.OpError{
			Op:   "summarycsv.find",
			Kind: domain.KindNotFound,
			Path: resultsDir,
			Err:  fmt.Errorf("no sentiment summary files: %w", domain.ErrNotFound),
		}
	}
	return newest, nil
}

func parseFile(path string) ([]domain.SummaryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{Op: "summarycsv.open", Kind: domain.KindNotFound, Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, &domain.OpError{Op: "summarycsv.read", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &domain.OpError{
			Op:   "summarycsv.read",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  errors.New("empty summary file"),
		}
	}

	// Columns are addressed by header name, not position: the collector
	// owns the schema and may reorder or extend it.
	idx := map[string]int{}
	for i, name := range records[0] {
		idx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := idx["ticker"]; !ok {
		return nil, &domain.OpError{
			Op:   "summarycsv.header",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  errors.New("missing ticker column"),
		}
	}

	rows := make([]domain.SummaryRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		rows = append(rows, domain.SummaryRow{
			Ticker:             get("ticker"),
			Company:            get("company"),
			DateRange:          get("date_range"),
			TotalArticles:      parseInt(get("total_articles")),
			AverageSentiment:   parseFloat(get("average_sentiment")),
			SentimentStd:       parseFloat(get("sentiment_std")),
			LastWeekSentiment:  parseFloat(get("last_week_sentiment")),
			LastMonthSentiment: parseFloat(get("last_month_sentiment")),
			PositiveRatio:      parseFloat(get("positive_ratio")),
			NegativeRatio:      parseFloat(get("negative_ratio")),
			LatestUpdate:       get("latest_update"),
		})
	}
	return rows, nil
}

// Numeric aggregates are advisory for the report; malformed cells become
// zero values instead of failing the whole run.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
