// Package market fetches analyst ratings from market-data providers and
// reduces them to short text lines suitable for embedding in a prompt.
package market

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the day-granularity date format used by ratings APIs.
const DateLayout = "2006-01-02"

// Rating is a single analyst action on a ticker. Zero price targets mean the
// provider did not report one.
type Rating struct {
	Ticker             string
	Analyst            string
	Action             string
	RatingCurrent      string
	RatingPrior        string
	PriceTargetCurrent float64
	PriceTargetPrior   float64
	Date               time.Time
}

// Source returns the analyst ratings issued for ticker between from and to.
type Source interface {
	Ratings(ctx context.Context, ticker string, from, to time.Time) ([]Rating, error)
	Name() string
}

// FormatRatings sorts ratings newest first, keeps at most limit of them and
// renders each as one line. The input slice is not modified.
func FormatRatings(ratings []Rating, limit int) []string {
	sorted := make([]Rating, len(ratings))
	copy(sorted, ratings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		lines = append(lines, FormatRating(r))
	}
	return lines
}

// FormatRating renders one rating as
//
//	<date>: <analyst> rated <ticker> <action> <current> (prior <prior>) and set a $X.XX target (prior $Y.YY)
//
// Prior clauses are omitted when the prior value is missing or unchanged, and
// the target clause is omitted when no current target was reported.
func FormatRating(r Rating) string {
	var b strings.Builder

	date := "unknown date"
	if !r.Date.IsZero() {
		date = r.Date.Format(DateLayout)
	}
	analyst := r.Analyst
	if analyst == "" {
		analyst = "An analyst"
	}

	fields := []string{analyst, "rated"}
	for _, f := range []string{r.Ticker, r.Action, r.RatingCurrent} {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	fmt.Fprintf(&b, "%s: %s", date, strings.Join(fields, " "))

	if r.RatingPrior != "" && r.RatingPrior != r.RatingCurrent {
		fmt.Fprintf(&b, " (prior %s)", r.RatingPrior)
	}

	if r.PriceTargetCurrent > 0 {
		fmt.Fprintf(&b, " and set a $%.2f target", r.PriceTargetCurrent)
		if r.PriceTargetPrior > 0 && r.PriceTargetPrior != r.PriceTargetCurrent {
			fmt.Fprintf(&b, " (prior $%.2f)", r.PriceTargetPrior)
		}
	}

	return b.String()
}

// NoRatingsMessage is returned in place of a model summary when a lookup
// comes back empty.
func NoRatingsMessage(ticker string, lookbackDays int) string {
	return fmt.Sprintf("No analyst ratings found for %s in the last %d days.", ticker, lookbackDays)
}
