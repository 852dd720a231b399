package market

import (
	"context"
	"fmt"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// FinnhubSource reads upgrade/downgrade history from Finnhub. Finnhub does
// not report price targets, so formatted lines carry only rating changes.
type FinnhubSource struct {
	client *finnhub.DefaultApiService
}

// NewFinnhubSource authenticates every call with apiKey.
func NewFinnhubSource(apiKey string) *FinnhubSource {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return &FinnhubSource{client: finnhub.NewAPIClient(cfg).DefaultApi}
}

// Name identifies the source in logs.
func (s *FinnhubSource) Name() string {
	return "finnhub"
}

// Ratings returns upgrades and downgrades for ticker between from and to.
func (s *FinnhubSource) Ratings(ctx context.Context, ticker string, from, to time.Time) ([]Rating, error) {
	res, _, err := s.client.UpgradeDowngrade(ctx).
		Symbol(ticker).
		From(from.Format(DateLayout)).
		To(to.Format(DateLayout)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub upgrade-downgrade: %w", err)
	}
	return fromUpgradeDowngrades(res), nil
}

func fromUpgradeDowngrades(res []finnhub.UpgradeDowngrade) []Rating {
	ratings := make([]Rating, 0, len(res))
	for i := range res {
		u := &res[i]

		r := Rating{
			Ticker:        u.GetSymbol(),
			Analyst:       u.GetCompany(),
			Action:        actionLabel(u.GetAction()),
			RatingCurrent: u.GetToGrade(),
			RatingPrior:   u.GetFromGrade(),
		}
		if ts := u.GetGradeTime(); ts > 0 {
			r.Date = time.Unix(ts, 0).UTC()
		}
		ratings = append(ratings, r)
	}
	return ratings
}

// actionLabel expands Finnhub's short action codes.
func actionLabel(code string) string {
	switch code {
	case "up":
		return "Upgrades"
	case "down":
		return "Downgrades"
	case "init":
		return "Initiates Coverage On"
	case "main":
		return "Maintains"
	case "reit":
		return "Reiterates"
	default:
		return code
	}
}
