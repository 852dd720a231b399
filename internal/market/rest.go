package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hoanghai1803/newsdesk/internal/logger"
)

const defaultRatingsURL = "https://api.benzinga.com/api/v2.1/calendar/ratings"

// maxBodyBytes bounds how much of an upstream response is read.
const maxBodyBytes = 5 * 1024 * 1024

// RESTSource queries a calendar-style ratings REST API that takes the API key,
// ticker and date range as query parameters.
type RESTSource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewRESTSource creates a RESTSource. An empty baseURL selects the default
// ratings endpoint.
func NewRESTSource(apiKey, baseURL string, timeout time.Duration) *RESTSource {
	if baseURL == "" {
		baseURL = defaultRatingsURL
	}
	return &RESTSource{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *RESTSource) Name() string {
	return "benzinga"
}

// Ratings fetches ratings for ticker issued between from and to. Any non-2xx
// status or undecodable body is an error.
func (s *RESTSource) Ratings(ctx context.Context, ticker string, from, to time.Time) ([]Rating, error) {
	q := url.Values{}
	q.Set("token", s.apiKey)
	q.Set("parameters[tickers]", ticker)
	q.Set("parameters[date_from]", from.Format(DateLayout))
	q.Set("parameters[date_to]", to.Format(DateLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("ratings: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ratings fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("ratings: reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.WarnContext(ctx, "ratings API returned non-2xx",
			"status", resp.StatusCode,
			"body", logger.Truncate(string(body), 500),
		)
		return nil, fmt.Errorf("ratings fetch: unexpected status code: %d", resp.StatusCode)
	}

	ratings, err := decodeRatings(body)
	if err != nil {
		slog.WarnContext(ctx, "ratings API returned unparseable body",
			"body", logger.Truncate(string(body), 500),
			"error", err,
		)
		return nil, fmt.Errorf("ratings decode: %w", err)
	}
	return ratings, nil
}

// restRating is one record of the ratings API response.
type restRating struct {
	Ticker        string    `json:"ticker"`
	Analyst       string    `json:"analyst"`
	AnalystName   string    `json:"analyst_name"`
	Action        string    `json:"action_company"`
	RatingCurrent string    `json:"rating_current"`
	RatingPrior   string    `json:"rating_prior"`
	PTCurrent     flexFloat `json:"pt_current"`
	PTPrior       flexFloat `json:"pt_prior"`
	Date          string    `json:"date"`
}

// decodeRatings accepts either a bare JSON array of ratings or an object with
// a "ratings" array. An object without that key decodes to no ratings.
func decodeRatings(body []byte) ([]Rating, error) {
	body = bytes.TrimSpace(body)

	var raw []restRating
	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, err
		}
	} else {
		var wrapped struct {
			Ratings []restRating `json:"ratings"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, err
		}
		raw = wrapped.Ratings
	}

	ratings := make([]Rating, 0, len(raw))
	for _, r := range raw {
		analyst := r.Analyst
		if analyst == "" {
			analyst = r.AnalystName
		}
		date, err := time.Parse(DateLayout, strings.TrimSpace(r.Date))
		if err != nil {
			date = time.Time{}
		}
		ratings = append(ratings, Rating{
			Ticker:             r.Ticker,
			Analyst:            analyst,
			Action:             r.Action,
			RatingCurrent:      r.RatingCurrent,
			RatingPrior:        r.RatingPrior,
			PriceTargetCurrent: float64(r.PTCurrent),
			PriceTargetPrior:   float64(r.PTPrior),
			Date:               date,
		})
	}
	return ratings, nil
}

// flexFloat decodes a JSON number, a numeric string, an empty string or null.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid price target %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}
