package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"fintrack/internal/logger"
)

// DefaultRatesURL is an exchangerate-api compatible endpoint. The base
// currency is appended as the last path segment.
const DefaultRatesURL = "https://api.exchangerate-api.com/v4/latest"

// fallbackRates are served when the rate provider cannot be reached.
var fallbackRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 149.5,
	"CAD": 1.36,
	"AUD": 1.53,
	"CHF": 0.88,
	"CNY": 7.08,
}

// Rates is a table of exchange rates relative to Base.
type Rates struct {
	Base     string             `json:"base"`
	Rates    map[string]float64 `json:"rates"`
	Fallback bool               `json:"fallback"`
}

// RateFetcher retrieves exchange rates over HTTP.
type RateFetcher struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewRateFetcher returns a RateFetcher for baseURL using httpClient, whose
// timeout bounds every request.
func NewRateFetcher(httpClient *http.Client, baseURL string) *RateFetcher {
	if baseURL == "" {
		baseURL = DefaultRatesURL
	}
	return &RateFetcher{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rates returns the current rates for base. Any failure is logged and the
// built-in table is returned with Fallback set, so callers always get rates.
func (f *RateFetcher) Rates(ctx context.Context, base string) Rates {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		base = "USD"
	}

	rates, err := f.fetch(ctx, base)
	if err != nil {
		logger.Get().Warnw("exchange rate fetch failed, using fallback rates", "base", base, "error", err)
		return Rates{Base: base, Rates: FallbackRates(), Fallback: true}
	}
	return Rates{Base: base, Rates: rates}
}

func (f *RateFetcher) fetch(ctx context.Context, base string) (map[string]float64, error) {
	url := f.baseURL + "/" + base

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates http request for %s: %w", base, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates request for %s: unexpected status %d", base, resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding rates response for %s: %w", base, err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("no rates returned for %s", base)
	}
	return body.Rates, nil
}

// FallbackRates returns a copy of the built-in rate table.
func FallbackRates() map[string]float64 {
	out := make(map[string]float64, len(fallbackRates))
	for k, v := range fallbackRates {
		out[k] = v
	}
	return out
}
