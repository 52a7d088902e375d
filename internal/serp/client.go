// Package serp looks up where a domain ranks in search results for a keyword.
package serp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/AniruddhGohil/serp-checker/internal/config"
	"github.com/AniruddhGohil/serp-checker/internal/metrics"
	"github.com/AniruddhGohil/serp-checker/internal/models"
	"github.com/AniruddhGohil/serp-checker/internal/validation"
)

// maxBodySize bounds how much of a response is read (100 results is well under this).
const maxBodySize = 8 << 20

// Ranking is where a domain was found for a keyword. Position 0 means not found.
type Ranking struct {
	Position int
	URL      string
}

// NotFound is the ranking reported when the domain is absent from the results.
var NotFound = Ranking{Position: 0, URL: models.NotFoundURL}

// Client queries the SerpApi search endpoint.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	engine     string
	num        int
}

// NewClient creates a search client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.SerpTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.SerpRatePerSec), 1),
		baseURL: cfg.SerpAPIURL,
		apiKey:  cfg.SerpAPIKey,
		engine:  cfg.SerpEngine,
		num:     cfg.SerpNum,
	}
}

// Lookup issues one search for keyword and returns the first organic result
// whose link contains domain.
func (c *Client) Lookup(ctx context.Context, keyword, domain string) (Ranking, error) {
	if c.apiKey == "" {
		return Ranking{}, ErrMissingAPIKey
	}
	if strings.TrimSpace(keyword) == "" {
		return Ranking{}, ErrEmptyKeyword
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Ranking{}, err
	}

	params := url.Values{}
	params.Set("engine", c.engine)
	params.Set("q", keyword)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(c.num))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Ranking{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveSerpRequest("transport_error", time.Since(start))
		// The API key travels in the query string; keep it out of logs.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return Ranking{}, fmt.Errorf("search request failed: %w", urlErr.Err)
		}
		return Ranking{}, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.ObserveSerpRequest(strconv.Itoa(resp.StatusCode), time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Ranking{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return Ranking{}, &APIError{Status: resp.StatusCode, Message: msg}
	}

	return FindRanking(body, domain)
}

// FindRanking extracts the domain's ranking from a SerpApi JSON response.
func FindRanking(body []byte, domain string) (Ranking, error) {
	if !gjson.ValidBytes(body) {
		return Ranking{}, ErrInvalidResponse
	}

	parsed := gjson.ParseBytes(body)
	if msg := parsed.Get("error").String(); msg != "" {
		// An empty result page is reported as an error; the domain is simply absent.
		if isEmptyResults(msg) {
			return NotFound, nil
		}
		return Ranking{}, &APIError{Message: msg}
	}

	forms := validation.DomainForms(strings.ToLower(domain))
	ranking := NotFound
	parsed.Get("organic_results").ForEach(func(idx, result gjson.Result) bool {
		link := result.Get("link").String()
		if !containsAny(strings.ToLower(link), forms) {
			return true
		}
		position := int(result.Get("position").Int())
		if position <= 0 {
			position = int(idx.Int()) + 1
		}
		ranking = Ranking{Position: position, URL: link}
		return false
	})

	return ranking, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isEmptyResults(msg string) bool {
	return strings.Contains(msg, "hasn't returned any results")
}
