// Package indexer is the HTTP client of the indexed discovery API.
package indexer

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/json"

	httpclient "github.com/rujira-labs/finsdk/delivery/http"
)

const (
	marketsPath = "/markets"

	// maxErrorBodyLength bounds the body echoed in IndexerHTTPError.
	maxErrorBodyLength = 512
)

type indexerClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ domain.IndexerClient = &indexerClient{}

// New returns an indexer client for baseURL.
// apiKey is sent as a bearer token when non-empty.
// requestsPerMinute of zero disables client-side throttling.
func New(baseURL string, apiKey string, timeout time.Duration, requestsPerMinute int) domain.IndexerClient {
	return NewWithHTTPClient(baseURL, apiKey, httpclient.NewClient(timeout), requestsPerMinute)
}

// NewWithHTTPClient is New over a caller supplied http.Client.
func NewWithHTTPClient(baseURL string, apiKey string, client *http.Client, requestsPerMinute int) domain.IndexerClient {
	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
	}

	return &indexerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: client,
		limiter:    limiter,
	}
}

// GetMarkets implements domain.IndexerClient.
func (c *indexerClient) GetMarkets(ctx context.Context) (domain.IndexedMarkets, error) {
	var markets domain.IndexedMarkets
	if _, err := c.get(ctx, c.baseURL+marketsPath, &markets, false); err != nil {
		return domain.IndexedMarkets{}, err
	}
	return markets, nil
}

// GetMarket implements domain.IndexerClient.
func (c *indexerClient) GetMarket(ctx context.Context, baseDenom, quoteDenom string) (domain.IndexedMarket, bool, error) {
	requestURL := c.baseURL + marketsPath + "/" + url.PathEscape(baseDenom) + "/" + url.PathEscape(quoteDenom)

	var market domain.IndexedMarket
	found, err := c.get(ctx, requestURL, &market, true)
	if err != nil || !found {
		return domain.IndexedMarket{}, false, err
	}
	return market, true, nil
}

// get fetches requestURL into response. If allowNotFound is set, a 404 returns false with no error.
func (c *indexerClient) get(ctx context.Context, requestURL string, response any, allowNotFound bool) (bool, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return false, err
		}
	}

	header := http.Header{}
	if c.apiKey != "" {
		header.Set("Authorization", "Bearer "+c.apiKey)
	}

	body, statusCode, err := httpclient.Get(ctx, c.httpClient, requestURL, header)
	if err != nil {
		return false, err
	}

	if statusCode == http.StatusNotFound && allowNotFound {
		return false, nil
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return false, &domain.IndexerHTTPError{
			StatusCode: statusCode,
			URL:        requestURL,
			Body:       truncate(string(body), maxErrorBodyLength),
		}
	}

	if err := json.Unmarshal(body, response); err != nil {
		return false, &domain.IndexerDecodeError{URL: requestURL, Err: err}
	}

	return true, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
