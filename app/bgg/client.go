package bgg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lysyi3m/bgg-plays/app/cfg"
	"golang.org/x/time/rate"
)

// API selects which family of catalog endpoints a request goes to.
type API int

const (
	APIv2   API = iota // xmlapi2
	APIv1              // legacy xmlapi
	APIJSON            // geekdo JSON API
)

func (a API) String() string {
	switch a {
	case APIv2:
		return "xmlapi2"
	case APIv1:
		return "xmlapi"
	case APIJSON:
		return "json"
	default:
		return "unknown"
	}
}

const (
	DefaultMaxAttempts = 6
	DefaultBaseDelay   = time.Second
)

// Fetcher retrieves raw documents from the catalog.
type Fetcher interface {
	Fetch(ctx context.Context, api API, path string, params map[string]string) ([]byte, error)
}

var _ Fetcher = (*Client)(nil)

type Client struct {
	httpClient  *http.Client
	baseURLs    map[API]string
	userAgent   string
	limiter     *rate.Limiter
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewClient(c *cfg.Cfg) *Client {
	limit := rate.Inf
	if c.RateLimit > 0 {
		limit = rate.Limit(c.RateLimit)
	}

	return &Client{
		httpClient: &http.Client{Timeout: c.HTTPTimeout},
		baseURLs: map[API]string{
			APIv2:   c.XMLAPI2URL,
			APIv1:   c.XMLAPIURL,
			APIJSON: c.JSONAPIURL,
		},
		userAgent:   c.UserAgent,
		limiter:     rate.NewLimiter(limit, 1),
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		sleep:       sleepContext,
	}
}

// Fetch requests path under the selected API and returns the final body.
// While the server answers 202 the request is repeated after waiting
// baseDelay*2^attempt, up to maxAttempts in total; the last body is returned
// even if it is still a 202.
func (c *Client) Fetch(ctx context.Context, api API, path string, params map[string]string) ([]byte, error) {
	reqURL, err := c.buildURL(api, path, params)
	if err != nil {
		return nil, err
	}

	status, body, err := c.do(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	attempts := 1
	for status == http.StatusAccepted && attempts < c.maxAttempts {
		delay := c.baseDelay * time.Duration(1<<uint(attempts))
		slog.Info("Waiting for delayed response", "url", reqURL, "attempt", attempts, "delay", delay.String())

		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}

		status, body, err = c.do(ctx, reqURL)
		if err != nil {
			return nil, err
		}
		attempts++
	}

	if status != http.StatusOK && status != http.StatusAccepted {
		return nil, fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, status, reqURL)
	}

	slog.Debug("Catalog response received", "url", reqURL, "status", status, "attempts", attempts, "bytes", len(body))

	return body, nil
}

func (c *Client) do(ctx context.Context, reqURL string) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to fetch %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, data, nil
}

func (c *Client) buildURL(api API, path string, params map[string]string) (string, error) {
	baseURL, ok := c.baseURLs[api]
	if !ok || baseURL == "" {
		return "", fmt.Errorf("no base URL configured for %s API", api)
	}

	reqURL := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")

	if len(params) > 0 {
		values := url.Values{}
		for key, value := range params {
			values.Set(key, value)
		}
		reqURL += "?" + values.Encode()
	}

	return reqURL, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
