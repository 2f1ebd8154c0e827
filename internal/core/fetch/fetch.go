// Package fetch runs sequential HTTP requests paced by internal/core/pace.
// One limiter per host: each host's call history is independent, and every
// limiter is driven from the single runner goroutine.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/callpace/callpace/internal/core"
	"github.com/callpace/callpace/internal/core/pace"
)

const defaultTimeout = 30 * time.Second

// Client performs paced GET requests.
type Client struct {
	HTTPClient  *http.Client
	DefaultRate float64
	HostRates   map[string]float64
	UserAgent   string
	ToolVersion string

	// Clock and Sleep are copied into new limiters. Nil means real time.
	Clock func() time.Time
	Sleep func(time.Duration)

	limiters map[string]*pace.Limiter
}

// Fetch waits for the host's next call slot, performs a GET, and reports the
// outcome. Transport and HTTP-level failures are reported in the result, not
// as an error; the returned error is reserved for unusable input.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*core.FetchResult, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme: %q", parsed.Scheme)
	}
	host := parsed.Hostname()
	if host == "" {
		return nil, fmt.Errorf("url has no host: %s", rawURL)
	}

	limiter, err := c.limiterFor(host)
	if err != nil {
		return nil, err
	}

	waitStart := c.now()
	requestedAt, err := limiter.Wait()
	if err != nil {
		return nil, err
	}
	waited := requestedAt.Sub(waitStart)

	result := &core.FetchResult{
		URL:    parsed.String(),
		Host:   host,
		Waited: waited,
		Provenance: core.Provenance{
			RequestedAt: requestedAt,
			ToolVersion: c.ToolVersion,
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		result.Outcome = core.OutcomeError
		result.Message = err.Error()
		result.Provenance.ResolvedAt = c.now()
		return result, nil
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	result.StatusCode = resp.StatusCode
	result.Bytes, _ = io.Copy(io.Discard, resp.Body)
	result.Provenance.ResolvedAt = c.now()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		result.Outcome = core.OutcomeRateLimited
		result.Message = "upstream rate limit hit"
		if retryAfter, extra := retryAfterHeader(resp); extra != nil {
			result.ExtraData = extra
			if retryAfter > 0 {
				result.ExtraData["retry_after_seconds"] = retryAfter.Seconds()
			}
		}
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		result.Outcome = core.OutcomeOK
	default:
		result.Outcome = core.OutcomeHTTPError
		result.Message = http.StatusText(resp.StatusCode)
	}

	return result, nil
}

// RateFor reports the requests-per-minute ceiling applied to a host.
func (c *Client) RateFor(host string) float64 {
	if rate, ok := c.HostRates[strings.ToLower(strings.TrimSpace(host))]; ok && rate > 0 {
		return rate
	}
	return c.DefaultRate
}

func (c *Client) limiterFor(host string) (*pace.Limiter, error) {
	key := strings.ToLower(host)
	if limiter, ok := c.limiters[key]; ok {
		return limiter, nil
	}

	limiter, err := pace.NewLimiter(c.RateFor(key))
	if err != nil {
		return nil, fmt.Errorf("limiter for %s: %w", host, err)
	}
	limiter.Clock = c.Clock
	limiter.Sleep = c.Sleep

	if c.limiters == nil {
		c.limiters = make(map[string]*pace.Limiter)
	}
	c.limiters[key] = limiter
	return limiter, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

func (c *Client) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}
