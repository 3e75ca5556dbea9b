package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Outcome classifies what happened to a fetch. The set is closed: every fetch
// ends in exactly one of these.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeHTTPError       Outcome = "http_error"
	OutcomeTooLarge        Outcome = "too_large"
	OutcomeTimeout         Outcome = "timeout"
	OutcomeConnectionError Outcome = "connection_error"
)

// Analyzable reports whether the fetch produced a response worth analyzing.
// Transport failures (timeout, connection error) never do.
func (o Outcome) Analyzable() bool {
	return o == OutcomeSuccess || o == OutcomeHTTPError || o == OutcomeTooLarge
}

// FetchResult is the record of one fetch attempt.
type FetchResult struct {
	URL        *url.URL
	FinalURL   *url.URL
	Outcome    Outcome
	StatusCode int
	Body       []byte
	Truncated  bool
	Elapsed    time.Duration
	FetchedAt  time.Time
	Err        error
}

// Fetcher downloads single pages with an identifying user agent and a hard
// body size cap. Oversized bodies are truncated at the cap and flagged, not
// discarded.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// NewFetcher constructs a fetcher. A nil client gets a default with the given timeout.
func NewFetcher(client *http.Client, userAgent string, timeout time.Duration, maxBodyBytes int64) *Fetcher {
	if client == nil {
		client = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 5 * 1024 * 1024
	}

	return &Fetcher{
		client:       client,
		userAgent:    userAgent,
		maxBodyBytes: maxBodyBytes,
	}
}

// Fetch downloads a single URL. Redirects are followed; the final URL after
// redirects is recorded. Never returns an error: failures are encoded in the
// result's Outcome.
func (f *Fetcher) Fetch(ctx context.Context, target *url.URL) *FetchResult {
	result := &FetchResult{
		URL:       target,
		FinalURL:  target,
		FetchedAt: time.Now().UTC(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		result.Outcome = OutcomeConnectionError
		result.Err = fmt.Errorf("build request: %w", err)
		return result
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	result.Elapsed = time.Since(start)
	if err != nil {
		result.Outcome = classifyTransportError(err)
		result.Err = err
		return result
	}
	defer resp.Body.Close()

	if resp.Request != nil && resp.Request.URL != nil {
		result.FinalURL = resp.Request.URL
	}
	result.StatusCode = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	result.Elapsed = time.Since(start)
	if err != nil {
		result.Outcome = classifyTransportError(err)
		result.Err = fmt.Errorf("read body: %w", err)
		return result
	}

	if int64(len(body)) > f.maxBodyBytes {
		body = body[:f.maxBodyBytes]
		result.Truncated = true
	}
	result.Body = body

	switch {
	case result.Truncated:
		result.Outcome = OutcomeTooLarge
	case resp.StatusCode >= 400:
		result.Outcome = OutcomeHTTPError
	default:
		result.Outcome = OutcomeSuccess
	}

	return result
}

// Client exposes the underlying HTTP client for reuse (eg. robots.txt fetches).
func (f *Fetcher) Client() *http.Client {
	return f.client
}

func classifyTransportError(err error) Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return OutcomeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return OutcomeTimeout
	}
	return OutcomeConnectionError
}
