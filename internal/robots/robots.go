package robots

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// FetchRecorder observes robots.txt fetch outcomes.
type FetchRecorder interface {
	RecordRobotsFetch(success bool)
}

type noopRecorder struct{}

func (noopRecorder) RecordRobotsFetch(success bool) {}

// Agent evaluates robots.txt rules per origin with caching. Policy errors
// fail open: a site whose robots.txt is unreachable or malformed is treated
// as allowing everything, and the verdict is cached so the file is not
// refetched for every candidate URL.
type Agent struct {
	client    *http.Client
	userAgent string
	ttl       time.Duration
	recorder  FetchRecorder

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	fetched time.Time
	rules   *robotstxt.RobotsData
}

// NewAgent constructs a robots agent. A nil recorder disables fetch metrics.
func NewAgent(client *http.Client, userAgent string, ttl time.Duration, recorder FetchRecorder) *Agent {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Agent{
		client:    client,
		userAgent: userAgent,
		ttl:       ttl,
		recorder:  recorder,
		cache:     make(map[string]cacheEntry),
	}
}

// Allowed reports whether the target URL is permitted for our user agent.
func (a *Agent) Allowed(ctx context.Context, target *url.URL) bool {
	if target == nil || !target.IsAbs() {
		return false
	}

	rules := a.rules(ctx, target)

	group := rules.FindGroup(a.userAgent)
	if group == nil {
		group = rules.FindGroup("*")
		if group == nil {
			return true
		}
	}

	path := target.Path
	if path == "" {
		path = "/"
	}
	return group.Test(path)
}

// CrawlDelay returns the crawl delay the origin requests for our user agent,
// or zero when none is declared.
func (a *Agent) CrawlDelay(ctx context.Context, target *url.URL) time.Duration {
	if target == nil || !target.IsAbs() {
		return 0
	}

	rules := a.rules(ctx, target)

	group := rules.FindGroup(a.userAgent)
	if group == nil {
		group = rules.FindGroup("*")
		if group == nil {
			return 0
		}
	}
	return group.CrawlDelay
}

// Sitemaps returns the sitemap URLs declared in the origin's robots.txt.
func (a *Agent) Sitemaps(ctx context.Context, target *url.URL) []string {
	if target == nil || !target.IsAbs() {
		return nil
	}
	return a.rules(ctx, target).Sitemaps
}

// rules returns the cached rules for the target's origin, fetching on miss.
// Never returns nil: fetch and parse failures yield an allow-all ruleset.
func (a *Agent) rules(ctx context.Context, target *url.URL) *robotstxt.RobotsData {
	origin := strings.ToLower(target.Scheme + "://" + target.Host)

	a.mu.RLock()
	entry, ok := a.cache[origin]
	if ok && time.Since(entry.fetched) < a.ttl {
		a.mu.RUnlock()
		return entry.rules
	}
	a.mu.RUnlock()

	rules, err := a.fetch(ctx, origin)
	if err != nil {
		slog.Warn("Robots fetch failed, allowing all", "origin", origin, "error", err)
		a.recorder.RecordRobotsFetch(false)
		rules = allowAll()
	} else {
		a.recorder.RecordRobotsFetch(true)
	}

	a.mu.Lock()
	a.cache[origin] = cacheEntry{fetched: time.Now(), rules: rules}
	a.mu.Unlock()

	return rules
}

func (a *Agent) fetch(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil, fmt.Errorf("build robots request: %w", err)
	}
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("robots returned status %d", resp.StatusCode)
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	return data, nil
}

// Purge evicts cached rules for an origin.
func (a *Agent) Purge(origin string) {
	a.mu.Lock()
	delete(a.cache, strings.ToLower(origin))
	a.mu.Unlock()
}

func allowAll() *robotstxt.RobotsData {
	data, _ := robotstxt.FromString("")
	return data
}
