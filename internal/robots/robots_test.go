package robots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUA = "SEOCrawlerBot"

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestAllowed_RespectsDisallowRules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	agent := NewAgent(server.Client(), testUA, time.Minute, nil)

	assert.True(t, agent.Allowed(context.Background(), mustParse(t, server.URL+"/page")))
	assert.False(t, agent.Allowed(context.Background(), mustParse(t, server.URL+"/private/page")))
}

func TestAllowed_FailsOpenOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	agent := NewAgent(server.Client(), testUA, time.Minute, nil)

	assert.True(t, agent.Allowed(context.Background(), mustParse(t, server.URL+"/anything")))
}

func TestAllowed_FailsOpenOnUnreachableHost(t *testing.T) {
	client := &http.Client{Timeout: 200 * time.Millisecond}
	agent := NewAgent(client, testUA, time.Minute, nil)

	assert.True(t, agent.Allowed(context.Background(), mustParse(t, "http://127.0.0.1:1/page")))
}

func TestRules_CachedPerOrigin(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fetches.Add(1)
			w.Write([]byte("User-agent: *\nDisallow:\n"))
		}
	}))
	defer server.Close()

	agent := NewAgent(server.Client(), testUA, time.Minute, nil)

	for i := 0; i < 5; i++ {
		agent.Allowed(context.Background(), mustParse(t, server.URL+"/page"))
	}

	assert.Equal(t, int32(1), fetches.Load())
}

func TestRules_FailureCached(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	agent := NewAgent(server.Client(), testUA, time.Minute, nil)

	for i := 0; i < 5; i++ {
		assert.True(t, agent.Allowed(context.Background(), mustParse(t, server.URL+"/page")))
	}

	assert.Equal(t, int32(1), fetches.Load())
}

func TestCrawlDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nCrawl-delay: 2\n"))
	}))
	defer server.Close()

	agent := NewAgent(server.Client(), testUA, time.Minute, nil)

	assert.Equal(t, 2*time.Second, agent.CrawlDelay(context.Background(), mustParse(t, server.URL+"/")))
}

func TestSitemaps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow:\nSitemap: https://example.com/sitemap.xml\n"))
	}))
	defer server.Close()

	agent := NewAgent(server.Client(), testUA, time.Minute, nil)

	sitemaps := agent.Sitemaps(context.Background(), mustParse(t, server.URL+"/"))
	assert.Equal(t, []string{"https://example.com/sitemap.xml"}, sitemaps)
}

func TestPurge(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write([]byte("User-agent: *\nDisallow:\n"))
	}))
	defer server.Close()

	agent := NewAgent(server.Client(), testUA, time.Minute, nil)
	target := mustParse(t, server.URL+"/page")

	agent.Allowed(context.Background(), target)
	agent.Purge(target.Scheme + "://" + target.Host)
	agent.Allowed(context.Background(), target)

	assert.Equal(t, int32(2), fetches.Load())
}
