package crawler

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
)

const maxSitemapBytes = 10 * 1024 * 1024

// sitemapDoc covers both <urlset> and <sitemapindex> documents
type sitemapDoc struct {
	PageLocs  []string `xml:"url>loc"`
	IndexLocs []string `xml:"sitemap>loc"`
}

// fetchSitemapURLs downloads a sitemap and returns the page URLs it lists.
// Sitemap index files are followed one level deep. Errors are swallowed:
// sitemap seeding is best effort and a broken sitemap must not fail a crawl.
func fetchSitemapURLs(ctx context.Context, client *http.Client, userAgent, sitemapURL string) []*url.URL {
	doc, ok := fetchSitemapDoc(ctx, client, userAgent, sitemapURL)
	if !ok {
		return nil
	}

	var pages []*url.URL
	for _, loc := range doc.PageLocs {
		if u, err := url.Parse(loc); err == nil {
			pages = append(pages, u)
		}
	}

	for _, loc := range doc.IndexLocs {
		child, ok := fetchSitemapDoc(ctx, client, userAgent, loc)
		if !ok {
			continue
		}
		for _, pageLoc := range child.PageLocs {
			if u, err := url.Parse(pageLoc); err == nil {
				pages = append(pages, u)
			}
		}
	}

	return pages
}

func fetchSitemapDoc(ctx context.Context, client *http.Client, userAgent, sitemapURL string) (*sitemapDoc, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, false
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSitemapBytes))
	if err != nil {
		return nil, false
	}

	var doc sitemapDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, false
	}
	return &doc, true
}
