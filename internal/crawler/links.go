package crawler

import (
	"bytes"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ExtractLinks parses an HTML body and returns the absolute URLs of its
// anchors, resolved against the page's base URL. Duplicates and non-page
// schemes are dropped; frontier filtering happens at admission.
func ExtractLinks(body []byte, base *url.URL) []*url.URL {
	if len(body) == 0 || base == nil {
		return nil
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var links []*url.URL
	collectLinks(doc, base, seen, &links)
	return links
}

// collectLinks performs depth-first traversal collecting anchor hrefs
func collectLinks(n *html.Node, base *url.URL, seen map[string]struct{}, links *[]*url.URL) {
	if n.Type == html.ElementNode && n.Data == "a" {
		if href := getAttribute(n, "href"); shouldProcessLink(href) {
			if u := resolveLink(href, base); u != nil {
				key := u.String()
				if _, exists := seen[key]; !exists {
					seen[key] = struct{}{}
					*links = append(*links, u)
				}
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLinks(c, base, seen, links)
	}
}

// getAttribute extracts an attribute value from an HTML node
func getAttribute(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// shouldProcessLink determines if an href is worth resolving
func shouldProcessLink(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" || href == "/" {
		return false
	}

	excludedPrefixes := []string{
		"#", "javascript:", "mailto:", "tel:", "data:", "about:",
	}

	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(href, prefix) {
			return false
		}
	}

	return true
}

// resolveLink resolves an href against the base URL, dropping unparseable ones
func resolveLink(href string, base *url.URL) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil
	}
	return resolved
}
