package crawler

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"
)

// Asset and document extensions that are never worth analyzing
var skipExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".svg": {}, ".webp": {}, ".ico": {},
	".css": {}, ".js": {}, ".json": {}, ".xml": {}, ".rss": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".rar": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wmv": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {},
}

// Path prefixes with no SEO value (admin surfaces, account flows)
var skipPathPrefixes = []string{
	"/admin",
	"/wp-admin",
	"/login",
	"/logout",
	"/register",
	"/user/",
	"/account",
	"/cart",
	"/checkout",
}

// Normalize canonicalizes a URL so the visited set recognizes aliases of the
// same page: fragment stripped, scheme and host lowercased, default ports
// removed, trailing slash trimmed on non-root paths.
func Normalize(u *url.URL) *url.URL {
	n := *u
	n.Fragment = ""
	n.RawFragment = ""
	n.Scheme = strings.ToLower(n.Scheme)
	n.Host = strings.ToLower(n.Host)

	if (n.Scheme == "http" && strings.HasSuffix(n.Host, ":80")) ||
		(n.Scheme == "https" && strings.HasSuffix(n.Host, ":443")) {
		n.Host = n.Hostname()
	}

	if len(n.Path) > 1 && strings.HasSuffix(n.Path, "/") {
		n.Path = strings.TrimSuffix(n.Path, "/")
		n.RawPath = ""
	}

	return &n
}

// ParseRoot parses and normalizes a crawl root. A bare domain gets an https
// scheme and a root path.
func ParseRoot(rootDomain string) (*url.URL, error) {
	raw := rootDomain
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse root domain %q: %w", rootDomain, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("root domain %q has no host", rootDomain)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return Normalize(u), nil
}

// Frontier is the crawl's admission gate: a visited set bounded by the page
// budget. A URL is admitted at most once per crawl, and once the budget is
// reached nothing further gets in.
type Frontier struct {
	rootHost string
	budget   int

	mu       sync.Mutex
	visited  map[string]struct{}
	admitted int
}

// NewFrontier creates a frontier scoped to the root's exact host.
func NewFrontier(root *url.URL, maxPages int) *Frontier {
	return &Frontier{
		rootHost: strings.ToLower(root.Host),
		budget:   maxPages,
		visited:  make(map[string]struct{}),
	}
}

// Budget returns the maximum number of URLs this frontier will ever admit.
func (f *Frontier) Budget() int {
	return f.budget
}

// Admit normalizes and filters a candidate URL. Returns the normalized URL
// and true only when it was actually admitted.
func (f *Frontier) Admit(u *url.URL) (*url.URL, bool) {
	if u == nil || !u.IsAbs() {
		return nil, false
	}

	n := Normalize(u)
	if !f.eligible(n) {
		return nil, false
	}

	key := n.String()

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, seen := f.visited[key]; seen {
		return nil, false
	}
	if f.admitted >= f.budget {
		return nil, false
	}

	f.visited[key] = struct{}{}
	f.admitted++
	return n, true
}

// Admitted returns how many URLs have been admitted so far. Monotonic, capped
// at the budget.
func (f *Frontier) Admitted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.admitted
}

func (f *Frontier) eligible(u *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host != f.rootHost {
		return false
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if _, skip := skipExtensions[ext]; skip {
		return false
	}

	lowerPath := strings.ToLower(u.Path)
	for _, prefix := range skipPathPrefixes {
		if strings.HasPrefix(lowerPath, prefix) {
			return false
		}
	}

	return true
}
