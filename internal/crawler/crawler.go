package crawler

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"seocrawler/internal/config"
	"seocrawler/internal/robots"
)

// Crawler walks one site breadth-first: robots check, per-origin rate gate,
// fetch, link discovery, repeat. Every completed fetch (transport failures
// included) is delivered on the results channel. The crawl ends when the
// frontier is exhausted, the page budget is spent, or the context cancels.
type Crawler struct {
	cfg      config.CrawlConfig
	root     *url.URL
	frontier *Frontier
	fetcher  *Fetcher
	robots   *robots.Agent
	limiter  *OriginLimiter
	log      *slog.Logger

	results chan *FetchResult
	pool    *WorkerPool
	wg      sync.WaitGroup
}

// New builds a crawler for a single root URL with the given page budget.
func New(cfg config.CrawlConfig, root *url.URL, maxPages int, fetcher *Fetcher, robotsAgent *robots.Agent, logger *slog.Logger) *Crawler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Crawler{
		cfg:      cfg,
		root:     root,
		frontier: NewFrontier(root, maxPages),
		fetcher:  fetcher,
		robots:   robotsAgent,
		limiter:  NewOriginLimiter(cfg.RequestInterval),
		log:      logger.With(slog.String("root", root.String())),
	}
}

// Run starts the crawl and returns the results channel. The channel is closed
// once the crawl terminates. Run must be called at most once.
func (c *Crawler) Run(ctx context.Context) <-chan *FetchResult {
	c.results = make(chan *FetchResult)
	go c.run(ctx)
	return c.results
}

// Discovered returns the number of URLs admitted so far. Monotonic, capped at
// the page budget, so it serves as the crawl's running pages_total.
func (c *Crawler) Discovered() int {
	return c.frontier.Admitted()
}

func (c *Crawler) run(ctx context.Context) {
	defer close(c.results)

	pool, err := NewWorkerPool(ctx, c.cfg.WorkerCount, c.frontier.Budget())
	if err != nil {
		c.log.Error("Failed to start worker pool", slog.Any("error", err))
		return
	}
	c.pool = pool
	defer pool.Close()

	c.seed(ctx)

	c.wg.Wait()
}

// seed admits the root URL and any sitemap-listed URLs, and applies the
// origin's robots crawl delay to the rate gate.
func (c *Crawler) seed(ctx context.Context) {
	origin := c.root.Scheme + "://" + c.root.Host

	if delay := c.robots.CrawlDelay(ctx, c.root); delay > 0 {
		c.limiter.SetDelay(origin, delay)
	}

	c.enqueue(ctx, c.root)

	sitemaps := c.robots.Sitemaps(ctx, c.root)
	if len(sitemaps) == 0 {
		sitemaps = []string{origin + "/sitemap.xml"}
	}

	for _, sitemapURL := range sitemaps {
		for _, u := range fetchSitemapURLs(ctx, c.fetcher.Client(), c.cfg.UserAgent, sitemapURL) {
			c.enqueue(ctx, u)
		}
	}
}

func (c *Crawler) enqueue(ctx context.Context, u *url.URL) {
	if ctx.Err() != nil {
		return
	}

	normalized, ok := c.frontier.Admit(u)
	if !ok {
		return
	}

	c.wg.Add(1)
	if err := c.pool.Submit(func(workerCtx context.Context) {
		defer c.wg.Done()
		c.crawl(workerCtx, normalized)
	}); err != nil {
		c.wg.Done()
		c.log.Error("Enqueue failed", slog.String("url", normalized.String()), slog.Any("error", err))
	}
}

func (c *Crawler) crawl(ctx context.Context, u *url.URL) {
	if ctx.Err() != nil {
		return
	}

	if !c.robots.Allowed(ctx, u) {
		c.log.Debug("Blocked by robots", slog.String("url", u.String()))
		return
	}

	if err := c.limiter.Wait(ctx, u.Scheme+"://"+u.Host); err != nil {
		return
	}

	result := c.fetcher.Fetch(ctx, u)

	select {
	case c.results <- result:
	case <-ctx.Done():
		return
	}

	if result.Outcome != OutcomeSuccess {
		return
	}

	base := result.FinalURL
	if base == nil {
		base = u
	}

	for _, link := range ExtractLinks(result.Body, base) {
		c.enqueue(ctx, link)
	}
}
