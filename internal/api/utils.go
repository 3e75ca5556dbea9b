package api

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// entropyPool is a pool of ulid.MonotonicEntropy
var entropyPool = sync.Pool{
	New: func() any {
		return ulid.Monotonic(rand.Reader, 0)
	},
}

// generateID generates a new ULID
func generateID() string {
	e := entropyPool.Get().(*ulid.MonotonicEntropy)
	defer entropyPool.Put(e)
	ts := ulid.Timestamp(time.Now())
	return ulid.MustNew(ts, e).String()
}

// resolveMaxPages applies the default and upper bound to a requested page
// budget. Zero means "use the default".
func (a *API) resolveMaxPages(requested int) (int, error) {
	if requested < 0 {
		return 0, fmt.Errorf("max_pages must be positive, got %d", requested)
	}
	if requested == 0 {
		return a.crawlCfg.DefaultMaxPages, nil
	}
	if requested > a.crawlCfg.MaxPagesLimit {
		return 0, fmt.Errorf("max_pages exceeds limit of %d", a.crawlCfg.MaxPagesLimit)
	}
	return requested, nil
}
