package docsite

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when no page is served at a URL.
var ErrNotFound = errors.New("docsite: page not found")

// SiteCache keeps the loaded site in memory and reloads it once the TTL has
// passed or after Invalidate.
type SiteCache struct {
	mu      sync.RWMutex
	site    *Site
	fetched time.Time
	ttl     time.Duration
	load    func() (*Site, error)
	onLoad  func(*Site)
}

// NewSiteCache creates a SiteCache around load. onLoad, if set, runs after
// every successful load while the write lock is held.
func NewSiteCache(load func() (*Site, error), ttl time.Duration, onLoad func(*Site)) *SiteCache {
	return &SiteCache{load: load, ttl: ttl, onLoad: onLoad}
}

func (c *SiteCache) valid() bool {
	return c.site != nil && (c.ttl <= 0 || time.Since(c.fetched) < c.ttl)
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *SiteCache) Invalidate() {
	c.mu.Lock()
	c.site = nil
	c.mu.Unlock()
}

// Site returns the cached site after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *SiteCache) Site() (*Site, error) {
	c.mu.RLock()
	if c.valid() {
		s := c.site
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.site, nil
	}
	s, err := c.load()
	if err != nil {
		return nil, err
	}
	c.site = s
	c.fetched = time.Now()
	if c.onLoad != nil {
		c.onLoad(s)
	}
	return s, nil
}

// Page returns the page at url together with its neighbours in navigation order.
func (c *SiteCache) Page(url string) (page Page, prev, next *Page, err error) {
	s, err := c.Site()
	if err != nil {
		return Page{}, nil, nil, err
	}
	p, i, ok := s.Lookup(url)
	if !ok {
		return Page{}, nil, nil, ErrNotFound
	}
	if i > 0 {
		prev = &s.Pages[i-1]
	}
	if i < len(s.Pages)-1 {
		next = &s.Pages[i+1]
	}
	return p, prev, next, nil
}
