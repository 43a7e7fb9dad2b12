package marketdata

import (
	"context"
	"sync"
	"time"

	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// marketOpen is the daily cache expiry boundary in exchange local time.
const (
	marketOpenHour   = 9
	marketOpenMinute = 30
)

// InstrumentCache holds a spot snapshot table with validity keyed to the
// next market open: the code/name/previous-close columns of a table fetched
// at any point during or after a session stay usable until 09:30 of the next
// trading day, when listings and previous-close values change. The live
// price columns go stale much faster; FetchedAt lets callers decide how old
// a snapshot they will trade on. The cache is an explicit value passed to
// its consumers, never package state, so independent schedulers do not
// share staleness.
type InstrumentCache struct {
	mu         sync.RWMutex
	loc        *time.Location
	quotes     []types.Quote
	byCode     map[string]types.Quote
	fetchedAt  time.Time
	validUntil time.Time
}

// NewInstrumentCache creates an empty cache using the given exchange
// timezone for the market-open boundary.
func NewInstrumentCache(loc *time.Location) *InstrumentCache {
	return &InstrumentCache{
		mu:         sync.RWMutex{},
		loc:        loc,
		quotes:     nil,
		byCode:     make(map[string]types.Quote),
		fetchedAt:  time.Time{},
		validUntil: time.Time{},
	}
}

// Valid reports whether the cached table is still usable at the given time.
func (c *InstrumentCache) Valid(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.quotes) > 0 && now.Before(c.validUntil)
}

// Update replaces the cached table and stamps its validity to the next
// market open after now.
func (c *InstrumentCache) Update(quotes []types.Quote, now time.Time) {
	byCode := make(map[string]types.Quote, len(quotes))
	for _, quote := range quotes {
		byCode[quote.Code] = quote
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.quotes = quotes
	c.byCode = byCode
	c.fetchedAt = now
	c.validUntil = nextMarketOpen(now.In(c.loc))
}

// FetchedAt returns when the cached snapshot was taken.
func (c *InstrumentCache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.fetchedAt
}

// Lookup resolves a code or display name against the cached table.
func (c *InstrumentCache) Lookup(symbolOrName string) (types.Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if quote, ok := c.byCode[bareCode(symbolOrName)]; ok {
		return quote, true
	}

	return findQuote(c.quotes, symbolOrName)
}

// Size returns the number of cached instruments.
func (c *InstrumentCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.quotes)
}

// nextMarketOpen returns the first weekday 09:30 strictly after t.
func nextMarketOpen(t time.Time) time.Time {
	open := time.Date(t.Year(), t.Month(), t.Day(), marketOpenHour, marketOpenMinute, 0, 0, t.Location())

	for !open.After(t) || open.Weekday() == time.Saturday || open.Weekday() == time.Sunday {
		open = open.AddDate(0, 0, 1)
	}

	return open
}

// quoteTTL bounds how old a spot snapshot a lookup may trade on. One
// snapshot covers every lookup of a decision cycle; the next cycle fetches
// fresh prices.
const quoteTTL = 5 * time.Minute

// CachedProvider serves quotes from an InstrumentCache, refreshing the whole
// table from the underlying fetcher when the snapshot is older than one
// decision cycle or the instrument table has crossed the market-open
// boundary. Lookups within one cycle share a single network fetch; lookups
// in later cycles never see that cycle's prices.
type CachedProvider struct {
	fetcher  SpotFetcher
	cache    *InstrumentCache
	maxStale time.Duration
	now      func() time.Time
}

// NewCachedProvider wraps fetcher with the given cache.
func NewCachedProvider(fetcher SpotFetcher, cache *InstrumentCache) *CachedProvider {
	return &CachedProvider{
		fetcher:  fetcher,
		cache:    cache,
		maxStale: quoteTTL,
		now:      time.Now,
	}
}

// Refresh forces a fresh snapshot fetch regardless of cache validity.
func (p *CachedProvider) Refresh(ctx context.Context) error {
	quotes, err := p.fetcher.FetchSpot(ctx)
	if err != nil {
		return err
	}

	p.cache.Update(quotes, p.now())

	return nil
}

func (p *CachedProvider) ensure(ctx context.Context) error {
	now := p.now()
	if p.cache.Valid(now) && now.Sub(p.cache.FetchedAt()) < p.maxStale {
		return nil
	}

	return p.Refresh(ctx)
}

// GetQuote returns the cached quote for a code or display name.
func (p *CachedProvider) GetQuote(ctx context.Context, symbolOrName string) (types.Quote, error) {
	if err := p.ensure(ctx); err != nil {
		return types.Quote{}, err
	}

	if quote, ok := p.cache.Lookup(symbolOrName); ok {
		return quote, nil
	}

	return types.Quote{}, errors.Newf(errors.ErrCodeQuoteNotFound, "no quote for %s", symbolOrName)
}

// GetQuotes returns cached quotes for the given codes, keyed by code.
func (p *CachedProvider) GetQuotes(ctx context.Context, symbols []string) (map[string]types.Quote, error) {
	if err := p.ensure(ctx); err != nil {
		return nil, err
	}

	result := make(map[string]types.Quote, len(symbols))

	for _, symbol := range symbols {
		if quote, ok := p.cache.Lookup(symbol); ok {
			result[symbol] = quote
		}
	}

	return result, nil
}
