// Package quoting implements the rate quote cache: given a parcel's
// committed dimensions/weight and a destination it requests carrier rate
// options from the provider and caches them per shipment with an expiry,
// serving cached quotes within the freshness window instead of re-querying.
package quoting

import (
	"context"
	"sync"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the freshness window of a cache entry. Provider quote ids
// are short-lived, so the window is kept well under typical rate validity.
const DefaultTTL = 15 * time.Minute

// Result is a quote lookup answer. Cached reports whether it was served
// from the cache rather than a fresh provider call. Warning annotates a
// successful provider response that carried zero rates.
type Result struct {
	Rates     []shipment.Quote
	Cached    bool
	ExpiresAt time.Time
	Warning   *ports.QuoteWarning
}

type entry struct {
	rates     []shipment.Quote
	warning   *ports.QuoteWarning
	expiresAt time.Time
}

// QuoteCache caches carrier rate quotes per shipment id with a fixed TTL.
//
// Concurrency: quote fetches for different shipments run fully in parallel;
// concurrent fetches for the same shipment are coalesced through a
// singleflight group so they share one in-flight provider call and one
// cache write. A gateway failure never overwrites an existing unexpired
// entry.
type QuoteCache struct {
	gateway ports.CarrierGateway
	ttl     time.Duration

	mu      sync.RWMutex
	entries map[kernel.UUID]entry

	group singleflight.Group

	// now is injectable for tests.
	now func() time.Time
}

// NewQuoteCache creates a quote cache over the given gateway. A ttl of zero
// falls back to DefaultTTL.
func NewQuoteCache(gateway ports.CarrierGateway, ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &QuoteCache{
		gateway: gateway,
		ttl:     ttl,
		entries: make(map[kernel.UUID]entry),
		now:     time.Now,
	}
}

// GetQuotes returns rate options for a shipment's parcel. A non-expired
// cache entry is returned with Cached=true unless forceRefresh is set;
// otherwise the gateway is queried, the entry overwritten, and the expiry
// reset.
func (c *QuoteCache) GetQuotes(
	ctx context.Context,
	shipmentID kernel.UUID,
	shipFrom, destination kernel.Address,
	parcel ports.ParcelSpec,
	forceRefresh bool,
) (Result, error) {
	if !forceRefresh {
		if res, ok := c.Peek(shipmentID); ok {
			return res, nil
		}
	}

	v, err, _ := c.group.Do(shipmentID.String(), func() (any, error) {
		// Re-check under the flight: a concurrent caller may have just
		// refreshed the entry while this one was queued.
		if !forceRefresh {
			if res, ok := c.Peek(shipmentID); ok {
				return res, nil
			}
		}

		quoted, gwErr := c.gateway.QuoteRates(ctx, shipFrom, destination, parcel)
		if gwErr != nil {
			// Do not clobber an unexpired entry on failure.
			return Result{}, gwErr
		}

		expiresAt := c.now().Add(c.ttl)
		c.mu.Lock()
		c.entries[shipmentID] = entry{
			rates:     quoted.Rates,
			warning:   quoted.Warning,
			expiresAt: expiresAt,
		}
		c.mu.Unlock()

		return Result{
			Rates:     quoted.Rates,
			Cached:    false,
			ExpiresAt: expiresAt,
			Warning:   quoted.Warning,
		}, nil
	})
	if err != nil {
		return Result{}, err
	}

	return v.(Result), nil
}

// GetAdHocQuotes quotes a parcel that does not exist as a persisted
// shipment (e.g. previewing cost for a custom, not-yet-ordered piece).
// Same request/response shape as GetQuotes, never cached.
func (c *QuoteCache) GetAdHocQuotes(
	ctx context.Context,
	shipFrom, destination kernel.Address,
	parcel ports.ParcelSpec,
) (Result, error) {
	quoted, err := c.gateway.QuoteRates(ctx, shipFrom, destination, parcel)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Rates:     quoted.Rates,
		Cached:    false,
		ExpiresAt: c.now().Add(c.ttl),
		Warning:   quoted.Warning,
	}, nil
}

// Peek returns the current unexpired cache entry for a shipment without
// touching the provider. Used by the purchase coordinator to re-validate a
// selected quote id against the latest rates.
func (c *QuoteCache) Peek(shipmentID kernel.UUID) (Result, bool) {
	c.mu.RLock()
	e, ok := c.entries[shipmentID]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return Result{}, false
	}
	return Result{
		Rates:     e.rates,
		Cached:    true,
		ExpiresAt: e.expiresAt,
		Warning:   e.warning,
	}, true
}

// Invalidate drops the cache entry for a shipment. Called when the parcel's
// physical attributes change, since cached rates no longer describe it.
func (c *QuoteCache) Invalidate(shipmentID kernel.UUID) {
	c.mu.Lock()
	delete(c.entries, shipmentID)
	c.mu.Unlock()
}
