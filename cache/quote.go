package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/mrdnfinance/x402-across/protocol/across"
	"github.com/rs/zerolog/log"
)

const (
	QUOTE_TTL = time.Second * 20
)

type QuoteCache struct {
	quoteCache *ttlcache.Cache[string, across.Quote]
}

// NewQuoteCache starts a cache that expires quotes after the ttl and stops
// once the context is cancelled.
func NewQuoteCache(ctx context.Context, ttl time.Duration) *QuoteCache {
	if ttl == 0 {
		ttl = QUOTE_TTL
	}

	cache := ttlcache.New(
		ttlcache.WithTTL[string, across.Quote](ttl),
		ttlcache.WithDisableTouchOnHit[string, across.Quote](),
	)

	qc := &QuoteCache{
		quoteCache: cache,
	}

	go cache.Start()
	go func() {
		<-ctx.Done()
		cache.Stop()
	}()
	return qc
}

// Key identifies a quote by the complete input snapshot it was requested for.
func Key(req across.QuoteRequest) string {
	return fmt.Sprintf(
		"%d:%d:%s:%s:%s:%s:%x",
		req.OriginChainId,
		req.DestinationChainId,
		req.InputToken.Hex(),
		req.OutputToken.Hex(),
		req.Amount,
		req.Recipient.Hex(),
		req.Message,
	)
}

func (c *QuoteCache) Quote(req across.QuoteRequest) (*across.Quote, error) {
	item := c.quoteCache.Get(Key(req))
	if item == nil {
		return nil, fmt.Errorf("no quote found for %s", Key(req))
	}

	quote := item.Value()
	return &quote, nil
}

func (c *QuoteCache) Set(req across.QuoteRequest, quote *across.Quote) {
	log.Debug().Msgf("Caching quote for %s", Key(req))
	c.quoteCache.Set(Key(req), *quote, ttlcache.DefaultTTL)
}
