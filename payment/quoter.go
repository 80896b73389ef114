package payment

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/mrdnfinance/x402-across/cache"
	"github.com/mrdnfinance/x402-across/protocol/across"
	"github.com/rs/zerolog/log"
)

const (
	QUOTE_SOURCE_ACROSS     = "across"
	QUOTE_SOURCE_CACHE      = "cache"
	QUOTE_SOURCE_MOCK       = "mock"
	QUOTE_SOURCE_SAME_CHAIN = "same-chain"
)

type QuoteFetcher interface {
	Quote(ctx context.Context, req across.QuoteRequest) (*across.Quote, error)
}

type QuoteMetrics interface {
	TrackQuote(source string)
}

// QuoteInput is the snapshot of user input a quote is requested for.
type QuoteInput struct {
	Amount             *big.Int
	SourceChainId      uint64
	DestinationChainId uint64
}

type QuoteResult struct {
	Generation uint64
	Input      QuoteInput
	Quote      *across.Quote
	Err        error
}

// Quoter fetches quotes for the configured chains. Request keys every fetch
// to a generation so that a response for superseded input is dropped.
type Quoter struct {
	fetcher QuoteFetcher
	cache   *cache.QuoteCache
	chains  Chains
	metrics QuoteMetrics
	now     func() time.Time

	lock       sync.Mutex
	generation uint64
	latest     *QuoteResult
}

// NewQuoter creates a quoter; a nil fetcher serves mock quotes and a nil
// cache disables caching.
func NewQuoter(fetcher QuoteFetcher, quoteCache *cache.QuoteCache, chains Chains, metrics QuoteMetrics) *Quoter {
	return &Quoter{
		fetcher: fetcher,
		cache:   quoteCache,
		chains:  chains,
		metrics: metrics,
		now:     time.Now,
	}
}

// Quote returns a quote for the input. Same-chain input never reaches the
// quote service.
func (q *Quoter) Quote(ctx context.Context, input QuoteInput) (*across.Quote, error) {
	source, err := q.chains.ById(input.SourceChainId)
	if err != nil {
		return nil, err
	}
	dest, err := q.chains.ById(input.DestinationChainId)
	if err != nil {
		return nil, err
	}

	if source.Id == dest.Id {
		q.track(QUOTE_SOURCE_SAME_CHAIN)
		return across.SameChainQuote(input.Amount, q.now()), nil
	}

	req := across.QuoteRequest{
		InputToken:         source.Usdc,
		OutputToken:        dest.Usdc,
		Amount:             input.Amount,
		OriginChainId:      source.Id,
		DestinationChainId: dest.Id,
		Recipient:          dest.Proxy,
	}

	if q.cache != nil {
		if quote, err := q.cache.Quote(req); err == nil {
			q.track(QUOTE_SOURCE_CACHE)
			return quote, nil
		}
	}

	var quote *across.Quote
	if q.fetcher == nil {
		quote = across.MockQuote(input.Amount, q.now())
		q.track(QUOTE_SOURCE_MOCK)
	} else {
		quote, err = q.fetcher.Quote(ctx, req)
		if err != nil {
			return nil, err
		}
		q.track(QUOTE_SOURCE_ACROSS)
	}

	if q.cache != nil {
		q.cache.Set(req, quote)
	}
	return quote, nil
}

// Request fetches a quote in the background and supersedes every earlier
// request. The returned channel yields the result only if no newer request
// was issued before it arrived; otherwise it is closed empty.
func (q *Quoter) Request(ctx context.Context, input QuoteInput) <-chan QuoteResult {
	q.lock.Lock()
	q.generation++
	generation := q.generation
	q.lock.Unlock()

	results := make(chan QuoteResult, 1)
	go func() {
		defer close(results)

		quote, err := q.Quote(ctx, input)

		q.lock.Lock()
		defer q.lock.Unlock()
		if generation != q.generation {
			log.Debug().Msgf("Dropping quote of generation %d, latest is %d", generation, q.generation)
			return
		}

		result := QuoteResult{
			Generation: generation,
			Input:      input,
			Quote:      quote,
			Err:        err,
		}
		q.latest = &result
		results <- result
	}()

	return results
}

// Latest returns the result of the newest request, if it completed.
func (q *Quoter) Latest() (QuoteResult, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()

	if q.latest == nil || q.latest.Generation != q.generation {
		return QuoteResult{}, false
	}
	return *q.latest, true
}

func (q *Quoter) track(source string) {
	if q.metrics != nil {
		q.metrics.TrackQuote(source)
	}
}
