package handlers

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/cache"
	"github.com/mrdnfinance/x402-across/config"
	"github.com/mrdnfinance/x402-across/protocol/across"
	"github.com/rs/zerolog/log"
)

type QuoteFetcher interface {
	Quote(ctx context.Context, req across.QuoteRequest) (*across.Quote, error)
}

type QuoteHandler struct {
	fetcher QuoteFetcher
	cache   *cache.QuoteCache
	tokens  *config.TokenStore
}

func NewQuoteHandler(fetcher QuoteFetcher, quoteCache *cache.QuoteCache, tokens *config.TokenStore) *QuoteHandler {
	return &QuoteHandler{
		fetcher: fetcher,
		cache:   quoteCache,
		tokens:  tokens,
	}
}

// HandleRequest proxies a suggested-fees request and returns the normalized quote
func (h *QuoteHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store, max-age=0")

	req, err := h.parse(r)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request: %s", err), http.StatusBadRequest)
		return
	}

	if h.cache != nil {
		if quote, err := h.cache.Quote(req); err == nil {
			JSONResponse(w, quote, http.StatusOK)
			return
		}
	}

	quote, err := h.fetcher.Quote(r.Context(), req)
	if err != nil {
		log.Warn().Err(err).Msgf("Failed fetching quote from %d to %d", req.OriginChainId, req.DestinationChainId)

		var apiErr *across.APIError
		if errors.As(err, &apiErr) {
			JSONResponse(w, ProxyError{Error: "Failed to fetch Across quote", Details: apiErr.Body}, apiErr.StatusCode)
			return
		}
		JSONError(w, err, http.StatusBadGateway)
		return
	}

	if h.cache != nil {
		h.cache.Set(req, quote)
	}
	JSONResponse(w, quote, http.StatusOK)
}

func (h *QuoteHandler) parse(r *http.Request) (across.QuoteRequest, error) {
	q := r.URL.Query()

	originChainId, err := strconv.ParseUint(q.Get("originChainId"), 10, 64)
	if err != nil {
		return across.QuoteRequest{}, fmt.Errorf("field 'originChainId' invalid")
	}
	destinationChainId, err := strconv.ParseUint(q.Get("destinationChainId"), 10, 64)
	if err != nil {
		return across.QuoteRequest{}, fmt.Errorf("field 'destinationChainId' invalid")
	}

	for _, field := range []string{"inputToken", "outputToken"} {
		if !common.IsHexAddress(q.Get(field)) {
			return across.QuoteRequest{}, fmt.Errorf("field '%s' invalid", field)
		}
	}
	inputToken := common.HexToAddress(q.Get("inputToken"))
	if _, _, err := h.tokens.ConfigByAddress(originChainId, inputToken); err != nil {
		return across.QuoteRequest{}, err
	}

	amount, ok := new(big.Int).SetString(q.Get("inputAmount"), 10)
	if !ok || amount.Sign() <= 0 {
		return across.QuoteRequest{}, fmt.Errorf("field 'inputAmount' invalid")
	}

	tradeType := q.Get("tradeType")
	if tradeType != "" && tradeType != across.TRADE_TYPE_EXACT_INPUT {
		return across.QuoteRequest{}, fmt.Errorf("unsupported trade type %s", tradeType)
	}

	req := across.QuoteRequest{
		InputToken:         inputToken,
		OutputToken:        common.HexToAddress(q.Get("outputToken")),
		Amount:             amount,
		OriginChainId:      originChainId,
		DestinationChainId: destinationChainId,
	}
	if recipient := q.Get("recipient"); recipient != "" {
		if !common.IsHexAddress(recipient) {
			return across.QuoteRequest{}, fmt.Errorf("field 'recipient' invalid")
		}
		req.Recipient = common.HexToAddress(recipient)
	}

	return req, nil
}
