package across

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	ACROSS_URL             = "https://testnet.across.to/api"
	TRADE_TYPE_EXACT_INPUT = "exactInput"

	QUOTE_RETRIES    = 3
	QUOTE_RETRY_WAIT = 500 * time.Millisecond
	QUOTE_TIMEOUT    = 15 * time.Second
)

var ErrQuoteUnavailable = errors.New("quote unavailable")

type QuoteRequest struct {
	InputToken         common.Address
	OutputToken        common.Address
	Amount             *big.Int
	OriginChainId      uint64
	DestinationChainId uint64
	Recipient          common.Address
	Message            []byte
}

// Values encodes the request as suggested-fees query parameters. The API
// names the input amount "amount".
func (r QuoteRequest) Values() url.Values {
	v := url.Values{}
	v.Set("inputToken", r.InputToken.Hex())
	v.Set("outputToken", r.OutputToken.Hex())
	v.Set("amount", r.Amount.String())
	v.Set("originChainId", strconv.FormatUint(r.OriginChainId, 10))
	v.Set("destinationChainId", strconv.FormatUint(r.DestinationChainId, 10))
	v.Set("tradeType", TRADE_TYPE_EXACT_INPUT)
	if r.Recipient != (common.Address{}) {
		v.Set("recipient", r.Recipient.Hex())
	}
	if len(r.Message) > 0 {
		v.Set("message", hexutil.Encode(r.Message))
	}
	return v
}

type AcrossAPI struct {
	HTTPClient *http.Client
	baseURL    string
}

func NewAcrossAPI(baseURL string) *AcrossAPI {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = QUOTE_RETRIES - 1
	retryClient.RetryWaitMin = QUOTE_RETRY_WAIT
	retryClient.RetryWaitMax = QUOTE_RETRY_WAIT
	retryClient.HTTPClient.Timeout = QUOTE_TIMEOUT
	retryClient.Logger = nil

	if baseURL == "" {
		baseURL = ACROSS_URL
	}

	return &AcrossAPI{
		HTTPClient: retryClient.StandardClient(),
		baseURL:    baseURL,
	}
}

// SuggestedFees fetches the raw suggested-fees response.
func (a *AcrossAPI) SuggestedFees(ctx context.Context, req QuoteRequest) ([]byte, error) {
	u := fmt.Sprintf("%s/suggested-fees?%s", a.baseURL, req.Values().Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %s", ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %s", ErrQuoteUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// Quote fetches and normalizes a quote for the request.
func (a *AcrossAPI) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	body, err := a.SuggestedFees(ctx, req)
	if err != nil {
		return nil, err
	}

	return NormalizeQuote(body, req.Amount, time.Now())
}

// APIError is returned when the quote service answers with a non-200 status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("across API returned %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return ErrQuoteUnavailable
}
