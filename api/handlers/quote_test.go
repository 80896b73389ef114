package handlers_test

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/api/handlers"
	"github.com/mrdnfinance/x402-across/cache"
	"github.com/mrdnfinance/x402-across/config"
	"github.com/mrdnfinance/x402-across/protocol/across"
	"github.com/stretchr/testify/suite"
)

const (
	baseSepoliaUSDC     = "0x036CbD53842c5426634e7929541eC2318f3dCF7e"
	optimismSepoliaUSDC = "0x5fd84259d66Cd46123540766Be93DFE6D43130D7"
)

type QuoteHandlerTestSuite struct {
	suite.Suite

	acrossHandler http.HandlerFunc
	calls         atomic.Int32
	server        *httptest.Server
	cancel        context.CancelFunc
	handler       *handlers.QuoteHandler
}

func TestRunQuoteHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}

func (s *QuoteHandlerTestSuite) SetupTest() {
	s.calls.Store(0)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.acrossHandler(w, r)
	}))

	tokens := config.NewTokenStore()
	tokens.Add(84532, map[string]config.TokenConfig{
		"usdc": {Address: common.HexToAddress(baseSepoliaUSDC), Decimals: 6},
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.handler = handlers.NewQuoteHandler(across.NewAcrossAPI(s.server.URL), cache.NewQuoteCache(ctx, 0), tokens)
}

func (s *QuoteHandlerTestSuite) TearDownTest() {
	s.cancel()
	s.server.Close()
}

func (s *QuoteHandlerTestSuite) request(params map[string]string) *http.Request {
	v := url.Values{
		"originChainId":      {"84532"},
		"destinationChainId": {"11155420"},
		"inputToken":         {baseSepoliaUSDC},
		"outputToken":        {optimismSepoliaUSDC},
		"inputAmount":        {"1000000"},
	}
	for key, value := range params {
		if value == "" {
			v.Del(key)
			continue
		}
		v.Set(key, value)
	}
	return httptest.NewRequest(http.MethodGet, "/api/across-quote?"+v.Encode(), nil)
}

func (s *QuoteHandlerTestSuite) Test_HandleRequest_InvalidParameters() {
	for _, params := range []map[string]string{
		{"originChainId": "base"},
		{"destinationChainId": ""},
		{"inputToken": "usdc"},
		{"outputToken": ""},
		{"inputAmount": "0"},
		{"inputAmount": "1.5"},
		{"tradeType": "exactOutput"},
		{"recipient": "0x1234"},
	} {
		recorder := httptest.NewRecorder()

		s.handler.HandleRequest(recorder, s.request(params))

		s.Equal(http.StatusBadRequest, recorder.Code, params)
	}
	s.Equal(int32(0), s.calls.Load())
}

func (s *QuoteHandlerTestSuite) Test_HandleRequest_UnknownInputToken() {
	recorder := httptest.NewRecorder()

	s.handler.HandleRequest(recorder, s.request(map[string]string{
		"inputToken": optimismSepoliaUSDC,
	}))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *QuoteHandlerTestSuite) Test_HandleRequest_ReturnsNormalizedQuote() {
	s.acrossHandler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/suggested-fees", r.URL.Path)
		s.Equal("1000000", r.URL.Query().Get("amount"))
		s.Equal(across.TRADE_TYPE_EXACT_INPUT, r.URL.Query().Get("tradeType"))
		_, _ = w.Write([]byte(`{
			"totalRelayFee": {"total": "5000", "pct": "5000000000000000"},
			"lpFee": {"total": "1000"},
			"relayerCapitalFee": {"total": "3000"},
			"relayerGasFee": {"total": "1000"},
			"outputAmount": "995000",
			"timestamp": "1700000000",
			"fillDeadline": "1700001800",
			"spokePoolAddress": "0x82B564983aE7274c86695917BBf8C99ECb6F0F8F"
		}`))
	}
	recorder := httptest.NewRecorder()

	s.handler.HandleRequest(recorder, s.request(nil))

	s.Equal(http.StatusOK, recorder.Code)
	var quote across.Quote
	s.Nil(json.NewDecoder(recorder.Body).Decode(&quote))
	s.Equal("995000", quote.OutputAmount)
	s.Equal("5000", quote.TotalRelayFee)
	s.Equal(uint64(1700001800), quote.FillDeadline)
	s.Nil(quote.Validate(big.NewInt(1000000)))
}

func (s *QuoteHandlerTestSuite) Test_HandleRequest_CachedQuote() {
	s.acrossHandler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalRelayFee": {"total": "5000"}, "outputAmount": "995000", "timestamp": "1700000000"}`))
	}

	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		s.handler.HandleRequest(recorder, s.request(nil))
		s.Equal(http.StatusOK, recorder.Code)
		s.Equal("no-store, max-age=0", recorder.Header().Get("Cache-Control"))
	}

	s.Equal(int32(1), s.calls.Load())
}

func (s *QuoteHandlerTestSuite) Test_HandleRequest_ServiceRejects() {
	s.acrossHandler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "Amount too low"}`))
	}
	recorder := httptest.NewRecorder()

	s.handler.HandleRequest(recorder, s.request(nil))

	s.Equal(http.StatusBadRequest, recorder.Code)
	var resp handlers.ProxyError
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal("Failed to fetch Across quote", resp.Error)
	s.Contains(resp.Details, "Amount too low")
}

func (s *QuoteHandlerTestSuite) Test_HandleRequest_InvalidQuote() {
	s.acrossHandler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalRelayFee": {"total": "5000"}, "outputAmount": "2000000"}`))
	}
	recorder := httptest.NewRecorder()

	s.handler.HandleRequest(recorder, s.request(nil))

	s.Equal(http.StatusBadGateway, recorder.Code)
}
