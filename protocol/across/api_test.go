package across_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/big"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/protocol/across"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func Test_AcrossAPI_Quote(t *testing.T) {
	request := across.QuoteRequest{
		InputToken:         common.HexToAddress("0x036CbD53842c5426634e7929541eC2318f3dCF7e"),
		OutputToken:        common.HexToAddress("0x5fd84259d66Cd46123540766Be93DFE6D43130D7"),
		Amount:             big.NewInt(1000000),
		OriginChainId:      84532,
		DestinationChainId: 11155420,
		Recipient:          common.HexToAddress("0xe72163ccCD6e7E2d5aC27a23A9496c481080AcA1"),
	}

	tests := []struct {
		name         string
		mockResponse []byte
		statusCode   int
		mockError    error
		wantOutput   string
		wantErr      error
	}{
		{
			name:         "successful response",
			mockResponse: []byte(`{"outputAmount": "994000", "totalRelayFee": {"total": "6000"}, "timestamp": "1700000000", "fillDeadline": "1700010800"}`),
			statusCode:   http.StatusOK,
			wantOutput:   "994000",
		},
		{
			name:      "HTTP error",
			mockError: errors.New("connection refused"),
			wantErr:   across.ErrQuoteUnavailable,
		},
		{
			name:         "non-200 status",
			mockResponse: []byte(`{"message": "Amount too low"}`),
			statusCode:   http.StatusBadRequest,
			wantErr:      across.ErrQuoteUnavailable,
		},
		{
			name:         "invalid JSON",
			mockResponse: []byte("{invalid"),
			statusCode:   http.StatusOK,
			wantErr:      across.ErrInvalidQuote,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := across.NewAcrossAPI("https://across.test/api")
			api.HTTPClient.Transport = roundTripperFunc(func(req *http.Request) (*http.Response, error) {
				if req.URL.Path != "/api/suggested-fees" {
					return nil, errors.New("unexpected path " + req.URL.Path)
				}
				q := req.URL.Query()
				if q.Get("amount") != "1000000" || q.Get("tradeType") != "exactInput" ||
					q.Get("originChainId") != "84532" || q.Get("destinationChainId") != "11155420" ||
					q.Get("recipient") != request.Recipient.Hex() {
					return nil, errors.New("unexpected query " + req.URL.RawQuery)
				}
				if q.Has("inputAmount") {
					return nil, errors.New("inputAmount must be sent as amount")
				}

				if tc.mockError != nil {
					return nil, tc.mockError
				}

				return &http.Response{
					StatusCode: tc.statusCode,
					Body:       io.NopCloser(bytes.NewReader(tc.mockResponse)),
					Header:     make(http.Header),
				}, nil
			})

			quote, err := api.Quote(context.Background(), request)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if quote.OutputAmount != tc.wantOutput {
				t.Errorf("expected output %s, got %s", tc.wantOutput, quote.OutputAmount)
			}
		})
	}
}

func Test_QuoteRequest_OptionalFields(t *testing.T) {
	values := across.QuoteRequest{
		Amount: big.NewInt(1),
	}.Values()

	if values.Has("recipient") || values.Has("message") {
		t.Errorf("unexpected optional fields in %s", values.Encode())
	}
}
