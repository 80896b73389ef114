package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrdnfinance/x402-across/api/handlers"
	"github.com/mrdnfinance/x402-across/protocol/x402"
	"github.com/stretchr/testify/suite"
)

func testPaymentHeader() string {
	header, _ := x402.EncodePaymentHeader(&x402.PaymentPayload{
		X402Version: x402.X402_VERSION,
		Scheme:      x402.SCHEME_EXACT,
		Network:     x402.NetworkBaseSepolia,
		Payload: x402.ExactEVMPayload{
			Signature: "0x" + string(bytes.Repeat([]byte("ab"), 65)),
			Authorization: x402.Authorization{
				From:        "0x1111111111111111111111111111111111111111",
				To:          "0xe72163ccCD6e7E2d5aC27a23A9496c481080AcA1",
				Value:       "10000",
				ValidAfter:  "0",
				ValidBefore: "1700000060",
				Nonce:       "0x" + string(bytes.Repeat([]byte("01"), 32)),
			},
		},
	})
	return header
}

type SettleHandlerTestSuite struct {
	suite.Suite

	facilitatorHandler http.HandlerFunc
	server             *httptest.Server
	handler            *handlers.SettleHandler
}

func TestRunSettleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SettleHandlerTestSuite))
}

func (s *SettleHandlerTestSuite) SetupTest() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.facilitatorHandler(w, r)
	}))
	s.handler = handlers.NewSettleHandler(x402.NewFacilitator(s.server.URL, "service-key"))
}

func (s *SettleHandlerTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *SettleHandlerTestSuite) Test_HandleSettle_MissingPaymentHeader() {
	req := httptest.NewRequest(http.MethodPost, "/api/settle", bytes.NewReader([]byte(`{}`)))
	recorder := httptest.NewRecorder()

	s.handler.HandleSettle(recorder, req)

	s.Equal(http.StatusBadRequest, recorder.Code)
	var resp x402.Error
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal(x402.ErrCodeInvalidPayload, resp.Code)
}

func (s *SettleHandlerTestSuite) Test_HandleSettle_FacilitatorRejects() {
	s.facilitatorHandler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("invalid_signature"))
	}
	req := httptest.NewRequest(http.MethodPost, "/api/settle", bytes.NewReader([]byte(`{}`)))
	req.Header.Set(x402.PAYMENT_HEADER, testPaymentHeader())
	recorder := httptest.NewRecorder()

	s.handler.HandleSettle(recorder, req)

	s.Equal(http.StatusUnprocessableEntity, recorder.Code)
	var resp handlers.ProxyError
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal("Facilitator API returned 422: invalid_signature", resp.Error)
	s.Equal(x402.ErrCodeSettlementFailed, resp.Code)
}

func (s *SettleHandlerTestSuite) Test_HandleSettle_RelaysResponse() {
	body := []byte(`{"paymentRequirements": {"network": "base-sepolia"}}`)
	s.facilitatorHandler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/v1/settle", r.URL.Path)
		s.Equal(testPaymentHeader(), r.Header.Get(x402.PAYMENT_HEADER))
		s.Equal("Bearer caller-key", r.Header.Get("Authorization"))
		received, _ := io.ReadAll(r.Body)
		s.Equal(body, received)

		w.Header().Set(x402.PAYMENT_RESPONSE_HEADER, "encoded")
		_, _ = w.Write([]byte(`{"success": true, "transaction": "0xabc"}`))
	}
	req := httptest.NewRequest(http.MethodPost, "/api/settle", bytes.NewReader(body))
	req.Header.Set(x402.PAYMENT_HEADER, testPaymentHeader())
	req.Header.Set("Authorization", "Bearer caller-key")
	recorder := httptest.NewRecorder()

	s.handler.HandleSettle(recorder, req)

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal("no-store, max-age=0", recorder.Header().Get("Cache-Control"))
	s.Equal("encoded", recorder.Header().Get(x402.PAYMENT_RESPONSE_HEADER))
	s.Equal(x402.PAYMENT_RESPONSE_HEADER, recorder.Header().Get("Access-Control-Expose-Headers"))
	s.JSONEq(`{"success": true, "transaction": "0xabc"}`, recorder.Body.String())
}

func (s *SettleHandlerTestSuite) Test_HandleSettle_NoPaymentResponseHeader() {
	s.facilitatorHandler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer service-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success": true, "transaction": "0xabc"}`))
	}
	req := httptest.NewRequest(http.MethodPost, "/api/settle", bytes.NewReader([]byte(`{}`)))
	req.Header.Set(x402.PAYMENT_HEADER, testPaymentHeader())
	recorder := httptest.NewRecorder()

	s.handler.HandleSettle(recorder, req)

	s.Equal(http.StatusOK, recorder.Code)
	s.Empty(recorder.Header().Get(x402.PAYMENT_RESPONSE_HEADER))
	s.Empty(recorder.Header().Get("Access-Control-Expose-Headers"))
}
