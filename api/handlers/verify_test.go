package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrdnfinance/x402-across/api/handlers"
	"github.com/mrdnfinance/x402-across/protocol/x402"
	"github.com/stretchr/testify/suite"
)

func testRequirements() *x402.PaymentRequirements {
	return &x402.PaymentRequirements{
		Scheme:            x402.SCHEME_EXACT,
		Network:           x402.NetworkBaseSepolia,
		MaxAmountRequired: "10000",
		Resource:          "http://localhost:8080/protected",
		PayTo:             "0x85B7B882EeCDfC709EF167Ec8D350064E85F1b07",
		MaxTimeoutSeconds: 60,
		Asset:             "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
	}
}

type VerifyHandlerTestSuite struct {
	suite.Suite

	facilitatorHandler http.HandlerFunc
	server             *httptest.Server
	handler            *handlers.VerifyHandler
}

func TestRunVerifyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(VerifyHandlerTestSuite))
}

func (s *VerifyHandlerTestSuite) SetupTest() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.facilitatorHandler(w, r)
	}))
	s.handler = handlers.NewVerifyHandler(x402.NewFacilitator(s.server.URL, ""))
}

func (s *VerifyHandlerTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *VerifyHandlerTestSuite) request(body interface{}) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/x402/verify", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (s *VerifyHandlerTestSuite) Test_HandleVerify_InvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/x402/verify", bytes.NewReader([]byte("{")))
	recorder := httptest.NewRecorder()

	s.handler.HandleVerify(recorder, req)

	s.Equal(http.StatusBadRequest, recorder.Code)
	var resp x402.Error
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal(x402.ErrCodeInvalidPayload, resp.Code)
}

func (s *VerifyHandlerTestSuite) Test_HandleVerify_MissingFields() {
	payload, _ := x402.DecodePaymentHeader(testPaymentHeader())
	recorder := httptest.NewRecorder()

	s.handler.HandleVerify(recorder, s.request(x402.VerifyRequest{PaymentPayload: payload}))

	s.Equal(http.StatusBadRequest, recorder.Code)
	var resp x402.Error
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal(x402.ErrCodeInvalidPayload, resp.Code)
	s.Equal("Missing paymentPayload or paymentRequirements", resp.Message)
}

func (s *VerifyHandlerTestSuite) Test_HandleVerify_InvalidRequirements() {
	payload, _ := x402.DecodePaymentHeader(testPaymentHeader())
	requirements := testRequirements()
	requirements.PayTo = "nobody"
	recorder := httptest.NewRecorder()

	s.handler.HandleVerify(recorder, s.request(x402.VerifyRequest{
		PaymentPayload:      payload,
		PaymentRequirements: requirements,
	}))

	s.Equal(http.StatusBadRequest, recorder.Code)
	var resp x402.Error
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal(x402.ErrCodeInvalidRequirements, resp.Code)
}

func (s *VerifyHandlerTestSuite) Test_HandleVerify_MalformedRequirements() {
	payload, _ := x402.DecodePaymentHeader(testPaymentHeader())
	recorder := httptest.NewRecorder()

	s.handler.HandleVerify(recorder, s.request(map[string]interface{}{
		"paymentPayload":      payload,
		"paymentRequirements": []string{"exact"},
	}))

	s.Equal(http.StatusBadRequest, recorder.Code)
	var resp x402.Error
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal(x402.ErrCodeInvalidRequirements, resp.Code)
	s.Contains(resp.Message, "failed to parse payment requirements")
}

func (s *VerifyHandlerTestSuite) Test_HandleVerify_FacilitatorFails() {
	s.facilitatorHandler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad payload"))
	}
	payload, _ := x402.DecodePaymentHeader(testPaymentHeader())
	recorder := httptest.NewRecorder()

	s.handler.HandleVerify(recorder, s.request(x402.VerifyRequest{
		PaymentPayload:      payload,
		PaymentRequirements: testRequirements(),
	}))

	s.Equal(http.StatusBadRequest, recorder.Code)
	var resp handlers.ProxyError
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal("Facilitator verification failed", resp.Error)
	s.Equal(x402.ErrCodeVerificationFailed, resp.Code)
	s.Equal("bad payload", resp.Details)
}

func (s *VerifyHandlerTestSuite) Test_HandleVerify_FacilitatorUnreachable() {
	s.server.Close()
	payload, _ := x402.DecodePaymentHeader(testPaymentHeader())
	recorder := httptest.NewRecorder()

	s.handler.HandleVerify(recorder, s.request(x402.VerifyRequest{
		PaymentPayload:      payload,
		PaymentRequirements: testRequirements(),
	}))

	s.Equal(http.StatusBadGateway, recorder.Code)
	var resp handlers.ProxyError
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal(x402.ErrCodeVerificationFailed, resp.Code)
}

func (s *VerifyHandlerTestSuite) Test_HandleVerify_Valid() {
	s.facilitatorHandler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/v1/verify", r.URL.Path)
		_, _ = w.Write([]byte(`{"isValid": true, "payer": "0x1111111111111111111111111111111111111111"}`))
	}
	payload, _ := x402.DecodePaymentHeader(testPaymentHeader())
	recorder := httptest.NewRecorder()

	s.handler.HandleVerify(recorder, s.request(x402.VerifyRequest{
		PaymentPayload:      payload,
		PaymentRequirements: testRequirements(),
	}))

	s.Equal(http.StatusOK, recorder.Code)
	var resp x402.VerifyResponse
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.True(resp.IsValid)
}

func (s *VerifyHandlerTestSuite) Test_HandleDocumentation() {
	recorder := httptest.NewRecorder()

	s.handler.HandleDocumentation(recorder, httptest.NewRequest(http.MethodGet, "/api/x402/verify", nil))

	s.Equal(http.StatusOK, recorder.Code)
	var doc handlers.VerifyDocumentation
	s.Nil(json.NewDecoder(recorder.Body).Decode(&doc))
	s.Equal("/api/x402/verify", doc.Endpoint)
	s.Equal(http.MethodPost, doc.Method)
	s.NotEmpty(doc.Example)
}
