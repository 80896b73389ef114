package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mrdnfinance/x402-across/protocol/x402"
)

type Verifier interface {
	Verify(ctx context.Context, payload *x402.PaymentPayload, requirements *x402.PaymentRequirements) (*x402.VerifyResponse, error)
}

type VerifyHandler struct {
	verifier Verifier
}

func NewVerifyHandler(verifier Verifier) *VerifyHandler {
	return &VerifyHandler{
		verifier: verifier,
	}
}

type verifyBody struct {
	PaymentPayload      *x402.PaymentPayload `json:"paymentPayload"`
	PaymentRequirements json.RawMessage      `json:"paymentRequirements"`
}

// HandleVerify forwards a payload and its requirements to the facilitator
func (h *VerifyHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	b := &verifyBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		X402Error(w, &x402.Error{
			Code:    x402.ErrCodeInvalidPayload,
			Message: fmt.Sprintf("invalid request body: %s", err),
		}, http.StatusBadRequest)
		return
	}
	if b.PaymentPayload == nil || len(b.PaymentRequirements) == 0 || bytes.Equal(b.PaymentRequirements, []byte("null")) {
		X402Error(w, &x402.Error{
			Code:    x402.ErrCodeInvalidPayload,
			Message: "Missing paymentPayload or paymentRequirements",
		}, http.StatusBadRequest)
		return
	}

	requirements, err := x402.ParsePaymentRequirements(b.PaymentRequirements)
	if err != nil {
		var x402Err *x402.Error
		if errors.As(err, &x402Err) {
			X402Error(w, x402Err, http.StatusBadRequest)
			return
		}
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	resp, err := h.verifier.Verify(r.Context(), b.PaymentPayload, requirements)
	if err != nil {
		var facilitatorErr *x402.FacilitatorError
		if errors.As(err, &facilitatorErr) {
			JSONResponse(w, ProxyError{
				Error:   "Facilitator verification failed",
				Code:    x402.ErrCodeVerificationFailed,
				Details: facilitatorErr.Body,
			}, facilitatorErr.StatusCode)
			return
		}
		JSONResponse(w, ProxyError{
			Error:   "Facilitator verification failed",
			Code:    x402.ErrCodeVerificationFailed,
			Details: err.Error(),
		}, http.StatusBadGateway)
		return
	}

	JSONResponse(w, resp, http.StatusOK)
}

type VerifyDocumentation struct {
	Endpoint    string                 `json:"endpoint"`
	Method      string                 `json:"method"`
	Description string                 `json:"description"`
	Body        map[string]string      `json:"body"`
	Response    map[string]string      `json:"response"`
	Example     map[string]interface{} `json:"example"`
}

// HandleDocumentation describes how to call the verify endpoint
func (h *VerifyHandler) HandleDocumentation(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, VerifyDocumentation{
		Endpoint:    "/api/x402/verify",
		Method:      http.MethodPost,
		Description: "Verify an x402 payment payload against its payment requirements",
		Body: map[string]string{
			"paymentPayload":      "x402 payment payload signed by the payer",
			"paymentRequirements": "payment requirements the payload must satisfy",
		},
		Response: map[string]string{
			"isValid":       "boolean",
			"invalidReason": "string, present when isValid is false",
			"payer":         "address of the payer",
		},
		Example: map[string]interface{}{
			"paymentPayload": map[string]interface{}{
				"x402Version": x402.X402_VERSION,
				"scheme":      x402.SCHEME_EXACT,
				"network":     "base-sepolia",
			},
			"paymentRequirements": map[string]interface{}{
				"scheme":            x402.SCHEME_EXACT,
				"network":           "base-sepolia",
				"maxAmountRequired": "10000",
			},
		},
	}, http.StatusOK)
}
