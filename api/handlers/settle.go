package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mrdnfinance/x402-across/protocol/x402"
	"github.com/rs/zerolog/log"
)

const MAX_BODY_SIZE = 1 << 20

type SettleProxy interface {
	SettleRaw(ctx context.Context, body []byte, paymentHeader string, authorization string) (*x402.RawResponse, error)
}

type SettleHandler struct {
	facilitator SettleProxy
}

func NewSettleHandler(facilitator SettleProxy) *SettleHandler {
	return &SettleHandler{
		facilitator: facilitator,
	}
}

// HandleSettle forwards a settle request to the facilitator and relays its
// answer, including the X-PAYMENT-RESPONSE header.
func (h *SettleHandler) HandleSettle(w http.ResponseWriter, r *http.Request) {
	paymentHeader := r.Header.Get(x402.PAYMENT_HEADER)
	if paymentHeader == "" {
		X402Error(w, &x402.Error{
			Code:    x402.ErrCodeInvalidPayload,
			Message: fmt.Sprintf("missing %s header", x402.PAYMENT_HEADER),
		}, http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MAX_BODY_SIZE))
	if err != nil {
		X402Error(w, &x402.Error{
			Code:    x402.ErrCodeInvalidPayload,
			Message: fmt.Sprintf("invalid request body: %s", err),
		}, http.StatusBadRequest)
		return
	}

	resp, err := h.facilitator.SettleRaw(r.Context(), body, paymentHeader, r.Header.Get("Authorization"))
	if err != nil {
		log.Error().Err(err).Msg("Settle request to facilitator failed")
		JSONResponse(w, ProxyError{
			Error:   "Failed to reach facilitator",
			Code:    x402.ErrCodeSettlementFailed,
			Details: err.Error(),
		}, http.StatusBadGateway)
		return
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().Msgf("Facilitator rejected settlement with %d: %s", resp.StatusCode, resp.Body)
		JSONResponse(w, ProxyError{
			Error: fmt.Sprintf("Facilitator API returned %d: %s", resp.StatusCode, resp.Body),
			Code:  x402.ErrCodeSettlementFailed,
		}, resp.StatusCode)
		return
	}

	w.Header().Set("Cache-Control", "no-store, max-age=0")
	if resp.PaymentResponse != "" {
		w.Header().Set(x402.PAYMENT_RESPONSE_HEADER, resp.PaymentResponse)
		w.Header().Set("Access-Control-Expose-Headers", x402.PAYMENT_RESPONSE_HEADER)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.Body)
}
