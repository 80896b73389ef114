package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mrdnfinance/x402-across/protocol/x402"
	"github.com/rs/zerolog/log"
)

const (
	PAYWALL_DESCRIPTION = "Access to protected content Test"
	PAYWALL_CONTENT     = "This content is protected by an x402 paywall"
)

type Settler interface {
	Settle(ctx context.Context, paymentHeader string, req *x402.SettleRequest) (*x402.SettleResponse, error)
}

type PaywallResponse struct {
	Message string `json:"message"`
	Payer   string `json:"payer,omitempty"`
}

// PaywallHandler guards a resource behind a single x402 requirement. A
// request carrying a valid X-PAYMENT header is verified and settled before
// the content is served.
type PaywallHandler struct {
	requirements x402.PaymentRequirements
	verifier     Verifier
	settler      Settler
}

func NewPaywallHandler(requirements x402.PaymentRequirements, verifier Verifier, settler Settler) *PaywallHandler {
	return &PaywallHandler{
		requirements: requirements,
		verifier:     verifier,
		settler:      settler,
	}
}

// ParsePrice converts a "$0.01" style price into a decimal amount string.
func ParsePrice(price string) (string, error) {
	amount := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(price), "$"))
	if amount == "" {
		return "", fmt.Errorf("invalid price %q", price)
	}
	return amount, nil
}

func (h *PaywallHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get(x402.PAYMENT_HEADER)
	if header == "" {
		h.paymentRequired(w, "X-PAYMENT header is required")
		return
	}

	payload, ok := x402.DecodePaymentHeader(header)
	if !ok {
		h.paymentRequired(w, "Invalid or malformed payment header")
		return
	}

	requirements, err := x402.SelectRequirement([]x402.PaymentRequirements{h.requirements}, payload.Network)
	if err != nil {
		h.paymentRequired(w, err.Error())
		return
	}

	verification, err := h.verifier.Verify(r.Context(), payload, &requirements)
	if err != nil {
		log.Warn().Err(err).Msg("Paywall verification failed")
		h.paymentRequired(w, "Payment verification failed")
		return
	}
	if !verification.IsValid {
		h.paymentRequired(w, verification.InvalidReason)
		return
	}

	settlement, err := h.settler.Settle(r.Context(), header, &x402.SettleRequest{
		PaymentRequirements: requirements,
		PaymentPayload:      payload,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Paywall settlement failed")
		h.paymentRequired(w, "Payment settlement failed")
		return
	}
	if _, err := settlement.Result(); err != nil {
		h.paymentRequired(w, err.Error())
		return
	}

	if encoded, err := x402.EncodeSettleResponseHeader(settlement); err == nil {
		w.Header().Set(x402.PAYMENT_RESPONSE_HEADER, encoded)
		w.Header().Set("Access-Control-Expose-Headers", x402.PAYMENT_RESPONSE_HEADER)
	}
	JSONResponse(w, PaywallResponse{
		Message: PAYWALL_CONTENT,
		Payer:   verification.Payer,
	}, http.StatusOK)
}

func (h *PaywallHandler) paymentRequired(w http.ResponseWriter, reason string) {
	JSONResponse(w, x402.PaymentRequiredResponse{
		X402Version: x402.X402_VERSION,
		Accepts:     []x402.PaymentRequirements{h.requirements},
		Error:       reason,
	}, http.StatusPaymentRequired)
}
