package x402

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/go-playground/validator/v10"
)

const (
	X402_VERSION = 1
	SCHEME_EXACT = "exact"
	MIME_JSON    = "application/json"
)

// Error codes carried by Error.
const (
	ErrCodeInvalidPayload      = "INVALID_PAYLOAD"
	ErrCodeInvalidRequirements = "INVALID_REQUIREMENTS"
	ErrCodeVerificationFailed  = "VERIFICATION_FAILED"
	ErrCodeSettlementFailed    = "SETTLEMENT_FAILED"
)

var validate = validator.New()

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// PaymentRequirements is one acceptable way to pay for a resource.
type PaymentRequirements struct {
	Scheme            string `json:"scheme" validate:"required"`
	Network           string `json:"network" validate:"required"`
	MaxAmountRequired string `json:"maxAmountRequired" validate:"required,number"`
	Resource          string `json:"resource" validate:"required,url"`
	Description       string `json:"description,omitempty"`
	MimeType          string `json:"mimeType,omitempty"`
	PayTo             string `json:"payTo" validate:"required,eth_addr"`
	MaxTimeoutSeconds int    `json:"maxTimeoutSeconds" validate:"gt=0"`
	Asset             string `json:"asset" validate:"required,eth_addr"`
	// Amount and Recipient are carried for the facilitator; the credited
	// recipient differs from PayTo, which is always the proxy.
	Amount    string `json:"amount,omitempty" validate:"omitempty,number"`
	Recipient string `json:"recipient,omitempty" validate:"omitempty,eth_addr"`
	Extra     *Extra `json:"extra,omitempty"`
}

func (r *PaymentRequirements) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &Error{
			Code:    ErrCodeInvalidRequirements,
			Message: fmt.Sprintf("validation failed: %v", err),
		}
	}
	return nil
}

// Extra holds the token domain and the proxy specific settlement inputs.
type Extra struct {
	Name                    string         `json:"name"`
	Version                 string         `json:"version"`
	Platform                string         `json:"platform,omitempty" validate:"omitempty,eth_addr"`
	PlatformFeeBps          uint64         `json:"platformFeeBps"`
	DepositParams           *DepositParams `json:"depositParams,omitempty"`
	DestinationChain        string         `json:"destinationChain,omitempty"`
	IsCrossChain            bool           `json:"isCrossChain"`
	DestinationProxyAddress string         `json:"destinationProxyAddress,omitempty"`
	EIP712Domain            *EIP712Domain  `json:"eip712Domain,omitempty"`
}

type DepositParams struct {
	DestinationChainId string `json:"destinationChainId"`
	OutputAmount       string `json:"outputAmount"`
	QuoteTimestamp     uint32 `json:"quoteTimestamp"`
	FillDeadline       uint32 `json:"fillDeadline"`
}

type EIP712Domain struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	ChainId           uint64 `json:"chainId"`
	VerifyingContract string `json:"verifyingContract"`
}

type PaymentPayload struct {
	X402Version int             `json:"x402Version"`
	Scheme      string          `json:"scheme"`
	Network     string          `json:"network"`
	Payload     ExactEVMPayload `json:"payload"`
}

type ExactEVMPayload struct {
	Signature     string        `json:"signature"`
	Authorization Authorization `json:"authorization"`
}

// Authorization is the EIP-3009 authorization as sent on the wire.
type Authorization struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	ValidAfter  string `json:"validAfter"`
	ValidBefore string `json:"validBefore"`
	Nonce       string `json:"nonce"`
}

type VerifyRequest struct {
	PaymentPayload      *PaymentPayload      `json:"paymentPayload"`
	PaymentRequirements *PaymentRequirements `json:"paymentRequirements"`
}

type VerifyResponse struct {
	IsValid       bool   `json:"isValid"`
	InvalidReason string `json:"invalidReason,omitempty"`
	Payer         string `json:"payer"`
}

type SettleRequest struct {
	PaymentRequirements         PaymentRequirements  `json:"paymentRequirements"`
	OriginalPaymentRequirements *PaymentRequirements `json:"originalPaymentRequirements,omitempty"`
	PaymentPayload              *PaymentPayload      `json:"paymentPayload,omitempty"`
	AcrossMessage               *apitypes.TypedData  `json:"acrossMessage,omitempty"`
}

// SettleResponse is the facilitator's answer to a settle call. Endpoint and
// Description are only present when the facilitator answered with its API
// documentation instead of executing the transfer.
type SettleResponse struct {
	Success     bool   `json:"success"`
	Transaction string `json:"transaction"`
	Network     string `json:"network,omitempty"`
	Payer       string `json:"payer,omitempty"`
	ErrorReason string `json:"errorReason,omitempty"`

	Endpoint    string `json:"endpoint,omitempty"`
	Description string `json:"description,omitempty"`
}

// Result returns the settlement transaction hash or the reason it failed.
func (r *SettleResponse) Result() (string, error) {
	if r.Endpoint != "" || r.Description != "" {
		return "", ErrDocumentationResponse
	}

	if !r.Success || r.Transaction == "" {
		reason := r.ErrorReason
		if reason == "" {
			reason = "No transaction hash returned"
		}
		return "", fmt.Errorf("%w: %s", ErrSettlementRejected, reason)
	}

	return r.Transaction, nil
}

type PaymentRequiredResponse struct {
	X402Version int                   `json:"x402Version"`
	Accepts     []PaymentRequirements `json:"accepts"`
	Error       string                `json:"error"`
}

// ParsePaymentRequirements decodes and validates a requirements descriptor.
func ParsePaymentRequirements(data []byte) (*PaymentRequirements, error) {
	var req PaymentRequirements
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &Error{
			Code:    ErrCodeInvalidRequirements,
			Message: fmt.Sprintf("failed to parse payment requirements: %v", err),
		}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}
