package x402

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

const (
	PAYMENT_HEADER          = "X-PAYMENT"
	PAYMENT_RESPONSE_HEADER = "X-PAYMENT-RESPONSE"
)

// EncodePaymentHeader serializes the payload into the X-PAYMENT header value.
func EncodePaymentHeader(payload *PaymentPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodePaymentHeader decodes an X-PAYMENT header written in either the
// standard or the url-safe base64 alphabet, padded or not. A header that
// does not decode to a payload is reported with false and never as an error.
func DecodePaymentHeader(header string) (*PaymentPayload, bool) {
	data, ok := decodeBase64(header)
	if !ok {
		return nil, false
	}

	var payload PaymentPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	return &payload, true
}

// EncodeSettleResponseHeader serializes a settle response into the
// X-PAYMENT-RESPONSE header value.
func EncodeSettleResponseHeader(resp *SettleResponse) (string, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func decodeBase64(value string) ([]byte, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false
	}

	value = strings.NewReplacer("-", "+", "_", "/").Replace(value)
	value = strings.TrimRight(value, "=")
	data, err := base64.RawStdEncoding.DecodeString(value)
	if err != nil {
		return nil, false
	}
	return data, true
}
