package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mrdnfinance/x402-across/protocol/x402"
)

func JSONError(w http.ResponseWriter, err error, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	type errorResponse struct {
		Code   int    `json:"code"`
		Reason string `json:"reason"`
	}
	resp := errorResponse{
		Reason: err.Error(),
		Code:   code,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// ProxyError mirrors the facilitator's own error envelope for routes that
// relay facilitator answers.
type ProxyError struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// X402Error writes an x402 error as {"code", "message"}.
func X402Error(w http.ResponseWriter, err *x402.Error, code int) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	JSONResponse(w, err, code)
}

func JSONResponse(w http.ResponseWriter, v interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
