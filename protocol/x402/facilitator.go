package x402

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	FACILITATOR_URL     = "https://api.mrdn.finance"
	FACILITATOR_TIMEOUT = 30 * time.Second

	VERIFY_RETRIES    = 3
	VERIFY_RETRY_WAIT = 500 * time.Millisecond
)

var (
	ErrSettlementRejected    = errors.New("settlement rejected")
	ErrDocumentationResponse = errors.New("facilitator returned API documentation instead of a transaction")
	ErrVerificationFailed    = errors.New("verification failed")
)

// FacilitatorError is returned when the facilitator answers with a non-2xx status.
type FacilitatorError struct {
	StatusCode int
	Body       string
	err        error
}

func (e *FacilitatorError) Error() string {
	return fmt.Sprintf("facilitator API returned %d: %s", e.StatusCode, e.Body)
}

func (e *FacilitatorError) Unwrap() error {
	return e.err
}

// RawResponse is a facilitator answer relayed without interpretation.
type RawResponse struct {
	StatusCode      int
	Body            []byte
	PaymentResponse string
}

// Facilitator talks to the x402 facilitator. Verify calls are retried,
// settle calls never are: a settle may have executed even when its response
// was lost.
type Facilitator struct {
	HTTPClient   *http.Client
	verifyClient *http.Client
	baseURL      string
	apiKey       string
}

func NewFacilitator(baseURL string, apiKey string) *Facilitator {
	if baseURL == "" {
		baseURL = FACILITATOR_URL
	}

	httpClient := &http.Client{Timeout: FACILITATOR_TIMEOUT}
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.RetryMax = VERIFY_RETRIES - 1
	retryClient.RetryWaitMin = VERIFY_RETRY_WAIT
	retryClient.RetryWaitMax = VERIFY_RETRY_WAIT
	retryClient.Logger = nil

	return &Facilitator{
		HTTPClient:   httpClient,
		verifyClient: retryClient.StandardClient(),
		baseURL:      baseURL,
		apiKey:       apiKey,
	}
}

// Verify asks the facilitator to check a signed payload against requirements.
func (f *Facilitator) Verify(
	ctx context.Context,
	payload *PaymentPayload,
	requirements *PaymentRequirements,
) (*VerifyResponse, error) {
	body, err := json.Marshal(VerifyRequest{
		PaymentPayload:      payload,
		PaymentRequirements: requirements,
	})
	if err != nil {
		return nil, err
	}

	resp, err := f.post(ctx, f.verifyClient, "/v1/verify", body, http.Header{})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FacilitatorError{StatusCode: resp.StatusCode, Body: string(resp.Body), err: ErrVerificationFailed}
	}

	var result VerifyResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}
	return &result, nil
}

// Settle submits the signed payment for execution. The returned response
// still has to be checked with Result.
func (f *Facilitator) Settle(ctx context.Context, paymentHeader string, req *SettleRequest) (*SettleResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := f.SettleRaw(ctx, body, paymentHeader, "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FacilitatorError{StatusCode: resp.StatusCode, Body: string(resp.Body), err: ErrSettlementRejected}
	}

	var result SettleResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode settle response: %s", ErrSettlementRejected, err)
	}
	return &result, nil
}

// SettleRaw forwards an already encoded settle body. The caller's
// authorization takes precedence over the configured API key.
func (f *Facilitator) SettleRaw(ctx context.Context, body []byte, paymentHeader string, authorization string) (*RawResponse, error) {
	headers := http.Header{}
	headers.Set(PAYMENT_HEADER, paymentHeader)
	if authorization != "" {
		headers.Set("Authorization", authorization)
	}

	return f.post(ctx, f.HTTPClient, "/v1/settle", body, headers)
}

func (f *Facilitator) post(
	ctx context.Context,
	client *http.Client,
	path string,
	body []byte,
	headers http.Header,
) (*RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header = headers
	req.Header.Set("Content-Type", "application/json")
	if req.Header.Get("Authorization") == "" && f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &RawResponse{
		StatusCode:      resp.StatusCode,
		Body:            respBody,
		PaymentResponse: resp.Header.Get(PAYMENT_RESPONSE_HEADER),
	}, nil
}
