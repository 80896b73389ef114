package across

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	MOCK_FEE_BPS = 50
	BPS_DENOM    = 10000
)

var ErrInvalidQuote = errors.New("invalid quote")

// Quote is the canonical fee and timing breakdown for one transfer. Amounts
// are integer strings in the token's smallest unit.
type Quote struct {
	OutputAmount           string `json:"outputAmount"`
	BridgeFee              string `json:"bridgeFee"`
	LpFee                  string `json:"lpFee"`
	RelayerCapitalFee      string `json:"relayerCapitalFee"`
	RelayerGasFee          string `json:"relayerGasFee"`
	TotalRelayFee          string `json:"totalRelayFee"`
	QuoteTimestamp         uint64 `json:"quoteTimestamp"`
	FillDeadline           uint64 `json:"fillDeadline"`
	ExclusivityDeadline    uint64 `json:"exclusivityDeadline"`
	SuggestedRelayerFeePct string `json:"suggestedRelayerFeePct"`
	IsAmountTooLow         bool   `json:"isAmountTooLow"`
	SpokePoolAddress       string `json:"spokePoolAddress"`
}

// candidates lists field paths in priority order; the first present scalar wins.
type candidates []string

var (
	totalRelayFeePaths     = candidates{"totalRelayFee.total", "relayFeeTotal", "totalRelayFee"}
	lpFeePaths             = candidates{"lpFee.total", "lpFee"}
	relayerCapitalFeePaths = candidates{"relayerCapitalFee.total", "capitalFeeTotal", "relayerCapitalFee"}
	relayerGasFeePaths     = candidates{"relayerGasFee.total", "relayGasFeeTotal", "relayerGasFee"}
	outputAmountPaths      = candidates{"outputAmount"}
	quoteTimestampPaths    = candidates{"timestamp", "quoteTimestamp"}
	fillDeadlinePaths      = candidates{"fillDeadline"}
	exclusivityPaths       = candidates{"exclusivityDeadline"}
	relayerFeePctPaths     = candidates{"relayFeePct", "relayFeePercent", "totalRelayFee.pct"}
	amountTooLowPaths      = candidates{"isAmountTooLow"}
	spokePoolPaths         = candidates{"spokePoolAddress"}
)

func (c candidates) scalar(data map[string]interface{}) (string, bool, error) {
	for _, path := range c {
		v, ok := lookup(data, path)
		if !ok {
			continue
		}

		switch val := v.(type) {
		case json.Number:
			return val.String(), true, nil
		case string:
			if val != "" {
				return val, true, nil
			}
		case bool:
			return "", false, fmt.Errorf("%w: %s is a boolean", ErrInvalidQuote, path)
		}
	}
	return "", false, nil
}

func (c candidates) amount(data map[string]interface{}) (string, error) {
	v, ok, err := c.scalar(data)
	if err != nil {
		return "", err
	}
	if !ok {
		return "0", nil
	}
	return v, nil
}

// maxSeconds is 2^64, the first float outside the uint64 range.
const maxSeconds = 1 << 64

func (c candidates) seconds(data map[string]interface{}) (uint64, error) {
	v, ok, err := c.scalar(data)
	if err != nil || !ok {
		return 0, err
	}

	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		// some responses carry the timestamp as a float
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || math.IsNaN(f) || f < 0 || f >= maxSeconds {
			return 0, fmt.Errorf("%w: %s is not a timestamp", ErrInvalidQuote, v)
		}
		return uint64(f), nil
	}
	return n, nil
}

func (c candidates) flag(data map[string]interface{}) bool {
	for _, path := range c {
		v, ok := lookup(data, path)
		if !ok {
			continue
		}

		switch val := v.(type) {
		case bool:
			return val
		case string:
			b, err := strconv.ParseBool(val)
			return err == nil && b
		}
	}
	return false
}

func lookup(data map[string]interface{}, path string) (interface{}, bool) {
	var current interface{} = data
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// NormalizeQuote maps a suggested-fees response into a Quote and enforces
// its invariants against the requested input amount.
func NormalizeQuote(raw []byte, inputAmount *big.Int, now time.Time) (*Quote, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	data := make(map[string]interface{})
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuote, err)
	}

	q := &Quote{IsAmountTooLow: amountTooLowPaths.flag(data)}
	amounts := []struct {
		paths candidates
		dst   *string
	}{
		{totalRelayFeePaths, &q.TotalRelayFee},
		{lpFeePaths, &q.LpFee},
		{relayerCapitalFeePaths, &q.RelayerCapitalFee},
		{relayerGasFeePaths, &q.RelayerGasFee},
		{relayerFeePctPaths, &q.SuggestedRelayerFeePct},
	}
	for _, a := range amounts {
		v, err := a.paths.amount(data)
		if err != nil {
			return nil, err
		}
		*a.dst = v
	}
	q.BridgeFee = q.TotalRelayFee
	totalRelayFee := q.TotalRelayFee

	spokePool, _, err := spokePoolPaths.scalar(data)
	if err != nil {
		return nil, err
	}
	q.SpokePoolAddress = spokePool

	if q.QuoteTimestamp, err = quoteTimestampPaths.seconds(data); err != nil {
		return nil, err
	}
	if q.FillDeadline, err = fillDeadlinePaths.seconds(data); err != nil {
		return nil, err
	}
	if q.ExclusivityDeadline, err = exclusivityPaths.seconds(data); err != nil {
		return nil, err
	}

	output, ok, err := outputAmountPaths.scalar(data)
	if err != nil {
		return nil, err
	}
	if ok {
		q.OutputAmount = output
	} else {
		fee, ok := new(big.Int).SetString(totalRelayFee, 10)
		if !ok {
			return nil, fmt.Errorf("%w: relay fee %s is not an integer", ErrInvalidQuote, totalRelayFee)
		}
		q.OutputAmount = new(big.Int).Sub(inputAmount, fee).String()
	}

	if q.QuoteTimestamp == 0 {
		q.QuoteTimestamp = uint64(now.Unix())
	}
	if q.FillDeadline <= q.QuoteTimestamp {
		q.FillDeadline = q.QuoteTimestamp + DEFAULT_FILL_DEADLINE_BUFFER
	}

	if err := q.Validate(inputAmount); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks that the output amount is a non-negative integer and that
// output plus relay fee does not exceed the input.
func (q *Quote) Validate(inputAmount *big.Int) error {
	output, ok := new(big.Int).SetString(q.OutputAmount, 10)
	if !ok || output.Sign() < 0 {
		return fmt.Errorf("%w: output amount %q is not a non-negative integer", ErrInvalidQuote, q.OutputAmount)
	}

	fee, ok := new(big.Int).SetString(q.TotalRelayFee, 10)
	if !ok || fee.Sign() < 0 {
		return fmt.Errorf("%w: relay fee %q is not a non-negative integer", ErrInvalidQuote, q.TotalRelayFee)
	}

	if new(big.Int).Add(output, fee).Cmp(inputAmount) > 0 {
		return fmt.Errorf("%w: output %s plus fee %s exceeds input %s", ErrInvalidQuote, output, fee, inputAmount)
	}
	return nil
}

// Output returns the output amount as an integer.
func (q *Quote) Output() (*big.Int, error) {
	output, ok := new(big.Int).SetString(q.OutputAmount, 10)
	if !ok {
		return nil, fmt.Errorf("%w: output amount %q", ErrInvalidQuote, q.OutputAmount)
	}
	return output, nil
}

// SameChainQuote returns the zero fee quote used when no bridging is needed.
func SameChainQuote(inputAmount *big.Int, now time.Time) *Quote {
	return &Quote{
		OutputAmount:           inputAmount.String(),
		BridgeFee:              "0",
		LpFee:                  "0",
		RelayerCapitalFee:      "0",
		RelayerGasFee:          "0",
		TotalRelayFee:          "0",
		QuoteTimestamp:         uint64(now.Unix()),
		FillDeadline:           0,
		ExclusivityDeadline:    0,
		SuggestedRelayerFeePct: "0",
	}
}

// MockQuote charges a flat 0.5% relay fee. Used when the quote service is
// disabled in configuration.
func MockQuote(inputAmount *big.Int, now time.Time) *Quote {
	fee := new(big.Int).Div(new(big.Int).Mul(inputAmount, big.NewInt(MOCK_FEE_BPS)), big.NewInt(BPS_DENOM))
	ts := uint64(now.Unix())

	return &Quote{
		OutputAmount:           new(big.Int).Sub(inputAmount, fee).String(),
		BridgeFee:              fee.String(),
		LpFee:                  "0",
		RelayerCapitalFee:      "0",
		RelayerGasFee:          fee.String(),
		TotalRelayFee:          fee.String(),
		QuoteTimestamp:         ts,
		FillDeadline:           ts + DEFAULT_FILL_DEADLINE_BUFFER,
		SuggestedRelayerFeePct: "0.5",
	}
}

// MockQuoter serves MockQuote for every request.
type MockQuoter struct{}

func (MockQuoter) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	return MockQuote(req.Amount, time.Now()), nil
}
