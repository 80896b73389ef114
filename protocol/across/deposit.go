package across

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/consts"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/contracts"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/events"
)

const (
	SAME_CHAIN_FILL_WINDOW = 600
	TRANSACTION_TIMEOUT    = 30 * time.Second
)

type EventFilterer interface {
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	LatestBlock() (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// DepositParams is the on-chain bound subset of a quote after clamping.
type DepositParams struct {
	DestinationChainId *big.Int
	OutputAmount       *big.Int
	QuoteTimestamp     uint32
	FillDeadline       uint32
}

func (p DepositParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DestinationChainId string `json:"destinationChainId"`
		OutputAmount       string `json:"outputAmount"`
		QuoteTimestamp     uint32 `json:"quoteTimestamp"`
		FillDeadline       uint32 `json:"fillDeadline"`
	}{
		DestinationChainId: p.DestinationChainId.String(),
		OutputAmount:       p.OutputAmount.String(),
		QuoteTimestamp:     p.QuoteTimestamp,
		FillDeadline:       p.FillDeadline,
	})
}

// ContractParams converts the params into the proxy's tuple argument.
func (p DepositParams) ContractParams() contracts.DepositParams {
	return contracts.DepositParams{
		DestinationChainId: p.DestinationChainId,
		OutputAmount:       p.OutputAmount,
		QuoteTimestamp:     p.QuoteTimestamp,
		FillDeadline:       p.FillDeadline,
	}
}

// DepositParams validates both quote timestamps against the origin chain's
// spoke pool. The pool reported by the quote takes precedence over the
// configured one.
func (v *DeadlineValidator) DepositParams(
	ctx context.Context,
	quote *Quote,
	originChainID uint64,
	destinationChainID uint64,
	spokePool common.Address,
) (*DepositParams, error) {
	output, err := quote.Output()
	if err != nil {
		return nil, err
	}

	if common.IsHexAddress(quote.SpokePoolAddress) {
		spokePool = common.HexToAddress(quote.SpokePoolAddress)
	}

	quoteTimestamp := v.ValidateQuoteTimestamp(ctx, originChainID, spokePool, quote.QuoteTimestamp)
	fillDeadline := v.ValidateFillDeadline(ctx, originChainID, spokePool, quote.FillDeadline)
	if quoteTimestamp > math.MaxUint32 || fillDeadline > math.MaxUint32 {
		return nil, fmt.Errorf("%w: timestamps do not fit uint32", ErrInvalidQuote)
	}

	return &DepositParams{
		DestinationChainId: new(big.Int).SetUint64(destinationChainID),
		OutputAmount:       output,
		QuoteTimestamp:     uint32(quoteTimestamp),
		FillDeadline:       uint32(fillDeadline),
	}, nil
}

// SameChainDepositParams are the placeholder params sent when no bridging
// happens; the proxy ignores them on the same-chain path.
func SameChainDepositParams(chainID uint64, value *big.Int, now time.Time) *DepositParams {
	ts := uint32(now.Unix())
	return &DepositParams{
		DestinationChainId: new(big.Int).SetUint64(chainID),
		OutputAmount:       new(big.Int).Set(value),
		QuoteTimestamp:     ts,
		FillDeadline:       ts + SAME_CHAIN_FILL_WINDOW,
	}
}

type AcrossDepositFetcher struct {
	client EventFilterer
}

func NewAcrossDepositFetcher(client EventFilterer) *AcrossDepositFetcher {
	return &AcrossDepositFetcher{
		client: client,
	}
}

// Deposit finds the FundsDeposited event emitted by the settlement transaction.
func (h *AcrossDepositFetcher) Deposit(ctx context.Context, hash common.Hash) (*events.AcrossDeposit, error) {
	ctx, cancel := context.WithTimeout(ctx, TRANSACTION_TIMEOUT)
	defer cancel()

	receipt, err := h.client.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, err
	}

	return ParseDeposit(receipt)
}

// ParseDeposit extracts the first FundsDeposited event from the receipt.
func ParseDeposit(receipt *types.Receipt) (*events.AcrossDeposit, error) {
	for _, l := range receipt.Logs {
		if l.Removed || len(l.Topics) == 0 {
			continue
		}

		if l.Topics[0] != events.AcrossDepositSig.GetTopic() {
			continue
		}

		return parseDeposit(*l)
	}

	return nil, fmt.Errorf("no deposit found in transaction %s", receipt.TxHash.Hex())
}

func parseDeposit(l types.Log) (*events.AcrossDeposit, error) {
	d := &events.AcrossDeposit{}
	err := consts.SpokePoolABI.UnpackIntoInterface(d, "FundsDeposited", l.Data)
	if err != nil {
		return nil, err
	}

	if len(l.Topics) < 4 {
		return nil, fmt.Errorf("across deposit missing topics")
	}

	d.DestinationChainId = new(big.Int).SetBytes(l.Topics[1].Bytes())
	d.DepositId = new(big.Int).SetBytes(l.Topics[2].Bytes())
	copy(d.Depositor[:], l.Topics[3].Bytes())

	return d, nil
}
