package payment

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
)

const RECEIPT_TIMEOUT = 2 * time.Minute

type ReceiptFetcher interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	LatestBlock() (*big.Int, error)
}

// ReceiptWaiter waits for settlement transactions to be mined on the chain
// they were submitted to.
type ReceiptWaiter struct {
	client        ReceiptFetcher
	confirmations uint64
	blocktime     time.Duration
	timeout       time.Duration
}

func NewReceiptWaiter(client ReceiptFetcher, confirmations uint64, blocktime time.Duration, timeout time.Duration) *ReceiptWaiter {
	if timeout == 0 {
		timeout = RECEIPT_TIMEOUT
	}

	return &ReceiptWaiter{
		client:        client,
		confirmations: confirmations,
		blocktime:     blocktime,
		timeout:       timeout,
	}
}

// WaitForReceipt blocks until the transaction is mined with the required
// confirmations. A reverted transaction is an error.
func (w *ReceiptWaiter) WaitForReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("stopped waiting for receipt of %s: %w", txHash.Hex(), ctx.Err())
		default:
			receipt, err := w.client.TransactionReceipt(ctx, txHash)
			if err != nil || receipt == nil {
				if err != nil {
					log.Debug().Msgf("Receipt for %s not available: %s", txHash, err)
				}
				w.sleep(ctx, w.blocktime)
				continue
			}

			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, fmt.Errorf("transaction %s reverted", txHash.Hex())
			}

			if w.confirmations == 0 {
				return receipt, nil
			}

			currentBlock, err := w.client.LatestBlock()
			if err != nil {
				log.Warn().Msgf("Error fetching current block: %v", err)
				w.sleep(ctx, w.blocktime)
				continue
			}

			confirmations := new(big.Int).Sub(currentBlock, receipt.BlockNumber)
			if confirmations.Sign() < 0 {
				confirmations.SetUint64(0)
			}
			if confirmations.Cmp(new(big.Int).SetUint64(w.confirmations)) != -1 {
				return receipt, nil
			}

			// nolint:gosec
			duration := time.Duration(uint64(w.blocktime) * (w.confirmations - confirmations.Uint64()))
			log.Debug().Msgf("Waiting for tx %s for %s", txHash, duration)
			w.sleep(ctx, duration)
		}
	}
}

func (w *ReceiptWaiter) sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
