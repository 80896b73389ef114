package across

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/events"
	"github.com/rs/zerolog/log"
)

const (
	FILL_LOOKBACK_BLOCKS = 500
	FILL_TIMEOUT         = 10 * time.Minute
)

// FillWatcher polls a destination spoke pool for the relay fill of a deposit.
type FillWatcher struct {
	client    EventFilterer
	spokePool common.Address
	blocktime time.Duration
}

func NewFillWatcher(client EventFilterer, spokePool common.Address, blocktime time.Duration) *FillWatcher {
	return &FillWatcher{
		client:    client,
		spokePool: spokePool,
		blocktime: blocktime,
	}
}

// WaitForFill blocks until a FilledRelay event for the origin chain deposit
// is observed and returns the fill transaction hash.
func (w *FillWatcher) WaitForFill(ctx context.Context, originChainID uint64, depositID *big.Int) (common.Hash, error) {
	ctx, cancel := context.WithTimeout(ctx, FILL_TIMEOUT)
	defer cancel()

	var fromBlock *big.Int
	for {
		select {
		case <-ctx.Done():
			return common.Hash{}, fmt.Errorf("stopped waiting for fill of deposit %s: %w", depositID, ctx.Err())
		default:
			head, err := w.client.LatestBlock()
			if err != nil {
				log.Warn().Msgf("Error fetching current block: %v", err)
				w.sleep(ctx)
				continue
			}

			if fromBlock == nil {
				fromBlock = new(big.Int).Sub(head, big.NewInt(FILL_LOOKBACK_BLOCKS))
				if fromBlock.Sign() < 0 {
					fromBlock = big.NewInt(0)
				}
			}
			if fromBlock.Cmp(head) > 0 {
				w.sleep(ctx)
				continue
			}

			logs, err := w.client.FilterLogs(ctx, ethereum.FilterQuery{
				FromBlock: fromBlock,
				ToBlock:   head,
				Addresses: []common.Address{w.spokePool},
				Topics: [][]common.Hash{
					{events.AcrossFillSig.GetTopic()},
					{common.BigToHash(new(big.Int).SetUint64(originChainID))},
					{common.BigToHash(depositID)},
				},
			})
			if err != nil {
				log.Warn().Msgf("Error filtering fill logs: %v", err)
				w.sleep(ctx)
				continue
			}

			for _, l := range logs {
				if !l.Removed {
					return l.TxHash, nil
				}
			}

			fromBlock = new(big.Int).Add(head, big.NewInt(1))
			log.Debug().Msgf("Fill for deposit %s not found yet, waiting %s", depositID, w.blocktime)
			w.sleep(ctx)
		}
	}
}

func (w *FillWatcher) sleep(ctx context.Context) {
	timer := time.NewTimer(w.blocktime)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
