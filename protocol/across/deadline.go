package across

import (
	"context"
	"math"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/contracts"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/sygmaprotocol/sygma-core/chains/evm/client"
)

const (
	DEFAULT_DEPOSIT_QUOTE_TIME_BUFFER = 600
	DEFAULT_FILL_DEADLINE_BUFFER      = 1800

	SPOKE_READ_TIMEOUT = 5 * time.Second
)

// SpokeTiming is the clock and buffer snapshot read from a spoke pool.
type SpokeTiming struct {
	CurrentTime            uint64
	DepositQuoteTimeBuffer uint64
	FillDeadlineBuffer     uint64
}

type SpokePoolReader interface {
	CurrentTime() (uint64, error)
	DepositQuoteTimeBuffer() (uint64, error)
	FillDeadlineBuffer() (uint64, error)
}

// SpokePools returns a reader for the spoke pool at address on the given
// chain, or false when the chain has no client.
type SpokePools func(chainID uint64, address common.Address) (SpokePoolReader, bool)

// ClientSpokePools binds spoke pool contracts to the per chain clients.
func ClientSpokePools(clients map[uint64]client.Client) SpokePools {
	return func(chainID uint64, address common.Address) (SpokePoolReader, bool) {
		c, ok := clients[chainID]
		if !ok {
			return nil, false
		}
		return contracts.NewSpokePoolContract(c, address), true
	}
}

// DeadlineValidator clamps quote timestamps and fill deadlines into the
// window the origin spoke pool accepts. Failed reads fall back to wall clock
// time and default buffers instead of failing the payment.
type DeadlineValidator struct {
	pools SpokePools
	now   func() time.Time
}

func NewDeadlineValidator(pools SpokePools, now func() time.Time) *DeadlineValidator {
	if now == nil {
		now = time.Now
	}

	return &DeadlineValidator{
		pools: pools,
		now:   now,
	}
}

// Timing reads the spoke pool clock and buffers. Each value falls back
// independently.
func (v *DeadlineValidator) Timing(ctx context.Context, chainID uint64, spokePool common.Address) SpokeTiming {
	timing := SpokeTiming{
		CurrentTime:            uint64(v.now().Unix()),
		DepositQuoteTimeBuffer: DEFAULT_DEPOSIT_QUOTE_TIME_BUFFER,
		FillDeadlineBuffer:     DEFAULT_FILL_DEADLINE_BUFFER,
	}

	if v.pools == nil || spokePool == (common.Address{}) {
		log.Warn().Uint64("chainID", chainID).Msgf("No spoke pool reader for chain, using local time and default buffers")
		return timing
	}
	pool, ok := v.pools(chainID, spokePool)
	if !ok {
		log.Warn().Uint64("chainID", chainID).Msgf("No spoke pool reader for chain, using local time and default buffers")
		return timing
	}

	ctx, cancel := context.WithTimeout(ctx, SPOKE_READ_TIMEOUT)
	defer cancel()

	l := log.With().Uint64("chainID", chainID).Str("spokePool", spokePool.Hex()).Logger()

	read := timing
	var wg conc.WaitGroup
	wg.Go(func() {
		t, err := pool.CurrentTime()
		if err != nil {
			l.Warn().Err(err).Msg("Failed to read getCurrentTime, using local time")
			return
		}
		read.CurrentTime = t
	})
	wg.Go(func() {
		b, err := pool.DepositQuoteTimeBuffer()
		if err != nil {
			l.Warn().Err(err).Msg("Failed to read depositQuoteTimeBuffer, using default")
			return
		}
		read.DepositQuoteTimeBuffer = b
	})
	wg.Go(func() {
		b, err := pool.FillDeadlineBuffer()
		if err != nil {
			l.Warn().Err(err).Msg("Failed to read fillDeadlineBuffer, using default")
			return
		}
		read.FillDeadlineBuffer = b
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return read
	case <-ctx.Done():
		// late reads keep writing to read, so only the fallback is safe here
		l.Warn().Err(ctx.Err()).Msg("Spoke pool reads did not finish, using local time and default buffers")
		return timing
	}
}

// ValidateQuoteTimestamp clamps the quote timestamp to
// [currentTime - depositQuoteTimeBuffer, currentTime + depositQuoteTimeBuffer].
func (v *DeadlineValidator) ValidateQuoteTimestamp(ctx context.Context, chainID uint64, spokePool common.Address, quoteTimestamp uint64) uint64 {
	t := v.Timing(ctx, chainID, spokePool)
	return ClampQuoteTimestamp(quoteTimestamp, t.CurrentTime, t.DepositQuoteTimeBuffer)
}

// ValidateFillDeadline clamps the fill deadline to
// [currentTime, currentTime + fillDeadlineBuffer].
func (v *DeadlineValidator) ValidateFillDeadline(ctx context.Context, chainID uint64, spokePool common.Address, fillDeadline uint64) uint64 {
	t := v.Timing(ctx, chainID, spokePool)
	return ClampFillDeadline(fillDeadline, t.CurrentTime, t.FillDeadlineBuffer)
}

func ClampQuoteTimestamp(quoteTimestamp, currentTime, buffer uint64) uint64 {
	var lower uint64
	if currentTime > buffer {
		lower = currentTime - buffer
	}
	return clamp(quoteTimestamp, lower, saturatingAdd(currentTime, buffer))
}

func ClampFillDeadline(fillDeadline, currentTime, buffer uint64) uint64 {
	return clamp(fillDeadline, currentTime, saturatingAdd(currentTime, buffer))
}

func clamp(v, lower, upper uint64) uint64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
