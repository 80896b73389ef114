package payment

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/mrdnfinance/x402-across/config"
	"github.com/mrdnfinance/x402-across/protocol/across"
	"github.com/mrdnfinance/x402-across/protocol/x402"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	SAME_CHAIN_GRACE  = time.Second
	CROSS_CHAIN_GRACE = 30 * time.Second

	SUBSCRIBER_BUFFER = 16

	SIGNATURE_REJECTED_MESSAGE = "Signature request was rejected"
)

var (
	ErrAttemptInProgress     = errors.New("payment attempt already in progress")
	ErrNotTerminal           = errors.New("payment attempt has not finished")
	ErrNetworkSwitchRejected = errors.New("network switch rejected")
	ErrSignatureRejected     = errors.New("signature rejected")
	ErrQuoteSuperseded       = errors.New("quote was superseded by a newer request")
)

type Settler interface {
	Settle(ctx context.Context, paymentHeader string, req *x402.SettleRequest) (*x402.SettleResponse, error)
}

type TransactionWaiter interface {
	WaitForReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type FillWaiter interface {
	WaitForFill(ctx context.Context, originChainID uint64, depositID *big.Int) (common.Hash, error)
}

type QuoteProvider interface {
	Request(ctx context.Context, input QuoteInput) <-chan QuoteResult
	Latest() (QuoteResult, bool)
}

type AttemptMetrics interface {
	StartAttempt(attemptID string)
	EndAttempt(attemptID string, outcome string)
}

type SubmitRequest struct {
	// Amount in whole USDC, e.g. "1.5"
	Amount             string
	SourceNetwork      string
	DestinationNetwork string
	// Quote is fetched when omitted for a cross-chain payment.
	Quote *across.Quote
}

type OrchestratorConfig struct {
	SameChainGrace  time.Duration
	CrossChainGrace time.Duration
}

// Orchestrator drives one payment attempt at a time through
// idle → signing → bridging → settling → completed, or into error.
type Orchestrator struct {
	wallet      Wallet
	builder     *Builder
	quotes      QuoteProvider
	settler     Settler
	waiters     map[uint64]TransactionWaiter
	fillWaiters map[uint64]FillWaiter
	chains      Chains
	metrics     AttemptMetrics
	config      OrchestratorConfig

	lock        sync.Mutex
	status      TransactionStatus
	subscribers map[int]chan TransactionStatus
	nextSubID   int
}

func NewOrchestrator(
	wallet Wallet,
	builder *Builder,
	quotes QuoteProvider,
	settler Settler,
	waiters map[uint64]TransactionWaiter,
	fillWaiters map[uint64]FillWaiter,
	chains Chains,
	metrics AttemptMetrics,
	config OrchestratorConfig,
) *Orchestrator {
	if config.SameChainGrace == 0 {
		config.SameChainGrace = SAME_CHAIN_GRACE
	}
	if config.CrossChainGrace == 0 {
		config.CrossChainGrace = CROSS_CHAIN_GRACE
	}

	return &Orchestrator{
		wallet:      wallet,
		builder:     builder,
		quotes:      quotes,
		settler:     settler,
		waiters:     waiters,
		fillWaiters: fillWaiters,
		chains:      chains,
		metrics:     metrics,
		config:      config,
		status:      IdleStatus(),
		subscribers: make(map[int]chan TransactionStatus),
	}
}

func (o *Orchestrator) Status() TransactionStatus {
	o.lock.Lock()
	defer o.lock.Unlock()

	return o.status
}

// Subscribe streams every status change. Slow subscribers miss intermediate
// updates instead of blocking the attempt.
func (o *Orchestrator) Subscribe() (<-chan TransactionStatus, func()) {
	o.lock.Lock()
	defer o.lock.Unlock()

	id := o.nextSubID
	o.nextSubID++
	ch := make(chan TransactionStatus, SUBSCRIBER_BUFFER)
	o.subscribers[id] = ch

	return ch, func() {
		o.lock.Lock()
		defer o.lock.Unlock()

		if ch, ok := o.subscribers[id]; ok {
			delete(o.subscribers, id)
			close(ch)
		}
	}
}

// Reset returns a finished attempt to the initial idle record.
func (o *Orchestrator) Reset() error {
	o.lock.Lock()
	defer o.lock.Unlock()

	if o.status.Step == StepIdle {
		return nil
	}
	if !o.status.Terminal() {
		return ErrNotTerminal
	}

	o.publish(IdleStatus())
	return nil
}

// Submit runs a full payment attempt and blocks until it completes or fails.
// Input errors are returned without leaving idle; failures of the attempt
// itself move the orchestrator to error and are returned as well.
func (o *Orchestrator) Submit(ctx context.Context, req SubmitRequest) error {
	if o.Status().Step != StepIdle {
		return ErrAttemptInProgress
	}

	source, err := o.chains.ByNetwork(req.SourceNetwork)
	if err != nil {
		return err
	}
	dest, err := o.chains.ByNetwork(req.DestinationNetwork)
	if err != nil {
		return err
	}
	amount, err := ParseAmount(req.Amount, source.Decimals)
	if err != nil {
		return err
	}

	quote := req.Quote
	var generation uint64
	if quote == nil {
		result, ok := <-o.quotes.Request(ctx, QuoteInput{
			Amount:             amount,
			SourceChainId:      source.Id,
			DestinationChainId: dest.Id,
		})
		if !ok {
			return ErrQuoteSuperseded
		}
		if result.Err != nil {
			return result.Err
		}
		quote = result.Quote
		generation = result.Generation
	}
	if err := quote.Validate(amount); err != nil {
		return err
	}
	if generation != 0 {
		latest, ok := o.quotes.Latest()
		if !ok || latest.Generation != generation {
			return ErrQuoteSuperseded
		}
	}

	attemptID := uuid.NewString()
	l := log.With().Str("attempt", attemptID).Logger()

	o.lock.Lock()
	if o.status.Step != StepIdle {
		o.lock.Unlock()
		return ErrAttemptInProgress
	}
	o.publish(TransactionStatus{
		Step:       StepSigning,
		AttemptID:  attemptID,
		ChainId:    source.Id,
		Network:    source.Network,
		ChainName:  source.Name,
		CrossChain: source.Id != dest.Id,
	})
	o.lock.Unlock()

	if o.metrics != nil {
		o.metrics.StartAttempt(attemptID)
	}
	l.Info().Msgf("Started payment of %s USDC from %s to %s", req.Amount, source.Network, dest.Network)

	err = o.execute(ctx, l, source, dest, amount, quote)
	outcome := string(StepCompleted)
	if err != nil {
		outcome = string(StepError)
		l.Warn().Err(err).Msg("Payment attempt failed")
		o.fail(err)
	}
	if o.metrics != nil {
		o.metrics.EndAttempt(attemptID, outcome)
	}

	return err
}

func (o *Orchestrator) execute(
	ctx context.Context,
	l zerolog.Logger,
	source Chain,
	dest Chain,
	amount *big.Int,
	quote *across.Quote,
) error {
	if err := o.ensureChain(ctx, source); err != nil {
		return err
	}

	bundle, err := o.builder.Build(ctx, BuildRequest{
		Payer:              o.wallet.Address(),
		Amount:             amount,
		SourceChainId:      source.Id,
		DestinationChainId: dest.Id,
		Quote:              quote,
	})
	if err != nil {
		return err
	}

	requirements, err := x402.SelectRequirement([]x402.PaymentRequirements{bundle.Requirements}, source.Network)
	if err != nil {
		return err
	}

	sig, err := o.wallet.SignTypedData(ctx, bundle.TransferTypedData)
	if err != nil {
		l.Debug().Err(err).Msg("Wallet refused to sign")
		return ErrSignatureRejected
	}
	bundle.Authorization.Signature = sig

	header, err := x402.EncodePaymentHeader(bundle.PaymentPayload())
	if err != nil {
		return err
	}

	o.update(func(s *TransactionStatus) {
		s.Step = StepBridging
		s.ExplorerURL = source.Explorer
	})

	settleReq := &x402.SettleRequest{
		PaymentRequirements:         requirements,
		OriginalPaymentRequirements: &bundle.Requirements,
		AcrossMessage:               bundle.AcrossTypedData,
	}
	if payload, ok := x402.DecodePaymentHeader(header); ok {
		settleReq.PaymentPayload = payload
	} else {
		l.Warn().Msg("Payment header could not be decoded, settling without payload")
	}

	resp, err := o.settler.Settle(ctx, header, settleReq)
	if err != nil {
		return err
	}
	txHash, err := resp.Result()
	if err != nil {
		return err
	}

	l.Info().Msgf("Settlement transaction %s submitted on %s", txHash, source.Network)
	o.update(func(s *TransactionStatus) {
		s.Step = StepSettling
		s.TxHash = txHash
		s.ExplorerURL = source.TxURL(txHash)
	})

	waiter, ok := o.waiters[source.Id]
	if !ok {
		return fmt.Errorf("no receipt waiter for chain %d", source.Id)
	}
	receipt, err := waiter.WaitForReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return err
	}

	if !bundle.CrossChain {
		if err := sleep(ctx, o.config.SameChainGrace); err != nil {
			return err
		}
		o.update(func(s *TransactionStatus) { s.Step = StepCompleted })
		return nil
	}

	bridgeStatus, fillHash := o.awaitFill(ctx, l, source, dest, receipt)
	if bridgeStatus == BridgeInferred {
		if err := sleep(ctx, o.config.CrossChainGrace); err != nil {
			return err
		}
	}

	o.update(func(s *TransactionStatus) {
		s.Step = StepCompleted
		s.BridgeStatus = bridgeStatus
		s.FillTxHash = fillHash
	})
	return nil
}

// awaitFill looks for the destination fill of the deposit made by the
// settlement transaction. Without a fill watcher for the destination the
// completion is inferred.
func (o *Orchestrator) awaitFill(
	ctx context.Context,
	l zerolog.Logger,
	source Chain,
	dest Chain,
	receipt *types.Receipt,
) (BridgeStatus, string) {
	fillWaiter, ok := o.fillWaiters[dest.Id]
	if !ok || receipt == nil {
		return BridgeInferred, ""
	}

	deposit, err := across.ParseDeposit(receipt)
	if err != nil {
		l.Warn().Err(err).Msg("Settlement receipt has no deposit, completion is inferred")
		return BridgeInferred, ""
	}

	fillHash, err := fillWaiter.WaitForFill(ctx, source.Id, deposit.DepositId)
	if err != nil {
		l.Warn().Err(err).Msgf("Fill of deposit %s not observed, completion is inferred", deposit.DepositId)
		return BridgeInferred, ""
	}

	l.Info().Msgf("Deposit %s filled on %s in %s", deposit.DepositId, dest.Network, fillHash.Hex())
	return BridgeFilled, fillHash.Hex()
}

func (o *Orchestrator) ensureChain(ctx context.Context, source Chain) error {
	current, err := o.wallet.ChainID(ctx)
	if err == nil && current == source.Id {
		return nil
	}

	if err := o.wallet.SwitchChain(ctx, source.Id); err != nil {
		return fmt.Errorf("%w: %s", ErrNetworkSwitchRejected, err)
	}
	return nil
}

func (o *Orchestrator) fail(err error) {
	message := err.Error()
	if errors.Is(err, ErrSignatureRejected) {
		message = SIGNATURE_REJECTED_MESSAGE
	}

	o.update(func(s *TransactionStatus) {
		s.Step = StepError
		s.Error = message
	})
}

func (o *Orchestrator) update(f func(s *TransactionStatus)) {
	o.lock.Lock()
	defer o.lock.Unlock()

	status := o.status
	f(&status)
	o.publish(status)
}

// publish must be called with the lock held.
func (o *Orchestrator) publish(status TransactionStatus) {
	o.status = status
	for _, ch := range o.subscribers {
		select {
		case ch <- status:
		default:
		}
	}
}

// ParseAmount converts a whole token amount into base units.
func ParseAmount(amount string, decimals uint8) (*big.Int, error) {
	units, err := config.TokenConfig{Decimals: decimals}.BaseUnits(amount)
	if err != nil {
		return nil, err
	}
	return units.BigInt(), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
