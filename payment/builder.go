package payment

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/contracts"
	"github.com/mrdnfinance/x402-across/chains/evm/signature"
	"github.com/mrdnfinance/x402-across/config"
	"github.com/mrdnfinance/x402-across/protocol/across"
	"github.com/mrdnfinance/x402-across/protocol/x402"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
	"github.com/sygmaprotocol/sygma-core/chains/evm/client"
)

const TOKEN_READ_TIMEOUT = 5 * time.Second

var (
	ErrMissingQuote  = errors.New("cross-chain payment requires a quote")
	ErrInvalidDomain = errors.New("cross-chain message must be signed for the destination chain")
)

// Authorization is the EIP-3009 transfer the payer signs. To is always the
// source proxy.
type Authorization struct {
	From        common.Address
	To          common.Address
	Value       *big.Int
	ValidAfter  *big.Int
	ValidBefore *big.Int
	Nonce       [32]byte
	Signature   []byte
}

func (a *Authorization) Wire() x402.Authorization {
	return x402.Authorization{
		From:        a.From.Hex(),
		To:          a.To.Hex(),
		Value:       a.Value.String(),
		ValidAfter:  a.ValidAfter.String(),
		ValidBefore: a.ValidBefore.String(),
		Nonce:       hexutil.Encode(a.Nonce[:]),
	}
}

type BuildRequest struct {
	Payer              common.Address
	Amount             *big.Int
	SourceChainId      uint64
	DestinationChainId uint64
	// Quote is required when the chains differ and ignored otherwise.
	Quote *across.Quote
}

// AuthorizationBundle is everything needed to sign and settle one payment.
type AuthorizationBundle struct {
	CrossChain bool
	Source     Chain
	Dest       Chain

	Authorization     Authorization
	TransferTypedData apitypes.TypedData

	DepositParams *across.DepositParams

	AcrossMessage   *signature.AcrossMessage
	AcrossTypedData *apitypes.TypedData

	Requirements x402.PaymentRequirements
}

// PaymentPayload is the x402 payload once the authorization is signed.
func (b *AuthorizationBundle) PaymentPayload() *x402.PaymentPayload {
	return &x402.PaymentPayload{
		X402Version: x402.X402_VERSION,
		Scheme:      x402.SCHEME_EXACT,
		Network:     b.Source.Network,
		Payload: x402.ExactEVMPayload{
			Signature:     hexutil.Encode(b.Authorization.Signature),
			Authorization: b.Authorization.Wire(),
		},
	}
}

type TokenReader interface {
	Name() (string, error)
	Version() (string, error)
}

// TokenReaders returns a reader for the token at address on the given chain,
// or false when the chain has no client.
type TokenReaders func(chainID uint64, address common.Address) (TokenReader, bool)

// ClientTokenReaders binds token contracts to the per chain clients.
func ClientTokenReaders(clients map[uint64]client.Client) TokenReaders {
	return func(chainID uint64, address common.Address) (TokenReader, bool) {
		c, ok := clients[chainID]
		if !ok {
			return nil, false
		}
		return contracts.NewTokenContract(c, address), true
	}
}

type BuilderConfig struct {
	CreditedRecipient common.Address
	Platform          common.Address
	PlatformFeeBps    uint64
	Resource          string
	MaxTimeoutSeconds int
}

type Builder struct {
	chains    Chains
	tokens    TokenReaders
	validator *across.DeadlineValidator
	config    BuilderConfig
	nonces    io.Reader
	now       func() time.Time
}

func NewBuilder(
	chains Chains,
	tokens TokenReaders,
	validator *across.DeadlineValidator,
	config BuilderConfig,
	now func() time.Time,
) *Builder {
	if config.MaxTimeoutSeconds == 0 {
		config.MaxTimeoutSeconds = x402.DEFAULT_MAX_TIMEOUT_SECONDS
	}
	if now == nil {
		now = time.Now
	}

	return &Builder{
		chains:    chains,
		tokens:    tokens,
		validator: validator,
		config:    config,
		nonces:    rand.Reader,
		now:       now,
	}
}

// Build assembles the typed data the payer must sign and the requirements the
// facilitator settles against. Every call draws a fresh nonce.
func (b *Builder) Build(ctx context.Context, req BuildRequest) (*AuthorizationBundle, error) {
	source, err := b.chains.ById(req.SourceChainId)
	if err != nil {
		return nil, err
	}
	dest, err := b.chains.ById(req.DestinationChainId)
	if err != nil {
		return nil, err
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	crossChain := source.Id != dest.Id
	now := b.now()

	var params *across.DepositParams
	if crossChain {
		if req.Quote == nil {
			return nil, ErrMissingQuote
		}
		if err := req.Quote.Validate(req.Amount); err != nil {
			return nil, err
		}

		params, err = b.validator.DepositParams(ctx, req.Quote, source.Id, dest.Id, source.SpokePool)
		if err != nil {
			return nil, err
		}
	} else {
		params = across.SameChainDepositParams(source.Id, req.Amount, now)
	}

	var nonce [32]byte
	if _, err := io.ReadFull(b.nonces, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	auth := Authorization{
		From:        req.Payer,
		To:          source.Proxy,
		Value:       new(big.Int).Set(req.Amount),
		ValidAfter:  big.NewInt(0),
		ValidBefore: big.NewInt(now.Unix() + int64(b.config.MaxTimeoutSeconds)),
		Nonce:       nonce,
	}

	name, version := b.tokenDomain(ctx, source)
	transferTypedData := signature.TransferWithAuthorizationTypedData(
		signature.Domain{
			Name:              name,
			Version:           version,
			ChainId:           new(big.Int).SetUint64(source.Id),
			VerifyingContract: source.Usdc,
		},
		signature.TransferWithAuthorization{
			From:        auth.From,
			To:          auth.To,
			Value:       auth.Value,
			ValidAfter:  auth.ValidAfter,
			ValidBefore: auth.ValidBefore,
			Nonce:       auth.Nonce,
		},
	)

	bundle := &AuthorizationBundle{
		CrossChain:        crossChain,
		Source:            source,
		Dest:              dest,
		Authorization:     auth,
		TransferTypedData: transferTypedData,
		DepositParams:     params,
		Requirements: x402.NewPaymentRequirements(x402.RequirementsParams{
			Amount:             req.Amount,
			Network:            source.Network,
			SourceChainId:      source.Id,
			Asset:              source.Usdc,
			Proxy:              source.Proxy,
			CreditedRecipient:  b.config.CreditedRecipient,
			Platform:           b.config.Platform,
			PlatformFeeBps:     b.config.PlatformFeeBps,
			Resource:           b.config.Resource,
			Description:        fmt.Sprintf("Payment for %s USDC", formatUnits(req.Amount, source.Decimals)),
			MaxTimeoutSeconds:  b.config.MaxTimeoutSeconds,
			TokenName:          name,
			TokenVersion:       version,
			DestinationNetwork: dest.Network,
			DestinationChainId: dest.Id,
			DestinationProxy:   dest.Proxy,
			DepositParams: x402.DepositParams{
				DestinationChainId: params.DestinationChainId.String(),
				OutputAmount:       params.OutputAmount.String(),
				QuoteTimestamp:     params.QuoteTimestamp,
				FillDeadline:       params.FillDeadline,
			},
		}),
	}

	if crossChain {
		domain := signature.AcrossDomain(new(big.Int).SetUint64(dest.Id), dest.Proxy)
		if domain.ChainId.Uint64() == source.Id {
			return nil, ErrInvalidDomain
		}

		msg := signature.AcrossMessage{
			OriginalSender:     req.Payer,
			CreditedRecipient:  b.config.CreditedRecipient,
			Platform:           b.config.Platform,
			ExpectedAmount:     params.OutputAmount,
			PlatformFeeBps:     new(big.Int).SetUint64(b.config.PlatformFeeBps),
			Nonce:              nonce,
			SourceChainId:      new(big.Int).SetUint64(source.Id),
			DestinationChainId: new(big.Int).SetUint64(dest.Id),
			Token:              dest.Usdc,
			RecipientContract:  dest.Proxy,
		}
		typedData := signature.AcrossMessageTypedData(domain, msg)
		bundle.AcrossMessage = &msg
		bundle.AcrossTypedData = &typedData
	}

	return bundle, nil
}

// Calldata encodes the proxy call the facilitator executes. Same-chain
// payments use the 10 argument overload, cross-chain payments the 12
// argument one carrying the deposit params and the backend signature.
func (b *Builder) Calldata(bundle *AuthorizationBundle, backendMessageSig []byte) ([]byte, error) {
	if len(bundle.Authorization.Signature) == 0 {
		return nil, fmt.Errorf("authorization is not signed")
	}

	proxy := contracts.NewProxyContract(bundle.Source.Proxy)
	args := contracts.TransferArgs{
		From:           bundle.Authorization.From,
		To:             bundle.Authorization.To,
		Value:          bundle.Authorization.Value,
		ValidAfter:     bundle.Authorization.ValidAfter,
		ValidBefore:    bundle.Authorization.ValidBefore,
		Nonce:          bundle.Authorization.Nonce,
		Signature:      bundle.Authorization.Signature,
		Recipient:      b.config.CreditedRecipient,
		Platform:       b.config.Platform,
		PlatformFeeBps: new(big.Int).SetUint64(b.config.PlatformFeeBps),
	}

	if !bundle.CrossChain {
		return proxy.PackTransferV1(args)
	}
	return proxy.PackTransferV2(args, bundle.DepositParams.ContractParams(), backendMessageSig)
}

// tokenDomain reads the token's EIP-712 name and version, falling back to the
// configured values when the token cannot be read.
func (b *Builder) tokenDomain(ctx context.Context, chain Chain) (string, string) {
	name, version := chain.TokenName, chain.TokenVersion

	if b.tokens == nil {
		return name, version
	}
	token, ok := b.tokens(chain.Id, chain.Usdc)
	if !ok {
		return name, version
	}

	ctx, cancel := context.WithTimeout(ctx, TOKEN_READ_TIMEOUT)
	defer cancel()

	l := log.With().Uint64("chainID", chain.Id).Logger()

	readName, readVersion := name, version
	var wg conc.WaitGroup
	wg.Go(func() {
		n, err := token.Name()
		if err != nil {
			l.Warn().Err(err).Msgf("Failed reading token name, using %s", name)
			return
		}
		readName = n
	})
	wg.Go(func() {
		v, err := token.Version()
		if err != nil {
			l.Warn().Err(err).Msgf("Failed reading token version, using %s", version)
			return
		}
		readVersion = v
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return readName, readVersion
	case <-ctx.Done():
		l.Warn().Err(ctx.Err()).Msg("Token domain reads did not finish, using configured values")
	}

	return name, version
}

func formatUnits(amount *big.Int, decimals uint8) string {
	return config.TokenConfig{Decimals: decimals}.HumanAmount(decimal.NewFromBigInt(amount, 0))
}
