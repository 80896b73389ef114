package x402

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/chains/evm/signature"
)

const (
	DEFAULT_RESOURCE            = "https://api.mrdn.finance/v1/samples"
	DEFAULT_MAX_TIMEOUT_SECONDS = 60
)

type RequirementsParams struct {
	Amount            *big.Int
	Network           string
	SourceChainId     uint64
	Asset             common.Address
	Proxy             common.Address
	CreditedRecipient common.Address
	Platform          common.Address
	PlatformFeeBps    uint64
	Resource          string
	Description       string
	MaxTimeoutSeconds int
	TokenName         string
	TokenVersion      string

	DestinationNetwork string
	DestinationChainId uint64
	DestinationProxy   common.Address
	DepositParams      DepositParams
}

// NewPaymentRequirements builds the descriptor sent to the facilitator. PayTo
// is always the source proxy; the credited recipient travels separately and
// the embedded EIP-712 domain is bound to the destination chain.
func NewPaymentRequirements(p RequirementsParams) PaymentRequirements {
	resource := p.Resource
	if resource == "" {
		resource = DEFAULT_RESOURCE
	}
	timeout := p.MaxTimeoutSeconds
	if timeout == 0 {
		timeout = DEFAULT_MAX_TIMEOUT_SECONDS
	}

	amount := p.Amount.String()
	return PaymentRequirements{
		Scheme:            SCHEME_EXACT,
		Network:           p.Network,
		MaxAmountRequired: amount,
		Amount:            amount,
		Resource:          resource,
		Description:       p.Description,
		MimeType:          MIME_JSON,
		PayTo:             p.Proxy.Hex(),
		Recipient:         p.CreditedRecipient.Hex(),
		MaxTimeoutSeconds: timeout,
		Asset:             p.Asset.Hex(),
		Extra: &Extra{
			Name:                    p.TokenName,
			Version:                 p.TokenVersion,
			Platform:                p.Platform.Hex(),
			PlatformFeeBps:          p.PlatformFeeBps,
			DepositParams:           &p.DepositParams,
			DestinationChain:        p.DestinationNetwork,
			IsCrossChain:            p.DepositParams.DestinationChainId != strconv.FormatUint(p.SourceChainId, 10),
			DestinationProxyAddress: p.DestinationProxy.Hex(),
			EIP712Domain: &EIP712Domain{
				Name:              signature.ACROSS_DOMAIN_NAME,
				Version:           signature.ACROSS_DOMAIN_VERSION,
				ChainId:           p.DestinationChainId,
				VerifyingContract: p.DestinationProxy.Hex(),
			},
		},
	}
}

// PaywallRequirements describes a plain same-chain payment for a resource
// guarded by the paywall.
func PaywallRequirements(
	amount *big.Int,
	network string,
	asset common.Address,
	payTo common.Address,
	resource string,
	description string,
	tokenName string,
	tokenVersion string,
) PaymentRequirements {
	return PaymentRequirements{
		Scheme:            SCHEME_EXACT,
		Network:           network,
		MaxAmountRequired: amount.String(),
		Resource:          resource,
		Description:       description,
		MimeType:          MIME_JSON,
		PayTo:             payTo.Hex(),
		MaxTimeoutSeconds: DEFAULT_MAX_TIMEOUT_SECONDS,
		Asset:             asset.Hex(),
		Extra: &Extra{
			Name:    tokenName,
			Version: tokenVersion,
		},
	}
}
