package signature

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	ACROSS_DOMAIN_NAME    = "X402ProxyFacilitatorV2"
	ACROSS_DOMAIN_VERSION = "1"

	TRANSFER_PRIMARY_TYPE = "TransferWithAuthorization"
	ACROSS_PRIMARY_TYPE   = "AcrossMessage"
)

var domainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

// Domain is an EIP-712 domain scoped to one contract on one chain.
type Domain struct {
	Name              string
	Version           string
	ChainId           *big.Int
	VerifyingContract common.Address
}

func (d Domain) typedDataDomain() apitypes.TypedDataDomain {
	chainId := math.HexOrDecimal256(*d.ChainId)
	return apitypes.TypedDataDomain{
		Name:              d.Name,
		Version:           d.Version,
		ChainId:           &chainId,
		VerifyingContract: d.VerifyingContract.Hex(),
	}
}

// TransferWithAuthorization is the EIP-3009 message signed by the payer.
type TransferWithAuthorization struct {
	From        common.Address
	To          common.Address
	Value       *big.Int
	ValidAfter  *big.Int
	ValidBefore *big.Int
	Nonce       [32]byte
}

// AcrossMessage is the cross-chain instruction verified by the destination proxy.
type AcrossMessage struct {
	OriginalSender     common.Address
	CreditedRecipient  common.Address
	Platform           common.Address
	ExpectedAmount     *big.Int
	PlatformFeeBps     *big.Int
	Nonce              [32]byte
	SourceChainId      *big.Int
	DestinationChainId *big.Int
	Token              common.Address
	RecipientContract  common.Address
}

// AcrossDomain returns the domain the AcrossMessage is verified under. It is
// always bound to the destination chain and the destination proxy.
func AcrossDomain(destinationChainId *big.Int, destinationProxy common.Address) Domain {
	return Domain{
		Name:              ACROSS_DOMAIN_NAME,
		Version:           ACROSS_DOMAIN_VERSION,
		ChainId:           destinationChainId,
		VerifyingContract: destinationProxy,
	}
}

// TransferWithAuthorizationTypedData builds the EIP-3009 typed data for the
// given token domain.
func TransferWithAuthorizationTypedData(domain Domain, auth TransferWithAuthorization) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			TRANSFER_PRIMARY_TYPE: []apitypes.Type{
				{Name: "from", Type: "address"},
				{Name: "to", Type: "address"},
				{Name: "value", Type: "uint256"},
				{Name: "validAfter", Type: "uint256"},
				{Name: "validBefore", Type: "uint256"},
				{Name: "nonce", Type: "bytes32"},
			},
		},
		PrimaryType: TRANSFER_PRIMARY_TYPE,
		Domain:      domain.typedDataDomain(),
		Message: apitypes.TypedDataMessage{
			"from":        auth.From.Hex(),
			"to":          auth.To.Hex(),
			"value":       auth.Value,
			"validAfter":  auth.ValidAfter,
			"validBefore": auth.ValidBefore,
			"nonce":       hexutil.Encode(auth.Nonce[:]),
		},
	}
}

// AcrossMessageTypedData builds the typed data the facilitator signs for a
// cross-chain transfer.
func AcrossMessageTypedData(domain Domain, msg AcrossMessage) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			ACROSS_PRIMARY_TYPE: []apitypes.Type{
				{Name: "originalSender", Type: "address"},
				{Name: "creditedRecipient", Type: "address"},
				{Name: "platform", Type: "address"},
				{Name: "expectedAmount", Type: "uint256"},
				{Name: "platformFeeBps", Type: "uint256"},
				{Name: "nonce", Type: "bytes32"},
				{Name: "sourceChainId", Type: "uint256"},
				{Name: "destinationChainId", Type: "uint256"},
				{Name: "token", Type: "address"},
				{Name: "recipientContract", Type: "address"},
			},
		},
		PrimaryType: ACROSS_PRIMARY_TYPE,
		Domain:      domain.typedDataDomain(),
		Message: apitypes.TypedDataMessage{
			"originalSender":     msg.OriginalSender.Hex(),
			"creditedRecipient":  msg.CreditedRecipient.Hex(),
			"platform":           msg.Platform.Hex(),
			"expectedAmount":     msg.ExpectedAmount,
			"platformFeeBps":     msg.PlatformFeeBps,
			"nonce":              hexutil.Encode(msg.Nonce[:]),
			"sourceChainId":      msg.SourceChainId,
			"destinationChainId": msg.DestinationChainId,
			"token":              msg.Token.Hex(),
			"recipientContract":  msg.RecipientContract.Hex(),
		},
	}
}

// Hash calculates the EIP-712 digest of the typed data.
func Hash(typedData apitypes.TypedData) ([]byte, error) {
	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return []byte{}, err
	}

	messageHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return []byte{}, err
	}

	rawData := []byte(fmt.Sprintf("\x19\x01%s%s", string(domainSeparator), string(messageHash)))
	return crypto.Keccak256(rawData), nil
}
