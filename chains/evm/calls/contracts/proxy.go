package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/consts"
	"github.com/sygmaprotocol/sygma-core/chains/evm/contracts"
)

// TransferArgs are the arguments shared by both transferWithAuthorization overloads.
type TransferArgs struct {
	From           common.Address
	To             common.Address
	Value          *big.Int
	ValidAfter     *big.Int
	ValidBefore    *big.Int
	Nonce          [32]byte
	Signature      []byte
	Recipient      common.Address
	Platform       common.Address
	PlatformFeeBps *big.Int
}

// DepositParams mirrors the proxy's DepositParams tuple.
type DepositParams struct {
	DestinationChainId *big.Int
	OutputAmount       *big.Int
	QuoteTimestamp     uint32
	FillDeadline       uint32
}

// ProxyContract only encodes calls. The facilitator submits them.
type ProxyContract struct {
	contracts.Contract
}

func NewProxyContract(address common.Address) *ProxyContract {
	return &ProxyContract{
		Contract: contracts.NewContract(address, consts.ProxyABI, nil, nil, nil),
	}
}

// PackTransferV1 encodes the 10 argument same-chain call.
func (c *ProxyContract) PackTransferV1(args TransferArgs) ([]byte, error) {
	return c.PackMethod(
		consts.ProxyTransferV1,
		args.From,
		args.To,
		args.Value,
		args.ValidAfter,
		args.ValidBefore,
		args.Nonce,
		args.Signature,
		args.Recipient,
		args.Platform,
		args.PlatformFeeBps,
	)
}

// PackTransferV2 encodes the 12 argument cross-chain call.
func (c *ProxyContract) PackTransferV2(args TransferArgs, params DepositParams, backendMessageSig []byte) ([]byte, error) {
	return c.PackMethod(
		consts.ProxyTransferV2,
		args.From,
		args.To,
		args.Value,
		args.ValidAfter,
		args.ValidBefore,
		args.Nonce,
		args.Signature,
		args.Recipient,
		args.Platform,
		args.PlatformFeeBps,
		params,
		backendMessageSig,
	)
}
