package payment

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Wallet is the payer's signing account. Every method that needs the payer's
// approval blocks until it is given or refused.
type Wallet interface {
	Address() common.Address
	ChainID(ctx context.Context) (uint64, error)
	SwitchChain(ctx context.Context, chainID uint64) error
	SignTypedData(ctx context.Context, typedData apitypes.TypedData) ([]byte, error)
}
