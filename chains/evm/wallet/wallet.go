package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/mrdnfinance/x402-across/chains/evm/signature"
	"github.com/rs/zerolog/log"
)

// LocalWallet signs with a private key held in memory. It tracks an active
// chain the same way an injected browser wallet does and refuses to sign
// typed data bound to any other chain.
type LocalWallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chains  map[uint64]bool

	lock    sync.Mutex
	chainID uint64
}

func NewLocalWallet(hexKey string, chainID uint64, chains []uint64) (*LocalWallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	supported := make(map[uint64]bool)
	for _, id := range chains {
		supported[id] = true
	}
	if !supported[chainID] {
		return nil, fmt.Errorf("initial chain %d is not supported", chainID)
	}

	return &LocalWallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chains:  supported,
		chainID: chainID,
	}, nil
}

func (w *LocalWallet) Address() common.Address {
	return w.address
}

func (w *LocalWallet) ChainID(ctx context.Context) (uint64, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.chainID, nil
}

func (w *LocalWallet) SwitchChain(ctx context.Context, chainID uint64) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if !w.chains[chainID] {
		return fmt.Errorf("chain %d is not supported by wallet", chainID)
	}

	log.Debug().Msgf("Switching wallet %s from chain %d to %d", w.address, w.chainID, chainID)
	w.chainID = chainID
	return nil
}

func (w *LocalWallet) SignTypedData(ctx context.Context, typedData apitypes.TypedData) ([]byte, error) {
	chainID, _ := w.ChainID(ctx)
	if typedData.Domain.ChainId != nil {
		domainChain := (*big.Int)(typedData.Domain.ChainId)
		if domainChain.Cmp(new(big.Int).SetUint64(chainID)) != 0 {
			return nil, fmt.Errorf("typed data chain %s does not match active chain %d", domainChain, chainID)
		}
	}

	return signature.Sign(typedData, w.key)
}
