package payment

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/chains/evm"
)

// Chain is everything the payment flow needs to know about one network.
type Chain struct {
	Id        uint64
	Name      string
	Network   string
	Usdc      common.Address
	Decimals  uint8
	Proxy     common.Address
	SpokePool common.Address
	Explorer  string

	// EIP-3009 domain used when the token cannot be read
	TokenName    string
	TokenVersion string
}

func ChainFromConfig(c *evm.EVMConfig) Chain {
	return Chain{
		Id:           *c.GeneralChainConfig.Id,
		Name:         c.GeneralChainConfig.Name,
		Network:      c.GeneralChainConfig.Network,
		Usdc:         c.Usdc(),
		Decimals:     c.Tokens[evm.USDC].Decimals,
		Proxy:        c.Proxy,
		SpokePool:    c.SpokePool,
		Explorer:     c.Explorer,
		TokenName:    c.TokenName,
		TokenVersion: c.TokenVersion,
	}
}

// TxURL links a transaction in the chain's block explorer.
func (c Chain) TxURL(hash string) string {
	if c.Explorer == "" || hash == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", strings.TrimRight(c.Explorer, "/"), hash)
}

type Chains map[uint64]Chain

func (c Chains) ById(id uint64) (Chain, error) {
	chain, ok := c[id]
	if !ok {
		return Chain{}, fmt.Errorf("chain %d not configured", id)
	}
	return chain, nil
}

func (c Chains) ByNetwork(network string) (Chain, error) {
	for _, chain := range c {
		if chain.Network == network {
			return chain, nil
		}
	}
	return Chain{}, fmt.Errorf("network %s not configured", network)
}
