// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm

import (
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"

	"github.com/mrdnfinance/x402-across/config"
	"github.com/mrdnfinance/x402-across/config/chain"
	"github.com/mrdnfinance/x402-across/protocol/x402"
)

const USDC = "USDC"

type EVMConfig struct {
	GeneralChainConfig chain.GeneralChainConfig

	Proxy     common.Address
	SpokePool common.Address
	Explorer  string

	Tokens map[string]config.TokenConfig
	// fallback EIP-3009 domain when the token reads fail
	TokenName    string
	TokenVersion string

	Blocktime      time.Duration
	Confirmations  uint64
	ReceiptTimeout time.Duration
}

type RawEVMConfig struct {
	chain.GeneralChainConfig `mapstructure:",squash"`
	Usdc                     string `mapstructure:"usdc"`
	UsdcDecimals             uint8  `mapstructure:"usdcDecimals" default:"6"`
	Proxy                    string `mapstructure:"proxy"`
	SpokePool                string `mapstructure:"spokePool"`
	Explorer                 string `mapstructure:"explorer"`
	TokenName                string `mapstructure:"tokenName" default:"USD Coin"`
	TokenVersion             string `mapstructure:"tokenVersion" default:"2"`
	Confirmations            uint64 `mapstructure:"confirmations" default:"1"`
	ReceiptTimeout           uint64 `mapstructure:"receiptTimeout" default:"120"`
}

func (c *RawEVMConfig) Validate() error {
	if err := c.GeneralChainConfig.Validate(); err != nil {
		return err
	}
	if err := validateNetwork(c.Network, *c.Id); err != nil {
		return err
	}
	if !common.IsHexAddress(c.Usdc) {
		return fmt.Errorf("invalid usdc address %q for chain %d", c.Usdc, *c.Id)
	}
	if !common.IsHexAddress(c.Proxy) {
		return fmt.Errorf("invalid proxy address %q for chain %d", c.Proxy, *c.Id)
	}
	if c.SpokePool != "" && !common.IsHexAddress(c.SpokePool) {
		return fmt.Errorf("invalid spoke pool address %q for chain %d", c.SpokePool, *c.Id)
	}
	return nil
}

// validateNetwork checks that the configured x402 network name exists and
// belongs to the chain id it is configured for.
func validateNetwork(network string, id uint64) error {
	expected, ok := x402.NetworkToChainId(network)
	if !ok {
		return fmt.Errorf("unknown network %q for chain %d, expected one of %s", network, id, strings.Join(x402.Networks(), ", "))
	}
	if expected == id {
		return nil
	}

	if name, ok := x402.ChainIdToNetwork(id); ok {
		return fmt.Errorf("chain %d is network %s, not %s", id, name, network)
	}
	return fmt.Errorf("network %s is chain %d, not %d", network, expected, id)
}

// NewEVMConfig decodes and validates an instance of an EVMConfig from
// raw chain config
func NewEVMConfig(chainConfig map[string]interface{}) (*EVMConfig, error) {
	var c RawEVMConfig
	err := mapstructure.Decode(chainConfig, &c)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&c)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	c.ParseFlags()
	tokens := map[string]config.TokenConfig{
		USDC: {
			Address:  common.HexToAddress(c.Usdc),
			Decimals: c.UsdcDecimals,
		},
	}

	config := &EVMConfig{
		GeneralChainConfig: c.GeneralChainConfig,

		Proxy:    common.HexToAddress(c.Proxy),
		Explorer: c.Explorer,
		Tokens:   tokens,

		TokenName:    c.TokenName,
		TokenVersion: c.TokenVersion,

		// nolint:gosec
		Blocktime:     time.Duration(c.Blocktime) * time.Second,
		Confirmations: c.Confirmations,
		// nolint:gosec
		ReceiptTimeout: time.Duration(c.ReceiptTimeout) * time.Second,
	}
	if c.SpokePool != "" {
		config.SpokePool = common.HexToAddress(c.SpokePool)
	}

	return config, nil
}

// Usdc returns the configured USDC token address.
func (c *EVMConfig) Usdc() common.Address {
	return c.Tokens[USDC].Address
}
