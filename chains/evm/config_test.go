// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm_test

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/chains/evm"
	"github.com/mrdnfinance/x402-across/config"
	"github.com/mrdnfinance/x402-across/config/chain"
	"github.com/stretchr/testify/suite"
)

type NewEVMConfigTestSuite struct {
	suite.Suite
}

func TestRunNewEVMConfigTestSuite(t *testing.T) {
	suite.Run(t, new(NewEVMConfigTestSuite))
}

func (s *NewEVMConfigTestSuite) rawConfig() map[string]interface{} {
	return map[string]interface{}{
		"id":       84532,
		"endpoint": "https://sepolia.base.org",
		"name":     "base",
		"type":     "evm",
		"network":  "base-sepolia",
		"usdc":     "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
		"proxy":    "0xe72163ccCD6e7E2d5aC27a23A9496c481080AcA1",
	}
}

func (s *NewEVMConfigTestSuite) Test_FailedDecode() {
	_, err := evm.NewEVMConfig(map[string]interface{}{
		"receiptTimeout": "invalid",
	})

	s.NotNil(err)
}

func (s *NewEVMConfigTestSuite) Test_FailedGeneralConfigValidation() {
	_, err := evm.NewEVMConfig(map[string]interface{}{})

	s.NotNil(err)
}

func (s *NewEVMConfigTestSuite) Test_MissingNetwork() {
	rawConfig := s.rawConfig()
	delete(rawConfig, "network")

	_, err := evm.NewEVMConfig(rawConfig)

	s.NotNil(err)
}

func (s *NewEVMConfigTestSuite) Test_UnknownNetwork() {
	rawConfig := s.rawConfig()
	rawConfig["network"] = "ethereum"

	_, err := evm.NewEVMConfig(rawConfig)

	s.NotNil(err)
	s.Contains(err.Error(), "base-sepolia, optimism, optimism-sepolia")
}

func (s *NewEVMConfigTestSuite) Test_NetworkChainMismatch() {
	rawConfig := s.rawConfig()
	rawConfig["network"] = "optimism-sepolia"

	_, err := evm.NewEVMConfig(rawConfig)

	s.NotNil(err)
	s.Contains(err.Error(), "chain 84532 is network base-sepolia")
}

func (s *NewEVMConfigTestSuite) Test_NetworkOnUnknownChain() {
	rawConfig := s.rawConfig()
	rawConfig["id"] = 1

	_, err := evm.NewEVMConfig(rawConfig)

	s.NotNil(err)
	s.Contains(err.Error(), "network base-sepolia is chain 84532, not 1")
}

func (s *NewEVMConfigTestSuite) Test_InvalidUsdc() {
	rawConfig := s.rawConfig()
	rawConfig["usdc"] = "usdc"

	_, err := evm.NewEVMConfig(rawConfig)

	s.NotNil(err)
}

func (s *NewEVMConfigTestSuite) Test_InvalidProxy() {
	rawConfig := s.rawConfig()
	delete(rawConfig, "proxy")

	_, err := evm.NewEVMConfig(rawConfig)

	s.NotNil(err)
}

func (s *NewEVMConfigTestSuite) Test_InvalidSpokePool() {
	rawConfig := s.rawConfig()
	rawConfig["spokePool"] = "pool"

	_, err := evm.NewEVMConfig(rawConfig)

	s.NotNil(err)
}

func (s *NewEVMConfigTestSuite) Test_ValidConfig() {
	actualConfig, err := evm.NewEVMConfig(s.rawConfig())

	id := new(uint64)
	*id = 84532
	s.Nil(err)
	s.Equal(evm.EVMConfig{
		GeneralChainConfig: chain.GeneralChainConfig{
			Name:      "base",
			Id:        id,
			Endpoint:  "https://sepolia.base.org",
			Type:      "evm",
			Network:   "base-sepolia",
			Blocktime: 2,
		},
		Proxy: common.HexToAddress("0xe72163ccCD6e7E2d5aC27a23A9496c481080AcA1"),
		Tokens: map[string]config.TokenConfig{
			evm.USDC: {
				Address:  common.HexToAddress("0x036CbD53842c5426634e7929541eC2318f3dCF7e"),
				Decimals: 6,
			},
		},
		TokenName:      "USD Coin",
		TokenVersion:   "2",
		Blocktime:      2 * time.Second,
		Confirmations:  1,
		ReceiptTimeout: 120 * time.Second,
	}, *actualConfig)
	s.Equal(common.HexToAddress("0x036CbD53842c5426634e7929541eC2318f3dCF7e"), actualConfig.Usdc())
}

func (s *NewEVMConfigTestSuite) Test_ValidConfigWithOverrides() {
	rawConfig := s.rawConfig()
	rawConfig["spokePool"] = "0x82B564983aE7274c86695917BBf8C99ECb6F0F8F"
	rawConfig["explorer"] = "https://sepolia.basescan.org"
	rawConfig["usdcDecimals"] = 18
	rawConfig["tokenName"] = "USDC"
	rawConfig["blocktime"] = 5
	rawConfig["confirmations"] = 3
	rawConfig["receiptTimeout"] = 30

	actualConfig, err := evm.NewEVMConfig(rawConfig)

	s.Nil(err)
	s.Equal(common.HexToAddress("0x82B564983aE7274c86695917BBf8C99ECb6F0F8F"), actualConfig.SpokePool)
	s.Equal("https://sepolia.basescan.org", actualConfig.Explorer)
	s.Equal(uint8(18), actualConfig.Tokens[evm.USDC].Decimals)
	s.Equal("USDC", actualConfig.TokenName)
	s.Equal(5*time.Second, actualConfig.Blocktime)
	s.Equal(uint64(3), actualConfig.Confirmations)
	s.Equal(30*time.Second, actualConfig.ReceiptTimeout)
}
