// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/consts"
	"github.com/sygmaprotocol/sygma-core/chains/evm/client"
	"github.com/sygmaprotocol/sygma-core/chains/evm/contracts"
)

type SpokePoolContract struct {
	contracts.Contract
	client client.Client
}

func NewSpokePoolContract(
	client client.Client,
	address common.Address,
) *SpokePoolContract {
	return &SpokePoolContract{
		Contract: contracts.NewContract(address, consts.SpokePoolABI, nil, client, nil),
		client:   client,
	}
}

// CurrentTime returns the spoke pool's canonical clock in unix seconds.
func (c *SpokePoolContract) CurrentTime() (uint64, error) {
	res, err := c.CallContract("getCurrentTime")
	if err != nil {
		return 0, err
	}

	out := *abi.ConvertType(res[0], new(big.Int)).(*big.Int)
	return out.Uint64(), nil
}

func (c *SpokePoolContract) DepositQuoteTimeBuffer() (uint64, error) {
	res, err := c.CallContract("depositQuoteTimeBuffer")
	if err != nil {
		return 0, err
	}

	out := *abi.ConvertType(res[0], new(uint32)).(*uint32)
	return uint64(out), nil
}

func (c *SpokePoolContract) FillDeadlineBuffer() (uint64, error) {
	res, err := c.CallContract("fillDeadlineBuffer")
	if err != nil {
		return 0, err
	}

	out := *abi.ConvertType(res[0], new(uint32)).(*uint32)
	return uint64(out), nil
}
