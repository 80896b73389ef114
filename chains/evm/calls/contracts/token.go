package contracts

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/consts"
	"github.com/sygmaprotocol/sygma-core/chains/evm/client"
	"github.com/sygmaprotocol/sygma-core/chains/evm/contracts"
)

type TokenContract struct {
	contracts.Contract
	client client.Client
}

func NewTokenContract(
	client client.Client,
	address common.Address,
) *TokenContract {
	return &TokenContract{
		Contract: contracts.NewContract(address, consts.TokenABI, nil, client, nil),
		client:   client,
	}
}

func (c *TokenContract) Name() (string, error) {
	res, err := c.CallContract("name")
	if err != nil {
		return "", err
	}

	return *abi.ConvertType(res[0], new(string)).(*string), nil
}

func (c *TokenContract) Version() (string, error) {
	res, err := c.CallContract("version")
	if err != nil {
		return "", err
	}

	return *abi.ConvertType(res[0], new(string)).(*string), nil
}
