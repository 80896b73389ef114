package consts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// TokenABI covers the EIP-3009 token reads needed to build the signing domain.
var TokenABI, _ = abi.JSON(strings.NewReader(`
[
  {
    "inputs": [],
    "name": "name",
    "outputs": [{ "internalType": "string", "name": "", "type": "string" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "version",
    "outputs": [{ "internalType": "string", "name": "", "type": "string" }],
    "stateMutability": "view",
    "type": "function"
  }
]
`))
