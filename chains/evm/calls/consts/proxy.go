package consts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	// ProxyTransferV1 is the same-chain overload of transferWithAuthorization.
	ProxyTransferV1 = "transferWithAuthorization"
	// ProxyTransferV2 is the cross-chain overload; abi.JSON suffixes the
	// second declaration of an overloaded name.
	ProxyTransferV2 = "transferWithAuthorization0"
)

var ProxyABI, _ = abi.JSON(strings.NewReader(`
[
  {
    "inputs": [
      { "internalType": "address", "name": "from", "type": "address" },
      { "internalType": "address", "name": "to", "type": "address" },
      { "internalType": "uint256", "name": "value", "type": "uint256" },
      { "internalType": "uint256", "name": "validAfter", "type": "uint256" },
      { "internalType": "uint256", "name": "validBefore", "type": "uint256" },
      { "internalType": "bytes32", "name": "nonce", "type": "bytes32" },
      { "internalType": "bytes", "name": "signature", "type": "bytes" },
      { "internalType": "address", "name": "recipient", "type": "address" },
      { "internalType": "address", "name": "platform", "type": "address" },
      { "internalType": "uint256", "name": "platformFeeBps", "type": "uint256" }
    ],
    "name": "transferWithAuthorization",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "address", "name": "from", "type": "address" },
      { "internalType": "address", "name": "to", "type": "address" },
      { "internalType": "uint256", "name": "value", "type": "uint256" },
      { "internalType": "uint256", "name": "validAfter", "type": "uint256" },
      { "internalType": "uint256", "name": "validBefore", "type": "uint256" },
      { "internalType": "bytes32", "name": "nonce", "type": "bytes32" },
      { "internalType": "bytes", "name": "signature", "type": "bytes" },
      { "internalType": "address", "name": "recipient", "type": "address" },
      { "internalType": "address", "name": "platform", "type": "address" },
      { "internalType": "uint256", "name": "platformFeeBps", "type": "uint256" },
      {
        "components": [
          { "internalType": "uint256", "name": "destinationChainId", "type": "uint256" },
          { "internalType": "uint256", "name": "outputAmount", "type": "uint256" },
          { "internalType": "uint32", "name": "quoteTimestamp", "type": "uint32" },
          { "internalType": "uint32", "name": "fillDeadline", "type": "uint32" }
        ],
        "internalType": "struct DepositParams",
        "name": "depositParams",
        "type": "tuple"
      },
      { "internalType": "bytes", "name": "backendMessageSig", "type": "bytes" }
    ],
    "name": "transferWithAuthorization",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`))
