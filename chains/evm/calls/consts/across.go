// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package consts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// SpokePoolABI holds the read-only timing surface of the Across spoke pool and
// the deposit event emitted when funds enter the bridge.
var SpokePoolABI, _ = abi.JSON(strings.NewReader(`
[
  {
    "inputs": [],
    "name": "getCurrentTime",
    "outputs": [{ "internalType": "uint256", "name": "", "type": "uint256" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "depositQuoteTimeBuffer",
    "outputs": [{ "internalType": "uint32", "name": "", "type": "uint32" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "fillDeadlineBuffer",
    "outputs": [{ "internalType": "uint32", "name": "", "type": "uint32" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "anonymous": false,
    "inputs": [
      { "indexed": false, "internalType": "bytes32", "name": "inputToken", "type": "bytes32" },
      { "indexed": false, "internalType": "bytes32", "name": "outputToken", "type": "bytes32" },
      { "indexed": false, "internalType": "uint256", "name": "inputAmount", "type": "uint256" },
      { "indexed": false, "internalType": "uint256", "name": "outputAmount", "type": "uint256" },
      { "indexed": true, "internalType": "uint256", "name": "destinationChainId", "type": "uint256" },
      { "indexed": true, "internalType": "uint256", "name": "depositId", "type": "uint256" },
      { "indexed": false, "internalType": "uint32", "name": "quoteTimestamp", "type": "uint32" },
      { "indexed": false, "internalType": "uint32", "name": "fillDeadline", "type": "uint32" },
      { "indexed": false, "internalType": "uint32", "name": "exclusivityDeadline", "type": "uint32" },
      { "indexed": true, "internalType": "bytes32", "name": "depositor", "type": "bytes32" },
      { "indexed": false, "internalType": "bytes32", "name": "recipient", "type": "bytes32" },
      { "indexed": false, "internalType": "bytes32", "name": "exclusiveRelayer", "type": "bytes32" },
      { "indexed": false, "internalType": "bytes", "name": "message", "type": "bytes" }
    ],
    "name": "FundsDeposited",
    "type": "event"
  }
]
`))
