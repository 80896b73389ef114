package handlers

import (
	"context"
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/events"
)

type DepositFetcher interface {
	Deposit(ctx context.Context, hash common.Hash) (*events.AcrossDeposit, error)
}

type DepositResponse struct {
	DepositId          string `json:"depositId"`
	DestinationChainId string `json:"destinationChainId"`
	InputToken         string `json:"inputToken"`
	OutputToken        string `json:"outputToken"`
	InputAmount        string `json:"inputAmount"`
	OutputAmount       string `json:"outputAmount"`
	QuoteTimestamp     uint32 `json:"quoteTimestamp"`
	FillDeadline       uint32 `json:"fillDeadline"`
	Depositor          string `json:"depositor"`
	Recipient          string `json:"recipient"`
}

type DepositHandler struct {
	fetchers map[uint64]DepositFetcher
}

func NewDepositHandler(fetchers map[uint64]DepositFetcher) *DepositHandler {
	return &DepositHandler{
		fetchers: fetchers,
	}
}

// HandleRequest returns the bridge deposit made by a settlement transaction
func (h *DepositHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	chainId, ok := new(big.Int).SetString(vars["chainId"], 10)
	if !ok {
		JSONError(w, fmt.Errorf("invalid chainId"), http.StatusBadRequest)
		return
	}

	fetcher, ok := h.fetchers[chainId.Uint64()]
	if !ok {
		JSONError(w, fmt.Errorf("chain %d not supported", chainId.Uint64()), http.StatusNotFound)
		return
	}

	txHash := vars["txHash"]
	if len(common.FromHex(txHash)) != common.HashLength {
		JSONError(w, fmt.Errorf("invalid txHash"), http.StatusBadRequest)
		return
	}

	d, err := fetcher.Deposit(r.Context(), common.HexToHash(txHash))
	if err != nil {
		JSONError(w, fmt.Errorf("deposit not found: %s", err), http.StatusNotFound)
		return
	}

	JSONResponse(w, DepositResponse{
		DepositId:          d.DepositId.String(),
		DestinationChainId: d.DestinationChainId.String(),
		InputToken:         common.BytesToAddress(d.InputToken[:]).Hex(),
		OutputToken:        common.BytesToAddress(d.OutputToken[:]).Hex(),
		InputAmount:        d.InputAmount.String(),
		OutputAmount:       d.OutputAmount.String(),
		QuoteTimestamp:     d.QuoteTimestamp,
		FillDeadline:       d.FillDeadline,
		Depositor:          common.BytesToAddress(d.Depositor[:]).Hex(),
		Recipient:          common.BytesToAddress(d.Recipient[:]).Hex(),
	}, http.StatusOK)
}
