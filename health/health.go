// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package health

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

type BlockReader interface {
	LatestBlock() (*big.Int, error)
}

type ChainHealth struct {
	ChainId uint64 `json:"chainId"`
	Block   string `json:"block,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Status struct {
	Status string        `json:"status"`
	Chains []ChainHealth `json:"chains"`
}

// Handler reports ok when every configured RPC endpoint answers with its
// latest block.
type Handler struct {
	clients map[uint64]BlockReader
}

func NewHandler(clients map[uint64]BlockReader) *Handler {
	return &Handler{
		clients: clients,
	}
}

func (h *Handler) Check() Status {
	results := make(chan ChainHealth, len(h.clients))
	var wg conc.WaitGroup
	for id, client := range h.clients {
		id, client := id, client
		wg.Go(func() {
			block, err := client.LatestBlock()
			if err != nil {
				results <- ChainHealth{ChainId: id, Error: err.Error()}
				return
			}
			results <- ChainHealth{ChainId: id, Block: block.String()}
		})
	}
	wg.Wait()
	close(results)

	status := Status{Status: "ok", Chains: []ChainHealth{}}
	for r := range results {
		if r.Error != "" {
			status.Status = "degraded"
		}
		status.Chains = append(status.Chains, r)
	}
	sort.Slice(status.Chains, func(i, j int) bool {
		return status.Chains[i].ChainId < status.Chains[j].ChainId
	})
	return status
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.Check()

	w.Header().Set("Content-Type", "application/json")
	if status.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(status)
}

// StartHealthEndpoint starts /health endpoint on provided port
func StartHealthEndpoint(port uint16, handler *Handler) {
	mux := http.NewServeMux()
	mux.Handle("/health", handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	log.Info().Msgf("Starting /health endpoint on port %d", port)
	err := srv.ListenAndServe()
	if err != nil {
		log.Err(err).Msgf("Failed starting health server")
	}
}
