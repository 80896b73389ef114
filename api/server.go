package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mrdnfinance/x402-across/api/handlers"
	"github.com/mrdnfinance/x402-across/health"
	"github.com/mrdnfinance/x402-across/metrics"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Quote   *handlers.QuoteHandler
	Settle  *handlers.SettleHandler
	Verify  *handlers.VerifyHandler
	Paywall *handlers.PaywallHandler
	Deposit *handlers.DepositHandler
	Health  *health.Handler
}

// NewRouter registers every API route. Requests are counted by route
// template in httpMetrics, which also serves /metrics.
func NewRouter(h Handlers, httpMetrics *metrics.HTTPMetrics) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/across-quote", h.Quote.HandleRequest).Methods("GET")
	r.HandleFunc("/api/settle", h.Settle.HandleSettle).Methods("POST")
	r.HandleFunc("/api/x402/verify", h.Verify.HandleVerify).Methods("POST")
	r.HandleFunc("/api/x402/verify", h.Verify.HandleDocumentation).Methods("GET")
	r.HandleFunc("/api/deposit/{chainId:[0-9]+}/{txHash}", h.Deposit.HandleRequest).Methods("GET")
	r.HandleFunc("/protected", h.Paywall.HandleRequest).Methods("GET")
	r.Handle("/health", h.Health).Methods("GET")
	r.Handle("/metrics", httpMetrics.Handler()).Methods("GET")
	r.Use(httpMetrics.Middleware)
	return r
}

func Serve(
	ctx context.Context,
	addr string,
	h Handlers,
	httpMetrics *metrics.HTTPMetrics,
) {
	server := &http.Server{
		Addr:        addr,
		Handler:     NewRouter(h, httpMetrics),
		ReadTimeout: time.Second * 10,
	}
	go func() {
		log.Info().Msgf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Err(err).Msgf("Error shutting down server")
	} else {
		log.Info().Msgf("Server shut down gracefully.")
	}
}
