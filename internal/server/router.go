package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/koso-app/koso/internal/config"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the handlers. idem may be nil, which disables
// Idempotency-Key handling.
func NewRouter(h *Handler, idem IdempotencyStore, ttl time.Duration, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(Logging(log))

	r.HandleFunc("/accounts/{id}/dashboard", h.Dashboard).Methods("GET")
	r.HandleFunc("/accounts/{id}/transactions", h.Transactions).Methods("GET")
	r.HandleFunc("/accounts/{id}/goals", h.Goals).Methods("GET")

	writes := r.PathPrefix("/accounts/{id}").Subrouter()
	if idem != nil {
		writes.Use(Idempotency(idem, ttl, log))
	}
	writes.HandleFunc("/goals", h.CreateGoal).Methods("POST")
	writes.HandleFunc("/deposits", h.Deposit).Methods("POST")
	writes.HandleFunc("/withdrawals", h.Withdraw).Methods("POST")
	writes.HandleFunc("/goals/{goalID}/contributions", h.Contribute).Methods("POST")

	return r
}

func NewServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}
