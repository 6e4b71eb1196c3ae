// server.go - HTTP surface of the admission daemon.
//
// POST /check-transaction runs the full admission pipeline on one transaction.
// POST /verify serves the verification service when the daemon runs it in-process.
// GET /healthz and GET /metrics are operational endpoints.

package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"admission/internal/rollup"
	"admission/internal/validator"
)

// checkResponse is the wire response of the admission endpoint.
type checkResponse struct {
	Accepted  bool   `json:"accepted"`
	Kind      string `json:"kind,omitempty"`
	Message   string `json:"message,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// Server wires the validator and operational components into an HTTP mux.
type Server struct {
	validate *validator.Validator
	verify   http.Handler // nil when the verifier runs remotely
	health   *HealthChecker
	metrics  *Metrics
	limiter  *RateLimiter
	log      zerolog.Logger
}

// NewServer creates the daemon's HTTP server.
func NewServer(v *validator.Validator, verify http.Handler, health *HealthChecker, metrics *Metrics, limiter *RateLimiter, log zerolog.Logger) *Server {
	return &Server{
		validate: v,
		verify:   verify,
		health:   health,
		metrics:  metrics,
		limiter:  limiter,
		log:      log,
	}
}

// Handler builds the daemon's route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/check-transaction", s.handleCheckTransaction)
	if s.verify != nil {
		mux.Handle("/verify", s.verify)
	}
	mux.Handle("/healthz", s.health.Handler())
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// handleCheckTransaction decodes one transaction and runs the admission pipeline.
func (s *Server) handleCheckTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.limiter.Allow() {
		s.metrics.ObserveRateLimited()
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	var tx rollup.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.log.Warn().Err(err).Msg("bad admission request")
		return
	}

	start := time.Now()
	err := s.validate.Validate(r.Context(), &tx)
	s.metrics.ObserveDecision(err, time.Since(start))

	resp := checkResponse{Accepted: err == nil}
	if err != nil {
		kind := validator.KindOf(err)
		resp.Kind = kind.String()
		resp.Message = err.Error()
		resp.Retryable = kind.Retryable()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error().Err(err).Msg("writing admission response")
	}
}
