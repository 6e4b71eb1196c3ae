// service.go - HTTP surface of the verification service.
//
// Deployments that run the verifier out of process mount this handler in a
// worker and point the admission daemon's HTTPClient at it. The wire format is
// the same VerifyRequest/VerifyResponse pair the client speaks.

package verifier

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Service serves verification requests over HTTP, delegating to a Client
// (normally the in-process gnark Backend).
type Service struct {
	backend Client
	log     zerolog.Logger
}

// NewService creates the HTTP verification service.
func NewService(backend Client, log zerolog.Logger) *Service {
	return &Service{backend: backend, log: log}
}

// ServeHTTP implements http.Handler for POST verify requests.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.log.Warn().Err(err).Msg("bad verify request")
		return
	}

	verifies, err := s.backend.Verify(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.log.Error().Err(err).Msg("verification backend failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(VerifyResponse{Verifies: verifies}); err != nil {
		s.log.Error().Err(err).Msg("writing verify response")
	}
}
