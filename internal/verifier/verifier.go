// verifier.go - Proof verification against chain-registered keys.
//
// The verifier fetches the verification key registered on chain for the
// transaction's type, assembles a verification request with the proving-scheme
// parameters and the fixed-width public inputs, and interprets the boolean answer
// of the verification service. A service or chain-state fault is reported as
// VerifierUnavailable, never as an invalid proof.

package verifier

import (
	"context"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"

	"admission/internal/rollup"
	"admission/internal/validator"
)

// inputWidth is the byte width of each public input on the wire.
const inputWidth = 32

// vkCacheSize bounds the verification-key cache. There is one key per
// transaction type per contract, so a handful of entries suffices.
const vkCacheSize = 16

// ChainStateReader reads the verification key registered for a transaction type
// under a named verification contract. A key that cannot be read is an
// operational fault.
type ChainStateReader interface {
	GetVerificationKey(ctx context.Context, contract string, txType rollup.TransactionType) ([]byte, error)
}

// VerifyRequest is the wire request of the verification service. All binary
// payloads travel as 0x-prefixed hex.
type VerifyRequest struct {
	VerificationKey string   `json:"vk"`
	Proof           string   `json:"proof"`
	ProvingScheme   string   `json:"provingScheme"`
	Backend         string   `json:"backend"`
	Curve           string   `json:"curve"`
	Inputs          []string `json:"inputs"`
}

// VerifyResponse is the wire response of the verification service.
type VerifyResponse struct {
	Verifies bool `json:"verifies"`
}

// Client submits a verification request and reports the boolean outcome. An
// error means the service could not answer, independent of proof validity.
type Client interface {
	Verify(ctx context.Context, req *VerifyRequest) (bool, error)
}

// Verifier implements validator.ProofVerifier over a chain-state reader and a
// verification service client.
type Verifier struct {
	cfg     validator.Config
	chain   ChainStateReader
	client  Client
	vkCache *lru.Cache
	log     zerolog.Logger
}

// New creates a Verifier with a fresh verification-key cache.
func New(cfg validator.Config, chain ChainStateReader, client Client, log zerolog.Logger) (*Verifier, error) {
	cache, err := lru.New(vkCacheSize)
	if err != nil {
		return nil, fmt.Errorf("verification key cache: %w", err)
	}
	return &Verifier{
		cfg:     cfg,
		chain:   chain,
		client:  client,
		vkCache: cache,
		log:     log,
	}, nil
}

// VerifyProof implements validator.ProofVerifier.
func (v *Verifier) VerifyProof(ctx context.Context, tx *rollup.Transaction, inputs validator.PublicInputs) error {
	vk, err := v.verificationKey(ctx, tx.TransactionType)
	if err != nil {
		return validator.Wrap(validator.VerifierUnavailable, err, "verification key for %s could not be read", tx.TransactionType)
	}

	req := &VerifyRequest{
		VerificationKey: "0x" + hex.EncodeToString(vk),
		Proof:           "0x" + hex.EncodeToString(tx.Proof),
		ProvingScheme:   v.cfg.ProvingScheme,
		Backend:         v.cfg.Backend,
		Curve:           v.cfg.Curve,
		Inputs:          inputs.Hex(inputWidth),
	}
	verifies, err := v.client.Verify(ctx, req)
	if err != nil {
		return validator.Wrap(validator.VerifierUnavailable, err, "verification service unreachable")
	}
	if !verifies {
		return validator.Errorf(validator.ProofInvalid, "proof does not verify for %s", tx.TransactionType)
	}
	v.log.Debug().Stringer("type", tx.TransactionType).Msg("proof verified")
	return nil
}

// verificationKey returns the cached key for txType, reading it from chain state
// on a miss.
func (v *Verifier) verificationKey(ctx context.Context, txType rollup.TransactionType) ([]byte, error) {
	cacheKey := fmt.Sprintf("%s/%d", v.cfg.VerificationContract, uint8(txType))
	if cached, ok := v.vkCache.Get(cacheKey); ok {
		return cached.([]byte), nil
	}
	vk, err := v.chain.GetVerificationKey(ctx, v.cfg.VerificationContract, txType)
	if err != nil {
		return nil, err
	}
	v.vkCache.Add(cacheKey, vk)
	return vk, nil
}
