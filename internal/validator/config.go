// config.go - Protocol constants for the admission gate.

package validator

import "admission/internal/rollup"

// Config carries the protocol constants the checks compare against. It is passed
// in at construction and never mutated, so several differently-configured
// validators can coexist in one process.
type Config struct {
	// Zero is the canonical empty-slot sentinel.
	Zero rollup.Bytes32

	// Proving-scheme parameters forwarded to the verification service. They must
	// match what the circuits were compiled with.
	ProvingScheme string
	Backend       string
	Curve         string

	// VerificationContract names the on-chain registry the per-type verification
	// keys are read from.
	VerificationContract string
}

// DefaultConfig returns the production protocol parameters.
func DefaultConfig() Config {
	return Config{
		Zero:                 rollup.Bytes32{},
		ProvingScheme:        "groth16",
		Backend:              "gnark",
		Curve:                "bn254",
		VerificationContract: "Challenges",
	}
}
