// gnark.go - In-process verification backend.
//
// Backend implements Client with gnark's Groth16 verifier, so a deployment can
// run the verification service in the same process instead of over the network.
// The constraint system is fixed inside the verification key; the witness circuit
// below only exists to bind an ordered public-input list into a gnark witness and
// carries no constraints of its own.

package verifier

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	gnarklogger "github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// witnessCircuit binds a public-input vector of known length into a witness.
type witnessCircuit struct {
	Inputs []frontend.Variable `gnark:",public"`
}

// Define keeps every input an ordinary variable; it adds no constraints beyond
// identities. Soundness comes from the verification key, not from this circuit.
func (c *witnessCircuit) Define(api frontend.API) error {
	for _, in := range c.Inputs {
		api.AssertIsEqual(in, in)
	}
	return nil
}

// Backend verifies Groth16 proofs in-process.
type Backend struct {
	curves  map[string]ecc.ID
	schemes map[string]bool
}

// NewBackend creates a backend supporting the curves the circuits are compiled
// over.
func NewBackend() *Backend {
	return &Backend{
		curves: map[string]ecc.ID{
			"bn254":     ecc.BN254,
			"bls12-377": ecc.BLS12_377,
			"bls12-381": ecc.BLS12_381,
		},
		schemes: map[string]bool{
			"groth16": true,
		},
	}
}

// Verify implements Client. A proof that fails to deserialize or to verify
// yields (false, nil); only parameter and key problems yield an error.
func (b *Backend) Verify(_ context.Context, req *VerifyRequest) (bool, error) {
	if !b.schemes[req.ProvingScheme] {
		return false, fmt.Errorf("unsupported proving scheme %q", req.ProvingScheme)
	}
	curveID, ok := b.curves[req.Curve]
	if !ok {
		return false, fmt.Errorf("unsupported curve %q", req.Curve)
	}

	vkBytes, err := decodeHex(req.VerificationKey)
	if err != nil {
		return false, fmt.Errorf("verification key: %w", err)
	}
	vk := groth16.NewVerifyingKey(curveID)
	if _, err := vk.ReadFrom(bytes.NewReader(vkBytes)); err != nil {
		return false, fmt.Errorf("verification key does not deserialize: %w", err)
	}

	proofBytes, err := decodeHex(req.Proof)
	if err != nil {
		return false, nil
	}
	proof := groth16.NewProof(curveID)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return false, nil
	}

	assignment := &witnessCircuit{Inputs: make([]frontend.Variable, len(req.Inputs))}
	for i, in := range req.Inputs {
		v, err := parseInput(in)
		if err != nil {
			return false, fmt.Errorf("public input %d: %w", i, err)
		}
		assignment.Inputs[i] = v
	}
	w, err := frontend.NewWitness(assignment, curveID.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, fmt.Errorf("building public witness: %w", err)
	}

	// gnark logs throughout verification; keep it quiet.
	old := gnarklogger.Logger()
	gnarklogger.Set(zerolog.New(io.Discard).Level(zerolog.Disabled))
	defer gnarklogger.Set(old)

	if err := groth16.Verify(proof, vk, w); err != nil {
		return false, nil
	}
	return true, nil
}

// decodeHex strips an optional 0x prefix and decodes.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return raw, nil
}

// parseInput decodes one fixed-width hex public input into a big integer.
func parseInput(s string) (*big.Int, error) {
	raw, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}
