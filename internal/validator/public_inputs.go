// public_inputs.go - Canonical public-input vector assembly.
//
// The element order and encoding here must match what the proof was generated
// against, byte for byte. A reordered element or a wrong truncation width yields a
// vector no valid proof can ever match, and the verifier reports it as a plain
// invalid proof with nothing pointing back at the real bug. Change nothing here
// without regenerating the golden vectors in public_inputs_test.go.

package validator

import (
	"fmt"
	"math/big"

	"admission/internal/rollup"
)

// PublicInputs is the ordered public-input vector of one transaction.
type PublicInputs []*big.Int

// Hex returns the vector as fixed-width hex strings, width bytes per element.
// This is the encoding the verification service receives.
func (p PublicInputs) Hex(width int) []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = fmt.Sprintf("0x%0*x", width*2, e)
	}
	return out
}

// buildPublicInputs assembles the vector for tx. roots carries the historic roots
// resolved for the live references of tx, in reference order; it is ignored for
// types that reference none.
func (v *Validator) buildPublicInputs(tx *rollup.Transaction, roots [2]rollup.Bytes32) (PublicInputs, error) {
	full := func(b rollup.Bytes32) *big.Int { return b.Big() }
	// Nullifiers and compressed secrets may exceed the proving field; the circuit
	// hashed their 31-byte truncation, so the top byte is dropped here as well.
	truncated := func(b rollup.Bytes32) *big.Int { return new(big.Int).SetBytes(b.Truncated31()) }

	switch tx.TransactionType {
	case rollup.Deposit:
		return PublicInputs{
			full(tx.ERCAddress),
			full(tx.TokenID),
			full(tx.Value),
			full(tx.Commitments[0]),
		}, nil

	case rollup.SingleTransfer:
		in := PublicInputs{
			full(tx.ERCAddress),
			full(tx.Commitments[0]),
			truncated(tx.Nullifiers[0]),
			full(roots[0]),
		}
		for _, s := range tx.CompressedSecrets {
			in = append(in, truncated(s))
		}
		return in, nil

	case rollup.DoubleTransfer:
		// ercAddress appears twice: the circuit binds the same token address on
		// both legs of the transfer.
		in := PublicInputs{
			full(tx.ERCAddress),
			full(tx.ERCAddress),
			full(tx.Commitments[0]),
			full(tx.Commitments[1]),
			truncated(tx.Nullifiers[0]),
			truncated(tx.Nullifiers[1]),
			full(roots[0]),
			full(roots[1]),
		}
		for _, s := range tx.CompressedSecrets {
			in = append(in, truncated(s))
		}
		return in, nil

	case rollup.Withdraw:
		return PublicInputs{
			full(tx.ERCAddress),
			full(tx.TokenID),
			full(tx.Value),
			truncated(tx.Nullifiers[0]),
			full(tx.RecipientAddress),
			full(roots[0]),
		}, nil

	default:
		return nil, Errorf(UnknownTransactionType, "no public-input layout for type %d", uint8(tx.TransactionType))
	}
}
