// hash.go - Canonical transaction hash.
//
// The hash is a MiMC hash over the BN254 scalar field, absorbed field by field in a
// fixed order. It is computed once at ingestion and recomputed at admission; any
// divergence means the transaction was altered in between.

package rollup

import (
	"encoding/binary"
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// ComputeTransactionHash recomputes the canonical hash over every field of tx
// except TransactionHash itself. The absorption order is fixed; reordering it
// breaks the binding between stored transactions and their hashes.
func ComputeTransactionHash(tx *Transaction) Bytes32 {
	h := mimc.NewMiMC()

	absorbUint64 := func(v uint64) {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], v)
		absorbBytes(h, buf[:])
	}
	absorbWord := func(w Bytes32) {
		absorbBytes(h, w[:])
	}

	absorbUint64(uint64(tx.TransactionType))
	absorbUint64(tx.Fee)
	absorbUint64(uint64(tx.TokenType))
	absorbWord(tx.TokenID)
	absorbWord(tx.Value)
	absorbWord(tx.ERCAddress)
	absorbWord(tx.RecipientAddress)
	absorbWord(tx.PublicInputHash)
	for _, c := range tx.Commitments {
		absorbWord(c)
	}
	for _, n := range tx.Nullifiers {
		absorbWord(n)
	}
	for _, s := range tx.CompressedSecrets {
		absorbWord(s)
	}
	absorbUint64(tx.HistoricRootBlockNumberL2[0])
	absorbUint64(tx.HistoricRootBlockNumberL2[1])
	absorbProof(h, tx.Proof)

	var out Bytes32
	copy(out[:], h.Sum(nil))
	return out
}

// absorbBytes reduces raw bytes into a field element before writing, so inputs at
// or above the modulus cannot make the hasher reject them.
func absorbBytes(h hash.Hash, raw []byte) {
	var e fr.Element
	e.SetBytes(raw)
	b := e.Bytes()
	h.Write(b[:])
}

// absorbProof feeds the opaque proof bytes in 31-byte chunks, each of which is
// guaranteed below the field modulus.
func absorbProof(h hash.Hash, proof []byte) {
	for len(proof) > 0 {
		n := 31
		if len(proof) < n {
			n = len(proof)
		}
		absorbBytes(h, proof[:n])
		proof = proof[n:]
	}
}
