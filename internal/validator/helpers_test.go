package validator

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"admission/internal/rollup"
)

// word builds a Bytes32 holding a small scalar.
func word(v byte) rollup.Bytes32 {
	var b rollup.Bytes32
	b[31] = v
	return b
}

// wellFormed returns a transaction matching its type's template, with blocks 1
// and 2 expected to exist in the test block store.
func wellFormed(txType rollup.TransactionType) *rollup.Transaction {
	tx := &rollup.Transaction{
		TransactionType:   txType,
		PublicInputHash:   word(0x99),
		ERCAddress:        word(0xaa),
		Commitments:       make([]rollup.Bytes32, 2),
		Nullifiers:        make([]rollup.Bytes32, 2),
		CompressedSecrets: make([]rollup.Bytes32, 8),
		Proof:             []byte{0xde, 0xad, 0xbe, 0xef},
	}
	switch txType {
	case rollup.Deposit:
		tx.TokenType = rollup.ERC20
		tx.TokenID = word(0x03)
		tx.Value = word(0x05)
		tx.Commitments[0] = word(0x02)
	case rollup.SingleTransfer:
		tx.Commitments[0] = word(0x02)
		tx.Nullifiers[0] = word(0x04)
		tx.CompressedSecrets[0] = word(0x06)
		tx.HistoricRootBlockNumberL2 = [2]uint64{1, 0}
	case rollup.DoubleTransfer:
		tx.Commitments[0] = word(0x02)
		tx.Commitments[1] = word(0x03)
		tx.Nullifiers[0] = word(0x04)
		tx.Nullifiers[1] = word(0x05)
		tx.CompressedSecrets[0] = word(0x06)
		tx.HistoricRootBlockNumberL2 = [2]uint64{1, 2}
	case rollup.Withdraw:
		tx.TokenType = rollup.ERC20
		tx.TokenID = word(0x03)
		tx.Value = word(0x05)
		tx.RecipientAddress = word(0x07)
		tx.Nullifiers[0] = word(0x04)
		tx.HistoricRootBlockNumberL2 = [2]uint64{1, 0}
	}
	tx.TransactionHash = rollup.ComputeTransactionHash(tx)
	return tx
}

// testBlockStore returns a store holding blocks 1 and 2.
func testBlockStore() *rollup.MemoryBlockStore {
	store := rollup.NewMemoryBlockStore()
	store.AddBlock(rollup.Block{BlockNumberL2: 1, Root: word(0x11)})
	store.AddBlock(rollup.Block{BlockNumberL2: 2, Root: word(0x22)})
	return store
}

// fakeProofVerifier counts calls and returns a fixed outcome.
type fakeProofVerifier struct {
	calls atomic.Int64
	err   error
}

func (f *fakeProofVerifier) VerifyProof(_ context.Context, _ *rollup.Transaction, _ PublicInputs) error {
	f.calls.Add(1)
	return f.err
}

// failingBlockStore fails every lookup with a transport error.
type failingBlockStore struct {
	err error
}

func (f *failingBlockStore) LookupHistoricRoot(_ context.Context, _ uint64) (*rollup.Block, error) {
	return nil, f.err
}

// newTestValidator wires a validator over the test store and a fake verifier.
func newTestValidator(blocks rollup.BlockStore, proofs ProofVerifier) *Validator {
	return New(DefaultConfig(), blocks, proofs, zerolog.Nop())
}
