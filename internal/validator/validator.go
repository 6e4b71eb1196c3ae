// validator.go - The transaction admission gate.
//
// A transaction enters a block only if four independent checks all pass: the
// stored hash matches a recomputation, the field population matches the declared
// type's template, every referenced historic root exists, and the proof verifies
// against the type's verification key and the canonical public-input vector. The
// checks share no mutable state and run concurrently; the first failure observed
// is the one reported.

package validator

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"admission/internal/rollup"
)

// ProofVerifier checks a transaction's proof against its type's verification key
// and the assembled public-input vector. Implementations return an Error of kind
// ProofInvalid when the proof does not verify and VerifierUnavailable when the
// verifier or the chain-state reader cannot be reached.
type ProofVerifier interface {
	VerifyProof(ctx context.Context, tx *rollup.Transaction, inputs PublicInputs) error
}

// Validator is the sole entry point for admission decisions.
type Validator struct {
	cfg    Config
	blocks rollup.BlockStore
	proofs ProofVerifier
	log    zerolog.Logger
}

// New creates a validator over the given collaborators. cfg is copied and never
// mutated afterwards.
func New(cfg Config, blocks rollup.BlockStore, proofs ProofVerifier, log zerolog.Logger) *Validator {
	return &Validator{
		cfg:    cfg,
		blocks: blocks,
		proofs: proofs,
		log:    log,
	}
}

// Validate decides ACCEPT/REJECT for one transaction. A nil return is an accept;
// any error is a reject (or, for kind VerifierUnavailable, a retryable fault).
// Unrecognized transaction types are rejected before any check is attempted.
//
// All four checks run to completion even when one of them fails early; none of
// them mutates shared state, so no cancellation is needed. When several fail
// concurrently, which failure surfaces is not deterministic.
func (v *Validator) Validate(ctx context.Context, tx *rollup.Transaction) error {
	if !tx.TransactionType.Known() {
		err := Errorf(UnknownTransactionType, "transaction type %d is not a known shape", uint8(tx.TransactionType))
		v.log.Warn().Str("txHash", tx.TransactionHash.Hex()).Err(err).Msg("transaction rejected")
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		return v.checkHashIntegrity(tx)
	})
	g.Go(func() error {
		return v.checkTypeConsistency(tx)
	})
	g.Go(func() error {
		return v.checkHistoricRoots(ctx, tx)
	})
	g.Go(func() error {
		return v.checkProof(ctx, tx)
	})

	if err := g.Wait(); err != nil {
		v.log.Warn().
			Str("txHash", tx.TransactionHash.Hex()).
			Stringer("type", tx.TransactionType).
			Err(err).
			Msg("transaction rejected")
		return err
	}
	v.log.Debug().
		Str("txHash", tx.TransactionHash.Hex()).
		Stringer("type", tx.TransactionType).
		Msg("transaction accepted")
	return nil
}

// checkHashIntegrity recomputes the canonical hash and compares it to the stored
// one. The hash was already checked at ingestion; this guards against tampering
// between ingestion and block admission and must not be skipped.
func (v *Validator) checkHashIntegrity(tx *rollup.Transaction) error {
	computed := rollup.ComputeTransactionHash(tx)
	if computed != tx.TransactionHash {
		return Errorf(HashMismatch, "stored hash %s does not match recomputed %s", tx.TransactionHash.Hex(), computed.Hex())
	}
	return nil
}

// checkProof resolves the historic roots the public-input layout needs, assembles
// the canonical vector and hands it to the proof verifier.
func (v *Validator) checkProof(ctx context.Context, tx *rollup.Transaction) error {
	roots, err := v.resolveHistoricRoots(ctx, tx)
	if err != nil {
		return err
	}
	inputs, err := v.buildPublicInputs(tx, roots)
	if err != nil {
		return err
	}
	return v.proofs.VerifyProof(ctx, tx, inputs)
}
