// historic.go - Resolution of referenced historic state roots.
//
// Transfers and withdrawals prove membership of their spent notes against a root
// committed in an earlier L2 block. The reference is a logical block number; a
// number the block store cannot resolve is a hard rejection. Deposits reference
// nothing (their template pins both indices to zero).

package validator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"admission/internal/rollup"
)

// resolveHistoricRoots looks up every live historic reference of tx and returns
// the resolved roots in reference order. The number of live references comes from
// the type's template: one for single transfers and withdrawals, two for double
// transfers, none for deposits. Both lookups of a double transfer run
// concurrently.
func (v *Validator) resolveHistoricRoots(ctx context.Context, tx *rollup.Transaction) ([2]rollup.Bytes32, error) {
	var roots [2]rollup.Bytes32
	n := templates[tx.TransactionType].liveHistoricRoots
	if n == 0 {
		return roots, nil
	}

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			block, err := v.blocks.LookupHistoricRoot(ctx, tx.HistoricRootBlockNumberL2[i])
			if err != nil {
				return Wrap(VerifierUnavailable, err, "block store lookup for block %d failed", tx.HistoricRootBlockNumberL2[i])
			}
			if block == nil {
				return Errorf(HistoricRootNotFound, "historic root block %d does not exist", tx.HistoricRootBlockNumberL2[i])
			}
			roots[i] = block.Root
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return roots, err
	}
	return roots, nil
}

// checkHistoricRoots confirms every live historic reference of tx resolves.
func (v *Validator) checkHistoricRoots(ctx context.Context, tx *rollup.Transaction) error {
	_, err := v.resolveHistoricRoots(ctx, tx)
	return err
}
