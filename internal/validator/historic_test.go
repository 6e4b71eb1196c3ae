package validator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admission/internal/rollup"
)

func TestHistoricRootsDepositLooksUpNothing(t *testing.T) {
	// Deposits reference no historic root; even an always-failing store must not
	// be consulted.
	v := newTestValidator(&failingBlockStore{err: errors.New("store down")}, &fakeProofVerifier{})
	assert.NoError(t, v.checkHistoricRoots(context.Background(), wellFormed(rollup.Deposit)))
}

func TestHistoricRootsResolved(t *testing.T) {
	v := newTestValidator(testBlockStore(), &fakeProofVerifier{})
	for _, txType := range []rollup.TransactionType{rollup.SingleTransfer, rollup.DoubleTransfer, rollup.Withdraw} {
		assert.NoError(t, v.checkHistoricRoots(context.Background(), wellFormed(txType)), txType.String())
	}

	roots, err := v.resolveHistoricRoots(context.Background(), wellFormed(rollup.DoubleTransfer))
	require.NoError(t, err)
	assert.Equal(t, word(0x11), roots[0])
	assert.Equal(t, word(0x22), roots[1])
}

func TestHistoricRootsMissing(t *testing.T) {
	v := newTestValidator(testBlockStore(), &fakeProofVerifier{})

	for _, txType := range []rollup.TransactionType{rollup.SingleTransfer, rollup.Withdraw} {
		tx := wellFormed(txType)
		tx.HistoricRootBlockNumberL2[0] = 99
		err := v.checkHistoricRoots(context.Background(), tx)
		require.Error(t, err, txType.String())
		assert.Equal(t, HistoricRootNotFound, KindOf(err))
	}

	// One existing and one missing reference still fails.
	tx := wellFormed(rollup.DoubleTransfer)
	tx.HistoricRootBlockNumberL2[1] = 99
	err := v.checkHistoricRoots(context.Background(), tx)
	require.Error(t, err)
	assert.Equal(t, HistoricRootNotFound, KindOf(err))
}

func TestHistoricRootsStoreFailure(t *testing.T) {
	v := newTestValidator(&failingBlockStore{err: errors.New("store down")}, &fakeProofVerifier{})
	err := v.checkHistoricRoots(context.Background(), wellFormed(rollup.SingleTransfer))
	require.Error(t, err)
	assert.Equal(t, VerifierUnavailable, KindOf(err), "a store fault is operational, not a rejection")
}
