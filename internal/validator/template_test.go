package validator

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admission/internal/rollup"
)

func checkType(tx *rollup.Transaction) error {
	v := newTestValidator(testBlockStore(), &fakeProofVerifier{})
	return v.checkTypeConsistency(tx)
}

func TestTypeConsistencyWellFormed(t *testing.T) {
	for _, txType := range []rollup.TransactionType{rollup.Deposit, rollup.SingleTransfer, rollup.DoubleTransfer, rollup.Withdraw} {
		t.Run(txType.String(), func(t *testing.T) {
			assert.NoError(t, checkType(wellFormed(txType)))
		})
	}
}

func TestTypeConsistencyUnknownType(t *testing.T) {
	tx := wellFormed(rollup.Deposit)
	tx.TransactionType = rollup.TransactionType(4)
	err := checkType(tx)
	require.Error(t, err)
	assert.Equal(t, UnknownTransactionType, KindOf(err))
}

// Every template-governed field, flipped one at a time, must fail with
// TypeInconsistent for that exact type.
func TestTypeConsistencySingleFieldViolations(t *testing.T) {
	cases := []struct {
		txType rollup.TransactionType
		field  string
		mutate func(*rollup.Transaction)
	}{
		{rollup.Deposit, "publicInputHash zero", func(tx *rollup.Transaction) { tx.PublicInputHash = rollup.Bytes32{} }},
		{rollup.Deposit, "ercAddress zero", func(tx *rollup.Transaction) { tx.ERCAddress = rollup.Bytes32{} }},
		{rollup.Deposit, "recipient set", func(tx *rollup.Transaction) { tx.RecipientAddress = word(1) }},
		{rollup.Deposit, "commitment missing", func(tx *rollup.Transaction) { tx.Commitments[0] = rollup.Bytes32{} }},
		{rollup.Deposit, "second commitment set", func(tx *rollup.Transaction) { tx.Commitments[1] = word(1) }},
		{rollup.Deposit, "nullifier set", func(tx *rollup.Transaction) { tx.Nullifiers[0] = word(1) }},
		{rollup.Deposit, "secret set", func(tx *rollup.Transaction) { tx.CompressedSecrets[3] = word(1) }},
		{rollup.Deposit, "historic ref set", func(tx *rollup.Transaction) { tx.HistoricRootBlockNumberL2[0] = 9 }},
		{rollup.Deposit, "second historic ref set", func(tx *rollup.Transaction) { tx.HistoricRootBlockNumberL2[1] = 9 }},
		{rollup.Deposit, "all-zero proof", func(tx *rollup.Transaction) { tx.Proof = make([]byte, 128) }},
		{rollup.Deposit, "commitments wrong length", func(tx *rollup.Transaction) { tx.Commitments = tx.Commitments[:1] }},
		{rollup.Deposit, "nullifiers wrong length", func(tx *rollup.Transaction) { tx.Nullifiers = append(tx.Nullifiers, rollup.Bytes32{}) }},
		{rollup.Deposit, "secrets wrong length", func(tx *rollup.Transaction) { tx.CompressedSecrets = tx.CompressedSecrets[:7] }},

		{rollup.SingleTransfer, "tokenId set", func(tx *rollup.Transaction) { tx.TokenID = word(1) }},
		{rollup.SingleTransfer, "value set", func(tx *rollup.Transaction) { tx.Value = word(1) }},
		{rollup.SingleTransfer, "recipient set", func(tx *rollup.Transaction) { tx.RecipientAddress = word(1) }},
		{rollup.SingleTransfer, "commitment missing", func(tx *rollup.Transaction) { tx.Commitments[0] = rollup.Bytes32{} }},
		{rollup.SingleTransfer, "second commitment set", func(tx *rollup.Transaction) { tx.Commitments[1] = word(1) }},
		{rollup.SingleTransfer, "nullifier missing", func(tx *rollup.Transaction) { tx.Nullifiers[0] = rollup.Bytes32{} }},
		{rollup.SingleTransfer, "second nullifier set", func(tx *rollup.Transaction) { tx.Nullifiers[1] = word(1) }},
		{rollup.SingleTransfer, "secrets all zero", func(tx *rollup.Transaction) { tx.CompressedSecrets[0] = rollup.Bytes32{} }},

		{rollup.DoubleTransfer, "second commitment missing", func(tx *rollup.Transaction) { tx.Commitments[1] = rollup.Bytes32{} }},
		{rollup.DoubleTransfer, "second nullifier missing", func(tx *rollup.Transaction) { tx.Nullifiers[1] = rollup.Bytes32{} }},
		{rollup.DoubleTransfer, "tokenId set", func(tx *rollup.Transaction) { tx.TokenID = word(1) }},

		{rollup.Withdraw, "recipient missing", func(tx *rollup.Transaction) { tx.RecipientAddress = rollup.Bytes32{} }},
		{rollup.Withdraw, "commitment set", func(tx *rollup.Transaction) { tx.Commitments[0] = word(1) }},
		{rollup.Withdraw, "nullifier missing", func(tx *rollup.Transaction) { tx.Nullifiers[0] = rollup.Bytes32{} }},
		{rollup.Withdraw, "second nullifier set", func(tx *rollup.Transaction) { tx.Nullifiers[1] = word(1) }},
		{rollup.Withdraw, "secret set", func(tx *rollup.Transaction) { tx.CompressedSecrets[0] = word(1) }},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s/%s", tc.txType, tc.field), func(t *testing.T) {
			tx := wellFormed(tc.txType)
			tc.mutate(tx)
			err := checkType(tx)
			require.Error(t, err)
			assert.Equal(t, TypeInconsistent, KindOf(err))
			assert.Contains(t, err.Error(), tc.txType.String())
		})
	}
}

// The token truth table for deposits and withdrawals: reject only the exact
// combination of a non-fungible token with neither a tokenId nor a value.
func TestTypeConsistencyTokenTruthTable(t *testing.T) {
	cases := []struct {
		name      string
		tokenType rollup.TokenType
		tokenID   rollup.Bytes32
		value     rollup.Bytes32
		ok        bool
	}{
		{"fungible with value", rollup.ERC20, rollup.Bytes32{}, word(5), true},
		{"fungible with nothing", rollup.ERC20, rollup.Bytes32{}, rollup.Bytes32{}, true},
		{"erc721 with tokenId", rollup.ERC721, word(3), rollup.Bytes32{}, true},
		{"erc721 with value only", rollup.ERC721, rollup.Bytes32{}, word(5), true},
		{"erc721 with neither", rollup.ERC721, rollup.Bytes32{}, rollup.Bytes32{}, false},
		{"erc1155 with both", rollup.ERC1155, word(3), word(5), true},
		{"erc1155 with neither", rollup.ERC1155, rollup.Bytes32{}, rollup.Bytes32{}, false},
	}
	for _, txType := range []rollup.TransactionType{rollup.Deposit, rollup.Withdraw} {
		for _, tc := range cases {
			t.Run(fmt.Sprintf("%s/%s", txType, tc.name), func(t *testing.T) {
				tx := wellFormed(txType)
				tx.TokenType = tc.tokenType
				tx.TokenID = tc.tokenID
				tx.Value = tc.value
				err := checkType(tx)
				if tc.ok {
					assert.NoError(t, err)
				} else {
					require.Error(t, err)
					assert.Equal(t, TypeInconsistent, KindOf(err))
				}
			})
		}
	}
}

// A second configuration in the same process must compare against its own
// sentinel, not a package global.
func TestTypeConsistencyConfiguredSentinel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Zero = word(0xff)
	v := New(cfg, testBlockStore(), &fakeProofVerifier{}, zerolog.Nop())

	tx := wellFormed(rollup.Deposit)
	// Under the shifted sentinel the empty slots now read as populated.
	err := v.checkTypeConsistency(tx)
	require.Error(t, err)
	assert.Equal(t, TypeInconsistent, KindOf(err))
}
