// template.go - Structural templates, one per transaction type.
//
// Each circuit populates a fixed subset of the transaction fields; everything else
// must stay zero. A deviation means the transaction is corrupted or forged for a
// shape its proof was not generated for, so it is rejected before any proof work.
// The templates are declarative data so each shape is written down exactly once.

package validator

import (
	"fmt"

	"admission/internal/rollup"
)

// slotRule constrains a single fixed-size slot.
type slotRule uint8

const (
	anyValue slotRule = iota
	mustBeZero
	mustBeNonZero
)

// tokenRule constrains the tokenType/tokenId/value triple.
type tokenRule uint8

const (
	// tokenOpen: no constraint on the triple.
	tokenOpen tokenRule = iota
	// tokenIdentified: a non-fungible tokenType must carry a token identity,
	// either a nonzero tokenId or a nonzero value (deposits and withdrawals).
	tokenIdentified
	// tokenHidden: tokenId and value must both be zero; transfers hide amounts
	// inside commitments.
	tokenHidden
)

// template is the structural shape of one transaction type.
type template struct {
	recipient         slotRule
	commitments       [2]slotRule
	nullifiers        [2]slotRule
	secretsPopulated  bool // true: not all 8 zero; false: all 8 zero
	token             tokenRule
	historicRefsZero  bool // both historic block references must be the zero index
	liveHistoricRoots int  // leading entries of HistoricRootBlockNumberL2 that must resolve
}

// templates is the per-type dispatch table. publicInputHash, ercAddress, the slot
// counts and the non-zero proof are uniform across types and checked separately.
var templates = map[rollup.TransactionType]template{
	rollup.Deposit: {
		recipient:         mustBeZero,
		commitments:       [2]slotRule{mustBeNonZero, mustBeZero},
		nullifiers:        [2]slotRule{mustBeZero, mustBeZero},
		secretsPopulated:  false,
		token:             tokenIdentified,
		historicRefsZero:  true,
		liveHistoricRoots: 0,
	},
	rollup.SingleTransfer: {
		recipient:         mustBeZero,
		commitments:       [2]slotRule{mustBeNonZero, mustBeZero},
		nullifiers:        [2]slotRule{mustBeNonZero, mustBeZero},
		secretsPopulated:  true,
		token:             tokenHidden,
		liveHistoricRoots: 1,
	},
	rollup.DoubleTransfer: {
		recipient:         mustBeZero,
		commitments:       [2]slotRule{mustBeNonZero, mustBeNonZero},
		nullifiers:        [2]slotRule{mustBeNonZero, mustBeNonZero},
		secretsPopulated:  true,
		token:             tokenHidden,
		liveHistoricRoots: 2,
	},
	rollup.Withdraw: {
		recipient:         mustBeNonZero,
		commitments:       [2]slotRule{mustBeZero, mustBeZero},
		nullifiers:        [2]slotRule{mustBeNonZero, mustBeZero},
		secretsPopulated:  false,
		token:             tokenIdentified,
		liveHistoricRoots: 1,
	},
}

// checkTypeConsistency applies the declared type's template to tx.
func (v *Validator) checkTypeConsistency(tx *rollup.Transaction) error {
	tpl, ok := templates[tx.TransactionType]
	if !ok {
		return Errorf(UnknownTransactionType, "transaction type %d is not a known shape", uint8(tx.TransactionType))
	}
	fail := func(field string) error {
		return Errorf(TypeInconsistent, "transaction does not match the %s template: %s", tx.TransactionType, field)
	}

	// Uniform constraints.
	if tx.PublicInputHash == v.cfg.Zero {
		return fail("publicInputHash must not be zero")
	}
	if tx.ERCAddress == v.cfg.Zero {
		return fail("ercAddress must not be zero")
	}
	if len(tx.Commitments) != 2 {
		return fail("commitments must have exactly 2 slots")
	}
	if len(tx.Nullifiers) != 2 {
		return fail("nullifiers must have exactly 2 slots")
	}
	if len(tx.CompressedSecrets) != 8 {
		return fail("compressedSecrets must have exactly 8 slots")
	}
	if tx.ProofIsZero() {
		return fail("proof must not be all zero")
	}

	if err := v.checkSlot(tpl.recipient, tx.RecipientAddress, "recipientAddress", fail); err != nil {
		return err
	}
	for i, rule := range tpl.commitments {
		if err := v.checkSlot(rule, tx.Commitments[i], fmt.Sprintf("commitments[%d]", i), fail); err != nil {
			return err
		}
	}
	for i, rule := range tpl.nullifiers {
		if err := v.checkSlot(rule, tx.Nullifiers[i], fmt.Sprintf("nullifiers[%d]", i), fail); err != nil {
			return err
		}
	}

	populated := false
	for _, s := range tx.CompressedSecrets {
		if s != v.cfg.Zero {
			populated = true
			break
		}
	}
	if populated != tpl.secretsPopulated {
		if tpl.secretsPopulated {
			return fail("compressedSecrets must not be all zero")
		}
		return fail("compressedSecrets must be all zero")
	}

	switch tpl.token {
	case tokenIdentified:
		if !tx.TokenType.Fungible() && tx.TokenID == v.cfg.Zero && tx.Value == v.cfg.Zero {
			return fail("a non-fungible token needs a tokenId or a value")
		}
	case tokenHidden:
		if tx.TokenID != v.cfg.Zero {
			return fail("tokenId must be zero")
		}
		if tx.Value != v.cfg.Zero {
			return fail("value must be zero")
		}
	}

	if tpl.historicRefsZero {
		if tx.HistoricRootBlockNumberL2[0] != 0 || tx.HistoricRootBlockNumberL2[1] != 0 {
			return fail("historic root references must be the zero index")
		}
	}
	return nil
}

// checkSlot applies one slot rule. The fail callback carries the template context.
func (v *Validator) checkSlot(rule slotRule, value rollup.Bytes32, name string, fail func(string) error) error {
	switch rule {
	case mustBeZero:
		if value != v.cfg.Zero {
			return fail(name + " must be zero")
		}
	case mustBeNonZero:
		if value == v.cfg.Zero {
			return fail(name + " must not be zero")
		}
	}
	return nil
}
