// errors.go - Structured validation failures.
//
// Every rejection carries a Kind so callers can tell a bad transaction (reject and
// drop) from an operational fault (retry later). Nothing in this package recovers
// from a failure; the first one observed is surfaced to the caller.

package validator

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind uint8

const (
	// HashMismatch: the recomputed transaction hash differs from the stored one.
	HashMismatch Kind = iota + 1
	// TypeInconsistent: field population violates the declared type's template.
	TypeInconsistent
	// UnknownTransactionType: type code outside the four known shapes.
	UnknownTransactionType
	// HistoricRootNotFound: a referenced historic block does not exist.
	HistoricRootNotFound
	// ProofInvalid: the verifier ran and reported the proof does not verify.
	ProofInvalid
	// VerifierUnavailable: the remote verifier, chain-state reader or block store
	// could not be reached. An operational fault, not a bad transaction.
	VerifierUnavailable
)

// String returns the canonical name of the failure kind.
func (k Kind) String() string {
	switch k {
	case HashMismatch:
		return "HASH_MISMATCH"
	case TypeInconsistent:
		return "TYPE_INCONSISTENT"
	case UnknownTransactionType:
		return "UNKNOWN_TRANSACTION_TYPE"
	case HistoricRootNotFound:
		return "HISTORIC_ROOT_NOT_FOUND"
	case ProofInvalid:
		return "PROOF_INVALID"
	case VerifierUnavailable:
		return "VERIFIER_UNAVAILABLE"
	default:
		return fmt.Sprintf("KIND(%d)", uint8(k))
	}
}

// Retryable reports whether the failure signals an operational fault rather than
// a verdict on the transaction itself.
func (k Kind) Retryable() bool {
	return k == VerifierUnavailable
}

// Error is a validation failure with a kind and a human-readable message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // underlying cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an Error with a formatted message.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around an underlying cause.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the failure kind from err, or 0 if err is not a validation Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
