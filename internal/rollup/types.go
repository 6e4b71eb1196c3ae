// types.go - Core value types for rollup transactions.
//
// A Transaction is an immutable record produced off-chain by a proving client.
// All scalar fields are 32-byte big-endian values; unused slots hold the zero value.

package rollup

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// TransactionType identifies which circuit produced a transaction.
type TransactionType uint8

const (
	Deposit        TransactionType = 0
	SingleTransfer TransactionType = 1
	DoubleTransfer TransactionType = 2
	Withdraw       TransactionType = 3
)

// String returns the canonical name of the transaction type.
func (t TransactionType) String() string {
	switch t {
	case Deposit:
		return "DEPOSIT"
	case SingleTransfer:
		return "SINGLE_TRANSFER"
	case DoubleTransfer:
		return "DOUBLE_TRANSFER"
	case Withdraw:
		return "WITHDRAW"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// Known reports whether t is one of the four circuit-backed types.
func (t TransactionType) Known() bool {
	return t <= Withdraw
}

// TokenType identifies the token standard a deposit or withdrawal moves.
type TokenType uint8

const (
	ERC20   TokenType = 0 // fungible
	ERC721  TokenType = 1
	ERC1155 TokenType = 2
)

// Fungible reports whether the token standard carries no per-token identity.
func (t TokenType) Fungible() bool {
	return t == ERC20
}

// Bytes32 is a 32-byte big-endian scalar: commitments, nullifiers, state roots,
// addresses and values are all carried in this representation.
type Bytes32 [32]byte

// IsZero reports whether every byte is zero.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// Big returns the scalar as a big integer.
func (b Bytes32) Big() *big.Int {
	return new(big.Int).SetBytes(b[:])
}

// Hex returns the 0x-prefixed, fixed-width hex encoding.
func (b Bytes32) Hex() string {
	return "0x" + hex.EncodeToString(b[:])
}

// Truncated31 drops the most significant byte and returns the remaining 31 bytes.
// Field elements larger than the proving field are carried in this form inside
// public-input vectors; the circuit hashed the truncated representation, so the
// width here is load-bearing.
func (b Bytes32) Truncated31() []byte {
	out := make([]byte, 31)
	copy(out, b[1:])
	return out
}

// MarshalText implements encoding.TextMarshaler (hex, for JSON surfaces).
func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes32) UnmarshalText(text []byte) error {
	v, err := HexToBytes32(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// HexToBytes32 parses a 0x-prefixed or bare hex string of at most 64 digits,
// left-padding short values.
func HexToBytes32(s string) (Bytes32, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Bytes32{}, fmt.Errorf("invalid hex scalar: %w", err)
	}
	if len(raw) > 32 {
		return Bytes32{}, fmt.Errorf("hex scalar too long: %d bytes", len(raw))
	}
	var b Bytes32
	copy(b[32-len(raw):], raw)
	return b, nil
}

// BigToBytes32 converts a big integer to its 32-byte big-endian form.
// Values wider than 256 bits keep their low 256 bits.
func BigToBytes32(v *big.Int) Bytes32 {
	var b Bytes32
	raw := v.Bytes()
	if len(raw) > 32 {
		raw = raw[len(raw)-32:]
	}
	copy(b[32-len(raw):], raw)
	return b
}

// Uint64ToBytes32 converts a small scalar to its 32-byte form.
func Uint64ToBytes32(v uint64) Bytes32 {
	return BigToBytes32(new(big.Int).SetUint64(v))
}

// Transaction is the unit under validation. Producers fill exactly the fields the
// declared type's circuit populates; everything else stays zero. TransactionHash
// binds all other fields together and is recomputed during admission.
type Transaction struct {
	TransactionType           TransactionType `json:"transactionType"`
	Fee                       uint64          `json:"fee"`
	TokenType                 TokenType       `json:"tokenType"`
	TokenID                   Bytes32         `json:"tokenId"`
	Value                     Bytes32         `json:"value"`
	ERCAddress                Bytes32         `json:"ercAddress"`
	RecipientAddress          Bytes32         `json:"recipientAddress"`
	PublicInputHash           Bytes32         `json:"publicInputHash"`
	Commitments               []Bytes32       `json:"commitments"`       // exactly 2 slots
	Nullifiers                []Bytes32       `json:"nullifiers"`        // exactly 2 slots
	CompressedSecrets         []Bytes32       `json:"compressedSecrets"` // exactly 8 slots
	HistoricRootBlockNumberL2 [2]uint64       `json:"historicRootBlockNumberL2"`
	Proof                     []byte          `json:"proof"`
	TransactionHash           Bytes32         `json:"transactionHash"`
}

// ProofIsZero reports whether the proof is absent or all-zero. An all-zero proof
// never verifies and is rejected structurally before any verifier round trip.
func (tx *Transaction) ProofIsZero() bool {
	for _, b := range tx.Proof {
		if b != 0 {
			return false
		}
	}
	return true
}

// Block is the read-only slice of an L2 block this package consumes: the logical
// block number and the state root committed there. Block production and storage
// are owned elsewhere.
type Block struct {
	BlockNumberL2 uint64  `json:"blockNumberL2"`
	Root          Bytes32 `json:"root"`
}
