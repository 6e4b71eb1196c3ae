// keys.go - Verification key material.
//
// Keys are registered per transaction type under a contract name. The memory
// reader backs tests and single-process runs; the file reader backs deployments
// that ship exported keys on disk. Marshalling uses gnark's own serialization.

package verifier

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/consensys/gnark/backend/groth16"

	"admission/internal/rollup"
)

// MarshalVerificationKey serializes a Groth16 verifying key.
func MarshalVerificationKey(vk groth16.VerifyingKey) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := vk.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serializing verification key: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveVerificationKey writes a serialized verifying key to path.
func SaveVerificationKey(path string, vk groth16.VerifyingKey) error {
	raw, err := MarshalVerificationKey(vk)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// MemoryChainState is an in-memory ChainStateReader.
type MemoryChainState struct {
	mu   sync.RWMutex
	keys map[string][]byte
}

// NewMemoryChainState creates an empty registry.
func NewMemoryChainState() *MemoryChainState {
	return &MemoryChainState{keys: make(map[string][]byte)}
}

// Register records the verification key for txType under contract.
func (m *MemoryChainState) Register(contract string, txType rollup.TransactionType, vk []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[keyName(contract, txType)] = vk
}

// GetVerificationKey implements ChainStateReader.
func (m *MemoryChainState) GetVerificationKey(_ context.Context, contract string, txType rollup.TransactionType) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vk, ok := m.keys[keyName(contract, txType)]
	if !ok {
		return nil, fmt.Errorf("no verification key registered for %s under %s", txType, contract)
	}
	return vk, nil
}

// FileChainState reads verification keys exported to a directory, one file per
// contract and transaction type.
type FileChainState struct {
	dir string
}

// NewFileChainState creates a reader over dir.
func NewFileChainState(dir string) *FileChainState {
	return &FileChainState{dir: dir}
}

// GetVerificationKey implements ChainStateReader.
func (f *FileChainState) GetVerificationKey(_ context.Context, contract string, txType rollup.TransactionType) ([]byte, error) {
	path := filepath.Join(f.dir, keyName(contract, txType)+".vk")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading verification key %s: %w", path, err)
	}
	return raw, nil
}

// keyName is the registry key for one contract/type pair.
func keyName(contract string, txType rollup.TransactionType) string {
	return fmt.Sprintf("%s_%d", contract, uint8(txType))
}
