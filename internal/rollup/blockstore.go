// blockstore.go - Read access to historic L2 blocks.
//
// The admission gate only ever reads blocks by logical number to confirm that a
// referenced historic state root exists. The store itself is owned by block
// production; MemoryBlockStore stands in for it in tests and single-node runs.

package rollup

import (
	"context"
	"sync"
)

// BlockStore resolves a logical L2 block number to the block committed there.
// A nil block with a nil error means the block does not exist; errors are
// reserved for transport or storage faults.
type BlockStore interface {
	LookupHistoricRoot(ctx context.Context, blockNumberL2 uint64) (*Block, error)
}

// MemoryBlockStore is an in-memory BlockStore keyed by block number.
type MemoryBlockStore struct {
	mu     sync.RWMutex
	blocks map[uint64]Block
}

// NewMemoryBlockStore creates an empty in-memory block store.
func NewMemoryBlockStore() *MemoryBlockStore {
	return &MemoryBlockStore{blocks: make(map[uint64]Block)}
}

// AddBlock records a block. Re-adding a block number overwrites the previous entry.
func (s *MemoryBlockStore) AddBlock(b Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[b.BlockNumberL2] = b
}

// LookupHistoricRoot implements BlockStore.
func (s *MemoryBlockStore) LookupHistoricRoot(_ context.Context, blockNumberL2 uint64) (*Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blocks[blockNumberL2]
	if !ok {
		return nil, nil
	}
	return &b, nil
}
