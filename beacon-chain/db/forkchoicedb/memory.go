// Package forkchoicedb provides reference implementations of
// forkchoice.Reader. They are not part of the fork-choice engine's scope --
// the spec treats block/state storage as an external collaborator -- but
// the engine needs something to read from in tests and in a minimal
// runnable example.
//
// MemoryStore is a plain in-memory map; the engine's own test suite uses a
// separate mock Reader inside package forkchoice. Store (bolt.go) is an optional on-disk backend for callers
// who want persistence of blocks and states (never of the engine's own
// Attestation/Child indices, which remain non-durable per spec).
package forkchoicedb

import (
	"context"
	"sync"

	"github.com/eth2-clients/lmd-ghost/beacon-chain/blockchain/forkchoice"
)

// MemoryStore is a forkchoice.Reader backed by plain Go maps, guarded by a
// single RWMutex.
type MemoryStore struct {
	mu     sync.RWMutex
	blocks map[forkchoice.BlockRoot]*forkchoice.Block
	states map[[32]byte]*forkchoice.State
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blocks: make(map[forkchoice.BlockRoot]*forkchoice.Block),
		states: make(map[[32]byte]*forkchoice.State),
	}
}

// SaveBlock records block under root.
func (m *MemoryStore) SaveBlock(root forkchoice.BlockRoot, block *forkchoice.Block) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks[root] = block
}

// SaveState records state under stateRoot.
func (m *MemoryStore) SaveState(stateRoot [32]byte, state *forkchoice.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[stateRoot] = state
}

// Block implements forkchoice.Reader.
func (m *MemoryStore) Block(_ context.Context, root forkchoice.BlockRoot) (*forkchoice.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	block, ok := m.blocks[root]
	if !ok {
		return nil, forkchoice.MissingBlock(root)
	}
	return block, nil
}

// State implements forkchoice.Reader.
func (m *MemoryStore) State(_ context.Context, stateRoot [32]byte) (*forkchoice.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.states[stateRoot]
	if !ok {
		return nil, forkchoice.MissingState(stateRoot)
	}
	return state, nil
}

// AncestorAtSlot implements forkchoice.Reader by walking parent pointers
// until it finds a block whose own slot is <= slot.
func (m *MemoryStore) AncestorAtSlot(ctx context.Context, root forkchoice.BlockRoot, slot forkchoice.Slot) (forkchoice.BlockRoot, forkchoice.Slot, error) {
	current := root
	for {
		block, err := m.Block(ctx, current)
		if err != nil {
			return forkchoice.BlockRoot{}, 0, err
		}
		if block.Slot <= slot {
			return current, block.Slot, nil
		}
		current = block.ParentRoot
	}
}
