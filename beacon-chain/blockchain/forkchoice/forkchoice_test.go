package forkchoice

import (
	"context"
)

// mockReader is an in-memory Reader used across this package's test files,
// in the spirit of the mockFetcher/faultyFetcher fakes the wider codebase
// hand-rolls per package rather than pulling in a mocking library.
type mockReader struct {
	blocks map[BlockRoot]*Block
	states map[[32]byte]*State
}

func newMockReader() *mockReader {
	return &mockReader{
		blocks: make(map[BlockRoot]*Block),
		states: make(map[[32]byte]*State),
	}
}

func (m *mockReader) addBlock(root BlockRoot, block *Block) {
	m.blocks[root] = block
}

func (m *mockReader) addState(stateRoot [32]byte, state *State) {
	m.states[stateRoot] = state
}

func (m *mockReader) Block(_ context.Context, root BlockRoot) (*Block, error) {
	block, ok := m.blocks[root]
	if !ok {
		return nil, MissingBlock(root)
	}
	return block, nil
}

func (m *mockReader) State(_ context.Context, stateRoot [32]byte) (*State, error) {
	state, ok := m.states[stateRoot]
	if !ok {
		return nil, MissingState(stateRoot)
	}
	return state, nil
}

func (m *mockReader) AncestorAtSlot(ctx context.Context, root BlockRoot, slot Slot) (BlockRoot, Slot, error) {
	current := root
	for {
		block, err := m.Block(ctx, current)
		if err != nil {
			return BlockRoot{}, 0, err
		}
		if block.Slot <= slot {
			return current, block.Slot, nil
		}
		current = block.ParentRoot
	}
}
