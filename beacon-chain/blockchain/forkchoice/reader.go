package forkchoice

import "context"

// Reader is the read-only capability set fork choice needs from block and
// state storage. Storage implements the walk efficiently; fork choice
// treats it as an oracle and never mutates through it.
//
// A reference in-memory implementation lives in
// beacon-chain/db/forkchoicedb for tests; a production client backs this
// with its own block/state database.
type Reader interface {
	// Block returns the block stored under root, or a MissingBlock error
	// if it isn't known.
	Block(ctx context.Context, root BlockRoot) (*Block, error)

	// State returns the state stored under stateRoot, or a MissingState
	// error if it isn't known.
	State(ctx context.Context, stateRoot [32]byte) (*State, error)

	// AncestorAtSlot returns the ancestor of root with the greatest slot
	// less than or equal to slot. If root's own slot is already <= slot,
	// it returns root unchanged. Returns a MissingBlock error if the
	// ancestor chain is incomplete before such a block is found.
	AncestorAtSlot(ctx context.Context, root BlockRoot, slot Slot) (BlockRoot, Slot, error)
}
