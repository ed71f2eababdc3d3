package forkchoicedb

import (
	"github.com/eth2-clients/lmd-ghost/beacon-chain/blockchain/forkchoice"
	"github.com/eth2-clients/lmd-ghost/shared/hashutil"
)

// ComputeBlockRoot derives the BlockRoot a caller should key block under,
// for callers that have a block's fields but haven't already computed its
// root through their own production hashing path. Production callers with a real beacon block already
// have its SSZ hash tree root and should use that instead.
func ComputeBlockRoot(block *forkchoice.Block) forkchoice.BlockRoot {
	return forkchoice.BlockRoot(hashutil.HashBlockFields(
		[32]byte(block.ParentRoot),
		block.StateRoot,
		uint64(block.Slot),
	))
}
