package forkchoice

import (
	"context"

	"github.com/eth2-clients/lmd-ghost/shared/params"
)

// LatestVotes derives, from a state snapshot and the attestation index, the
// weight every validator's latest vote contributes to its target block.
// Validators inactive in the epoch containing slot, or whose effective
// balance rounds down to zero weight, don't contribute.
func LatestVotes(ctx context.Context, reader Reader, attestations *AttestationIndex, stateRoot [32]byte, slot Slot, cfg *params.Config) (map[BlockRoot]Weight, error) {
	state, err := reader.State(ctx, stateRoot)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, MissingState(stateRoot)
	}

	epoch := cfg.EpochOfSlot(uint64(slot))
	votes := make(map[BlockRoot]Weight)

	for i, validator := range state.Validators {
		if !validator.IsActive(epoch) {
			continue
		}
		weight := Weight(cfg.Weight(validator.EffectiveBalance))
		if weight == 0 {
			continue
		}
		target, voted := attestations.LatestTarget(ValidatorIndex(i))
		if !voted {
			continue
		}
		votes[target] += weight
	}
	return votes, nil
}
