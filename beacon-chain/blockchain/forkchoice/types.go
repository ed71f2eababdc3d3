// Package forkchoice implements the LMD-GHOST fork-choice rule: given a
// directed acyclic graph of beacon blocks descending from a justified root
// and a stream of validator attestations, it selects the canonical head
// block.
//
// Block and state persistence, network sync, signature validation, and
// justification/finalization all live outside this package; it only
// consumes them through the Reader capability set defined here.
package forkchoice

import "fmt"

// BlockRoot identifies a beacon block.
type BlockRoot [32]byte

// String renders a short hex prefix, useful in logs and test failures.
func (r BlockRoot) String() string {
	return fmt.Sprintf("0x%x", [32]byte(r)[:8])
}

// Slot is a beacon-chain slot number.
type Slot uint64

// ValidatorIndex is a validator's index within the active registry.
type ValidatorIndex uint64

// Weight is a unit of fork-choice voting power, derived from a validator's
// effective balance (see shared/params.Config.Weight).
type Weight uint64

// Block is the subset of a beacon block's fields fork choice needs.
type Block struct {
	ParentRoot BlockRoot
	StateRoot  [32]byte
	Slot       Slot
}

// Validator is the subset of validator-registry fields fork choice needs to
// determine activity and voting weight.
type Validator struct {
	EffectiveBalance uint64
	ActivationEpoch  uint64
	ExitEpoch        uint64
}

// IsActive reports whether the validator is active during the given epoch.
func (v *Validator) IsActive(epoch uint64) bool {
	return v.ActivationEpoch <= epoch && epoch < v.ExitEpoch
}

// State is the subset of a beacon state fork choice needs: the validator
// registry and each validator's current balance.
type State struct {
	Validators []*Validator
}
