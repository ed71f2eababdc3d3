package forkchoice

import (
	"context"
	"sync"
)

// AttestationIndex maps each validator to its latest attested block root.
// Updates are monotone in the target block's slot: once a validator's
// latest target is at slot s, updates at a slot < s are ignored, updates at
// a slot > s replace it, and updates at slot == s retain the existing
// entry.
//
// The index never partially updates: a failed AddAttestation leaves the
// prior entry, if any, untouched.
type AttestationIndex struct {
	mu     sync.RWMutex
	latest map[ValidatorIndex]BlockRoot
}

// NewAttestationIndex returns an empty index.
func NewAttestationIndex() *AttestationIndex {
	return &AttestationIndex{latest: make(map[ValidatorIndex]BlockRoot)}
}

// LatestTarget returns the validator's current latest target and whether it
// has voted at all.
func (a *AttestationIndex) LatestTarget(validatorIndex ValidatorIndex) (BlockRoot, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	root, ok := a.latest[validatorIndex]
	return root, ok
}

// AddAttestation records validatorIndex's vote for targetRoot, applying the
// monotone-by-slot update rule from the AttestationIndex doc. The first vote for a
// validator is accepted unconditionally, including a vote for the
// genesis/justified root itself.
func (a *AttestationIndex) AddAttestation(ctx context.Context, reader Reader, validatorIndex ValidatorIndex, targetRoot BlockRoot) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	prior, ok := a.latest[validatorIndex]
	if !ok {
		a.latest[validatorIndex] = targetRoot
		return nil
	}
	if prior == targetRoot {
		return nil
	}

	newBlock, err := reader.Block(ctx, targetRoot)
	if err != nil {
		return err
	}
	priorBlock, err := reader.Block(ctx, prior)
	if err != nil {
		return err
	}

	if newBlock.Slot > priorBlock.Slot {
		a.latest[validatorIndex] = targetRoot
	}
	// new.slot <= prior.slot: ties and late messages retain the existing
	// entry.
	return nil
}
