package forkchoice

import (
	"context"

	"github.com/eth2-clients/lmd-ghost/shared/params"
)

// Engine is the fork-choice engine: it owns the Attestation Index and Child
// Index, and answers find_head queries against a Reader it does not own.
//
// Engine exposes three mutating operations -- AddBlock, AddAttestation, and
// FindHead (which only reads, but may memoize in a future revision) -- that
// callers must externally serialize. The engine performs no locking of its
// own beyond what AttestationIndex and ChildIndex already do for their
// individual maps; there is no cross-index lock because find_head never
// needs AddBlock and AddAttestation to appear atomic with respect to each
// other, only internally consistent.
type Engine struct {
	reader       Reader
	cfg          *params.Config
	attestations *AttestationIndex
	children     *ChildIndex
	maxDepth     int
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithMaxDepth caps how many steps find_head's descent may take before it
// fails with a GraphTooDeep error, guarding against a runaway walk over an
// unexpectedly deep graph. Zero (the default) means unlimited.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) { e.maxDepth = depth }
}

// New constructs an Engine backed by reader, using cfg for epoch and weight
// arithmetic.
func New(reader Reader, cfg *params.Config, opts ...Option) *Engine {
	e := &Engine{
		reader:       reader,
		cfg:          cfg,
		attestations: NewAttestationIndex(),
		children:     NewChildIndex(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddBlock links block into the Child Index under blockRoot.
func (e *Engine) AddBlock(block *Block, blockRoot BlockRoot) {
	e.children.AddBlock(block, blockRoot)
}

// AddAttestation records validatorIndex's vote for targetRoot, monotone by
// the target block's slot.
func (e *Engine) AddAttestation(ctx context.Context, validatorIndex ValidatorIndex, targetRoot BlockRoot) error {
	return e.attestations.AddAttestation(ctx, e.reader, validatorIndex, targetRoot)
}

// Leaves returns the current chain tips known to the Child Index.
func (e *Engine) Leaves() []BlockRoot {
	return e.children.Leaves()
}

// FindHead executes LMD-GHOST from justifiedRoot: it tallies every active
// validator's latest vote against the state at justifiedRoot, then
// repeatedly descends to the child whose subtree holds the greatest vote
// weight, stopping either at a block with no known children or at the first
// level where no child carries any weight at all -- a block with zero
// descendant votes never displaces its parent as head.
//
// The entire call fails, with no partial effect on the engine's indices, if
// any block or state it needs to resolve is missing.
func (e *Engine) FindHead(ctx context.Context, justifiedRoot BlockRoot) (BlockRoot, error) {
	justifiedBlock, err := e.reader.Block(ctx, justifiedRoot)
	if err != nil {
		return BlockRoot{}, err
	}

	votes, err := LatestVotes(ctx, e.reader, e.attestations, justifiedBlock.StateRoot, justifiedBlock.Slot, e.cfg)
	if err != nil {
		return BlockRoot{}, err
	}

	head := justifiedRoot
	for depth := 0; ; depth++ {
		if e.maxDepth > 0 && depth >= e.maxDepth {
			return BlockRoot{}, GraphTooDeep()
		}

		children := e.children.Children(head)
		if len(children) == 0 {
			return head, nil
		}

		best, bestScore, found, err := e.bestChild(ctx, children, votes)
		if err != nil {
			return BlockRoot{}, err
		}
		if !found {
			return head, nil
		}
		log.WithField("head", best.String()).WithField("score", bestScore).Debug("Descended to best child")
		head = best
	}
}

// bestChild scores every candidate against a running maximum that starts at
// zero for every level -- matching the Rust original's head_vote_count reset
// per level -- and returns the highest-scoring child along with whether any
// candidate strictly exceeded zero. A child only replaces the running best
// on a strictly greater score, or on an equal score once a best has already
// been found, breaking ties in favor of the lexicographically greatest root.
// found is false when every candidate scored zero, signaling the caller
// should stop descending rather than pick an arbitrary zero-score child.
func (e *Engine) bestChild(ctx context.Context, children []BlockRoot, votes map[BlockRoot]Weight) (BlockRoot, Weight, bool, error) {
	var best BlockRoot
	var bestScore Weight
	found := false

	for _, child := range children {
		score, err := e.childScore(ctx, child, votes)
		if err != nil {
			return BlockRoot{}, 0, false, err
		}
		if score > bestScore || (found && score == bestScore && greater(child, best)) {
			best = child
			bestScore = score
			found = true
		}
	}
	return best, bestScore, found, nil
}

// childScore sums the weight of every latest vote whose target resolves to
// child at child's own slot, i.e. child lies on the target's ancestor chain.
func (e *Engine) childScore(ctx context.Context, child BlockRoot, votes map[BlockRoot]Weight) (Weight, error) {
	childBlock, err := e.reader.Block(ctx, child)
	if err != nil {
		return 0, err
	}

	var score Weight
	for target, weight := range votes {
		ancestor, _, err := e.reader.AncestorAtSlot(ctx, target, childBlock.Slot)
		if err != nil {
			return 0, err
		}
		if ancestor == child {
			score += weight
		}
	}
	return score, nil
}

func greater(a, b BlockRoot) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}
