package forkchoice

import "fmt"

// Kind tags the category of a fork-choice error so callers can branch on it
// without string-matching a message, while the message itself stays
// human-readable the way github.com/pkg/errors-wrapped errors do throughout
// this codebase.
type Kind int

const (
	// KindMissingBlock means a referenced block is not in storage.
	KindMissingBlock Kind = iota
	// KindMissingState means a referenced state is not in storage.
	KindMissingState
	// KindInvalidBlock means storage returned bytes that failed to decode
	// into a block.
	KindInvalidBlock
	// KindInvalidState means storage returned bytes that failed to decode
	// into a state.
	KindInvalidState
	// KindStorageError means the underlying store reported an I/O failure.
	KindStorageError
	// KindGraphTooDeep means a find_head descent exceeded a configured
	// depth limit.
	KindGraphTooDeep
)

// Error is the tagged error type returned by this package's exported
// functions. It never leaks storage-internal types; a Reader implementation
// converts its own errors to one of these kinds at the boundary.
type Error struct {
	Kind Kind
	Root BlockRoot
	msg  string
}

func (e *Error) Error() string {
	if e.msg != "" {
		return e.msg
	}
	switch e.Kind {
	case KindMissingBlock:
		return fmt.Sprintf("missing block: %s", e.Root)
	case KindMissingState:
		return fmt.Sprintf("missing state: %s", e.Root)
	case KindInvalidBlock:
		return fmt.Sprintf("invalid block: %s", e.Root)
	case KindInvalidState:
		return fmt.Sprintf("invalid state: %s", e.Root)
	case KindGraphTooDeep:
		return "graph too deep"
	default:
		return "storage error"
	}
}

// MissingBlock builds a KindMissingBlock error for root.
func MissingBlock(root BlockRoot) error {
	return &Error{Kind: KindMissingBlock, Root: root}
}

// MissingState builds a KindMissingState error keyed by a state root. State
// roots aren't BlockRoots, but both are [32]byte, so we reuse the type to
// avoid a parallel StateRoot type for a single field.
func MissingState(stateRoot [32]byte) error {
	return &Error{Kind: KindMissingState, Root: BlockRoot(stateRoot)}
}

// InvalidBlock builds a KindInvalidBlock error for root.
func InvalidBlock(root BlockRoot) error {
	return &Error{Kind: KindInvalidBlock, Root: root}
}

// InvalidState builds a KindInvalidState error keyed by a state root.
func InvalidState(stateRoot [32]byte) error {
	return &Error{Kind: KindInvalidState, Root: BlockRoot(stateRoot)}
}

// StorageError wraps an opaque underlying storage failure message.
func StorageError(message string) error {
	return &Error{Kind: KindStorageError, msg: message}
}

// GraphTooDeep reports that a descent exceeded its configured depth limit.
func GraphTooDeep() error {
	return &Error{Kind: KindGraphTooDeep}
}

// Is reports whether err carries the given Kind, unwrapping through
// github.com/pkg/errors' Cause chain so call sites that wrap with
// errors.Wrap can still classify the root cause.
func Is(err error, kind Kind) bool {
	type causer interface{ Cause() error }
	for err != nil {
		if fe, ok := err.(*Error); ok {
			return fe.Kind == kind
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}
