package pyxis

import "errors"

// Sentinel errors surfaced by lookups and resolution. Returned errors wrap
// these with contextual detail; match with errors.Is.
var (
	// ErrKeyNotFound indicates a missing path segment in the tree.
	ErrKeyNotFound = errors.New("no config found for key")

	// ErrIndexOutOfRange indicates a sequence index outside the valid range
	// after negative-index normalization.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrIllegalSlice indicates malformed bracket contents in a path.
	ErrIllegalSlice = errors.New("illegal slice")

	// ErrCompositeSubstitution indicates an attempt to concatenate a map or
	// sequence with other text inside a single placeholder leaf.
	ErrCompositeSubstitution = errors.New("can not substitute composite type")

	// ErrUnresolvedReference indicates a placeholder whose candidate paths
	// all failed to resolve and which carries no default.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrBadSubstitution indicates a malformed ${...} expression.
	ErrBadSubstitution = errors.New("bad substitution variable reference")

	// ErrUnsupportedFormat indicates that no registered reader or parser
	// matched a configuration source.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
