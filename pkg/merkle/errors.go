package merkle

import "github.com/pkg/errors"

var (
	// ErrEmptyTree is returned when a tree is built from zero leaves.
	ErrEmptyTree = errors.New("cannot build merkle tree from empty leaf list")

	// ErrIndexOutOfBounds is returned for an index outside the tree array.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrNotALeaf is returned when a proof is requested for an internal node.
	ErrNotALeaf = errors.New("index is not a leaf")

	// ErrNilNodeHasher is returned when no node hasher is supplied.
	ErrNilNodeHasher = errors.New("node hasher is required")
)
