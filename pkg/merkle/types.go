package merkle

import (
	"fmt"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
)

// Tree is a complete binary merkle tree stored as a flat array of 2n-1 values.
// Index 0 is the root and the n leaves occupy the last n slots in reverse
// input order, so input leaf i lives at Size()-1-i.
//
// A Tree is immutable once built and safe to share between goroutines.
type Tree struct {
	nodes     []hashing.HashValue
	leafCount int
}

// Side is the position a proof sibling occupies relative to the running hash.
type Side int

const (
	// SideLeft means the sibling is the left child: parent = H(sibling, current).
	SideLeft Side = iota
	// SideRight means the sibling is the right child: parent = H(current, sibling).
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

func (s Side) MarshalText() ([]byte, error) {
	if s != SideLeft && s != SideRight {
		return nil, fmt.Errorf("invalid proof side %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*s = SideLeft
	case "right":
		*s = SideRight
	default:
		return fmt.Errorf("invalid proof side %q", string(text))
	}
	return nil
}

// ProofStep is one sibling on the path from a leaf to the root.
type ProofStep struct {
	Hash hashing.HashValue `json:"hash"`
	Side Side              `json:"side"`
}

// Proof represents a proof that a leaf is included in the tree.
type Proof struct {
	// LeafIndex is the array position of the leaf in the tree
	LeafIndex int `json:"leafIndex"`

	// Leaf is the value stored at LeafIndex
	Leaf hashing.HashValue `json:"leaf"`

	// Steps contains the siblings from leaf to root
	// steps[0] is the sibling of the leaf, steps[len-1] is a child of the root
	Steps []ProofStep `json:"steps"`
}

// Siblings returns the sibling hashes in leaf-to-root order.
func (p *Proof) Siblings() []hashing.HashValue {
	out := make([]hashing.HashValue, len(p.Steps))
	for i, step := range p.Steps {
		out[i] = step.Hash
	}
	return out
}

// Hex returns the sibling hashes as lowercase hex in leaf-to-root order.
func (p *Proof) Hex() []string {
	return hashing.HexValues(p.Siblings())
}
