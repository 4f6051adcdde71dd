package merkle

import (
	"github.com/pkg/errors"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
)

// Prove creates an inclusion proof for the leaf at array index leafIndex.
// The proof holds the sibling of every node on the path up to, but not
// including, the root, each tagged with the side it sits on.
func (t *Tree) Prove(leafIndex int) (*Proof, error) {
	size := len(t.nodes)
	if !IsTreeNode(leafIndex, size) {
		return nil, errors.Wrapf(ErrIndexOutOfBounds, "index %d, tree size %d", leafIndex, size)
	}
	if !IsLeafNode(leafIndex, size) {
		return nil, errors.Wrapf(ErrNotALeaf, "index %d, first leaf is %d", leafIndex, size-t.leafCount)
	}

	steps := make([]ProofStep, 0)
	index := leafIndex
	for index > 0 {
		if sibling, ok := SiblingIndex(index); ok {
			side := SideRight
			if sibling < index {
				side = SideLeft
			}
			steps = append(steps, ProofStep{Hash: t.nodes[sibling].Clone(), Side: side})
		}
		index, _ = ParentIndex(index)
	}

	return &Proof{
		LeafIndex: leafIndex,
		Leaf:      t.nodes[leafIndex].Clone(),
		Steps:     steps,
	}, nil
}

// ProveLeaf creates a proof for the leaf at position inputIndex of the slice
// the tree was built from.
func (t *Tree) ProveLeaf(inputIndex int) (*Proof, error) {
	index, err := t.LeafTreeIndex(inputIndex)
	if err != nil {
		return nil, err
	}
	return t.Prove(index)
}

// ComputeRoot folds leaf with the proof steps and returns the resulting root.
func ComputeRoot(leaf hashing.HashValue, steps []ProofStep, h hashing.NodeHasher) hashing.HashValue {
	current := leaf
	for _, step := range steps {
		if step.Side == SideLeft {
			current = h.HashNode(step.Hash, current)
		} else {
			current = h.HashNode(current, step.Hash)
		}
	}
	return current
}

// VerifyProof verifies that a leaf is included in the merkle tree with the given root.
// It recomputes the root hash using the proof and checks if it matches the expected root.
// An empty leaf is valid. A nil leaf means the proof carries no leaf and never verifies.
func VerifyProof(proof *Proof, root hashing.HashValue, h hashing.NodeHasher) bool {
	if proof == nil || h == nil || proof.Leaf == nil {
		return false
	}
	return ComputeRoot(proof.Leaf, proof.Steps, h).Equal(root)
}

// VerifySiblings verifies a bare sibling list without sides. It only holds for
// order independent node hashers such as hashing.Sorted.
func VerifySiblings(leaf hashing.HashValue, siblings []hashing.HashValue, root hashing.HashValue, h hashing.NodeHasher) (bool, error) {
	if !hashing.IsOrderIndependent(h) {
		return false, errors.New("sibling-only proofs require an order independent node hasher")
	}
	steps := make([]ProofStep, len(siblings))
	for i, s := range siblings {
		steps[i] = ProofStep{Hash: s, Side: SideRight}
	}
	return ComputeRoot(leaf, steps, h).Equal(root), nil
}
