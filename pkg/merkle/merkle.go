package merkle

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
)

// minParallelChunk is the smallest run of nodes handed to a single worker.
const minParallelChunk = 256

// Build creates a merkle tree from already hashed leaves.
//
// Leaves are placed in reverse input order at the end of the array and every
// internal node is computed from its children, walking from the last internal
// index down to the root so children are always ready before their parent.
func Build(leaves []hashing.HashValue, h hashing.NodeHasher) (*Tree, error) {
	tree, err := newTree(leaves, h)
	if err != nil {
		return nil, err
	}

	for i := tree.internalCount() - 1; i >= 0; i-- {
		tree.hashNode(i, h)
	}

	return tree, nil
}

// BuildParallel produces the same tree as Build, hashing each depth of the
// tree with up to workers goroutines. Every internal node at depth d only
// depends on nodes at depth d+1, which are finished before d starts.
func BuildParallel(ctx context.Context, leaves []hashing.HashValue, h hashing.NodeHasher, workers int) (*Tree, error) {
	if workers <= 1 {
		return Build(leaves, h)
	}

	tree, err := newTree(leaves, h)
	if err != nil {
		return nil, err
	}

	internal := tree.internalCount()
	if internal == 0 {
		return tree, nil
	}

	for depth := depthOf(internal - 1); depth >= 0; depth-- {
		start := (1 << depth) - 1
		end := min((1<<(depth+1))-1, internal)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		chunk := max((end-start+workers-1)/workers, minParallelChunk)
		for lo := start; lo < end; lo += chunk {
			lo, hi := lo, min(lo+chunk, end)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				for i := lo; i < hi; i++ {
					tree.hashNode(i, h)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, errors.Wrapf(err, "failed to hash tree depth %d", depth)
		}
	}

	return tree, nil
}

// BuildFromHex decodes hex leaves and builds a tree from them.
func BuildFromHex(leaves []string, h hashing.NodeHasher) (*Tree, error) {
	values := make([]hashing.HashValue, len(leaves))
	for i, leaf := range leaves {
		v, err := hashing.HashValueFromHex(leaf)
		if err != nil {
			return nil, errors.Wrapf(err, "leaf %d", i)
		}
		values[i] = v
	}
	return Build(values, h)
}

func newTree(leaves []hashing.HashValue, h hashing.NodeHasher) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyTree
	}
	if h == nil {
		return nil, ErrNilNodeHasher
	}

	size := TreeSize(len(leaves))
	nodes := make([]hashing.HashValue, size)
	for i, leaf := range leaves {
		nodes[size-1-i] = leaf.Clone()
	}

	return &Tree{nodes: nodes, leafCount: len(leaves)}, nil
}

func (t *Tree) internalCount() int {
	return len(t.nodes) - t.leafCount
}

func (t *Tree) hashNode(i int, h hashing.NodeHasher) {
	t.nodes[i] = h.HashNode(t.nodes[LeftChildIndex(i)], t.nodes[RightChildIndex(i)])
}

// depthOf returns floor(log2(i+1)), the depth of array index i.
func depthOf(i int) int {
	depth := 0
	for n := i + 1; n > 1; n >>= 1 {
		depth++
	}
	return depth
}

// Root returns the root value, the published commitment.
func (t *Tree) Root() hashing.HashValue {
	return t.nodes[0].Clone()
}

// Size returns the length of the tree array, 2*LeafCount()-1.
func (t *Tree) Size() int {
	return len(t.nodes)
}

func (t *Tree) LeafCount() int {
	return t.leafCount
}

// Node returns the value at array index i.
func (t *Tree) Node(i int) (hashing.HashValue, error) {
	if !IsTreeNode(i, len(t.nodes)) {
		return nil, errors.Wrapf(ErrIndexOutOfBounds, "index %d, tree size %d", i, len(t.nodes))
	}
	return t.nodes[i].Clone(), nil
}

// Nodes returns a copy of the whole tree array.
func (t *Tree) Nodes() []hashing.HashValue {
	out := make([]hashing.HashValue, len(t.nodes))
	for i, n := range t.nodes {
		out[i] = n.Clone()
	}
	return out
}

// Hex returns the tree array as lowercase hex values.
func (t *Tree) Hex() []string {
	return hashing.HexValues(t.nodes)
}

// LeafTreeIndex maps the position of a leaf in the input order to its array index.
func (t *Tree) LeafTreeIndex(inputIndex int) (int, error) {
	if inputIndex < 0 || inputIndex >= t.leafCount {
		return 0, errors.Wrapf(ErrIndexOutOfBounds, "leaf %d, tree has %d leaves", inputIndex, t.leafCount)
	}
	return len(t.nodes) - 1 - inputIndex, nil
}
