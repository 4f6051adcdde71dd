package hashing

import (
	"fmt"
	"sort"
	"strings"

	sha256 "github.com/minio/sha256-simd"
	merkletree "github.com/wealdtech/go-merkletree/v2"
	"github.com/wealdtech/go-merkletree/v2/blake2b"
	"golang.org/x/crypto/sha3"
)

// Names of the node hashing strategies understood by NodeHasherByName.
const (
	StrategyKeccak256       = "keccak256"
	StrategySortedKeccak256 = "sorted-keccak256"
	StrategySHA256          = "sha256"
	StrategySHA3_256        = "sha3-256"
	StrategyBlake2b         = "blake2b"
)

// Standard is the default node hasher: unsorted keccak256(left || right).
var Standard NodeHasher = NodeHashFunc(StandardNodeHash)

// Sorted is the order independent keccak256 node hasher.
var Sorted NodeHasher = sortedNodeHasher{}

var nodeHashers = map[string]NodeHasher{
	StrategyKeccak256:       Standard,
	StrategySortedKeccak256: Sorted,
	StrategySHA256: NodeHashFunc(func(left, right HashValue) HashValue {
		sum := sha256.Sum256(append(left.Clone(), right...))
		return HashValue(sum[:])
	}),
	StrategySHA3_256: NodeHashFunc(func(left, right HashValue) HashValue {
		sum := sha3.Sum256(append(left.Clone(), right...))
		return HashValue(sum[:])
	}),
	StrategyBlake2b: NewHashTypeNodeHasher(blake2b.New()),
}

// NodeHasherByName returns the registered strategy for name.
func NodeHasherByName(name string) (NodeHasher, error) {
	h, ok := nodeHashers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported hash strategy %q, supported: %s", name, strings.Join(NodeHasherNames(), ", "))
	}
	return h, nil
}

// NodeHasherNames lists the registered strategy names in sorted order.
func NodeHasherNames() []string {
	names := make([]string, 0, len(nodeHashers))
	for name := range nodeHashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HashTypeNodeHasher adapts a go-merkletree hash type so it can be used as a node hasher.
type HashTypeNodeHasher struct {
	hashType merkletree.HashType
}

func NewHashTypeNodeHasher(hashType merkletree.HashType) *HashTypeNodeHasher {
	return &HashTypeNodeHasher{hashType: hashType}
}

func (h *HashTypeNodeHasher) HashNode(left, right HashValue) HashValue {
	return HashValue(h.hashType.Hash(left, right))
}

// HashLength is the digest size of the wrapped hash type.
func (h *HashTypeNodeHasher) HashLength() int {
	return h.hashType.HashLength()
}
