package hashing

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/util"
)

// StandardLeafHash computes keccak256(keccak256(abi.encode(values))).
//
// Hashing the encoding twice keeps a 64 byte leaf encoding from ever colliding
// with the keccak256(left || right) preimage of an internal node.
func StandardLeafHash(types []string, values ...interface{}) (HashValue, error) {
	encoded, err := util.EncodeValues(types, values...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode leaf")
	}
	return HashValue(crypto.Keccak256(crypto.Keccak256(encoded))), nil
}

// StandardNodeHash computes keccak256(left || right). The children are hashed
// in the order given and are not sorted, so proofs must record sibling sides.
func StandardNodeHash(left, right HashValue) HashValue {
	return HashValue(crypto.Keccak256(util.ConcatBytes(left, right)))
}

// SortedNodeHash computes keccak256(min || max), ordering the children as
// big-endian unsigned integers. Trees built with it are not compatible with
// StandardNodeHash trees.
func SortedNodeHash(left, right HashValue) HashValue {
	if util.CompareBytes(left, right) > 0 {
		left, right = right, left
	}
	return StandardNodeHash(left, right)
}

// StandardLeafHasher binds the standard leaf hash to a fixed list of solidity types.
type StandardLeafHasher struct {
	types []string
}

// NewStandardLeafHasher validates the solidity types up front so that HashLeaf
// only fails on bad values.
func NewStandardLeafHasher(types ...string) (*StandardLeafHasher, error) {
	if len(types) == 0 {
		return nil, errors.New("leaf hasher requires at least one abi type")
	}
	if _, err := util.NewArguments(types); err != nil {
		return nil, err
	}
	return &StandardLeafHasher{types: append([]string(nil), types...)}, nil
}

func (s *StandardLeafHasher) Types() []string {
	return append([]string(nil), s.types...)
}

func (s *StandardLeafHasher) HashLeaf(values ...interface{}) (HashValue, error) {
	return StandardLeafHash(s.types, values...)
}

// HashLeafStrings parses textual values against the bound types before hashing.
func (s *StandardLeafHasher) HashLeafStrings(raw ...string) (HashValue, error) {
	values, err := util.ParseValues(s.types, raw)
	if err != nil {
		return nil, err
	}
	return s.HashLeaf(values...)
}

type sortedNodeHasher struct{}

func (sortedNodeHasher) HashNode(left, right HashValue) HashValue {
	return SortedNodeHash(left, right)
}

func (sortedNodeHasher) OrderIndependent() bool {
	return true
}
