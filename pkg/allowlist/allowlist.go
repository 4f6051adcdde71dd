package allowlist

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/merkle"
)

// LeafTypes is the abi tuple every allow-list leaf is encoded as.
var LeafTypes = []string{"address", "uint256"}

var ErrNotListed = errors.New("address is not in the allow-list")

// Entry grants Amount to Address.
type Entry struct {
	Address common.Address
	Amount  *big.Int
}

// AccountProof is everything a claimant needs to prove their entry on-chain.
type AccountProof struct {
	Address   common.Address     `json:"address"`
	Amount    string             `json:"amount"`
	Leaf      hashing.HashValue  `json:"leaf"`
	LeafIndex int                `json:"leafIndex"`
	Proof     []string           `json:"proof"`
	Steps     []merkle.ProofStep `json:"steps"`
}

// AllowList commits to a set of (address, amount) entries with a single merkle root.
type AllowList struct {
	entries    []Entry
	nodeHasher hashing.NodeHasher
	tree       *merkle.Tree
	positions  map[common.Address]int
	logger     *zap.Logger
}

// LeafHash returns the standard double keccak leaf for an entry.
func LeafHash(address common.Address, amount *big.Int) (hashing.HashValue, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, errors.Errorf("invalid amount for %s", address.Hex())
	}
	return hashing.StandardLeafHash(LeafTypes, address, amount)
}

// New hashes the entries in order and builds the tree, using up to workers
// goroutines when workers > 1.
func New(ctx context.Context, entries []Entry, h hashing.NodeHasher, workers int, l *zap.Logger) (*AllowList, error) {
	if l == nil {
		l = zap.NewNop()
	}

	positions := make(map[common.Address]int, len(entries))
	leaves := make([]hashing.HashValue, len(entries))
	copied := make([]Entry, len(entries))
	for i, e := range entries {
		if _, dup := positions[e.Address]; dup {
			return nil, errors.Errorf("duplicate allow-list entry for %s", e.Address.Hex())
		}
		leaf, err := LeafHash(e.Address, e.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		positions[e.Address] = i
		leaves[i] = leaf
		copied[i] = Entry{Address: e.Address, Amount: new(big.Int).Set(e.Amount)}
	}

	tree, err := merkle.BuildParallel(ctx, leaves, h, workers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build allow-list tree")
	}

	l.Sugar().Infow("Built allow-list tree",
		"entries", len(entries),
		"treeSize", tree.Size(),
		"root", tree.Root().Hex(),
	)

	return &AllowList{
		entries:    copied,
		nodeHasher: h,
		tree:       tree,
		positions:  positions,
		logger:     l,
	}, nil
}

func (a *AllowList) Root() hashing.HashValue {
	return a.tree.Root()
}

func (a *AllowList) Tree() *merkle.Tree {
	return a.tree
}

func (a *AllowList) Len() int {
	return len(a.entries)
}

// Entries returns a copy of the entries in input order.
func (a *AllowList) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	for i, e := range a.entries {
		out[i] = Entry{Address: e.Address, Amount: new(big.Int).Set(e.Amount)}
	}
	return out
}

// Proof returns the inclusion proof for address.
func (a *AllowList) Proof(address common.Address) (*AccountProof, error) {
	position, ok := a.positions[address]
	if !ok {
		return nil, errors.Wrap(ErrNotListed, address.Hex())
	}

	proof, err := a.tree.ProveLeaf(position)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Generated allow-list proof",
		zap.String("address", address.Hex()),
		zap.Int("leafIndex", proof.LeafIndex),
		zap.Int("proofLength", len(proof.Steps)),
	)

	return &AccountProof{
		Address:   address,
		Amount:    a.entries[position].Amount.String(),
		Leaf:      proof.Leaf,
		LeafIndex: proof.LeafIndex,
		Proof:     proof.Hex(),
		Steps:     proof.Steps,
	}, nil
}

// Verify recomputes the leaf for (address, amount) and checks it against root.
func Verify(root hashing.HashValue, address common.Address, amount *big.Int, steps []merkle.ProofStep, h hashing.NodeHasher) (bool, error) {
	leaf, err := LeafHash(address, amount)
	if err != nil {
		return false, err
	}
	return merkle.VerifyProof(&merkle.Proof{Leaf: leaf, Steps: steps}, root, h), nil
}
