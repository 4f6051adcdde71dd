package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/allowlist"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/config"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/logger"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/merkle"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "merkle",
		Usage: "Build merkle trees and inclusion proofs",
		Description: `Builds array encoded keccak256 merkle trees and inclusion proofs.

Leaves are placed in reverse input order at the end of the tree array, so the
leaf at input position i lives at tree index size-1-i. Proof commands take the
tree index unless --input-index is given.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to a YAML tree config file",
				EnvVars: []string{config.EnvMerkleConfigFile},
			},
			&cli.StringFlag{
				Name:    "hash-strategy",
				Usage:   fmt.Sprintf("Node hash strategy: %s", strings.Join(hashing.NodeHasherNames(), ", ")),
				Value:   config.DefaultHashStrategy,
				EnvVars: []string{config.EnvMerkleHashStrategy},
			},
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "Goroutines used to hash each tree level (0 or 1 builds sequentially)",
				EnvVars: []string{config.EnvMerkleBuildWorkers},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvMerkleVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build a tree from hashed leaves and print it",
				Flags:  []cli.Flag{leavesFlag()},
				Action: buildCommand,
			},
			{
				Name:  "prove",
				Usage: "Print the inclusion proof for one leaf",
				Flags: []cli.Flag{
					leavesFlag(),
					&cli.IntFlag{
						Name:     "index",
						Usage:    "Tree index of the leaf (or input position with --input-index)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "input-index",
						Usage: "Interpret --index as the position in --leaves",
					},
				},
				Action: proveCommand,
			},
			{
				Name:  "verify",
				Usage: "Verify an inclusion proof against a root",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "root", Usage: "Expected root as hex", Required: true},
					&cli.StringFlag{Name: "leaf", Usage: "Leaf value as hex", Required: true},
					&cli.StringSliceFlag{Name: "proof", Usage: "Sibling hashes as hex, leaf to root"},
					&cli.StringSliceFlag{Name: "sides", Usage: "Side of each sibling: left or right"},
				},
				Action: verifyCommand,
			},
			{
				Name:  "leaf-hash",
				Usage: "Compute the standard double keccak256 leaf hash of an abi tuple",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "types",
						Usage:   "Comma separated abi types",
						Value:   strings.Join(config.DefaultLeafTypes, ","),
						EnvVars: []string{config.EnvMerkleLeafTypes},
					},
					&cli.StringSliceFlag{Name: "values", Usage: "Tuple values in type order", Required: true},
				},
				Action: leafHashCommand,
			},
			{
				Name:  "allowlist",
				Usage: "Commit to an (address, amount) allow-list and optionally print a claim proof",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "Allow-list JSON or YAML file", Required: true},
					&cli.StringFlag{Name: "address", Usage: "Print the proof for this address"},
				},
				Action: allowListCommand,
			},
		},
	}
}

func leavesFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:     "leaves",
		Aliases:  []string{"l"},
		Usage:    "Hashed leaf values as hex, in input order",
		Required: true,
	}
}

// loadConfig merges the config file, flags and environment
func loadConfig(c *cli.Context) (*config.TreeConfig, error) {
	cfg := config.NewDefaultTreeConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadTreeConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("hash-strategy") || c.String("config") == "" {
		cfg.HashStrategy = c.String("hash-strategy")
	}
	if c.IsSet("workers") {
		cfg.BuildWorkers = c.Int("workers")
	}
	if c.IsSet("types") {
		cfg.LeafTypes = config.ParseLeafTypes(c.String("types"))
	}
	if c.Bool("verbose") {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setup(c *cli.Context) (*config.TreeConfig, *zap.Logger, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, l, nil
}

func buildTree(c *cli.Context, cfg *config.TreeConfig) (*merkle.Tree, error) {
	h, err := cfg.NodeHasher()
	if err != nil {
		return nil, err
	}

	raw := c.StringSlice("leaves")
	leaves := make([]hashing.HashValue, len(raw))
	for i, s := range raw {
		v, err := hashing.HashValueFromHex(s)
		if err != nil {
			return nil, fmt.Errorf("leaf %d: %w", i, err)
		}
		leaves[i] = v
	}

	return merkle.BuildParallel(c.Context, leaves, h, cfg.BuildWorkers)
}

type treeOutput struct {
	Root         string   `json:"root"`
	HashStrategy string   `json:"hashStrategy"`
	LeafCount    int      `json:"leafCount"`
	Tree         []string `json:"tree"`
}

// buildCommand handles the build subcommand
func buildCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	tree, err := buildTree(c, cfg)
	if err != nil {
		return fmt.Errorf("failed to build tree: %w", err)
	}
	l.Sugar().Debugw("Built tree", "leaves", tree.LeafCount(), "size", tree.Size(), "strategy", cfg.HashStrategy)

	return writeJSON(c, &treeOutput{
		Root:         tree.Root().Hex(),
		HashStrategy: cfg.HashStrategy,
		LeafCount:    tree.LeafCount(),
		Tree:         tree.Hex(),
	})
}

type proofOutput struct {
	Root      string             `json:"root"`
	LeafIndex int                `json:"leafIndex"`
	Leaf      string             `json:"leaf"`
	Proof     []string           `json:"proof"`
	Steps     []merkle.ProofStep `json:"steps"`
}

// proveCommand handles the prove subcommand
func proveCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	tree, err := buildTree(c, cfg)
	if err != nil {
		return fmt.Errorf("failed to build tree: %w", err)
	}

	var proof *merkle.Proof
	if c.Bool("input-index") {
		proof, err = tree.ProveLeaf(c.Int("index"))
	} else {
		proof, err = tree.Prove(c.Int("index"))
	}
	if err != nil {
		return fmt.Errorf("failed to generate proof: %w", err)
	}
	l.Sugar().Debugw("Generated proof", "leafIndex", proof.LeafIndex, "length", len(proof.Steps))

	return writeJSON(c, &proofOutput{
		Root:      tree.Root().Hex(),
		LeafIndex: proof.LeafIndex,
		Leaf:      proof.Leaf.Hex(),
		Proof:     proof.Hex(),
		Steps:     proof.Steps,
	})
}

// verifyCommand handles the verify subcommand
func verifyCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	h, err := cfg.NodeHasher()
	if err != nil {
		return err
	}
	root, err := hashing.HashValueFromHex(c.String("root"))
	if err != nil {
		return fmt.Errorf("invalid root: %w", err)
	}
	leaf, err := hashing.HashValueFromHex(c.String("leaf"))
	if err != nil {
		return fmt.Errorf("invalid leaf: %w", err)
	}

	siblings := c.StringSlice("proof")
	sides := c.StringSlice("sides")
	if len(sides) != len(siblings) && !(len(sides) == 0 && hashing.IsOrderIndependent(h)) {
		return fmt.Errorf("expected %d sides for %d proof elements, got %d", len(siblings), len(siblings), len(sides))
	}

	steps := make([]merkle.ProofStep, len(siblings))
	for i, s := range siblings {
		v, err := hashing.HashValueFromHex(s)
		if err != nil {
			return fmt.Errorf("proof element %d: %w", i, err)
		}
		steps[i] = merkle.ProofStep{Hash: v, Side: merkle.SideRight}
		if len(sides) > 0 {
			if err := steps[i].Side.UnmarshalText([]byte(strings.ToLower(sides[i]))); err != nil {
				return fmt.Errorf("proof element %d: %w", i, err)
			}
		}
	}

	valid := merkle.VerifyProof(&merkle.Proof{Leaf: leaf, Steps: steps}, root, h)
	l.Sugar().Debugw("Verified proof", "valid", valid, "length", len(steps))

	if err := writeJSON(c, map[string]bool{"valid": valid}); err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("proof does not match root %s", root.Hex())
	}
	return nil
}

// leafHashCommand handles the leaf-hash subcommand
func leafHashCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	lh, err := cfg.LeafHasher()
	if err != nil {
		return err
	}
	leaf, err := lh.HashLeafStrings(c.StringSlice("values")...)
	if err != nil {
		return fmt.Errorf("failed to hash leaf: %w", err)
	}

	return writeJSON(c, map[string]string{"leaf": leaf.Hex()})
}

type allowListOutput struct {
	Root    string                  `json:"root"`
	Entries int                     `json:"entries"`
	Claim   *allowlist.AccountProof `json:"claim,omitempty"`
}

// allowListCommand handles the allowlist subcommand
func allowListCommand(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	h, err := cfg.NodeHasher()
	if err != nil {
		return err
	}
	entries, err := allowlist.LoadEntries(c.String("file"))
	if err != nil {
		return err
	}
	al, err := allowlist.New(c.Context, entries, h, cfg.BuildWorkers, l)
	if err != nil {
		return err
	}

	out := &allowListOutput{Root: al.Root().Hex(), Entries: al.Len()}
	if addr := c.String("address"); addr != "" {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("invalid address %q", addr)
		}
		claim, err := al.Proof(common.HexToAddress(addr))
		if err != nil {
			return err
		}
		out.Claim = claim
	}

	return writeJSON(c, out)
}

func writeJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
