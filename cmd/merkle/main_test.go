package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/config"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"merkle"}, args...))
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	out, err := run(t, "build", "--leaves", "abcdef,123456,789abc,deadbeef")
	require.NoError(t, err)

	var result treeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, 4, result.LeafCount)
	require.Len(t, result.Tree, 7)
	require.Equal(t, []string{"deadbeef", "789abc", "123456", "abcdef"}, result.Tree[3:])
	require.Equal(t, result.Tree[0], result.Root)
	require.Equal(t, hashing.StrategyKeccak256, result.HashStrategy)

	left := crypto.Keccak256([]byte{0xde, 0xad, 0xbe, 0xef}, []byte{0x78, 0x9a, 0xbc})
	right := crypto.Keccak256([]byte{0x12, 0x34, 0x56}, []byte{0xab, 0xcd, 0xef})
	require.Equal(t, hashing.HashValue(crypto.Keccak256(left, right)).Hex(), result.Root)
}

func TestBuildCommandParallelMatches(t *testing.T) {
	args := []string{"build", "--leaves", "01,02,03,04,05,06,07,08,09"}

	sequential, err := run(t, args...)
	require.NoError(t, err)
	parallel, err := run(t, append([]string{"--workers", "4"}, args...)...)
	require.NoError(t, err)
	require.Equal(t, sequential, parallel)
}

func TestBuildCommandErrors(t *testing.T) {
	_, err := run(t, "build", "--leaves", "zz")
	require.Error(t, err)

	_, err = run(t, "--hash-strategy", "md5", "build", "--leaves", "01")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestProveAndVerifyCommands(t *testing.T) {
	out, err := run(t, "prove", "--leaves", "abcdef,123456,789abc,deadbeef", "--index", "3")
	require.NoError(t, err)

	var proof proofOutput
	require.NoError(t, json.Unmarshal([]byte(out), &proof))
	require.Equal(t, 3, proof.LeafIndex)
	require.Equal(t, "deadbeef", proof.Leaf)
	require.Len(t, proof.Proof, 2)
	require.Equal(t, "789abc", proof.Proof[0])

	sides := make([]string, len(proof.Steps))
	for i, s := range proof.Steps {
		sides[i] = s.Side.String()
	}

	verifyArgs := []string{"verify", "--root", proof.Root, "--leaf", proof.Leaf}
	for i := range proof.Proof {
		verifyArgs = append(verifyArgs, "--proof", proof.Proof[i], "--sides", sides[i])
	}
	out, err = run(t, verifyArgs...)
	require.NoError(t, err)
	require.Contains(t, out, `"valid": true`)

	// a wrong leaf fails verification
	verifyArgs[4] = "deadbeee"
	_, err = run(t, verifyArgs...)
	require.Error(t, err)
}

func TestProveCommandInputIndex(t *testing.T) {
	byTree, err := run(t, "prove", "--leaves", "abcdef,123456,789abc,deadbeef", "--index", "6")
	require.NoError(t, err)
	byInput, err := run(t, "prove", "--leaves", "abcdef,123456,789abc,deadbeef", "--index", "0", "--input-index")
	require.NoError(t, err)
	require.Equal(t, byTree, byInput)

	_, err = run(t, "prove", "--leaves", "abcdef,123456,789abc,deadbeef", "--index", "7")
	require.Error(t, err)
	_, err = run(t, "prove", "--leaves", "abcdef,123456,789abc,deadbeef", "--index", "1")
	require.Error(t, err)
}

func TestVerifyCommandSortedWithoutSides(t *testing.T) {
	out, err := run(t, "--hash-strategy", "sorted-keccak256", "prove", "--leaves", "01,02,03", "--index", "0", "--input-index")
	require.NoError(t, err)

	var proof proofOutput
	require.NoError(t, json.Unmarshal([]byte(out), &proof))

	args := []string{"--hash-strategy", "sorted-keccak256", "verify", "--root", proof.Root, "--leaf", proof.Leaf}
	for _, p := range proof.Proof {
		args = append(args, "--proof", p)
	}
	out, err = run(t, args...)
	require.NoError(t, err)
	require.Contains(t, out, `"valid": true`)

	// side-less proofs are rejected for the standard hasher
	_, err = run(t, append([]string{"verify", "--root", proof.Root, "--leaf", proof.Leaf}, "--proof", proof.Proof[0])...)
	require.Error(t, err)
}

func TestLeafHashCommand(t *testing.T) {
	out, err := run(t, "leaf-hash", "--values", "0x1111111111111111111111111111111111111111", "--values", "500")
	require.NoError(t, err)

	lh, err := hashing.NewStandardLeafHasher("address", "uint256")
	require.NoError(t, err)
	expected, err := lh.HashLeafStrings("0x1111111111111111111111111111111111111111", "500")
	require.NoError(t, err)
	require.Contains(t, out, expected.Hex())

	_, err = run(t, "leaf-hash", "--types", "uint256", "--values", "not-a-number")
	require.Error(t, err)
}

func TestAllowListCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- address: "0x1111111111111111111111111111111111111111"
  amount: "100"
- address: "0x2222222222222222222222222222222222222222"
  amount: "200"
`), 0o600))

	out, err := run(t, "allowlist", "--file", path, "--address", "0x2222222222222222222222222222222222222222")
	require.NoError(t, err)

	var result allowListOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, 2, result.Entries)
	require.NotNil(t, result.Claim)
	require.Equal(t, "200", result.Claim.Amount)
	require.Len(t, result.Claim.Proof, 1)

	_, err = run(t, "allowlist", "--file", path, "--address", "0x3333333333333333333333333333333333333333")
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hashStrategy: sha256\n"), 0o600))

	out, err := run(t, "--config", path, "build", "--leaves", "01,02")
	require.NoError(t, err)
	require.Contains(t, out, `"hashStrategy": "sha256"`)

	// flags win over the file
	out, err = run(t, "--config", path, "--hash-strategy", "blake2b", "build", "--leaves", "01,02")
	require.NoError(t, err)
	require.Contains(t, out, `"hashStrategy": "blake2b"`)
}

func TestVerboseEnablesDebug(t *testing.T) {
	load := func(args ...string) *config.TreeConfig {
		var cfg *config.TreeConfig
		app := newApp()
		app.Commands = nil
		app.Action = func(c *cli.Context) error {
			var err error
			cfg, err = loadConfig(c)
			return err
		}
		require.NoError(t, app.Run(append([]string{"merkle"}, args...)))
		return cfg
	}

	require.False(t, load().Debug)
	require.True(t, load("--verbose").Debug)
}
