package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
)

func TestDefaultTreeConfig(t *testing.T) {
	cfg := NewDefaultTreeConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, hashing.StrategyKeccak256, cfg.HashStrategy)
	require.Equal(t, []string{"address", "uint256"}, cfg.LeafTypes)

	h, err := cfg.NodeHasher()
	require.NoError(t, err)
	require.False(t, hashing.IsOrderIndependent(h))

	lh, err := cfg.LeafHasher()
	require.NoError(t, err)
	require.Equal(t, cfg.LeafTypes, lh.Types())
}

func TestTreeConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *TreeConfig)
		wantErr string
	}{
		{"unknown strategy", func(c *TreeConfig) { c.HashStrategy = "md5" }, "hashStrategy"},
		{"no leaf types", func(c *TreeConfig) { c.LeafTypes = nil }, "leafTypes"},
		{"bad leaf type", func(c *TreeConfig) { c.LeafTypes = []string{"address", "nope"} }, "leafTypes[1]"},
		{"negative workers", func(c *TreeConfig) { c.BuildWorkers = -1 }, "buildWorkers"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultTreeConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestTreeConfigValidateAggregates(t *testing.T) {
	cfg := &TreeConfig{HashStrategy: "md5", BuildWorkers: -2}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "hashStrategy")
	require.Contains(t, err.Error(), "leafTypes")
	require.Contains(t, err.Error(), "buildWorkers")
}

func TestParseLeafTypes(t *testing.T) {
	require.Equal(t, []string{"address", "uint256"}, ParseLeafTypes("address, uint256"))
	require.Equal(t, []string{"bytes32"}, ParseLeafTypes(" bytes32 ,,"))
	require.Nil(t, ParseLeafTypes(""))
}

func TestLoadTreeConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hashStrategy: sorted-keccak256\nbuildWorkers: 4\n"), 0o600))

	cfg, err := LoadTreeConfig(path)
	require.NoError(t, err)
	require.Equal(t, hashing.StrategySortedKeccak256, cfg.HashStrategy)
	require.Equal(t, 4, cfg.BuildWorkers)
	// unset fields keep their defaults
	require.Equal(t, DefaultLeafTypes, cfg.LeafTypes)
	require.NoError(t, cfg.Validate())

	_, err = LoadTreeConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("hashStrategy: [unterminated"), 0o600))
	_, err = LoadTreeConfig(path)
	require.Error(t, err)
}
