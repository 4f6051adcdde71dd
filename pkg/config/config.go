package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/util"
)

// Environment variable names for tree configuration
const (
	EnvMerkleHashStrategy = "MERKLE_HASH_STRATEGY"
	EnvMerkleLeafTypes    = "MERKLE_LEAF_TYPES"
	EnvMerkleBuildWorkers = "MERKLE_BUILD_WORKERS"
	EnvMerkleConfigFile   = "MERKLE_CONFIG_FILE"
	EnvMerkleVerbose      = "MERKLE_VERBOSE"
)

const DefaultHashStrategy = hashing.StrategyKeccak256

// DefaultLeafTypes is the (address, amount) tuple used by allow-lists.
var DefaultLeafTypes = []string{"address", "uint256"}

// TreeConfig selects the hashing strategies and build options for a tree
type TreeConfig struct {
	HashStrategy string   `json:"hash_strategy" yaml:"hashStrategy"`
	LeafTypes    []string `json:"leaf_types" yaml:"leafTypes"`
	BuildWorkers int      `json:"build_workers" yaml:"buildWorkers"`

	Debug bool `json:"debug" yaml:"debug"`
}

// NewDefaultTreeConfig returns the standard keccak256 configuration for allow-lists
func NewDefaultTreeConfig() *TreeConfig {
	return &TreeConfig{
		HashStrategy: DefaultHashStrategy,
		LeafTypes:    append([]string(nil), DefaultLeafTypes...),
	}
}

// ParseLeafTypes splits a comma separated list such as "address,uint256"
func ParseLeafTypes(s string) []string {
	var types []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// Validate validates the tree configuration
func (c *TreeConfig) Validate() error {
	var allErrors field.ErrorList

	if _, err := hashing.NodeHasherByName(c.HashStrategy); err != nil {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("hashStrategy"), c.HashStrategy, hashing.NodeHasherNames()))
	}

	if len(c.LeafTypes) == 0 {
		allErrors = append(allErrors, field.Required(field.NewPath("leafTypes"), "at least one abi type is required"))
	}
	for i, t := range c.LeafTypes {
		if _, err := util.NewArguments([]string{t}); err != nil {
			allErrors = append(allErrors, field.Invalid(field.NewPath("leafTypes").Index(i), t, "not a valid abi type"))
		}
	}

	if c.BuildWorkers < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("buildWorkers"), c.BuildWorkers, "must not be negative"))
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// NodeHasher resolves the configured node hashing strategy
func (c *TreeConfig) NodeHasher() (hashing.NodeHasher, error) {
	return hashing.NodeHasherByName(c.HashStrategy)
}

// LeafHasher builds the standard leaf hasher for the configured types
func (c *TreeConfig) LeafHasher() (*hashing.StandardLeafHasher, error) {
	return hashing.NewStandardLeafHasher(c.LeafTypes...)
}

// LoadTreeConfig reads a YAML (or JSON) config file on top of the defaults
func LoadTreeConfig(path string) (*TreeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg := NewDefaultTreeConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return cfg, nil
}
