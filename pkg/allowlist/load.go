package allowlist

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// rawEntry is the file representation of an Entry. Amounts are decimal or
// 0x-prefixed hex strings so they survive JSON number precision limits.
type rawEntry struct {
	Address string `json:"address" yaml:"address"`
	Amount  string `json:"amount" yaml:"amount"`
}

// ParseEntries decodes a JSON or YAML list of {address, amount} objects.
func ParseEntries(data []byte, format string) ([]Entry, error) {
	var raw []rawEntry
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal allow-list JSON")
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal allow-list YAML")
		}
	default:
		return nil, errors.Errorf("unsupported allow-list format %q", format)
	}

	entries := make([]Entry, len(raw))
	for i, r := range raw {
		if !common.IsHexAddress(r.Address) {
			return nil, errors.Errorf("entry %d: invalid address %q", i, r.Address)
		}
		amount, ok := new(big.Int).SetString(strings.TrimSpace(r.Amount), 0)
		if !ok || amount.Sign() < 0 {
			return nil, errors.Errorf("entry %d: invalid amount %q", i, r.Amount)
		}
		entries[i] = Entry{Address: common.HexToAddress(r.Address), Amount: amount}
	}
	return entries, nil
}

// LoadEntries reads an allow-list file, choosing the format by extension.
// Anything other than .json is read as YAML.
func LoadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read allow-list %s", path)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	return ParseEntries(data, format)
}
