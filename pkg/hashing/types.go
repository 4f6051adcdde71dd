package hashing

import (
	"bytes"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/util"
)

// HashValue is a digest produced by a leaf or node hasher. It is rendered as
// lowercase hex wherever it leaves the process.
type HashValue []byte

// HashValueFromHex decodes hex text, with or without a 0x prefix.
func HashValueFromHex(s string) (HashValue, error) {
	b, err := util.DecodeHex(s)
	if err != nil {
		return nil, err
	}
	return HashValue(b), nil
}

func (h HashValue) Hex() string {
	return util.EncodeHex(h)
}

func (h HashValue) String() string {
	return h.Hex()
}

func (h HashValue) Bytes() []byte {
	return []byte(h)
}

// Equal reports whether both values hold the same bytes.
func (h HashValue) Equal(other HashValue) bool {
	return bytes.Equal(h, other)
}

func (h HashValue) Clone() HashValue {
	if h == nil {
		return nil
	}
	out := make(HashValue, len(h))
	copy(out, h)
	return out
}

func (h HashValue) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

func (h *HashValue) UnmarshalText(text []byte) error {
	v, err := HashValueFromHex(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// HexValues renders each value as lowercase hex.
func HexValues(values []HashValue) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Hex()
	}
	return out
}
