package util

import (
	"bytes"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// ErrInvalidEncoding is returned when hex text contains non-hex characters or has an odd length.
var ErrInvalidEncoding = errors.New("invalid hex encoding")

// DecodeHex converts hex text to bytes. A leading 0x or 0X is accepted and the
// empty string decodes to an empty slice.
func DecodeHex(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEncoding, "%q: %v", s[2:], err)
	}
	return b, nil
}

// EncodeHex renders bytes as lowercase hex without a prefix.
func EncodeHex(b []byte) string {
	return common.Bytes2Hex(b)
}

// ConcatBytes joins the parts in order with no separator.
func ConcatBytes(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// CompareBytes compares a and b as big-endian unsigned integers of arbitrary
// length and returns -1, 0 or 1. Leading zero bytes do not affect the result.
func CompareBytes(a, b []byte) int {
	return new(big.Int).SetBytes(a).Cmp(new(big.Int).SetBytes(b))
}
