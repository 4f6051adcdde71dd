package util

import (
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// NewArguments builds an ABI argument list from solidity type names such as
// "uint256" or "address".
func NewArguments(types []string) (abi.Arguments, error) {
	arguments := make(abi.Arguments, 0, len(types))
	for i, t := range types {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid abi type %q at position %d", t, i)
		}
		arguments = append(arguments, abi.Argument{Type: typ})
	}
	return arguments, nil
}

// EncodeValues abi.encode's the values against the given solidity types.
// Each field is serialized in declared order using the standard fixed-width layout.
func EncodeValues(types []string, values ...interface{}) ([]byte, error) {
	if len(types) != len(values) {
		return nil, errors.Errorf("expected %d values for types %v, got %d", len(types), types, len(values))
	}
	arguments, err := NewArguments(types)
	if err != nil {
		return nil, err
	}

	encoded, err := arguments.Pack(values...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to abi encode values")
	}

	return encoded, nil
}

// ParseValues converts textual values into the Go types go-ethereum's ABI
// packer expects for each solidity type.
func ParseValues(types []string, raw []string) ([]interface{}, error) {
	if len(types) != len(raw) {
		return nil, errors.Errorf("expected %d values for types %v, got %d", len(types), types, len(raw))
	}
	arguments, err := NewArguments(types)
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, len(raw))
	for i, arg := range arguments {
		v, err := ParseValue(arg.Type, raw[i])
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}
		values[i] = v
	}
	return values, nil
}

// ParseValue converts s into a value packable as typ.
func ParseValue(typ abi.Type, s string) (interface{}, error) {
	switch typ.T {
	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
		if !ok {
			return nil, errors.Errorf("invalid integer %q for %s", s, typ.String())
		}
		return integerValue(typ, n)
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, errors.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil
	case abi.BoolTy:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid bool %q", s)
		}
		return b, nil
	case abi.StringTy:
		return s, nil
	case abi.BytesTy:
		return DecodeHex(s)
	case abi.FixedBytesTy:
		b, err := DecodeHex(s)
		if err != nil {
			return nil, err
		}
		if len(b) != typ.Size {
			return nil, errors.Errorf("%s requires %d bytes, got %d", typ.String(), typ.Size, len(b))
		}
		arr := reflect.New(typ.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil
	default:
		return nil, errors.Errorf("unsupported abi type %s", typ.String())
	}
}

func integerValue(typ abi.Type, n *big.Int) (interface{}, error) {
	if typ.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > typ.Size {
			return nil, errors.Errorf("%s out of range for %s", n.String(), typ.String())
		}
	} else {
		upper := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
		lower := new(big.Int).Neg(upper)
		upper.Sub(upper, big.NewInt(1))
		if n.Cmp(lower) < 0 || n.Cmp(upper) > 0 {
			return nil, errors.Errorf("%s out of range for %s", n.String(), typ.String())
		}
	}

	rt := typ.GetType()
	if rt == reflect.TypeOf(&big.Int{}) {
		return n, nil
	}
	v := reflect.New(rt).Elem()
	if typ.T == abi.UintTy {
		v.SetUint(n.Uint64())
	} else {
		v.SetInt(n.Int64())
	}
	return v.Interface(), nil
}
