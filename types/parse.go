package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseElementary parses a canonical elementary type name ("uint8",
// "bytes32", "address payable", "fixed128x18") into its descriptor.
// User-defined forms (enum, contract) are not elementary and must be
// constructed against a Registry instead.
func ParseElementary(s string) (Type, error) {
	switch s {
	case "bool":
		return BoolType{}, nil
	case "address":
		return AddressType{}, nil
	case "address payable":
		return AddressType{Payable: true}, nil
	case "bytes":
		return BytesType{}, nil
	case "string":
		return StringType{}, nil
	case "function", "function external":
		return ExternalFunctionType{}, nil
	case "function internal":
		return InternalFunctionType{}, nil
	case "uint":
		return UintType{Bits: 256}, nil
	case "int":
		return IntType{Bits: 256}, nil
	case "fixed":
		return FixedType{Bits: 128, Places: 18}, nil
	case "ufixed":
		return UfixedType{Bits: 128, Places: 18}, nil
	}

	switch {
	case strings.HasPrefix(s, "uint"):
		bits, err := parseBits(s[len("uint"):])
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s, err)
		}
		return UintType{Bits: bits}, nil

	case strings.HasPrefix(s, "int"):
		bits, err := parseBits(s[len("int"):])
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s, err)
		}
		return IntType{Bits: bits}, nil

	case strings.HasPrefix(s, "bytes"):
		size, err := strconv.Atoi(s[len("bytes"):])
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s, err)
		}
		t := FixedBytesType{Size: size}
		if !t.Valid() {
			return nil, fmt.Errorf("parse %q: size %d out of range 1..32", s, size)
		}
		return t, nil

	case strings.HasPrefix(s, "ufixed"):
		bits, places, err := parseFixedDims(s[len("ufixed"):])
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s, err)
		}
		return UfixedType{Bits: bits, Places: places}, nil

	case strings.HasPrefix(s, "fixed"):
		bits, places, err := parseFixedDims(s[len("fixed"):])
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s, err)
		}
		return FixedType{Bits: bits, Places: places}, nil
	}

	return nil, fmt.Errorf("unknown elementary type %q", s)
}

func parseBits(s string) (int, error) {
	bits, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if !validBits(bits) {
		return 0, fmt.Errorf("bit width %d not a multiple of 8 in 8..256", bits)
	}
	return bits, nil
}

func parseFixedDims(s string) (bits, places int, err error) {
	mStr, nStr, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("missing MxN dimensions")
	}
	bits, err = strconv.Atoi(mStr)
	if err != nil {
		return 0, 0, err
	}
	places, err = strconv.Atoi(nStr)
	if err != nil {
		return 0, 0, err
	}
	if !validBits(bits) {
		return 0, 0, fmt.Errorf("bit width %d not a multiple of 8 in 8..256", bits)
	}
	if places < 1 || places > 80 {
		return 0, 0, fmt.Errorf("decimal places %d out of range 1..80", places)
	}
	return bits, places, nil
}
