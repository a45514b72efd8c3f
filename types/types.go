package types

import (
	"fmt"
	"math/bits"
)

// Type is the descriptor for a single ABI value slot.
type Type interface {
	isType()
	// String returns the canonical type name ("uint256", "bytes32",
	// "enum Color", "function internal").
	String() string
}

// ContractKind classifies a contract class.
type ContractKind uint8

const (
	KindContract ContractKind = iota
	KindLibrary
	KindInterface
)

var contractKindNames = [...]string{
	KindContract:  "contract",
	KindLibrary:   "library",
	KindInterface: "interface",
}

func (k ContractKind) String() string {
	if int(k) < len(contractKindNames) {
		return contractKindNames[k]
	}
	return "unknown"
}

// ContractClass identifies a contract type: the compilation-level class a
// deployed instance belongs to. Classes are shared between ContractType
// descriptors and the contexts registry.
type ContractClass struct {
	ID   string
	Name string
	Kind ContractKind
}

func (c *ContractClass) String() string {
	if c == nil {
		return "contract"
	}
	return c.Kind.String() + " " + c.Name
}

// BoolType represents bool.
type BoolType struct{}

func (BoolType) isType()        {}
func (BoolType) String() string { return "bool" }

// UintType represents uint<Bits>. Bits must be a multiple of 8 in 8..256.
type UintType struct {
	Bits int
}

func (UintType) isType() {}

func (t UintType) String() string { return fmt.Sprintf("uint%d", t.Bits) }

// ByteSize returns the number of meaningful low-order bytes in a word.
func (t UintType) ByteSize() int { return t.Bits / 8 }

func (t UintType) Valid() bool { return validBits(t.Bits) }

// IntType represents int<Bits>. Bits must be a multiple of 8 in 8..256.
type IntType struct {
	Bits int
}

func (IntType) isType() {}

func (t IntType) String() string { return fmt.Sprintf("int%d", t.Bits) }

func (t IntType) ByteSize() int { return t.Bits / 8 }

func (t IntType) Valid() bool { return validBits(t.Bits) }

// AddressType represents address (20 bytes, left-padded in a word).
type AddressType struct {
	Payable bool
}

func (AddressType) isType() {}

func (t AddressType) String() string {
	if t.Payable {
		return "address payable"
	}
	return "address"
}

// ContractType represents a contract-typed slot. Encoded identically to
// address; decoding additionally resolves the instance against the known
// contexts. Class may be nil when the slot's class is not known statically.
type ContractType struct {
	Class *ContractClass
}

func (ContractType) isType() {}

func (t ContractType) String() string { return t.Class.String() }

// FixedBytesType represents bytes<Size>, Size in 1..32. The payload sits in
// the high-order bytes of the word.
type FixedBytesType struct {
	Size int
}

func (FixedBytesType) isType() {}

func (t FixedBytesType) String() string { return fmt.Sprintf("bytes%d", t.Size) }

func (t FixedBytesType) Valid() bool { return t.Size >= 1 && t.Size <= 32 }

// BytesType represents dynamic bytes.
type BytesType struct{}

func (BytesType) isType()        {}
func (BytesType) String() string { return "bytes" }

// StringType represents string.
type StringType struct{}

func (StringType) isType()        {}
func (StringType) String() string { return "string" }

// ExternalFunctionType represents an external function pointer: a 20-byte
// contract address followed by a 4-byte selector, right-padded in the word.
type ExternalFunctionType struct{}

func (ExternalFunctionType) isType()        {}
func (ExternalFunctionType) String() string { return "function external" }

// InternalFunctionType represents an internal function pointer: two
// program counters packed into the low 8 bytes of the word.
type InternalFunctionType struct{}

func (InternalFunctionType) isType()        {}
func (InternalFunctionType) String() string { return "function internal" }

// EnumType represents a user-defined enum. A descriptor with nil Options is
// a reference form carrying only the ID; Registry.ResolveEnum yields the
// full definition. Numeric values index into Options.
type EnumType struct {
	ID      string
	Name    string
	Options []string
}

func (EnumType) isType() {}

func (t EnumType) String() string {
	if t.Name == "" {
		return "enum"
	}
	return "enum " + t.Name
}

// ByteSize returns the number of bytes an enum value occupies in a word:
// the smallest byte count whose range covers every option index.
func (t EnumType) ByteSize() int {
	if len(t.Options) == 0 {
		return 0
	}
	return (bits.Len(uint(len(t.Options)-1)) + 7) / 8
}

// Resolved reports whether the descriptor carries its full definition.
func (t EnumType) Resolved() bool { return t.Options != nil }

// FixedType represents fixed<Bits>x<Places>. Decoding fixed-point values is
// not supported; the descriptor exists so such slots surface as typed
// unsupported results rather than parse failures.
type FixedType struct {
	Bits   int
	Places int
}

func (FixedType) isType() {}

func (t FixedType) String() string { return fmt.Sprintf("fixed%dx%d", t.Bits, t.Places) }

// UfixedType represents ufixed<Bits>x<Places>. Unsupported, as FixedType.
type UfixedType struct {
	Bits   int
	Places int
}

func (UfixedType) isType() {}

func (t UfixedType) String() string { return fmt.Sprintf("ufixed%dx%d", t.Bits, t.Places) }

func validBits(n int) bool {
	return n >= 8 && n <= 256 && n%8 == 0
}
