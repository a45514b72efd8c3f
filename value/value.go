package value

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/wippyai/evm-inspector/contexts"
	"github.com/wippyai/evm-inspector/types"
)

// Result is a decoded value or an ErrorResult standing in for one.
// The set of implementations is closed.
type Result interface {
	isResult()
	// Type reports the declared type this result was decoded as.
	Type() types.Type
	String() string
}

// IsError reports whether r carries a decoding failure rather than a value.
func IsError(r Result) bool {
	_, ok := r.(ErrorResult)
	return ok
}

// Bool is a decoded boolean.
type Bool struct {
	Of    types.BoolType
	Value bool
}

func (Bool) isResult()          {}
func (v Bool) Type() types.Type { return v.Of }
func (v Bool) String() string   { return strconv.FormatBool(v.Value) }

// Uint is a decoded unsigned integer of up to 256 bits. Value is the
// integer of the type's meaningful bytes; Raw is the whole word read
// unsigned, kept for diagnostics when padding checks were skipped.
type Uint struct {
	Of    types.UintType
	Value *uint256.Int
	Raw   *uint256.Int
}

func (Uint) isResult()          {}
func (v Uint) Type() types.Type { return v.Of }
func (v Uint) String() string   { return v.Value.Dec() }

// Int is a decoded signed integer of up to 256 bits. Raw is the whole
// word read as a 256-bit two's complement number.
type Int struct {
	Of    types.IntType
	Value *big.Int
	Raw   *big.Int
}

func (Int) isResult()          {}
func (v Int) Type() types.Type { return v.Of }
func (v Int) String() string   { return v.Value.String() }

// Address is a decoded plain address.
type Address struct {
	Of    types.AddressType
	Value common.Address
}

func (Address) isResult()          {}
func (v Address) Type() types.Type { return v.Of }
func (v Address) String() string   { return v.Value.Hex() }

// Contract is an address decoded as a contract type. Class is the
// deployed class the on-chain code was matched to, or nil when the
// code at the address is not recognized.
type Contract struct {
	Of      types.ContractType
	Address common.Address
	Class   *types.ContractClass
}

func (Contract) isResult()          {}
func (v Contract) Type() types.Type { return v.Of }

// Known reports whether the code at the address was matched to a class.
func (v Contract) Known() bool { return v.Class != nil }

func (v Contract) String() string {
	if v.Class == nil {
		return v.Address.Hex()
	}
	return fmt.Sprintf("%s(%s)", v.Class.Name, v.Address.Hex())
}

// FixedBytes is a decoded bytesN value. Value holds exactly Of.Size bytes.
type FixedBytes struct {
	Of    types.FixedBytesType
	Value []byte
}

func (FixedBytes) isResult()          {}
func (v FixedBytes) Type() types.Type { return v.Of }
func (v FixedBytes) String() string   { return hexutil.Encode(v.Value) }

// Bytes is a decoded dynamic byte string.
type Bytes struct {
	Of    types.BytesType
	Value []byte
}

func (Bytes) isResult()          {}
func (v Bytes) Type() types.Type { return v.Of }
func (v Bytes) String() string   { return hexutil.Encode(v.Value) }

// String is a decoded string. When the raw bytes are valid UTF-8 they
// are carried in Value; otherwise Value is empty and Malformed holds
// the bytes as read. A malformed string is still a value, never a
// failure.
type String struct {
	Of        types.StringType
	Value     string
	Malformed []byte
}

func (String) isResult()          {}
func (v String) Type() types.Type { return v.Of }

// Valid reports whether the decoded bytes were valid UTF-8.
func (v String) Valid() bool { return v.Malformed == nil }

func (v String) String() string {
	if v.Malformed != nil {
		return "malformed " + hexutil.Encode(v.Malformed)
	}
	return strconv.Quote(v.Value)
}

// ExternalFunctionKind classifies how far an external function pointer
// could be resolved.
type ExternalFunctionKind uint8

const (
	// ExternalKnown means the contract class was matched and the
	// selector names one of its methods.
	ExternalKnown ExternalFunctionKind = iota
	// ExternalInvalid means the contract class was matched but the
	// selector does not correspond to any of its methods.
	ExternalInvalid
	// ExternalUnknown means the code at the address was not recognized.
	ExternalUnknown
)

var externalFunctionKindNames = [...]string{
	"known",
	"invalid",
	"unknown",
}

func (k ExternalFunctionKind) String() string {
	if int(k) < len(externalFunctionKindNames) {
		return externalFunctionKindNames[k]
	}
	return "unknown"
}

// ExternalFunction is a decoded external function pointer: an address
// plus a four-byte selector. Address and Selector are always set;
// Class is set unless Kind is ExternalUnknown, and Method only when
// Kind is ExternalKnown.
type ExternalFunction struct {
	Of       types.ExternalFunctionType
	Kind     ExternalFunctionKind
	Address  common.Address
	Selector contexts.Selector
	Class    *types.ContractClass
	Method   *contexts.Method
}

func (ExternalFunction) isResult()          {}
func (v ExternalFunction) Type() types.Type { return v.Of }

func (v ExternalFunction) String() string {
	switch v.Kind {
	case ExternalKnown:
		return fmt.Sprintf("%s.%s", v.Class.Name, v.Method.Name)
	case ExternalInvalid:
		return fmt.Sprintf("%s.%s", v.Class.Name, v.Selector.Hex())
	default:
		return fmt.Sprintf("%s.%s", v.Address.Hex(), v.Selector.Hex())
	}
}

// InternalFunctionKind classifies how far an internal function pointer
// could be resolved.
type InternalFunctionKind uint8

const (
	// InternalKnown means the program counter named an entry in the
	// current contract's jump table.
	InternalKnown InternalFunctionKind = iota
	// InternalException means the pointer is the designated invalid
	// function, or the all-zero pointer an uninitialized storage
	// variable holds. Calling it reverts.
	InternalException
	// InternalUnknown means no jump table was available to resolve
	// the pointer against.
	InternalUnknown
)

var internalFunctionKindNames = [...]string{
	"known",
	"exception",
	"unknown",
}

func (k InternalFunctionKind) String() string {
	if int(k) < len(internalFunctionKindNames) {
		return internalFunctionKindNames[k]
	}
	return "unknown"
}

// InternalFunction is a decoded internal function pointer. The two
// program counters are always set as read from the word; Name,
// Mutability and DefinedIn are only set when Kind is InternalKnown.
type InternalFunction struct {
	Of            types.InternalFunctionType
	Kind          InternalFunctionKind
	Name          string
	Mutability    contexts.Mutability
	DefinedIn     *types.ContractClass
	DeployedPC    uint64
	ConstructorPC uint64
}

func (InternalFunction) isResult()          {}
func (v InternalFunction) Type() types.Type { return v.Of }

func (v InternalFunction) String() string {
	switch v.Kind {
	case InternalKnown:
		if v.DefinedIn == nil {
			return v.Name
		}
		return fmt.Sprintf("%s.%s", v.DefinedIn.Name, v.Name)
	case InternalException:
		return "<uninitialized function>"
	default:
		return fmt.Sprintf("<unknown function: deployed=%d constructor=%d>", v.DeployedPC, v.ConstructorPC)
	}
}

// Enum is a decoded enum value. Of is the resolved form of the type,
// with the option list populated, and Option is Of.Options[Index].
type Enum struct {
	Of     types.EnumType
	Index  uint64
	Option string
}

func (Enum) isResult()          {}
func (v Enum) Type() types.Type { return v.Of }
func (v Enum) String() string   { return fmt.Sprintf("%s.%s", v.Of.Name, v.Option) }
