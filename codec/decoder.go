package codec

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/wippyai/evm-inspector/contexts"
	"github.com/wippyai/evm-inspector/errors"
	"github.com/wippyai/evm-inspector/state"
	"github.com/wippyai/evm-inspector/types"
	"github.com/wippyai/evm-inspector/value"
)

// externalFunctionSize is the meaningful prefix of an external
// function word: a 20-byte address followed by a 4-byte selector.
const externalFunctionSize = common.AddressLength + 4

// DecodeValue decodes the value of type t at ptr. It suspends
// immediately on a BytesRequest for the pointer; once answered it
// dispatches on the type class, possibly suspending again for
// contract code, and finishes with a decoded value or an error result
// per the failure policy in opts.
//
// A failed read becomes an unreadable error result. Everything else
// the pointer could name, however oddly encoded, decodes to some
// result; under Options.StrictABI the error results come out marked
// fatal.
func DecodeValue(t types.Type, ptr state.Pointer, info *ExecInfo, opts Options) *Step {
	if info == nil {
		info = &ExecInfo{}
	}
	return stepSuspend(BytesRequest{Pointer: ptr}, func(ans Answer) *Step {
		if ans.Err != nil {
			return fail(t, errors.Unreadable(ptr.String(), ans.Err), opts)
		}
		return interpret(t, ans.Data, info, opts)
	})
}

// interpret dispatches on the type class of t for a word already
// read. Every branch past the initial read lives here, so the whole
// per-type rule set is exercisable without a byte source.
func interpret(t types.Type, word []byte, info *ExecInfo, opts Options) *Step {
	switch t := t.(type) {
	case types.BoolType:
		return stepDone(decodeBool(t, word, opts))
	case types.UintType:
		return stepDone(decodeUint(t, word, opts))
	case types.IntType:
		return stepDone(decodeInt(t, word, opts))
	case types.AddressType:
		return stepDone(decodeAddress(t, word, opts))
	case types.ContractType:
		if !opts.PermissivePadding && !LeftPaddedZero(word, common.AddressLength) {
			return fail(t, errors.Padding(t.String(), word, "nonzero byte in address padding"), opts)
		}
		return decodeContract(t, common.BytesToAddress(word), info)
	case types.FixedBytesType:
		return stepDone(decodeFixedBytes(t, word, opts))
	case types.BytesType:
		return stepDone(value.Bytes{Of: t, Value: common.CopyBytes(word)})
	case types.StringType:
		return stepDone(DecodeString(t, word))
	case types.ExternalFunctionType:
		return interpretExternalFunction(t, word, info, opts)
	case types.InternalFunctionType:
		return interpretInternalFunction(t, word, info, opts)
	case types.EnumType:
		return stepDone(decodeEnum(t, word, info, opts))
	case types.FixedType, types.UfixedType:
		return fail(t, errors.Unsupported(errors.PhaseDecode, "fixed-point decoding"), opts)
	default:
		return fail(t, errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("type %T", t)), opts)
	}
}

func decodeBool(t types.BoolType, word []byte, opts Options) value.Result {
	// Bool padding is validated even under the permissive policy.
	if !LeftPaddedZero(word, 1) {
		return failure(t, errors.Padding(t.String(), word, "nonzero byte in padding"), opts)
	}
	var n byte
	if len(word) > 0 {
		n = word[len(word)-1]
	}
	switch n {
	case 0:
		return value.Bool{Of: t, Value: false}
	case 1:
		return value.Bool{Of: t, Value: true}
	}
	return failure(t, errors.OutOfRange(t.String(), uint64(n), fmt.Sprintf("numeric %d is not 0 or 1", n)), opts)
}

func decodeUint(t types.UintType, word []byte, opts Options) value.Result {
	size := t.Bits / 8
	if !opts.PermissivePadding && !LeftPaddedZero(word, size) {
		return failure(t, errors.Padding(t.String(), word, "nonzero byte in padding"), opts)
	}
	return value.Uint{
		Of:    t,
		Value: new(uint256.Int).SetBytes(tail(word, size)),
		Raw:   new(uint256.Int).SetBytes(word),
	}
}

func decodeInt(t types.IntType, word []byte, opts Options) value.Result {
	size := t.Bits / 8
	if !opts.PermissivePadding && !SignExtended(word, size) {
		return failure(t, errors.Padding(t.String(), word, "padding does not sign-extend the value"), opts)
	}
	kept := new(uint256.Int).SetBytes(tail(word, size))
	if size < state.WordSize {
		kept.ExtendSign(kept, uint256.NewInt(uint64(size-1)))
	}
	return value.Int{
		Of:    t,
		Value: math.S256(kept.ToBig()),
		Raw:   math.S256(new(uint256.Int).SetBytes(word).ToBig()),
	}
}

func decodeAddress(t types.AddressType, word []byte, opts Options) value.Result {
	if !opts.PermissivePadding && !LeftPaddedZero(word, common.AddressLength) {
		return failure(t, errors.Padding(t.String(), word, "nonzero byte in address padding"), opts)
	}
	return value.Address{Of: t, Value: common.BytesToAddress(word)}
}

func decodeFixedBytes(t types.FixedBytesType, word []byte, opts Options) value.Result {
	if !opts.PermissivePadding && !RightPaddedZero(word, t.Size) {
		return failure(t, errors.Padding(t.String(), word, "nonzero byte past the value"), opts)
	}
	v := make([]byte, t.Size)
	copy(v, word)
	return value.FixedBytes{Of: t, Value: v}
}

func interpretExternalFunction(t types.ExternalFunctionType, word []byte, info *ExecInfo, opts Options) *Step {
	if !opts.PermissivePadding && !RightPaddedZero(word, externalFunctionSize) {
		return fail(t, errors.Padding(t.String(), word, "nonzero byte past the selector"), opts)
	}
	if len(word) < externalFunctionSize {
		padded := make([]byte, externalFunctionSize)
		copy(padded, word)
		word = padded
	}
	addr := common.BytesToAddress(word[:common.AddressLength])
	sel := contexts.SelectorFromWord(word[common.AddressLength:])
	return decodeExternalFunction(t, addr, sel, info)
}

func interpretInternalFunction(t types.InternalFunctionType, word []byte, info *ExecInfo, opts Options) *Step {
	// Rejected under the strict policy before anything is examined:
	// internal function pointers have no meaning outside their own
	// contract's execution.
	if opts.StrictABI {
		return fail(t, errors.Policy(t.String(), "internal functions are not representable in strict decoding"), opts)
	}
	// Padding is validated even under the permissive policy.
	if !LeftPaddedZero(word, 2*pcSize) {
		return fail(t, errors.Padding(t.String(), word, "nonzero byte in padding"), opts)
	}
	low := new(uint256.Int).SetBytes(word).Uint64()
	deployedPC := low & (1<<(8*pcSize) - 1)
	constructorPC := low >> (8 * pcSize)
	return stepDone(DecodeInternalFunction(t, deployedPC, constructorPC, info, opts))
}

func decodeEnum(t types.EnumType, word []byte, info *ExecInfo, opts Options) value.Result {
	def := info.UserTypes.ResolveEnum(t)
	if def == nil {
		name := t.Name
		if name == "" {
			name = t.ID
		}
		return failure(t, errors.NotFound(errors.PhaseResolve, "enum definition", name), opts)
	}
	size := def.ByteSize()
	if !opts.PermissivePadding && !LeftPaddedZero(word, size) {
		return failure(t, errors.Padding(t.String(), word, "nonzero byte in padding"), opts)
	}
	n := new(uint256.Int).SetBytes(tail(word, size))
	count := uint64(len(def.Options))
	if !n.IsUint64() || n.Uint64() >= count {
		return failure(t, errors.OutOfRange(t.String(), n, fmt.Sprintf("index %s out of range for %d options", n.Dec(), count)), opts)
	}
	idx := n.Uint64()
	return value.Enum{Of: *def, Index: idx, Option: def.Options[idx]}
}

// tail returns the last size bytes of word, or all of it when shorter.
func tail(word []byte, size int) []byte {
	if size >= len(word) {
		return word
	}
	return word[len(word)-size:]
}

// failure applies the failure policy to err and wraps it as an error
// result tagged with the type descriptor that triggered it.
func failure(t types.Type, err *errors.Error, opts Options) value.ErrorResult {
	if err.Type == "" {
		err.Type = t.String()
	}
	if opts.StrictABI {
		errors.MakeFatal(err)
		Logger().Debug("fatal decode failure",
			zap.String("type", err.Type),
			zap.String("kind", string(err.Kind)))
	}
	return value.Erroneous(t, err)
}

func fail(t types.Type, err *errors.Error, opts Options) *Step {
	return stepDone(failure(t, err, opts))
}
