package codec

import (
	"strconv"

	"github.com/wippyai/evm-inspector/errors"
	"github.com/wippyai/evm-inspector/types"
	"github.com/wippyai/evm-inspector/value"
)

// pcSize is the width in bytes of one program counter inside an
// internal function word. The low 2*pcSize bytes hold the constructor
// counter followed by the deployed counter.
const pcSize = 4

// DecodeInternalFunction resolves a program counter pair against the
// jump table in info. It is synchronous and evaluates an ordered rule
// list; the first matching rule wins:
//
//  1. no jump table available: unknown, not an error
//  2. both counters zero: the uninitialized-pointer exception value
//  3. deployed counter zero, constructor counter nonzero: malformed
//  4. decoding inside a constructor with a zero constructor counter:
//     malformed
//  5. look the applicable counter up in the table; a missing entry is
//     a failure, the designated invalid function is the exception
//     value, anything else is a known function
func DecodeInternalFunction(t types.InternalFunctionType, deployedPC, constructorPC uint64, info *ExecInfo, opts Options) value.Result {
	if info == nil || info.JumpTable == nil {
		return value.InternalFunction{
			Of:            t,
			Kind:          value.InternalUnknown,
			DeployedPC:    deployedPC,
			ConstructorPC: constructorPC,
		}
	}
	if deployedPC == 0 && constructorPC == 0 {
		return value.InternalFunction{Of: t, Kind: value.InternalException}
	}
	if deployedPC == 0 {
		return failure(t, errors.Malformed(t.String(), "zero deployed counter with nonzero constructor counter"), opts)
	}
	if info.InConstructor && constructorPC == 0 {
		return failure(t, errors.Malformed(t.String(), "deployed-style pointer while constructing"), opts)
	}

	pc := deployedPC
	if info.InConstructor {
		pc = constructorPC
	}
	entry := info.JumpTable[pc]
	if entry == nil {
		return failure(t, errors.NotFound(errors.PhaseDecode, "internal function at pc", strconv.FormatUint(pc, 10)), opts)
	}
	if entry.IsDesignatedInvalid {
		return value.InternalFunction{
			Of:            t,
			Kind:          value.InternalException,
			DeployedPC:    deployedPC,
			ConstructorPC: constructorPC,
		}
	}
	return value.InternalFunction{
		Of:            t,
		Kind:          value.InternalKnown,
		Name:          entry.Name,
		Mutability:    entry.Mutability,
		DefinedIn:     entry.Class,
		DeployedPC:    deployedPC,
		ConstructorPC: constructorPC,
	}
}
