package codec

import (
	"github.com/wippyai/evm-inspector/contexts"
	"github.com/wippyai/evm-inspector/state"
	"github.com/wippyai/evm-inspector/types"
)

// ExecInfo bundles everything a decode reads besides the bytes
// themselves: the execution state, the user-defined type definitions,
// the known contract contexts, and the identity of the code currently
// executing. It is never mutated by the decoder, so one ExecInfo may
// back any number of sequential decodes.
type ExecInfo struct {
	// State is the execution snapshot pointers are read against.
	State *state.Snapshot

	// UserTypes resolves enum references to their definitions.
	UserTypes *types.Registry

	// Contexts maps observed bytecode to known contract contexts.
	Contexts *contexts.Registry

	// Current is the context of the currently executing contract, nil
	// when it was not recognized.
	Current *contexts.Context

	// JumpTable resolves internal function pointers. Nil when no table
	// is available; internal functions then decode as unknown.
	JumpTable contexts.JumpTable

	// InConstructor selects the constructor program counter when
	// resolving internal function pointers.
	InConstructor bool
}
