package evminspector

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/wippyai/evm-inspector/state"
)

// ByteSource serves raw machine state bytes addressed by pointers.
// state.Snapshot is the canonical implementation.
type ByteSource interface {
	ReadRange(ptr state.Pointer) ([]byte, error)
}

// CodeSource fetches the deployed bytecode at an account address
type CodeSource interface {
	CodeAt(ctx context.Context, address common.Address) ([]byte, error)
}
