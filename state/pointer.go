package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// WordSize is the width of an EVM stack slot and storage slot in bytes.
const WordSize = 32

// Pointer addresses a byte range within one region of a Snapshot.
type Pointer interface {
	isPointer()
	String() string
}

// StackPointer addresses whole stack words, From through To inclusive,
// counted from the bottom of the stack.
type StackPointer struct {
	From uint64
	To   uint64
}

func (StackPointer) isPointer() {}

func (p StackPointer) String() string {
	return fmt.Sprintf("stack[%d..%d]", p.From, p.To)
}

// MemoryPointer addresses Length bytes of memory starting at Start.
type MemoryPointer struct {
	Start  uint64
	Length uint64
}

func (MemoryPointer) isPointer() {}

func (p MemoryPointer) String() string {
	return fmt.Sprintf("memory[%d..%d]", p.Start, p.Start+p.Length)
}

// CalldataPointer addresses Length bytes of calldata starting at Start.
type CalldataPointer struct {
	Start  uint64
	Length uint64
}

func (CalldataPointer) isPointer() {}

func (p CalldataPointer) String() string {
	return fmt.Sprintf("calldata[%d..%d]", p.Start, p.Start+p.Length)
}

// CodePointer addresses Length bytes of the executing contract's code
// starting at Start.
type CodePointer struct {
	Start  uint64
	Length uint64
}

func (CodePointer) isPointer() {}

func (p CodePointer) String() string {
	return fmt.Sprintf("code[%d..%d]", p.Start, p.Start+p.Length)
}

// StoragePointer addresses one 32-byte storage slot.
type StoragePointer struct {
	Slot common.Hash
}

func (StoragePointer) isPointer() {}

func (p StoragePointer) String() string {
	return fmt.Sprintf("storage[%s]", p.Slot.Hex())
}
