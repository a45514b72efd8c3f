package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// MaxReadSize caps a single ReadRange allocation.
const MaxReadSize = 1 << 30 // 1 GB

// Snapshot holds the data regions of one frozen EVM frame. Stack words are
// ordered bottom first and must be WordSize bytes each. A Snapshot is not
// modified while decode sessions read from it.
type Snapshot struct {
	Stack    [][]byte
	Memory   []byte
	Calldata []byte
	Code     []byte
	Storage  map[common.Hash][32]byte
}

// ReadRange returns the bytes a pointer addresses. Memory, calldata and
// code reads zero-extend past the end of the region; absent storage slots
// read as zero words. Stack reads fail when the addressed words do not
// exist.
func (s *Snapshot) ReadRange(ptr Pointer) ([]byte, error) {
	switch p := ptr.(type) {
	case StackPointer:
		return s.readStack(p)
	case MemoryPointer:
		return readExtended(s.Memory, p.Start, p.Length)
	case CalldataPointer:
		return readExtended(s.Calldata, p.Start, p.Length)
	case CodePointer:
		return readExtended(s.Code, p.Start, p.Length)
	case StoragePointer:
		word := s.Storage[p.Slot]
		out := make([]byte, WordSize)
		copy(out, word[:])
		return out, nil
	default:
		return nil, fmt.Errorf("unhandled pointer %T", ptr)
	}
}

func (s *Snapshot) readStack(p StackPointer) ([]byte, error) {
	if p.To < p.From {
		return nil, fmt.Errorf("%s: inverted range", p)
	}
	if p.To >= uint64(len(s.Stack)) {
		return nil, fmt.Errorf("%s: beyond stack of %d words", p, len(s.Stack))
	}
	count := p.To - p.From + 1
	if count > MaxReadSize/WordSize {
		return nil, fmt.Errorf("%s: read exceeds %d bytes", p, MaxReadSize)
	}
	out := make([]byte, 0, count*WordSize)
	for i := p.From; i <= p.To; i++ {
		word := s.Stack[i]
		if len(word) != WordSize {
			return nil, fmt.Errorf("stack[%d]: word is %d bytes, want %d", i, len(word), WordSize)
		}
		out = append(out, word...)
	}
	return out, nil
}

// readExtended copies region[start:start+length], zero-filling whatever
// lies past the end of the region.
func readExtended(region []byte, start, length uint64) ([]byte, error) {
	if length > MaxReadSize {
		return nil, fmt.Errorf("read of %d bytes exceeds %d", length, MaxReadSize)
	}
	out := make([]byte, length)
	avail := uint64(len(region))
	if start < avail {
		n := avail - start
		if n > length {
			n = length
		}
		copy(out, region[start:start+n])
	}
	return out, nil
}
