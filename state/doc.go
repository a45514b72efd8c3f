// Package state models the frozen EVM execution state a decode session
// reads from: the stack, memory, calldata, code and touched storage of a
// single frame, plus the typed pointers that address ranges within them.
//
// # Key Types
//
//   - Pointer: sealed address-of-a-range sum (stack, memory, calldata,
//     code, storage)
//   - Snapshot: the frame's data regions, immutable during a session
//
// Reads follow EVM semantics: memory, calldata and code reads past the end
// of the region zero-extend, and absent storage slots read as zero words.
// Only stack reads can fail, when the addressed words do not exist.
package state
