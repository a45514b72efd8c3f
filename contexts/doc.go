// Package contexts holds what the decoder knows about compiled contracts:
// per-class binaries with their method interfaces and internal function
// jump tables, and a registry that recognizes on-chain code by
// fingerprint.
//
// # Key Types
//
//   - Context: one compiled binary (deployed or constructor) with its
//     class, selector table and jump table
//   - Registry: fingerprint lookup from observed code to a Context
//   - Selector: four-byte method selector
//   - JumpTable: program counter to internal function mapping
//
// Matching masks the byte ranges the compiler leaves unstable (link
// references, immutables) and ignores the metadata trailer, so any
// deployment of a registered class is recognized. Constructor binaries
// match by prefix because deployment appends encoded constructor
// arguments to them.
package contexts
