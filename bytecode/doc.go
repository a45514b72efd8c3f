// Package bytecode provides the EVM binary primitives the contexts
// registry is built on: instruction scanning, the Solidity metadata
// trailer, and normalization of code for fingerprinting.
//
// # Key Operations
//
//   - Scan: decode deployed code into instructions, carrying PUSH payloads
//   - TrimMetadata / DecodeMetadata: split and parse the CBOR metadata
//     trailer the Solidity compiler appends to binaries
//   - Normalize: zero out link references and immutables and drop the
//     trailer, so two deployments of one class hash identically
package bytecode
