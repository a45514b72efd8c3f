// Package types defines the ABI type descriptors the decoder operates on.
//
// A Type describes the ABI-level shape of a single value slot: elementary
// types (bool, uintN, intN, address, bytesN, bytes, string, function) plus
// the user-defined forms (contract, enum) that need a Registry to resolve
// their definitions. Descriptors are plain data; they carry no decoding
// logic themselves.
//
// # Key Types
//
//   - Type: closed descriptor interface (sealed, one struct per ABI class)
//   - ContractClass: identity and kind of a known contract type
//   - Registry: lookup for user-defined enum and contract definitions
//
// Descriptors for enums come in two forms: a reference (Options nil, only
// ID set) and a full definition (Options populated). Registry.ResolveEnum
// upgrades references to definitions.
package types
