// Package evminspector provides decoding of EVM machine state into typed values.
//
// This library reads raw words out of a captured machine state (stack, memory,
// storage, calldata) and interprets them according to Solidity's ABI value
// types, producing results that stay usable even when the underlying data is
// malformed.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	evminspector/        Root package with core ByteSource and CodeSource interfaces
//	├── session/         High-level API for driving decodes against data sources
//	├── codec/           Value decoding and the suspend/resume step machine
//	├── value/           Decoded result types with display formatting
//	├── types/           ABI value types and the user-defined type registry
//	├── state/           Machine state snapshots and typed data pointers
//	├── contexts/        Contract recognition and method metadata
//	├── bytecode/        Deployed bytecode normalization and fingerprinting
//	└── errors/          Structured error types for decode failures
//
// # Quick Start
//
// Decode a stack word against a captured snapshot:
//
//	snap := &state.Snapshot{Stack: [][]byte{word}}
//
//	sess := session.New(snap, nil)
//	res, err := sess.DecodeValue(ctx, types.UintType{Bits: 8},
//	    state.StackPointer{}, &codec.ExecInfo{State: snap}, codec.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res) // "5"
//
// # Decoding Model
//
// Decoding never touches data sources directly. codec.DecodeValue returns a
// *codec.Step that either carries a finished result or suspends with a request
// for bytes or for contract code; the caller answers the request and resumes.
// The session package runs this loop against a ByteSource and a CodeSource,
// but any driver can: a debugger may pause mid-decode, batch requests, or
// replay them from a transcript.
//
// # Failure Policy
//
// By default a failed decode produces a value.ErrorResult in place of the
// value and decoding continues around it. codec.Options tightens or loosens
// this: StrictABI marks failures fatal so drivers abort, PermissivePadding
// accepts nonzero padding where the ABI would reject it. Malformed UTF-8 in
// strings is never a failure; it decodes to a value carrying the raw bytes.
//
// # Thread Safety
//
// Registries and snapshots are safe for concurrent readers once populated.
// A Step chain and a Session are owned by a single goroutine; run parallel
// decodes with parallel sessions.
package evminspector
