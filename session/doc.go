// Package session provides the high-level API for decoding values against
// data sources.
//
// # Quick Start
//
//	snap := &state.Snapshot{Stack: [][]byte{word}}
//	sess := session.New(snap, nil)
//
//	res, err := sess.DecodeValue(ctx, types.UintType{Bits: 256},
//	    state.StackPointer{}, &codec.ExecInfo{State: snap}, codec.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res)
//
// # Code Sources
//
// Contract and external function decoding asks for the bytecode deployed at
// an address. Three implementations cover the common setups:
//
//	StaticCodeSource   - fixed address-to-code map, for tests and replays
//	RPCCodeSource      - eth_getCode against a live node
//	CachedCodeSource   - LRU cache wrapped around another source
//
// A nil CodeSource is valid: every address decodes as an unknown contract.
// Fetch failures are treated the same way and never fail the decode.
//
// # Cancellation
//
// The session checks ctx between steps, so a decode blocked on a slow code
// fetch stops promptly once the context is canceled.
//
// # Concurrency
//
// A Session is owned by a single goroutine. Sessions are cheap; create one
// per concurrent decode against the same snapshot and registries.
package session
