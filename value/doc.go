// Package value defines the decoded forms produced by the inspector.
//
// Every decode produces a Result. A Result is either one of the concrete
// value kinds in this package (Bool, Uint, Address, Enum, ...) or an
// ErrorResult wrapping a structured error for the portion of the data
// that could not be interpreted. Containers embed ErrorResults in place
// of their broken elements, so one bad slot never discards its siblings.
//
// # Key Types
//
//   - Result: sealed interface implemented by every decoded form
//   - ErrorResult: a decoding failure carried as a value
//   - Contract: an address paired with the class it was matched to
//   - ExternalFunction, InternalFunction: function pointers at
//     several levels of resolution, from fully identified down to
//     raw program counters
//
// String methods render the payload alone, without the type: callers
// that want "uint8: 5" print the Type and the value separately.
package value
