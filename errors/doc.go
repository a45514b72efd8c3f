// Package errors provides the structured error types used across the
// inspector.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). The Error type includes rich context: the ABI type
// being decoded, the variable path, the offending bytes, and a cause
// chain. A Fatal error aborts an entire decode; non-fatal errors surface
// as error-typed results alongside successfully decoded values.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindPadding).
//		Path("msg", "sender").
//		Type("uint8").
//		Bytes(word).
//		Detail("nonzero padding byte at offset %d", 30).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unreadable("stack[4..4]", cause)
//	err := errors.OutOfRange("bool", numeric, "numeric above 1")
//
// All errors implement the standard error interface and support
// errors.Is/As.
package errors
