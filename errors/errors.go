package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRead    Phase = "read"    // byte-source reads
	PhaseDecode  Phase = "decode"  // value interpretation
	PhaseResolve Phase = "resolve" // registry and definition lookups
	PhaseLoad    Phase = "load"    // artifact and snapshot loading
)

// Kind categorizes the error
type Kind string

const (
	KindUnreadable   Kind = "unreadable"
	KindPadding      Kind = "padding"
	KindOutOfRange   Kind = "out_of_range"
	KindNotFound     Kind = "not_found"
	KindUnsupported  Kind = "unsupported"
	KindMalformed    Kind = "malformed"
	KindPolicy       Kind = "policy"
	KindInvalidInput Kind = "invalid_input"
	KindInvalidData  Kind = "invalid_data"
)

// Error is the structured error type used throughout the inspector.
// Fatal errors abort the whole decode they occur in; non-fatal ones are
// carried in error-typed results next to ordinary values.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string // ABI type being decoded, e.g. "uint8"
	Detail string
	Bytes  []byte // offending raw bytes, when meaningful
	Path   []string
	Fatal  bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsFatal reports whether err or anything it wraps is a fatal decode
// error.
func IsFatal(err error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Fatal {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// MakeFatal marks e fatal and returns it.
func MakeFatal(e *Error) *Error {
	e.Fatal = true
	return e
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the variable path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the ABI type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Bytes sets the offending raw bytes
func (b *Builder) Bytes(data []byte) *Builder {
	b.err.Bytes = data
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Fatal marks the error as aborting the whole decode
func (b *Builder) Fatal() *Builder {
	b.err.Fatal = true
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Unreadable creates a read failure error for a data location
func Unreadable(location string, cause error) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindUnreadable,
		Detail: fmt.Sprintf("cannot read %s", location),
		Cause:  cause,
	}
}

// Padding creates a padding violation error carrying the raw word
func Padding(abiType string, word []byte, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindPadding,
		Type:   abiType,
		Bytes:  word,
		Detail: detail,
	}
}

// OutOfRange creates an error for a numeric outside its type's domain
func OutOfRange(abiType string, value any, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOutOfRange,
		Type:   abiType,
		Value:  value,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Malformed creates an error for structurally invalid data
func Malformed(abiType string, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformed,
		Type:   abiType,
		Detail: detail,
	}
}

// Policy creates an error for a decode rejected by the active options
func Policy(abiType string, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindPolicy,
		Type:   abiType,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Load creates an artifact loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
