package value

import (
	"github.com/wippyai/evm-inspector/errors"
	"github.com/wippyai/evm-inspector/types"
)

// ErrorResult carries a decoding failure in value position. Under the
// default policy a slot that cannot be interpreted becomes an
// ErrorResult instead of aborting the decode, so the rest of the
// structure still comes out.
type ErrorResult struct {
	Of  types.Type
	Err *errors.Error
}

func (ErrorResult) isResult()          {}
func (v ErrorResult) Type() types.Type { return v.Of }
func (v ErrorResult) String() string   { return "<error: " + v.Err.Error() + ">" }

// Erroneous wraps err as an ErrorResult for the given type.
func Erroneous(of types.Type, err *errors.Error) ErrorResult {
	return ErrorResult{Of: of, Err: err}
}
