package session

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	evminspector "github.com/wippyai/evm-inspector"
	"github.com/wippyai/evm-inspector/codec"
	"github.com/wippyai/evm-inspector/errors"
	"github.com/wippyai/evm-inspector/state"
	"github.com/wippyai/evm-inspector/types"
	"github.com/wippyai/evm-inspector/value"
)

// Session drives decode steps against a pair of data sources. Either
// source may be nil: without bytes a decode falls back to the snapshot
// carried by ExecInfo, without codes every contract decodes as unknown.
type Session struct {
	bytes evminspector.ByteSource
	codes evminspector.CodeSource
}

// New builds a session over the given sources.
func New(bytes evminspector.ByteSource, codes evminspector.CodeSource) *Session {
	return &Session{bytes: bytes, codes: codes}
}

// DecodeValue decodes the value of type typ at ptr, running the step
// machine to completion. The returned error is a driver-level failure
// (context cancellation); decode failures come back inside the result.
func (s *Session) DecodeValue(ctx context.Context, typ types.Type, ptr state.Pointer, info *codec.ExecInfo, opts codec.Options) (value.Result, error) {
	return s.run(ctx, codec.DecodeValue(typ, ptr, info, opts), byteSourceFor(s.bytes, info))
}

// Variable names one slot of machine state to decode.
type Variable struct {
	Name string
	Type types.Type
	Ptr  state.Pointer
}

// DecodedVariable pairs a variable name with its decode result.
type DecodedVariable struct {
	Name   string
	Result value.Result
}

// DecodeVariables decodes a list of variables in order. Failed slots
// decode to error results and the rest of the list still decodes. Under
// Options.StrictABI the first fatal failure stops the batch: the slots
// decoded so far, the failed one included, come back together with the
// fatal error.
func (s *Session) DecodeVariables(ctx context.Context, vars []Variable, info *codec.ExecInfo, opts codec.Options) ([]DecodedVariable, error) {
	bytes := byteSourceFor(s.bytes, info)
	out := make([]DecodedVariable, 0, len(vars))
	for _, v := range vars {
		res, err := s.run(ctx, codec.DecodeValue(v.Type, v.Ptr, info, opts), bytes)
		if err != nil {
			return out, err
		}
		out = append(out, DecodedVariable{Name: v.Name, Result: res})
		if er, ok := res.(value.ErrorResult); ok && errors.IsFatal(er.Err) {
			Logger().Debug("decode aborted",
				zap.String("variable", v.Name),
				zap.String("type", v.Type.String()))
			return out, er.Err
		}
	}
	return out, nil
}

func (s *Session) run(ctx context.Context, step *codec.Step, bytes evminspector.ByteSource) (value.Result, error) {
	for !step.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch req := step.Request.(type) {
		case codec.BytesRequest:
			step = step.Resume(readBytes(bytes, req.Pointer))
		case codec.CodeRequest:
			step = step.Resume(codec.Answer{Data: s.fetchCode(ctx, req.Address)})
		default:
			return nil, errors.InvalidInput(errors.PhaseDecode, fmt.Sprintf("unanswerable request %v", step.Request))
		}
	}
	return step.Result, nil
}

// fetchCode maps every failure to absent code. An address whose code
// cannot be fetched decodes as an unknown contract, not as an error.
func (s *Session) fetchCode(ctx context.Context, address common.Address) []byte {
	if s.codes == nil {
		return nil
	}
	code, err := s.codes.CodeAt(ctx, address)
	if err != nil {
		Logger().Warn("code fetch failed",
			zap.String("address", address.Hex()),
			zap.Error(err))
		return nil
	}
	return code
}

func readBytes(src evminspector.ByteSource, ptr state.Pointer) codec.Answer {
	if src == nil {
		return codec.Answer{Err: errors.InvalidInput(errors.PhaseRead, "session has no byte source")}
	}
	data, err := src.ReadRange(ptr)
	return codec.Answer{Data: data, Err: err}
}

// byteSourceFor prefers the session's own byte source and falls back to
// the snapshot carried by info.
func byteSourceFor(src evminspector.ByteSource, info *codec.ExecInfo) evminspector.ByteSource {
	if src != nil {
		return src
	}
	if info != nil && info.State != nil {
		return info.State
	}
	return nil
}
