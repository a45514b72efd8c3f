package codec

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/wippyai/evm-inspector/state"
	"github.com/wippyai/evm-inspector/value"
)

// StepStatus reports whether a decode step is waiting on its driver or
// has produced a result.
type StepStatus int

const (
	StepSuspended StepStatus = iota // waiting on Request, call Resume
	StepDone                        // Result is available
)

// Step is one state of a resumable decode. A suspended step carries
// the Request it is blocked on; a done step carries the Result. Steps
// are immutable: Resume returns the next step rather than advancing in
// place.
type Step struct {
	Status  StepStatus
	Result  value.Result
	Request Request

	resume func(Answer) *Step
}

func stepDone(r value.Result) *Step {
	return &Step{Status: StepDone, Result: r}
}

func stepSuspend(req Request, k func(Answer) *Step) *Step {
	return &Step{Status: StepSuspended, Request: req, resume: k}
}

// Done reports whether the decode has finished.
func (s *Step) Done() bool {
	return s.Status == StepDone
}

// Resume answers the pending request and advances the decode to its
// next suspension point or to completion. Resuming a finished step
// returns it unchanged.
func (s *Step) Resume(ans Answer) *Step {
	if s.Status == StepDone || s.resume == nil {
		return s
	}
	return s.resume(ans)
}

// Request is what a suspended decode needs from its driver. The set of
// implementations is closed: BytesRequest and CodeRequest.
type Request interface {
	isRequest()
	String() string
}

// BytesRequest asks for the raw bytes the pointer names. Issued once
// per decode, at entry.
type BytesRequest struct {
	Pointer state.Pointer
}

func (BytesRequest) isRequest() {}

func (r BytesRequest) String() string { return "bytes at " + r.Pointer.String() }

// CodeRequest asks for the deployed bytecode at an address. Issued
// while decoding contract and external function values.
type CodeRequest struct {
	Address common.Address
}

func (CodeRequest) isRequest() {}

func (r CodeRequest) String() string { return "code at " + r.Address.Hex() }

// Answer carries the driver's response to a Request. A non-nil Err
// means the request could not be served; Data is ignored then.
type Answer struct {
	Data []byte
	Err  error
}
