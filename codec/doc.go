// Package codec implements the value decoder: it turns a type
// descriptor plus a pointer into execution state into a decoded value,
// applying the padding and range rules the ABI encoding mandates for
// each type class.
//
// Decoding is expressed as a resumable computation. DecodeValue does
// not touch any byte source itself; it returns a Step that is either
// done or suspended on a Request (raw bytes for a pointer, or deployed
// code for an address). The driver answers the request and calls
// Resume, repeating until the step reports done. This keeps the
// decoder free of I/O and makes every fetch observable and
// deterministic:
//
//	step := codec.DecodeValue(typ, ptr, info, opts)
//	for !step.Done() {
//	    data, err := answer(step.Request)
//	    step = step.Resume(codec.Answer{Data: data, Err: err})
//	}
//	result := step.Result
//
// Failures follow one of two policies. By default a slot that cannot
// be decoded becomes a value.ErrorResult and the computation still
// completes, so enclosing structures keep their other members. With
// Options.StrictABI set, any failure is marked fatal and the driver is
// expected to abandon the whole decode once it sees one.
//
// # Key Types
//
//   - Step, Request, Answer: the suspension protocol
//   - ExecInfo: the read-only context a decode runs against
//   - Options: padding and strictness policy, defaults all false
package codec
