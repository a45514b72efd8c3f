package codec

import (
	"encoding/binary"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/wippyai/evm-inspector/contexts"
	inerr "github.com/wippyai/evm-inspector/errors"
	"github.com/wippyai/evm-inspector/state"
	"github.com/wippyai/evm-inspector/types"
	"github.com/wippyai/evm-inspector/value"
)

// word32 builds a 32-byte word holding the given bytes at its end.
func word32(tail ...byte) []byte {
	w := make([]byte, state.WordSize)
	copy(w[state.WordSize-len(tail):], tail)
	return w
}

// fill32 builds a 32-byte word of a single repeated byte.
func fill32(b byte) []byte {
	w := make([]byte, state.WordSize)
	for i := range w {
		w[i] = b
	}
	return w
}

// internalWord builds the word encoding of an internal function
// pointer: zero padding, then the constructor counter, then the
// deployed counter.
func internalWord(constructorPC, deployedPC uint32) []byte {
	w := make([]byte, state.WordSize)
	binary.BigEndian.PutUint32(w[24:], constructorPC)
	binary.BigEndian.PutUint32(w[28:], deployedPC)
	return w
}

// drive answers a decode's requests from snap and code until it
// completes.
func drive(t *testing.T, s *Step, snap *state.Snapshot, code map[common.Address][]byte) value.Result {
	t.Helper()
	for i := 0; !s.Done(); i++ {
		if i > 8 {
			t.Fatal("decode did not complete")
		}
		switch req := s.Request.(type) {
		case BytesRequest:
			data, err := snap.ReadRange(req.Pointer)
			s = s.Resume(Answer{Data: data, Err: err})
		case CodeRequest:
			s = s.Resume(Answer{Data: code[req.Address]})
		default:
			t.Fatalf("unexpected request %T", s.Request)
		}
	}
	return s.Result
}

// decodeWord decodes a single word placed in memory at offset zero.
func decodeWord(t *testing.T, typ types.Type, word []byte, info *ExecInfo, opts Options) value.Result {
	t.Helper()
	snap := &state.Snapshot{Memory: word}
	ptr := state.MemoryPointer{Start: 0, Length: uint64(len(word))}
	return drive(t, DecodeValue(typ, ptr, info, opts), snap, nil)
}

// wantErrorKind asserts that res is an error result of the given kind.
func wantErrorKind(t *testing.T, res value.Result, kind inerr.Kind) *inerr.Error {
	t.Helper()
	er, ok := res.(value.ErrorResult)
	if !ok {
		t.Fatalf("got %T (%s), want error result of kind %s", res, res, kind)
	}
	if er.Err.Kind != kind {
		t.Fatalf("error kind = %s, want %s (error: %s)", er.Err.Kind, kind, er.Err)
	}
	return er.Err
}

func TestDecodeUint(t *testing.T) {
	tests := []struct {
		name     string
		bits     int
		word     []byte
		opts     Options
		want     uint64
		wantRaw  uint64
		wantKind inerr.Kind
	}{
		{
			name: "uint8 value five",
			bits: 8, word: word32(0x05),
			want: 5, wantRaw: 5,
		},
		{
			name: "uint8 nonzero padding",
			bits: 8, word: word32(0x01, 0x05),
			wantKind: inerr.KindPadding,
		},
		{
			name: "uint8 permissive keeps low byte",
			bits: 8, word: word32(0x01, 0x05),
			opts: Options{PermissivePadding: true},
			want: 5, wantRaw: 0x0105,
		},
		{
			name: "uint16 two bytes",
			bits: 16, word: word32(0x01, 0x05),
			want: 0x0105, wantRaw: 0x0105,
		},
		{
			name: "uint64 max",
			bits: 64, word: word32(0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff),
			want: ^uint64(0), wantRaw: ^uint64(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := decodeWord(t, types.UintType{Bits: tt.bits}, tt.word, nil, tt.opts)
			if tt.wantKind != "" {
				wantErrorKind(t, res, tt.wantKind)
				return
			}
			v, ok := res.(value.Uint)
			if !ok {
				t.Fatalf("got %T (%s), want value.Uint", res, res)
			}
			if v.Value.Uint64() != tt.want {
				t.Errorf("Value = %s, want %d", v.Value.Dec(), tt.want)
			}
			if v.Raw.Uint64() != tt.wantRaw {
				t.Errorf("Raw = %s, want %d", v.Raw.Dec(), tt.wantRaw)
			}
		})
	}

	t.Run("uint256 uses the whole word", func(t *testing.T) {
		word := fill32(0xab)
		res := decodeWord(t, types.UintType{Bits: 256}, word, nil, Options{})
		v, ok := res.(value.Uint)
		if !ok {
			t.Fatalf("got %T, want value.Uint", res)
		}
		want := new(uint256.Int).SetBytes(word)
		if !v.Value.Eq(want) {
			t.Errorf("Value = %s, want %s", v.Value.Dec(), want.Dec())
		}
		if !v.Raw.Eq(want) {
			t.Errorf("Raw = %s, want %s", v.Raw.Dec(), want.Dec())
		}
	})
}

func TestDecodeInt(t *testing.T) {
	tests := []struct {
		name     string
		bits     int
		word     []byte
		opts     Options
		want     int64
		wantRaw  int64
		wantKind inerr.Kind
	}{
		{
			name: "int8 minus one",
			bits: 8, word: fill32(0xff),
			want: -1, wantRaw: -1,
		},
		{
			name: "int8 positive",
			bits: 8, word: word32(0x7f),
			want: 127, wantRaw: 127,
		},
		{
			name: "int8 negative without sign extension",
			bits: 8, word: word32(0x80),
			wantKind: inerr.KindPadding,
		},
		{
			name: "int8 positive with ff padding",
			bits: 8, word: func() []byte { w := fill32(0xff); w[31] = 0x7f; return w }(),
			wantKind: inerr.KindPadding,
		},
		{
			name: "int8 permissive sign extends the low byte",
			bits: 8, word: word32(0x80),
			opts: Options{PermissivePadding: true},
			want: -128, wantRaw: 128,
		},
		{
			name: "int16 negative",
			bits: 16, word: func() []byte { w := fill32(0xff); w[31] = 0x38; return w }(),
			want: -200, wantRaw: -200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := decodeWord(t, types.IntType{Bits: tt.bits}, tt.word, nil, tt.opts)
			if tt.wantKind != "" {
				wantErrorKind(t, res, tt.wantKind)
				return
			}
			v, ok := res.(value.Int)
			if !ok {
				t.Fatalf("got %T (%s), want value.Int", res, res)
			}
			if v.Value.Cmp(big.NewInt(tt.want)) != 0 {
				t.Errorf("Value = %s, want %d", v.Value, tt.want)
			}
			if v.Raw.Cmp(big.NewInt(tt.wantRaw)) != 0 {
				t.Errorf("Raw = %s, want %d", v.Raw, tt.wantRaw)
			}
		})
	}

	t.Run("int256 sign interprets the whole word", func(t *testing.T) {
		res := decodeWord(t, types.IntType{Bits: 256}, fill32(0xff), nil, Options{})
		v, ok := res.(value.Int)
		if !ok {
			t.Fatalf("got %T, want value.Int", res)
		}
		if v.Value.Cmp(big.NewInt(-1)) != 0 {
			t.Errorf("Value = %s, want -1", v.Value)
		}
	})
}

func TestDecodeBool(t *testing.T) {
	tests := []struct {
		name     string
		word     []byte
		opts     Options
		want     bool
		wantKind inerr.Kind
	}{
		{name: "false", word: word32(), want: false},
		{name: "true", word: word32(0x01), want: true},
		{name: "numeric two", word: word32(0x02), wantKind: inerr.KindOutOfRange},
		{name: "nonzero padding", word: word32(0x01, 0x00), wantKind: inerr.KindPadding},
		{
			name: "padding checked even when permissive",
			word: word32(0x01, 0x01),
			opts: Options{PermissivePadding: true},
			wantKind: inerr.KindPadding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := decodeWord(t, types.BoolType{}, tt.word, nil, tt.opts)
			if tt.wantKind != "" {
				wantErrorKind(t, res, tt.wantKind)
				return
			}
			v, ok := res.(value.Bool)
			if !ok {
				t.Fatalf("got %T (%s), want value.Bool", res, res)
			}
			if v.Value != tt.want {
				t.Errorf("Value = %v, want %v", v.Value, tt.want)
			}
		})
	}

	t.Run("range failure reports the numeric", func(t *testing.T) {
		res := decodeWord(t, types.BoolType{}, word32(0x02), nil, Options{})
		err := wantErrorKind(t, res, inerr.KindOutOfRange)
		if got, ok := err.Value.(uint64); !ok || got != 2 {
			t.Errorf("error Value = %v, want 2", err.Value)
		}
	})
}

func TestDecodeAddress(t *testing.T) {
	addr := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	word := make([]byte, state.WordSize)
	copy(word[12:], addr.Bytes())

	t.Run("well formed", func(t *testing.T) {
		res := decodeWord(t, types.AddressType{}, word, nil, Options{})
		v, ok := res.(value.Address)
		if !ok {
			t.Fatalf("got %T (%s), want value.Address", res, res)
		}
		if v.Value != addr {
			t.Errorf("Value = %s, want %s", v.Value.Hex(), addr.Hex())
		}
	})

	t.Run("nonzero padding", func(t *testing.T) {
		bad := make([]byte, state.WordSize)
		copy(bad, word)
		bad[0] = 0x01
		wantErrorKind(t, decodeWord(t, types.AddressType{}, bad, nil, Options{}), inerr.KindPadding)
	})

	t.Run("permissive ignores padding", func(t *testing.T) {
		bad := make([]byte, state.WordSize)
		copy(bad, word)
		bad[0] = 0x01
		res := decodeWord(t, types.AddressType{}, bad, nil, Options{PermissivePadding: true})
		v, ok := res.(value.Address)
		if !ok {
			t.Fatalf("got %T, want value.Address", res)
		}
		if v.Value != addr {
			t.Errorf("Value = %s, want %s", v.Value.Hex(), addr.Hex())
		}
	})
}

func TestDecodeFixedBytes(t *testing.T) {
	word := make([]byte, state.WordSize)
	copy(word, []byte{0xde, 0xad, 0xbe, 0xef})

	t.Run("well formed", func(t *testing.T) {
		res := decodeWord(t, types.FixedBytesType{Size: 4}, word, nil, Options{})
		v, ok := res.(value.FixedBytes)
		if !ok {
			t.Fatalf("got %T (%s), want value.FixedBytes", res, res)
		}
		if v.String() != "0xdeadbeef" {
			t.Errorf("Value = %s, want 0xdeadbeef", v)
		}
	})

	t.Run("nonzero byte past the value", func(t *testing.T) {
		bad := make([]byte, state.WordSize)
		copy(bad, word)
		bad[4] = 0x01
		wantErrorKind(t, decodeWord(t, types.FixedBytesType{Size: 4}, bad, nil, Options{}), inerr.KindPadding)
	})

	t.Run("permissive truncates", func(t *testing.T) {
		bad := make([]byte, state.WordSize)
		copy(bad, word)
		bad[4] = 0x01
		res := decodeWord(t, types.FixedBytesType{Size: 4}, bad, nil, Options{PermissivePadding: true})
		v, ok := res.(value.FixedBytes)
		if !ok {
			t.Fatalf("got %T, want value.FixedBytes", res)
		}
		if v.String() != "0xdeadbeef" {
			t.Errorf("Value = %s, want 0xdeadbeef", v)
		}
	})
}

func TestDecodeBytesAndString(t *testing.T) {
	t.Run("dynamic bytes pass through", func(t *testing.T) {
		data := []byte{0x00, 0x01, 0x02, 0xff}
		res := decodeWord(t, types.BytesType{}, data, nil, Options{})
		v, ok := res.(value.Bytes)
		if !ok {
			t.Fatalf("got %T (%s), want value.Bytes", res, res)
		}
		if v.String() != "0x000102ff" {
			t.Errorf("Value = %s, want 0x000102ff", v)
		}
	})

	t.Run("valid string", func(t *testing.T) {
		res := decodeWord(t, types.StringType{}, []byte("hello"), nil, Options{})
		v, ok := res.(value.String)
		if !ok {
			t.Fatalf("got %T (%s), want value.String", res, res)
		}
		if !v.Valid() || v.Value != "hello" {
			t.Errorf("got %q (valid=%v), want hello", v.Value, v.Valid())
		}
	})

	t.Run("lone continuation byte is malformed, not an error", func(t *testing.T) {
		res := decodeWord(t, types.StringType{}, []byte{0x80}, nil, Options{})
		v, ok := res.(value.String)
		if !ok {
			t.Fatalf("got %T (%s), want value.String", res, res)
		}
		if v.Valid() {
			t.Error("invalid UTF-8 should not be valid")
		}
		if v.String() != "malformed 0x80" {
			t.Errorf("String() = %q, want %q", v.String(), "malformed 0x80")
		}
	})

	t.Run("malformed under strict is still a value", func(t *testing.T) {
		res := decodeWord(t, types.StringType{}, []byte{0x80}, nil, Options{StrictABI: true})
		if _, ok := res.(value.String); !ok {
			t.Fatalf("got %T, want value.String even under strict decoding", res)
		}
	})
}

func TestDecodeEnum(t *testing.T) {
	reg := types.NewRegistry()
	if err := reg.AddEnum(&types.EnumType{ID: "e1", Name: "Color", Options: []string{"Red", "Green", "Blue"}}); err != nil {
		t.Fatal(err)
	}
	info := &ExecInfo{UserTypes: reg}
	ref := types.EnumType{ID: "e1", Name: "Color"}

	t.Run("resolves a reference form", func(t *testing.T) {
		res := decodeWord(t, ref, word32(0x01), info, Options{})
		v, ok := res.(value.Enum)
		if !ok {
			t.Fatalf("got %T (%s), want value.Enum", res, res)
		}
		if v.Index != 1 || v.Option != "Green" {
			t.Errorf("got index %d option %q, want 1 Green", v.Index, v.Option)
		}
	})

	t.Run("already resolved form needs no registry", func(t *testing.T) {
		full := types.EnumType{ID: "e1", Name: "Color", Options: []string{"Red", "Green", "Blue"}}
		res := decodeWord(t, full, word32(0x02), nil, Options{})
		v, ok := res.(value.Enum)
		if !ok {
			t.Fatalf("got %T (%s), want value.Enum", res, res)
		}
		if v.Option != "Blue" {
			t.Errorf("Option = %q, want Blue", v.Option)
		}
	})

	t.Run("index at the option count", func(t *testing.T) {
		wantErrorKind(t, decodeWord(t, ref, word32(0x03), info, Options{}), inerr.KindOutOfRange)
	})

	t.Run("unknown definition", func(t *testing.T) {
		missing := types.EnumType{ID: "nope", Name: "Ghost"}
		wantErrorKind(t, decodeWord(t, missing, word32(0x00), info, Options{}), inerr.KindNotFound)
	})

	t.Run("nonzero padding", func(t *testing.T) {
		wantErrorKind(t, decodeWord(t, ref, word32(0x01, 0x00), info, Options{}), inerr.KindPadding)
	})

	t.Run("permissive uses the minimal bytes", func(t *testing.T) {
		res := decodeWord(t, ref, word32(0x01, 0x02), info, Options{PermissivePadding: true})
		v, ok := res.(value.Enum)
		if !ok {
			t.Fatalf("got %T (%s), want value.Enum", res, res)
		}
		if v.Option != "Blue" {
			t.Errorf("Option = %q, want Blue", v.Option)
		}
	})

	t.Run("two byte index", func(t *testing.T) {
		opts := make([]string, 257)
		for i := range opts {
			opts[i] = "opt"
		}
		opts[256] = "last"
		wide := types.EnumType{ID: "e2", Name: "Wide", Options: opts}
		res := decodeWord(t, wide, word32(0x01, 0x00), nil, Options{})
		v, ok := res.(value.Enum)
		if !ok {
			t.Fatalf("got %T (%s), want value.Enum", res, res)
		}
		if v.Index != 256 || v.Option != "last" {
			t.Errorf("got index %d option %q, want 256 last", v.Index, v.Option)
		}
	})
}

func TestDecodeFixedUnsupported(t *testing.T) {
	for _, typ := range []types.Type{
		types.FixedType{Bits: 128, Places: 18},
		types.UfixedType{Bits: 128, Places: 18},
	} {
		t.Run(typ.String(), func(t *testing.T) {
			err := wantErrorKind(t, decodeWord(t, typ, word32(), nil, Options{}), inerr.KindUnsupported)
			if inerr.IsFatal(err) {
				t.Error("default policy should not mark the error fatal")
			}
		})
	}
}

func TestDecodeUnreadable(t *testing.T) {
	snap := &state.Snapshot{Stack: [][]byte{}}
	ptr := state.StackPointer{From: 0, To: 0}

	res := drive(t, DecodeValue(types.UintType{Bits: 8}, ptr, nil, Options{}), snap, nil)
	err := wantErrorKind(t, res, inerr.KindUnreadable)
	if err.Phase != inerr.PhaseRead {
		t.Errorf("Phase = %s, want %s", err.Phase, inerr.PhaseRead)
	}
	if _, ok := res.Type().(types.UintType); !ok {
		t.Errorf("error result Type() = %T, want the requested type", res.Type())
	}
}

func TestStrictFailuresAreFatal(t *testing.T) {
	strict := Options{StrictABI: true}

	t.Run("padding failure", func(t *testing.T) {
		res := decodeWord(t, types.UintType{Bits: 8}, word32(0x01, 0x05), nil, strict)
		err := wantErrorKind(t, res, inerr.KindPadding)
		if !inerr.IsFatal(err) {
			t.Error("strict padding failure should be fatal")
		}
	})

	t.Run("read failure", func(t *testing.T) {
		snap := &state.Snapshot{}
		res := drive(t, DecodeValue(types.BoolType{}, state.StackPointer{From: 2, To: 2}, nil, strict), snap, nil)
		err := wantErrorKind(t, res, inerr.KindUnreadable)
		if !inerr.IsFatal(err) {
			t.Error("strict read failure should be fatal")
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		res := decodeWord(t, types.FixedType{Bits: 128, Places: 18}, word32(), nil, strict)
		if !inerr.IsFatal(wantErrorKind(t, res, inerr.KindUnsupported)) {
			t.Error("strict unsupported failure should be fatal")
		}
	})

	t.Run("default policy is not fatal", func(t *testing.T) {
		res := decodeWord(t, types.UintType{Bits: 8}, word32(0x01, 0x05), nil, Options{})
		if inerr.IsFatal(wantErrorKind(t, res, inerr.KindPadding)) {
			t.Error("default policy should not mark errors fatal")
		}
	})
}

func TestStepResume(t *testing.T) {
	done := stepDone(value.Bool{Of: types.BoolType{}, Value: true})
	if got := done.Resume(Answer{}); got != done {
		t.Error("resuming a finished step should return it unchanged")
	}

	step := DecodeValue(types.BoolType{}, state.StackPointer{From: 0, To: 0}, nil, Options{})
	if step.Done() {
		t.Fatal("decode should suspend before producing a result")
	}
	req, ok := step.Request.(BytesRequest)
	if !ok {
		t.Fatalf("first request = %T, want BytesRequest", step.Request)
	}
	if req.String() != "bytes at stack[0..0]" {
		t.Errorf("request String() = %q", req.String())
	}
}

func TestDecodeContract(t *testing.T) {
	token := &types.ContractClass{ID: "c1", Name: "Token", Kind: types.KindContract}
	bin := []byte{0x60, 0x80, 0x60, 0x40, 0x52, 0x00}
	reg := contexts.NewRegistry()
	if err := reg.Add(&contexts.Context{Class: token, Binary: bin}); err != nil {
		t.Fatal(err)
	}
	info := &ExecInfo{Contexts: reg}

	addr := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	word := make([]byte, state.WordSize)
	copy(word[12:], addr.Bytes())
	typ := types.ContractType{Class: token}

	decode := func(t *testing.T, code map[common.Address][]byte, opts Options) value.Result {
		t.Helper()
		snap := &state.Snapshot{Memory: word}
		ptr := state.MemoryPointer{Start: 0, Length: state.WordSize}
		return drive(t, DecodeValue(typ, ptr, info, opts), snap, code)
	}

	t.Run("recognized code", func(t *testing.T) {
		res := decode(t, map[common.Address][]byte{addr: bin}, Options{})
		v, ok := res.(value.Contract)
		if !ok {
			t.Fatalf("got %T (%s), want value.Contract", res, res)
		}
		if !v.Known() || v.Class.Name != "Token" {
			t.Errorf("got class %v, want Token", v.Class)
		}
		if v.Address != addr {
			t.Errorf("Address = %s, want %s", v.Address.Hex(), addr.Hex())
		}
	})

	t.Run("unrecognized code", func(t *testing.T) {
		res := decode(t, map[common.Address][]byte{addr: {0x00}}, Options{})
		v, ok := res.(value.Contract)
		if !ok {
			t.Fatalf("got %T (%s), want value.Contract", res, res)
		}
		if v.Known() {
			t.Errorf("class = %v, want unknown", v.Class)
		}
	})

	t.Run("no code at address", func(t *testing.T) {
		res := decode(t, nil, Options{})
		if v := res.(value.Contract); v.Known() {
			t.Errorf("class = %v, want unknown", v.Class)
		}
	})

	t.Run("failed fetch is still a value", func(t *testing.T) {
		snap := &state.Snapshot{Memory: word}
		ptr := state.MemoryPointer{Start: 0, Length: state.WordSize}
		s := DecodeValue(typ, ptr, info, Options{})
		data, err := snap.ReadRange(ptr)
		s = s.Resume(Answer{Data: data, Err: err})
		if _, ok := s.Request.(CodeRequest); !ok {
			t.Fatalf("second request = %T, want CodeRequest", s.Request)
		}
		s = s.Resume(Answer{Err: errors.New("node unreachable")})
		if !s.Done() {
			t.Fatal("decode should finish after the code answer")
		}
		v, ok := s.Result.(value.Contract)
		if !ok {
			t.Fatalf("got %T (%s), want value.Contract", s.Result, s.Result)
		}
		if v.Known() {
			t.Error("a failed fetch should decode as an unknown contract")
		}
	})

	t.Run("nonzero padding", func(t *testing.T) {
		bad := make([]byte, state.WordSize)
		copy(bad, word)
		bad[0] = 0x01
		snap := &state.Snapshot{Memory: bad}
		ptr := state.MemoryPointer{Start: 0, Length: state.WordSize}
		res := drive(t, DecodeValue(typ, ptr, info, Options{}), snap, nil)
		wantErrorKind(t, res, inerr.KindPadding)
	})
}

func TestDecodeExternalFunction(t *testing.T) {
	token := &types.ContractClass{ID: "c1", Name: "Token", Kind: types.KindContract}
	bin := []byte{0x60, 0x80, 0x60, 0x40, 0x52, 0x00}
	transfer := contexts.NewMethod("transfer(address,uint256)", contexts.Nonpayable)
	reg := contexts.NewRegistry()
	err := reg.Add(&contexts.Context{
		Class:   token,
		Binary:  bin,
		Methods: map[contexts.Selector]*contexts.Method{transfer.Selector: transfer},
	})
	if err != nil {
		t.Fatal(err)
	}
	info := &ExecInfo{Contexts: reg}

	addr := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	funcWord := func(sel contexts.Selector) []byte {
		w := make([]byte, state.WordSize)
		copy(w, addr.Bytes())
		copy(w[20:], sel[:])
		return w
	}
	typ := types.ExternalFunctionType{}

	decode := func(t *testing.T, word []byte, code map[common.Address][]byte, opts Options) value.Result {
		t.Helper()
		snap := &state.Snapshot{Memory: word}
		ptr := state.MemoryPointer{Start: 0, Length: state.WordSize}
		return drive(t, DecodeValue(typ, ptr, info, opts), snap, code)
	}
	code := map[common.Address][]byte{addr: bin}

	t.Run("known method", func(t *testing.T) {
		res := decode(t, funcWord(transfer.Selector), code, Options{})
		v, ok := res.(value.ExternalFunction)
		if !ok {
			t.Fatalf("got %T (%s), want value.ExternalFunction", res, res)
		}
		if v.Kind != value.ExternalKnown {
			t.Fatalf("Kind = %s, want known", v.Kind)
		}
		if v.Method.Name != "transfer" || v.Class.Name != "Token" {
			t.Errorf("got %s.%s, want Token.transfer", v.Class.Name, v.Method.Name)
		}
	})

	t.Run("selector not in the interface", func(t *testing.T) {
		res := decode(t, funcWord(contexts.Selector{0xde, 0xad, 0xbe, 0xef}), code, Options{})
		v, ok := res.(value.ExternalFunction)
		if !ok {
			t.Fatalf("got %T (%s), want value.ExternalFunction", res, res)
		}
		if v.Kind != value.ExternalInvalid {
			t.Errorf("Kind = %s, want invalid", v.Kind)
		}
		if v.Class == nil || v.Class.Name != "Token" {
			t.Errorf("Class = %v, want Token", v.Class)
		}
	})

	t.Run("unrecognized contract", func(t *testing.T) {
		res := decode(t, funcWord(transfer.Selector), nil, Options{})
		v, ok := res.(value.ExternalFunction)
		if !ok {
			t.Fatalf("got %T (%s), want value.ExternalFunction", res, res)
		}
		if v.Kind != value.ExternalUnknown {
			t.Errorf("Kind = %s, want unknown", v.Kind)
		}
		if v.Selector != transfer.Selector {
			t.Errorf("Selector = %s, want %s", v.Selector, transfer.Selector)
		}
	})

	t.Run("nonzero byte past the selector", func(t *testing.T) {
		bad := funcWord(transfer.Selector)
		bad[24] = 0x01
		wantErrorKind(t, decode(t, bad, code, Options{}), inerr.KindPadding)
	})

	t.Run("permissive ignores the trailing bytes", func(t *testing.T) {
		bad := funcWord(transfer.Selector)
		bad[24] = 0x01
		res := decode(t, bad, code, Options{PermissivePadding: true})
		v, ok := res.(value.ExternalFunction)
		if !ok {
			t.Fatalf("got %T (%s), want value.ExternalFunction", res, res)
		}
		if v.Kind != value.ExternalKnown {
			t.Errorf("Kind = %s, want known", v.Kind)
		}
	})
}

func TestDecodeInternalFunction(t *testing.T) {
	lib := &types.ContractClass{ID: "c2", Name: "Math", Kind: types.KindLibrary}
	table := contexts.JumpTable{
		0x100: {Name: "add", Mutability: contexts.Pure, Class: lib},
		0x040: {Name: "setup", Mutability: contexts.Nonpayable, Class: lib},
		0x020: {Name: "", IsDesignatedInvalid: true},
	}
	info := &ExecInfo{JumpTable: table}
	ctorInfo := &ExecInfo{JumpTable: table, InConstructor: true}
	typ := types.InternalFunctionType{}

	t.Run("no jump table yields unknown", func(t *testing.T) {
		res := decodeWord(t, typ, internalWord(5, 7), &ExecInfo{}, Options{})
		v, ok := res.(value.InternalFunction)
		if !ok {
			t.Fatalf("got %T (%s), want value.InternalFunction", res, res)
		}
		if v.Kind != value.InternalUnknown {
			t.Errorf("Kind = %s, want unknown", v.Kind)
		}
		if v.DeployedPC != 7 || v.ConstructorPC != 5 {
			t.Errorf("PCs = %d/%d, want 7/5", v.DeployedPC, v.ConstructorPC)
		}
	})

	t.Run("zero pair is the exception value", func(t *testing.T) {
		for _, in := range []*ExecInfo{info, ctorInfo} {
			res := decodeWord(t, typ, internalWord(0, 0), in, Options{})
			v, ok := res.(value.InternalFunction)
			if !ok {
				t.Fatalf("got %T (%s), want value.InternalFunction", res, res)
			}
			if v.Kind != value.InternalException {
				t.Errorf("Kind = %s, want exception (inConstructor=%v)", v.Kind, in.InConstructor)
			}
		}
	})

	t.Run("zero deployed counter with nonzero constructor counter", func(t *testing.T) {
		wantErrorKind(t, decodeWord(t, typ, internalWord(5, 0), info, Options{}), inerr.KindMalformed)
	})

	t.Run("deployed style pointer while constructing", func(t *testing.T) {
		wantErrorKind(t, decodeWord(t, typ, internalWord(0, 0x100), ctorInfo, Options{}), inerr.KindMalformed)
	})

	t.Run("known function by deployed counter", func(t *testing.T) {
		res := decodeWord(t, typ, internalWord(0x040, 0x100), info, Options{})
		v, ok := res.(value.InternalFunction)
		if !ok {
			t.Fatalf("got %T (%s), want value.InternalFunction", res, res)
		}
		if v.Kind != value.InternalKnown || v.Name != "add" {
			t.Errorf("got %s %q, want known add", v.Kind, v.Name)
		}
		if v.Mutability != contexts.Pure || v.DefinedIn != lib {
			t.Errorf("got %s in %v, want pure in Math", v.Mutability, v.DefinedIn)
		}
	})

	t.Run("constructor flag selects the constructor counter", func(t *testing.T) {
		res := decodeWord(t, typ, internalWord(0x040, 0x100), ctorInfo, Options{})
		v, ok := res.(value.InternalFunction)
		if !ok {
			t.Fatalf("got %T (%s), want value.InternalFunction", res, res)
		}
		if v.Name != "setup" {
			t.Errorf("Name = %q, want setup", v.Name)
		}
	})

	t.Run("counter not in the table", func(t *testing.T) {
		wantErrorKind(t, decodeWord(t, typ, internalWord(0, 0x999), info, Options{}), inerr.KindNotFound)
	})

	t.Run("designated invalid function is the exception value", func(t *testing.T) {
		res := decodeWord(t, typ, internalWord(0, 0x020), info, Options{})
		v, ok := res.(value.InternalFunction)
		if !ok {
			t.Fatalf("got %T (%s), want value.InternalFunction", res, res)
		}
		if v.Kind != value.InternalException {
			t.Errorf("Kind = %s, want exception", v.Kind)
		}
		if v.DeployedPC != 0x020 {
			t.Errorf("DeployedPC = %d, want 32", v.DeployedPC)
		}
	})

	t.Run("padding checked even when permissive", func(t *testing.T) {
		bad := internalWord(0, 0x100)
		bad[10] = 0x01
		res := decodeWord(t, typ, bad, info, Options{PermissivePadding: true})
		wantErrorKind(t, res, inerr.KindPadding)
	})

	t.Run("strict rejects before any other rule", func(t *testing.T) {
		// Even rule 1 does not apply: with no jump table at all the
		// strict policy still rejects.
		res := decodeWord(t, typ, internalWord(0, 0x100), &ExecInfo{}, Options{StrictABI: true})
		err := wantErrorKind(t, res, inerr.KindPolicy)
		if !inerr.IsFatal(err) {
			t.Error("strict policy failure should be fatal")
		}
	})
}

func TestDecodeFromStorage(t *testing.T) {
	slot := common.HexToHash("0x01")
	var word [32]byte
	word[31] = 0x2a
	snap := &state.Snapshot{Storage: map[common.Hash][32]byte{slot: word}}

	res := drive(t, DecodeValue(types.UintType{Bits: 8}, state.StoragePointer{Slot: slot}, nil, Options{}), snap, nil)
	v, ok := res.(value.Uint)
	if !ok {
		t.Fatalf("got %T (%s), want value.Uint", res, res)
	}
	if v.Value.Uint64() != 42 {
		t.Errorf("Value = %s, want 42", v.Value.Dec())
	}
}
