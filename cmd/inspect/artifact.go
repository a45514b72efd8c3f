package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/wippyai/evm-inspector/bytecode"
	"github.com/wippyai/evm-inspector/contexts"
	"github.com/wippyai/evm-inspector/state"
	"github.com/wippyai/evm-inspector/types"
)

// snapshotFile is the tool's dump schema for one frozen frame. Stack
// words shorter than 32 bytes are left-padded with zeros on load.
type snapshotFile struct {
	Stack    []hexutil.Bytes             `json:"stack"`
	Memory   hexutil.Bytes               `json:"memory"`
	Calldata hexutil.Bytes               `json:"calldata"`
	Code     hexutil.Bytes               `json:"code"`
	Storage  map[common.Hash]common.Hash `json:"storage"`
}

// contextsFile is the tool's schema for compiled classes, their
// recognition metadata and user-defined types.
type contextsFile struct {
	Classes []classEntry `json:"classes"`
	Enums   []enumEntry  `json:"enums"`
}

type classEntry struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Kind     string        `json:"kind"` // contract, library, interface
	Binaries []binaryEntry `json:"binaries"`
}

type binaryEntry struct {
	Binary      hexutil.Bytes        `json:"binary"`
	Constructor bool                 `json:"constructor"`
	LinkRefs    []rangeEntry         `json:"linkRefs"`
	Immutables  []rangeEntry         `json:"immutables"`
	Methods     []methodEntry        `json:"methods"`
	JumpTable   map[string]jumpEntry `json:"jumpTable"` // keyed by pc, decimal or 0x hex
}

type rangeEntry struct {
	Start  uint64 `json:"start"`
	Length uint64 `json:"length"`
}

type methodEntry struct {
	Signature  string `json:"signature"`
	Mutability string `json:"mutability"`
}

type jumpEntry struct {
	Name              string `json:"name"`
	Mutability        string `json:"mutability"`
	DefinedIn         string `json:"definedIn"` // class ID, defaults to the owning class
	DesignatedInvalid bool   `json:"designatedInvalid"`
}

type enumEntry struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// environment is everything the contexts file contributes to a decode.
type environment struct {
	contexts *contexts.Registry
	types    *types.Registry
}

func loadSnapshot(path string) (*state.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	var sf snapshotFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	snap := &state.Snapshot{
		Memory:   sf.Memory,
		Calldata: sf.Calldata,
		Code:     sf.Code,
	}
	for i, w := range sf.Stack {
		if len(w) > state.WordSize {
			return nil, fmt.Errorf("stack[%d]: %d bytes exceeds a word", i, len(w))
		}
		word := make([]byte, state.WordSize)
		copy(word[state.WordSize-len(w):], w)
		snap.Stack = append(snap.Stack, word)
	}
	if len(sf.Storage) > 0 {
		snap.Storage = make(map[common.Hash][32]byte, len(sf.Storage))
		for slot, word := range sf.Storage {
			snap.Storage[slot] = word
		}
	}
	return snap, nil
}

// loadContexts returns empty registries when no path is given, so every
// lookup simply misses.
func loadContexts(path string) (*environment, error) {
	env := &environment{
		contexts: contexts.NewRegistry(),
		types:    types.NewRegistry(),
	}
	if path == "" {
		return env, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contexts: %w", err)
	}
	var cf contextsFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse contexts: %w", err)
	}

	classes := make(map[string]*types.ContractClass, len(cf.Classes))
	for _, ce := range cf.Classes {
		kind, err := parseContractKind(ce.Kind)
		if err != nil {
			return nil, fmt.Errorf("class %q: %v", ce.ID, err)
		}
		class := &types.ContractClass{ID: ce.ID, Name: ce.Name, Kind: kind}
		if err := env.types.AddClass(class); err != nil {
			return nil, err
		}
		classes[ce.ID] = class
	}

	for _, ee := range cf.Enums {
		def := &types.EnumType{ID: ee.ID, Name: ee.Name, Options: ee.Options}
		if err := env.types.AddEnum(def); err != nil {
			return nil, err
		}
	}

	// Second pass, so jump table entries can name any class.
	for _, ce := range cf.Classes {
		for i, be := range ce.Binaries {
			ctx, err := buildContext(classes[ce.ID], be, classes)
			if err != nil {
				return nil, fmt.Errorf("class %q binary %d: %v", ce.ID, i, err)
			}
			if err := env.contexts.Add(ctx); err != nil {
				return nil, fmt.Errorf("class %q: %v", ce.ID, err)
			}
		}
	}
	return env, nil
}

func buildContext(class *types.ContractClass, be binaryEntry, classes map[string]*types.ContractClass) (*contexts.Context, error) {
	ctx := &contexts.Context{
		Class:         class,
		Binary:        be.Binary,
		LinkRefs:      toRanges(be.LinkRefs),
		Immutables:    toRanges(be.Immutables),
		IsConstructor: be.Constructor,
	}

	if len(be.Methods) > 0 {
		ctx.Methods = make(map[contexts.Selector]*contexts.Method, len(be.Methods))
		for _, me := range be.Methods {
			mut, err := parseMutability(me.Mutability)
			if err != nil {
				return nil, fmt.Errorf("method %q: %v", me.Signature, err)
			}
			m := contexts.NewMethod(me.Signature, mut)
			ctx.Methods[m.Selector] = m
		}
	}

	if len(be.JumpTable) > 0 {
		ctx.JumpTable = make(contexts.JumpTable, len(be.JumpTable))
		for pcStr, je := range be.JumpTable {
			pc, err := strconv.ParseUint(pcStr, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("jump table pc %q: %v", pcStr, err)
			}
			mut, err := parseMutability(je.Mutability)
			if err != nil {
				return nil, fmt.Errorf("jump table pc %s: %v", pcStr, err)
			}
			defined := class
			if je.DefinedIn != "" {
				if defined = classes[je.DefinedIn]; defined == nil {
					return nil, fmt.Errorf("jump table pc %s: unknown class %q", pcStr, je.DefinedIn)
				}
			}
			ctx.JumpTable[pc] = &contexts.InternalFunction{
				Name:                je.Name,
				Mutability:          mut,
				Class:               defined,
				IsDesignatedInvalid: je.DesignatedInvalid,
			}
		}
	}
	return ctx, nil
}

func toRanges(entries []rangeEntry) []bytecode.Range {
	if len(entries) == 0 {
		return nil
	}
	out := make([]bytecode.Range, len(entries))
	for i, e := range entries {
		out[i] = bytecode.Range{Start: e.Start, Length: e.Length}
	}
	return out
}

func parseMutability(s string) (contexts.Mutability, error) {
	switch s {
	case "", "nonpayable":
		return contexts.Nonpayable, nil
	case "payable":
		return contexts.Payable, nil
	case "view":
		return contexts.View, nil
	case "pure":
		return contexts.Pure, nil
	}
	return 0, fmt.Errorf("unknown mutability %q", s)
}

func parseContractKind(s string) (types.ContractKind, error) {
	switch s {
	case "", "contract":
		return types.KindContract, nil
	case "library":
		return types.KindLibrary, nil
	case "interface":
		return types.KindInterface, nil
	}
	return 0, fmt.Errorf("unknown contract kind %q", s)
}
