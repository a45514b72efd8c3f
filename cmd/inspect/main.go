package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	evminspector "github.com/wippyai/evm-inspector"
	"github.com/wippyai/evm-inspector/codec"
	"github.com/wippyai/evm-inspector/contexts"
	"github.com/wippyai/evm-inspector/errors"
	"github.com/wippyai/evm-inspector/session"
	"github.com/wippyai/evm-inspector/state"
	"github.com/wippyai/evm-inspector/types"
	"github.com/wippyai/evm-inspector/value"
)

// codeCacheSize bounds the RPC code cache.
const codeCacheSize = 128

type runConfig struct {
	stateFile    string
	contextsFile string
	typeName     string
	pointer      string
	classID      string
	rpcURL       string
	block        int64
	strict       bool
	permissive   bool
	constructor  bool
}

func main() {
	var (
		cfg         runConfig
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.StringVar(&cfg.stateFile, "state", "", "Path to a state snapshot JSON file")
	flag.StringVar(&cfg.contextsFile, "contexts", "", "Path to a contexts JSON file (optional)")
	flag.StringVar(&cfg.typeName, "type", "", "ABI type to decode (uint256, bytes32, enum <id>, ...)")
	flag.StringVar(&cfg.pointer, "ptr", "", "Data pointer (stack:0, memory:64+32, storage:0x2, calldata:4)")
	flag.StringVar(&cfg.classID, "class", "", "Class ID of the currently executing contract (optional)")
	flag.StringVar(&cfg.rpcURL, "rpc", "", "Ethereum node URL for code lookups (optional)")
	flag.Int64Var(&cfg.block, "block", -1, "Block number for code lookups, -1 = latest")
	flag.BoolVar(&cfg.strict, "strict", false, "Abort on the first decode failure")
	flag.BoolVar(&cfg.permissive, "permissive", false, "Accept nonzero padding")
	flag.BoolVar(&cfg.constructor, "constructor", false, "Resolve internal functions at constructor counters")
	flag.Parse()

	if *verbose {
		installLogger()
	}

	if cfg.stateFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -state <snapshot.json> -type <abi-type> -ptr <region:location>")
		fmt.Fprintln(os.Stderr, "       inspect -state <snapshot.json> -contexts <contexts.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if cfg.typeName == "" || cfg.pointer == "" {
		fmt.Fprintln(os.Stderr, "Both -type and -ptr are required outside interactive mode")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// installLogger routes library debug output to stderr.
func installLogger() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return
	}
	codec.SetLogger(logger)
	session.SetLogger(logger)
	contexts.SetLogger(logger)
}

func run(cfg runConfig) error {
	ctx := context.Background()

	snap, err := loadSnapshot(cfg.stateFile)
	if err != nil {
		return err
	}
	env, err := loadContexts(cfg.contextsFile)
	if err != nil {
		return err
	}
	typ, err := resolveType(cfg.typeName, env)
	if err != nil {
		return err
	}
	ptr, err := parsePointer(cfg.pointer)
	if err != nil {
		return err
	}
	info, err := buildInfo(snap, env, cfg.classID, cfg.constructor)
	if err != nil {
		return err
	}

	codes, closeCodes, err := buildCodeSource(ctx, cfg.rpcURL, cfg.block)
	if err != nil {
		return err
	}
	if closeCodes != nil {
		defer closeCodes()
	}

	sess := session.New(snap, codes)
	res, err := sess.DecodeValue(ctx, typ, ptr, info,
		codec.Options{StrictABI: cfg.strict, PermissivePadding: cfg.permissive})
	if err != nil {
		return err
	}

	fmt.Printf("Pointer: %s\n", ptr)
	fmt.Printf("Type:    %s\n", typ)
	fmt.Printf("Value:   %s\n", res)

	if er, ok := res.(value.ErrorResult); ok && errors.IsFatal(er.Err) {
		return er.Err
	}
	return nil
}

// buildInfo assembles the decode environment, optionally pinning the
// currently executing class so internal function pointers resolve.
func buildInfo(snap *state.Snapshot, env *environment, classID string, inConstructor bool) (*codec.ExecInfo, error) {
	info := &codec.ExecInfo{
		State:         snap,
		UserTypes:     env.types,
		Contexts:      env.contexts,
		InConstructor: inConstructor,
	}
	if classID != "" {
		current := env.contexts.ByClass(classID)
		if current == nil {
			return nil, fmt.Errorf("class %q has no deployed context", classID)
		}
		info.Current = current
		info.JumpTable = current.JumpTable
	}
	return info, nil
}

// buildCodeSource returns nil when no RPC endpoint is configured; every
// contract then decodes as unknown.
func buildCodeSource(ctx context.Context, rpcURL string, block int64) (evminspector.CodeSource, func(), error) {
	if rpcURL == "" {
		return nil, nil, nil
	}
	rpc, err := session.DialRPC(ctx, rpcURL)
	if err != nil {
		return nil, nil, err
	}
	if block >= 0 {
		rpc.Block = big.NewInt(block)
	}
	cached, err := session.NewCachedCodeSource(rpc, codeCacheSize)
	if err != nil {
		rpc.Close()
		return nil, nil, err
	}
	return cached, rpc.Close, nil
}

// resolveType parses a type name. The "enum <id>" and "contract <id>"
// forms look up definitions from the contexts file; everything else is
// elementary ABI syntax.
func resolveType(name string, env *environment) (types.Type, error) {
	if id, ok := strings.CutPrefix(name, "enum "); ok {
		def := env.types.Enum(id)
		if def == nil {
			return nil, fmt.Errorf("enum %q not found in contexts file", id)
		}
		return *def, nil
	}
	if id, ok := strings.CutPrefix(name, "contract "); ok {
		class := env.types.Class(id)
		if class == nil {
			return nil, fmt.Errorf("class %q not found in contexts file", id)
		}
		return types.ContractType{Class: class}, nil
	}
	return types.ParseElementary(name)
}

// parsePointer parses the CLI pointer syntax:
//
//	stack:3        one stack word
//	stack:0..2     an inclusive range of stack words
//	memory:64+32   32 bytes of memory at offset 64 (+32 is the default)
//	calldata:4     32 bytes of calldata at offset 4
//	code:0+64      64 bytes of code at offset 0
//	storage:0x2a   one storage slot, decimal or hex
func parsePointer(s string) (state.Pointer, error) {
	region, arg, ok := strings.Cut(s, ":")
	if !ok || arg == "" {
		return nil, fmt.Errorf("pointer %q: want <region>:<location>", s)
	}
	switch region {
	case "stack":
		from, to, err := parseSlotRange(arg)
		if err != nil {
			return nil, fmt.Errorf("pointer %q: %v", s, err)
		}
		return state.StackPointer{From: from, To: to}, nil
	case "memory", "calldata", "code":
		start, length, err := parseSpan(arg)
		if err != nil {
			return nil, fmt.Errorf("pointer %q: %v", s, err)
		}
		switch region {
		case "memory":
			return state.MemoryPointer{Start: start, Length: length}, nil
		case "calldata":
			return state.CalldataPointer{Start: start, Length: length}, nil
		default:
			return state.CodePointer{Start: start, Length: length}, nil
		}
	case "storage":
		slot, err := parseStorageSlot(arg)
		if err != nil {
			return nil, fmt.Errorf("pointer %q: %v", s, err)
		}
		return state.StoragePointer{Slot: slot}, nil
	}
	return nil, fmt.Errorf("pointer %q: unknown region %q", s, region)
}

func parseSlotRange(arg string) (from, to uint64, err error) {
	fromStr, toStr, ranged := strings.Cut(arg, "..")
	from, err = strconv.ParseUint(fromStr, 0, 64)
	if err != nil {
		return 0, 0, err
	}
	if !ranged {
		return from, from, nil
	}
	to, err = strconv.ParseUint(toStr, 0, 64)
	if err != nil {
		return 0, 0, err
	}
	if to < from {
		return 0, 0, fmt.Errorf("inverted range %d..%d", from, to)
	}
	return from, to, nil
}

func parseSpan(arg string) (start, length uint64, err error) {
	startStr, lengthStr, ok := strings.Cut(arg, "+")
	if !ok {
		lengthStr = strconv.Itoa(state.WordSize)
	}
	start, err = strconv.ParseUint(startStr, 0, 64)
	if err != nil {
		return 0, 0, err
	}
	length, err = strconv.ParseUint(lengthStr, 0, 64)
	if err != nil {
		return 0, 0, err
	}
	return start, length, nil
}

func parseStorageSlot(arg string) (common.Hash, error) {
	if strings.HasPrefix(arg, "0x") || strings.HasPrefix(arg, "0X") {
		if len(arg) > 2+2*common.HashLength {
			return common.Hash{}, fmt.Errorf("slot %q longer than %d bytes", arg, common.HashLength)
		}
		return common.HexToHash(arg), nil
	}
	n, ok := new(big.Int).SetString(arg, 10)
	if !ok {
		return common.Hash{}, fmt.Errorf("slot %q is neither hex nor decimal", arg)
	}
	return common.BigToHash(n), nil
}
