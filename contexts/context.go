package contexts

import (
	"sort"

	"github.com/wippyai/evm-inspector/bytecode"
	"github.com/wippyai/evm-inspector/types"
)

// Context describes one compiled binary: the deployed code of a class, or
// its constructor (creation) code. A class with both forms registers two
// contexts sharing the same ContractClass.
type Context struct {
	Class         *types.ContractClass
	Binary        []byte
	LinkRefs      []bytecode.Range
	Immutables    []bytecode.Range
	IsConstructor bool

	// Methods is the external interface, keyed by selector. Empty for
	// constructor contexts.
	Methods  map[Selector]*Method
	Fallback *Method
	Receive  *Method

	// JumpTable maps this compilation's program counters to internal
	// functions. Nil when the compiler emitted no table.
	JumpTable JumpTable
}

// Method returns the interface entry for sel, or nil.
func (c *Context) Method(sel Selector) *Method {
	if c == nil {
		return nil
	}
	return c.Methods[sel]
}

// masks returns every unstable range of the binary.
func (c *Context) masks() []bytecode.Range {
	out := make([]bytecode.Range, 0, len(c.LinkRefs)+len(c.Immutables))
	out = append(out, c.LinkRefs...)
	out = append(out, c.Immutables...)
	return out
}

// CheckJumpDests returns the jump table program counters that do not land
// on a JUMPDEST in the binary, sorted ascending. Such entries would be
// compiler or artifact bugs; the decoder still honors them.
func (c *Context) CheckJumpDests() []uint64 {
	if len(c.JumpTable) == 0 {
		return nil
	}
	dests := bytecode.JumpDests(c.Binary)
	var bad []uint64
	for pc := range c.JumpTable {
		if !dests[pc] {
			bad = append(bad, pc)
		}
	}
	sort.Slice(bad, func(i, j int) bool { return bad[i] < bad[j] })
	return bad
}
