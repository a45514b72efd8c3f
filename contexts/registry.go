package contexts

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/wippyai/evm-inspector/bytecode"
)

// Registry recognizes on-chain code. Deployed contexts match whole
// normalized binaries by fingerprint; constructor contexts match by
// masked prefix, since deployment appends encoded constructor arguments.
// The registry is populated up front and read-only while sessions run.
type Registry struct {
	deployed     []entry
	byPrint      map[common.Hash]*Context
	byClass      map[string]*Context
	constructors []entry
}

type entry struct {
	ctx        *Context
	normalized []byte // deployed: Normalize(Binary); constructor: Mask(Binary)
}

func NewRegistry() *Registry {
	return &Registry{
		byPrint: make(map[common.Hash]*Context),
		byClass: make(map[string]*Context),
	}
}

// Add registers a context. Deployed contexts are also indexed by class ID;
// a class registers at most one deployed context.
func (r *Registry) Add(ctx *Context) error {
	if ctx.Class == nil || ctx.Class.ID == "" {
		return fmt.Errorf("context has no class ID")
	}
	if len(ctx.Binary) == 0 {
		return fmt.Errorf("context %q has no binary", ctx.Class.ID)
	}

	if ctx.IsConstructor {
		r.constructors = append(r.constructors, entry{
			ctx:        ctx,
			normalized: bytecode.Mask(ctx.Binary, ctx.masks()),
		})
		Logger().Debug("registered constructor context",
			zap.String("class", ctx.Class.ID),
			zap.Int("binary_bytes", len(ctx.Binary)))
		return nil
	}

	if _, ok := r.byClass[ctx.Class.ID]; ok {
		return fmt.Errorf("class %q already has a deployed context", ctx.Class.ID)
	}

	normalized := bytecode.Normalize(ctx.Binary, ctx.masks())
	fp := crypto.Keccak256Hash(normalized)
	if other, ok := r.byPrint[fp]; ok {
		return fmt.Errorf("context %q fingerprints identically to %q",
			ctx.Class.ID, other.Class.ID)
	}

	r.deployed = append(r.deployed, entry{ctx: ctx, normalized: normalized})
	r.byPrint[fp] = ctx
	r.byClass[ctx.Class.ID] = ctx

	if bad := ctx.CheckJumpDests(); len(bad) > 0 {
		Logger().Warn("jump table entries off JUMPDEST",
			zap.String("class", ctx.Class.ID),
			zap.Uint64s("pcs", bad))
	}
	Logger().Debug("registered deployed context",
		zap.String("class", ctx.Class.ID),
		zap.String("fingerprint", fp.Hex()),
		zap.Int("methods", len(ctx.Methods)))
	return nil
}

// MatchCode resolves observed code to a registered context, or nil. The
// observed bytes are normalized per candidate, because each context has
// its own unstable ranges.
func (r *Registry) MatchCode(code []byte) *Context {
	if r == nil || len(code) == 0 {
		return nil
	}

	for _, e := range r.deployed {
		if len(code) < len(e.normalized) {
			continue
		}
		obs := bytecode.Normalize(code, e.ctx.masks())
		if bytes.Equal(obs, e.normalized) {
			return e.ctx
		}
	}

	for _, e := range r.constructors {
		if len(code) < len(e.normalized) {
			continue
		}
		obs := bytecode.Mask(code[:len(e.normalized)], e.ctx.masks())
		if bytes.Equal(obs, e.normalized) {
			return e.ctx
		}
	}

	return nil
}

// ByClass returns the deployed context registered for a class ID, or nil.
func (r *Registry) ByClass(id string) *Context {
	if r == nil {
		return nil
	}
	return r.byClass[id]
}
