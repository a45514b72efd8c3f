package codec

import (
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/wippyai/evm-inspector/contexts"
	"github.com/wippyai/evm-inspector/types"
	"github.com/wippyai/evm-inspector/value"
)

// resolveCode suspends on a CodeRequest for addr and hands the matched
// context, nil when the code is not recognized, to k. A failed fetch
// counts as unrecognized code: resolution never fails.
func resolveCode(addr common.Address, info *ExecInfo, k func(*contexts.Context) *Step) *Step {
	return stepSuspend(CodeRequest{Address: addr}, func(ans Answer) *Step {
		if ans.Err != nil {
			Logger().Debug("code fetch failed, treating address as unknown",
				zap.String("address", addr.Hex()),
				zap.Error(ans.Err))
			return k(nil)
		}
		return k(info.Contexts.MatchCode(ans.Data))
	})
}

func decodeContract(t types.ContractType, addr common.Address, info *ExecInfo) *Step {
	return resolveCode(addr, info, func(ctx *contexts.Context) *Step {
		v := value.Contract{Of: t, Address: addr}
		if ctx != nil {
			v.Class = ctx.Class
		}
		return stepDone(v)
	})
}

func decodeExternalFunction(t types.ExternalFunctionType, addr common.Address, sel contexts.Selector, info *ExecInfo) *Step {
	return resolveCode(addr, info, func(ctx *contexts.Context) *Step {
		v := value.ExternalFunction{Of: t, Address: addr, Selector: sel}
		switch {
		case ctx == nil:
			v.Kind = value.ExternalUnknown
		case ctx.Method(sel) == nil:
			v.Kind = value.ExternalInvalid
			v.Class = ctx.Class
		default:
			v.Kind = value.ExternalKnown
			v.Class = ctx.Class
			v.Method = ctx.Method(sel)
		}
		return stepDone(v)
	})
}
