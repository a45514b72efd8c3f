package contexts

import "github.com/wippyai/evm-inspector/types"

// Mutability is a method's declared state mutability.
type Mutability uint8

const (
	Nonpayable Mutability = iota
	Payable
	View
	Pure
)

var mutabilityNames = [...]string{
	Nonpayable: "nonpayable",
	Payable:    "payable",
	View:       "view",
	Pure:       "pure",
}

func (m Mutability) String() string {
	if int(m) < len(mutabilityNames) {
		return mutabilityNames[m]
	}
	return "unknown"
}

// Method is one externally callable entry of a contract interface.
type Method struct {
	Name       string
	Signature  string
	Selector   Selector
	Mutability Mutability
}

// NewMethod builds a Method from its canonical signature, deriving name
// and selector.
func NewMethod(signature string, mutability Mutability) *Method {
	name := signature
	for i, r := range signature {
		if r == '(' {
			name = signature[:i]
			break
		}
	}
	return &Method{
		Name:       name,
		Signature:  signature,
		Selector:   ComputeSelector(signature),
		Mutability: mutability,
	}
}

// InternalFunction describes one entry of a class's internal jump table.
type InternalFunction struct {
	Name       string
	Mutability Mutability
	Class      *types.ContractClass

	// IsDesignatedInvalid marks the compiler's designated invalid
	// function: the target uninitialized function pointers revert into.
	IsDesignatedInvalid bool
}

// JumpTable maps program counters to the internal functions entered
// there. Deployed and constructor code index the same table at different
// counters.
type JumpTable map[uint64]*InternalFunction
