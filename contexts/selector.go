package contexts

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Selector is a four-byte method selector: the leading bytes of the
// keccak256 hash of the method's canonical signature.
type Selector [4]byte

// ComputeSelector derives the selector of a canonical signature like
// "transfer(address,uint256)".
func ComputeSelector(signature string) Selector {
	var sel Selector
	copy(sel[:], crypto.Keccak256([]byte(signature)))
	return sel
}

// SelectorFromWord extracts a selector from the first four bytes of data.
func SelectorFromWord(data []byte) Selector {
	var sel Selector
	copy(sel[:], data)
	return sel
}

func (s Selector) Hex() string { return hexutil.Encode(s[:]) }

func (s Selector) String() string { return s.Hex() }
