package bytecode

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Metadata is the decoded Solidity metadata trailer: a CBOR map the
// compiler appends after the executable code, followed by its two-byte
// big-endian length.
type Metadata struct {
	IPFS         []byte `cbor:"ipfs"`
	Bzzr0        []byte `cbor:"bzzr0"`
	Bzzr1        []byte `cbor:"bzzr1"`
	Solc         []byte `cbor:"solc"`
	Experimental bool   `cbor:"experimental"`
}

// SolcVersion renders the three-byte compiler version, or "" when absent.
func (m *Metadata) SolcVersion() string {
	if len(m.Solc) != 3 {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", m.Solc[0], m.Solc[1], m.Solc[2])
}

// TrimMetadata splits code into its executable body and the raw CBOR
// trailer. Code without a well-formed trailer comes back whole, with a
// nil trailer: the length suffix must fit, and the bytes it delimits must
// decode as a CBOR map.
func TrimMetadata(code []byte) (body, trailer []byte) {
	if len(code) < 2 {
		return code, nil
	}
	blobLen := int(binary.BigEndian.Uint16(code[len(code)-2:]))
	end := len(code) - 2
	if blobLen == 0 || blobLen > end {
		return code, nil
	}
	blob := code[end-blobLen : end]
	var probe map[string]cbor.RawMessage
	if err := cbor.Unmarshal(blob, &probe); err != nil {
		return code, nil
	}
	return code[:end-blobLen], blob
}

// DecodeMetadata parses a raw CBOR trailer as returned by TrimMetadata.
func DecodeMetadata(trailer []byte) (*Metadata, error) {
	var m Metadata
	if err := cbor.Unmarshal(trailer, &m); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &m, nil
}
