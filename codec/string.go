package codec

import (
	"unicode/utf8"

	"github.com/wippyai/evm-inspector/types"
	"github.com/wippyai/evm-inspector/value"
)

// DecodeString interprets data as a UTF-8 string. Bytes that are not
// valid UTF-8 yield a malformed result carrying a copy of the bytes;
// that is a value, not a failure, so this never errors in either
// policy.
func DecodeString(of types.StringType, data []byte) value.String {
	if utf8.Valid(data) {
		return value.String{Of: of, Value: string(data)}
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	return value.String{Of: of, Malformed: raw}
}
