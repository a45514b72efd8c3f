package bytecode

// Range marks a byte range within a binary, as emitted by the compiler
// for link references and immutable slots.
type Range struct {
	Start  uint64
	Length uint64
}

// Mask returns a copy of code with the given ranges zeroed. Ranges
// reaching past the end of the code are clamped.
func Mask(code []byte, masked []Range) []byte {
	out := make([]byte, len(code))
	copy(out, code)

	for _, r := range masked {
		if r.Start >= uint64(len(out)) {
			continue
		}
		end := r.Start + r.Length
		if end > uint64(len(out)) || end < r.Start {
			end = uint64(len(out))
		}
		clear(out[r.Start:end])
	}

	return out
}

// Normalize prepares code for fingerprinting: the masked ranges are
// zeroed and the metadata trailer is dropped. Two deployments of the same
// class differ only in those regions, so their normalized forms match.
func Normalize(code []byte, masked []Range) []byte {
	body, _ := TrimMetadata(Mask(code, masked))
	return body
}
