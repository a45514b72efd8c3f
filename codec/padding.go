package codec

// Padding validators. Each takes the full word as read and the number
// of meaningful bytes, and reports whether the remaining bytes carry
// the fill the encoding requires. A size covering the whole word
// leaves nothing to check and passes.

// LeftPaddedZero reports whether every byte of word before the last
// size bytes is zero.
func LeftPaddedZero(word []byte, size int) bool {
	if size >= len(word) {
		return true
	}
	for _, b := range word[:len(word)-size] {
		if b != 0 {
			return false
		}
	}
	return true
}

// RightPaddedZero reports whether every byte of word after the first
// size bytes is zero.
func RightPaddedZero(word []byte, size int) bool {
	if size < 0 {
		size = 0
	}
	if size >= len(word) {
		return true
	}
	for _, b := range word[size:] {
		if b != 0 {
			return false
		}
	}
	return true
}

// SignExtended reports whether every byte of word before the last size
// bytes equals the sign-extension byte of the retained value: 0xff
// when its sign bit is set, 0x00 otherwise.
func SignExtended(word []byte, size int) bool {
	if size <= 0 {
		return false
	}
	if size >= len(word) {
		return true
	}
	pad := byte(0x00)
	if word[len(word)-size]&0x80 != 0 {
		pad = 0xff
	}
	for _, b := range word[:len(word)-size] {
		if b != pad {
			return false
		}
	}
	return true
}
