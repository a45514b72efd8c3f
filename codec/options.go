package codec

// Options selects the failure policy for one decode. The zero value is
// the default policy: padding is validated and failures become error
// results.
type Options struct {
	// PermissivePadding skips the zero and sign-extension padding
	// checks, trusting the byte source. Bool and internal function
	// words are still validated regardless.
	PermissivePadding bool

	// StrictABI marks every failure fatal. A fatal error result tells
	// the driver to abandon the entire decode, including any enclosing
	// composite, instead of keeping the error in place.
	StrictABI bool
}
