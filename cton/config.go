package cton

// EncodeConfig configures Encode/EncodeTo, mirroring §4.2's enumerated
// option set.
type EncodeConfig struct {
	// Separator is inserted between top-level key/value pairs.
	// DefaultEncodeConfig sets it to "\n"; the zero Go value ("") is legal
	// input too and simply produces a separator-less document.
	Separator string

	// Pretty enables indented multi-line emission of nested objects and
	// arrays.
	Pretty bool

	// Indent is the per-depth indentation string used when Pretty is set.
	// Defaults to two spaces via DefaultEncodeConfig.
	Indent string

	// DecimalMode selects fast or precise canonical decimal formatting.
	DecimalMode DecimalMode

	// Comments maps a top-level key to a comment string emitted as one or
	// more '#'-prefixed lines immediately before that key's pair. Purely
	// cosmetic; the decoder never reconstructs it.
	Comments map[string]string
}

// DefaultEncodeConfig returns the encoder's default configuration:
// newline-separated pairs, compact (non-pretty) emission, fast decimal
// mode.
func DefaultEncodeConfig() EncodeConfig {
	return EncodeConfig{
		Separator:   "\n",
		Indent:      "  ",
		DecimalMode: DecimalFast,
	}
}

// DecodeConfig configures Decode, mirroring §4.3's configuration surface.
type DecodeConfig struct {
	// SymbolizeKeys, when true, interns object keys through a per-call
	// string table so repeated keys across the document share one backing
	// string. The decoded tree is identical either way; this only affects
	// how the returned strings are backed in memory.
	SymbolizeKeys bool
}
