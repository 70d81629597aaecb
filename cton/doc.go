// Package cton implements CTON (Compact Token-Oriented Notation), a
// JSON-isomorphic textual serialization format optimized for
// token-efficient transport of structured data.
//
// # Data model
//
// Values are a tagged tree with six variants: Null, Bool, Integer
// (arbitrary-range, backed by *big.Int), Decimal (a float64, formatted
// per one of two canonical modes), String, Array, and Object. Object key
// order is preserved across encode and decode.
//
// # Syntax
//
// A document is a sequence of top-level key/value pairs with no
// required separator between them:
//
//	name=Ada
//	tags[2]=admin,staff
//	address(city=Boston,zip="02134")
//
// Arrays of uniform, scalar-valued objects compress into table form:
//
//	rows[2]{id,name}=1,Ada;2,Grace
//
// A document may instead be a single standalone value (an array, string,
// or scalar) rather than a sequence of pairs.
//
// # Example
//
//	v := cton.Object()
//	v.Set("name", cton.Str("Ada"))
//	v.Set("age", cton.Int(36))
//	out, err := cton.Encode(v, cton.DefaultEncodeConfig())
//
//	back, err := cton.Decode(out, cton.DecodeConfig{})
//
// # Error handling
//
// Encode reports an EncodeError for an unsupported value variant, an
// invalid key, or an unrecognized configuration value. Decode reports a
// ParseError carrying a 1-indexed line, column, and source excerpt.
// Validate checks the grammar without returning a tree and collects a
// list of ValidationErrors, resynchronizing at structural boundaries so
// one call can surface more than one problem.
package cton
