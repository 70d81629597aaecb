package cton

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"
)

// Encode renders v to canonical CTON bytes using cfg.
func Encode(v *Value, cfg EncodeConfig) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(v, &buf, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo renders v to cfg and writes the result to w.
func EncodeTo(v *Value, w io.Writer, cfg EncodeConfig) error {
	if cfg.DecimalMode != DecimalFast && cfg.DecimalMode != DecimalPrecise {
		return &EncodeError{Message: "unknown decimal_mode"}
	}
	if v == nil {
		v = Null()
	}

	e := &encoder{w: w, cfg: cfg, tables: newTableDetectCache()}

	if v.Kind() == KindObject {
		return e.encodeDocument(v)
	}
	return e.encodeStandalone(v)
}

type encoder struct {
	w      io.Writer
	cfg    EncodeConfig
	tables *tableDetectCache
}

func (e *encoder) write(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

// writeIndent writes depth repetitions of cfg.Indent. Only called when
// cfg.Pretty is set.
func (e *encoder) writeIndent(depth int) error {
	for i := 0; i < depth; i++ {
		if err := e.write(e.cfg.Indent); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeDocument(v *Value) error {
	fields, _ := v.AsObject()
	for i, f := range fields {
		if i > 0 {
			if err := e.write(e.cfg.Separator); err != nil {
				return err
			}
		}
		if comment, ok := e.cfg.Comments[f.Key]; ok {
			for _, line := range strings.Split(comment, "\n") {
				if err := e.write("# " + line + "\n"); err != nil {
					return err
				}
			}
		}
		if err := e.encodePair(f.Key, f.Value, 0); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeStandalone(v *Value) error {
	switch v.Kind() {
	case KindArray:
		return e.writeArray(v, 0)
	default:
		return e.writeScalar(v)
	}
}

// encodePair writes "key" followed by the value's introducer: "(obj)" for
// an Object, "[N]..." for an Array, or "=scalar" for a scalar. It is used
// both for top-level pairs and for members inside an object body, which
// share the same grammar production (§6 "obj ::= pair (',' pair)*"). depth
// is the nesting depth of the container this pair lives in, used only when
// cfg.Pretty indents that container's own body.
func (e *encoder) encodePair(key string, v *Value, depth int) error {
	if !isSafeKey(key) {
		return &EncodeError{Message: "invalid key: " + strconv.Quote(key)}
	}
	if err := e.write(key); err != nil {
		return err
	}
	switch v.Kind() {
	case KindObject:
		if err := e.write("("); err != nil {
			return err
		}
		if err := e.writeObjectBody(v, depth); err != nil {
			return err
		}
		return e.write(")")
	case KindArray:
		return e.writeArray(v, depth)
	default:
		if err := e.write("="); err != nil {
			return err
		}
		return e.writeScalar(v)
	}
}

// writeObjectBody writes an object's "(...)" contents at nesting depth
// depth, so its members print at depth+1. With cfg.Pretty, per §4.2 ("With
// pretty, newline + indentation between pairs"), a non-empty body opens
// with a newline, each member is indented one level deeper than depth, and
// the closing ')' (written by the caller) lines up at depth.
func (e *encoder) writeObjectBody(v *Value, depth int) error {
	fields, _ := v.AsObject()
	if e.cfg.Pretty && len(fields) > 0 {
		if err := e.write("\n"); err != nil {
			return err
		}
	}
	for i, f := range fields {
		if e.cfg.Pretty {
			if err := e.writeIndent(depth + 1); err != nil {
				return err
			}
		}
		if err := e.encodePair(f.Key, f.Value, depth+1); err != nil {
			return err
		}
		if i < len(fields)-1 {
			if err := e.write(","); err != nil {
				return err
			}
		}
		if e.cfg.Pretty {
			if err := e.write("\n"); err != nil {
				return err
			}
		}
	}
	if e.cfg.Pretty && len(fields) > 0 {
		if err := e.writeIndent(depth); err != nil {
			return err
		}
	}
	return nil
}

// writeArray writes the full "[N]..." introducer for an Array value,
// including table-form detection, and is used both for keyed array pairs
// and for bare array elements (where the caller has already decided no
// key precedes it). depth is the array's own nesting depth; its list-form
// elements, when cfg.Pretty is set, print one level deeper, mirroring
// writeObjectBody. Table form always stays on one line per row: a table
// row is a dense, schema-implied record, not a place §4.2 asks pretty to
// reach.
func (e *encoder) writeArray(v *Value, depth int) error {
	items, _ := v.AsArray()
	if err := e.write("[" + strconv.Itoa(len(items)) + "]"); err != nil {
		return err
	}
	if len(items) == 0 {
		return e.write("=")
	}

	if header, ok := e.tables.detect(v, items); ok {
		return e.writeTable(items, header)
	}

	if err := e.write("="); err != nil {
		return err
	}
	if e.cfg.Pretty {
		if err := e.write("\n"); err != nil {
			return err
		}
	}
	for i, item := range items {
		if e.cfg.Pretty {
			if err := e.writeIndent(depth + 1); err != nil {
				return err
			}
		}
		if err := e.encodeElement(item, depth+1); err != nil {
			return err
		}
		if i < len(items)-1 {
			if err := e.write(","); err != nil {
				return err
			}
		}
		if e.cfg.Pretty {
			if err := e.write("\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) writeTable(items []*Value, header []string) error {
	if err := e.write("{" + strings.Join(header, ",") + "}="); err != nil {
		return err
	}
	for i, item := range items {
		if i > 0 {
			if err := e.write(";"); err != nil {
				return err
			}
		}
		fields, _ := item.AsObject()
		for j := range header {
			if j > 0 {
				if err := e.write(","); err != nil {
					return err
				}
			}
			if err := e.writeScalar(fields[j].Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeElement writes a single array element with no preceding key, at
// nesting depth depth: an Object as "(k=v,...)", an Array as its own
// "[N]..." form, or a scalar.
func (e *encoder) encodeElement(v *Value, depth int) error {
	switch v.Kind() {
	case KindObject:
		if err := e.write("("); err != nil {
			return err
		}
		if err := e.writeObjectBody(v, depth); err != nil {
			return err
		}
		return e.write(")")
	case KindArray:
		return e.writeArray(v, depth)
	default:
		return e.writeScalar(v)
	}
}

func (e *encoder) writeScalar(v *Value) error {
	switch v.Kind() {
	case KindNull:
		return e.write("null")
	case KindBool:
		b, _ := v.AsBool()
		if b {
			return e.write("true")
		}
		return e.write("false")
	case KindInteger:
		n, _ := v.AsInt()
		return e.write(formatInteger(n))
	case KindDecimal:
		f, _ := v.AsDecimal()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return e.write("null")
		}
		return e.write(formatDecimal(f, e.cfg.DecimalMode))
	case KindString:
		s, _ := v.AsStr()
		if isSafeToken(s) {
			return e.write(s)
		}
		return e.write(quoteString(s))
	default:
		return &EncodeError{Message: "unsupported value variant: " + v.Kind().String()}
	}
}
