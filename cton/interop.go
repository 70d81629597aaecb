package cton

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// FromJSON converts JSON bytes into a Value tree, preserving object key
// order exactly as it appears on the wire (encoding/json's map-based
// Unmarshal does not, so this walks the token stream directly). Integral
// JSON numbers become Integer values; everything else with a fractional
// or exponent part becomes Decimal. CTON is JSON-isomorphic (§1), so this
// is the natural on-ramp for feeding existing JSON data through the
// codec, and gives round-trip property tests a ready source of trees.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("cton: invalid JSON: %w", err)
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		if n, ok := new(big.Int).SetString(string(t), 10); ok {
			return BigInt(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return Decimal(f), nil
	case string:
		return Str(t), nil
	case json.Delim:
		switch t {
		case '[':
			arr := Array()
			for dec.More() {
				elemTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				elem, err := decodeJSONToken(dec, elemTok)
				if err != nil {
					return nil, err
				}
				arr.Append(elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		case '{':
			obj := Object()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("non-string JSON object key")
				}
				valTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				val, err := decodeJSONToken(dec, valTok)
				if err != nil {
					return nil, err
				}
				if !isSafeKey(key) {
					return nil, fmt.Errorf("JSON key %q is not a valid CTON key", key)
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

// ToJSON renders v as JSON bytes, preserving Object key order. Non-finite
// Decimal values (which should not occur in a decoded tree per §3, but
// may in a hand-built one) become JSON null.
func ToJSON(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *Value) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		b, _ := v.AsBool()
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindInteger:
		n, _ := v.AsInt()
		buf.WriteString(n.String())
	case KindDecimal:
		f, _ := v.AsDecimal()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case KindString:
		s, _ := v.AsStr()
		b, err := json.Marshal(s)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindArray:
		items, _ := v.AsArray()
		buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		fields, _ := v.AsObject()
		buf.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeJSON(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cton: unsupported value variant %s for JSON", v.Kind())
	}
	return nil
}
