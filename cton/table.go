package cton

// detectTable runs the single-pass table-compression check from §4.2. It
// requires the array to be non-empty, its first element to be a
// non-empty Object, and every subsequent element to be an Object with the
// exact same key sequence (order included) and every value in the row a
// scalar. On success it returns the header in the first element's key
// order; on failure it returns (nil, false) and the array is emitted as a
// plain element list instead.
func detectTable(items []*Value) ([]string, bool) {
	if len(items) == 0 {
		return nil, false
	}

	first, ok := items[0].AsObject()
	if !ok || len(first) == 0 {
		return nil, false
	}

	header := make([]string, len(first))
	for i, f := range first {
		header[i] = f.Key
	}
	if !allScalarRow(first) {
		return nil, false
	}

	for _, item := range items[1:] {
		fields, ok := item.AsObject()
		if !ok || len(fields) != len(header) {
			return nil, false
		}
		for i, f := range fields {
			if f.Key != header[i] {
				return nil, false
			}
		}
		if !allScalarRow(fields) {
			return nil, false
		}
	}

	return header, true
}

// allScalarRow reports whether every field's value is a scalar variant
// (Null, Bool, Integer, Decimal, or String) eligible for a table row.
func allScalarRow(fields []Field) bool {
	for _, f := range fields {
		switch f.Value.Kind() {
		case KindNull, KindBool, KindInteger, KindDecimal, KindString:
		default:
			return false
		}
	}
	return true
}

// tableDetectCache is a per-encode-call cache of detectTable results keyed
// by array identity, matching §5's "memoized by identity, local to a
// single encode call, must not escape it."
type tableDetectCache struct {
	m map[*Value]tableDetectResult
}

type tableDetectResult struct {
	header []string
	ok     bool
}

func newTableDetectCache() *tableDetectCache {
	return &tableDetectCache{m: make(map[*Value]tableDetectResult)}
}

func (c *tableDetectCache) detect(arr *Value, items []*Value) ([]string, bool) {
	if r, cached := c.m[arr]; cached {
		return r.header, r.ok
	}
	header, ok := detectTable(items)
	c.m[arr] = tableDetectResult{header: header, ok: ok}
	return header, ok
}
