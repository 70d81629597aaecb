package cton

import (
	"math/big"
	"strconv"
)

// Decode parses data as a complete CTON document or standalone value and
// returns the resulting tree. The decoder is a fused scanner/parser
// rather than a lex-then-parse pipeline, because CTON's scalar
// terminator is context-sensitive (§2): whether a given position is
// "key-boundary enabled" can only be known from the parser's current
// frame, not from an isolated tokenization pass.
func Decode(data []byte, cfg DecodeConfig) (*Value, error) {
	d := &decoder{src: data, line: 1, col: 1, cfg: cfg}

	d.skipWS()
	if d.atEOF() {
		return Object(), nil
	}

	var result *Value
	var err error
	if d.looksLikeDocument() {
		result, err = d.parseDocument()
	} else {
		result, err = d.parseElement(true)
	}
	if err != nil {
		return nil, err
	}

	d.skipWS()
	if !d.atEOF() {
		return nil, d.errorf("trailing data after value")
	}
	return result, nil
}

type decoder struct {
	src      []byte
	pos      int
	line     int
	col      int
	cfg      DecodeConfig
	interned map[string]string
}

func (d *decoder) atEOF() bool { return d.pos >= len(d.src) }

func (d *decoder) peekByte() (byte, bool) {
	if d.pos >= len(d.src) {
		return 0, false
	}
	return d.src[d.pos], true
}

func (d *decoder) advanceByte() byte {
	b := d.src[d.pos]
	d.pos++
	if b == '\n' {
		d.line++
		d.col = 1
	} else {
		d.col++
	}
	return b
}

func (d *decoder) expectByte(b byte) bool {
	if got, ok := d.peekByte(); ok && got == b {
		d.advanceByte()
		return true
	}
	return false
}

func (d *decoder) errorf(msg string) *ParseError {
	return &ParseError{
		Message: msg,
		Line:    d.line,
		Column:  d.col,
		Offset:  d.pos,
		Excerpt: excerpt(d.src, d.pos),
	}
}

// skipWS skips whitespace and '#'-to-end-of-line comments, which are
// allowed anywhere whitespace is allowed (§6).
func (d *decoder) skipWS() {
	for {
		b, ok := d.peekByte()
		if !ok {
			return
		}
		if isWhitespace(b) {
			d.advanceByte()
			continue
		}
		if b == '#' {
			for {
				b2, ok2 := d.peekByte()
				if !ok2 || b2 == '\n' {
					break
				}
				d.advanceByte()
			}
			continue
		}
		return
	}
}

// looksLikeDocument implements §4.3's top-level dispatch lookahead: a
// SAFE_KEY_CHAR+ run immediately followed, after whitespace, by '(', '[',
// or '='.
func (d *decoder) looksLikeDocument() bool {
	i := d.pos
	start := i
	for i < len(d.src) && isSafeKeyChar(d.src[i]) {
		i++
	}
	if i == start {
		return false
	}
	j := i
	for j < len(d.src) && isWhitespace(d.src[j]) {
		j++
	}
	if j >= len(d.src) {
		return false
	}
	switch d.src[j] {
	case '(', '[', '=':
		return true
	}
	return false
}

// looksLikeKeyBoundaryAt reports whether position i begins a new
// top-level key for the purposes of the key-boundary heuristic: a
// maximal SAFE_KEY_CHAR+ run starting with a SAFE_KEY_START byte,
// immediately followed (no intervening whitespace) by '(', '[', or '='.
func (d *decoder) looksLikeKeyBoundaryAt(i int) bool {
	j := i
	for j < len(d.src) && isSafeKeyChar(d.src[j]) {
		j++
	}
	if j == i || j >= len(d.src) {
		return false
	}
	switch d.src[j] {
	case '(', '[', '=':
		return true
	}
	return false
}

func (d *decoder) parseKey() (string, error) {
	start := d.pos
	for {
		b, ok := d.peekByte()
		if !ok || !isSafeKeyChar(b) {
			break
		}
		d.advanceByte()
	}
	if d.pos == start {
		return "", d.errorf("expected a key")
	}
	return d.intern(string(d.src[start:d.pos])), nil
}

func (d *decoder) intern(s string) string {
	if !d.cfg.SymbolizeKeys {
		return s
	}
	if d.interned == nil {
		d.interned = make(map[string]string)
	}
	if v, ok := d.interned[s]; ok {
		return v
	}
	d.interned[s] = s
	return s
}

func (d *decoder) parseLength() (int, error) {
	start := d.pos
	for {
		b, ok := d.peekByte()
		if !ok || b < '0' || b > '9' {
			break
		}
		d.advanceByte()
	}
	if d.pos == start {
		return 0, d.errorf("invalid length literal")
	}
	n, err := strconv.Atoi(string(d.src[start:d.pos]))
	if err != nil {
		return 0, d.errorf("invalid length literal")
	}
	return n, nil
}

// parseDocument parses a sequence of top-level key/value pairs into an
// Object. Pairs need no explicit separator token between them: the
// decoder just skips whitespace/comments and relies on key lookahead (and
// the key-boundary heuristic within a scalar's own value) to recover pair
// boundaries, matching an encoder configured with any separator,
// including "".
func (d *decoder) parseDocument() (*Value, error) {
	doc := Object()
	for {
		d.skipWS()
		if d.atEOF() {
			break
		}
		key, val, err := d.parseMember(true)
		if err != nil {
			return nil, err
		}
		doc.Set(key, val)
	}
	return doc, nil
}

// parseMember parses "KEY" followed by one of the pair's three
// introducers. boundaryEnabled governs whether the '=' scalar form, if
// taken, is parsed with the key-boundary heuristic active.
func (d *decoder) parseMember(boundaryEnabled bool) (string, *Value, error) {
	key, err := d.parseKey()
	if err != nil {
		return "", nil, err
	}
	d.skipWS()
	b, ok := d.peekByte()
	if !ok {
		return "", nil, d.errorf("expected '(', '[', or '=' after key")
	}
	switch b {
	case '(':
		d.advanceByte()
		val, err := d.parseObjectContents()
		return key, val, err
	case '[':
		d.advanceByte()
		val, err := d.parseArrayContents(boundaryEnabled)
		return key, val, err
	case '=':
		d.advanceByte()
		val, err := d.parseScalarToken(boundaryEnabled)
		return key, val, err
	default:
		return "", nil, d.errorf("expected '(', '[', or '=' after key")
	}
}

// parseObjectContents parses an object body up to and including its
// closing ')'; the opening '(' has already been consumed. Members never
// get key-boundary permission: the object always closes with ')'.
func (d *decoder) parseObjectContents() (*Value, error) {
	obj := Object()
	d.skipWS()
	if b, ok := d.peekByte(); ok && b == ')' {
		d.advanceByte()
		return obj, nil
	}
	for {
		d.skipWS()
		key, val, err := d.parseMember(false)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
		d.skipWS()
		b, ok := d.peekByte()
		if !ok {
			return nil, d.errorf("unterminated object")
		}
		if b == ',' {
			d.advanceByte()
			continue
		}
		if b == ')' {
			d.advanceByte()
			break
		}
		return nil, d.errorf("expected ',' or ')' in object")
	}
	return obj, nil
}

// parseArrayContents parses "N]" plus an optional table header and the
// array body; the opening '[' has already been consumed. boundaryEnabled
// propagates whether this array's trailing scalar, if it is itself the
// outermost document's trailing token, may use the key-boundary
// heuristic.
func (d *decoder) parseArrayContents(boundaryEnabled bool) (*Value, error) {
	d.skipWS()
	n, err := d.parseLength()
	if err != nil {
		return nil, err
	}
	d.skipWS()
	if !d.expectByte(']') {
		return nil, d.errorf("expected ']' after array length")
	}
	d.skipWS()

	if b, ok := d.peekByte(); ok && b == '{' {
		d.advanceByte()
		header, err := d.parseHeader()
		if err != nil {
			return nil, err
		}
		d.skipWS()
		if !d.expectByte('}') {
			return nil, d.errorf("expected '}' after table header")
		}
		d.skipWS()
		if !d.expectByte('=') {
			return nil, d.errorf("expected '=' after table header")
		}
		return d.parseTableBody(n, header, boundaryEnabled)
	}

	if !d.expectByte('=') {
		return nil, d.errorf("expected '=' after array length")
	}
	return d.parseListBody(n, boundaryEnabled)
}

func (d *decoder) parseHeader() ([]string, error) {
	var header []string
	d.skipWS()
	if b, ok := d.peekByte(); ok && b == '}' {
		return header, nil
	}
	for {
		d.skipWS()
		key, err := d.parseKey()
		if err != nil {
			return nil, err
		}
		header = append(header, key)
		d.skipWS()
		b, ok := d.peekByte()
		if ok && b == ',' {
			d.advanceByte()
			continue
		}
		break
	}
	return header, nil
}

func (d *decoder) parseTableBody(n int, header []string, boundaryEnabled bool) (*Value, error) {
	arr := Array()
	if n == 0 {
		return arr, nil
	}
	for row := 0; row < n; row++ {
		if row > 0 {
			d.skipWS()
			if !d.expectByte(';') {
				return nil, d.errorf("array length mismatch: expected ';' between table rows")
			}
		}
		obj := Object()
		for col := 0; col < len(header); col++ {
			if col > 0 {
				d.skipWS()
				if !d.expectByte(',') {
					return nil, d.errorf("malformed table row: expected ',' between columns")
				}
			}
			d.skipWS()
			last := boundaryEnabled && row == n-1 && col == len(header)-1
			val, err := d.parseScalarToken(last)
			if err != nil {
				return nil, err
			}
			obj.Set(header[col], val)
		}
		arr.Append(obj)
	}
	return arr, nil
}

func (d *decoder) parseListBody(n int, boundaryEnabled bool) (*Value, error) {
	arr := Array()
	if n == 0 {
		return arr, nil
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			d.skipWS()
			if !d.expectByte(',') {
				return nil, d.errorf("array length mismatch: expected ',' between elements")
			}
		}
		d.skipWS()
		last := boundaryEnabled && i == n-1
		el, err := d.parseElement(last)
		if err != nil {
			return nil, err
		}
		arr.Append(el)
	}
	return arr, nil
}

// parseElement parses one un-keyed value: an object "(...)", an array
// "[...]", a quoted string, or a bare scalar token. Used for array/list
// elements and for a standalone root value.
func (d *decoder) parseElement(boundaryEnabled bool) (*Value, error) {
	d.skipWS()
	b, ok := d.peekByte()
	if !ok {
		return nil, d.errorf("unexpected end of input, expected a value")
	}
	switch b {
	case '(':
		d.advanceByte()
		return d.parseObjectContents()
	case '[':
		d.advanceByte()
		return d.parseArrayContents(boundaryEnabled)
	default:
		return d.parseScalarToken(boundaryEnabled)
	}
}

func (d *decoder) parseScalarToken(boundaryEnabled bool) (*Value, error) {
	d.skipWS()
	b, ok := d.peekByte()
	if !ok {
		return nil, d.errorf("unexpected end of input, expected a value")
	}
	if b == '"' {
		s, err := d.readQuotedString()
		if err != nil {
			return nil, err
		}
		return Str(s), nil
	}
	tok, err := d.readRawToken(boundaryEnabled)
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, d.errorf("expected a value")
	}
	return d.convertToken(tok), nil
}

// readRawToken scans the maximal prefix not in TERMINATOR and, when
// boundaryEnabled, also not starting a new top-level key (§4.3).
func (d *decoder) readRawToken(boundaryEnabled bool) (string, error) {
	start := d.pos
	for {
		b, ok := d.peekByte()
		if !ok {
			break
		}
		if isTerminator(b) {
			break
		}
		if boundaryEnabled && isSafeKeyStart(b) && d.looksLikeKeyBoundaryAt(d.pos) {
			break
		}
		d.advanceByte()
	}
	return string(d.src[start:d.pos]), nil
}

func (d *decoder) readQuotedString() (string, error) {
	d.advanceByte() // opening quote
	var buf []byte
	for {
		b, ok := d.peekByte()
		if !ok {
			return "", d.errorf("unterminated string")
		}
		if b == '"' {
			d.advanceByte()
			break
		}
		if b == '\\' {
			d.advanceByte()
			e, ok := d.peekByte()
			if !ok {
				return "", d.errorf("unterminated string")
			}
			switch e {
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case '"':
				buf = append(buf, '"')
			case '\\':
				buf = append(buf, '\\')
			default:
				return "", d.errorf("unsupported escape sequence")
			}
			d.advanceByte()
			continue
		}
		buf = append(buf, b)
		d.advanceByte()
	}
	return string(buf), nil
}

// convertToken classifies a bare (unquoted) token per §4.3's scalar
// conversion rule: reserved literals first, then canonical integer form,
// then canonical float form, else an unchanged string. Per the
// documented open question, a zero-padded token like "007" fails both
// numeric patterns and is intentionally returned as a String, not
// rejected.
func (d *decoder) convertToken(tok string) *Value {
	switch tok {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "null":
		return Null()
	}
	switch classifyScalarToken(tok) {
	case scalarInteger:
		n := new(big.Int)
		n.SetString(tok, 10)
		return BigInt(n)
	case scalarFloat:
		f, _ := strconv.ParseFloat(tok, 64)
		return Decimal(f)
	default:
		return Str(tok)
	}
}
