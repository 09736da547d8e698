package off

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unsafe"

	"github.com/spaghettifunk/offmesh/engine/core"
	"github.com/spaghettifunk/offmesh/engine/math"
)

// Tokenizer reads whitespace separated numbers from a line oriented stream.
// Newlines are ordinary separators for numeric reads; the line structure is
// only visible through SkipLine, SkipCommentsAndBlankLines and AtLineEnd.
type Tokenizer struct {
	r    *bufio.Reader
	line int
	tok  []byte
}

func NewTokenizer(r io.Reader) *Tokenizer {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 64*1024)
	}
	return &Tokenizer{r: br, line: 1, tok: make([]byte, 0, 32)}
}

// Line returns the 1-based line the next byte belongs to.
func (t *Tokenizer) Line() int {
	return t.line
}

func isInlineSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isSpace(c byte) bool {
	return c == '\n' || isInlineSpace(c)
}

// SkipLine discards everything up to and including the next newline.
// Reaching the end of the stream is not an error.
func (t *Tokenizer) SkipLine() error {
	for {
		_, err := t.r.ReadSlice('\n')
		switch err {
		case nil:
			t.line++
			return nil
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			return nil
		default:
			return err
		}
	}
}

// SkipCommentsAndBlankLines discards lines that are empty, hold only
// blanks, or start with '#'. It stops in front of the first byte of real
// content, or at the end of the stream.
func (t *Tokenizer) SkipCommentsAndBlankLines() error {
	for {
		c, err := t.r.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch {
		case c == '\n':
			t.line++
		case c == '#':
			if err := t.SkipLine(); err != nil {
				return err
			}
		case isInlineSpace(c):
		default:
			return t.r.UnreadByte()
		}
	}
}

// AtLineEnd skips blanks on the current line and reports whether the line
// has no more tokens. A '#' starts a trailing comment. The newline itself is
// not consumed.
func (t *Tokenizer) AtLineEnd() (bool, error) {
	for {
		c, err := t.r.ReadByte()
		if err == io.EOF {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		if isInlineSpace(c) {
			continue
		}
		if err := t.r.UnreadByte(); err != nil {
			return false, err
		}
		return c == '\n' || c == '#', nil
	}
}

// next returns the next whitespace delimited token. The slice is only valid
// until the following call.
func (t *Tokenizer) next() ([]byte, error) {
	for {
		c, err := t.r.ReadByte()
		if err == io.EOF {
			return nil, core.ErrTruncatedInput
		}
		if err != nil {
			return nil, err
		}
		if c == '\n' {
			t.line++
			continue
		}
		if isInlineSpace(c) {
			continue
		}
		t.tok = append(t.tok[:0], c)
		break
	}
	for {
		c, err := t.r.ReadByte()
		if err == io.EOF {
			return t.tok, nil
		}
		if err != nil {
			return nil, err
		}
		if isSpace(c) {
			return t.tok, t.r.UnreadByte()
		}
		t.tok = append(t.tok, c)
	}
}

func malformed(tok []byte, err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		err = ne.Err
	}
	return fmt.Errorf("%w %q: %v", core.ErrMalformedNumber, tok, err)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isDecimal reports whether tok is [sign] digits [. digits] [e [sign] digits]
// with at least one mantissa digit. It rules out the hex, inf and nan forms
// strconv would otherwise accept.
func isDecimal(tok []byte) bool {
	i := 0
	if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(tok) && isDigit(tok[i]); i++ {
		digits++
	}
	if i < len(tok) && tok[i] == '.' {
		for i++; i < len(tok) && isDigit(tok[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(tok) && (tok[i] == 'e' || tok[i] == 'E') {
		i++
		if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
			i++
		}
		exp := 0
		for ; i < len(tok) && isDigit(tok[i]); i++ {
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(tok)
}

// ReadFloat reads one decimal floating point number sized to T.
func ReadFloat[T math.Float](t *Tokenizer) (T, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	if !isDecimal(tok) {
		return 0, fmt.Errorf("%w %q: not a decimal number", core.ErrMalformedNumber, tok)
	}
	var zero T
	v, err := strconv.ParseFloat(string(tok), int(unsafe.Sizeof(zero))*8)
	if err != nil {
		return 0, malformed(tok, err)
	}
	return T(v), nil
}

// ReadInt reads one integer that must fit in I. Unsigned types reject a
// leading minus sign.
func ReadInt[I math.Index](t *Tokenizer) (I, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	var zero I
	bits := int(unsafe.Sizeof(zero)) * 8
	if zero-1 < 0 {
		v, err := strconv.ParseInt(string(tok), 10, bits)
		if err != nil {
			return 0, malformed(tok, err)
		}
		return I(v), nil
	}
	digits := tok
	if len(digits) > 1 && digits[0] == '+' {
		digits = digits[1:]
	}
	v, err := strconv.ParseUint(string(digits), 10, bits)
	if err != nil {
		return 0, malformed(tok, err)
	}
	return I(v), nil
}
