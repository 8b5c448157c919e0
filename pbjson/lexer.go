// Package pbjson implements the L5 layer: the canonical Protobuf-JSON
// mapping of spec.md §4.4/§6.2 over a small single-pass JSON lexer,
// grounded in other_examples' wreulicke/protojson encoder (scratch-buffer
// number formatting, base64/well-known-type special cases) generalized
// from operating on protoreflect.Message to operating on this module's own
// gen/model types.
package pbjson

import (
	"fmt"
)

// TokenKind enumerates the lexical tokens a canonical-JSON document is
// built from.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokObjectStart
	TokObjectEnd
	TokArrayStart
	TokArrayEnd
	TokColon
	TokComma
	TokString
	TokNumber
	TokTrue
	TokFalse
	TokNull
)

// Token is one lexical unit; Text holds the decoded string value for
// TokString/TokNumber.
type Token struct {
	Kind TokenKind
	Text string
}

// Lexer is a single-pass JSON tokenizer with exactly one byte of
// lookahead (spec.md §4.4: "never backtracks more than one byte"),
// decoding strings into a reusable scratch buffer rather than allocating
// per rune.
type Lexer struct {
	buf     []byte
	pos     int
	hasNext bool
	next    byte
	scratch []byte
}

// NewLexer wraps buf for reading. The 1-byte lookahead is primed lazily
// on first use, mirroring a single mutable "has a char been read ahead"
// flag rather than the teacher's global state (spec.md §9 design note:
// "mutable global state in the lexer... becomes a 1-byte lookahead inside
// the reader struct").
func NewLexer(buf []byte) *Lexer {
	return &Lexer{buf: buf, scratch: make([]byte, 0, 64)}
}

func (l *Lexer) peek() (byte, bool) {
	if l.hasNext {
		return l.next, true
	}
	if l.pos >= len(l.buf) {
		return 0, false
	}
	l.next = l.buf[l.pos]
	l.pos++
	l.hasNext = true
	return l.next, true
}

func (l *Lexer) advance() {
	l.hasNext = false
}

func (l *Lexer) skipSpace() {
	for {
		b, ok := l.peek()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

// Next returns the next token, or TokEOF at end of input.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	b, ok := l.peek()
	if !ok {
		return Token{Kind: TokEOF}, nil
	}
	switch {
	case b == '{':
		l.advance()
		return Token{Kind: TokObjectStart}, nil
	case b == '}':
		l.advance()
		return Token{Kind: TokObjectEnd}, nil
	case b == '[':
		l.advance()
		return Token{Kind: TokArrayStart}, nil
	case b == ']':
		l.advance()
		return Token{Kind: TokArrayEnd}, nil
	case b == ':':
		l.advance()
		return Token{Kind: TokColon}, nil
	case b == ',':
		l.advance()
		return Token{Kind: TokComma}, nil
	case b == '"':
		return l.lexString()
	case b == 't':
		return l.lexLiteral("true", TokTrue)
	case b == 'f':
		return l.lexLiteral("false", TokFalse)
	case b == 'n':
		return l.lexLiteral("null", TokNull)
	case b == '-' || (b >= '0' && b <= '9'):
		return l.lexNumber()
	default:
		return Token{}, fmt.Errorf("pbjson: unexpected byte %q at offset %d", b, l.pos-1)
	}
}

func (l *Lexer) lexLiteral(word string, kind TokenKind) (Token, error) {
	for i := 0; i < len(word); i++ {
		b, ok := l.peek()
		if !ok || b != word[i] {
			return Token{}, fmt.Errorf("pbjson: malformed literal at offset %d, want %q", l.pos, word)
		}
		l.advance()
	}
	return Token{Kind: kind, Text: word}, nil
}

func (l *Lexer) lexNumber() (Token, error) {
	start := l.pos - 1 // peek already advanced pos past the first byte it read
	if l.hasNext {
		start = l.pos - 1
	}
	l.scratch = l.scratch[:0]
	b, _ := l.peek()
	l.scratch = append(l.scratch, b)
	l.advance()
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if (b >= '0' && b <= '9') || b == '.' || b == '-' || b == '+' || b == 'e' || b == 'E' {
			l.scratch = append(l.scratch, b)
			l.advance()
			continue
		}
		break
	}
	_ = start
	return Token{Kind: TokNumber, Text: string(l.scratch)}, nil
}

func (l *Lexer) lexString() (Token, error) {
	l.advance() // opening quote
	l.scratch = l.scratch[:0]
	for {
		b, ok := l.peek()
		if !ok {
			return Token{}, fmt.Errorf("pbjson: unterminated string")
		}
		if b == '"' {
			l.advance()
			break
		}
		if b == '\\' {
			l.advance()
			esc, ok := l.peek()
			if !ok {
				return Token{}, fmt.Errorf("pbjson: unterminated escape")
			}
			l.advance()
			switch esc {
			case '"', '\\', '/':
				l.scratch = append(l.scratch, esc)
			case 'n':
				l.scratch = append(l.scratch, '\n')
			case 't':
				l.scratch = append(l.scratch, '\t')
			case 'r':
				l.scratch = append(l.scratch, '\r')
			case 'b':
				l.scratch = append(l.scratch, '\b')
			case 'f':
				l.scratch = append(l.scratch, '\f')
			case 'u':
				r, err := l.lexUnicodeEscape()
				if err != nil {
					return Token{}, err
				}
				if r >= highSurrogateMin && r <= highSurrogateMax {
					low, err := l.lexLowSurrogate()
					if err != nil {
						return Token{}, err
					}
					r = 0x10000 + (r-highSurrogateMin)<<10 + (low - lowSurrogateMin)
				} else if r >= lowSurrogateMin && r <= lowSurrogateMax {
					return Token{}, fmt.Errorf("pbjson: unpaired low surrogate \\u%04x", r)
				}
				l.scratch = appendRune(l.scratch, r)
			default:
				return Token{}, fmt.Errorf("pbjson: invalid escape \\%c", esc)
			}
			continue
		}
		l.scratch = append(l.scratch, b)
		l.advance()
	}
	return Token{Kind: TokString, Text: string(l.scratch)}, nil
}

const (
	highSurrogateMin = 0xD800
	highSurrogateMax = 0xDBFF
	lowSurrogateMin  = 0xDC00
	lowSurrogateMax  = 0xDFFF
)

// lexLowSurrogate consumes a "\uXXXX" escape immediately following a high
// surrogate and validates it falls in the low-surrogate range, per the
// standard JSON encoding of supplementary-plane characters as a UTF-16
// surrogate pair.
func (l *Lexer) lexLowSurrogate() (rune, error) {
	b, ok := l.peek()
	if !ok || b != '\\' {
		return 0, fmt.Errorf("pbjson: unpaired high surrogate, expected \\u low surrogate")
	}
	l.advance()
	b, ok = l.peek()
	if !ok || b != 'u' {
		return 0, fmt.Errorf("pbjson: unpaired high surrogate, expected \\u low surrogate")
	}
	l.advance()
	low, err := l.lexUnicodeEscape()
	if err != nil {
		return 0, err
	}
	if low < lowSurrogateMin || low > lowSurrogateMax {
		return 0, fmt.Errorf("pbjson: high surrogate not followed by a low surrogate (got \\u%04x)", low)
	}
	return low, nil
}

func (l *Lexer) lexUnicodeEscape() (rune, error) {
	var v rune
	for i := 0; i < 4; i++ {
		b, ok := l.peek()
		if !ok {
			return 0, fmt.Errorf("pbjson: truncated \\u escape")
		}
		l.advance()
		v <<= 4
		switch {
		case b >= '0' && b <= '9':
			v |= rune(b - '0')
		case b >= 'a' && b <= 'f':
			v |= rune(b-'a') + 10
		case b >= 'A' && b <= 'F':
			v |= rune(b-'A') + 10
		default:
			return 0, fmt.Errorf("pbjson: invalid hex digit %q in \\u escape", b)
		}
	}
	return v, nil
}

func appendRune(dst []byte, r rune) []byte {
	if r < 0x80 {
		return append(dst, byte(r))
	}
	var tmp [4]byte
	n := encodeRuneUTF8(tmp[:], r)
	return append(dst, tmp[:n]...)
}

// encodeRuneUTF8 is \u-escape reassembly's UTF-8 encoder, mirroring
// wire.encodeRune's 4-case switch byte-for-byte (surrogate pairs are
// joined by the caller before this ever sees a rune >= 0x10000).
func encodeRuneUTF8(dst []byte, r rune) int {
	switch {
	case r < 0x80:
		dst[0] = byte(r)
		return 1
	case r < 0x800:
		dst[0] = 0xC0 | byte(r>>6)
		dst[1] = 0x80 | byte(r)&0x3F
		return 2
	case r < 0x10000:
		dst[0] = 0xE0 | byte(r>>12)
		dst[1] = 0x80 | byte(r>>6)&0x3F
		dst[2] = 0x80 | byte(r)&0x3F
		return 3
	default:
		dst[0] = 0xF0 | byte(r>>18)
		dst[1] = 0x80 | byte(r>>12)&0x3F
		dst[2] = 0x80 | byte(r>>6)&0x3F
		dst[3] = 0x80 | byte(r)&0x3F
		return 4
	}
}
