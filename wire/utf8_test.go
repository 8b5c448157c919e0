package wire_test

import (
	"strings"
	"testing"

	"github.com/hashgraph/pbj-go/wire"
)

func TestUTF8RoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"héllo wörld",
		"日本語",
		"😀🔥🚀",
		strings.Repeat("x", 1000) + "日本語",
	}
	for _, s := range cases {
		n, err := wire.EncodedLen(s)
		if err != nil {
			t.Fatalf("EncodedLen(%q): %v", s, err)
		}
		if n != len(s) {
			t.Fatalf("EncodedLen(%q) = %d, want %d", s, n, len(s))
		}
		dst := make([]byte, n)
		next, err := wire.EncodeString(dst, 0, s)
		if err != nil || next != n {
			t.Fatalf("EncodeString(%q): next=%d err=%v", s, next, err)
		}
		got, err := wire.DecodeString(dst, 0, len(dst))
		if err != nil || got != s {
			t.Fatalf("DecodeString round trip of %q: got=%q err=%v", s, got, err)
		}
	}
}

func TestUTF8RejectsOverlong(t *testing.T) {
	// two-byte overlong encoding of ASCII '/' (0x2F): 0xC0 0xAF
	_, err := wire.DecodeString([]byte{0xC0, 0xAF}, 0, 2)
	if err != wire.ErrMalformedString {
		t.Fatalf("expected ErrMalformedString for overlong sequence, got %v", err)
	}
}

func TestUTF8RejectsSurrogateHalf(t *testing.T) {
	// U+D800 encoded directly in UTF-8 (which is illegal: surrogates are
	// only valid inside UTF-16).
	_, err := wire.DecodeString([]byte{0xED, 0xA0, 0x80}, 0, 3)
	if err != wire.ErrMalformedString {
		t.Fatalf("expected ErrMalformedString for a lone surrogate half, got %v", err)
	}
}

func TestUTF8RejectsTruncation(t *testing.T) {
	full := []byte{0xE6, 0x97, 0xA5} // U+65E5
	_, err := wire.DecodeString(full[:2], 0, 2)
	if err != wire.ErrMalformedString {
		t.Fatalf("expected ErrMalformedString for a truncated sequence, got %v", err)
	}
}

func TestUTF8RejectsAboveMaxRune(t *testing.T) {
	// 4-byte sequence decoding to a code point above U+10FFFF.
	_, err := wire.DecodeString([]byte{0xF4, 0x90, 0x80, 0x80}, 0, 4)
	if err != wire.ErrMalformedString {
		t.Fatalf("expected ErrMalformedString above U+10FFFF, got %v", err)
	}
}
