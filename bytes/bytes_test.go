package bytes_test

import (
	"testing"

	pbjbytes "github.com/hashgraph/pbj-go/bytes"
)

func TestEqualAndHash(t *testing.T) {
	a := pbjbytes.Copy([]byte("hello world"))
	b := pbjbytes.Copy([]byte("hello world"))
	c := pbjbytes.Copy([]byte("hello World"))

	if !a.Equal(b) {
		t.Fatalf("expected equal contents to compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected differing contents to compare unequal")
	}
	if a.HashCode() != b.HashCode() {
		t.Fatalf("equal values must hash equal")
	}
}

func TestHashStableAcrossCalls(t *testing.T) {
	a := pbjbytes.Copy([]byte("stable content"))
	h1 := a.HashCode()
	h2 := a.HashCode()
	if h1 != h2 {
		t.Fatalf("hash must be deterministic: %d != %d", h1, h2)
	}
}

func TestSliceNoCopy(t *testing.T) {
	raw := []byte("0123456789")
	b := pbjbytes.Wrap(raw)
	s := b.Slice(2, 5)
	if s.Len() != 3 {
		t.Fatalf("Slice length = %d, want 3", s.Len())
	}
	if s.At(0) != '2' {
		t.Fatalf("Slice(2,5).At(0) = %q, want '2'", s.At(0))
	}
}

func TestBase64RoundTrip(t *testing.T) {
	b := pbjbytes.Copy([]byte("any carnal pleasure"))
	enc := b.Base64()
	got, err := pbjbytes.DecodeBase64(enc)
	if err != nil {
		t.Fatalf("DecodeBase64: %v", err)
	}
	if !got.Equal(b) {
		t.Fatalf("base64 round trip mismatch")
	}
}

func TestBase64AcceptsURLSafeUnpadded(t *testing.T) {
	// bytes whose standard base64 uses '+' and '/'
	raw := []byte{0xfb, 0xff, 0xfe}
	b := pbjbytes.Wrap(raw)
	std := b.Base64() // "+//+"
	urlUnpadded := "-__-"
	_ = std
	got, err := pbjbytes.DecodeBase64(urlUnpadded)
	if err != nil {
		t.Fatalf("DecodeBase64(url-safe unpadded): %v", err)
	}
	if !got.Equal(b) {
		t.Fatalf("url-safe decode mismatch: got %v want %v", got.Raw(), raw)
	}
}

func TestAsUTF8(t *testing.T) {
	b := pbjbytes.FromString("héllo")
	s, err := b.AsUTF8()
	if err != nil || s != "héllo" {
		t.Fatalf("AsUTF8() = %q, %v", s, err)
	}
}

func TestAsUTF8RejectsBadBytes(t *testing.T) {
	b := pbjbytes.Wrap([]byte{0xC0, 0xAF})
	if _, err := b.AsUTF8(); err == nil {
		t.Fatalf("expected error decoding invalid UTF-8")
	}
}
