package buffer_test

import (
	"bytes"
	"testing"

	"github.com/hashgraph/pbj-go/buffer"
)

func TestBufferedDataReadWriteRoundTrip(t *testing.T) {
	b := buffer.Allocate(64)
	if err := b.WriteVarint(300, false); err != nil {
		t.Fatalf("WriteVarint: %v", err)
	}
	if err := b.WriteFixed32(0xdeadbeef); err != nil {
		t.Fatalf("WriteFixed32: %v", err)
	}
	if err := b.WriteBytes([]byte("hello")); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	end := b.Position()
	b.SetLimit(end)
	b.SetPosition(0)

	v, err := b.ReadVarint(false)
	if err != nil || v != 300 {
		t.Fatalf("ReadVarint = %d, %v, want 300", v, err)
	}
	f, err := b.ReadFixed32()
	if err != nil || f != 0xdeadbeef {
		t.Fatalf("ReadFixed32 = %#x, %v", f, err)
	}
	dst := make([]byte, 5)
	n, err := b.ReadBytes(dst)
	if err != nil || n != 5 || string(dst) != "hello" {
		t.Fatalf("ReadBytes = %q, %d, %v", dst, n, err)
	}
}

func TestBufferedDataOverflowUnderflow(t *testing.T) {
	b := buffer.Allocate(1)
	if err := b.WriteByte(1); err != nil {
		t.Fatalf("first WriteByte: %v", err)
	}
	if err := b.WriteByte(2); err != buffer.ErrOverflow {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}

	b.SetPosition(1)
	b.SetLimit(1)
	if _, err := b.ReadByte(); err != buffer.ErrUnderflow {
		t.Fatalf("expected ErrUnderflow, got %v", err)
	}
}

func TestBufferedDataSkipClampsToRemaining(t *testing.T) {
	b := buffer.Wrap([]byte{1, 2, 3})
	b.SetPosition(1)
	if err := b.Skip(100); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if b.Position() != 3 {
		t.Fatalf("Position after over-long Skip = %d, want clamped to 3", b.Position())
	}
}

func TestBufferedDataRandomAccess(t *testing.T) {
	b := buffer.Wrap([]byte{0x01, 0x02, 0x03, 0x04})
	v, err := b.GetInt(0)
	if err != nil || v != 0x01020304 {
		t.Fatalf("GetInt = %#x, %v", v, err)
	}
	le, err := b.GetIntLE(0)
	if err != nil || le != 0x04030201 {
		t.Fatalf("GetIntLE = %#x, %v", le, err)
	}
	if !b.Contains(1, []byte{0x02, 0x03}) {
		t.Fatalf("Contains failed to match subsequence")
	}
	if !b.MatchesPrefix([]byte{0x01, 0x02}) {
		t.Fatalf("MatchesPrefix failed")
	}
}

func TestBufferedDataCompareTo(t *testing.T) {
	a := buffer.Wrap([]byte{1, 2, 3})
	b := buffer.Wrap([]byte{1, 2, 4})
	if a.CompareTo(b) >= 0 {
		t.Fatalf("expected a < b")
	}
	if b.CompareTo(a) <= 0 {
		t.Fatalf("expected b > a")
	}
}

func TestStreamingRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := buffer.NewWritableStreamingData(&buf, 0)
	if err := w.WriteVarint(16384, false); err != nil {
		t.Fatalf("WriteVarint: %v", err)
	}
	if err := w.WriteBytes([]byte("stream")); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}

	r := buffer.NewReadableStreamingData(&buf, 0)
	v, err := r.ReadVarint(false)
	if err != nil || v != 16384 {
		t.Fatalf("ReadVarint = %d, %v, want 16384", v, err)
	}
	dst := make([]byte, 6)
	n, err := r.ReadBytes(dst)
	if err != nil || n != 6 || string(dst) != "stream" {
		t.Fatalf("ReadBytes = %q, %d, %v", dst, n, err)
	}
}

func TestStreamingSkip(t *testing.T) {
	data := bytes.NewReader([]byte("0123456789"))
	r := buffer.NewReadableStreamingData(data, 10)
	if err := r.Skip(4); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	b, err := r.ReadByte()
	if err != nil || b != '4' {
		t.Fatalf("ReadByte after Skip = %q, %v, want '4'", b, err)
	}
	// Skip past the remainder clamps instead of erroring.
	if err := r.Skip(1000); err != nil {
		t.Fatalf("over-long Skip: %v", err)
	}
	if r.HasRemaining() {
		t.Fatalf("expected no remaining bytes after clamped skip")
	}
}
