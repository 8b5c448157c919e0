package codec_test

import (
	"testing"

	"github.com/hashgraph/pbj-go/buffer"
	"github.com/hashgraph/pbj-go/codec"
	"github.com/hashgraph/pbj-go/wire"
)

func TestWriterTimestampVector(t *testing.T) {
	// spec.md §8.3 scenario 1: {seconds=5678, nanos=1234} on fields 1,2.
	buf := buffer.Allocate(16)
	w := codec.NewWriter(buf)
	if err := w.Varint(1, 5678); err != nil {
		t.Fatalf("Varint(1): %v", err)
	}
	if err := w.Varint(2, 1234); err != nil {
		t.Fatalf("Varint(2): %v", err)
	}
	got := make([]byte, buf.Position())
	buf.SetLimit(buf.Position())
	buf.SetPosition(0)
	buf.ReadBytes(got)
	want := []byte{0x08, 0xAE, 0x2C, 0x10, 0xD2, 0x09}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %x want %x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d mismatch: got %x want %x", i, got, want)
		}
	}
}

func TestReaderRejectsBadField(t *testing.T) {
	buf := buffer.Wrap(wire.AppendVarint(nil, wire.Tag(0, wire.Varint)))
	r := codec.NewReader(buf, codec.DefaultParseConfig())
	_, _, err := r.ReadTag()
	var ce *codec.Error
	if err == nil {
		t.Fatalf("expected BadField error for field 0")
	}
	if e, ok := err.(*codec.Error); ok {
		ce = e
	}
	if ce == nil || ce.Kind != codec.KindBadField {
		t.Fatalf("expected KindBadField, got %v", err)
	}
}

func TestUnknownFieldListOrdering(t *testing.T) {
	var l codec.UnknownFieldList
	l.Append(codec.UnknownField{Field: 5, WireType: wire.Varint})
	l.Append(codec.UnknownField{Field: 2, WireType: wire.Varint})
	l.Append(codec.UnknownField{Field: 5, WireType: wire.Varint})
	ordered := l.Ordered()
	if len(ordered) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(ordered))
	}
	if ordered[0].Field != 2 || ordered[1].Field != 5 || ordered[2].Field != 5 {
		t.Fatalf("expected ascending field order with arrival order preserved within a field, got %+v", ordered)
	}
}

func TestEnterMessageDepthGuard(t *testing.T) {
	// A length-delimited field containing itself, nested past max depth.
	inner := []byte{0x0A, 0x00} // tag field 1 length-delim, length 0
	nested := inner
	for i := 0; i < 3; i++ {
		framed := append([]byte{0x0A, byte(len(nested))}, nested...)
		nested = framed
	}
	buf := buffer.Wrap(nested)
	r := codec.NewReader(buf, codec.ParseConfig{MaxDepth: 2})
	field, wt, err := r.ReadTag()
	if err != nil || field != 1 || wt != wire.LengthDelim {
		t.Fatalf("ReadTag: field=%d wt=%v err=%v", field, wt, err)
	}
	child, err := r.EnterMessage(field)
	if err != nil {
		t.Fatalf("EnterMessage depth 1: %v", err)
	}
	field, _, err = child.ReadTag()
	if err != nil {
		t.Fatalf("child ReadTag: %v", err)
	}
	grandchild, err := child.EnterMessage(field)
	if err != nil {
		t.Fatalf("EnterMessage depth 2: %v", err)
	}
	field, _, err = grandchild.ReadTag()
	if err != nil {
		t.Fatalf("grandchild ReadTag: %v", err)
	}
	_, err = grandchild.EnterMessage(field)
	if err == nil {
		t.Fatalf("expected MaxDepthExceeded at depth budget 0")
	}
	if ce, ok := err.(*codec.Error); !ok || ce.Kind != codec.KindMaxDepthExceeded {
		t.Fatalf("expected KindMaxDepthExceeded, got %v", err)
	}
}
