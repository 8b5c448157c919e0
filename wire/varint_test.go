package wire_test

import (
	"testing"

	"github.com/hashgraph/pbj-go/wire"
)

func TestVarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 16383, 16384, 1 << 35, 1<<64 - 1}
	for _, v := range cases {
		buf := wire.AppendVarint(nil, v)
		if len(buf) > wire.MaxVarintLen64 {
			t.Fatalf("encode(%d) produced %d bytes, want <= %d", v, len(buf), wire.MaxVarintLen64)
		}
		if got := wire.SizeVarint(v); got != len(buf) {
			t.Fatalf("SizeVarint(%d) = %d, want %d", v, got, len(buf))
		}
		got, next, err := wire.ConsumeVarint(buf, 0)
		if err != nil {
			t.Fatalf("decode(%d) failed: %v", v, err)
		}
		if got != v || next != len(buf) {
			t.Fatalf("decode(%d) = (%d, %d), want (%d, %d)", v, got, next, v, len(buf))
		}
	}
}

func TestVarintTruncated(t *testing.T) {
	buf := wire.AppendVarint(nil, 1<<35)
	_, _, err := wire.ConsumeVarint(buf[:len(buf)-1], 0)
	if err != wire.ErrTruncated {
		t.Fatalf("expected ErrTruncated on a short buffer, got %v", err)
	}
}

func TestVarintMalformedOverlong(t *testing.T) {
	// 9 continuation bytes followed by a 10th byte with stray high bits
	// set: not representable in 64 bits.
	buf := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02}
	_, _, err := wire.ConsumeVarint(buf, 0)
	if err != wire.ErrMalformedVarint {
		t.Fatalf("expected ErrMalformedVarint, got %v", err)
	}
}

func TestVarintMalformedTooLong(t *testing.T) {
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0xff
	}
	buf[10] = 0x01
	_, _, err := wire.ConsumeVarint(buf, 0)
	if err != wire.ErrMalformedVarint {
		t.Fatalf("expected ErrMalformedVarint for an 11-byte varint, got %v", err)
	}
}

func TestZigZag32(t *testing.T) {
	cases := []int32{0, 1, -1, 2, -2, 1 << 20, -(1 << 20), 1<<31 - 1, -(1 << 31)}
	for _, v := range cases {
		if got := wire.ZigZagDecode32(wire.ZigZagEncode32(v)); got != v {
			t.Fatalf("zigzag32 round-trip of %d gave %d", v, got)
		}
	}
}

func TestZigZag64(t *testing.T) {
	cases := []int64{0, 1, -1, 1 << 40, -(1 << 40), 1<<63 - 1, -(1 << 63)}
	for _, v := range cases {
		if got := wire.ZigZagDecode64(wire.ZigZagEncode64(v)); got != v {
			t.Fatalf("zigzag64 round-trip of %d gave %d", v, got)
		}
	}
}

func TestTagSplit(t *testing.T) {
	field, wt := wire.SplitTag(wire.Tag(1, wire.Varint))
	if field != 1 || wt != wire.Varint {
		t.Fatalf("Tag/SplitTag round trip failed: field=%d wt=%v", field, wt)
	}
	field, wt = wire.SplitTag(wire.Tag(wire.MaxFieldNumber, wire.LengthDelim))
	if field != wire.MaxFieldNumber || wt != wire.LengthDelim {
		t.Fatalf("Tag/SplitTag round trip failed at max field number: field=%d wt=%v", field, wt)
	}
}

func TestFixed32And64RoundTrip(t *testing.T) {
	buf := wire.AppendFixed32(nil, 0xdeadbeef)
	got, next, err := wire.ConsumeFixed32(buf, 0)
	if err != nil || got != 0xdeadbeef || next != 4 {
		t.Fatalf("fixed32 round trip: got=%#x next=%d err=%v", got, next, err)
	}

	buf64 := wire.AppendFixed64(nil, 0x0102030405060708)
	got64, next64, err := wire.ConsumeFixed64(buf64, 0)
	if err != nil || got64 != 0x0102030405060708 || next64 != 8 {
		t.Fatalf("fixed64 round trip: got=%#x next=%d err=%v", got64, next64, err)
	}
}
