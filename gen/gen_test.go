package gen_test

import (
	"testing"

	"github.com/hashgraph/pbj-go/buffer"
	"github.com/hashgraph/pbj-go/codec"
	"github.com/hashgraph/pbj-go/gen"
	"github.com/hashgraph/pbj-go/model"
)

func writeAll(t *testing.T, n int, fn func(*buffer.BufferedData) error) []byte {
	t.Helper()
	b := buffer.Allocate(n)
	if err := fn(b); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := make([]byte, b.Position())
	b.SetLimit(b.Position())
	b.SetPosition(0)
	b.ReadBytes(out)
	return out
}

func TestTimestampVector(t *testing.T) {
	ts := gen.Timestamp{Seconds: 5678, Nanos: 1234}
	got := writeAll(t, 16, func(b *buffer.BufferedData) error { return gen.WriteTimestamp(ts, b) })
	want := []byte{0x08, 0xAE, 0x2C, 0x10, 0xD2, 0x09}
	if string(got) != string(want) {
		t.Fatalf("WriteTimestamp = % x, want % x", got, want)
	}
	if n := gen.MeasureRecordTimestamp(ts); n != len(want) {
		t.Fatalf("MeasureRecordTimestamp = %d, want %d", n, len(want))
	}

	parsed, err := gen.ParseTimestamp(buffer.Wrap(want), codec.DefaultParseConfig())
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	if !gen.TimestampEqual(parsed, ts) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", parsed, ts)
	}
}

func TestTimestampDefaultRoundTrip(t *testing.T) {
	got := writeAll(t, 4, func(b *buffer.BufferedData) error { return gen.WriteTimestamp(gen.DefaultTimestamp, b) })
	if len(got) != 0 {
		t.Fatalf("expected empty bytes for default instance, got % x", got)
	}
	parsed, err := gen.ParseTimestamp(buffer.Wrap(nil), codec.DefaultParseConfig())
	if err != nil || !gen.TimestampEqual(parsed, gen.DefaultTimestamp) {
		t.Fatalf("parse([]) should yield DEFAULT: got %+v, err %v", parsed, err)
	}
}

func TestSamplePackedRepeatedVector(t *testing.T) {
	s := gen.Sample{Numbers: []int32{1, 2, 3, 300}, Tags: map[string]int32{}}
	got := writeAll(t, 32, func(b *buffer.BufferedData) error { return gen.WriteSample(s, b) })
	want := []byte{0x0A, 0x05, 0x01, 0x02, 0x03, 0xAC, 0x02}
	if string(got) != string(want) {
		t.Fatalf("packed numbers = % x, want % x", got, want)
	}
}

func TestSampleUnpackedInputMergesToPacked(t *testing.T) {
	unpacked := []byte{0x08, 0x01, 0x08, 0x02, 0x08, 0x03, 0x08, 0xAC, 0x02}
	parsed, err := gen.ParseSample(buffer.Wrap(unpacked), codec.DefaultParseConfig())
	if err != nil {
		t.Fatalf("ParseSample(unpacked): %v", err)
	}
	want := []int32{1, 2, 3, 300}
	if len(parsed.Numbers) != len(want) {
		t.Fatalf("Numbers = %v, want %v", parsed.Numbers, want)
	}
	for i := range want {
		if parsed.Numbers[i] != want[i] {
			t.Fatalf("Numbers[%d] = %d, want %d", i, parsed.Numbers[i], want[i])
		}
	}
	reWritten := writeAll(t, 32, func(b *buffer.BufferedData) error { return gen.WriteSample(parsed, b) })
	packed := []byte{0x0A, 0x05, 0x01, 0x02, 0x03, 0xAC, 0x02}
	if string(reWritten) != string(packed) {
		t.Fatalf("re-written = % x, want packed form % x", reWritten, packed)
	}
}

func TestSampleMapSortedKeyOrder(t *testing.T) {
	s := gen.Sample{Tags: map[string]int32{"b": 2, "a": 1}}
	got := writeAll(t, 32, func(b *buffer.BufferedData) error { return gen.WriteSample(s, b) })

	reverse := gen.Sample{Tags: map[string]int32{"a": 1, "b": 2}}
	gotReverse := writeAll(t, 32, func(b *buffer.BufferedData) error { return gen.WriteSample(reverse, b) })
	if string(got) != string(gotReverse) {
		t.Fatalf("map write should be order-independent: % x vs % x", got, gotReverse)
	}

	parsed, err := gen.ParseSample(buffer.Wrap(got), codec.DefaultParseConfig())
	if err != nil {
		t.Fatalf("ParseSample: %v", err)
	}
	if parsed.Tags["a"] != 1 || parsed.Tags["b"] != 2 {
		t.Fatalf("Tags = %v, want a=1 b=2", parsed.Tags)
	}
}

func TestSampleOneOfEmptyStringStillEmitted(t *testing.T) {
	s := gen.Sample{Tags: map[string]int32{}}
	s.Choice = model.Of[gen.SampleChoiceKind, any](gen.ChoiceName, "")
	got := writeAll(t, 16, func(b *buffer.BufferedData) error { return gen.WriteSample(s, b) })
	// tag for field 3 (3<<3|2 = 26 = 0x1A), length 0.
	want := []byte{0x1A, 0x00}
	if string(got) != string(want) {
		t.Fatalf("empty-string oneof = % x, want % x", got, want)
	}
}

func TestSampleUnknownFieldCarryThrough(t *testing.T) {
	// field 999 varint value 42, appearing after field 1 (numbers).
	tag999 := uint64(999)<<3 | 0
	input := []byte{0x0A, 0x01, 0x01} // numbers = [1], packed
	var tagBuf []byte
	for v := tag999; ; {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			tagBuf = append(tagBuf, b)
			break
		}
		tagBuf = append(tagBuf, b|0x80)
	}
	input = append(input, tagBuf...)
	input = append(input, 42)

	parsed, err := gen.ParseSample(buffer.Wrap(input), codec.ParseConfig{ParseUnknownFields: true, MaxDepth: 64})
	if err != nil {
		t.Fatalf("ParseSample: %v", err)
	}
	if parsed.UnknownFields().IsEmpty() {
		t.Fatalf("expected unknown field 999 to be captured")
	}
	reWritten := writeAll(t, 32, func(b *buffer.BufferedData) error { return gen.WriteSample(parsed, b) })
	if len(reWritten) <= len(input)-3 {
		t.Fatalf("expected unknown field bytes carried into re-written output")
	}

	droppedCfg := codec.ParseConfig{ParseUnknownFields: false, MaxDepth: 64}
	parsedDropped, err := gen.ParseSample(buffer.Wrap(input), droppedCfg)
	if err != nil {
		t.Fatalf("ParseSample (drop unknown): %v", err)
	}
	if !parsedDropped.UnknownFields().IsEmpty() {
		t.Fatalf("expected unknown fields dropped when ParseUnknownFields is false")
	}
}

func TestTimestampFastEquals(t *testing.T) {
	ts := gen.Timestamp{Seconds: 5678, Nanos: 1234}
	wire := writeAll(t, 16, func(b *buffer.BufferedData) error { return gen.WriteTimestamp(ts, b) })

	ok, err := gen.FastEqualsTimestamp(ts, buffer.Wrap(wire))
	if err != nil || !ok {
		t.Fatalf("FastEqualsTimestamp(matching) = %v, %v, want true, nil", ok, err)
	}

	other := gen.Timestamp{Seconds: 5678, Nanos: 1235}
	ok, err = gen.FastEqualsTimestamp(other, buffer.Wrap(wire))
	if err != nil || ok {
		t.Fatalf("FastEqualsTimestamp(divergent nanos) = %v, %v, want false, nil", ok, err)
	}

	shorter := gen.Timestamp{Seconds: 5678}
	ok, err = gen.FastEqualsTimestamp(shorter, buffer.Wrap(wire))
	if err != nil || ok {
		t.Fatalf("FastEqualsTimestamp(divergent length) = %v, %v, want false, nil", ok, err)
	}
}

func TestSampleFastEquals(t *testing.T) {
	s := gen.Sample{Numbers: []int32{1, 2, 3, 300}, Tags: map[string]int32{"a": 1, "b": 2}}
	wire := writeAll(t, 64, func(b *buffer.BufferedData) error { return gen.WriteSample(s, b) })

	ok, err := gen.FastEqualsSample(s, buffer.Wrap(wire))
	if err != nil || !ok {
		t.Fatalf("FastEqualsSample(matching) = %v, %v, want true, nil", ok, err)
	}

	other := gen.Sample{Numbers: []int32{1, 2, 3, 301}, Tags: map[string]int32{"a": 1, "b": 2}}
	ok, err = gen.FastEqualsSample(other, buffer.Wrap(wire))
	if err != nil || ok {
		t.Fatalf("FastEqualsSample(divergent numbers) = %v, %v, want false, nil", ok, err)
	}
}
