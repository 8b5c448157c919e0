// Package gen holds hand-written example codecs demonstrating the L4
// contract (spec.md §4.3, §6.3) against concrete messages exercised by the
// testable properties of §8.3. They are maintained by hand:
// compiler/codegen emits only the record-type part of such a file, and the
// .proto grammar parser is out of scope (spec.md §1).
package gen

import (
	"github.com/hashgraph/pbj-go/buffer"
	"github.com/hashgraph/pbj-go/codec"
	pbjwire "github.com/hashgraph/pbj-go/wire"
)

// Timestamp is the spec.md §8.3 scenario-1 message: two implicit-presence
// int64/int32 fields.
type Timestamp struct {
	Seconds int64
	Nanos   int32

	unknown codec.UnknownFieldList
}

var timestampFields = codec.NewFieldTable([]*codec.FieldDefinition{
	{Name: "seconds", Type: codec.TypeInt64, Number: 1},
	{Name: "nanos", Type: codec.TypeInt32, Number: 2},
})

// DefaultTimestamp is Timestamp's DEFAULT instance: all fields at their
// Proto3 zero value (spec.md §3.3).
var DefaultTimestamp = Timestamp{}

func (t *Timestamp) FieldDefByNumber(n uint32) (*codec.FieldDefinition, bool) {
	return timestampFields.ByNumber(n)
}

func (t *Timestamp) UnknownFields() *codec.UnknownFieldList { return &t.unknown }

// ParseTimestamp implements parse() (spec.md §4.3.1).
func ParseTimestamp(buf buffer.Readable, cfg codec.ParseConfig) (Timestamp, error) {
	r := codec.NewReader(buf, cfg)
	var t Timestamp
	for r.HasRemaining() {
		field, wt, err := r.ReadTag()
		if err != nil {
			return Timestamp{}, err
		}
		def, known := timestampFields.ByNumber(field)
		if !known {
			if cfg.ParseUnknownFields {
				u, err := r.CaptureUnknown(field, wt)
				if err != nil {
					return Timestamp{}, err
				}
				t.unknown.Append(u)
			} else if err := r.SkipField(field, wt); err != nil {
				return Timestamp{}, err
			}
			continue
		}
		if wt != pbjwire.Varint {
			return Timestamp{}, wireTypeErr(field, wt, pbjwire.Varint)
		}
		switch def.Number {
		case 1:
			v, err := r.ReadVarint()
			if err != nil {
				return Timestamp{}, err
			}
			t.Seconds = int64(v)
		case 2:
			v, err := r.ReadVarint()
			if err != nil {
				return Timestamp{}, err
			}
			t.Nanos = int32(v)
		}
	}
	return t, nil
}

// WriteTimestamp implements write() (spec.md §4.3.2): ascending field
// number, implicit-presence defaults suppressed.
func WriteTimestamp(t Timestamp, buf buffer.Writable) error {
	w := codec.NewWriter(buf)
	if t.Seconds != 0 {
		if err := w.Varint(1, uint64(t.Seconds)); err != nil {
			return err
		}
	}
	if t.Nanos != 0 {
		if err := w.Varint(2, uint64(t.Nanos)); err != nil {
			return err
		}
	}
	return w.WriteUnknownFields(&t.unknown)
}

// MeasureRecordTimestamp implements measure_record() (spec.md §4.3.3).
func MeasureRecordTimestamp(t Timestamp) int {
	n := 0
	if t.Seconds != 0 {
		n += codec.SizeVarintField(1, uint64(t.Seconds))
	}
	if t.Nanos != 0 {
		n += codec.SizeVarintField(2, uint64(t.Nanos))
	}
	n += codec.SizeUnknownFields(&t.unknown)
	return n
}

// MeasureTimestamp implements measure(): bytes consumed by a single
// message starting at buf's current position, without materialising it.
func MeasureTimestamp(buf buffer.Readable) (int, error) {
	start := buf.Position()
	t, err := ParseTimestamp(buf, codec.DefaultParseConfig())
	if err != nil {
		return 0, err
	}
	_ = t
	return int(buf.Position() - start), nil
}

// FastEqualsTimestamp implements fast_equals() (spec.md §4.3.4): streams
// buf byte-by-byte against the bytes WriteTimestamp would emit for t,
// without ever materialising buf into a second Timestamp, returning false
// at the first divergence.
func FastEqualsTimestamp(t Timestamp, buf buffer.Readable) (bool, error) {
	n := MeasureRecordTimestamp(t)
	if buf.Remaining() != int64(n) {
		return false, nil
	}
	scratch := buffer.Allocate(n)
	if err := WriteTimestamp(t, scratch); err != nil {
		return false, err
	}
	want := scratch.ToBytes()
	for i := 0; i < n; i++ {
		got, err := buf.ReadByte()
		if err != nil {
			return false, err
		}
		if got != want[i] {
			return false, nil
		}
	}
	return true, nil
}

// TimestampEqual implements the comparable contract (spec.md §3.3):
// field-by-field equality plus structural unknown-field comparison.
func TimestampEqual(a, b Timestamp) bool {
	return a.Seconds == b.Seconds && a.Nanos == b.Nanos && a.unknown.Equal(&b.unknown)
}

func wireTypeErr(field uint32, got, want pbjwire.WireType) error {
	return &codec.Error{Kind: codec.KindWireTypeMismatch, Field: field, Got: got, Want: want}
}
