package codec

import (
	pbjbytes "github.com/hashgraph/pbj-go/bytes"
	"github.com/hashgraph/pbj-go/buffer"
	"github.com/hashgraph/pbj-go/wire"
)

// Writer drives write(): canonical, ascending-field-number, byte-for-byte
// reproducible output (spec.md §4.3.2).
type Writer struct {
	buf buffer.Writable
}

func NewWriter(buf buffer.Writable) *Writer { return &Writer{buf: buf} }

func (w *Writer) Tag(field uint32, wt wire.WireType) error {
	return wrap(w.buf.WriteVarint(wire.Tag(field, wt), false), field, w.buf.Position())
}

func (w *Writer) Varint(field uint32, v uint64) error {
	if err := w.Tag(field, wire.Varint); err != nil {
		return err
	}
	return wrap(w.buf.WriteVarint(v, false), field, w.buf.Position())
}

func (w *Writer) ZigZag(field uint32, v int64) error {
	if err := w.Tag(field, wire.Varint); err != nil {
		return err
	}
	return wrap(w.buf.WriteVarint(uint64(v), true), field, w.buf.Position())
}

func (w *Writer) Fixed32(field uint32, v uint32) error {
	if err := w.Tag(field, wire.Fixed32); err != nil {
		return err
	}
	return wrap(w.buf.WriteFixed32(v), field, w.buf.Position())
}

func (w *Writer) Fixed64(field uint32, v uint64) error {
	if err := w.Tag(field, wire.Fixed64); err != nil {
		return err
	}
	return wrap(w.buf.WriteFixed64(v), field, w.buf.Position())
}

func (w *Writer) Float(field uint32, v float32) error {
	return w.Fixed32(field, wire.Float32bits(v))
}

func (w *Writer) Double(field uint32, v float64) error {
	return w.Fixed64(field, wire.Float64bits(v))
}

func (w *Writer) String(field uint32, s string) error {
	n, err := wire.EncodedLen(s)
	if err != nil {
		return newError(KindMalformedString, field, w.buf.Position(), err)
	}
	if err := w.Tag(field, wire.LengthDelim); err != nil {
		return err
	}
	if err := wrap(w.buf.WriteVarint(uint64(n), false), field, w.buf.Position()); err != nil {
		return err
	}
	dst := make([]byte, n)
	if _, err := wire.EncodeString(dst, 0, s); err != nil {
		return newError(KindMalformedString, field, w.buf.Position(), err)
	}
	return wrap(w.buf.WriteBytes(dst), field, w.buf.Position())
}

func (w *Writer) Bytes(field uint32, b pbjbytes.Bytes) error {
	if err := w.Tag(field, wire.LengthDelim); err != nil {
		return err
	}
	if err := wrap(w.buf.WriteVarint(uint64(b.Len()), false), field, w.buf.Position()); err != nil {
		return err
	}
	return wrap(w.buf.WriteBytes(b.Raw()), field, w.buf.Position())
}

// RawBytes writes field's length-delimited tag/length followed by raw,
// unvalidated payload bytes, used for nested messages (the caller has
// already measured the child) and unknown-field re-emission.
func (w *Writer) RawBytes(field uint32, raw []byte) error {
	if err := w.Tag(field, wire.LengthDelim); err != nil {
		return err
	}
	if err := wrap(w.buf.WriteVarint(uint64(len(raw)), false), field, w.buf.Position()); err != nil {
		return err
	}
	return wrap(w.buf.WriteBytes(raw), field, w.buf.Position())
}

// RawVarint writes field's tag plus a varint payload already encoded
// (used for unknown-field re-emission, where the payload bytes were
// captured verbatim rather than a logical value).
func (w *Writer) RawVarint(field uint32, payload []byte) error {
	if err := w.Tag(field, wire.Varint); err != nil {
		return err
	}
	return wrap(w.buf.WriteBytes(payload), field, w.buf.Position())
}

func (w *Writer) RawFixed32(field uint32, payload []byte) error {
	if err := w.Tag(field, wire.Fixed32); err != nil {
		return err
	}
	return wrap(w.buf.WriteBytes(payload), field, w.buf.Position())
}

func (w *Writer) RawFixed64(field uint32, payload []byte) error {
	if err := w.Tag(field, wire.Fixed64); err != nil {
		return err
	}
	return wrap(w.buf.WriteBytes(payload), field, w.buf.Position())
}

// WriteUnknownFields re-emits captured unknown fields in ascending
// field-number order, arrival order preserved within a field number
// (spec.md §4.3.2 rule 8).
func (w *Writer) WriteUnknownFields(list *UnknownFieldList) error {
	for _, u := range list.Ordered() {
		var err error
		switch u.WireType {
		case wire.Varint:
			err = w.RawVarint(u.Field, u.Bytes.Raw())
		case wire.Fixed32:
			err = w.RawFixed32(u.Field, u.Bytes.Raw())
		case wire.Fixed64:
			err = w.RawFixed64(u.Field, u.Bytes.Raw())
		case wire.LengthDelim:
			err = w.RawBytes(u.Field, u.Bytes.Raw())
		default:
			err = wireTypeMismatch(u.Field, w.buf.Position(), u.WireType, wire.Varint)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SizeUnknownFields measures the re-emitted size of list without writing,
// for use inside measure_record's single size-computing traversal.
func SizeUnknownFields(list *UnknownFieldList) int {
	total := 0
	for _, u := range list.Ordered() {
		total += wire.SizeVarint(wire.Tag(u.Field, u.WireType))
		switch u.WireType {
		case wire.Varint:
			total += u.Bytes.Len()
		case wire.Fixed32:
			total += 4
		case wire.Fixed64:
			total += 8
		case wire.LengthDelim:
			total += wire.SizeVarint(uint64(u.Bytes.Len())) + u.Bytes.Len()
		}
	}
	return total
}

// SizeTag, SizeVarintField, SizeZigZagField, SizeFixed32Field,
// SizeFixed64Field, SizeStringField, SizeBytesField and SizeMessageField
// mirror the Writer field methods but compute byte counts only, for
// measure_record (spec.md §4.3.3). A nested message's size is passed in
// by the caller; nothing here caches it, and the gen codecs compute each
// nested entry's size again when writing instead of reusing the measured
// sizes.

func SizeTag(field uint32, wt wire.WireType) int {
	return wire.SizeVarint(wire.Tag(field, wt))
}

func SizeVarintField(field uint32, v uint64) int {
	return SizeTag(field, wire.Varint) + wire.SizeVarint(v)
}

func SizeZigZagField(field uint32, v int64) int {
	return SizeTag(field, wire.Varint) + wire.SizeVarint(wire.ZigZagEncode64(v))
}

func SizeFixed32Field(field uint32) int { return SizeTag(field, wire.Fixed32) + 4 }
func SizeFixed64Field(field uint32) int { return SizeTag(field, wire.Fixed64) + 8 }

func SizeStringField(field uint32, s string) (int, error) {
	n, err := wire.EncodedLen(s)
	if err != nil {
		return 0, err
	}
	return SizeTag(field, wire.LengthDelim) + wire.SizeVarint(uint64(n)) + n, nil
}

func SizeBytesField(field uint32, b pbjbytes.Bytes) int {
	return SizeTag(field, wire.LengthDelim) + wire.SizeVarint(uint64(b.Len())) + b.Len()
}

func SizeMessageField(field uint32, childSize int) int {
	return SizeTag(field, wire.LengthDelim) + wire.SizeVarint(uint64(childSize)) + childSize
}
