package codec

import (
	pbjbytes "github.com/hashgraph/pbj-go/bytes"
	"github.com/hashgraph/pbj-go/buffer"
	"github.com/hashgraph/pbj-go/wire"
)

// Reader drives parse(): it pairs a buffer.Readable cursor with a
// recursion-depth budget, replacing the teacher's reflection-driven
// unmarshal_struct (protobuf3/decode.go) with plain calls a generated
// parse function makes directly against a FieldTable.
type Reader struct {
	buf   buffer.Readable
	Cfg   ParseConfig
	depth uint32
}

// NewReader starts a top-level parse at full depth budget.
func NewReader(buf buffer.Readable, cfg ParseConfig) *Reader {
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return &Reader{buf: buf, Cfg: cfg, depth: cfg.MaxDepth}
}

func (r *Reader) offset() int64 { return r.buf.Position() }

// HasRemaining reports whether the parse loop (spec.md §4.3.1) should
// continue.
func (r *Reader) HasRemaining() bool { return r.buf.HasRemaining() }

// ReadTag decodes the next field tag, splitting it into field number and
// wire type, and rejects field number 0 or out of the legal range
// (spec.md §7 BadField).
func (r *Reader) ReadTag() (field uint32, wt wire.WireType, err error) {
	off := r.offset()
	v, err := r.buf.ReadVarint(false)
	if err != nil {
		return 0, 0, wrap(err, 0, off)
	}
	field, wt = wire.SplitTag(v)
	if field == 0 || field > wire.MaxFieldNumber {
		return field, wt, badField(field, off)
	}
	return field, wt, nil
}

func (r *Reader) ReadVarint() (uint64, error) {
	off := r.offset()
	v, err := r.buf.ReadVarint(false)
	if err != nil {
		return 0, wrap(err, 0, off)
	}
	return v, nil
}

func (r *Reader) ReadZigZag() (int64, error) {
	off := r.offset()
	v, err := r.buf.ReadVarint(true)
	if err != nil {
		return 0, wrap(err, 0, off)
	}
	return int64(v), nil
}

func (r *Reader) ReadFixed32() (uint32, error) {
	off := r.offset()
	v, err := r.buf.ReadFixed32()
	return v, wrap(err, 0, off)
}

func (r *Reader) ReadFixed64() (uint64, error) {
	off := r.offset()
	v, err := r.buf.ReadFixed64()
	return v, wrap(err, 0, off)
}

func (r *Reader) ReadFloat() (float32, error) {
	off := r.offset()
	v, err := r.buf.ReadFloat()
	return v, wrap(err, 0, off)
}

func (r *Reader) ReadDouble() (float64, error) {
	off := r.offset()
	v, err := r.buf.ReadDouble()
	return v, wrap(err, 0, off)
}

// readLengthPrefixed reads a varint length then that many raw bytes,
// shared by ReadString, ReadBytes and EnterMessage.
func (r *Reader) readLengthPrefixed(field uint32) ([]byte, error) {
	off := r.offset()
	n, err := r.buf.ReadVarint(false)
	if err != nil {
		return nil, wrap(err, field, off)
	}
	if n > uint64(r.buf.Remaining()) {
		return nil, newError(KindTruncated, field, off, nil)
	}
	dst := make([]byte, n)
	got, err := r.buf.ReadBytes(dst)
	if err != nil {
		return nil, wrap(err, field, off)
	}
	if got != int(n) {
		return nil, newError(KindTruncated, field, off, nil)
	}
	return dst, nil
}

// ReadString reads a length-delimited field and strictly validates it as
// UTF-8 (spec.md §4.3.1 string row).
func (r *Reader) ReadString(field uint32) (string, error) {
	raw, err := r.readLengthPrefixed(field)
	if err != nil {
		return "", err
	}
	s, err := wire.DecodeString(raw, 0, len(raw))
	if err != nil {
		return "", newError(KindMalformedString, field, r.offset(), err)
	}
	return s, nil
}

// ReadBytes reads a length-delimited field as an opaque Bytes value.
func (r *Reader) ReadBytes(field uint32) (pbjbytes.Bytes, error) {
	raw, err := r.readLengthPrefixed(field)
	if err != nil {
		return pbjbytes.Bytes{}, err
	}
	return pbjbytes.Wrap(raw), nil
}

// EnterMessage reads the length prefix of a nested message field and
// returns a child Reader scoped to exactly that many bytes, with the
// depth budget decremented. Exiting without fully consuming the child's
// bytes is the caller's responsibility to treat as malformed (the generated
// parse loop simply loops until the child has no bytes remaining).
func (r *Reader) EnterMessage(field uint32) (*Reader, error) {
	if r.depth == 0 {
		return nil, maxDepthExceeded(field, r.offset())
	}
	raw, err := r.readLengthPrefixed(field)
	if err != nil {
		return nil, err
	}
	child := &Reader{buf: sliceReadable(raw), Cfg: r.Cfg, depth: r.depth - 1}
	return child, nil
}

// sliceReadable adapts a raw []byte into a buffer.Readable for nested
// message parsing.
func sliceReadable(b []byte) buffer.Readable { return buffer.Wrap(b) }

// SkipField discards the payload of an unknown field per its wire type,
// per spec.md §4.3.1 step 2's "else: skip it" branch.
func (r *Reader) SkipField(field uint32, wt wire.WireType) error {
	off := r.offset()
	switch wt {
	case wire.Varint:
		if _, err := r.buf.ReadVarint(false); err != nil {
			return wrap(err, field, off)
		}
	case wire.Fixed32:
		if _, err := r.buf.ReadFixed32(); err != nil {
			return wrap(err, field, off)
		}
	case wire.Fixed64:
		if _, err := r.buf.ReadFixed64(); err != nil {
			return wrap(err, field, off)
		}
	case wire.LengthDelim:
		if _, err := r.readLengthPrefixed(field); err != nil {
			return err
		}
	default:
		return wireTypeMismatch(field, off, wt, wire.Varint)
	}
	return nil
}

// CaptureUnknown reads the raw payload bytes for an unknown field's wire
// type (without discarding them) so the caller can append an
// UnknownField.
func (r *Reader) CaptureUnknown(field uint32, wt wire.WireType) (UnknownField, error) {
	off := r.offset()
	var raw []byte
	var err error
	switch wt {
	case wire.Varint:
		start := off
		v, e := r.buf.ReadVarint(false)
		err = e
		if err == nil {
			raw = wire.AppendVarint(nil, v)
		}
		_ = start
	case wire.Fixed32:
		v, e := r.buf.ReadFixed32()
		err = e
		if err == nil {
			raw = wire.AppendFixed32(nil, v)
		}
	case wire.Fixed64:
		v, e := r.buf.ReadFixed64()
		err = e
		if err == nil {
			raw = wire.AppendFixed64(nil, v)
		}
	case wire.LengthDelim:
		raw, err = r.readLengthPrefixed(field)
	default:
		return UnknownField{}, wireTypeMismatch(field, off, wt, wire.Varint)
	}
	if err != nil {
		return UnknownField{}, wrap(err, field, off)
	}
	return UnknownField{Field: field, WireType: wt, Bytes: pbjbytes.Wrap(raw)}, nil
}
