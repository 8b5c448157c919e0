package buffer

import (
	"io"
	"math"

	"github.com/hashgraph/pbj-go/wire"
)

// unboundedCapacity is the sentinel Capacity() returned by a streaming
// buffer with no explicit bound: the largest representable extent, so
// Remaining() stays meaningful without callers special-casing "unbounded".
const unboundedCapacity = math.MaxInt64

// ReadableStreamingData adapts an io.Reader to Readable, tracking Position
// as the count of bytes consumed so far. It has no random-access view:
// spec.md scopes RandomAccessData to in-memory buffers only.
type ReadableStreamingData struct {
	r        io.Reader
	pos      int64
	limit    int64
	eof      bool
	scratch8 [8]byte
}

// NewReadableStreamingData wraps r with capacity bound limit, or
// unboundedCapacity if limit <= 0.
func NewReadableStreamingData(r io.Reader, limit int64) *ReadableStreamingData {
	if limit <= 0 {
		limit = unboundedCapacity
	}
	return &ReadableStreamingData{r: r, limit: limit}
}

func (s *ReadableStreamingData) Capacity() int64  { return s.limit }
func (s *ReadableStreamingData) Position() int64  { return s.pos }
func (s *ReadableStreamingData) Limit() int64     { return s.limit }
func (s *ReadableStreamingData) Remaining() int64 { return s.limit - s.pos }
func (s *ReadableStreamingData) HasRemaining() bool {
	if s.eof {
		return false
	}
	return s.Remaining() > 0
}

func (s *ReadableStreamingData) SetPosition(p int64) error {
	if p < s.pos {
		// a stream cursor cannot move backward without re-reading.
		return ErrUnderflow
	}
	return s.Skip(p - s.pos)
}

func (s *ReadableStreamingData) SetLimit(l int64) error {
	if l < s.pos {
		l = s.pos
	}
	s.limit = l
	return nil
}

func (s *ReadableStreamingData) fill(dst []byte) (int, error) {
	if s.pos >= s.limit {
		return 0, ErrUnderflow
	}
	n := len(dst)
	if rem := s.limit - s.pos; int64(n) > rem {
		n = int(rem)
	}
	read, err := io.ReadFull(s.r, dst[:n])
	s.pos += int64(read)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			s.eof = true
			if read == 0 {
				return 0, ErrUnderflow
			}
			return read, nil
		}
		return read, &ErrIO{Err: err}
	}
	return read, nil
}

func (s *ReadableStreamingData) ReadByte() (byte, error) {
	n, err := s.fill(s.scratch8[:1])
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, ErrUnderflow
	}
	return s.scratch8[0], nil
}

func (s *ReadableStreamingData) ReadBytes(dst []byte) (int, error) {
	return s.fill(dst)
}

func (s *ReadableStreamingData) ReadVarint(zigzag bool) (uint64, error) {
	var x uint64
	var shift uint
	for {
		b, err := s.ReadByte()
		if err != nil {
			return 0, err
		}
		if shift == 63 {
			if b > 1 {
				return 0, wire.ErrMalformedVarint
			}
			x |= uint64(b) << shift
			break
		}
		x |= uint64(b&0x7F) << shift
		if b < 0x80 {
			break
		}
		shift += 7
		if shift >= 70 {
			return 0, wire.ErrMalformedVarint
		}
	}
	if zigzag {
		x = uint64(wire.ZigZagDecode64(x))
	}
	return x, nil
}

func (s *ReadableStreamingData) ReadFixed32() (uint32, error) {
	n, err := s.fill(s.scratch8[:4])
	if err != nil {
		return 0, err
	}
	if n < 4 {
		return 0, ErrUnderflow
	}
	v, _, err := wire.ConsumeFixed32(s.scratch8[:4], 0)
	return v, err
}

func (s *ReadableStreamingData) ReadFixed64() (uint64, error) {
	n, err := s.fill(s.scratch8[:8])
	if err != nil {
		return 0, err
	}
	if n < 8 {
		return 0, ErrUnderflow
	}
	v, _, err := wire.ConsumeFixed64(s.scratch8[:8], 0)
	return v, err
}

func (s *ReadableStreamingData) ReadFloat() (float32, error) {
	v, err := s.ReadFixed32()
	if err != nil {
		return 0, err
	}
	return wire.Float32frombits(v), nil
}

func (s *ReadableStreamingData) ReadDouble() (float64, error) {
	v, err := s.ReadFixed64()
	if err != nil {
		return 0, err
	}
	return wire.Float64frombits(v), nil
}

// Skip discards n bytes by reading and discarding them, clamped to what
// actually remains (spec.md Open Question 1: corrected min-based clamp,
// not the historical max-based one that could walk Position past Limit).
func (s *ReadableStreamingData) Skip(n int64) error {
	if n < 0 {
		n = 0
	}
	if rem := s.Remaining(); n > rem {
		n = rem
	}
	discard := make([]byte, 4096)
	for n > 0 {
		chunk := int64(len(discard))
		if n < chunk {
			chunk = n
		}
		got, err := s.fill(discard[:chunk])
		n -= int64(got)
		if err != nil {
			return err
		}
		if got == 0 {
			break
		}
	}
	return nil
}

// Close closes the underlying reader if it implements io.Closer,
// swallowing any error it returns (spec.md §5: "closing the buffer closes
// the stream; errors swallowed").
func (s *ReadableStreamingData) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		_ = c.Close()
	}
	return nil
}

// WritableStreamingData adapts an io.Writer to Writable.
type WritableStreamingData struct {
	w        io.Writer
	pos      int64
	limit    int64
	scratch8 [8]byte
}

func NewWritableStreamingData(w io.Writer, limit int64) *WritableStreamingData {
	if limit <= 0 {
		limit = unboundedCapacity
	}
	return &WritableStreamingData{w: w, limit: limit}
}

func (s *WritableStreamingData) Capacity() int64    { return s.limit }
func (s *WritableStreamingData) Position() int64    { return s.pos }
func (s *WritableStreamingData) Limit() int64       { return s.limit }
func (s *WritableStreamingData) Remaining() int64   { return s.limit - s.pos }
func (s *WritableStreamingData) HasRemaining() bool { return s.Remaining() > 0 }

func (s *WritableStreamingData) SetPosition(p int64) error {
	if p < s.pos {
		return ErrOverflow // a stream cursor cannot move backward
	}
	return s.Skip(p - s.pos)
}

func (s *WritableStreamingData) SetLimit(l int64) error {
	if l < s.pos {
		l = s.pos
	}
	s.limit = l
	return nil
}

func (s *WritableStreamingData) drain(src []byte) error {
	if int64(len(src)) > s.Remaining() {
		return ErrOverflow
	}
	n, err := s.w.Write(src)
	s.pos += int64(n)
	if err != nil {
		return &ErrIO{Err: err}
	}
	return nil
}

func (s *WritableStreamingData) WriteByte(b byte) error {
	s.scratch8[0] = b
	return s.drain(s.scratch8[:1])
}

func (s *WritableStreamingData) WriteBytes(src []byte) error { return s.drain(src) }

func (s *WritableStreamingData) WriteVarint(x uint64, zigzagInput bool) error {
	if zigzagInput {
		x = wire.ZigZagEncode64(int64(x))
	}
	buf := wire.AppendVarint(s.scratch8[:0], x)
	if len(buf) <= len(s.scratch8) {
		return s.drain(buf)
	}
	return s.drain(wire.AppendVarint(nil, x))
}

func (s *WritableStreamingData) WriteFixed32(x uint32) error {
	return s.drain(wire.AppendFixed32(s.scratch8[:0], x))
}

func (s *WritableStreamingData) WriteFixed64(x uint64) error {
	return s.drain(wire.AppendFixed64(s.scratch8[:0], x))
}

func (s *WritableStreamingData) WriteFloat(f float32) error {
	return s.WriteFixed32(wire.Float32bits(f))
}

func (s *WritableStreamingData) WriteDouble(f float64) error {
	return s.WriteFixed64(wire.Float64bits(f))
}

// Skip advances Position by n, writing n zero bytes so the stream stays
// byte-for-byte consistent with a heap buffer's Skip.
func (s *WritableStreamingData) Skip(n int64) error {
	if n < 0 {
		n = 0
	}
	if n > s.Remaining() {
		return ErrOverflow
	}
	zeros := make([]byte, 4096)
	for n > 0 {
		chunk := int64(len(zeros))
		if n < chunk {
			chunk = n
		}
		if err := s.drain(zeros[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Flush forwards to the underlying writer if it exposes a Flush method
// (e.g. *bufio.Writer); otherwise it is a no-op.
func (s *WritableStreamingData) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return &ErrIO{Err: err}
		}
	}
	return nil
}

// Close closes the underlying writer if it implements io.Closer,
// swallowing any error it returns (spec.md §5: "closing the buffer closes
// the stream; errors swallowed").
func (s *WritableStreamingData) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		_ = c.Close()
	}
	return nil
}
