package buffer

import (
	"math"

	"github.com/hashgraph/pbj-go/wire"
)

// AllocationMode distinguishes a BufferedData's backing storage. Go has no
// cgo-free off-heap allocation, so Offheap is simulated with an ordinary
// owned slice plus single-release discipline: Release marks the buffer
// closed and drops its bytes; see Release for which operations then
// return ErrClosed. This simplification is recorded in DESIGN.md.
type AllocationMode int

const (
	Heap AllocationMode = iota
	Offheap
)

// BufferedData is a fixed-capacity in-memory buffer that is both a cursor
// (SequentialData/Readable/Writable) and an offset-addressed view
// (RandomAccessData) over the same bytes, grounded in protobuf3.Buffer's
// combination of a backing slice with a cursor index
// (protobuf3/lib.go, protobuf3/decode.go).
type BufferedData struct {
	buf    []byte
	mode   AllocationMode
	pos    int64
	limit  int64
	closed bool
}

// Wrap returns a BufferedData backed directly by b (no copy); writes
// through the buffer mutate b.
func Wrap(b []byte) *BufferedData {
	return &BufferedData{buf: b, mode: Heap, limit: int64(len(b))}
}

// Allocate returns a new zero-filled heap BufferedData of the given
// capacity, positioned at 0 with limit == capacity.
func Allocate(capacity int) *BufferedData {
	return &BufferedData{buf: make([]byte, capacity), mode: Heap, limit: int64(capacity)}
}

// AllocateOffheap behaves like Allocate but marks the buffer Offheap; see
// AllocationMode. Callers should call Release when done.
func AllocateOffheap(capacity int) *BufferedData {
	return &BufferedData{buf: make([]byte, capacity), mode: Offheap, limit: int64(capacity)}
}

// Release marks an off-heap buffer closed and drops its bytes. On a heap
// buffer it does nothing. Once closed, the Read*, Write* and Skip methods
// and GetByte, GetBytes, GetVarInt and GetVarLong return ErrClosed; the
// other accessors see an empty buffer.
func (b *BufferedData) Release() {
	if b.mode == Offheap {
		b.closed = true
		b.buf = nil
	}
}

func (b *BufferedData) checkOpen() error {
	if b.closed {
		return ErrClosed
	}
	return nil
}

// --- SequentialData ---

func (b *BufferedData) Capacity() int64 { return int64(len(b.buf)) }
func (b *BufferedData) Position() int64 { return b.pos }
func (b *BufferedData) Limit() int64    { return b.limit }
func (b *BufferedData) Remaining() int64 {
	if b.limit < b.pos {
		return 0
	}
	return b.limit - b.pos
}
func (b *BufferedData) HasRemaining() bool { return b.Remaining() > 0 }

func (b *BufferedData) SetPosition(p int64) error {
	if p < 0 {
		p = 0
	}
	if p > b.limit {
		p = b.limit
	}
	b.pos = p
	return nil
}

func (b *BufferedData) SetLimit(l int64) error {
	if l < b.pos {
		l = b.pos
	}
	if l > int64(len(b.buf)) {
		l = int64(len(b.buf))
	}
	b.limit = l
	return nil
}

// Reset rewinds Position to 0 and Limit to Capacity, mirroring
// protobuf3.Buffer.Reset.
func (b *BufferedData) Reset() {
	b.pos = 0
	b.limit = int64(len(b.buf))
}

// --- Readable ---

func (b *BufferedData) ReadByte() (byte, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	if b.Remaining() < 1 {
		return 0, ErrUnderflow
	}
	v := b.buf[b.pos]
	b.pos++
	return v, nil
}

func (b *BufferedData) ReadBytes(dst []byte) (int, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	n := len(dst)
	if rem := b.Remaining(); int64(n) > rem {
		n = int(rem)
	}
	copy(dst[:n], b.buf[b.pos:b.pos+int64(n)])
	b.pos += int64(n)
	return n, nil
}

func (b *BufferedData) ReadVarint(zigzag bool) (uint64, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	v, next, err := wire.ConsumeVarint(b.buf[:b.limit], int(b.pos))
	if err != nil {
		return 0, err
	}
	b.pos = int64(next)
	if zigzag {
		v = uint64(wire.ZigZagDecode64(v))
	}
	return v, nil
}

func (b *BufferedData) ReadFixed32() (uint32, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	v, next, err := wire.ConsumeFixed32(b.buf[:b.limit], int(b.pos))
	if err != nil {
		return 0, err
	}
	b.pos = int64(next)
	return v, nil
}

func (b *BufferedData) ReadFixed64() (uint64, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	v, next, err := wire.ConsumeFixed64(b.buf[:b.limit], int(b.pos))
	if err != nil {
		return 0, err
	}
	b.pos = int64(next)
	return v, nil
}

func (b *BufferedData) ReadFloat() (float32, error) {
	v, err := b.ReadFixed32()
	if err != nil {
		return 0, err
	}
	return wire.Float32frombits(v), nil
}

func (b *BufferedData) ReadDouble() (float64, error) {
	v, err := b.ReadFixed64()
	if err != nil {
		return 0, err
	}
	return wire.Float64frombits(v), nil
}

// Skip is BufferedData's single Skip for both its Readable and Writable
// roles: it advances Position by n clamped to Remaining and leaves the
// skipped bytes unchanged (it writes no zeros).
func (b *BufferedData) Skip(n int64) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if n < 0 {
		n = 0
	}
	// corrected semantics (spec.md Open Question 1): clamp to what
	// remains rather than the historical buggy max-based clamp, so Skip
	// never advances Position past Limit.
	if n > b.Remaining() {
		n = b.Remaining()
	}
	b.pos += n
	return nil
}

// --- Writable ---

func (b *BufferedData) WriteByte(v byte) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if b.Remaining() < 1 {
		return ErrOverflow
	}
	b.buf[b.pos] = v
	b.pos++
	return nil
}

func (b *BufferedData) WriteBytes(src []byte) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if int64(len(src)) > b.Remaining() {
		return ErrOverflow
	}
	copy(b.buf[b.pos:], src)
	b.pos += int64(len(src))
	return nil
}

func (b *BufferedData) WriteVarint(x uint64, zigzagInput bool) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if zigzagInput {
		x = wire.ZigZagEncode64(int64(x))
	}
	n := wire.SizeVarint(x)
	if int64(n) > b.Remaining() {
		return ErrOverflow
	}
	written := wire.PutVarint(b.buf, int(b.pos), x)
	if written < 0 {
		return ErrOverflow
	}
	b.pos += int64(written)
	return nil
}

func (b *BufferedData) WriteFixed32(x uint32) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if b.Remaining() < 4 {
		return ErrOverflow
	}
	buf := wire.AppendFixed32(b.buf[b.pos:b.pos], x)
	b.pos += int64(len(buf))
	return nil
}

func (b *BufferedData) WriteFixed64(x uint64) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if b.Remaining() < 8 {
		return ErrOverflow
	}
	buf := wire.AppendFixed64(b.buf[b.pos:b.pos], x)
	b.pos += int64(len(buf))
	return nil
}

func (b *BufferedData) WriteFloat(f float32) error {
	return b.WriteFixed32(wire.Float32bits(f))
}

func (b *BufferedData) WriteDouble(f float64) error {
	return b.WriteFixed64(wire.Float64bits(f))
}

func (b *BufferedData) Flush() error { return nil }

// --- RandomAccessData ---

func (b *BufferedData) Length() int64 { return int64(len(b.buf)) }

func (b *BufferedData) GetByte(offset int64) (byte, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	if offset < 0 || offset >= int64(len(b.buf)) {
		return 0, ErrUnderflow
	}
	return b.buf[offset], nil
}

func (b *BufferedData) GetBytes(offset int64, dst []byte) (int, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	if offset < 0 || offset > int64(len(b.buf)) {
		return 0, ErrUnderflow
	}
	n := len(dst)
	if avail := int64(len(b.buf)) - offset; int64(n) > avail {
		n = int(avail)
	}
	copy(dst[:n], b.buf[offset:offset+int64(n)])
	return n, nil
}

func (b *BufferedData) GetIntLE(offset int64) (int32, error) {
	v, _, err := wire.ConsumeFixed32(b.buf, int(offset))
	return int32(v), err
}

func (b *BufferedData) GetInt(offset int64) (int32, error) {
	if offset < 0 || offset+4 > int64(len(b.buf)) {
		return 0, ErrUnderflow
	}
	buf := b.buf[offset : offset+4]
	return int32(uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])), nil
}

func (b *BufferedData) GetLongLE(offset int64) (int64, error) {
	v, _, err := wire.ConsumeFixed64(b.buf, int(offset))
	return int64(v), err
}

func (b *BufferedData) GetLong(offset int64) (int64, error) {
	if offset < 0 || offset+8 > int64(len(b.buf)) {
		return 0, ErrUnderflow
	}
	buf := b.buf[offset : offset+8]
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(buf[i])
	}
	return int64(v), nil
}

func (b *BufferedData) GetFloatLE(offset int64) (float32, error) {
	v, err := b.GetIntLE(offset)
	return math.Float32frombits(uint32(v)), err
}

func (b *BufferedData) GetFloat(offset int64) (float32, error) {
	v, err := b.GetInt(offset)
	return math.Float32frombits(uint32(v)), err
}

func (b *BufferedData) GetDoubleLE(offset int64) (float64, error) {
	v, err := b.GetLongLE(offset)
	return math.Float64frombits(uint64(v)), err
}

func (b *BufferedData) GetDouble(offset int64) (float64, error) {
	v, err := b.GetLong(offset)
	return math.Float64frombits(uint64(v)), err
}

func (b *BufferedData) GetVarInt(offset int64, zigzag bool) (int32, error) {
	v, err := b.GetVarLong(offset, zigzag)
	return int32(v), err
}

func (b *BufferedData) GetVarLong(offset int64, zigzag bool) (int64, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	v, _, err := wire.ConsumeVarint(b.buf, int(offset))
	if err != nil {
		return 0, err
	}
	if zigzag {
		return wire.ZigZagDecode64(v), nil
	}
	return int64(v), nil
}

func (b *BufferedData) WriteTo(dst Writable) error {
	return dst.WriteBytes(b.buf)
}

func (b *BufferedData) Contains(offset int64, pattern []byte) bool {
	if offset < 0 || offset+int64(len(pattern)) > int64(len(b.buf)) {
		return false
	}
	// 8-byte block compare fast path, mirroring the word-at-a-time
	// comparisons an off-heap arena would use to avoid per-byte bounds
	// checks across a page.
	i := 0
	for ; i+8 <= len(pattern); i += 8 {
		a := b.buf[int(offset)+i : int(offset)+i+8]
		p := pattern[i : i+8]
		for j := 0; j < 8; j++ {
			if a[j] != p[j] {
				return false
			}
		}
	}
	for ; i < len(pattern); i++ {
		if b.buf[int(offset)+i] != pattern[i] {
			return false
		}
	}
	return true
}

func (b *BufferedData) MatchesPrefix(pattern []byte) bool {
	return b.Contains(0, pattern)
}

func (b *BufferedData) CompareTo(other RandomAccessData) int {
	return compareBytesUnsigned(b.buf, other.ToBytes())
}

func (b *BufferedData) ToBytes() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}
