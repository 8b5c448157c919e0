// Package buffer implements the L1 layer of the PBJ runtime: sequential
// (cursor-based) and random-access (offset-based) views over heap arrays,
// off-heap memory, and streams, per spec.md §3.2.
//
// The cursor/limit/capacity bookkeeping is grounded in
// github.com/mistsys/protobuf3's protobuf3.Buffer (protobuf3/lib.go,
// protobuf3/decode.go: the `buf []byte` + `index int` pair, and the
// special-cased "most varints are 1 byte" fast paths in DecodeVarint),
// generalized from a single concrete struct into the Readable/Writable/
// RandomAccessData interfaces spec.md names, with heap, off-heap and
// stream-backed implementations behind them.
package buffer

// SequentialData is a cursor over an octet sequence: Position advances as
// bytes are consumed or produced, and can never exceed Limit, which can
// never exceed Capacity (spec.md §3.2 invariant 1). Every setter clamps
// into range rather than panicking.
type SequentialData interface {
	// Capacity is the total addressable size, or a very large sentinel for
	// an unbounded stream.
	Capacity() int64
	// Position is the cursor; 0 <= Position <= Limit.
	Position() int64
	// Limit bounds how far Position may advance; Limit <= Capacity.
	Limit() int64
	// Remaining is Limit - Position.
	Remaining() int64
	// SetPosition clamps p into [0, Limit] and sets Position to it.
	SetPosition(p int64) error
	// SetLimit clamps l into [Position, Capacity] and sets Limit to it.
	SetLimit(l int64) error
	// HasRemaining reports Remaining() > 0.
	HasRemaining() bool
}

// Readable is a SequentialData that can be read from; every read advances
// Position and fails with ErrUnderflow if it would pass Limit.
type Readable interface {
	SequentialData

	ReadByte() (byte, error)
	// ReadBytes fills dst[:n] from the buffer, where n = min(len(dst),
	// Remaining()), and returns n. It never returns an error for a short
	// read; callers that require an exact-length read should compare n
	// against len(dst) themselves, matching io.Reader's contract.
	ReadBytes(dst []byte) (n int, err error)
	// ReadVarint reads a varint, applying zig-zag decoding (into the
	// 64-bit signed domain, reinterpreted as uint64 bit pattern) if zigzag
	// is true.
	ReadVarint(zigzag bool) (uint64, error)
	ReadFixed32() (uint32, error)
	ReadFixed64() (uint64, error)
	ReadFloat() (float32, error)
	ReadDouble() (float64, error)
	// Skip advances Position by n without copying the skipped bytes
	// anywhere.
	Skip(n int64) error
}

// Writable is a SequentialData that can be written to; every write
// advances Position and fails with ErrOverflow if it would pass Limit.
type Writable interface {
	SequentialData

	WriteByte(b byte) error
	WriteBytes(src []byte) error
	WriteVarint(x uint64, zigzagInput bool) error
	WriteFixed32(x uint32) error
	WriteFixed64(x uint64) error
	WriteFloat(f float32) error
	WriteDouble(f float64) error
	// Skip on WritableStreamingData advances Position by exactly n,
	// writing n zero bytes (possibly in chunks), or returns ErrOverflow if
	// n exceeds Remaining. BufferedData has one Skip for both its Readable
	// and Writable roles: it clamps n to Remaining and leaves the skipped
	// bytes unchanged.
	Skip(n int64) error
	// Flush forwards to the underlying stream, if any; a no-op for
	// purely in-memory buffers.
	Flush() error
}
