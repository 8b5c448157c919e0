package buffer

// RandomAccessData is an offset-addressed view over an octet sequence,
// independent of any cursor. It is the read side used by codec equality
// checks and by callers that need to peek without disturbing a
// Readable's Position (spec.md §3.2).
type RandomAccessData interface {
	Length() int64

	GetByte(offset int64) (byte, error)
	// GetBytes copies min(len(dst), Length()-offset) bytes starting at
	// offset into dst and returns the count copied.
	GetBytes(offset int64, dst []byte) (int, error)

	// GetInt/GetLong read big-endian fixed-width integers; the LE variants
	// read little-endian, matching protobuf's on-wire fixed32/fixed64
	// layout. Both exist because spec.md's RandomAccessData exposes the
	// big-endian accessors publicly while the wire format itself is
	// little-endian, mirroring the historical Java API this layer mimics.
	GetInt(offset int64) (int32, error)
	GetIntLE(offset int64) (int32, error)
	GetLong(offset int64) (int64, error)
	GetLongLE(offset int64) (int64, error)

	GetFloat(offset int64) (float32, error)
	GetFloatLE(offset int64) (float32, error)
	GetDouble(offset int64) (float64, error)
	GetDoubleLE(offset int64) (float64, error)

	// GetVarInt and GetVarLong decode a varint starting at offset,
	// returning the decoded value. zigzag selects zig-zag decoding.
	GetVarInt(offset int64, zigzag bool) (int32, error)
	GetVarLong(offset int64, zigzag bool) (int64, error)

	// WriteTo copies the full [0, Length()) extent into dst, which must
	// implement Writable, advancing its Position.
	WriteTo(dst Writable) error

	// Contains reports whether the bytes at offset for len(pattern)
	// match pattern exactly.
	Contains(offset int64, pattern []byte) bool
	// MatchesPrefix reports whether the first len(pattern) bytes of the
	// buffer equal pattern.
	MatchesPrefix(pattern []byte) bool

	// CompareTo orders two RandomAccessData by unsigned lexicographic
	// byte comparison, per spec.md's canonical ordered-map key ordering.
	CompareTo(other RandomAccessData) int

	ToBytes() []byte
}

// compareBytesUnsigned performs an unsigned lexicographic comparison of a
// and b, the same ordering rule canonical map-key serialization uses.
func compareBytesUnsigned(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
