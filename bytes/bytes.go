// Package bytes implements the L0 layer of the PBJ runtime: an immutable,
// content-addressable byte sequence used throughout the wire codec engine
// to avoid copying message payloads.
//
// This is derived from the buffer-handling style of
// github.com/mistsys/protobuf3 (protobuf3/decode.go's DecodeRawBytes),
// generalized into its own value type per spec so that message records,
// the wire codec, and the JSON codec can all share one representation of
// "some bytes I don't own a private copy of".
package bytes

import (
	"encoding/base64"
	"fmt"

	"github.com/hashgraph/pbj-go/wire"
	"github.com/zeebo/xxh3"
)

// Bytes is an immutable view over an octet sequence. The zero value is the
// empty byte string. Two Bytes values are Equal iff their contents match;
// HashCode is stable across process runs and across versions of this
// package, since it is part of the public API (spec.md §3.1).
type Bytes struct {
	b []byte
}

// Wrap returns a Bytes value over b without copying. Callers must not
// mutate b afterward; Wrap is for producers who already own an immutable
// slice (e.g. a freshly sliced read buffer).
func Wrap(b []byte) Bytes {
	return Bytes{b: b}
}

// Copy returns a Bytes value holding a private copy of b.
func Copy(b []byte) Bytes {
	if len(b) == 0 {
		return Bytes{}
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return Bytes{b: cp}
}

// FromString returns a Bytes value over the UTF-8 encoding of s.
func FromString(s string) Bytes {
	return Bytes{b: []byte(s)}
}

// Len returns the number of octets.
func (b Bytes) Len() int { return len(b.b) }

// At returns the octet at index i. It panics if i is out of range, matching
// the teacher's "unchecked unless it would silently corrupt" posture for
// accessors callers are expected to bounds-check with Len first.
func (b Bytes) At(i int) byte { return b.b[i] }

// Raw returns the underlying slice. Treat as read-only: it is shared, not
// copied.
func (b Bytes) Raw() []byte { return b.b }

// Slice returns the sub-range [from, to) without copying.
func (b Bytes) Slice(from, to int) Bytes {
	return Bytes{b: b.b[from:to:to]}
}

// Equal reports whether b and o have identical content.
func (b Bytes) Equal(o Bytes) bool {
	if len(b.b) != len(o.b) {
		return false
	}
	for i := range b.b {
		if b.b[i] != o.b[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the sequence has zero length, i.e. whether it is
// at the Proto3 implicit-presence default for a bytes field.
func (b Bytes) IsEmpty() bool { return len(b.b) == 0 }

// HashCode returns a stable 32-bit content hash, xxh3-64 folded by xor of
// the high and low halves. Fixed at xxh3-64 per spec.md §9 (Open Question
// 3): earlier revisions used Java's Arrays.hashCode, which is not what the
// current integration tests assume.
func (b Bytes) HashCode() uint32 {
	h := xxh3.Hash(b.b)
	return uint32(h) ^ uint32(h>>32)
}

// Base64 encodes the content with the standard alphabet, padded, per the
// canonical-JSON write rule in spec.md §4.4/§6.2.
func (b Bytes) Base64() string {
	return base64.StdEncoding.EncodeToString(b.b)
}

// DecodeBase64 accepts standard or URL-safe alphabets, padded or unpadded,
// per spec.md §4.4's JSON read rule.
func DecodeBase64(s string) (Bytes, error) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return Bytes{b: b}, nil
		}
	}
	return Bytes{}, fmt.Errorf("bytes: %q is not valid base64 in any accepted alphabet", s)
}

// AsUTF8 decodes the content as strict UTF-8, per spec.md §4.2: overlong
// sequences, unpaired surrogate halves, code points past U+10FFFF, and
// truncation are all rejected rather than replaced.
func (b Bytes) AsUTF8() (string, error) {
	return wire.DecodeString(b.b, 0, len(b.b))
}

// String implements fmt.Stringer for debugging; it is not the UTF-8 view
// required by spec (use AsUTF8 for that), since arbitrary Bytes need not be
// valid UTF-8.
func (b Bytes) String() string {
	return fmt.Sprintf("Bytes[%d]", len(b.b))
}
