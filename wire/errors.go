package wire

import "errors"

// These are the L2-level sentinels the L3 codec.Error taxonomy wraps with
// field/offset context (spec.md §7). They are intentionally plain sentinel
// errors, matching the flat error style of mistsys/protobuf3's
// errOverflow, rather than a hierarchy of custom types: L2 has no field
// number to attach, so there's nothing a richer type would add here.
var (
	// ErrTruncated means fewer bytes remained than the value required.
	ErrTruncated = errors.New("wire: truncated")
	// ErrMalformedVarint means the continuation bit never cleared within
	// 10 bytes, or the 10th byte carried data bits beyond bit 63.
	ErrMalformedVarint = errors.New("wire: malformed varint")
	// ErrMalformedString means invalid UTF-8: overlong encoding, a lone
	// surrogate half, a code point beyond U+10FFFF, or a truncated
	// multi-byte sequence.
	ErrMalformedString = errors.New("wire: malformed utf-8 string")
)
