// Package codec implements the L3 layer: per-field read/write helpers
// combining buffer (L1) and wire (L2), unknown-field capture, the
// recursion-depth guard, and canonical writing. Dispatch is driven by
// generator-emitted FieldDefinition tables, never by reflect — the L4
// codecs in package gen are its only clients.
package codec

import (
	"errors"
	"fmt"

	"github.com/hashgraph/pbj-go/buffer"
	"github.com/hashgraph/pbj-go/wire"
)

// Kind tags the taxonomy of spec.md §7. Every parse/write failure in this
// module is one of these, never a bare error or a panic.
type Kind int

const (
	KindMalformedVarint Kind = iota
	KindWireTypeMismatch
	KindMalformedString
	KindTruncated
	KindMaxDepthExceeded
	KindBadField
	KindUnrecognisedEnumStrict
	KindIo
	KindOverflow
	KindUnderflow
)

func (k Kind) String() string {
	switch k {
	case KindMalformedVarint:
		return "malformed_varint"
	case KindWireTypeMismatch:
		return "wire_type_mismatch"
	case KindMalformedString:
		return "malformed_string"
	case KindTruncated:
		return "truncated"
	case KindMaxDepthExceeded:
		return "max_depth_exceeded"
	case KindBadField:
		return "bad_field"
	case KindUnrecognisedEnumStrict:
		return "unrecognised_enum_strict"
	case KindIo:
		return "io"
	case KindOverflow:
		return "overflow"
	case KindUnderflow:
		return "underflow"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the one tagged error type every core operation returns. Field
// and Offset are filled in whenever the failure point is known; Got/Want
// carry the two wire types of a WireTypeMismatch.
type Error struct {
	Kind   Kind
	Field  uint32
	Offset int64
	Got    wire.WireType
	Want   wire.WireType
	Err    error // wrapped cause, e.g. a wire/buffer sentinel
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Field != 0 {
		msg += fmt.Sprintf(" field=%d", e.Field)
	}
	if e.Kind == KindWireTypeMismatch {
		msg += fmt.Sprintf(" got=%s want=%s", e.Got, e.Want)
	}
	if e.Offset != 0 {
		msg += fmt.Sprintf(" offset=%d", e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(k Kind, field uint32, offset int64, cause error) *Error {
	return &Error{Kind: k, Field: field, Offset: offset, Err: cause}
}

// wrap classifies a lower-layer (wire/buffer) sentinel error into a
// codec.Error carrying field/offset context, or passes through an
// already-tagged *Error unchanged.
func wrap(err error, field uint32, offset int64) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	switch {
	case errors.Is(err, wire.ErrMalformedVarint):
		return newError(KindMalformedVarint, field, offset, err)
	case errors.Is(err, wire.ErrMalformedString):
		return newError(KindMalformedString, field, offset, err)
	case errors.Is(err, wire.ErrTruncated):
		return newError(KindTruncated, field, offset, err)
	case errors.Is(err, buffer.ErrUnderflow):
		return newError(KindTruncated, field, offset, err)
	case errors.Is(err, buffer.ErrOverflow):
		return newError(KindOverflow, field, offset, err)
	default:
		var ioErr *buffer.ErrIO
		if errors.As(err, &ioErr) {
			return newError(KindIo, field, offset, err)
		}
		return newError(KindIo, field, offset, err)
	}
}

func wireTypeMismatch(field uint32, offset int64, got, want wire.WireType) error {
	return &Error{Kind: KindWireTypeMismatch, Field: field, Offset: offset, Got: got, Want: want}
}

func badField(field uint32, offset int64) error {
	return newError(KindBadField, field, offset, nil)
}

func maxDepthExceeded(field uint32, offset int64) error {
	return newError(KindMaxDepthExceeded, field, offset, nil)
}

func unrecognisedEnumStrict(field uint32, offset int64, value int32) error {
	return newError(KindUnrecognisedEnumStrict, field, offset, fmt.Errorf("value %d", value))
}
