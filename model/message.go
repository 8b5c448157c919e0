package model

import (
	"github.com/hashgraph/pbj-go/codec"
)

// Message is the contract every generated record type satisfies (spec.md
// §3.3, §6.3): immutable, with a schema lookup the codec runtime uses to
// dispatch, and an unknown-field slot that may be empty.
type Message interface {
	// FieldDefByNumber looks up this message's schema entry for a field
	// number, the only schema surface the L3 runtime is allowed to see
	// (spec.md §3.7).
	FieldDefByNumber(n uint32) (*codec.FieldDefinition, bool)
	// UnknownFields returns the unknown-field list carried on this
	// record, possibly empty (never nil after a successful parse with
	// ParseUnknownFields set).
	UnknownFields() *codec.UnknownFieldList
}

// Codec covers two of the per-message codec operations, Parse and
// DefaultInstance; write, measure and fast-equals are not part of it (the
// gen package provides them as free functions). T is the record type;
// Message constrains it so
// generic codec-runtime helpers (e.g. a generic fast_equals driver) can
// reach FieldDefByNumber without a type assertion.
type Codec[T Message] interface {
	Parse(buf interface{ Position() int64 }, cfg codec.ParseConfig) (T, error)
	DefaultInstance() T
}

// EnumValue is the tagged variant spec.md §4.3.5 requires: a known
// constant or an out-of-range integer preserved verbatim. Generated enum
// wrappers embed this rather than reimplementing the Known/Unrecognised
// split per enum.
type EnumValue struct {
	ordinal      int32
	recognised   bool
}

// KnownEnum wraps a recognised enum ordinal.
func KnownEnum(ordinal int32) EnumValue { return EnumValue{ordinal: ordinal, recognised: true} }

// UnrecognisedEnum wraps an ordinal with no matching variant in the
// current schema (spec.md §4.3.5).
func UnrecognisedEnum(ordinal int32) EnumValue { return EnumValue{ordinal: ordinal} }

// Ordinal returns the raw integer value regardless of recognition.
func (e EnumValue) Ordinal() int32 { return e.ordinal }

// Recognised reports whether this ordinal matched a known variant at
// decode time.
func (e EnumValue) Recognised() bool { return e.recognised }

func (e EnumValue) Equal(o EnumValue) bool { return e.ordinal == o.ordinal }
