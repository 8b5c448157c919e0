package codec

import (
	pbjbytes "github.com/hashgraph/pbj-go/bytes"
	"github.com/hashgraph/pbj-go/wire"
)

// UnknownField is a tag the active schema does not recognise, carried
// through parse→write unchanged when ParseConfig.ParseUnknownFields is
// set (spec.md §3.6).
type UnknownField struct {
	Field    uint32
	WireType wire.WireType
	Bytes    pbjbytes.Bytes
}

// Equal compares two unknown fields structurally: field, wire type, and
// payload bytes, per spec.md §3.6's protobuf_compare tie-break.
func (u UnknownField) Equal(o UnknownField) bool {
	return u.Field == o.Field && u.WireType == o.WireType && u.Bytes.Equal(o.Bytes)
}

// UnknownFieldList preserves arrival order within a field number (spec.md
// §4.3.1 step 2: "multiple occurrences with the same field are
// concatenated as an ordered list"), while iterating fields themselves in
// ascending number order on write (§4.3.2 rule 8).
type UnknownFieldList struct {
	byField map[uint32][]UnknownField
	order   []uint32 // first-seen field numbers, re-sorted ascending before write
}

// Append records an unknown field occurrence.
func (l *UnknownFieldList) Append(u UnknownField) {
	if l.byField == nil {
		l.byField = make(map[uint32][]UnknownField)
	}
	if _, seen := l.byField[u.Field]; !seen {
		l.order = append(l.order, u.Field)
	}
	l.byField[u.Field] = append(l.byField[u.Field], u)
}

// Len reports the total number of unknown field occurrences carried.
func (l *UnknownFieldList) Len() int {
	n := 0
	for _, v := range l.byField {
		n += len(v)
	}
	return n
}

// IsEmpty reports whether no unknown fields were captured.
func (l *UnknownFieldList) IsEmpty() bool { return l == nil || len(l.byField) == 0 }

// Ordered returns all occurrences grouped by field number ascending,
// arrival order preserved within a field (spec.md §4.3.2 rule 8).
func (l *UnknownFieldList) Ordered() []UnknownField {
	if l == nil {
		return nil
	}
	fields := make([]uint32, len(l.order))
	copy(fields, l.order)
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j-1] > fields[j]; j-- {
			fields[j-1], fields[j] = fields[j], fields[j-1]
		}
	}
	out := make([]UnknownField, 0, l.Len())
	for _, f := range fields {
		out = append(out, l.byField[f]...)
	}
	return out
}

// Equal compares two unknown-field lists structurally, independent of
// internal map iteration order.
func (l *UnknownFieldList) Equal(o *UnknownFieldList) bool {
	a, b := l.Ordered(), o.Ordered()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
