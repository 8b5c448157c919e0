package codec

// FieldType enumerates the Proto3 scalar/aggregate kinds a FieldDefinition
// may describe, per spec.md §4.3.1's field/wire mapping table.
type FieldType int

const (
	TypeInt32 FieldType = iota
	TypeInt64
	TypeUint32
	TypeUint64
	TypeSint32
	TypeSint64
	TypeBool
	TypeEnum
	TypeFixed32
	TypeSfixed32
	TypeFloat
	TypeFixed64
	TypeSfixed64
	TypeDouble
	TypeString
	TypeBytes
	TypeMessage
	TypeMap
)

// FieldDefinition is the only schema surface the codec runtime sees
// (spec.md §3.7); generated code builds a table of these and the runtime
// dispatches against it by field number, never via reflect.
type FieldDefinition struct {
	Name               string
	Type               FieldType
	Number             uint32
	IsOneOf            bool
	IsRepeated         bool
	IsOptionalWrapper  bool
	MapKeyType         FieldType // only meaningful when Type == TypeMap
	MapValueType       FieldType
}

// FieldTable is a generator-emitted dispatch table: a dense lookup from
// field number to FieldDefinition, replacing the reflection-driven
// StructProperties dispatch the teacher package built at init time via
// struct tags.
type FieldTable struct {
	byNumber map[uint32]*FieldDefinition
	ordered  []*FieldDefinition // ascending by Number, for canonical write order
}

// NewFieldTable builds a FieldTable from defs, which need not already be
// sorted.
func NewFieldTable(defs []*FieldDefinition) *FieldTable {
	t := &FieldTable{byNumber: make(map[uint32]*FieldDefinition, len(defs))}
	for _, d := range defs {
		t.byNumber[d.Number] = d
	}
	t.ordered = make([]*FieldDefinition, len(defs))
	copy(t.ordered, defs)
	for i := 1; i < len(t.ordered); i++ {
		for j := i; j > 0 && t.ordered[j-1].Number > t.ordered[j].Number; j-- {
			t.ordered[j-1], t.ordered[j] = t.ordered[j], t.ordered[j-1]
		}
	}
	return t
}

// ByNumber looks up a field by wire field number.
func (t *FieldTable) ByNumber(n uint32) (*FieldDefinition, bool) {
	d, ok := t.byNumber[n]
	return d, ok
}

// Ordered returns fields in ascending field-number order, the order
// canonical write emits them in (spec.md §4.3.2 rule 1).
func (t *FieldTable) Ordered() []*FieldDefinition { return t.ordered }
