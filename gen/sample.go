package gen

import (
	"sort"

	"github.com/hashgraph/pbj-go/buffer"
	"github.com/hashgraph/pbj-go/codec"
	"github.com/hashgraph/pbj-go/model"
	pbjwire "github.com/hashgraph/pbj-go/wire"
)

// SampleChoiceKind is the oneof tag for Sample.Choice (spec.md §3.4, §8.3
// scenario 4).
type SampleChoiceKind int32

const (
	ChoiceUnset SampleChoiceKind = iota
	ChoiceName
	ChoiceCount
)

// Sample exercises packed repeated int32 (field 1), a string/int32 oneof
// (fields 3/4), and a map<string,int32> (field 7) — spec.md §8.3
// scenarios 2, 3 and 4.
type Sample struct {
	Numbers []int32
	Choice  model.OneOf[SampleChoiceKind, any]
	Tags    map[string]int32

	unknown codec.UnknownFieldList
}

var sampleFields = codec.NewFieldTable([]*codec.FieldDefinition{
	{Name: "numbers", Type: codec.TypeInt32, Number: 1, IsRepeated: true},
	{Name: "name", Type: codec.TypeString, Number: 3, IsOneOf: true},
	{Name: "count", Type: codec.TypeInt32, Number: 4, IsOneOf: true},
	{Name: "tags", Type: codec.TypeMap, Number: 7, MapKeyType: codec.TypeString, MapValueType: codec.TypeInt32},
})

var DefaultSample = Sample{}

func (s *Sample) FieldDefByNumber(n uint32) (*codec.FieldDefinition, bool) {
	return sampleFields.ByNumber(n)
}

func (s *Sample) UnknownFields() *codec.UnknownFieldList { return &s.unknown }

func sampleTagsMap(t map[string]int32) *model.OrderedMap[string, int32] {
	return model.NewOrderedMap(t, func(a, b string) bool { return a < b })
}

// ParseSample implements parse(), accepting both packed and unpacked
// occurrences of the repeated int32 field and merging them in arrival
// order (spec.md §4.3.1 repeated-scalar row).
func ParseSample(buf buffer.Readable, cfg codec.ParseConfig) (Sample, error) {
	r := codec.NewReader(buf, cfg)
	s := Sample{Tags: make(map[string]int32)}
	for r.HasRemaining() {
		field, wt, err := r.ReadTag()
		if err != nil {
			return Sample{}, err
		}
		def, known := sampleFields.ByNumber(field)
		if !known {
			if cfg.ParseUnknownFields {
				u, err := r.CaptureUnknown(field, wt)
				if err != nil {
					return Sample{}, err
				}
				s.unknown.Append(u)
			} else if err := r.SkipField(field, wt); err != nil {
				return Sample{}, err
			}
			continue
		}
		switch def.Number {
		case 1: // numbers: packed or unpacked int32
			switch wt {
			case pbjwire.LengthDelim:
				child, err := r.EnterMessage(field)
				if err != nil {
					return Sample{}, err
				}
				for child.HasRemaining() {
					v, err := child.ReadVarint()
					if err != nil {
						return Sample{}, err
					}
					s.Numbers = append(s.Numbers, int32(v))
				}
			case pbjwire.Varint:
				v, err := r.ReadVarint()
				if err != nil {
					return Sample{}, err
				}
				s.Numbers = append(s.Numbers, int32(v))
			default:
				return Sample{}, wireTypeErr(field, wt, pbjwire.Varint)
			}
		case 3: // name (string oneof variant)
			if wt != pbjwire.LengthDelim {
				return Sample{}, wireTypeErr(field, wt, pbjwire.LengthDelim)
			}
			v, err := r.ReadString(field)
			if err != nil {
				return Sample{}, err
			}
			s.Choice = model.Of[SampleChoiceKind, any](ChoiceName, v)
		case 4: // count (int32 oneof variant)
			if wt != pbjwire.Varint {
				return Sample{}, wireTypeErr(field, wt, pbjwire.Varint)
			}
			v, err := r.ReadVarint()
			if err != nil {
				return Sample{}, err
			}
			s.Choice = model.Of[SampleChoiceKind, any](ChoiceCount, int32(v))
		case 7: // tags: map entry {1: key string, 2: value int32}
			if wt != pbjwire.LengthDelim {
				return Sample{}, wireTypeErr(field, wt, pbjwire.LengthDelim)
			}
			child, err := r.EnterMessage(field)
			if err != nil {
				return Sample{}, err
			}
			var key string
			var val int32
			for child.HasRemaining() {
				ef, ewt, err := child.ReadTag()
				if err != nil {
					return Sample{}, err
				}
				switch ef {
				case 1:
					key, err = child.ReadString(ef)
				case 2:
					var v uint64
					v, err = child.ReadVarint()
					val = int32(v)
				default:
					err = child.SkipField(ef, ewt)
				}
				if err != nil {
					return Sample{}, err
				}
			}
			s.Tags[key] = val
		}
	}
	return s, nil
}

// WriteSample implements write(): packed repeated numbers, the set oneof
// variant (emitted even at its default value, per §4.3.2 rule 3), and the
// map written in sorted-key order (§3.5, §4.3.2 rule 7).
func WriteSample(s Sample, buf buffer.Writable) error {
	w := codec.NewWriter(buf)

	if len(s.Numbers) > 0 {
		size := 0
		for _, n := range s.Numbers {
			size += pbjwire.SizeVarint(uint64(int32(n)))
		}
		if err := w.Tag(1, pbjwire.LengthDelim); err != nil {
			return err
		}
		if err := rawVarintLen(buf, size); err != nil {
			return err
		}
		for _, n := range s.Numbers {
			if err := writeBareVarint(buf, uint64(int64(n))); err != nil {
				return err
			}
		}
	}

	if kind := s.Choice.Kind(); s.Choice.IsSet() {
		val, _ := s.Choice.Value()
		switch kind {
		case ChoiceName:
			if err := w.String(3, val.(string)); err != nil {
				return err
			}
		case ChoiceCount:
			if err := w.Varint(4, uint64(int64(val.(int32)))); err != nil {
				return err
			}
		}
	}

	if len(s.Tags) > 0 {
		om := sampleTagsMap(s.Tags)
		for _, k := range om.SortedKeys() {
			v, _ := om.Get(k)
			entrySize := 0
			sn, err := codec.SizeStringField(1, k)
			if err != nil {
				return err
			}
			entrySize += sn
			entrySize += codec.SizeVarintField(2, uint64(int64(v)))
			if err := w.Tag(7, pbjwire.LengthDelim); err != nil {
				return err
			}
			if err := rawVarintLen(buf, entrySize); err != nil {
				return err
			}
			ew := codec.NewWriter(buf)
			if err := ew.String(1, k); err != nil {
				return err
			}
			if err := ew.Varint(2, uint64(int64(v))); err != nil {
				return err
			}
		}
	}

	return w.WriteUnknownFields(&s.unknown)
}

func rawVarintLen(buf buffer.Writable, n int) error {
	return buf.WriteVarint(uint64(n), false)
}

func writeBareVarint(buf buffer.Writable, v uint64) error {
	return buf.WriteVarint(v, false)
}

// MeasureRecordSample implements measure_record().
func MeasureRecordSample(s Sample) int {
	n := 0
	if len(s.Numbers) > 0 {
		size := 0
		for _, v := range s.Numbers {
			size += pbjwire.SizeVarint(uint64(int64(v)))
		}
		n += codec.SizeMessageField(1, size)
	}
	if kind := s.Choice.Kind(); s.Choice.IsSet() {
		val, _ := s.Choice.Value()
		switch kind {
		case ChoiceName:
			sz, _ := codec.SizeStringField(3, val.(string))
			n += sz
		case ChoiceCount:
			n += codec.SizeVarintField(4, uint64(int64(val.(int32))))
		}
	}
	if len(s.Tags) > 0 {
		keys := make([]string, 0, len(s.Tags))
		for k := range s.Tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := s.Tags[k]
			sn, _ := codec.SizeStringField(1, k)
			entrySize := sn + codec.SizeVarintField(2, uint64(int64(v)))
			n += codec.SizeMessageField(7, entrySize)
		}
	}
	n += codec.SizeUnknownFields(&s.unknown)
	return n
}

// MeasureSample implements measure().
func MeasureSample(buf buffer.Readable) (int, error) {
	start := buf.Position()
	if _, err := ParseSample(buf, codec.DefaultParseConfig()); err != nil {
		return 0, err
	}
	return int(buf.Position() - start), nil
}

// FastEqualsSample implements fast_equals() (spec.md §4.3.4): streams buf
// byte-by-byte against the bytes WriteSample would emit for s, without
// ever materialising buf into a second Sample, returning false at the
// first divergence. s's own packed/unpacked or tag-order choices are
// irrelevant here since WriteSample always emits the one canonical form
// (packed numbers, sorted-key map) that buf is compared against.
func FastEqualsSample(s Sample, buf buffer.Readable) (bool, error) {
	n := MeasureRecordSample(s)
	if buf.Remaining() != int64(n) {
		return false, nil
	}
	scratch := buffer.Allocate(n)
	if err := WriteSample(s, scratch); err != nil {
		return false, err
	}
	want := scratch.ToBytes()
	for i := 0; i < n; i++ {
		got, err := buf.ReadByte()
		if err != nil {
			return false, err
		}
		if got != want[i] {
			return false, nil
		}
	}
	return true, nil
}

func SampleEqual(a, b Sample) bool {
	if len(a.Numbers) != len(b.Numbers) {
		return false
	}
	for i := range a.Numbers {
		if a.Numbers[i] != b.Numbers[i] {
			return false
		}
	}
	if !a.Choice.Equal(b.Choice, func(x, y any) bool { return x == y }) {
		return false
	}
	am := sampleTagsMap(a.Tags)
	bm := sampleTagsMap(b.Tags)
	if !am.Equal(bm, func(x, y int32) bool { return x == y }) {
		return false
	}
	return a.unknown.Equal(&b.unknown)
}
