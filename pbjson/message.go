package pbjson

import (
	"fmt"
	"sort"

	"github.com/hashgraph/pbj-go/gen"
	"github.com/hashgraph/pbj-go/model"
)

// MarshalTimestamp renders a gen.Timestamp as canonical Protobuf JSON
// (spec.md §4.4): field keys are lowerCamelCase, and the int64 "seconds"
// field is a JSON string while the int32 "nanos" field is a plain number.
// Implicit-presence defaults are omitted, matching canonical wire write.
func MarshalTimestamp(t gen.Timestamp) []byte {
	var buf []byte
	buf = append(buf, '{')
	wrote := false
	if t.Seconds != 0 {
		buf = append(buf, `"seconds":`...)
		buf = AppendInt64String(buf, t.Seconds)
		wrote = true
	}
	if t.Nanos != 0 {
		if wrote {
			buf = append(buf, ',')
		}
		buf = append(buf, `"nanos":`...)
		buf = AppendInt32(buf, t.Nanos)
	}
	buf = append(buf, '}')
	return buf
}

// UnmarshalTimestamp parses canonical (or lenient, per §4.4's read rules)
// Protobuf JSON for a Timestamp.
func UnmarshalTimestamp(data []byte) (gen.Timestamp, error) {
	l := NewLexer(data)
	if err := expect(l, TokObjectStart); err != nil {
		return gen.Timestamp{}, err
	}
	var t gen.Timestamp
	first := true
	for {
		tok, err := l.Next()
		if err != nil {
			return gen.Timestamp{}, err
		}
		if tok.Kind == TokObjectEnd {
			break
		}
		if !first {
			if tok.Kind != TokComma {
				return gen.Timestamp{}, fmt.Errorf("pbjson: expected ',' got %v", tok.Kind)
			}
			tok, err = l.Next()
			if err != nil {
				return gen.Timestamp{}, err
			}
		}
		first = false
		if tok.Kind != TokString {
			return gen.Timestamp{}, fmt.Errorf("pbjson: expected field name, got %v", tok.Kind)
		}
		name := tok.Text
		if err := expect(l, TokColon); err != nil {
			return gen.Timestamp{}, err
		}
		val, err := l.Next()
		if err != nil {
			return gen.Timestamp{}, err
		}
		switch name {
		case "seconds":
			v, err := ParseInt64(val.Text, val.Kind == TokString)
			if err != nil {
				return gen.Timestamp{}, err
			}
			t.Seconds = v
		case "nanos":
			v, err := ParseInt64(val.Text, val.Kind == TokString)
			if err != nil {
				return gen.Timestamp{}, err
			}
			t.Nanos = int32(v)
		default:
			return gen.Timestamp{}, fmt.Errorf("pbjson: unknown Timestamp field %q", name)
		}
	}
	return t, nil
}

func expect(l *Lexer, kind TokenKind) error {
	tok, err := l.Next()
	if err != nil {
		return err
	}
	if tok.Kind != kind {
		return fmt.Errorf("pbjson: expected token %d, got %d", kind, tok.Kind)
	}
	return nil
}

// MarshalSample renders a gen.Sample as canonical Protobuf JSON: numbers
// as a JSON array, the set oneof variant under its own field name, and
// tags as a JSON object with keys in sorted order for deterministic
// output (spec.md §4.4 map row: "object; keys stringified").
func MarshalSample(s gen.Sample) []byte {
	var buf []byte
	buf = append(buf, '{')
	wrote := false
	if len(s.Numbers) > 0 {
		buf = append(buf, `"numbers":[`...)
		for i, n := range s.Numbers {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = AppendInt32(buf, n)
		}
		buf = append(buf, ']')
		wrote = true
	}
	if kind := s.Choice.Kind(); s.Choice.IsSet() {
		if wrote {
			buf = append(buf, ',')
		}
		val, _ := s.Choice.Value()
		switch kind {
		case gen.ChoiceName:
			buf = append(buf, `"name":`...)
			buf = AppendJSONString(buf, val.(string))
		case gen.ChoiceCount:
			buf = append(buf, `"count":`...)
			buf = AppendInt32(buf, val.(int32))
		}
		wrote = true
	}
	if len(s.Tags) > 0 {
		if wrote {
			buf = append(buf, ',')
		}
		buf = append(buf, `"tags":{`...)
		keys := make([]string, 0, len(s.Tags))
		for k := range s.Tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = AppendJSONString(buf, k)
			buf = append(buf, ':')
			buf = AppendInt32(buf, s.Tags[k])
		}
		buf = append(buf, '}')
	}
	buf = append(buf, '}')
	return buf
}

// UnmarshalSample parses canonical Protobuf JSON for a Sample.
func UnmarshalSample(data []byte) (gen.Sample, error) {
	l := NewLexer(data)
	if err := expect(l, TokObjectStart); err != nil {
		return gen.Sample{}, err
	}
	s := gen.Sample{Tags: make(map[string]int32)}
	first := true
	for {
		tok, err := l.Next()
		if err != nil {
			return gen.Sample{}, err
		}
		if tok.Kind == TokObjectEnd {
			break
		}
		if !first {
			if tok.Kind != TokComma {
				return gen.Sample{}, fmt.Errorf("pbjson: expected ',' got %v", tok.Kind)
			}
			tok, err = l.Next()
			if err != nil {
				return gen.Sample{}, err
			}
		}
		first = false
		if tok.Kind != TokString {
			return gen.Sample{}, fmt.Errorf("pbjson: expected field name, got %v", tok.Kind)
		}
		name := tok.Text
		if err := expect(l, TokColon); err != nil {
			return gen.Sample{}, err
		}
		switch name {
		case "numbers":
			if err := expect(l, TokArrayStart); err != nil {
				return gen.Sample{}, err
			}
			firstElem := true
			for {
				tok, err := l.Next()
				if err != nil {
					return gen.Sample{}, err
				}
				if tok.Kind == TokArrayEnd {
					break
				}
				if !firstElem {
					if tok.Kind != TokComma {
						return gen.Sample{}, fmt.Errorf("pbjson: expected ',' in numbers array, got %v", tok.Kind)
					}
					tok, err = l.Next()
					if err != nil {
						return gen.Sample{}, err
					}
				}
				firstElem = false
				v, err := ParseInt64(tok.Text, tok.Kind == TokString)
				if err != nil {
					return gen.Sample{}, err
				}
				s.Numbers = append(s.Numbers, int32(v))
			}
		case "name":
			val, err := l.Next()
			if err != nil {
				return gen.Sample{}, err
			}
			s.Choice = model.Of[gen.SampleChoiceKind, any](gen.ChoiceName, val.Text)
		case "count":
			val, err := l.Next()
			if err != nil {
				return gen.Sample{}, err
			}
			v, err := ParseInt64(val.Text, val.Kind == TokString)
			if err != nil {
				return gen.Sample{}, err
			}
			s.Choice = model.Of[gen.SampleChoiceKind, any](gen.ChoiceCount, int32(v))
		case "tags":
			if err := expect(l, TokObjectStart); err != nil {
				return gen.Sample{}, err
			}
			firstEntry := true
			for {
				tok, err := l.Next()
				if err != nil {
					return gen.Sample{}, err
				}
				if tok.Kind == TokObjectEnd {
					break
				}
				if !firstEntry {
					if tok.Kind != TokComma {
						return gen.Sample{}, fmt.Errorf("pbjson: expected ',' in tags object, got %v", tok.Kind)
					}
					tok, err = l.Next()
					if err != nil {
						return gen.Sample{}, err
					}
				}
				firstEntry = false
				if tok.Kind != TokString {
					return gen.Sample{}, fmt.Errorf("pbjson: expected tag key, got %v", tok.Kind)
				}
				key := tok.Text
				if err := expect(l, TokColon); err != nil {
					return gen.Sample{}, err
				}
				val, err := l.Next()
				if err != nil {
					return gen.Sample{}, err
				}
				v, err := ParseInt64(val.Text, val.Kind == TokString)
				if err != nil {
					return gen.Sample{}, err
				}
				s.Tags[key] = int32(v)
			}
		default:
			return gen.Sample{}, fmt.Errorf("pbjson: unknown Sample field %q", name)
		}
	}
	return s, nil
}
