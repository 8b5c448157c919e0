package pbjson_test

import (
	"testing"

	"github.com/hashgraph/pbj-go/gen"
	"github.com/hashgraph/pbj-go/pbjson"
)

func TestMarshalUnmarshalTimestamp(t *testing.T) {
	ts := gen.Timestamp{Seconds: 5678, Nanos: 1234}
	data := pbjson.MarshalTimestamp(ts)
	want := `{"seconds":"5678","nanos":1234}`
	if string(data) != want {
		t.Fatalf("MarshalTimestamp = %s, want %s", data, want)
	}
	parsed, err := pbjson.UnmarshalTimestamp(data)
	if err != nil {
		t.Fatalf("UnmarshalTimestamp: %v", err)
	}
	if !gen.TimestampEqual(parsed, ts) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", parsed, ts)
	}
}

func TestMarshalTimestampDefaultOmitsFields(t *testing.T) {
	data := pbjson.MarshalTimestamp(gen.DefaultTimestamp)
	if string(data) != "{}" {
		t.Fatalf("MarshalTimestamp(DEFAULT) = %s, want {}", data)
	}
}

func TestMarshalSampleTagsSortedKeys(t *testing.T) {
	s := gen.Sample{Tags: map[string]int32{"b": 2, "a": 1}}
	data := pbjson.MarshalSample(s)
	want := `{"tags":{"a":1,"b":2}}`
	if string(data) != want {
		t.Fatalf("MarshalSample = %s, want %s", data, want)
	}
}

func TestLexerRoundTripsEscapes(t *testing.T) {
	l := pbjson.NewLexer([]byte(`"a\nb\tc\"d"`))
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if tok.Kind != pbjson.TokString || tok.Text != "a\nb\tc\"d" {
		t.Fatalf("got %q, want %q", tok.Text, "a\nb\tc\"d")
	}
}

func TestLexerJoinsSurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as the standard JSON UTF-16 surrogate
	// pair 😀.
	l := pbjson.NewLexer([]byte(`"\ud83d\ude00"`))
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	want := "\U0001F600"
	if tok.Kind != pbjson.TokString || tok.Text != want {
		t.Fatalf("got %q, want %q", tok.Text, want)
	}
}

func TestLexerRejectsUnpairedSurrogate(t *testing.T) {
	l := pbjson.NewLexer([]byte(`"\ud83d"`))
	if _, err := l.Next(); err == nil {
		t.Fatalf("expected error for unpaired high surrogate")
	}

	l = pbjson.NewLexer([]byte(`"\ude00"`))
	if _, err := l.Next(); err == nil {
		t.Fatalf("expected error for unpaired low surrogate")
	}
}

func TestAppendJSONStringAstralPlane(t *testing.T) {
	got := string(pbjson.AppendJSONString(nil, "\U0001F600"))
	want := `"` + "\U0001F600" + `"`
	if got != want {
		t.Fatalf("AppendJSONString = %s, want %s", got, want)
	}
}
