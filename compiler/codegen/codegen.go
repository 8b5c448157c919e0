// Package codegen emits Go source implementing the L4 contract (spec.md
// §4.3, §6.3) for a schema.Node message. It is deliberately narrow: the
// grammar parser for .proto files and a general-purpose Java-style emitter
// are out of scope (spec.md §1); this package emits the record-type part
// of that contract for the scalar, string and bytes field shapes a
// schema.Node can describe, in the style of the hand-written examples in
// package gen.
package codegen

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/hashgraph/pbj-go/compiler/schema"
)

// Options configures the emitted source.
type Options struct {
	Package string
}

// Generate renders Go source for the message node at ref: the record type
// (one field per schema field plus an unknown-field slot), a zero-valued
// default<Name> variable and an UnknownFields method. It does not emit
// Parse, Write, MeasureRecord, Measure, FastEquals or Equal functions, nor
// a FieldDefByNumber method; gen/timestamp.go and gen/sample.go implement
// those by hand.
func Generate(a *schema.Arena, ref schema.NodeRef, opts Options) (string, error) {
	node := a.Node(ref)
	if node.Kind != schema.KindMessage {
		return "", fmt.Errorf("codegen: %s is not a message", node.QualifiedName)
	}
	if err := a.DetectCycles(); err != nil {
		return "", err
	}

	fields := sortedFields(node.Fields)
	data := struct {
		Package     string
		Name        string
		Fields      []schema.FieldNode
		NeedsBytes  bool
	}{
		Package:    opts.Package,
		Name:       goName(node.QualifiedName),
		Fields:     fields,
		NeedsBytes: needsBytesImport(fields),
	}

	var buf bytes.Buffer
	if err := messageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("codegen: %w", err)
	}
	return buf.String(), nil
}

func needsBytesImport(fields []schema.FieldNode) bool {
	for _, f := range fields {
		if f.ProtoType == "bytes" {
			return true
		}
	}
	return false
}

func sortedFields(fields []schema.FieldNode) []schema.FieldNode {
	out := make([]schema.FieldNode, len(fields))
	copy(out, fields)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func goName(qualifiedName string) string {
	for i := len(qualifiedName) - 1; i >= 0; i-- {
		if qualifiedName[i] == '.' {
			qualifiedName = qualifiedName[i+1:]
			break
		}
	}
	out := []byte(qualifiedName)
	upper := true
	dst := out[:0]
	for _, b := range out {
		if b == '.' || b == '_' {
			upper = true
			continue
		}
		if upper && b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		upper = false
		dst = append(dst, b)
	}
	return string(dst)
}

// goFieldType maps a schema.FieldNode's ProtoType to the Go field type
// the generated record carries, per spec.md §4.3.1's field/wire table.
func goFieldType(f schema.FieldNode) string {
	base := map[string]string{
		"int32": "int32", "sint32": "int32", "sfixed32": "int32",
		"int64": "int64", "sint64": "int64", "sfixed64": "int64",
		"uint32": "uint32", "fixed32": "uint32",
		"uint64": "uint64", "fixed64": "uint64",
		"bool": "bool", "float": "float32", "double": "float64",
		"string": "string", "bytes": "pbjbytes.Bytes",
	}[f.ProtoType]
	if base == "" {
		base = "int32"
	}
	if f.IsRepeated {
		return "[]" + base
	}
	return base
}

var messageTemplate = template.Must(template.New("message").Funcs(template.FuncMap{
	"goFieldType": goFieldType,
}).Parse(`// Code generated by compiler/codegen. DO NOT EDIT.

package {{.Package}}

import (
{{- if .NeedsBytes}}
	pbjbytes "github.com/hashgraph/pbj-go/bytes"
{{- end}}
	"github.com/hashgraph/pbj-go/codec"
)

type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{goFieldType .}}
{{- end}}

	unknown codec.UnknownFieldList
}

var default{{.Name}} = {{.Name}}{}

func (m *{{.Name}}) UnknownFields() *codec.UnknownFieldList { return &m.unknown }
`))
