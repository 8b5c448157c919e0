package codegen_test

import (
	"strings"
	"testing"

	"github.com/hashgraph/pbj-go/compiler/codegen"
	"github.com/hashgraph/pbj-go/compiler/schema"
)

func TestGenerateEmitsRecordType(t *testing.T) {
	a := schema.NewArena()
	ref := a.Declare(schema.Node{
		File:          "sample.proto",
		QualifiedName: "pbj.Greeting",
		Kind:          schema.KindMessage,
		Fields: []schema.FieldNode{
			{Name: "Text", Number: 1, ProtoType: "string"},
			{Name: "Count", Number: 2, ProtoType: "int32"},
		},
	})

	src, err := codegen.Generate(a, ref, codegen.Options{Package: "pbj"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(src, "type Greeting struct") {
		t.Fatalf("expected generated source to declare Greeting, got:\n%s", src)
	}
	if !strings.Contains(src, "Text string") || !strings.Contains(src, "Count int32") {
		t.Fatalf("expected generated fields, got:\n%s", src)
	}
}

func TestGenerateRejectsCyclicSchema(t *testing.T) {
	a := schema.NewArena()
	fooRef := a.Declare(schema.Node{File: "a.proto", QualifiedName: "pkg.Foo", Kind: schema.KindMessage})
	barRef := a.Declare(schema.Node{File: "a.proto", QualifiedName: "pkg.Bar", Kind: schema.KindMessage})
	a.Node(fooRef).Imports = []schema.NodeRef{barRef}
	a.Node(barRef).Imports = []schema.NodeRef{fooRef}

	if _, err := codegen.Generate(a, fooRef, codegen.Options{Package: "pkg"}); err == nil {
		t.Fatalf("expected cyclic schema to be rejected")
	}
}
