package schema_test

import (
	"testing"

	"github.com/hashgraph/pbj-go/compiler/schema"
)

func TestArenaDeclareAndLookup(t *testing.T) {
	a := schema.NewArena()
	ref := a.Declare(schema.Node{File: "a.proto", QualifiedName: "pkg.Foo", Kind: schema.KindMessage})
	got, ok := a.Lookup("a.proto", "pkg.Foo")
	if !ok || got != ref {
		t.Fatalf("Lookup = %v, %v; want %v, true", got, ok, ref)
	}
}

func TestDetectCyclesRejectsCycle(t *testing.T) {
	a := schema.NewArena()
	fooRef := a.Declare(schema.Node{File: "a.proto", QualifiedName: "pkg.Foo", Kind: schema.KindMessage})
	barRef := a.Declare(schema.Node{File: "a.proto", QualifiedName: "pkg.Bar", Kind: schema.KindMessage})
	a.Node(fooRef).Imports = []schema.NodeRef{barRef}
	a.Node(barRef).Imports = []schema.NodeRef{fooRef}

	if err := a.DetectCycles(); err == nil {
		t.Fatalf("expected a cycle to be detected")
	}
}

func TestDetectCyclesAcceptsDAG(t *testing.T) {
	a := schema.NewArena()
	fooRef := a.Declare(schema.Node{File: "a.proto", QualifiedName: "pkg.Foo", Kind: schema.KindMessage})
	barRef := a.Declare(schema.Node{File: "a.proto", QualifiedName: "pkg.Bar", Kind: schema.KindMessage})
	a.Node(fooRef).Imports = []schema.NodeRef{barRef}

	if err := a.DetectCycles(); err != nil {
		t.Fatalf("expected a DAG to pass: %v", err)
	}
}
