// Package schema implements the compiler's schema arena (spec.md §9's
// re-architecture of "cyclic per-file import graph for schema
// resolution"): nodes are indexed by (file, qualified name), references
// are indices rather than owning pointers, and import cycles are detected
// and rejected explicitly rather than resolved by repeated re-entrant
// lookups. The .proto grammar parser itself is out of scope (spec.md
// §1) — an Arena is built programmatically, by tests or by cmd/pbjc's
// small JSON schema description.
package schema

import "fmt"

// NodeRef is an index into an Arena, never an owning pointer, so the
// arena can be built in any discovery order and resolved in a second pass
// (spec.md §9).
type NodeRef int

// Kind distinguishes what a Node describes.
type Kind int

const (
	KindMessage Kind = iota
	KindEnum
)

// Node is one schema-level declaration: a message or an enum.
type Node struct {
	File          string
	QualifiedName string
	Kind          Kind
	Fields        []FieldNode   // messages only
	EnumValues    []EnumValue   // enums only
	Imports       []NodeRef     // references to message/enum types this node depends on
}

// FieldNode mirrors spec.md §3.7's FieldDefinition at the schema level,
// plus a reference to the field's message/enum type when applicable.
type FieldNode struct {
	Name              string
	Number            uint32
	ProtoType         string // "int32", "string", "message", "enum", "map", ...
	IsRepeated        bool
	IsOneOf           bool
	OneOfGroup        string
	IsOptionalWrapper bool
	TypeRef           NodeRef // valid when ProtoType is "message" or "enum"
	MapKeyType        string
	MapValueType      string
}

type EnumValue struct {
	Name   string
	Number int32
}

// Arena is an indexed set of schema nodes plus the key used to look them
// up by (file, qualified name) during the second-pass reference
// resolution.
type Arena struct {
	nodes []Node
	index map[string]NodeRef // "file\x00qualifiedName" -> ref
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{index: make(map[string]NodeRef)}
}

func key(file, qualifiedName string) string { return file + "\x00" + qualifiedName }

// Declare adds a node (without resolved Imports/TypeRef) and returns its
// ref; cross-references (Imports, TypeRef) are filled in afterwards
// through Node(ref).
func (a *Arena) Declare(n Node) NodeRef {
	ref := NodeRef(len(a.nodes))
	a.nodes = append(a.nodes, n)
	a.index[key(n.File, n.QualifiedName)] = ref
	return ref
}

// Lookup finds a previously declared node by (file, qualifiedName).
func (a *Arena) Lookup(file, qualifiedName string) (NodeRef, bool) {
	ref, ok := a.index[key(file, qualifiedName)]
	return ref, ok
}

// Node dereferences a ref.
func (a *Arena) Node(ref NodeRef) *Node { return &a.nodes[ref] }

// Len returns the number of declared nodes.
func (a *Arena) Len() int { return len(a.nodes) }

// DetectCycles walks the dependency graph (Node.Imports) and returns an
// error naming the first cycle found, or nil if the graph is a DAG
// (spec.md §9: "Detect import cycles explicitly and reject").
func (a *Arena) DetectCycles() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(a.nodes))
	var path []NodeRef

	var visit func(ref NodeRef) error
	visit = func(ref NodeRef) error {
		color[ref] = gray
		path = append(path, ref)
		for _, dep := range a.nodes[ref].Imports {
			switch color[dep] {
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			case gray:
				return fmt.Errorf("schema: import cycle detected: %s -> %s", a.nodes[ref].QualifiedName, a.nodes[dep].QualifiedName)
			}
		}
		path = path[:len(path)-1]
		color[ref] = black
		return nil
	}

	for i := range a.nodes {
		if color[i] == white {
			if err := visit(NodeRef(i)); err != nil {
				return err
			}
		}
	}
	return nil
}
