// Package ast defines the node kinds of a parsed Common Trace Format (CTF)
// metadata document. Nodes are produced by an external lexer/grammar parser
// (not part of this module) and handed to the linker and validator packages
// as a tree: the root owns its children recursively, and there are no
// shared children or cycles beyond the upward Parent back-reference the
// linker installs.
//
// Every compound node is a tagged variant: Kind selects which concrete
// payload type lives in Data. This mirrors the HIR node shape used
// elsewhere in this module's compiler lineage (Kind + Data interface{}),
// generalized from expression/statement kinds to metadata-grammar kinds.
package ast

import "fmt"

// Kind identifies the construct an AST node represents.
type Kind int

const (
	KindRoot Kind = iota
	KindEvent
	KindStream
	KindTrace
	KindCTFExpression
	KindUnaryExpression
	KindTypedef
	KindTypealiasTarget
	KindTypealiasAlias
	KindTypealias
	KindTypeSpecifier
	KindPointer
	KindTypeDeclarator
	KindFloatingPoint
	KindInteger
	KindString
	KindEnumerator
	KindEnum
	KindStruct
	KindVariant
	KindStructOrVariantDeclaration

	kindSentinel // one past the last recognized kind; never assigned to a Node
)

// String returns the human name used in diagnostic lines, e.g.
// "node_type(node)" style references to node and parent kinds.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindEvent:
		return "event"
	case KindStream:
		return "stream"
	case KindTrace:
		return "trace"
	case KindCTFExpression:
		return "ctf_expression"
	case KindUnaryExpression:
		return "unary_expression"
	case KindTypedef:
		return "typedef"
	case KindTypealiasTarget:
		return "typealias_target"
	case KindTypealiasAlias:
		return "typealias_alias"
	case KindTypealias:
		return "typealias"
	case KindTypeSpecifier:
		return "type_specifier"
	case KindPointer:
		return "pointer"
	case KindTypeDeclarator:
		return "type_declarator"
	case KindFloatingPoint:
		return "floating_point"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindEnumerator:
		return "enumerator"
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	case KindVariant:
		return "variant"
	case KindStructOrVariantDeclaration:
		return "struct_or_variant_declaration"
	default:
		return fmt.Sprintf("unknown_kind(%d)", int(k))
	}
}

// Recognized reports whether k is one of the kinds this package defines.
// A Kind value outside this set (e.g. produced by a corrupt or forward-
// incompatible front end) is the "unrecognized node kind" condition behind
// spec.md §7's invalid-argument error.
func (k Kind) Recognized() bool {
	return k >= KindRoot && k < kindSentinel
}

// Node is a tagged record: Kind selects the concrete type held in Data.
// Parent is populated by the linker package and is absent (nil) only for
// the root. Ownership is strictly top-down: a node's owned child
// sequences (see Sequences) are the only owning edges; Parent is a
// non-owning back-reference.
type Node struct {
	Kind   Kind
	Parent *Node
	Data   interface{}
}

// NewNode constructs a node of the given kind with the given payload.
func NewNode(kind Kind, data interface{}) *Node {
	return &Node{Kind: kind, Data: data}
}

// IsRoot reports whether n is a root node (no parent by construction).
func (n *Node) IsRoot() bool {
	return n.Kind == KindRoot
}

// ParentKind returns the kind name of n's parent, or "<none>" at the root.
func (n *Node) ParentKind() string {
	if n.Parent == nil {
		return "<none>"
	}

	return n.Parent.Kind.String()
}
