// Package docjson is this module's pragmatic stand-in for reading a
// parsed CTF metadata AST off disk: spec.md's Non-goals exclude
// lexing/parsing the CTF metadata grammar itself (an external front end
// owns that), so the CLI and network service instead read/write the
// tree as JSON, the same way internal/config persists run options as
// JSON rather than inventing a bespoke format.
package docjson

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tracetools/ctfmeta/internal/ast"
)

// node is the wire shape of one AST node. Every field is optional; which
// ones are populated depends on Kind, mirroring ast.Node's Kind+Data
// tagged-variant shape one level down into JSON.
type node struct {
	Kind string `json:"kind"`

	Declarations []*node `json:"declarations,omitempty"`

	Left  []*node `json:"left,omitempty"`
	Right []*node `json:"right,omitempty"`

	Type  string `json:"type,omitempty"`
	Link  string `json:"link,omitempty"`
	Value string `json:"value,omitempty"`

	DeclarationSpecifiers []*node `json:"declaration_specifiers,omitempty"`
	TypeDeclarators       []*node `json:"type_declarators,omitempty"`

	Target *node `json:"target,omitempty"`
	Alias  *node `json:"alias,omitempty"`

	Pointers       []*node `json:"pointers,omitempty"`
	Form           string  `json:"form,omitempty"`
	Inner          *node   `json:"inner,omitempty"`
	Length         *node   `json:"length,omitempty"`
	BitfieldLength *node   `json:"bitfield_length,omitempty"`

	Expressions []*node `json:"expressions,omitempty"`

	Values []*node `json:"values,omitempty"`

	ContainerType *node   `json:"container_type,omitempty"`
	Enumerators   []*node `json:"enumerators,omitempty"`

	Typedefs     []*node `json:"typedefs,omitempty"`
	TypeAliases  []*node `json:"type_aliases,omitempty"`
	TraceBlocks  []*node `json:"trace_blocks,omitempty"`
	StreamBlocks []*node `json:"stream_blocks,omitempty"`
	EventBlocks  []*node `json:"event_blocks,omitempty"`
}

// Decode reads one JSON-encoded document from r and builds its AST.
func Decode(r io.Reader) (*ast.Node, error) {
	var n node
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("docjson: %w", err)
	}

	return n.toAST()
}

// Encode writes root's tree to w as JSON.
func Encode(w io.Writer, root *ast.Node) error {
	n, err := fromAST(root)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("docjson: %w", err)
	}

	return nil
}

func kindFromName(name string) (ast.Kind, bool) {
	switch name {
	case "root":
		return ast.KindRoot, true
	case "event":
		return ast.KindEvent, true
	case "stream":
		return ast.KindStream, true
	case "trace":
		return ast.KindTrace, true
	case "ctf_expression":
		return ast.KindCTFExpression, true
	case "unary_expression":
		return ast.KindUnaryExpression, true
	case "typedef":
		return ast.KindTypedef, true
	case "typealias_target":
		return ast.KindTypealiasTarget, true
	case "typealias_alias":
		return ast.KindTypealiasAlias, true
	case "typealias":
		return ast.KindTypealias, true
	case "type_specifier":
		return ast.KindTypeSpecifier, true
	case "pointer":
		return ast.KindPointer, true
	case "type_declarator":
		return ast.KindTypeDeclarator, true
	case "floating_point":
		return ast.KindFloatingPoint, true
	case "integer":
		return ast.KindInteger, true
	case "string":
		return ast.KindString, true
	case "enumerator":
		return ast.KindEnumerator, true
	case "enum":
		return ast.KindEnum, true
	case "struct":
		return ast.KindStruct, true
	case "variant":
		return ast.KindVariant, true
	case "struct_or_variant_declaration":
		return ast.KindStructOrVariantDeclaration, true
	default:
		return ast.Kind(0), false
	}
}

func unaryTypeFromName(name string) (ast.UnaryType, bool) {
	switch name {
	case "string":
		return ast.UnaryString, true
	case "signed-const":
		return ast.UnarySignedConst, true
	case "unsigned-const":
		return ast.UnaryUnsignedConst, true
	case "sbrac":
		return ast.UnarySbrac, true
	default:
		return ast.UnaryType(0), false
	}
}

func linkTypeFromName(name string) (ast.LinkType, bool) {
	switch name {
	case "", "none":
		return ast.LinkUnknown, true
	case ".":
		return ast.LinkDot, true
	case "->":
		return ast.LinkArrow, true
	case "...":
		return ast.LinkDotDotDot, true
	default:
		return ast.LinkType(0), false
	}
}

func formFromName(name string) (ast.DeclaratorForm, bool) {
	switch name {
	case "", "id":
		return ast.FormID, true
	case "nested":
		return ast.FormNested, true
	default:
		return ast.DeclaratorForm(0), false
	}
}

func (n *node) toAST() (*ast.Node, error) {
	if n == nil {
		return nil, nil
	}

	kind, ok := kindFromName(n.Kind)
	if !ok {
		return nil, fmt.Errorf("docjson: unrecognized node kind %q", n.Kind)
	}

	switch kind {
	case ast.KindRoot:
		typedefs, err := toASTSlice(n.Typedefs)
		if err != nil {
			return nil, err
		}

		aliases, err := toASTSlice(n.TypeAliases)
		if err != nil {
			return nil, err
		}

		specs, err := toASTSlice(n.DeclarationSpecifiers)
		if err != nil {
			return nil, err
		}

		traces, err := toASTSlice(n.TraceBlocks)
		if err != nil {
			return nil, err
		}

		streams, err := toASTSlice(n.StreamBlocks)
		if err != nil {
			return nil, err
		}

		events, err := toASTSlice(n.EventBlocks)
		if err != nil {
			return nil, err
		}

		return ast.NewNode(kind, &ast.RootData{
			Typedefs:              typedefs,
			TypeAliases:            aliases,
			DeclarationSpecifiers:  specs,
			TraceBlocks:            traces,
			StreamBlocks:           streams,
			EventBlocks:            events,
		}), nil

	case ast.KindEvent, ast.KindStream, ast.KindTrace:
		decls, err := toASTSlice(n.Declarations)
		if err != nil {
			return nil, err
		}

		return ast.NewNode(kind, &ast.BlockData{Declarations: decls}), nil

	case ast.KindCTFExpression:
		left, err := toASTSlice(n.Left)
		if err != nil {
			return nil, err
		}

		right, err := toASTSlice(n.Right)
		if err != nil {
			return nil, err
		}

		return ast.NewNode(kind, &ast.CTFExpressionData{Left: left, Right: right}), nil

	case ast.KindUnaryExpression:
		t, ok := unaryTypeFromName(n.Type)
		if !ok {
			return nil, fmt.Errorf("docjson: unrecognized unary expression type %q", n.Type)
		}

		link, ok := linkTypeFromName(n.Link)
		if !ok {
			return nil, fmt.Errorf("docjson: unrecognized link type %q", n.Link)
		}

		return ast.NewNode(kind, &ast.UnaryExpressionData{Type: t, Link: link, Value: n.Value}), nil

	case ast.KindTypedef, ast.KindTypealiasTarget, ast.KindTypealiasAlias:
		specs, err := toASTSlice(n.DeclarationSpecifiers)
		if err != nil {
			return nil, err
		}

		decls, err := toASTSlice(n.TypeDeclarators)
		if err != nil {
			return nil, err
		}

		return ast.NewNode(kind, &ast.DeclaratorListData{DeclarationSpecifiers: specs, TypeDeclarators: decls}), nil

	case ast.KindTypealias:
		target, err := n.Target.toAST()
		if err != nil {
			return nil, err
		}

		alias, err := n.Alias.toAST()
		if err != nil {
			return nil, err
		}

		return ast.NewNode(kind, &ast.TypealiasData{Target: target, Alias: alias}), nil

	case ast.KindTypeSpecifier, ast.KindPointer:
		return ast.NewNode(kind, nil), nil

	case ast.KindTypeDeclarator:
		pointers, err := toASTSlice(n.Pointers)
		if err != nil {
			return nil, err
		}

		form, ok := formFromName(n.Form)
		if !ok {
			return nil, fmt.Errorf("docjson: unrecognized declarator form %q", n.Form)
		}

		inner, err := n.Inner.toAST()
		if err != nil {
			return nil, err
		}

		length, err := n.Length.toAST()
		if err != nil {
			return nil, err
		}

		bitfield, err := n.BitfieldLength.toAST()
		if err != nil {
			return nil, err
		}

		return ast.NewNode(kind, &ast.TypeDeclaratorData{
			Pointers: pointers, Form: form, Inner: inner, Length: length, BitfieldLength: bitfield,
		}), nil

	case ast.KindFloatingPoint, ast.KindInteger, ast.KindString:
		exprs, err := toASTSlice(n.Expressions)
		if err != nil {
			return nil, err
		}

		return ast.NewNode(kind, &ast.NumericTypeData{Expressions: exprs}), nil

	case ast.KindEnumerator:
		values, err := toASTSlice(n.Values)
		if err != nil {
			return nil, err
		}

		return ast.NewNode(kind, &ast.EnumeratorData{Values: values}), nil

	case ast.KindEnum:
		container, err := n.ContainerType.toAST()
		if err != nil {
			return nil, err
		}

		enumerators, err := toASTSlice(n.Enumerators)
		if err != nil {
			return nil, err
		}

		return ast.NewNode(kind, &ast.EnumData{ContainerType: container, Enumerators: enumerators}), nil

	case ast.KindStruct, ast.KindVariant:
		decls, err := toASTSlice(n.Declarations)
		if err != nil {
			return nil, err
		}

		return ast.NewNode(kind, &ast.StructOrVariantData{Declarations: decls}), nil

	case ast.KindStructOrVariantDeclaration:
		specs, err := toASTSlice(n.DeclarationSpecifiers)
		if err != nil {
			return nil, err
		}

		decls, err := toASTSlice(n.TypeDeclarators)
		if err != nil {
			return nil, err
		}

		return ast.NewNode(kind, &ast.DeclarationData{DeclarationSpecifiers: specs, TypeDeclarators: decls}), nil

	default:
		return nil, fmt.Errorf("docjson: unhandled node kind %q", n.Kind)
	}
}

func toASTSlice(in []*node) ([]*ast.Node, error) {
	if in == nil {
		return nil, nil
	}

	out := make([]*ast.Node, 0, len(in))

	for _, n := range in {
		child, err := n.toAST()
		if err != nil {
			return nil, err
		}

		out = append(out, child)
	}

	return out, nil
}

// fromAST is Decode's inverse: it walks n's Sequences generically rather
// than re-deriving each kind's field layout, since every payload's
// fields are already exposed in declaration order there.
func fromAST(n *ast.Node) (*node, error) {
	if n == nil {
		return nil, nil
	}

	if !n.Kind.Recognized() {
		return nil, fmt.Errorf("docjson: unrecognized node kind %d", int(n.Kind))
	}

	out := &node{Kind: n.Kind.String()}

	if n.Kind == ast.KindUnaryExpression {
		data, ok := n.Data.(*ast.UnaryExpressionData)
		if !ok {
			return nil, fmt.Errorf("docjson: unary expression node carries no unary expression data")
		}

		out.Type = data.Type.String()
		out.Link = data.Link.String()
		out.Value = data.Value

		return out, nil
	}

	if n.Kind == ast.KindTypeDeclarator {
		data, ok := n.Data.(*ast.TypeDeclaratorData)
		if !ok {
			return nil, fmt.Errorf("docjson: type declarator node carries no type declarator data")
		}

		out.Form = data.Form.String()
	}

	seqs := n.Sequences()
	byName := make(map[string][]*node, len(seqs))

	for _, seq := range seqs {
		children := make([]*node, 0, len(seq.Nodes))

		for _, c := range seq.Nodes {
			child, err := fromAST(c)
			if err != nil {
				return nil, err
			}

			children = append(children, child)
		}

		byName[seq.Name] = children
	}

	assignSequence := func(name string, dst *[]*node) {
		if v, ok := byName[name]; ok {
			*dst = v
		}
	}
	assignSingle := func(name string, dst **node) {
		if v, ok := byName[name]; ok && len(v) == 1 {
			*dst = v[0]
		}
	}

	assignSequence("typedefs", &out.Typedefs)
	assignSequence("type-aliases", &out.TypeAliases)
	assignSequence("declaration-specifiers", &out.DeclarationSpecifiers)
	assignSequence("trace-blocks", &out.TraceBlocks)
	assignSequence("stream-blocks", &out.StreamBlocks)
	assignSequence("event-blocks", &out.EventBlocks)
	assignSequence("declaration-list", &out.Declarations)
	assignSequence("left", &out.Left)
	assignSequence("right", &out.Right)
	assignSequence("type-declarators", &out.TypeDeclarators)
	assignSingle("target", &out.Target)
	assignSingle("alias", &out.Alias)
	assignSequence("pointers", &out.Pointers)
	assignSingle("inner", &out.Inner)
	assignSingle("length", &out.Length)
	assignSingle("bitfield-length", &out.BitfieldLength)
	assignSequence("expressions", &out.Expressions)
	assignSequence("values", &out.Values)
	assignSingle("container-type", &out.ContainerType)
	assignSequence("enumerators", &out.Enumerators)

	return out, nil
}
