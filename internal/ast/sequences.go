package ast

// Sequence is one named, ordered child list owned by a node (e.g. a
// ctf-expression's "left" vs "right", or an enum's "enumerators").
// Keeping the name alongside the nodes lets callers answer "is this node
// the head of *which* sequence of its parent" without re-deriving it
// from type assertions at every call site.
type Sequence struct {
	Name  string
	Nodes []*Node
}

// Sequences returns every child sequence n owns, in the declaration
// order given by spec.md §3's node-kind table. Leaf kinds (type-specifier,
// pointer) return nil. An unrecognized Kind or a Data payload of the
// wrong type also returns nil; callers are expected to have already
// rejected those via the parent/kind checks before recursing.
func (n *Node) Sequences() []Sequence {
	switch n.Kind {
	case KindRoot:
		d, ok := n.Data.(*RootData)
		if !ok {
			return nil
		}

		return []Sequence{
			{"typedefs", d.Typedefs},
			{"type-aliases", d.TypeAliases},
			{"declaration-specifiers", d.DeclarationSpecifiers},
			{"trace-blocks", d.TraceBlocks},
			{"stream-blocks", d.StreamBlocks},
			{"event-blocks", d.EventBlocks},
		}

	case KindEvent, KindStream, KindTrace:
		d, ok := n.Data.(*BlockData)
		if !ok {
			return nil
		}

		return []Sequence{{"declaration-list", d.Declarations}}

	case KindCTFExpression:
		d, ok := n.Data.(*CTFExpressionData)
		if !ok {
			return nil
		}

		return []Sequence{
			{"left", d.Left},
			{"right", d.Right},
		}

	case KindUnaryExpression:
		return nil // leaf

	case KindTypedef, KindTypealiasTarget, KindTypealiasAlias:
		d, ok := n.Data.(*DeclaratorListData)
		if !ok {
			return nil
		}

		return []Sequence{
			{"declaration-specifiers", d.DeclarationSpecifiers},
			{"type-declarators", d.TypeDeclarators},
		}

	case KindTypealias:
		d, ok := n.Data.(*TypealiasData)
		if !ok {
			return nil
		}

		var target, alias []*Node
		if d.Target != nil {
			target = []*Node{d.Target}
		}

		if d.Alias != nil {
			alias = []*Node{d.Alias}
		}

		return []Sequence{
			{"target", target},
			{"alias", alias},
		}

	case KindTypeSpecifier, KindPointer:
		return nil // leaves

	case KindTypeDeclarator:
		d, ok := n.Data.(*TypeDeclaratorData)
		if !ok {
			return nil
		}

		seqs := []Sequence{{"pointers", d.Pointers}}

		var inner, length, bitfield []*Node
		if d.Inner != nil {
			inner = []*Node{d.Inner}
		}

		if d.Length != nil {
			length = []*Node{d.Length}
		}

		if d.BitfieldLength != nil {
			bitfield = []*Node{d.BitfieldLength}
		}

		return append(seqs,
			Sequence{"inner", inner},
			Sequence{"length", length},
			Sequence{"bitfield-length", bitfield},
		)

	case KindFloatingPoint, KindInteger, KindString:
		d, ok := n.Data.(*NumericTypeData)
		if !ok {
			return nil
		}

		return []Sequence{{"expressions", d.Expressions}}

	case KindEnumerator:
		d, ok := n.Data.(*EnumeratorData)
		if !ok {
			return nil
		}

		return []Sequence{{"values", d.Values}}

	case KindEnum:
		d, ok := n.Data.(*EnumData)
		if !ok {
			return nil
		}

		var container []*Node
		if d.ContainerType != nil {
			container = []*Node{d.ContainerType}
		}

		return []Sequence{
			{"container-type", container},
			{"enumerators", d.Enumerators},
		}

	case KindStruct, KindVariant:
		d, ok := n.Data.(*StructOrVariantData)
		if !ok {
			return nil
		}

		return []Sequence{{"declaration-list", d.Declarations}}

	case KindStructOrVariantDeclaration:
		d, ok := n.Data.(*DeclarationData)
		if !ok {
			return nil
		}

		return []Sequence{
			{"declaration-specifiers", d.DeclarationSpecifiers},
			{"type-declarators", d.TypeDeclarators},
		}

	default:
		return nil
	}
}

// Children flattens every sequence n owns into one ordered slice,
// preserving sequence order and within-sequence order. Used by the
// linker, which does not need to distinguish which sequence a child
// came from.
func (n *Node) Children() []*Node {
	var out []*Node

	for _, seq := range n.Sequences() {
		out = append(out, seq.Nodes...)
	}

	return out
}
