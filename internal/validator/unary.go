package validator

import (
	"github.com/tracetools/ctfmeta/internal/ast"
	"github.com/tracetools/ctfmeta/internal/diag"
	"github.com/tracetools/ctfmeta/internal/errors"
)

// checkUnaryExpression implements spec.md §4.1. Unlike every other kind,
// a unary-expression's legal parents depend on both the parent's kind and
// the unary-expression's own Type/Link, so it is handled entirely here
// rather than through the generic allowedParents table.
func checkUnaryExpression(sink diag.Sink, n *ast.Node) *errors.StandardError {
	data, ok := n.Data.(*ast.UnaryExpressionData)
	if !ok {
		return emitInvalidArgument(sink, "unary expression node carries no unary expression data")
	}

	parent := n.Parent
	if parent == nil {
		return emitIncoherent(sink, n, "<none>")
	}

	switch parent.Kind {
	case ast.KindCTFExpression:
		seqName, _, found := sequencePosition(parent, n)
		if found && seqName == "left" && data.Type != ast.UnaryString {
			return emitStructureNotAllowed(sink, n, "the left side of a ctf expression only accepts strings")
		}

		return checkUnaryLink(sink, n, data, parent)

	case ast.KindTypeDeclarator, ast.KindEnum:
		if !data.Type.IsNumericConst() {
			return emitStructureNotAllowed(sink, n, "only numeric constants are accepted here")
		}

		return checkUnaryLink(sink, n, data, parent)

	case ast.KindEnumerator:
		// Type is accepted unconditionally here; the enumerator's own
		// local rule (checkEnumeratorLocal, spec.md §4.4) validates the
		// values sequence's shape.
		return checkUnaryLink(sink, n, data, parent)

	case ast.KindUnaryExpression:
		return emitStructureNotAllowed(sink, n, "nested unary expressions are not allowed")

	default:
		return emitIncoherent(sink, n, parent.Kind.String())
	}
}

// checkUnaryLink applies spec.md §4.1's link rules, which depend on n's
// position within its parent's owning sequence rather than on n's type.
func checkUnaryLink(sink diag.Sink, n *ast.Node, data *ast.UnaryExpressionData, parent *ast.Node) *errors.StandardError {
	_, index, found := sequencePosition(parent, n)
	isFirst := found && index == 0

	switch data.Link {
	case ast.LinkUnknown:
		if !isFirst {
			return emitStructureNotAllowed(sink, n, "an empty link is only allowed on the first element of the list")
		}

		return nil

	case ast.LinkDot, ast.LinkArrow:
		if parent.Kind != ast.KindCTFExpression {
			return emitStructureNotAllowed(sink, n, "\".\" and \"->\" links are only allowed within a ctf expression")
		}

		if data.Type != ast.UnaryString {
			return emitStructureNotAllowed(sink, n, "\".\" and \"->\" links are only allowed on a string")
		}

		if isFirst {
			return emitStructureNotAllowed(sink, n, "\".\" and \"->\" links are not allowed on the first element of the list")
		}

		return nil

	case ast.LinkDotDotDot:
		if parent.Kind != ast.KindEnumerator {
			return emitStructureNotAllowed(sink, n, "the \"...\" link is only allowed within an enumerator")
		}

		if isFirst {
			return emitStructureNotAllowed(sink, n, "the \"...\" link is not allowed on the first element of the list")
		}

		return nil

	default:
		return emitInvalidArgument(sink, "unrecognized link type %d", int(data.Link))
	}
}
