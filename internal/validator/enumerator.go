package validator

import (
	"github.com/tracetools/ctfmeta/internal/ast"
	"github.com/tracetools/ctfmeta/internal/diag"
	"github.com/tracetools/ctfmeta/internal/errors"
)

// checkEnumeratorLocal implements spec.md §4.4's local shape rule: an
// enumerator's values sequence must hold either a single numeric constant
// (link none), or two numeric constants forming a start...end range (links
// none then "..."). Run before recursing into the values sequence itself,
// so a malformed shape is reported once rather than once per value.
func checkEnumeratorLocal(sink diag.Sink, n *ast.Node) *errors.StandardError {
	data, ok := n.Data.(*ast.EnumeratorData)
	if !ok {
		return emitInvalidArgument(sink, "enumerator node carries no enumerator data")
	}

	switch len(data.Values) {
	case 0:
		return emitStructureNotAllowed(sink, n, "an enumerator must carry at least one value")
	case 1:
		return checkEnumeratorValue(sink, n, data.Values[0], ast.LinkUnknown, "single")
	case 2:
		if err := checkEnumeratorValue(sink, n, data.Values[0], ast.LinkUnknown, "range start"); err != nil {
			return err
		}

		return checkEnumeratorValue(sink, n, data.Values[1], ast.LinkDotDotDot, "range end")
	default:
		return emitStructureNotAllowed(sink, n, "an enumerator accepts at most two values (a single value or a start...end range)")
	}
}

func checkEnumeratorValue(sink diag.Sink, enumerator, value *ast.Node, wantLink ast.LinkType, role string) *errors.StandardError {
	data, ok := value.Data.(*ast.UnaryExpressionData)
	if !ok {
		return emitStructureNotAllowed(sink, enumerator, role+" enumerator value must be a unary expression")
	}

	if !data.Type.IsNumericConst() {
		return emitStructureNotAllowed(sink, enumerator, role+" enumerator value must be a numeric constant")
	}

	if data.Link != wantLink {
		return emitStructureNotAllowed(sink, enumerator, role+" enumerator value must have link "+wantLink.String())
	}

	return nil
}
