package validator

import (
	"github.com/tracetools/ctfmeta/internal/ast"
	"github.com/tracetools/ctfmeta/internal/diag"
	"github.com/tracetools/ctfmeta/internal/errors"
)

// checkTypeDeclaratorLocal implements spec.md §4.3's local shape rule,
// run after the generic parent check and before recursing into n's
// pointers/inner/length/bitfield-length sequences.
func checkTypeDeclaratorLocal(sink diag.Sink, n *ast.Node) *errors.StandardError {
	data, ok := n.Data.(*ast.TypeDeclaratorData)
	if !ok {
		return emitInvalidArgument(sink, "type declarator node carries no type declarator data")
	}

	if n.Parent != nil && n.Parent.Kind == ast.KindTypeDeclarator && len(data.Pointers) > 0 {
		return emitStructureNotAllowed(sink, n, "a nested type declarator may not itself carry pointers")
	}

	if !data.Form.Recognized() {
		return emitInvalidArgument(sink, "unrecognized type declarator form %d", int(data.Form))
	}

	return nil
}
