package validator

import (
	"fmt"

	"github.com/tracetools/ctfmeta/internal/ast"
	"github.com/tracetools/ctfmeta/internal/diag"
	"github.com/tracetools/ctfmeta/internal/errors"
)

// emitIncoherent reports n as having a parent kind entirely outside its
// recognized parent set, writes one [error] line to sink, and returns the
// underlying error for the caller to propagate.
func emitIncoherent(sink diag.Sink, n *ast.Node, parentKindName string) *errors.StandardError {
	err := errors.IncoherentStructure(n.Kind.String(), parentKindName)
	sink.Errorf("%s", err.Message)

	return err
}

// emitStructureNotAllowed reports a recognized-but-forbidden parent, or a
// failed local shape rule, for n.
func emitStructureNotAllowed(sink diag.Sink, n *ast.Node, reason string) *errors.StandardError {
	err := errors.StructureNotAllowed(reason, n.Kind.String(), n.ParentKind())
	sink.Errorf("%s", err.Message)

	return err
}

// emitInvalidArgument reports an unrecognized enum value found on the AST
// (node kind, link type, or declarator form).
func emitInvalidArgument(sink diag.Sink, format string, args ...interface{}) *errors.StandardError {
	err := errors.InvalidArgument(fmt.Sprintf(format, args...))
	sink.Errorf("%s", err.Message)

	return err
}
