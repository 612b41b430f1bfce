// Package validator implements the second of the two passes spec.md
// describes: walking an already parent-linked CTF metadata AST and
// confirming every node's parent kind is one its grammar position
// permits, plus the handful of local shape rules (unary-expression,
// type-declarator, enumerator) that a parent-kind check alone cannot
// express. It is grounded on this module's compiler lineage's own
// HIR validator (internal/parser/hir_validator.go in the teacher
// repository this module descends from): a Kind-dispatch switch over a
// Data payload, accumulating diagnostics through a small sink
// interface rather than panicking or collecting into an ad-hoc slice.
package validator

import (
	"github.com/tracetools/ctfmeta/internal/ast"
	"github.com/tracetools/ctfmeta/internal/diag"
	"github.com/tracetools/ctfmeta/internal/errors"
	"github.com/tracetools/ctfmeta/internal/linker"
)

// Run performs both passes against root: the parent-link pass, then the
// semantic-check pass, emitting an [info] marker around each and writing
// every detected violation to sink as it is found. It returns the POSIX-
// style errno spec.md §6/§7 associate with the first violation, or 0 if
// none was found.
func Run(sink diag.Sink, root *ast.Node) int {
	sink.Infof("parent-link pass: start")
	linker.Link(root)
	sink.Infof("parent-link pass: done")

	sink.Infof("semantic-check pass: start")
	err := checkNode(sink, root)
	sink.Infof("semantic-check pass: done")

	if err != nil {
		return err.Errno()
	}

	return 0
}

// Check runs only the semantic-check pass, assuming root has already been
// linked (e.g. by a caller using linker.LinkIterative directly, or by a
// prior Run). It returns the first violation encountered, or nil.
func Check(sink diag.Sink, root *ast.Node) *errors.StandardError {
	return checkNode(sink, root)
}

// checkNode validates n and then recurses into every sequence it owns, in
// declaration order, stopping at the first violation (spec.md §2's
// fail-fast policy: one error aborts the walk).
func checkNode(sink diag.Sink, n *ast.Node) *errors.StandardError {
	if n == nil {
		return nil
	}

	if !n.Kind.Recognized() {
		return emitInvalidArgument(sink, "unrecognized node kind %d", int(n.Kind))
	}

	if n.Kind == ast.KindUnaryExpression {
		return checkUnaryExpression(sink, n)
	}

	if !n.IsRoot() {
		if err := checkParent(sink, n); err != nil {
			return err
		}
	}

	switch n.Kind {
	case ast.KindTypeDeclarator:
		if err := checkTypeDeclaratorLocal(sink, n); err != nil {
			return err
		}
	case ast.KindEnumerator:
		if err := checkEnumeratorLocal(sink, n); err != nil {
			return err
		}
	}

	for _, seq := range n.Sequences() {
		for _, child := range seq.Nodes {
			if child == nil {
				continue
			}

			if err := checkNode(sink, child); err != nil {
				return err
			}
		}
	}

	return nil
}

// checkParent applies the generic AllowedParents table (spec.md §4.0) to
// every kind except unary-expression, which checkUnaryExpression handles
// on its own.
func checkParent(sink diag.Sink, n *ast.Node) *errors.StandardError {
	if n.Parent == nil {
		return emitIncoherent(sink, n, "<none>")
	}

	if allowedParents[n.Kind][n.Parent.Kind] {
		return nil
	}

	if explicitlyForbiddenParents[n.Kind][n.Parent.Kind] {
		return emitStructureNotAllowed(sink, n, "a complex type node may not appear beneath a unary expression")
	}

	return emitIncoherent(sink, n, n.Parent.Kind.String())
}
