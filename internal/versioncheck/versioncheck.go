// Package versioncheck is a downstream-of-validation pass: once a
// document has passed the structural validator, it folds the trace
// block's major/minor ctf-expressions into a semver string and checks it
// against the range of versions this module understands. It is
// grounded on this module's compiler lineage's own dependency-version
// commands (cmd/orizon/pkg/commands/outdated.go), which use the same
// github.com/Masterminds/semver/v3 constraint-matching idiom against a
// manifest instead of a trace header.
package versioncheck

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"

	"github.com/tracetools/ctfmeta/internal/ast"
)

// SupportedConstraint is the range of CTF metadata trace versions this
// module's validator rules were written against.
const SupportedConstraint = ">= 1.8.0, < 2.0.0"

// CheckTraceVersion walks root's trace blocks, reads their major/minor
// ctf-expressions, and reports an error if any declared version falls
// outside SupportedConstraint. It assumes root has already passed the
// structural validator: a trace block with a malformed version
// expression is reported as a plain error here rather than one of the
// validator's three structural error kinds.
func CheckTraceVersion(root *ast.Node) error {
	data, ok := root.Data.(*ast.RootData)
	if !ok {
		return fmt.Errorf("versioncheck: root node carries no root data")
	}

	constraint, err := semver.NewConstraint(SupportedConstraint)
	if err != nil {
		return fmt.Errorf("versioncheck: invalid supported constraint: %w", err)
	}

	for _, trace := range data.TraceBlocks {
		v, err := traceVersion(trace)
		if err != nil {
			return fmt.Errorf("versioncheck: %w", err)
		}

		if v == nil {
			continue // no major/minor declared; nothing to check
		}

		if !constraint.Check(v) {
			return fmt.Errorf("versioncheck: trace version %s is outside the supported range %s", v, SupportedConstraint)
		}
	}

	return nil
}

// traceVersion scans trace's declaration list for `major = N;` and
// `minor = N;` ctf-expressions and folds them into a semver.Version. It
// returns (nil, nil) if no major is declared; a missing minor is read as 0.
func traceVersion(trace *ast.Node) (*semver.Version, error) {
	data, ok := trace.Data.(*ast.BlockData)
	if !ok {
		return nil, fmt.Errorf("trace node carries no block data")
	}

	var major, minor string

	for _, decl := range data.Declarations {
		expr, ok := decl.Data.(*ast.CTFExpressionData)
		if !ok {
			continue
		}

		name, value, ok := exprNameAndValue(expr)
		if !ok {
			continue
		}

		switch name {
		case "major":
			major = value
		case "minor":
			minor = value
		}
	}

	if major == "" {
		return nil, nil
	}

	if minor == "" {
		minor = "0"
	}

	return semver.NewVersion(fmt.Sprintf("%s.%s.0", major, minor))
}

// exprNameAndValue reads a ctf-expression shaped like `name = value;`: a
// single-element left side (the dotted name, here required to be a
// single identifier) and a single-element right side (a numeric
// constant).
func exprNameAndValue(expr *ast.CTFExpressionData) (name, value string, ok bool) {
	if len(expr.Left) != 1 || len(expr.Right) != 1 {
		return "", "", false
	}

	left, lok := expr.Left[0].Data.(*ast.UnaryExpressionData)
	right, rok := expr.Right[0].Data.(*ast.UnaryExpressionData)

	if !lok || !rok || left.Type != ast.UnaryString || !right.Type.IsNumericConst() {
		return "", "", false
	}

	return left.Value, right.Value, true
}
