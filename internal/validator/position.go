package validator

import "github.com/tracetools/ctfmeta/internal/ast"

// sequencePosition finds which named sequence of parent contains child,
// and child's index within it. Every sequence parent owns — including
// the singleton ones like type-declarator's "length" — is searched, so
// a unary-expression's "first element of its list" question (spec.md
// §4.1's link rules) is answered uniformly whether the list in question
// is a ctf-expression's left/right, an enumerator's values, or a
// type-declarator/enum's single optional child.
func sequencePosition(parent, child *ast.Node) (seqName string, index int, found bool) {
	for _, seq := range parent.Sequences() {
		for i, node := range seq.Nodes {
			if node == child {
				return seq.Name, i, true
			}
		}
	}

	return "", 0, false
}
