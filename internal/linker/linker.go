// Package linker implements the parent-link pass of spec.md §4.5: a
// top-down traversal that writes, into every reachable node, a reference
// to its structural parent. It is the prerequisite tree-rewriting pass
// the semantic validator depends on — the validator only reads Parent,
// it never sets it.
package linker

import "github.com/tracetools/ctfmeta/internal/ast"

// Link populates Parent on every node reachable from root, overwriting
// any previously-stored parent references. It is idempotent (re-running
// produces identical links, spec.md P4) and destructive (stale links
// from before a tree edit are replaced, not merged). Link is total over
// the tree: it recurses into every owned child sequence regardless of
// node kind, including kinds the validator will later reject — linking
// never fails.
func Link(root *ast.Node) {
	if root == nil {
		return
	}

	link(root)
}

func link(n *ast.Node) {
	for _, child := range n.Children() {
		if child == nil {
			continue
		}

		child.Parent = n
		link(child)
	}
}
