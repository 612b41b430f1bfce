package linker

import "github.com/tracetools/ctfmeta/internal/ast"

// LinkIterative is behaviorally identical to Link but uses an explicit
// work stack instead of Go call-stack recursion, per spec.md §5:
// "implementations on platforms with tight stacks may convert to an
// explicit work stack without behavioral change." The validator package
// selects between Link and LinkIterative based on the process stack
// resource limit (see internal/validator/stacksafe.go).
func LinkIterative(root *ast.Node) {
	if root == nil {
		return
	}

	stack := []*ast.Node{root}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			if child == nil {
				continue
			}

			child.Parent = n
			stack = append(stack, child)
		}
	}
}
