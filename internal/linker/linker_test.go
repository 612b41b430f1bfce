package linker

import (
	"testing"

	"github.com/tracetools/ctfmeta/internal/ast"
)

func buildSampleTree() *ast.Node {
	left := ast.NewNode(ast.KindUnaryExpression, &ast.UnaryExpressionData{Type: ast.UnaryString})
	right := ast.NewNode(ast.KindUnaryExpression, &ast.UnaryExpressionData{Type: ast.UnaryString})
	expr := ast.NewNode(ast.KindCTFExpression, &ast.CTFExpressionData{Left: []*ast.Node{left}, Right: []*ast.Node{right}})
	trace := ast.NewNode(ast.KindTrace, &ast.BlockData{Declarations: []*ast.Node{expr}})

	return ast.NewNode(ast.KindRoot, &ast.RootData{TraceBlocks: []*ast.Node{trace}})
}

func TestLinkSetsParents(t *testing.T) {
	root := buildSampleTree()
	Link(root)

	trace := root.Data.(*ast.RootData).TraceBlocks[0]
	if trace.Parent != root {
		t.Fatalf("trace.Parent = %v, want root", trace.Parent)
	}

	expr := trace.Data.(*ast.BlockData).Declarations[0]
	if expr.Parent != trace {
		t.Fatalf("expr.Parent = %v, want trace", expr.Parent)
	}

	left := expr.Data.(*ast.CTFExpressionData).Left[0]
	if left.Parent != expr {
		t.Fatalf("left.Parent = %v, want expr", left.Parent)
	}
}

func TestLinkIsIdempotent(t *testing.T) {
	root := buildSampleTree()

	Link(root)
	trace := root.Data.(*ast.RootData).TraceBlocks[0]
	first := trace.Parent

	Link(root)
	second := trace.Parent

	if first != second {
		t.Fatalf("re-running Link changed trace.Parent: %v != %v", first, second)
	}
}

func TestLinkAndLinkIterativeAgree(t *testing.T) {
	recursiveTree := buildSampleTree()
	iterativeTree := buildSampleTree()

	Link(recursiveTree)
	LinkIterative(iterativeTree)

	rTrace := recursiveTree.Data.(*ast.RootData).TraceBlocks[0]
	iTrace := iterativeTree.Data.(*ast.RootData).TraceBlocks[0]

	if rTrace.Parent.Kind != iTrace.Parent.Kind {
		t.Fatalf("recursive and iterative linkers disagree on trace parent kind: %v != %v",
			rTrace.Parent.Kind, iTrace.Parent.Kind)
	}

	rExpr := rTrace.Data.(*ast.BlockData).Declarations[0]
	iExpr := iTrace.Data.(*ast.BlockData).Declarations[0]

	if rExpr.Parent.Kind != iExpr.Parent.Kind {
		t.Fatalf("recursive and iterative linkers disagree on expr parent kind")
	}
}

func TestLinkNilRoot(t *testing.T) {
	Link(nil) // must not panic

	LinkIterative(nil) // must not panic
}
