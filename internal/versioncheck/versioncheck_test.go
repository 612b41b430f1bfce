package versioncheck

import (
	"testing"

	"github.com/tracetools/ctfmeta/internal/ast"
)

func versionExpr(name, value string) *ast.Node {
	return ast.NewNode(ast.KindCTFExpression, &ast.CTFExpressionData{
		Left:  []*ast.Node{ast.NewNode(ast.KindUnaryExpression, &ast.UnaryExpressionData{Type: ast.UnaryString, Value: name})},
		Right: []*ast.Node{ast.NewNode(ast.KindUnaryExpression, &ast.UnaryExpressionData{Type: ast.UnarySignedConst, Value: value})},
	})
}

func TestCheckTraceVersionSupported(t *testing.T) {
	trace := ast.NewNode(ast.KindTrace, &ast.BlockData{Declarations: []*ast.Node{
		versionExpr("major", "1"),
		versionExpr("minor", "8"),
	}})
	root := ast.NewNode(ast.KindRoot, &ast.RootData{TraceBlocks: []*ast.Node{trace}})

	if err := CheckTraceVersion(root); err != nil {
		t.Fatalf("CheckTraceVersion() = %v, want nil", err)
	}
}

func TestCheckTraceVersionUnsupported(t *testing.T) {
	trace := ast.NewNode(ast.KindTrace, &ast.BlockData{Declarations: []*ast.Node{
		versionExpr("major", "2"),
		versionExpr("minor", "0"),
	}})
	root := ast.NewNode(ast.KindRoot, &ast.RootData{TraceBlocks: []*ast.Node{trace}})

	if err := CheckTraceVersion(root); err == nil {
		t.Fatal("expected an error for an unsupported major version")
	}
}

func TestCheckTraceVersionNoVersionDeclared(t *testing.T) {
	trace := ast.NewNode(ast.KindTrace, &ast.BlockData{})
	root := ast.NewNode(ast.KindRoot, &ast.RootData{TraceBlocks: []*ast.Node{trace}})

	if err := CheckTraceVersion(root); err != nil {
		t.Fatalf("CheckTraceVersion() = %v, want nil when no version is declared", err)
	}
}
