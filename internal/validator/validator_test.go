package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/tracetools/ctfmeta/internal/ast"
	"github.com/tracetools/ctfmeta/internal/diag"
)

func unary(typ ast.UnaryType, link ast.LinkType) *ast.Node {
	return ast.NewNode(ast.KindUnaryExpression, &ast.UnaryExpressionData{Type: typ, Link: link})
}

func ctfExpr(key, value *ast.Node) *ast.Node {
	return ast.NewNode(ast.KindCTFExpression, &ast.CTFExpressionData{
		Left:  []*ast.Node{key},
		Right: []*ast.Node{value},
	})
}

func TestRunValidDocument(t *testing.T) {
	expr := ctfExpr(unary(ast.UnaryString, ast.LinkUnknown), unary(ast.UnarySignedConst, ast.LinkUnknown))
	event := ast.NewNode(ast.KindEvent, &ast.BlockData{Declarations: []*ast.Node{expr}})
	root := ast.NewNode(ast.KindRoot, &ast.RootData{EventBlocks: []*ast.Node{event}})

	sink := diag.NewBufferSink()
	if code := Run(sink, root); code != 0 {
		t.Fatalf("Run() = %d, want 0; lines: %v", code, sink.Lines())
	}
}

func TestRunIncoherentStructure(t *testing.T) {
	innerEvent := ast.NewNode(ast.KindEvent, &ast.BlockData{})
	outerEvent := ast.NewNode(ast.KindEvent, &ast.BlockData{Declarations: []*ast.Node{innerEvent}})
	root := ast.NewNode(ast.KindRoot, &ast.RootData{EventBlocks: []*ast.Node{outerEvent}})

	sink := diag.NewBufferSink()
	if code := Run(sink, root); code != -22 {
		t.Fatalf("Run() = %d, want -22 (EINVAL); lines: %v", code, sink.Lines())
	}

	// The error line is the last one before the semantic-check pass's
	// closing progress marker.
	lines := sink.Lines()
	if len(lines) < 2 || !strings.Contains(lines[len(lines)-2], "[error]") {
		t.Errorf("expected an [error] line just before the closing marker, got %v", lines)
	}
}

func TestRunStructureNotAllowed(t *testing.T) {
	badLeft := unary(ast.UnarySignedConst, ast.LinkUnknown) // left side must be a string
	expr := ctfExpr(badLeft, unary(ast.UnarySignedConst, ast.LinkUnknown))
	event := ast.NewNode(ast.KindEvent, &ast.BlockData{Declarations: []*ast.Node{expr}})
	root := ast.NewNode(ast.KindRoot, &ast.RootData{EventBlocks: []*ast.Node{event}})

	sink := diag.NewBufferSink()
	if code := Run(sink, root); code != -1 {
		t.Fatalf("Run() = %d, want -1 (EPERM); lines: %v", code, sink.Lines())
	}
}

func TestRunStopsAtFirstError(t *testing.T) {
	// Two independently-broken events; only the first one's violation
	// should reach the sink.
	bad1 := ast.NewNode(ast.KindEvent, &ast.BlockData{Declarations: []*ast.Node{
		ast.NewNode(ast.KindEvent, &ast.BlockData{}),
	}})
	bad2 := ast.NewNode(ast.KindEvent, &ast.BlockData{Declarations: []*ast.Node{
		ast.NewNode(ast.KindEvent, &ast.BlockData{}),
	}})
	root := ast.NewNode(ast.KindRoot, &ast.RootData{EventBlocks: []*ast.Node{bad1, bad2}})

	sink := diag.NewBufferSink()
	Run(sink, root)

	errorLines := 0
	for _, l := range sink.Lines() {
		if strings.HasPrefix(l, "[error]") {
			errorLines++
		}
	}

	if errorLines != 1 {
		t.Errorf("got %d [error] lines, want exactly 1 (fail-fast)", errorLines)
	}
}

func TestCheckUnaryExpressionNestedForbidden(t *testing.T) {
	parent := unary(ast.UnarySignedConst, ast.LinkUnknown)
	child := unary(ast.UnarySignedConst, ast.LinkUnknown)
	child.Parent = parent

	sink := diag.NewBufferSink()
	err := checkUnaryExpression(sink, child)
	if err == nil {
		t.Fatal("expected an error for a unary expression nested under a unary expression")
	}
}

func TestCheckUnaryExpressionLinkRules(t *testing.T) {
	tests := []struct {
		name      string
		parent    ast.Kind
		link      ast.LinkType
		childType ast.UnaryType
		isFirst   bool
		wantErr   bool
	}{
		{"dot on first element", ast.KindCTFExpression, ast.LinkDot, ast.UnaryString, true, true},
		{"dot on later string element", ast.KindCTFExpression, ast.LinkDot, ast.UnaryString, false, false},
		{"dot on later non-string element", ast.KindCTFExpression, ast.LinkDot, ast.UnarySignedConst, false, true},
		{"arrow on later non-string element", ast.KindCTFExpression, ast.LinkArrow, ast.UnarySignedConst, false, true},
		{"dotdotdot outside enumerator", ast.KindCTFExpression, ast.LinkDotDotDot, ast.UnarySignedConst, false, true},
		{"dotdotdot on first enumerator element", ast.KindEnumerator, ast.LinkDotDotDot, ast.UnarySignedConst, true, true},
		{"dotdotdot on later enumerator element", ast.KindEnumerator, ast.LinkDotDotDot, ast.UnarySignedConst, false, false},
		{"unknown link not first", ast.KindEnumerator, ast.LinkUnknown, ast.UnarySignedConst, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child := unary(tt.childType, tt.link)

			var parent *ast.Node
			switch tt.parent {
			case ast.KindCTFExpression:
				other := unary(ast.UnaryString, ast.LinkUnknown)
				if tt.isFirst {
					parent = ast.NewNode(ast.KindCTFExpression, &ast.CTFExpressionData{Right: []*ast.Node{child, other}})
				} else {
					parent = ast.NewNode(ast.KindCTFExpression, &ast.CTFExpressionData{Right: []*ast.Node{other, child}})
				}
			case ast.KindEnumerator:
				if tt.isFirst {
					parent = ast.NewNode(ast.KindEnumerator, &ast.EnumeratorData{Values: []*ast.Node{child, unary(ast.UnarySignedConst, ast.LinkDotDotDot)}})
				} else {
					parent = ast.NewNode(ast.KindEnumerator, &ast.EnumeratorData{Values: []*ast.Node{unary(ast.UnarySignedConst, ast.LinkUnknown), child}})
				}
			}
			child.Parent = parent

			sink := diag.NewBufferSink()
			err := checkUnaryExpression(sink, child)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkUnaryExpression() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckTypeDeclaratorNestedPointersForbidden(t *testing.T) {
	pointer := ast.NewNode(ast.KindPointer, nil)
	inner := ast.NewNode(ast.KindTypeDeclarator, &ast.TypeDeclaratorData{
		Form:     ast.FormID,
		Pointers: []*ast.Node{pointer},
	})
	outer := ast.NewNode(ast.KindTypeDeclarator, &ast.TypeDeclaratorData{
		Form:  ast.FormNested,
		Inner: inner,
	})
	inner.Parent = outer

	sink := diag.NewBufferSink()
	if err := checkTypeDeclaratorLocal(sink, inner); err == nil {
		t.Error("expected an error: nested type declarator carries pointers")
	}
}

func TestCheckNodeRecursesIntoNestedDeclaratorFields(t *testing.T) {
	validLength := unary(ast.UnarySignedConst, ast.LinkUnknown)
	invalidLength := unary(ast.UnaryString, ast.LinkUnknown) // not numeric, should be rejected

	tests := []struct {
		name    string
		build   func() *ast.Node
		wantErr bool
	}{
		{
			name: "bitfield length absent",
			build: func() *ast.Node {
				return ast.NewNode(ast.KindTypeDeclarator, &ast.TypeDeclaratorData{Form: ast.FormID})
			},
			wantErr: false,
		},
		{
			name: "bitfield length present and valid",
			build: func() *ast.Node {
				return ast.NewNode(ast.KindTypeDeclarator, &ast.TypeDeclaratorData{Form: ast.FormID, BitfieldLength: validLength})
			},
			wantErr: false,
		},
		{
			name: "bitfield length present and invalid",
			build: func() *ast.Node {
				return ast.NewNode(ast.KindTypeDeclarator, &ast.TypeDeclaratorData{Form: ast.FormID, BitfieldLength: invalidLength})
			},
			wantErr: true,
		},
		{
			name: "nested declarator with inner absent",
			build: func() *ast.Node {
				return ast.NewNode(ast.KindTypeDeclarator, &ast.TypeDeclaratorData{Form: ast.FormNested})
			},
			wantErr: false,
		},
		{
			name: "nested declarator with inner present and valid",
			build: func() *ast.Node {
				inner := ast.NewNode(ast.KindTypeDeclarator, &ast.TypeDeclaratorData{Form: ast.FormID})
				return ast.NewNode(ast.KindTypeDeclarator, &ast.TypeDeclaratorData{Form: ast.FormNested, Inner: inner})
			},
			wantErr: false,
		},
		{
			name: "nested declarator with inner present and malformed",
			build: func() *ast.Node {
				inner := ast.NewNode(ast.KindTypeDeclarator, &ast.TypeDeclaratorData{Form: ast.DeclaratorForm(99)})
				return ast.NewNode(ast.KindTypeDeclarator, &ast.TypeDeclaratorData{Form: ast.FormNested, Inner: inner})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			declarator := tt.build()

			typedef := ast.NewNode(ast.KindTypedef, &ast.DeclaratorListData{TypeDeclarators: []*ast.Node{declarator}})
			declarator.Parent = typedef

			for _, child := range declarator.Children() {
				child.Parent = declarator
			}

			root := ast.NewNode(ast.KindRoot, &ast.RootData{Typedefs: []*ast.Node{typedef}})
			typedef.Parent = root

			sink := diag.NewBufferSink()
			err := checkNode(sink, typedef)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkNode() err = %v, wantErr %v; lines: %v", err, tt.wantErr, sink.Lines())
			}
		})
	}
}

func TestCheckEnumeratorLocalShapes(t *testing.T) {
	tests := []struct {
		name    string
		values  []*ast.Node
		wantErr bool
	}{
		{"single value", []*ast.Node{unary(ast.UnarySignedConst, ast.LinkUnknown)}, false},
		{"range", []*ast.Node{unary(ast.UnarySignedConst, ast.LinkUnknown), unary(ast.UnarySignedConst, ast.LinkDotDotDot)}, false},
		{"empty", nil, true},
		{"three values", []*ast.Node{
			unary(ast.UnarySignedConst, ast.LinkUnknown),
			unary(ast.UnarySignedConst, ast.LinkDotDotDot),
			unary(ast.UnarySignedConst, ast.LinkDotDotDot),
		}, true},
		{"second value wrong link", []*ast.Node{
			unary(ast.UnarySignedConst, ast.LinkUnknown),
			unary(ast.UnarySignedConst, ast.LinkUnknown),
		}, true},
		{"non numeric value", []*ast.Node{unary(ast.UnaryString, ast.LinkUnknown)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enumerator := ast.NewNode(ast.KindEnumerator, &ast.EnumeratorData{Values: tt.values})

			sink := diag.NewBufferSink()
			err := checkEnumeratorLocal(sink, enumerator)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkEnumeratorLocal() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunUnrecognizedKind(t *testing.T) {
	bogus := ast.Kind(999)
	root := ast.NewNode(ast.KindRoot, &ast.RootData{
		EventBlocks: []*ast.Node{ast.NewNode(bogus, nil)},
	})

	sink := diag.NewBufferSink()
	if code := Run(sink, root); code != -22 {
		t.Fatalf("Run() = %d, want -22 for an unrecognized kind", code)
	}
}

func TestRunParallelMatchesRun(t *testing.T) {
	goodExpr := ctfExpr(unary(ast.UnaryString, ast.LinkUnknown), unary(ast.UnarySignedConst, ast.LinkUnknown))
	goodTrace := ast.NewNode(ast.KindTrace, &ast.BlockData{Declarations: []*ast.Node{goodExpr}})
	goodStream := ast.NewNode(ast.KindStream, &ast.BlockData{Declarations: []*ast.Node{goodExpr}})
	root := ast.NewNode(ast.KindRoot, &ast.RootData{
		TraceBlocks:  []*ast.Node{goodTrace},
		StreamBlocks: []*ast.Node{goodStream},
	})

	sink := diag.NewBufferSink()
	if code := RunParallel(context.Background(), sink, root); code != 0 {
		t.Fatalf("RunParallel() = %d, want 0; lines: %v", code, sink.Lines())
	}

	serial := diag.NewBufferSink()
	if code := Run(serial, root); code != 0 {
		t.Fatalf("Run() = %d, want 0; lines: %v", code, serial.Lines())
	}

	if got, want := strings.Join(sink.Lines(), "\n"), strings.Join(serial.Lines(), "\n"); got != want {
		t.Errorf("RunParallel() lines = %q, Run() lines = %q", got, want)
	}
}

func TestRunParallelPropagatesFirstErrorAmongBlocks(t *testing.T) {
	badTrace := ast.NewNode(ast.KindTrace, &ast.BlockData{Declarations: []*ast.Node{
		ast.NewNode(ast.KindEvent, &ast.BlockData{}), // event is never allowed under trace
	}})
	root := ast.NewNode(ast.KindRoot, &ast.RootData{TraceBlocks: []*ast.Node{badTrace}})

	sink := diag.NewBufferSink()
	if code := RunParallel(context.Background(), sink, root); code != -22 {
		t.Fatalf("RunParallel() = %d, want -22; lines: %v", code, sink.Lines())
	}
}
