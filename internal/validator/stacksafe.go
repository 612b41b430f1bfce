package validator

import (
	"github.com/tracetools/ctfmeta/internal/ast"
	"github.com/tracetools/ctfmeta/internal/diag"
	"github.com/tracetools/ctfmeta/internal/linker"
)

// RunStackSafe behaves like Run, except the parent-link pass switches to
// linker.LinkIterative whenever the process's stack rlimit looks too
// tight for recursive descent over a deeply nested document (spec.md §5
// names this an allowed implementation strategy, not a requirement).
func RunStackSafe(sink diag.Sink, root *ast.Node) int {
	sink.Infof("parent-link pass: start")

	if stackIsTight() {
		linker.LinkIterative(root)
	} else {
		linker.Link(root)
	}

	sink.Infof("parent-link pass: done")

	sink.Infof("semantic-check pass: start")
	err := checkNode(sink, root)
	sink.Infof("semantic-check pass: done")

	if err != nil {
		return err.Errno()
	}

	return 0
}
