// Package rpc exposes the validator as a network service over QUIC
// streams: a client opens a stream, writes a metadata document, closes
// its write side, and reads back the validator's diagnostic lines
// followed by a final numeric result line. It is grounded on this
// module's compiler lineage's own QUIC/HTTP3 listener
// (internal/runtime/netstack/http3.go), generalized from serving HTTP/3
// request/response pairs to serving raw validate-one-document streams —
// this protocol has no use for HTTP framing, so it talks to quic-go's
// core package directly rather than through its http3 subpackage.
package rpc

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	quic "github.com/quic-go/quic-go"

	"github.com/tracetools/ctfmeta/internal/ast"
	"github.com/tracetools/ctfmeta/internal/diag"
	"github.com/tracetools/ctfmeta/internal/validator"
)

// Loader parses one request's raw document bytes into an AST. This
// module does not include a CTF grammar parser itself (spec.md's
// Non-goals exclude parsing/lexing); callers supply one.
type Loader func(content []byte) (*ast.Node, error)

// Server accepts QUIC connections and validates one document per stream.
type Server struct {
	addr      string
	tlsConfig *tls.Config
	load      Loader
}

// NewServer constructs a Server. tlsConfig must not be nil; QUIC
// requires TLS.
func NewServer(addr string, tlsConfig *tls.Config, load Loader) *Server {
	return &Server{addr: addr, tlsConfig: tlsConfig, load: load}
}

// ListenAndServe accepts connections until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := quic.ListenAddr(s.addr, s.tlsConfig, nil)
	if err != nil {
		return fmt.Errorf("rpc: listen: %w", err)
	}
	defer ln.Close()

	for {
		conn, err := ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("rpc: accept: %w", err)
		}

		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn quic.Connection) {
	for {
		stream, err := conn.AcceptStream(ctx)
		if err != nil {
			return
		}

		go s.handleStream(stream)
	}
}

func (s *Server) handleStream(stream quic.Stream) {
	defer stream.Close()

	content, err := io.ReadAll(stream)
	if err != nil {
		fmt.Fprintf(stream, "[error] reading request: %v\n", err)

		return
	}

	validateStream(content, s.load, stream)
}

// validateStream holds handleStream's protocol logic with no
// dependency on quic.Stream, so it can be exercised with a plain
// io.Writer in tests: parse content, run the validator writing
// [info]/[error] lines to w, and finish with a "[result] <code>" line.
func validateStream(content []byte, load Loader, w io.Writer) int {
	root, err := load(content)
	if err != nil {
		fmt.Fprintf(w, "[error] parsing request: %v\n", err)
		fmt.Fprintf(w, "[result] -22\n")

		return -22
	}

	sink := diag.NewWriterSink(w)
	code := validator.Run(sink, root)
	fmt.Fprintf(w, "[result] %d\n", code)

	return code
}
