// Package main provides the ctfmeta CLI entry point: validate, watch,
// and serve subcommands over a parsed CTF metadata AST. Subcommand
// dispatch mirrors this module's compiler lineage's own CLI
// (cmd/orizon/main.go): a bare os.Args switch, one flag.NewFlagSet per
// subcommand that needs flags.
package main

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"

	"github.com/tracetools/ctfmeta/internal/ast"
	"github.com/tracetools/ctfmeta/internal/cli"
	"github.com/tracetools/ctfmeta/internal/config"
	"github.com/tracetools/ctfmeta/internal/diag"
	"github.com/tracetools/ctfmeta/internal/docjson"
	"github.com/tracetools/ctfmeta/internal/rpc"
	"github.com/tracetools/ctfmeta/internal/validator"
	"github.com/tracetools/ctfmeta/internal/versioncheck"
	"github.com/tracetools/ctfmeta/internal/watch"
)

// configPath returns the run configuration's conventional location,
// honoring CTFMETA_CONFIG when set.
func configPath() string {
	if p := os.Getenv("CTFMETA_CONFIG"); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return home + "/.ctfmeta.json"
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	switch sub {
	case "help", "-h", "--help":
		usage()
	case "version", "-v", "--version":
		jsonOutput := false
		for _, a := range args {
			if a == "--json" || a == "-j" {
				jsonOutput = true
			}
		}

		cli.PrintVersion("ctfmeta", jsonOutput)
	case "validate":
		cli.ExitWithCode(runValidate(args), "")
	case "watch":
		cli.ExitWithCode(runWatch(args), "")
	case "serve":
		cli.ExitWithCode(runServe(args), "")
	default:
		fmt.Fprintf(os.Stderr, "ctfmeta: unknown subcommand %q\n", sub)
		usage()
		os.Exit(2)
	}
}

func usage() {
	cli.PrintUsage("ctfmeta", []cli.CommandInfo{
		{Name: "validate", Description: "validate one metadata document (JSON-encoded AST)"},
		{Name: "watch", Description: "re-validate documents as they change on disk"},
		{Name: "serve", Description: "run the QUIC-based validation service"},
		{Name: "version", Description: "print version information"},
	})
}

var validateUsage = cli.CommandInfo{
	Name:        "validate",
	Usage:       "ctfmeta validate <file>",
	Description: "validate one metadata document (JSON-encoded AST)",
	Examples:    []string{"ctfmeta validate trace.json"},
}

func runValidate(args []string) int {
	if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
		cli.PrintCommandUsage("ctfmeta", validateUsage)

		return 0
	}

	if err := cli.ValidateArgs(args, 1, validateUsage.Usage); err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 2
	}

	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctfmeta: %v\n", err)

		return 1
	}

	logger := cli.NewLogger(cfg.Verbose, cfg.Debug)
	logger.Debug("loaded configuration from %s", configPath())

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctfmeta: %v\n", err)

		return 1
	}
	defer f.Close()

	root, err := docjson.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctfmeta: %v\n", err)

		return 1
	}

	logger.Info("validating %s", args[0])

	sink := diag.NewWriterSink(os.Stdout)

	var code int
	if cfg.Parallel {
		code = validator.RunParallel(context.Background(), sink, root)
	} else {
		code = validator.Run(sink, root)
	}

	if code == 0 {
		if err := versioncheck.CheckTraceVersion(root); err != nil {
			sink.Errorf("%v", err)

			return -22
		}
	}

	return code
}

var watchUsage = cli.CommandInfo{
	Name:        "watch",
	Usage:       "ctfmeta watch <file...>",
	Description: "re-validate documents as they change on disk",
	Examples:    []string{"ctfmeta watch trace.json stream.json"},
}

func runWatch(args []string) int {
	if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
		cli.PrintCommandUsage("ctfmeta", watchUsage)

		return 0
	}

	if err := cli.ValidateArgs(args, 1, watchUsage.Usage); err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 2
	}

	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctfmeta: %v\n", err)

		return 1
	}

	logger := cli.NewLogger(cfg.Verbose, cfg.Debug)
	sink := diag.NewWriterSink(os.Stdout)

	w, err := watch.New(sink, func(path string, content []byte) (*ast.Node, error) {
		return docjson.Decode(bytes.NewReader(content))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctfmeta: %v\n", err)

		return 1
	}
	defer w.Close()

	for _, path := range args {
		if err := w.Add(path); err != nil {
			fmt.Fprintf(os.Stderr, "ctfmeta: %v\n", err)

			return 1
		}

		logger.Info("watching %s", path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "ctfmeta: %v\n", err)

		return 1
	}

	return 0
}

var serveUsage = cli.CommandInfo{
	Name:        "serve",
	Usage:       "ctfmeta serve [addr]",
	Description: "run the QUIC-based validation service",
	Examples:    []string{"ctfmeta serve :4433"},
}

func runServe(args []string) int {
	if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
		cli.PrintCommandUsage("ctfmeta", serveUsage)

		return 0
	}

	cfg, err := config.Load(configPath())
	logger := cli.NewLogger(true, false)
	cli.HandleError(err, logger)

	addr := cfg.ServeAddr
	if len(args) > 0 {
		addr = args[0]
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS13, NextProtos: []string{"ctfmeta"}}

	srv := rpc.NewServer(addr, tlsConfig, func(content []byte) (*ast.Node, error) {
		return docjson.Decode(bytes.NewReader(content))
	})

	logger.Info("listening on %s", addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "ctfmeta: %v\n", err)

		return 1
	}

	return 0
}
