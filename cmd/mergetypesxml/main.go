// mergetypesxml merges an extension types file into a base file.
// Types defined in both are taken from the extension; the result is
// sorted by name.
//
// Usage:
//
//	mergetypesxml [-config path] [-o out] <base> <extension>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/typesxml/internal/config"
	"github.com/udisondev/typesxml/internal/format"
	"github.com/udisondev/typesxml/internal/typesxml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mergetypesxml", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "editor config file (default $"+config.EditorPathEnv+" or "+config.DefaultEditorPath+")")
	out := fs.String("o", "", "write the result to `file` instead of stdout")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: mergetypesxml [-config path] [-o out] <base> <extension>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	cfg, err := config.LoadEditor(config.EditorPath(*configPath))
	if err != nil {
		fmt.Fprintf(stderr, "error: loading config: %v\n", err)
		return 1
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	all, err := format.ReadFiles(ctx, fs.Arg(0), fs.Arg(1))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	merged := typesxml.Merge(all[0], all[1])
	slog.Info("types merged", "base", all[0].Len(), "extension", all[1].Len(), "result", merged.Len())

	char, size := cfg.Indent()
	if *out != "" {
		if err := format.WriteFile(*out, merged, char, size); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 3
		}
		return 0
	}

	data, err := merged.MarshalIndent(char, size)
	if err == nil {
		_, err = stdout.Write(data)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 3
	}
	return 0
}
