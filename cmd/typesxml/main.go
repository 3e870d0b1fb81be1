// typesxml edits and merges DayZ-style types.xml files.
//
// Usage:
//
//	typesxml [-config path] [-v] <file> <action> [flags] [args]
//
// Actions:
//
//	add [-o out] [-i] <name>              add a type with default fields
//	find [-xml] <regex>                   print types whose name matches
//	show [-xml] <name>                    print one type (case-insensitive)
//	fix [-o out] [-diff] [-dry-run]       rewrite the file, repairing malformed fields
//	merge [-o out] <ext>...               merge extension files into the file
//	remove [-o out] [-i] <name>           remove a type
//	set [-o out] [-i] <name> <field> ...  change one field of a type
//	push <label>                          store the file as a snapshot
//	pull [-o out] <label>                 restore the latest snapshot of a label
//	history <label>                       list stored snapshots of a label
//
// Results are printed to stdout unless -o or -i is given. Files ending in
// .json or .yaml are read and written in that encoding.
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
)

// Exit codes.
const (
	exitOK       = 0
	exitRead     = 1
	exitUsage    = 2
	exitWrite    = 3
	exitNotFound = 4
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// exitError carries the process exit code of a failed action.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func usageErrorf(format string, args ...any) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("typesxml", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "editor config file (default $"+config.EditorPathEnv+" or "+config.DefaultEditorPath+")")
	verbose := fs.Bool("v", false, "log debug messages")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: typesxml [-config path] [-v] <file> <action> [flags] [args]")
		fmt.Fprintln(stderr, "actions: add, find, show, fix, merge, remove, set, push, pull, history")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.LoadEditor(config.EditorPath(*configPath))
	if err != nil {
		fmt.Fprintf(stderr, "error: loading config: %v\n", err)
		return exitRead
	}

	level := cfg.SlogLevel()
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	})))

	a := &app{
		cfg:    cfg,
		path:   fs.Arg(0),
		stdout: stdout,
		stderr: stderr,
	}
	name, rest := fs.Arg(1), fs.Args()[2:]

	action, ok := actions[name]
	if !ok {
		fmt.Fprintf(stderr, "error: unknown action %q\n", name)
		fs.Usage()
		return exitUsage
	}

	slog.Debug("running action", "action", name, "file", a.path, "args", rest)
	if err := action(ctx, a, rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return exitRead
	}
	return exitOK
}
