package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/udisondev/typesxml/internal/config"
	"github.com/udisondev/typesxml/internal/db"
	"github.com/udisondev/typesxml/internal/diff"
	"github.com/udisondev/typesxml/internal/format"
	"github.com/udisondev/typesxml/internal/typesxml"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

type app struct {
	cfg    config.Editor
	path   string
	stdout io.Writer
	stderr io.Writer
}

type actionFunc func(ctx context.Context, a *app, args []string) error

var actions = map[string]actionFunc{
	"add":     runAdd,
	"find":    runFind,
	"show":    runShow,
	"fix":     runFix,
	"merge":   runMerge,
	"remove":  runRemove,
	"set":     runSet,
	"push":    runPush,
	"pull":    runPull,
	"history": runHistory,
}

// output is where an editing action sends its result.
type output struct {
	path    string
	inPlace bool
}

func (o *output) register(fs *flag.FlagSet, inPlace bool) {
	fs.StringVar(&o.path, "o", "", "write the result to `file`")
	if inPlace {
		fs.BoolVar(&o.inPlace, "i", false, "edit the file in place")
	}
}

func (o output) validate() error {
	if o.inPlace && o.path != "" {
		return usageErrorf("-o and -i cannot be used together")
	}
	return nil
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return withCode(exitUsage, err)
	}
	return nil
}

func (a *app) read() (*typesxml.Types, error) {
	types, err := format.ReadFile(a.path)
	return types, withCode(exitRead, err)
}

// emit writes types to the requested destination, or to stdout as
// indented XML when there is none.
func (a *app) emit(types *typesxml.Types, out output) error {
	dest := out.path
	if out.inPlace {
		dest = a.path
	}

	char, size := a.cfg.Indent()
	if dest == "" {
		data, err := types.MarshalIndent(char, size)
		if err != nil {
			return withCode(exitWrite, err)
		}
		_, err = a.stdout.Write(data)
		return withCode(exitWrite, err)
	}

	if err := format.WriteFile(dest, types, char, size); err != nil {
		return withCode(exitWrite, err)
	}
	slog.Info("file written", "path", dest, "types", types.Len())
	return nil
}

// print renders types for the terminal, or as XML elements when asXML is set.
func (a *app) print(types []*typesxml.Type, asXML bool) error {
	char, size := a.cfg.Indent()
	for i, t := range types {
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		if !asXML {
			fmt.Fprintln(a.stdout, t.String())
			continue
		}
		data, err := t.MarshalIndent(char, size)
		if err != nil {
			return withCode(exitWrite, err)
		}
		fmt.Fprintf(a.stdout, "%s\n", data)
	}
	return nil
}

func notFound(name string) error {
	return withCode(exitNotFound, fmt.Errorf("%w: %s", typesxml.ErrNotFound, name))
}

func runAdd(_ context.Context, a *app, args []string) error {
	fs := a.flags("add")
	var out output
	out.register(fs, true)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	if fs.NArg() != 1 || fs.Arg(0) == "" {
		return usageErrorf("add: expected <name>")
	}
	if err := typesxml.CheckName(fs.Arg(0)); err != nil {
		return withCode(exitUsage, fmt.Errorf("add: %w", err))
	}

	types, err := a.read()
	if err != nil {
		return err
	}
	name := fs.Arg(0)
	if !types.Add(typesxml.NewType(name)) {
		slog.Warn("type already exists", "name", name)
	}
	return a.emit(types, out)
}

func runFind(_ context.Context, a *app, args []string) error {
	fs := a.flags("find")
	asXML := fs.Bool("xml", false, "print matches as XML")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("find: expected <regex>")
	}
	re, err := regexp.Compile(fs.Arg(0))
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("find: %w", err))
	}

	types, err := a.read()
	if err != nil {
		return err
	}
	matches := types.Match(re)
	slog.Debug("find", "pattern", re.String(), "matches", len(matches))
	return a.print(matches, *asXML)
}

func runShow(_ context.Context, a *app, args []string) error {
	fs := a.flags("show")
	asXML := fs.Bool("xml", false, "print the type as XML")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("show: expected <name>")
	}

	types, err := a.read()
	if err != nil {
		return err
	}
	t, ok := types.Lookup(fs.Arg(0))
	if !ok {
		return notFound(fs.Arg(0))
	}
	return a.print([]*typesxml.Type{t}, *asXML)
}

func runFix(_ context.Context, a *app, args []string) error {
	fs := a.flags("fix")
	var out output
	out.register(fs, false)
	showDiff := fs.Bool("diff", false, "print the changes as a line diff")
	dryRun := fs.Bool("dry-run", false, "do not write anything")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageErrorf("fix: unexpected arguments %v", fs.Args())
	}

	original, err := os.ReadFile(a.path)
	if err != nil {
		return withCode(exitRead, fmt.Errorf("reading %s: %w", a.path, err))
	}
	types, err := format.DecodeLenient(format.FromPath(a.path), original)
	if err != nil {
		return withCode(exitRead, fmt.Errorf("parsing %s: %w", a.path, err))
	}

	dest := out.path
	if dest == "" {
		dest = a.path
	}
	char, size := a.cfg.Indent()
	fixed, err := format.Encode(format.FromPath(dest), types, char, size)
	if err != nil {
		return withCode(exitWrite, err)
	}

	if *showDiff {
		if d := diff.Unified(string(original), string(fixed), diffContext); d != "" {
			fmt.Fprint(a.stdout, d)
		} else {
			slog.Info("nothing to fix", "path", a.path)
		}
	}
	if *dryRun {
		return nil
	}

	if err := os.WriteFile(dest, fixed, 0o644); err != nil {
		return withCode(exitWrite, fmt.Errorf("writing %s: %w", dest, err))
	}
	slog.Info("file fixed", "path", dest, "types", types.Len())
	return nil
}

func runMerge(ctx context.Context, a *app, args []string) error {
	fs := a.flags("merge")
	var out output
	out.register(fs, false)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usageErrorf("merge: expected <ext>...")
	}

	all, err := format.ReadFiles(ctx, append([]string{a.path}, fs.Args()...)...)
	if err != nil {
		return withCode(exitRead, err)
	}
	merged := typesxml.MergeAll(all[0], all[1:]...)
	slog.Info("types merged", "base", a.path, "extensions", fs.NArg(), "types", merged.Len())
	return a.emit(merged, out)
}

func runRemove(_ context.Context, a *app, args []string) error {
	fs := a.flags("remove")
	var out output
	out.register(fs, true)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("remove: expected <name>")
	}

	types, err := a.read()
	if err != nil {
		return err
	}
	if _, ok := types.Remove(fs.Arg(0)); !ok {
		return notFound(fs.Arg(0))
	}
	return a.emit(types, out)
}

func runSet(_ context.Context, a *app, args []string) error {
	fs := a.flags("set")
	var out output
	out.register(fs, true)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return usageErrorf("set: expected <name> <field> [values...]")
	}
	name := fs.Arg(0)
	change, err := typesxml.ParseChange(fs.Arg(1), fs.Args()[2:])
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("set: %w", err))
	}

	types, err := a.read()
	if err != nil {
		return err
	}
	if err := types.Apply(name, change); err != nil {
		if errors.Is(err, typesxml.ErrNotFound) {
			return withCode(exitNotFound, err)
		}
		return withCode(exitUsage, err)
	}
	slog.Debug("field set", "name", name, "field", change.Field())
	return a.emit(types, out)
}

// openDB connects to the snapshot store and brings its schema up to date.
func (a *app) openDB(ctx context.Context) (*db.DB, error) {
	dsn := a.cfg.Database.DSN()
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, dsn); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return database, nil
}

func runPush(ctx context.Context, a *app, args []string) error {
	fs := a.flags("push")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 || fs.Arg(0) == "" {
		return usageErrorf("push: expected <label>")
	}

	types, err := a.read()
	if err != nil {
		return err
	}
	database, err := a.openDB(ctx)
	if err != nil {
		return withCode(exitWrite, err)
	}
	defer database.Close()

	snap, err := database.Snapshots().Save(ctx, fs.Arg(0), types)
	if err != nil {
		return withCode(exitWrite, err)
	}
	fmt.Fprintf(a.stdout, "%s #%d %s (%d types)\n", snap.Label, snap.ID, snap.Digest[:12], snap.TypeCount)
	return nil
}

func runPull(ctx context.Context, a *app, args []string) error {
	fs := a.flags("pull")
	var out output
	out.register(fs, true)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("pull: expected <label>")
	}

	database, err := a.openDB(ctx)
	if err != nil {
		return withCode(exitRead, err)
	}
	defer database.Close()

	types, snap, err := database.Snapshots().Latest(ctx, fs.Arg(0))
	if errors.Is(err, db.ErrSnapshotNotFound) {
		return withCode(exitNotFound, err)
	}
	if err != nil {
		return withCode(exitRead, err)
	}
	slog.Info("snapshot loaded", "label", snap.Label, "id", snap.ID, "created_at", snap.CreatedAt)
	return a.emit(types, out)
}

func runHistory(ctx context.Context, a *app, args []string) error {
	fs := a.flags("history")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("history: expected <label>")
	}

	database, err := a.openDB(ctx)
	if err != nil {
		return withCode(exitRead, err)
	}
	defer database.Close()

	list, err := database.Snapshots().List(ctx, fs.Arg(0))
	if err != nil {
		return withCode(exitRead, err)
	}
	if len(list) == 0 {
		return withCode(exitNotFound, fmt.Errorf("%w: %s", db.ErrSnapshotNotFound, fs.Arg(0)))
	}
	for _, s := range list {
		fmt.Fprintf(a.stdout, "#%d\t%s\t%s\t%d types\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.Digest[:12], s.TypeCount)
	}
	return nil
}
