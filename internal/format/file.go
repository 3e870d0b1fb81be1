package format

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/typesxml/internal/typesxml"
)

// ReadFile reads and strictly decodes the file at path, choosing the
// format by extension.
func ReadFile(path string) (*typesxml.Types, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	types, err := Decode(FromPath(path), data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return types, nil
}

// ReadFiles reads every path concurrently. The result keeps the order of
// paths. Files not yet started are skipped after the first failure.
func ReadFiles(ctx context.Context, paths ...string) ([]*typesxml.Types, error) {
	out := make([]*typesxml.Types, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			types, err := ReadFile(path)
			if err != nil {
				return err
			}
			out[i] = types
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteFile encodes types in the format of path and writes the file.
func WriteFile(path string, types *typesxml.Types, char rune, size int) error {
	data, err := Encode(FromPath(path), types, char, size)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
