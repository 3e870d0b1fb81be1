package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/typesxml/internal/config"
	"github.com/udisondev/typesxml/internal/format"
	"github.com/udisondev/typesxml/internal/testutil"
	"github.com/udisondev/typesxml/internal/typesxml"
)

func runMerge(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv(config.EditorPathEnv, filepath.Join(t.TempDir(), "none.yaml"))

	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestMerge_Stdout(t *testing.T) {
	base := testutil.WriteFile(t, "base.xml", testutil.Fixtures.Base)
	ext := testutil.WriteFile(t, "ext.xml", testutil.Fixtures.Extension)

	code, stdout, stderr := runMerge(t, base, ext)
	require.Equal(t, 0, code, stderr)

	merged, err := typesxml.Parse([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ammo_9x19", "Apple", "Banana"}, merged.Names())

	apple, _ := merged.Get("Apple")
	require.NotNil(t, apple.Nominal())
	assert.Equal(t, uint8(5), *apple.Nominal())
}

func TestMerge_OutputFile(t *testing.T) {
	base := testutil.WriteFile(t, "base.xml", testutil.Fixtures.Base)
	ext := testutil.WriteFile(t, "ext.xml", testutil.Fixtures.Extension)
	out := filepath.Join(t.TempDir(), "merged.yaml")

	code, stdout, _ := runMerge(t, "-o", out, base, ext)
	require.Equal(t, 0, code)
	assert.Empty(t, stdout)

	merged, err := format.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 3, merged.Len())

	// Merging the same extension again changes nothing.
	code, _, _ = runMerge(t, "-o", out, out, ext)
	require.Equal(t, 0, code)
	again, err := format.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, merged.Equal(again))
}

func TestMerge_Errors(t *testing.T) {
	base := testutil.WriteFile(t, "base.xml", testutil.Fixtures.Base)

	code, _, stderr := runMerge(t, base)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: mergetypesxml")

	code, _, _ = runMerge(t, base, filepath.Join(t.TempDir(), "missing.xml"))
	assert.Equal(t, 1, code)

	code, _, _ = runMerge(t, "-o", filepath.Join(t.TempDir(), "a", "b.xml"), base, base)
	assert.Equal(t, 3, code)
}

func TestMerge_ConfigFlag(t *testing.T) {
	base := testutil.WriteFile(t, "base.xml", testutil.Fixtures.Base)
	ext := testutil.WriteFile(t, "ext.xml", testutil.Fixtures.Extension)
	cfg := testutil.WriteFile(t, "typesxml.yaml", "indent_char: tab\nindent_size: 1\n")

	code, stdout, stderr := runMerge(t, "-config", cfg, base, ext)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "\n\t<type name=\"Ammo_9x19\">\n\t\t<nominal>30</nominal>")

	t.Setenv(config.EditorPathEnv, cfg)
	var out bytes.Buffer
	code = run(context.Background(), []string{base, ext}, &out, &bytes.Buffer{})
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "\n\t<type name=\"Apple\">")

	bad := testutil.WriteFile(t, "bad.yaml", "indent_size: -1\n")
	code, _, _ = runMerge(t, "-config", bad, base, ext)
	assert.Equal(t, 1, code)
}
