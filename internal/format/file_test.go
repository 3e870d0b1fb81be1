package format

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/typesxml/internal/testutil"
	"github.com/udisondev/typesxml/internal/typesxml"
)

func TestWriteFileReadFile(t *testing.T) {
	original, err := Decode(XML, []byte(testutil.Fixtures.Base))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"types.xml", "types.json", "types.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(path, original, '\t', 1))

			loaded, err := ReadFile(path)
			require.NoError(t, err)
			assert.True(t, original.Equal(loaded))
		})
	}
}

func TestReadFile_Errors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := testutil.WriteFile(t, "broken.xml", testutil.Fixtures.Broken)
	_, err = ReadFile(broken)
	assert.ErrorIs(t, err, typesxml.ErrValidation)
}

func TestReadFiles_KeepsOrder(t *testing.T) {
	base := testutil.WriteFile(t, "base.xml", testutil.Fixtures.Base)
	ext := testutil.WriteFile(t, "ext.xml", testutil.Fixtures.Extension)

	all, err := ReadFiles(context.Background(), base, ext, base)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Apple", "Ammo_9x19"}, all[0].Names())
	assert.Equal(t, []string{"Banana", "Apple"}, all[1].Names())
	assert.True(t, all[0].Equal(all[2]))
}

func TestReadFiles_Failure(t *testing.T) {
	base := testutil.WriteFile(t, "base.xml", testutil.Fixtures.Base)
	broken := testutil.WriteFile(t, "broken.xml", "<types><type>")

	_, err := ReadFiles(context.Background(), base, broken)
	assert.ErrorIs(t, err, typesxml.ErrMalformedDocument)
}
