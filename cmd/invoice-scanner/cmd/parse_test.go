package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedFile(t *testing.T) {
	assert.True(t, isSupportedFile("scan.txt"))
	assert.True(t, isSupportedFile("scan.TXT"))
	assert.True(t, isSupportedFile("invoice.pdf"))
	assert.True(t, isSupportedFile("notes.text"))
	assert.False(t, isSupportedFile("image.png"))
	assert.False(t, isSupportedFile("archive.zip"))
}

func TestCollectFiles_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.png"), []byte("x"), 0o644))

	files, err := collectFiles([]string{dir})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestCollectFiles_Missing(t *testing.T) {
	_, err := collectFiles([]string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestEscapeCSV(t *testing.T) {
	assert.Equal(t, "plain", escapeCSV("plain"))
	assert.Equal(t, `"a,b"`, escapeCSV("a,b"))
	assert.Equal(t, `"say ""hi"""`, escapeCSV(`say "hi"`))
}
