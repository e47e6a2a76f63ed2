package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanDirAndFirst(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "b"), 0755))
	for _, name := range []string{"b/Mono.TTF", "a.otf", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0644))
	}

	paths, err := ScanDir(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.otf"), filepath.Join(root, "b", "Mono.TTF")}, paths)

	got, ok := First([]string{filepath.Join(root, "missing"), root})
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a.otf"), got)
}

func TestFirstNone(t *testing.T) {
	_, ok := First([]string{filepath.Join(t.TempDir(), "nope")})
	assert.False(t, ok)
}
