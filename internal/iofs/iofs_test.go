package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	// repeated calls keep working
	for range 2 {
		require.NoError(t, EnsureDirs(home))
	}

	tests := []struct {
		name string
		dir  string
	}{
		{"config", filepath.Join(home, ".config", "gntree")},
		{"cache", filepath.Join(home, ".cache", "gntree")},
		{"vernacular", filepath.Join(home, ".cache", "gntree", "vernacular")},
		{"sfga", filepath.Join(home, ".cache", "gntree", "sfga")},
		{"logs", filepath.Join(home, ".local", "share", "gntree", "logs")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := os.Stat(tt.dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		})
	}
}

// TestTouchDir_Existing verifies an existing directory keeps its mode.
func TestTouchDir_Existing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "existing")
	require.NoError(t, os.Mkdir(dir, 0700))

	require.NoError(t, touchDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestTouchDir_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := touchDir(filepath.Join(path, "sub"))
	assert.Error(t, err)
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.Error(t, EnsureConfigFile(home), "config dir does not exist")

	require.NoError(t, EnsureDirs(home))
	require.NoError(t, EnsureConfigFile(home))

	path := config.ConfigFilePath(home)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, templates.ConfigYAML, string(content))
	assert.Contains(t, string(content), "vernacular:")

	// user edits survive
	custom := "log:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(home))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func TestCreateOutput(t *testing.T) {
	f, closeFn, err := CreateOutput("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "tree.txt")
	f, closeFn, err = CreateOutput(path)
	require.NoError(t, err)
	_, err = f.WriteString("A\n")
	require.NoError(t, err)
	require.NoError(t, closeFn())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A\n", string(content))

	_, _, err = CreateOutput(filepath.Join(t.TempDir(), "no", "dir", "x"))
	assert.Error(t, err)
}
