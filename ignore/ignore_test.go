package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func collect(t *testing.T, ig *Ignore, root string, exts []string) []string {
	t.Helper()
	var got []string
	err := ig.WalkFiles(root, exts, func(path string) error {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		got = append(got, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestWalkFiles(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":        "dist/\n*.local.json\n",
		".git/config.json":  "{}",
		"a.jsonc":           "{}",
		"b.JSON":            "{}",
		"c.txt":             "",
		"dist/x.json":       "{}",
		"sub/y.local.json":  "{}",
		"sub/z.json5":       "{}",
		"sub/deep/w.jsonc":  "{}",
		"sub/deep/skip.yml": "",
	})

	ig, err := NewIgnore(root)
	require.NoError(t, err)

	got := collect(t, ig, root, []string{".json", ".jsonc", ".json5"})
	assert.Equal([]string{"a.jsonc", "b.JSON", "sub/deep/w.jsonc", "sub/z.json5"}, got)
}

func TestWalkFilesExtraPatterns(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.json":          "{}",
		"node_modules/b":  "{}",
		"vendor/c.json":   "{}",
		"keep/vendor.txt": "",
	})

	ig, err := NewIgnore(root, "node_modules/", "vendor/")
	require.NoError(t, err)

	got := collect(t, ig, root, nil)
	assert.Equal([]string{"a.json", "keep/vendor.txt"}, got)
}

func TestIsIgnored(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{".gitignore": "*.tmp\n"})

	ig, err := NewIgnore(root)
	require.NoError(t, err)

	ignored, err := ig.IsIgnored(filepath.Join(root, "x.tmp"), false)
	assert.NoError(err)
	assert.True(ignored)

	ignored, err = ig.IsIgnored(filepath.Join(root, "x.json"), false)
	assert.NoError(err)
	assert.False(ignored)

	ignored, err = ig.IsIgnored(root, true)
	assert.NoError(err)
	assert.False(ignored)

	ignored, err = ig.IsIgnored(filepath.Join(root, ".git"), true)
	assert.NoError(err)
	assert.True(ignored)
}

func TestHasExt(t *testing.T) {
	assert := assert.New(t)

	assert.True(HasExt("a/b.JSONC", []string{".jsonc"}))
	assert.False(HasExt("a/b.json.bak", []string{".json"}))
	assert.True(HasExt("anything", nil))
}
