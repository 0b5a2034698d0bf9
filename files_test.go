package stripjson

import (
	"path/filepath"
	"testing"

	"github.com/hayeah/stripjson/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relPaths(t *testing.T, root string, inputs []Input) []string {
	t.Helper()
	var paths []string
	for _, in := range inputs {
		rel, err := filepath.Rel(root, in.Path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths
}

func TestResolveStdin(t *testing.T) {
	r := &Resolver{}

	inputs, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, []Input{{Path: StdinPath, Explicit: true}}, inputs)
	assert.True(t, inputs[0].IsStdin())
}

func TestResolveDirectory(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"), "{}")
	writeFile(t, filepath.Join(dir, "a.jsonc"), "{}")
	writeFile(t, filepath.Join(dir, "notes.md"), "")
	writeFile(t, filepath.Join(dir, "gen", "c.json5"), "{}")

	r := &Resolver{Extensions: config.DefaultExtensions}
	inputs, err := r.Resolve([]string{dir})
	require.NoError(t, err)

	assert.Equal([]string{"a.jsonc", "b.json", "gen/c.json5"}, relPaths(t, dir, inputs))
	for _, in := range inputs {
		assert.False(in.Explicit)
	}

	r.Exclude = []string{filepath.ToSlash(filepath.Join(dir, "gen")) + "/**"}
	inputs, err = r.Resolve([]string{dir})
	require.NoError(t, err)
	assert.Equal([]string{"a.jsonc", "b.json"}, relPaths(t, dir, inputs))
}

func TestResolveExplicitFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.txt")
	writeFile(t, path, "{}")

	r := &Resolver{Extensions: config.DefaultExtensions}
	inputs, err := r.Resolve([]string{path})
	require.NoError(t, err)

	// extension filters do not apply to named files
	assert.Equal([]Input{{Path: path, Explicit: true}}, inputs)
}

func TestResolveDedupe(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	writeFile(t, a, "{}")
	writeFile(t, filepath.Join(dir, "b.json"), "{}")

	r := &Resolver{Extensions: config.DefaultExtensions}
	inputs, err := r.Resolve([]string{a, dir, filepath.Join(dir, ".", "a.json"), StdinPath, StdinPath})
	require.NoError(t, err)

	assert.Equal([]Input{
		{Path: a, Explicit: true},
		{Path: filepath.Join(dir, "b.json")},
		{Path: StdinPath, Explicit: true},
	}, inputs)
}

func TestResolveGlob(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one", "a.jsonc"), "{}")
	writeFile(t, filepath.Join(dir, "two", "b.jsonc"), "{}")
	writeFile(t, filepath.Join(dir, "two", "c.json"), "{}")

	r := &Resolver{Extensions: config.DefaultExtensions}
	inputs, err := r.Resolve([]string{filepath.Join(dir, "**", "*.jsonc")})
	require.NoError(t, err)
	assert.Equal([]string{"one/a.jsonc", "two/b.jsonc"}, relPaths(t, dir, inputs))

	_, err = r.Resolve([]string{filepath.Join(dir, "*.yaml")})
	assert.ErrorContains(err, "no files match")
}

func TestResolveMissing(t *testing.T) {
	r := &Resolver{}
	_, err := r.Resolve([]string{filepath.Join(t.TempDir(), "missing.json")})
	assert.ErrorContains(t, err, "failed to stat")
}

func TestIsBinary(t *testing.T) {
	assert := assert.New(t)

	assert.False(IsBinary(nil))
	assert.False(IsBinary([]byte("{\"a\": 1}\n")))
	assert.False(IsBinary([]byte("{\"emoji\": \"🌈\"}")))
	assert.True(IsBinary([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00}))
}
