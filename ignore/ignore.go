// Package ignore walks directory trees while honouring .gitignore files.
package ignore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Ignore matches paths under a root against the .gitignore files found there
type Ignore struct {
	matcher  gitignore.Matcher
	rootPath string
}

// NewIgnore reads every .gitignore below rootPath, plus any extra patterns
// (gitignore syntax, relative to rootPath).
func NewIgnore(rootPath string, extra ...string) (*Ignore, error) {
	patterns, err := gitignore.ReadPatterns(osfs.New(rootPath), []string{})
	if err != nil {
		return nil, fmt.Errorf("failed to read gitignore patterns: %w", err)
	}

	for _, p := range extra {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}

	return &Ignore{
		matcher:  gitignore.NewMatcher(patterns),
		rootPath: rootPath,
	}, nil
}

// IsIgnored checks if a path should be ignored according to gitignore rules
func (ig *Ignore) IsIgnored(path string, isDir bool) (bool, error) {
	if isDir && filepath.Base(path) == ".git" {
		return true, nil
	}

	relPath, err := filepath.Rel(ig.rootPath, path)
	if err != nil {
		return false, err
	}
	if relPath == "." {
		return false, nil
	}

	parts := strings.Split(relPath, string(os.PathSeparator))
	return ig.matcher.Match(parts, isDir), nil
}

// WalkFiles walks root and calls fn for every regular file that is not
// ignored and whose extension is in exts (case-insensitive). An empty exts
// accepts every file. Ignored directories are not descended into.
func (ig *Ignore) WalkFiles(root string, exts []string, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		ignored, err := ig.IsIgnored(path, d.IsDir())
		if err != nil {
			return err
		}
		if ignored {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !HasExt(path, exts) {
			return nil
		}

		return fn(path)
	})
}

// HasExt reports whether path ends in one of exts, ignoring case.
func HasExt(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
