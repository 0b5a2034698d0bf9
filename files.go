package stripjson

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hayeah/stripjson/ignore"
)

// StdinPath names standard input in an argument list.
const StdinPath = "-"

// Input is one document to strip.
type Input struct {
	Path string
	// Explicit is true when the path was named directly rather than found
	// by walking a directory or expanding a glob.
	Explicit bool
}

// IsStdin reports whether the input is standard input.
func (in Input) IsStdin() bool { return in.Path == StdinPath }

// Resolver expands command-line paths into a list of inputs.
type Resolver struct {
	Extensions []string // used when walking directories and expanding globs
	Exclude    []string // doublestar patterns matched against slash paths
	Logger     *slog.Logger
}

// Resolve turns files, directories and glob patterns into inputs, in
// argument order with duplicates dropped. No arguments means stdin.
func (r *Resolver) Resolve(args []string) ([]Input, error) {
	if len(args) == 0 {
		return []Input{{Path: StdinPath, Explicit: true}}, nil
	}

	var inputs []Input
	seen := make(map[string]bool)
	add := func(path string, explicit bool) {
		if path != StdinPath {
			path = filepath.Clean(path)
		}
		if seen[path] {
			return
		}
		seen[path] = true
		inputs = append(inputs, Input{Path: path, Explicit: explicit})
	}

	for _, arg := range args {
		switch {
		case arg == StdinPath:
			add(arg, true)

		case isGlob(arg):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %q", arg)
			}
			for _, m := range matches {
				if r.excluded(m) || !ignore.HasExt(m, r.Extensions) {
					continue
				}
				add(m, false)
			}

		default:
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
			}
			if !info.IsDir() {
				add(arg, true)
				continue
			}

			files, err := r.walk(arg)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(f, false)
			}
		}
	}

	return inputs, nil
}

func (r *Resolver) walk(dir string) ([]string, error) {
	ig, err := ignore.NewIgnore(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	err = ig.WalkFiles(dir, r.Extensions, func(path string) error {
		if r.excluded(path) {
			r.logger().Debug("excluded", "path", path)
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	if len(files) == 0 {
		r.logger().Warn("no matching files in directory", "dir", dir, "extensions", r.Extensions)
	}
	return files, nil
}

func (r *Resolver) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range r.Exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// IsBinary guesses whether content is binary by sampling the first 100
// runes. Invalid UTF-8 counts against the content.
func IsBinary(content []byte) bool {
	const sampleSize = 100
	var nonPrintable, totalRunes int

	for i := 0; i < len(content) && totalRunes < sampleSize; {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError && size == 1 {
			nonPrintable++
		} else if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			nonPrintable++
		}
		i += size
		totalRunes++
	}

	if totalRunes == 0 {
		return false
	}
	return float64(nonPrintable)/float64(totalRunes) > 0.1
}
