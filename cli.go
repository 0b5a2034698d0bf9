package stripjson

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/hayeah/stripjson/internal/config"
	"github.com/hayeah/stripjson/internal/jsoncheck"
	"github.com/hayeah/stripjson/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// Args defines the command-line arguments for the stripjson CLI
type Args struct {
	Paths          []string `arg:"positional" help:"files, directories or glob patterns (default: stdin)"`
	TrailingCommas bool     `arg:"-t,--trailing-commas" help:"also strip trailing commas"`
	NoWhitespace   bool     `arg:"-s,--no-whitespace" help:"delete comments instead of blanking them with spaces"`
	Write          bool     `arg:"-w,--write" help:"rewrite files in place"`
	Output         string   `arg:"-o,--output" help:"output file path (default: stdout)"`
	Clipboard      bool     `arg:"--clipboard" help:"copy the output to the clipboard instead of printing it"`
	Format         string   `arg:"-f,--format" help:"output layout: keep, pretty or ugly (default: keep)"`
	Indent         string   `arg:"--indent" help:"indent used by --format pretty"`
	Check          bool     `arg:"--check" help:"fail if the output is not valid JSON"`
	Verify         bool     `arg:"--verify" help:"fail if the output disagrees with HuJSON standardization of the input"`
	Stats          bool     `arg:"--stats" help:"print a per-input summary to stderr"`
	Jobs           int      `arg:"-j,--jobs" help:"inputs processed concurrently (default: number of CPUs)"`
	Ext            []string `arg:"--ext,separate" help:"extensions picked up from directories and globs"`
	Exclude        []string `arg:"--exclude,separate" help:"doublestar patterns to skip"`
	Verbose        bool     `arg:"-v,--verbose" help:"debug logging"`
}

// CLI represents the stripjson CLI application
type CLI struct {
	Args    *Args
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Collector

	Stdin  io.Reader `wire:"-"`
	Stdout io.Writer `wire:"-"`
	Stderr io.Writer `wire:"-"`
}

// settings is Args merged over Config.
type settings struct {
	opts    Options
	layout  jsoncheck.Layout
	indent  string
	jobs    int
	exts    []string
	exclude []string
}

// result is the outcome for one input.
type result struct {
	input   Input
	output  []byte
	skipped bool
	err     error
}

func (cli *CLI) settings() (settings, error) {
	cfg := cli.Config
	if cfg == nil {
		cfg = config.Default()
	}
	args := cli.Args

	s := settings{
		opts: Options{
			TrailingCommas: args.TrailingCommas || cfg.TrailingCommas,
			NoWhitespace:   args.NoWhitespace || !cfg.UseWhitespace(),
		},
		indent:  args.Indent,
		jobs:    args.Jobs,
		exclude: append(append([]string(nil), cfg.Exclude...), args.Exclude...),
	}

	format := args.Format
	if format == "" {
		format = cfg.Format
	}
	layout, err := jsoncheck.ParseLayout(format)
	if err != nil {
		return s, err
	}
	s.layout = layout

	if s.indent == "" {
		s.indent = cfg.Indent
	}
	if s.jobs <= 0 {
		s.jobs = cfg.Jobs
	}
	if s.jobs <= 0 {
		s.jobs = runtime.NumCPU()
	}
	exts, err := config.NormalizeExtensions(args.Ext)
	if err != nil {
		return s, fmt.Errorf("invalid --ext: %w", err)
	}
	s.exts = exts
	if len(s.exts) == 0 {
		s.exts = cfg.Extensions
	}

	return s, nil
}

func (cli *CLI) validate() error {
	args := cli.Args
	if args.Write && args.Output != "" {
		return errors.New("--write and --output are mutually exclusive")
	}
	if args.Write && args.Clipboard {
		return errors.New("--write and --clipboard are mutually exclusive")
	}
	if args.Write && len(args.Paths) == 0 {
		return errors.New("--write needs at least one path")
	}
	for _, p := range args.Paths {
		if args.Write && p == StdinPath {
			return errors.New("--write cannot rewrite stdin")
		}
	}
	return nil
}

// Run executes the stripjson CLI application
func (cli *CLI) Run(ctx context.Context) error {
	if cli.Stdin == nil {
		cli.Stdin = os.Stdin
	}
	if cli.Stdout == nil {
		cli.Stdout = os.Stdout
	}
	if cli.Stderr == nil {
		cli.Stderr = os.Stderr
	}
	if cli.Logger == nil {
		cli.Logger = slog.Default()
	}
	if cli.Metrics == nil {
		cli.Metrics = metrics.NewCollector(metrics.LineCounter{}, runtime.NumCPU())
	}
	defer cli.Metrics.Wait()

	if err := cli.validate(); err != nil {
		return err
	}

	s, err := cli.settings()
	if err != nil {
		return err
	}

	if cli.Config != nil && cli.Config.Path != "" {
		cli.Logger.Debug("loaded config", "path", cli.Config.Path)
	}

	resolver := &Resolver{Extensions: s.exts, Exclude: s.exclude, Logger: cli.Logger}
	inputs, err := resolver.Resolve(cli.Args.Paths)
	if err != nil {
		return fmt.Errorf("failed to resolve inputs: %w", err)
	}
	if len(inputs) == 0 {
		cli.Logger.Warn("nothing to do")
		return nil
	}

	results := make([]result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = result{input: in, err: err}
				return nil
			}
			results[i] = cli.process(in, s)
			return nil
		})
	}
	_ = g.Wait() // per-input errors live in results

	var errs []error
	var out bytes.Buffer
	var succeeded int
	for _, r := range results {
		switch {
		case r.err != nil:
			cli.Logger.Error("failed", "path", r.input.Path, "err", r.err)
			errs = append(errs, r.err)
		case r.skipped:
		default:
			succeeded++
			if !cli.Args.Write {
				out.Write(r.output)
			}
		}
	}

	// an existing --output file is left alone when every input failed
	if !cli.Args.Write && (succeeded > 0 || len(errs) == 0) {
		if err := cli.emit(out.Bytes()); err != nil {
			return err
		}
	}

	if cli.Args.Stats {
		if err := metrics.PrintSummary(cli.Stderr, cli.Metrics, cli.termWidth()); err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d inputs failed: %w", len(errs), len(inputs), errors.Join(errs...))
	}
	return nil
}

// process strips one input. It never panics on bad content; failures are
// returned in the result.
func (cli *CLI) process(in Input, s settings) result {
	res := result{input: in}

	content, err := cli.read(in)
	if err != nil {
		res.err = err
		return res
	}

	if !in.Explicit && IsBinary(content) {
		cli.Logger.Debug("skipping binary file", "path", in.Path)
		res.skipped = true
		return res
	}

	out, stats, err := StripWithStats(content, &s.opts)
	if err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			inputErr.Path = in.Path
		}
		res.err = err
		return res
	}

	if cli.Args.Verify {
		if err := jsoncheck.Verify(content, out); err != nil {
			res.err = fmt.Errorf("%s: %w", in.Path, err)
			return res
		}
	}

	out = jsoncheck.Format(out, s.layout, s.indent)

	if cli.Args.Check {
		if err := jsoncheck.Check(out); err != nil {
			res.err = fmt.Errorf("%s: %w", in.Path, err)
			return res
		}
	}

	typ := "file"
	if in.IsStdin() {
		typ = "stdin"
	}
	cli.Metrics.Add(typ, in.Path, content, out, metrics.Removed{
		LineComments:   stats.LineComments,
		BlockComments:  stats.BlockComments,
		TrailingCommas: stats.TrailingCommas,
	})

	cli.Logger.Debug("stripped", "path", in.Path,
		"line_comments", stats.LineComments,
		"block_comments", stats.BlockComments,
		"trailing_commas", stats.TrailingCommas)

	if cli.Args.Write {
		if err := cli.rewrite(in.Path, content, out); err != nil {
			res.err = err
			return res
		}
	}

	res.output = out
	return res
}

func (cli *CLI) read(in Input) ([]byte, error) {
	if in.IsStdin() {
		data, err := io.ReadAll(cli.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// rewrite replaces the file only when the content changed, keeping its mode.
func (cli *CLI) rewrite(path string, before, after []byte) error {
	if bytes.Equal(before, after) {
		cli.Logger.Debug("unchanged", "path", path)
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, after, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	cli.Logger.Info("rewrote", "path", path)
	return nil
}

func (cli *CLI) emit(data []byte) error {
	switch {
	case cli.Args.Clipboard:
		if err := clipboard.WriteAll(string(data)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.Logger.Info("copied to clipboard", "bytes", len(data))
		return nil

	case cli.Args.Output != "":
		if err := os.WriteFile(cli.Args.Output, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		cli.Logger.Info("output written", "path", cli.Args.Output)
		return nil

	default:
		if _, err := cli.Stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
}

func (cli *CLI) termWidth() int {
	if f, ok := cli.Stderr.(*os.File); ok {
		return metrics.TermWidth(f)
	}
	return 80
}
