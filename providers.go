package stripjson

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/alexflint/go-arg"
	"github.com/golang-cz/devslog"
	"github.com/google/wire"
	"github.com/hayeah/stripjson/internal/config"
	"github.com/hayeah/stripjson/internal/metrics"
	"golang.org/x/term"
)

// ProvideConfig loads .stripjson.toml from the working directory, or the
// file named by $STRIPJSON_CONFIG.
func ProvideConfig() (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return config.Load(wd)
}

// ProvideArgs parses cli args
func ProvideArgs() *Args {
	args := &Args{}
	arg.MustParse(args)
	return args
}

// ProvideLogger logs to stderr, with the dev handler when it is a terminal.
func ProvideLogger(args *Args) *slog.Logger {
	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	return NewLogger(os.Stderr, level)
}

// NewLogger builds a slog.Logger writing to f.
func NewLogger(f *os.File, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(f.Fd())) {
		return slog.New(devslog.NewHandler(f, &devslog.Options{
			HandlerOptions: opts,
		}))
	}
	return slog.New(slog.NewTextHandler(f, opts))
}

// ProvideCollector starts one metrics worker per CPU.
func ProvideCollector() *metrics.Collector {
	return metrics.NewCollector(metrics.LineCounter{}, runtime.NumCPU())
}

// collect all the necessary providers
var Wires = wire.NewSet(
	ProvideConfig,
	ProvideArgs,
	ProvideLogger,
	ProvideCollector,

	wire.Struct(new(CLI), "*"),
)
