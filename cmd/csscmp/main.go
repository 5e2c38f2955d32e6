// Command css_compare implements the CLI front end of spec §6: compare
// two CSS stylesheets for structural equivalence and print "true" or
// "false".
//
// Grounded on the teacher's cmd/fbc/main.go: the same urfave/cli/v3
// Before/After/exitErrHandler wiring, signal-driven context, and
// "return plain errors, print them in main's deferred func" convention
// — the teacher's own comment on why it avoids cli.Exit() applies here
// unchanged. Scaled down from the teacher's multi-command app (which
// juggled a persisted debug-report env) to this tool's single action
// and its config/log-only ambient state.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"csscompare/cliconfig"
	"csscompare/engine"
	"csscompare/imports"
	"csscompare/logging"
	"csscompare/syntax"
	"csscompare/value"
)

// version is overridden at build time via -ldflags.
var version = "dev"

type appEnv struct {
	cfg cliconfig.Config
	log *zap.Logger
}

type envKey struct{}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &appEnv{})
}

func envFromContext(ctx context.Context) *appEnv {
	return ctx.Value(envKey{}).(*appEnv)
}

// prepare loads configuration and builds the logger before the action
// runs (spec §6: flags override any value also present in --config).
func prepare(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	env := envFromContext(ctx)

	cfg, err := cliconfig.Load(cmd.String("config"))
	if err != nil {
		return ctx, fmt.Errorf("unable to load configuration: %w", err)
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = logging.Level(cmd.String("log-level"))
	}
	if cmd.IsSet("import-depth") {
		cfg.ImportDepth = int(cmd.Int("import-depth"))
	}
	env.cfg = cfg
	env.log = logging.Prepare(cfg.LogLevel)
	value.SetColorTolerance(cfg.ColorTolerance)

	env.log.Debug("css_compare started", zap.Strings("args", os.Args), zap.String("version", version), zap.String("runtime", runtime.Version()))
	return ctx, nil
}

func cleanup(ctx context.Context, _ *cli.Command) error {
	env := envFromContext(ctx)
	if env.log != nil {
		_ = env.log.Sync()
	}
	return nil
}

// errWasLogged tracks whether exitErrHandler already reported err, so
// main's deferred fallback does not print it a second time.
var errWasLogged bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	if env.log != nil {
		env.log.Error("css_compare ended with error", zap.Error(err))
		errWasLogged = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "css_compare",
		Usage:           "compares two CSS stylesheets for structural equivalence",
		Version:         version + " (" + runtime.Version() + ")",
		ArgsUsage:       "CSS_1 CSS_2 [OUTPUT]",
		HideHelpCommand: true,
		Before:          prepare,
		After:           cleanup,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: string(logging.LevelNone), Usage: "console verbosity: `LEVEL` is one of none, normal, debug"},
			&cli.IntFlag{Name: "import-depth", Usage: "override the @import recursion bound (default 32)"},
			&cli.StringFlag{Name: "config", Usage: "load configuration from `FILE` (YAML)"},
		},
		Action: run,
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasLogged {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

// run implements spec §6's CLI contract body: two required positional
// operands, an optional third naming the output destination, "true"/
// "false" printed followed by a newline, exit 0 regardless of the
// comparison's outcome (only argument/I-O/parse errors are non-zero).
func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("usage: css_compare [options] CSS_1 CSS_2 [OUTPUT]")
	}

	env := envFromContext(ctx)
	pathA := cmd.Args().Get(0)
	pathB := cmd.Args().Get(1)
	outPath := cmd.Args().Get(2)

	modelA, err := loadModel(env.log, pathA, env.cfg.ImportDepth)
	if err != nil {
		return fmt.Errorf("unable to process %q: %w", pathA, err)
	}
	modelB, err := loadModel(env.log, pathB, env.cfg.ImportDepth)
	if err != nil {
		return fmt.Errorf("unable to process %q: %w", pathB, err)
	}

	if env.cfg.LogLevel == logging.LevelDebug {
		env.log.Debug("model A\n" + modelA.Dump())
		env.log.Debug("model B\n" + modelB.Dump())
	}

	equal := modelA.Equal(modelB)
	env.log.Info("comparison complete", zap.Bool("equal", equal))

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("unable to create %q: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}
	_, err = fmt.Fprintf(out, "%t\n", equal)
	return err
}

// loadModel reads, parses and evaluates a single stylesheet operand.
func loadModel(log *zap.Logger, path string, importDepth int) (*engine.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sheet, err := syntax.NewParser(log).Parse(data, path)
	if err != nil {
		return nil, err
	}
	eval := engine.NewEvaluator(log, imports.FileLoader{}, importDepth)
	return eval.Evaluate(sheet, filepath.Dir(path))
}
