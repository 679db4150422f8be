package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/gncassert/ledger"
	"github.com/robinvdvleuten/gncassert/loader"
	"github.com/robinvdvleuten/gncassert/logging"
	"github.com/robinvdvleuten/gncassert/output"
	"github.com/robinvdvleuten/gncassert/report"
	"github.com/robinvdvleuten/gncassert/telemetry"
)

type CheckCmd struct {
	File    FileOrStdin `help:"GnuCash book, plain or gzip-compressed XML (use '-' for stdin)." arg:"" name:"gnucash-file"`
	Pattern string      `help:"Regular expression selecting assertion transactions by description; its first group holds the asserted amount." arg:"" name:"assertion-regex"`
	Places  int32       `help:"Decimal places balances are rounded to before comparing." short:"d" default:"2"`
	NoFail  bool        `help:"Exit with status 0 even when assertions fail."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals, stdin io.Reader) error {
	runCtx, err := newRunContext(ctx, globals)
	if err != nil {
		return err
	}

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		checkTimer := collector.Start(fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
		runCtx = telemetry.WithRootTimer(runCtx, checkTimer)

		defer func() {
			checkTimer.End()
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	cfg := ledger.NewConfig(cmd.Pattern)
	cfg.Places = cmd.Places

	checker, err := ledger.NewChecker(cfg)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	if err := cmd.File.EnsureContents(stdin); err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	ldr := loader.New()
	book, err := cmd.File.LoadBook(runCtx, ldr)
	if err != nil {
		renderLoadError(runCtx, ctx.Stderr, &cmd.File, ldr, err)
		return NewCommandError(1)
	}

	rep := report.New(ctx.Stdout, cfg.Places)
	summary, err := checker.Run(runCtx, book, rep)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	if err := rep.Summary(summary); err != nil {
		return err
	}

	if summary.Errors > 0 && !cmd.NoFail {
		return NewCommandError(1)
	}

	return nil
}

// newRunContext attaches the logger configured by the global flags.
func newRunContext(ctx *kong.Context, globals *Globals) (context.Context, error) {
	logger, err := logging.New(ctx.Stderr, globals.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	return logging.WithContext(context.Background(), logger), nil
}

// renderLoadError prints a loading or parsing failure, with the offending
// lines of the document when the error carries a position.
func renderLoadError(ctx context.Context, w io.Writer, file *FileOrStdin, ldr *loader.Loader, err error) {
	var source []byte
	if hasPosition(err) {
		// Without source the error is printed bare.
		source, _ = file.GetSourceContent(ctx, ldr)
	}

	renderer := NewErrorRenderer(source)
	_, _ = fmt.Fprintln(w, renderer.Render(err))

	_, _ = fmt.Fprintln(w)
	printError(w, "failed to load book")
}
