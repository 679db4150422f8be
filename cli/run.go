package cli

import (
	"errors"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// Option configures the streams Execute runs against.
type Option func(*streams)

type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// WithStdin replaces os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(s *streams) {
		s.stdin = r
	}
}

// WithOutput replaces os.Stdout and os.Stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *streams) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// exitCode is raised by kong's exit hook and recovered by Execute, so help
// and version output end a run without terminating the process.
type exitCode int

// Execute parses args and runs the selected command. It never calls
// os.Exit; the caller exits with the result's ExitCode.
func Execute(args []string, opts ...Option) (result CommandResult) {
	s := &streams{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(s)
	}

	var cli Commands
	parser, err := kong.New(&cli,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("gncassert"),
		kong.Description("Check the balance assertions embedded in the transaction descriptions of a GnuCash book."),
		kong.UsageOnError(),
		kong.Writers(s.stdout, s.stderr),
		kong.Exit(func(code int) { panic(exitCode(code)) }),
		kong.Bind(&cli.Globals),
		kong.BindTo(s.stdin, (*io.Reader)(nil)),
	)
	if err != nil {
		return Failure(err)
	}

	defer func() {
		if r := recover(); r != nil {
			code, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			result = CommandResult{ExitCode: int(code)}
		}
	}()

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	if err := ctx.Run(); err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return CommandResult{ExitCode: cmdErr.ExitCode(), Err: err}
		}
		printError(s.stderr, err.Error())
		return Failure(err)
	}

	return Success()
}
