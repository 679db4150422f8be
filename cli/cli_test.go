package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/robinvdvleuten/gncassert/gnucash"
)

const balancePattern = `Balance check (\d+\.\d+)`

func checkingBook(assertionValue string) *gnucash.Book {
	return gnucash.NewBook(
		gnucash.WithAccounts(gnucash.NewAccount("acc1", "Checking")),
		gnucash.WithTransactions(
			gnucash.NewTransaction("2020-01-01", "Deposit", gnucash.NewSplit("acc1", "10000/100")),
			gnucash.NewTransaction("2020-01-15", "Balance check 150.00", gnucash.NewSplit("acc1", assertionValue)),
			gnucash.NewTransaction("2020-02-01", "Withdrawal", gnucash.NewSplit("acc1", "-2000/100")),
		),
	)
}

func encode(t *testing.T, book *gnucash.Book) []byte {
	t.Helper()
	var buf bytes.Buffer
	assert.NoError(t, gnucash.Encode(&buf, book))
	return buf.Bytes()
}

func writeBook(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

type run struct {
	result CommandResult
	stdout string
	stderr string
}

func execute(args []string, opts ...Option) run {
	var stdout, stderr bytes.Buffer
	opts = append(opts, WithOutput(&stdout, &stderr))
	result := Execute(args, opts...)
	return run{result: result, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCheckBalanceHolds(t *testing.T) {
	path := writeBook(t, "books.xml", encode(t, checkingBook("5000/100")))

	r := execute([]string{path, balancePattern, "-d", "2"})

	assert.Equal(t, 0, r.result.ExitCode, r.stderr)
	assert.Equal(t, "found 1 assertions in account 'Checking':\n"+
		"    2020-01-15: checking value 150.00 against balance of 150.00...OK\n"+
		"found 0 errors!\n", r.stdout)
}

func TestCheckBalanceMismatch(t *testing.T) {
	path := writeBook(t, "books.xml", encode(t, checkingBook("4000/100")))

	t.Run("FailsByDefault", func(t *testing.T) {
		r := execute([]string{path, balancePattern})

		assert.Equal(t, 1, r.result.ExitCode)
		assert.Equal(t, "found 1 assertions in account 'Checking':\n"+
			"    2020-01-15: checking value 150.00 against balance of 140.00...ERROR\n"+
			"found 1 errors!\n", r.stdout)

		var cmdErr *CommandError
		assert.True(t, errors.As(r.result.Err, &cmdErr))
	})

	t.Run("NoFail", func(t *testing.T) {
		r := execute([]string{path, balancePattern, "--no-fail"})

		assert.Equal(t, 0, r.result.ExitCode)
		assert.Contains(t, r.stdout, "found 1 errors!\n")
	})
}

func TestCheckCompressedBook(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(encode(t, checkingBook("5000/100")))
	assert.NoError(t, err)
	assert.NoError(t, zw.Close())

	path := writeBook(t, "books.gnucash", buf.Bytes())
	r := execute([]string{path, balancePattern})

	assert.Equal(t, 0, r.result.ExitCode, r.stderr)
	assert.Contains(t, r.stdout, "...OK\n")
}

func TestCheckStdin(t *testing.T) {
	data := encode(t, checkingBook("5000/100"))

	r := execute([]string{"-", balancePattern}, WithStdin(bytes.NewReader(data)))

	assert.Equal(t, 0, r.result.ExitCode, r.stderr)
	assert.Contains(t, r.stdout, "found 0 errors!\n")
}

func TestCheckPlaces(t *testing.T) {
	book := gnucash.NewBook(
		gnucash.WithAccounts(gnucash.NewAccount("acc1", "Checking")),
		gnucash.WithTransactions(
			gnucash.NewTransaction("2020-01-01", "BAL 150", gnucash.NewSplit("acc1", "14960/100")),
		),
	)
	path := writeBook(t, "books.xml", encode(t, book))

	r := execute([]string{path, `BAL (\d+)`, "-d", "0"})
	assert.Equal(t, 0, r.result.ExitCode)
	assert.Contains(t, r.stdout, "checking value 150 against balance of 150...OK")

	r = execute([]string{path, `BAL (\d+)`, "--places=-1"})
	assert.Equal(t, 1, r.result.ExitCode)
	assert.Equal(t, "", r.stdout)
	assert.Contains(t, r.stderr, "must not be negative")
}

func TestCheckFatalErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		data    []byte
		pattern string
		stderr  string
	}{
		{
			name:    "MissingFile",
			pattern: balancePattern,
			stderr:  "failed to read",
		},
		{
			name:    "UnsupportedVersion",
			data:    encode(t, gnucash.NewBook(gnucash.WithVersion("1.0.0"))),
			pattern: balancePattern,
			stderr:  `unsupported book version "1.0.0"`,
		},
		{
			name:    "CorruptCompression",
			data:    []byte{0x1f, 0x8b, 0x00},
			pattern: balancePattern,
			stderr:  "failed to decompress",
		},
		{
			name:    "InvalidPattern",
			data:    encode(t, checkingBook("5000/100")),
			pattern: `Balance check (`,
			stderr:  "invalid assertion pattern",
		},
		{
			name:    "AmountNotANumber",
			data:    encode(t, checkingBook("5000/100")),
			pattern: `Balance \w+`,
			stderr:  "as a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".gnucash")
			if tt.data != nil {
				assert.NoError(t, os.WriteFile(path, tt.data, 0644))
			}

			r := execute([]string{path, tt.pattern})

			assert.Equal(t, 1, r.result.ExitCode)
			assert.Contains(t, r.stderr, tt.stderr)
			assert.NotContains(t, r.stdout, "errors!")
		})
	}
}

func TestCheckMalformedDocumentShowsSource(t *testing.T) {
	source := "<?xml version=\"1.0\"?>\n<gnc-v2>\n<gnc:book version=\"2.0.0\">\n<gnc:account>\n</gnc:book>\n</gnc-v2>\n"
	path := writeBook(t, "broken.xml", []byte(source))

	r := execute([]string{path, balancePattern})

	assert.Equal(t, 1, r.result.ExitCode)
	assert.Contains(t, r.stderr, "broken.xml:5")
	assert.Contains(t, r.stderr, "5 | </gnc:book>")
	assert.Contains(t, r.stderr, "failed to load book")
}

func TestTelemetry(t *testing.T) {
	path := writeBook(t, "books.xml", encode(t, checkingBook("5000/100")))

	r := execute([]string{path, balancePattern, "--telemetry"})

	assert.Equal(t, 0, r.result.ExitCode)
	assert.Contains(t, r.stderr, "check books.xml")
	assert.Contains(t, r.stderr, "gnucash.parse")
	assert.Contains(t, r.stderr, "ledger.check (1 accounts)")
	assert.NotContains(t, r.stdout, "gnucash.parse")
}

func TestLogLevel(t *testing.T) {
	book := checkingBook("5000/100")
	book.Accounts = append(book.Accounts, gnucash.NewAccount("acc2", "Checking"))
	path := writeBook(t, "books.xml", encode(t, book))

	r := execute([]string{path, balancePattern})
	assert.Contains(t, r.stderr, "duplicate account name")

	r = execute([]string{path, balancePattern, "--log-level", "error"})
	assert.NotContains(t, r.stderr, "duplicate account name")

	r = execute([]string{path, balancePattern, "--log-level", "loud"})
	assert.NotEqual(t, 0, r.result.ExitCode)
}

func TestVersionFlag(t *testing.T) {
	r := execute([]string{"--version"})

	assert.Equal(t, 0, r.result.ExitCode)
	assert.Equal(t, buildVersion()+"\n", r.stdout)
}

func TestMissingArguments(t *testing.T) {
	r := execute([]string{})
	assert.NotEqual(t, 0, r.result.ExitCode)
}

func TestDoctorAccounts(t *testing.T) {
	book := gnucash.NewBook(
		gnucash.WithAccounts(
			gnucash.NewAccount("root", "Root Account"),
			gnucash.NewAccount("acc1", "Checking"),
			gnucash.NewAccount("acc2", "Checking"),
		),
		gnucash.WithTransactions(
			gnucash.NewTransaction("2020-01-01", "Deposit", gnucash.NewSplit("acc2", "12345/100"), gnucash.NewSplit("root", "-12345/100")),
		),
	)
	path := writeBook(t, "books.xml", encode(t, book))

	r := execute([]string{"doctor", "accounts", path})

	assert.Equal(t, 0, r.result.ExitCode, r.stderr)
	assert.Equal(t, "Root Account  root  1 splits  -123.45\n"+
		"Checking  acc2  1 splits  123.45\n", r.stdout)
	assert.Contains(t, r.stderr, "1 account(s) hidden")
}

func TestErrorRenderer(t *testing.T) {
	source := []byte("line one\nline two\nline three\nline four\n")

	t.Run("WithSourceContext", func(t *testing.T) {
		err := &gnucash.ParseError{
			Pos:     gnucash.Position{Filename: "books.xml", Line: 3},
			Message: "element <x> closed by </y>",
		}

		out := NewErrorRenderer(source).Render(err)
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

		assert.Contains(t, lines[0], "books.xml:3")
		assert.Contains(t, out, "1 | line one")
		assert.Contains(t, out, "> 3 | line three")
		assert.NotContains(t, out, "line four")
	})

	t.Run("WithoutPosition", func(t *testing.T) {
		err := errors.New("failed to read books.xml")
		assert.Contains(t, NewErrorRenderer(source).Render(err), "failed to read books.xml")
	})

	t.Run("WithoutSource", func(t *testing.T) {
		err := &gnucash.ParseError{
			Pos:     gnucash.Position{Filename: "books.xml", Line: 3},
			Message: "unexpected end of document",
		}
		out := NewErrorRenderer(nil).Render(err)
		assert.NotContains(t, out, " | ")
	})
}

func TestCommandError(t *testing.T) {
	var err error = NewCommandError(42)

	var cmdErr *CommandError
	assert.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 42, cmdErr.ExitCode())
	assert.Equal(t, "command failed", err.Error())

	assert.Equal(t, CommandResult{ExitCode: 0}, Success())
	assert.Equal(t, 1, Failure(err).ExitCode)
}
