// Package cli implements the gncassert command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/robinvdvleuten/gncassert/gnucash"
	"github.com/robinvdvleuten/gncassert/loader"
)

const stdinFilename = "<stdin>"

var (
	errorSymbol   = "✗"
	infoSymbol    = "→"

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
)

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// FileOrStdin accepts either a file path or "-" for stdin.
// For stdin: Filename="<stdin>", Contents populated by EnsureContents.
// For files: Filename set, Contents nil (read by loader).
type FileOrStdin struct {
	Filename string
	Contents []byte
}

// Decode implements kong.MapperValue.
func (f *FileOrStdin) Decode(ctx *kong.DecodeContext) error {
	var filename string
	if err := ctx.Scan.PopValueInto("filename", &filename); err != nil {
		return err
	}

	if filename == "-" || filename == "" {
		f.Filename = stdinFilename
		f.Contents = nil
		return nil
	}

	f.Filename = filename
	f.Contents = nil

	return nil
}

// EnsureContents reads stdin into Contents when the input is stdin. An
// interactive terminal is refused, since nobody types a GnuCash book.
func (f *FileOrStdin) EnsureContents(stdin io.Reader) error {
	if f.Filename == "" {
		f.Filename = stdinFilename
	}
	if f.Filename != stdinFilename || f.Contents != nil {
		return nil
	}

	if isTerminal(stdin) {
		return fmt.Errorf("refusing to read a book from an interactive terminal; pass a file or pipe one in")
	}

	contents, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	f.Contents = contents
	return nil
}

// GetSourceContent returns the XML text for error formatting.
func (f *FileOrStdin) GetSourceContent(ctx context.Context, ldr *loader.Loader) ([]byte, error) {
	if f.Filename == stdinFilename {
		return ldr.Decode(ctx, f.Filename, f.Contents)
	}
	return ldr.ReadFile(ctx, f.Filename)
}

// LoadBook loads the book using LoadBytes for stdin or Load for files.
func (f *FileOrStdin) LoadBook(ctx context.Context, ldr *loader.Loader) (*gnucash.Book, error) {
	if f.Filename == stdinFilename {
		return ldr.LoadBytes(ctx, f.Filename, f.Contents)
	}
	return ldr.Load(ctx, f.Filename)
}
