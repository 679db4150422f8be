// Package loader reads GnuCash books from disk or memory.
//
// GnuCash saves books either as plain XML or as gzip-compressed XML,
// depending on the "compress files" preference. The loader accepts both:
// input starting with the gzip magic bytes is decompressed, anything else
// is handed to the parser as-is.
//
//	ldr := loader.New()
//	book, err := ldr.Load(ctx, "books.gnucash")
package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/robinvdvleuten/gncassert/gnucash"
	"github.com/robinvdvleuten/gncassert/telemetry"
)

// gzipMagic are the first two bytes of every gzip stream (RFC 1952).
var gzipMagic = []byte{0x1f, 0x8b}

// Loader reads and parses GnuCash files.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithMaxSize(64 << 20))
type Loader struct {
	// MaxSize limits the size of the decompressed document in bytes.
	// Zero means no limit.
	MaxSize int64
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithMaxSize rejects documents whose decompressed size exceeds n bytes.
func WithMaxSize(n int64) Option {
	return func(l *Loader) {
		l.MaxSize = n
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads filename, decompressing it if needed, and parses the book.
func (l *Loader) Load(ctx context.Context, filename string) (*gnucash.Book, error) {
	data, err := l.ReadFile(ctx, filename)
	if err != nil {
		return nil, err
	}
	return gnucash.ParseWithFilename(ctx, filename, data)
}

// LoadBytes parses a book from data that was already read, for example
// from stdin. filename is only used in error messages.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*gnucash.Book, error) {
	data, err := l.Decode(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	return gnucash.ParseWithFilename(ctx, filename, data)
}

// ReadFile returns the XML text of filename, decompressing it if needed.
func (l *Loader) ReadFile(ctx context.Context, filename string) ([]byte, error) {
	timer := telemetry.StartTimer(ctx, "loader.read")
	defer timer.End()

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	return l.Decode(ctx, filename, data)
}

// Decode returns the XML text held in data, inflating it when it is
// gzip-compressed. The size limit applies to the result.
func (l *Loader) Decode(ctx context.Context, filename string, data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		if l.MaxSize > 0 && int64(len(data)) > l.MaxSize {
			return nil, &SizeError{Filename: filename, Limit: l.MaxSize}
		}
		return data, nil
	}

	timer := telemetry.StartTimer(ctx, "loader.decompress")
	defer timer.End()

	out, err := Decompress(data, l.MaxSize)
	if err != nil {
		if sizeErr, ok := err.(*SizeError); ok {
			sizeErr.Filename = filename
			return nil, sizeErr
		}
		return nil, &DecompressError{Filename: filename, Underlying: err}
	}
	return out, nil
}

// IsCompressed reports whether data starts with the gzip magic bytes.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// Decompress inflates a gzip stream. Concatenated members are read as one
// stream. A positive limit caps the decompressed size.
func Decompress(data []byte, limit int64) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()

	var r io.Reader = zr
	if limit > 0 {
		r = io.LimitReader(zr, limit+1)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(out)) > limit {
		return nil, &SizeError{Limit: limit}
	}
	return out, nil
}
