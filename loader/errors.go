package loader

import "fmt"

// DecompressError is returned when input carries the gzip header but is
// not a valid gzip stream.
type DecompressError struct {
	Filename   string
	Underlying error
}

func (e *DecompressError) Error() string {
	return fmt.Sprintf("failed to decompress %s: %v", e.Filename, e.Underlying)
}

func (e *DecompressError) Unwrap() error {
	return e.Underlying
}

// SizeError is returned when a document exceeds the loader's size limit.
type SizeError struct {
	Filename string
	Limit    int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: document exceeds %d bytes", e.Filename, e.Limit)
}
