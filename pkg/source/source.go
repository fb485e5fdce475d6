// Package source abstracts byte-oriented inputs: local files, standard
// input, and S3 objects, with optional transparent zstd decoding.
package source

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrUnsupported reports that an operation does not apply to the input,
// such as querying metadata size on standard input.
var ErrUnsupported = errors.New("operation not supported by this source")

// Source is a single-use byte stream. Read until io.EOF, then Close.
// Close is idempotent on all implementations.
type Source interface {
	io.ReadCloser

	// Name identifies the input for logs and error messages.
	Name() string

	// Size returns the input length in bytes from metadata, without reading
	// the stream. Returns an error wrapping ErrUnsupported when no metadata
	// exists, e.g. for standard input or a decompressed stream.
	Size(ctx context.Context) (int64, error)
}

// Options controls how an input is opened.
type Options struct {
	// Decompress forces zstd decoding of the stream. Inputs with a .zst
	// suffix are decoded regardless.
	Decompress bool
}

// Open binds an input to a Source. An input of "" or "-" means standard
// input, s3://bucket/key an S3 object, anything else a local file path.
func Open(ctx context.Context, input string, opts Options) (Source, error) {
	var (
		src Source
		err error
	)
	switch {
	case input == "" || input == "-":
		src = Stdin()
	case strings.HasPrefix(input, "s3://"):
		src, err = OpenS3(ctx, input)
	default:
		src, err = OpenFile(input)
	}
	if err != nil {
		return nil, err
	}

	if opts.Decompress || strings.HasSuffix(input, ".zst") {
		zs, err := NewZstdSource(src)
		if err != nil {
			src.Close()
			return nil, err
		}
		src = zs
	}
	return src, nil
}
