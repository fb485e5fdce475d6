package source

import (
	"context"
	"fmt"
	"io"
	"os"
)

type stdinSource struct {
	closed bool
}

// Stdin returns a Source reading from standard input. Close never closes
// the process handle; it only marks the source done.
func Stdin() Source {
	return &stdinSource{}
}

func (s *stdinSource) Read(p []byte) (int, error) {
	if s.closed {
		return 0, io.EOF
	}
	return os.Stdin.Read(p)
}

func (s *stdinSource) Name() string {
	return "<stdin>"
}

func (s *stdinSource) Size(ctx context.Context) (int64, error) {
	return 0, fmt.Errorf("stdin has no metadata size: %w", ErrUnsupported)
}

func (s *stdinSource) Close() error {
	s.closed = true
	return nil
}
