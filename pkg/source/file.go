package source

import (
	"context"
	"fmt"
	"os"
)

type fileSource struct {
	f      *os.File
	path   string
	closed bool
}

// OpenFile opens a local file for reading.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &fileSource{f: f, path: path}, nil
}

func (s *fileSource) Read(p []byte) (int, error) {
	return s.f.Read(p)
}

func (s *fileSource) Name() string {
	return s.path
}

func (s *fileSource) Size(ctx context.Context) (int64, error) {
	info, err := s.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", s.path, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s is not a regular file: %w", s.path, ErrUnsupported)
	}
	return info.Size(), nil
}

func (s *fileSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.f.Close()
}
