package source

import (
	"context"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

type zstdSource struct {
	inner  Source
	dec    *zstd.Decoder
	closed bool
}

// NewZstdSource wraps src in a streaming zstd decoder. Statistics computed
// through it describe the decompressed stream.
func NewZstdSource(src Source) (Source, error) {
	dec, err := zstd.NewReader(src, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd reader for %s: %w", src.Name(), err)
	}
	return &zstdSource{inner: src, dec: dec}, nil
}

func (s *zstdSource) Read(p []byte) (int, error) {
	return s.dec.Read(p)
}

func (s *zstdSource) Name() string {
	return s.inner.Name()
}

func (s *zstdSource) Size(ctx context.Context) (int64, error) {
	// The compressed object's metadata length is not the stream length.
	return 0, fmt.Errorf("%s: decompressed size is not available from metadata: %w",
		s.inner.Name(), ErrUnsupported)
}

func (s *zstdSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.dec.Close()
	return s.inner.Close()
}
