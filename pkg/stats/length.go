package stats

// LengthByRead counts stream bytes as they pass through. It is correct for
// non-seekable inputs such as piped standard input, where metadata-based
// length is unavailable.
type LengthByRead struct {
	n int64
}

func (l *LengthByRead) Write(p []byte) (int, error) {
	l.n += int64(len(p))
	return len(p), nil
}

// Bytes returns the number of bytes observed so far.
func (l *LengthByRead) Bytes() int64 {
	return l.n
}
