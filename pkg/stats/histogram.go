// Package stats implements the streaming statistic accumulators.
//
// Byte-mode accumulators (Histogram, Entropy, LengthByRead) implement
// io.Writer, so a full pass is an io.Copy from the source into the
// accumulator; Write never fails. Line-mode accumulators (LineCount,
// WordCount) implement LineConsumer. Every accumulator is single-use:
// construct, feed one stream, read the result, discard.
package stats

// Histogram counts occurrences of each of the 256 possible byte values.
// The zero value is ready to use.
type Histogram struct {
	counts [256]uint64
}

func (h *Histogram) Write(p []byte) (int, error) {
	for _, b := range p {
		h.counts[b]++
	}
	return len(p), nil
}

// Counts returns the per-value counts, indexed by byte value. The sum of
// all counts equals the number of bytes written.
func (h *Histogram) Counts() [256]uint64 {
	return h.counts
}
