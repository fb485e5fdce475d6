package stats

import "math"

// Entropy computes Shannon entropy from the byte-value distribution of a
// stream. It owns its Histogram outright; nothing else feeds it.
type Entropy struct {
	hist  Histogram
	total uint64
}

func (e *Entropy) Write(p []byte) (int, error) {
	e.hist.Write(p)
	e.total += uint64(len(p))
	return len(p), nil
}

// Bits returns the entropy of the observed distribution in bits per byte,
// in [0, 8]. An empty stream has zero entropy: no information was observed.
func (e *Entropy) Bits() float64 {
	if e.total == 0 {
		return 0
	}
	total := float64(e.total)
	var bits float64
	for _, c := range e.hist.counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		bits -= p * math.Log2(p)
	}
	return bits
}

// Percent returns the entropy as a percentage of the 8-bit maximum.
func (e *Entropy) Percent() float64 {
	return 100 * e.Bits() / 8.0
}
