package stats

import "bytes"

// LineConsumer is implemented by line-mode accumulators. Lines are passed
// with their terminator retained; a trailing unterminated segment is still
// one line.
type LineConsumer interface {
	ConsumeLine(line []byte)
}

// LineCount counts lines.
type LineCount struct {
	n int64
}

func (c *LineCount) ConsumeLine(line []byte) {
	c.n++
}

// Lines returns the number of lines consumed.
func (c *LineCount) Lines() int64 {
	return c.n
}

// WordCount counts whitespace-separated words. Runs of any Unicode
// whitespace separate words; leading, trailing, and repeated whitespace
// produce no empty tokens.
type WordCount struct {
	n int64
}

func (c *WordCount) ConsumeLine(line []byte) {
	c.n += int64(len(bytes.Fields(line)))
}

// Words returns the number of words consumed.
func (c *WordCount) Words() int64 {
	return c.n
}
