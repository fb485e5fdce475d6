// Package driver selects and runs the requested statistics over one input.
//
// Each statistic gets its own source and its own full pass over the stream.
// There is no single-pass fusion: one accumulator per open, read to
// exhaustion, close, report. Passes run sequentially in a fixed order.
package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/eunmann/fstats/pkg/humanfmt"
	"github.com/eunmann/fstats/pkg/logging"
	"github.com/eunmann/fstats/pkg/source"
	"github.com/eunmann/fstats/pkg/stats"
)

// readBufSize is the chunk size for byte and line passes.
const readBufSize = 4096

// Stat identifies one computable statistic.
type Stat int

const (
	StatLineCount Stat = iota
	StatWordCount
	StatLength
	StatHistogram
	StatEntropy
)

// order is the fixed reporting order.
var order = [...]Stat{StatLineCount, StatWordCount, StatLength, StatHistogram, StatEntropy}

func (s Stat) String() string {
	switch s {
	case StatLineCount:
		return "line-count"
	case StatWordCount:
		return "word-count"
	case StatLength:
		return "length"
	case StatHistogram:
		return "histogram"
	case StatEntropy:
		return "entropy"
	default:
		return fmt.Sprintf("stat(%d)", int(s))
	}
}

// LengthMode selects how the length statistic is measured.
type LengthMode string

const (
	// LengthRead reads the whole stream and counts bytes. Works on any input.
	LengthRead LengthMode = "read"
	// LengthStat queries metadata without reading. Fails on standard input
	// and on decompressed streams. This is the default.
	LengthStat LengthMode = "stat"
)

// Request describes one run: which statistics to compute over which input.
type Request struct {
	// Input is the source identifier: a path, s3://bucket/key, or ""/"-"
	// for standard input.
	Input string

	LineCount bool
	WordCount bool
	Length    bool
	Histogram bool
	Entropy   bool

	// LengthMode applies to the length statistic only. Empty means LengthStat.
	LengthMode LengthMode

	// Decompress forces zstd decoding of the input stream.
	Decompress bool
}

// Result is the outcome of one statistic's pass. Err is set when the pass
// failed; the value fields are then meaningless.
type Result struct {
	Stat Stat
	Err  error

	Count   int64       // line-count, word-count, length
	Counts  [256]uint64 // histogram
	Bits    float64     // entropy, bits per byte
	Percent float64     // entropy, percent of the 8-bit maximum
}

// Run executes every requested statistic in reporting order: line-count,
// word-count, length, histogram, entropy. A failed pass is recorded on its
// result and the remaining statistics still run; callers decide the exit
// policy.
func Run(ctx context.Context, req Request) []Result {
	mode := req.LengthMode
	if mode == "" {
		mode = LengthStat
	}

	var results []Result
	for _, st := range order {
		if !requested(req, st) {
			continue
		}
		results = append(results, runOne(ctx, req, st, mode))
	}
	return results
}

func requested(req Request, st Stat) bool {
	switch st {
	case StatLineCount:
		return req.LineCount
	case StatWordCount:
		return req.WordCount
	case StatLength:
		return req.Length
	case StatHistogram:
		return req.Histogram
	case StatEntropy:
		return req.Entropy
	default:
		return false
	}
}

func runOne(ctx context.Context, req Request, st Stat, mode LengthMode) Result {
	res := Result{Stat: st}
	log := logging.WithStat(st.String())

	src, err := source.Open(ctx, req.Input, source.Options{Decompress: req.Decompress})
	if err != nil {
		res.Err = fmt.Errorf("open input: %w", err)
		return res
	}
	defer src.Close()

	start := time.Now()
	var read int64

	switch st {
	case StatLineCount:
		var lc stats.LineCount
		read, err = linePass(src, &lc)
		res.Count = lc.Lines()
	case StatWordCount:
		var wc stats.WordCount
		read, err = linePass(src, &wc)
		res.Count = wc.Words()
	case StatLength:
		if mode == LengthRead {
			var l stats.LengthByRead
			read, err = bytePass(src, &l)
			res.Count = l.Bytes()
		} else {
			res.Count, err = src.Size(ctx)
		}
	case StatHistogram:
		var h stats.Histogram
		read, err = bytePass(src, &h)
		res.Counts = h.Counts()
	case StatEntropy:
		var e stats.Entropy
		read, err = bytePass(src, &e)
		res.Bits = e.Bits()
		res.Percent = e.Percent()
	}
	if err != nil {
		// No partial values leave a failed pass.
		return Result{Stat: st, Err: err}
	}

	elapsed := time.Since(start)
	log.Debug().
		Str("read", humanfmt.Bytes(read)).
		Str("duration", humanfmt.Duration(elapsed)).
		Str("throughput", humanfmt.Throughput(read, elapsed)).
		Msg("pass complete")
	return res
}

// bytePass copies the stream into a byte-mode accumulator.
func bytePass(src source.Source, acc io.Writer) (int64, error) {
	n, err := io.CopyBuffer(acc, src, make([]byte, readBufSize))
	if err != nil {
		return n, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	return n, nil
}

// linePass feeds newline-delimited segments to a line-mode accumulator.
// A trailing segment without a terminator still counts as a line.
func linePass(src source.Source, acc stats.LineConsumer) (int64, error) {
	r := bufio.NewReaderSize(src, readBufSize)
	var read int64
	for {
		line, err := r.ReadBytes('\n')
		read += int64(len(line))
		if len(line) > 0 {
			acc.ConsumeLine(line)
		}
		if err == io.EOF {
			return read, nil
		}
		if err != nil {
			return read, fmt.Errorf("read %s: %w", src.Name(), err)
		}
	}
}
