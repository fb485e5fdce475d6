// Package cli implements the command-line interface for fstats.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eunmann/fstats/pkg/driver"
	"github.com/eunmann/fstats/pkg/logging"
)

// options is the full flag surface, one named field per flag.
type options struct {
	loadData   string
	lineCount  bool
	wordCount  bool
	length     bool
	histogram  bool
	entropy    bool
	modeLength string
	decompress bool
	debug      bool
	logHuman   bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("fstats", flag.ContinueOnError)
	fs.StringVar(&opts.loadData, "load-data", "-", "input: file path, s3://bucket/key, or - for stdin")
	fs.BoolVar(&opts.lineCount, "line-count", false, "report line count")
	fs.BoolVar(&opts.wordCount, "word-count", false, "report word count")
	fs.BoolVar(&opts.length, "length", false, "report length in bytes")
	fs.BoolVar(&opts.histogram, "histogram", false, "report byte-value histogram (256 counts)")
	fs.BoolVar(&opts.entropy, "entropy", false, "report Shannon entropy as bits and percent")
	fs.StringVar(&opts.modeLength, "mode-length", "stat", "length measurement: stat (metadata) or read (count bytes)")
	fs.BoolVar(&opts.decompress, "decompress", false, "zstd-decode the input before computing statistics")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&opts.logHuman, "log-human", false, "human-friendly log output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if opts.modeLength != string(driver.LengthRead) && opts.modeLength != string(driver.LengthStat) {
		return nil, fmt.Errorf("invalid --mode-length %q: want read or stat", opts.modeLength)
	}
	return opts, nil
}

// Run executes the CLI with the given arguments. Results are printed to
// stdout, one line per requested statistic, in a fixed order: line-count,
// word-count, length, histogram, entropy. With no statistic flags set,
// nothing is printed and the run succeeds.
func Run(args []string) error {
	return run(args, os.Stdout)
}

func run(args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	logging.Init(opts.debug, opts.logHuman)

	req := driver.Request{
		Input:      opts.loadData,
		LineCount:  opts.lineCount,
		WordCount:  opts.wordCount,
		Length:     opts.length,
		Histogram:  opts.histogram,
		Entropy:    opts.entropy,
		LengthMode: driver.LengthMode(opts.modeLength),
		Decompress: opts.decompress,
	}

	var failed int
	for _, res := range driver.Run(context.Background(), req) {
		if res.Err != nil {
			failed++
			log := logging.WithStat(res.Stat.String())
			log.Error().Err(res.Err).Msg("statistic failed")
			continue
		}
		fmt.Fprintln(out, formatResult(res))
	}
	if failed > 0 {
		return fmt.Errorf("%d statistic(s) failed", failed)
	}
	return nil
}

func formatResult(res driver.Result) string {
	switch res.Stat {
	case driver.StatHistogram:
		var sb strings.Builder
		for i, c := range res.Counts {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatUint(c, 10))
		}
		return sb.String()
	case driver.StatEntropy:
		return fmt.Sprintf("%g %g", res.Bits, res.Percent)
	default:
		return strconv.FormatInt(res.Count, 10)
	}
}
