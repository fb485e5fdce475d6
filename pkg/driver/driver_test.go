package driver

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/eunmann/fstats/pkg/source"
	"github.com/klauspost/compress/zstd"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func runAll(t *testing.T, req Request) map[Stat]Result {
	t.Helper()
	byStat := make(map[Stat]Result)
	for _, res := range Run(context.Background(), req) {
		byStat[res.Stat] = res
	}
	return byStat
}

func TestRunAllStatistics(t *testing.T) {
	content := []byte("a b\tc\n\nd ")
	path := writeTempFile(t, "input.txt", content)

	req := Request{
		Input:     path,
		LineCount: true,
		WordCount: true,
		Length:    true,
		Histogram: true,
		Entropy:   true,
	}
	results := Run(context.Background(), req)

	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	wantOrder := []Stat{StatLineCount, StatWordCount, StatLength, StatHistogram, StatEntropy}
	for i, res := range results {
		if res.Stat != wantOrder[i] {
			t.Errorf("results[%d].Stat = %s, want %s", i, res.Stat, wantOrder[i])
		}
		if res.Err != nil {
			t.Errorf("%s: unexpected error: %v", res.Stat, res.Err)
		}
	}

	byStat := runAll(t, req)
	// Three lines: "a b\tc\n", "\n", and the unterminated "d ".
	if got := byStat[StatLineCount].Count; got != 3 {
		t.Errorf("line count = %d, want 3", got)
	}
	if got := byStat[StatWordCount].Count; got != 4 {
		t.Errorf("word count = %d, want 4", got)
	}
	if got := byStat[StatLength].Count; got != int64(len(content)) {
		t.Errorf("length = %d, want %d", got, len(content))
	}
}

func TestLengthModesAgree(t *testing.T) {
	path := writeTempFile(t, "input.bin", []byte("0123456789abcdef"))

	readRes := runAll(t, Request{Input: path, Length: true, LengthMode: LengthRead})[StatLength]
	statRes := runAll(t, Request{Input: path, Length: true, LengthMode: LengthStat})[StatLength]

	if readRes.Err != nil || statRes.Err != nil {
		t.Fatalf("errors: read=%v stat=%v", readRes.Err, statRes.Err)
	}
	if readRes.Count != statRes.Count {
		t.Errorf("read mode = %d, stat mode = %d, want equal", readRes.Count, statRes.Count)
	}
	if readRes.Count != 16 {
		t.Errorf("length = %d, want 16", readRes.Count)
	}
}

func TestHistogramSumMatchesLength(t *testing.T) {
	data := []byte("some bytes with repeats: aaaa bbbb cccc\n")
	path := writeTempFile(t, "input.txt", data)

	byStat := runAll(t, Request{Input: path, Length: true, Histogram: true, LengthMode: LengthRead})

	var sum uint64
	for _, c := range byStat[StatHistogram].Counts {
		sum += c
	}
	if int64(sum) != byStat[StatLength].Count {
		t.Errorf("histogram sum = %d, length = %d, want equal", sum, byStat[StatLength].Count)
	}
}

func TestEntropyResults(t *testing.T) {
	constant := writeTempFile(t, "constant.bin", []byte("aaaaaaaaaaaaaaaa"))
	res := runAll(t, Request{Input: constant, Entropy: true})[StatEntropy]
	if res.Err != nil {
		t.Fatalf("entropy pass: %v", res.Err)
	}
	if res.Bits != 0 {
		t.Errorf("constant stream entropy = %v bits, want 0", res.Bits)
	}

	uniform := make([]byte, 256)
	for i := range uniform {
		uniform[i] = byte(i)
	}
	path := writeTempFile(t, "uniform.bin", uniform)
	res = runAll(t, Request{Input: path, Entropy: true})[StatEntropy]
	if math.Abs(res.Bits-8.0) > 1e-9 {
		t.Errorf("uniform stream entropy = %v bits, want 8.0", res.Bits)
	}
	if want := 100 * res.Bits / 8.0; res.Percent != want {
		t.Errorf("entropy percent = %v, want %v", res.Percent, want)
	}
}

func TestEmptyInput(t *testing.T) {
	path := writeTempFile(t, "empty", nil)

	byStat := runAll(t, Request{
		Input:      path,
		LineCount:  true,
		WordCount:  true,
		Length:     true,
		Histogram:  true,
		Entropy:    true,
		LengthMode: LengthRead,
	})

	for _, st := range []Stat{StatLineCount, StatWordCount, StatLength} {
		res := byStat[st]
		if res.Err != nil {
			t.Errorf("%s: unexpected error: %v", st, res.Err)
		}
		if res.Count != 0 {
			t.Errorf("%s = %d, want 0", st, res.Count)
		}
	}
	for _, c := range byStat[StatHistogram].Counts {
		if c != 0 {
			t.Errorf("histogram has nonzero count %d on empty input", c)
		}
	}
	if byStat[StatEntropy].Bits != 0 {
		t.Errorf("entropy = %v bits on empty input, want 0", byStat[StatEntropy].Bits)
	}
}

func TestTrailingNewlineConvention(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantLines int64
	}{
		{"terminated lines", "one\ntwo\n", 2},
		{"trailing unterminated line", "one\ntwo\nthree", 3},
		{"only newline", "\n", 1},
		{"no newline at all", "single", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "input.txt", []byte(tt.content))
			res := runAll(t, Request{Input: path, LineCount: true})[StatLineCount]
			if res.Err != nil {
				t.Fatalf("pass failed: %v", res.Err)
			}
			if res.Count != tt.wantLines {
				t.Errorf("line count = %d, want %d", res.Count, tt.wantLines)
			}
		})
	}
}

func TestMetadataLengthOnStdinFails(t *testing.T) {
	byStat := runAll(t, Request{Input: "-", Length: true, LengthMode: LengthStat})

	res := byStat[StatLength]
	if res.Err == nil {
		t.Fatal("expected error for stat-mode length on stdin")
	}
	if !errors.Is(res.Err, source.ErrUnsupported) {
		t.Errorf("error = %v, want source.ErrUnsupported", res.Err)
	}
}

func TestFailedStatisticDoesNotAbortOthers(t *testing.T) {
	// stat-mode length cannot serve a decompressed stream, but entropy
	// still runs over it.
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	path := writeTempFile(t, "input.bin.zst", enc.EncodeAll([]byte{0, 1, 0, 1}, nil))

	results := Run(context.Background(), Request{
		Input:      path,
		Length:     true,
		Entropy:    true,
		LengthMode: LengthStat,
	})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Stat != StatLength || !errors.Is(results[0].Err, source.ErrUnsupported) {
		t.Errorf("expected length to fail with ErrUnsupported, got %+v", results[0])
	}
	if results[1].Stat != StatEntropy || results[1].Err != nil {
		t.Errorf("expected entropy to succeed, got %+v", results[1])
	}
	if math.Abs(results[1].Bits-1.0) > 1e-9 {
		t.Errorf("entropy = %v bits, want 1.0", results[1].Bits)
	}
}

func TestZstdInput(t *testing.T) {
	plain := []byte("alpha beta\ngamma\n")
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	path := writeTempFile(t, "input.txt.zst", enc.EncodeAll(plain, nil))

	byStat := runAll(t, Request{
		Input:      path,
		LineCount:  true,
		WordCount:  true,
		Length:     true,
		LengthMode: LengthRead,
	})

	for st, want := range map[Stat]int64{
		StatLineCount: 2,
		StatWordCount: 3,
		StatLength:    int64(len(plain)),
	} {
		res := byStat[st]
		if res.Err != nil {
			t.Errorf("%s: unexpected error: %v", st, res.Err)
			continue
		}
		if res.Count != want {
			t.Errorf("%s = %d, want %d", st, res.Count, want)
		}
	}
}

func TestOpenFailure(t *testing.T) {
	results := Run(context.Background(), Request{
		Input:     filepath.Join(t.TempDir(), "missing"),
		LineCount: true,
		Entropy:   true,
	})

	for _, res := range results {
		if res.Err == nil {
			t.Errorf("%s: expected open error", res.Stat)
		}
	}
}
