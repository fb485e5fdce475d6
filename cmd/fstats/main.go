// Command fstats computes statistics of a byte stream: length, line count,
// word count, byte-value histogram, and Shannon entropy.
package main

import (
	"fmt"
	"os"

	"github.com/eunmann/fstats/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
