// Command gzrinflate writes the decompressed body of a replay container to disk.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gzreplay/gzr/internal/decompress"
	"github.com/gzreplay/gzr/internal/logging"

	"github.com/spf13/pflag"
)

// RawExt is appended to the input name when no output path is given.
const RawExt = ".raw"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := pflag.NewFlagSet("gzrinflate", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.StringP("output", "o", "", "output file (default <input>"+RawExt+")")
	level := fs.String("log-level", "info", "trace, debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: gzrinflate [flags] <replay.gzr>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	in := fs.Arg(0)
	if *out == "" {
		*out = in + RawExt
	}

	logManager := logging.Setup(logging.Options{Level: *level, Console: stderr})
	defer logManager.Close()

	if !decompress.ToFile(logManager.Logger, in, *out) {
		return 1
	}
	return 0
}
