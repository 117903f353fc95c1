package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gzreplay/gzr/internal/command"
	"github.com/gzreplay/gzr/internal/config"
	"github.com/gzreplay/gzr/internal/util"
	"github.com/gzreplay/gzr/internal/worker"
	"github.com/gzreplay/gzr/pkg/core"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ReplayExt is the extension picked up when a directory is given.
const ReplayExt = ".gzr"

type options struct {
	configDir   string
	logLevel    string
	storageType string
	workers     int
	noTracks    bool
	verbose     bool
	dumpUnknown bool
	version     bool
	paths       []string

	flags *pflag.FlagSet
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet(ToolName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] <replay.gzr|dir>...\n", ToolName)
		fs.PrintDefaults()
	}

	fs.StringVarP(&opts.configDir, "config", "c", ".", "directory containing "+config.ConfigFileName)
	fs.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn or error")
	fs.StringVarP(&opts.storageType, "storage", "s", "", "storage backend: memory, sqlite or postgres")
	fs.IntVarP(&opts.workers, "workers", "w", 0, "number of files decoded concurrently")
	fs.BoolVar(&opts.noTracks, "no-tracks", false, "skip building movement tracks")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log every payload decode")
	fs.BoolVar(&opts.dumpUnknown, "dump-unknown", false, "hex dump payloads with unrecognised opcodes")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.paths = fs.Args()
	opts.flags = fs
	if !opts.version && len(opts.paths) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("no replay files given")
	}
	return opts, nil
}

// apply overlays flags the user set on top of file and environment config.
func (o *options) apply() {
	if o.flags == nil {
		return
	}
	if o.flags.Changed("log-level") {
		viper.Set("logLevel", o.logLevel)
	}
	if o.flags.Changed("storage") {
		viper.Set("storage.type", o.storageType)
	}
	if o.flags.Changed("workers") {
		viper.Set("decode.workers", o.workers)
	}
	if o.noTracks {
		viper.Set("decode.tracks", false)
	}
}

// collectInputs expands directories into the replay files directly inside
// them, sorted by name. Files named explicitly are kept whatever their extension.
func collectInputs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ReplayExt) {
				continue
			}
			found = append(found, filepath.Join(p, e.Name()))
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

func printSummary(w io.Writer, results []worker.Result) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s: FAILED: %v\n", res.Path, res.Err)
			continue
		}
		rep := res.Item.Replay
		fmt.Fprintf(w, "%s: %s on %s (%s), version %d, %d players, %d commands, %d events, %d warnings [%s]\n",
			res.Path,
			rep.Stage.Name,
			rep.Stage.MapName,
			rep.Stage.GameType,
			rep.Header.Version,
			len(rep.Players),
			len(rep.Commands),
			len(rep.Events),
			len(rep.Warnings),
			res.Duration.Round(time.Millisecond),
		)

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		summary := rep.Summary()
		kinds := make([]string, 0, len(summary))
		for k := range summary {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(tw, "  %s\t%d\n", k, summary[k])
		}
		tw.Flush()

		for _, warn := range rep.Warnings {
			fmt.Fprintf(w, "  warning: #%d %s @%d: %v\n", warn.Index, warn.Opcode, warn.Offset, warn.Err)
		}
		for _, err := range res.StoreErrs {
			fmt.Fprintf(w, "  storage: %v\n", err)
		}
	}
}

// dumpUnknown prints every command whose opcode has no decoder.
func dumpUnknown(w io.Writer, path string, rep *core.Replay) {
	for i, cmd := range rep.Commands {
		sub, err := command.PeekSubHeader(cmd.Payload)
		if err != nil || sub.Opcode.Known() {
			continue
		}
		fmt.Fprintf(w, "%s #%d t=%.3f sender=%d %s size=%d\n", path, i, cmd.Time, cmd.Sender, sub.Opcode, len(cmd.Payload))
		fmt.Fprint(w, util.HexDump(cmd.Payload, util.DefaultHexWidth))
	}
}
