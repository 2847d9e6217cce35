package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

const defaultConfigPath = "./config/kegg-marker.yml"

const usageHeader = `Usage: kegg-marker [options] <input file>

Reads one EC number (or KO number with -k) per line from <input file>, finds the
KEGG pathways they belong to and saves every pathway as <pathway>.gif with the
enzymes highlighted.

Options:
`

type options struct {
	help    bool
	version bool
}

func newFlagSet() (*pflag.FlagSet, *options) {
	opts := &options{}
	flags := pflag.NewFlagSet("kegg-marker", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.SetOutput(io.Discard)

	flags.BoolVarP(&opts.help, "help", "h", false, "Print version and usage, then exit.")
	flags.BoolVarP(&opts.version, "version", "v", false, "Print version, then exit.")
	flags.BoolP("quiet", "q", false, "Suppress progress output. Overrides --verbose.")
	flags.BoolP("verbose", "V", false, "Print progress: pathway counts, marking progress, start and end times.")
	flags.BoolP("ko_number", "k", false, "Input identifiers are KO numbers instead of EC numbers.")
	flags.BoolP("allpath", "a", false, "Keep every pathway an enzyme belongs to, not just the most specific one.")
	flags.StringP("output_dir", "o", ".", "Directory the pathway images are written to.")
	flags.IntP("workers", "w", 1, "Number of pathways marked concurrently.")
	lib.AddConfigFlag(flags, defaultConfigPath)

	return flags, opts
}

func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, "kegg-marker %s\n", version)
}

func printUsage(w io.Writer, flags *pflag.FlagSet) {
	_, _ = fmt.Fprint(w, usageHeader)
	_, _ = fmt.Fprint(w, flags.FlagUsages())
}
