// Package cli parses the ontdemux command line.
package cli

import (
	"errors"
	"flag"
	"fmt"

	"ontdemux/internal/classify"
	"ontdemux/internal/version"
)

// DefaultPrefix names output files when -prefix is not given.
const DefaultPrefix = "ontdemux"

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	CutFile   string
	FastqFile string
	PafFile   string // positional; "-" = stdin
	SAM       bool   // treat alignment input as SAM instead of PAF

	// Selection
	Select       string
	Strategy     classify.Strategy
	MapQ         int
	MaxDistance  int
	Margin       int
	MaxUnmatched int

	// Output
	Prefix      string
	Compress    bool
	MatchedOnly bool

	// Performance / UX
	Threads  int
	Progress bool
	Quiet    bool

	ConfigFile string
	Version    bool

	// Explicit records which flags were set on the command line, so a
	// -config file cannot override them.
	Explicit map[string]bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: assign ONT reads to CRISPR cut sites from minimap2 alignments

Version: %s

Usage:
  %s [options] [paf-file]

The PAF file defaults to stdin. With -fastq, reads are additionally
partitioned into one FASTQ file per cut site (plus unmapped, unmatched and
low_mapq unless -matched-only).

`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returning an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.CutFile, "cut-file", "", "TSV file with cut-site definitions [*]")
	fs.StringVar(&opt.FastqFile, "fastq", "", "FASTQ file to partition by cut site")
	fs.BoolVar(&opt.SAM, "sam", false, "alignment input is SAM rather than PAF [false]")

	fs.StringVar(&opt.Select, "select", "start", "read selection strategy: start | both | either | xor [start]")
	fs.IntVar(&opt.MapQ, "mapq-threshold", 10, "minimum MAPQ for the primary alignment [10]")
	fs.IntVar(&opt.MaxDistance, "max-distance", 100, "maximum distance between a read end and a cut site [100]")
	fs.IntVar(&opt.Margin, "margin", 10, "extra bases allowed on the far side of a cut site [10]")
	fs.IntVar(&opt.MaxUnmatched, "max-unmatched", 200, "maximum read bases left uncovered by alignments [200]")

	fs.StringVar(&opt.Prefix, "prefix", DefaultPrefix, "prefix for output file names ["+DefaultPrefix+"]")
	fs.BoolVar(&opt.Compress, "compress", false, "gzip output files [false]")
	fs.BoolVar(&opt.MatchedOnly, "matched-only", false, "only write matched FASTQ records [false]")

	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")
	fs.BoolVar(&opt.Progress, "progress", false, "show a progress bar on the FASTQ pass [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress log messages [false]")

	fs.StringVar(&opt.ConfigFile, "config", "", "YAML file with tunable defaults")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	opt.Explicit = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opt.Explicit[f.Name] = true })

	switch fs.NArg() {
	case 0:
		opt.PafFile = "-"
	case 1:
		opt.PafFile = fs.Arg(0)
	default:
		return opt, errors.New("at most one positional PAF file is allowed")
	}
	return opt, opt.Validate()
}

// Validate re-checks option values; it runs again after a -config file is
// applied.
func (o *Options) Validate() error {
	if o.CutFile == "" {
		return errors.New("-cut-file is required")
	}
	if o.MapQ < 0 {
		return errors.New("-mapq-threshold must be >= 0")
	}
	if o.MaxDistance < 0 {
		return errors.New("-max-distance must be >= 0")
	}
	if o.Margin < 0 {
		return errors.New("-margin must be >= 0")
	}
	if o.MaxUnmatched < 0 {
		return errors.New("-max-unmatched must be >= 0")
	}
	if o.Threads < 0 {
		return errors.New("-threads must be >= 0")
	}
	strat, err := classify.ParseStrategy(o.Select)
	if err != nil {
		return err
	}
	o.Strategy = strat
	return nil
}
