// Package app wires the command line to the classification pipeline and
// the output writers. Run returns a process exit code: 0 on success, 1 on
// runtime failure, 2 on usage or configuration errors.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"ontdemux/internal/classify"
	"ontdemux/internal/cli"
	"ontdemux/internal/cmdutil"
	"ontdemux/internal/config"
	"ontdemux/internal/cutsite"
	"ontdemux/internal/fastq"
	"ontdemux/internal/output"
	"ontdemux/internal/paf"
	"ontdemux/internal/pipeline"
	"ontdemux/internal/sam"
	"ontdemux/internal/version"
	"ontdemux/internal/zio"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("ontdemux")
	fs.SetOutput(stderr)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Version {
		fmt.Fprintf(stdout, "ontdemux version %s\n", version.Version)
		return 0
	}
	if opts.ConfigFile != "" {
		cf, err := config.Load(opts.ConfigFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		if err := cf.Apply(&opts); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	sites, err := loadSites(opts.CutFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if err := sites.ValidateStrategy(opts.Select); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	groups, dropped, err := loadGroups(opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if dropped > 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "dropped %d read(s) longer than their target chromosome", dropped)
	}
	cmdutil.Infof(stderr, opts.Quiet, "classifying %d read(s)", len(groups))

	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	report, reportName, err := zio.Create(opts.Prefix+"_res.txt", opts.Compress)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	rows, werr := output.StartReportWriter(report, true, threads*4)

	eng := classify.New(classify.Config{
		MapQThreshold: opts.MapQ,
		MaxDistance:   opts.MaxDistance,
		Margin:        opts.Margin,
		MaxUnmatched:  opts.MaxUnmatched,
		Strategy:      opts.Strategy,
	}, sites)

	var results map[string]classify.Classification
	if opts.FastqFile != "" {
		results = make(map[string]classify.Classification, len(groups))
	}
	perr := pipeline.ForEachClassification(ctx, pipeline.Config{Threads: threads}, groups, eng, func(c classify.Classification) error {
		if results != nil {
			results[c.ReadID] = c
		}
		select {
		case rows <- c:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if perr != nil {
		close(rows)
		<-werr
		_ = report.Close()
		fmt.Fprintln(stderr, perr)
		return 1
	}

	var ferr error
	if opts.FastqFile != "" {
		ferr = demuxFastq(opts, sites, results, rows)
	}

	close(rows)
	if err := <-werr; err != nil && !output.IsBrokenPipe(err) {
		fmt.Fprintln(stderr, err)
		_ = report.Close()
		return 1
	}
	if err := report.Close(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if ferr != nil {
		fmt.Fprintln(stderr, ferr)
		return 1
	}

	cmdutil.Infof(stderr, opts.Quiet, "wrote report to %s", reportName)
	return 0
}

func loadSites(path string) (*cutsite.Index, error) {
	rc, err := zio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cut-site file: %w", err)
	}
	defer func() { _ = rc.Close() }()
	sites, err := cutsite.Load(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sites, nil
}

// loadGroups buffers all alignment records grouped by read id. Grouping
// needs the complete record set per read before selection can start.
func loadGroups(opts cli.Options) ([]classify.Group, int, error) {
	in, err := zio.Open(opts.PafFile)
	if err != nil {
		return nil, 0, fmt.Errorf("opening alignment input: %w", err)
	}
	defer func() { _ = in.Close() }()

	grouper := classify.NewGrouper()
	if opts.SAM {
		recs, err := sam.ReadRecords(in)
		if err != nil {
			return nil, 0, err
		}
		for _, rec := range recs {
			grouper.Add(rec)
		}
	} else {
		r := paf.NewReader(in)
		for {
			rec, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, 0, fmt.Errorf("%s: %w", opts.PafFile, err)
			}
			grouper.Add(rec)
		}
	}
	return grouper.Groups(), grouper.Dropped(), nil
}

// demuxFastq partitions the FASTQ file across the per-channel outputs.
// Reads absent from the alignment input are reported as Unmapped.
func demuxFastq(opts cli.Options, sites *cutsite.Index, results map[string]classify.Classification, rows chan<- classify.Classification) error {
	rc, bar, err := fastq.OpenInput(opts.FastqFile, opts.Progress)
	if err != nil {
		return fmt.Errorf("opening FASTQ input: %w", err)
	}
	defer func() { _ = rc.Close() }()

	demux, err := fastq.OpenDemux(opts.Prefix, sites.SiteNames(), opts.Compress, opts.MatchedOnly)
	if err != nil {
		return err
	}

	fr := fastq.NewReader(rc)
	for {
		rec, err := fr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = demux.Close()
			return fmt.Errorf("%s: %w", opts.FastqFile, err)
		}
		id := rec.ID()
		c, ok := results[id]
		if !ok {
			c = classify.Classification{ReadID: id, Status: classify.Unmapped, ReadLen: len(rec.Seq)}
			rows <- c
		}
		if err := demux.Route(output.ChannelKey(c), rec); err != nil {
			_ = demux.Close()
			return err
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return demux.Close()
}
