package cli

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"ontdemux/internal/classify"
)

func parse(t *testing.T, argv ...string) (Options, error) {
	t.Helper()
	fs := NewFlagSet("ontdemux")
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, argv)
}

func TestParseArgsDefaults(t *testing.T) {
	opt, err := parse(t, "-cut-file", "cuts.tsv")
	require.NoError(t, err)
	require.Equal(t, "cuts.tsv", opt.CutFile)
	require.Equal(t, "-", opt.PafFile)
	require.Equal(t, classify.SelectStart, opt.Strategy)
	require.Equal(t, 10, opt.MapQ)
	require.Equal(t, 100, opt.MaxDistance)
	require.Equal(t, 10, opt.Margin)
	require.Equal(t, 200, opt.MaxUnmatched)
	require.Equal(t, DefaultPrefix, opt.Prefix)
	require.False(t, opt.Compress)
	require.Equal(t, 0, opt.Threads)
}

func TestParseArgsPositionalPAF(t *testing.T) {
	opt, err := parse(t, "-cut-file", "cuts.tsv", "aln.paf")
	require.NoError(t, err)
	require.Equal(t, "aln.paf", opt.PafFile)

	_, err = parse(t, "-cut-file", "cuts.tsv", "a.paf", "b.paf")
	require.Error(t, err)
}

func TestParseArgsExplicitTracking(t *testing.T) {
	opt, err := parse(t, "-cut-file", "cuts.tsv", "-margin", "25", "-compress")
	require.NoError(t, err)
	require.True(t, opt.Explicit["margin"])
	require.True(t, opt.Explicit["compress"])
	require.False(t, opt.Explicit["max-distance"])
}

func TestParseArgsStrategies(t *testing.T) {
	for sel, want := range map[string]classify.Strategy{
		"start":  classify.SelectStart,
		"both":   classify.SelectBoth,
		"either": classify.SelectEither,
		"xor":    classify.SelectXor,
	} {
		opt, err := parse(t, "-cut-file", "c.tsv", "-select", sel)
		require.NoError(t, err, sel)
		require.Equal(t, want, opt.Strategy, sel)
	}
	_, err := parse(t, "-cut-file", "c.tsv", "-select", "bogus")
	require.Error(t, err)
}

func TestParseArgsValidation(t *testing.T) {
	for name, argv := range map[string][]string{
		"missing cut file": {},
		"negative mapq":    {"-cut-file", "c.tsv", "-mapq-threshold", "-1"},
		"negative margin":  {"-cut-file", "c.tsv", "-margin", "-5"},
		"negative threads": {"-cut-file", "c.tsv", "-threads", "-2"},
	} {
		_, err := parse(t, argv...)
		require.Error(t, err, name)
	}
}

func TestParseArgsHelpAndVersion(t *testing.T) {
	_, err := parse(t, "-h")
	require.ErrorIs(t, err, flag.ErrHelp)

	opt, err := parse(t, "-version")
	require.NoError(t, err)
	require.True(t, opt.Version)
}
