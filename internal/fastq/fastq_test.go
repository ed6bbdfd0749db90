package fastq

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordID(t *testing.T) {
	cases := map[string]string{
		"@read1":                       "read1",
		"@read1 runid=abc ch=1":        "read1",
		"@read1/1":                     "read1",
		"@read1/2 extra":               "read1",
		"@read1/3":                     "read1/3",
		"@a1b2-c3d4\tcomment":          "a1b2-c3d4",
		"@read/with/slashes":           "read/with/slashes",
		"@read/with/slashes/1 descr.":  "read/with/slashes",
	}
	for head, want := range cases {
		require.Equal(t, want, Record{Head: head}.ID(), head)
	}
}

func TestReaderRoundTrip(t *testing.T) {
	in := "@read1 runid=abc\nACGT\n+\nIIII\n@read2\nGG\n+ read2\n!!\n"
	r := NewReader(strings.NewReader(in))

	var sb strings.Builder
	var n int
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.NoError(t, rec.Write(&sb))
		n++
	}
	require.Equal(t, 2, n)
	// The '+' separator is not preserved verbatim; everything else is.
	require.Equal(t, "@read1 runid=abc\nACGT\n+\nIIII\n@read2\nGG\n+\n!!\n", sb.String())
}

func TestReaderRejectsMalformedRecords(t *testing.T) {
	for name, in := range map[string]string{
		"missing @":   "read1\nACGT\n+\nIIII\n",
		"missing +":   "@read1\nACGT\nIIII\n!!\n",
		"length skew": "@read1\nACGT\n+\nIII\n",
		"truncated":   "@read1\nACGT\n+\n",
	} {
		r := NewReader(strings.NewReader(in))
		_, err := r.Next()
		require.Error(t, err, name)
	}
}

func TestDemuxRoutesToChannelFiles(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "out")
	d, err := OpenDemux(prefix, []string{"mt_1kb", "mt_8kb"}, false, false)
	require.NoError(t, err)

	require.NoError(t, d.Route("mt_1kb", Record{Head: "@r1", Seq: "AC", Qual: "II"}))
	require.NoError(t, d.Route("unmapped", Record{Head: "@r2", Seq: "GG", Qual: "!!"}))
	require.NoError(t, d.Close())

	b, err := os.ReadFile(prefix + "_mt_1kb.fastq")
	require.NoError(t, err)
	require.Equal(t, "@r1\nAC\n+\nII\n", string(b))

	b, err = os.ReadFile(prefix + "_unmapped.fastq")
	require.NoError(t, err)
	require.Equal(t, "@r2\nGG\n+\n!!\n", string(b))

	// Site channels with no reads still get an (empty) file.
	b, err = os.ReadFile(prefix + "_mt_8kb.fastq")
	require.NoError(t, err)
	require.Empty(t, b)
}

func TestDemuxMatchedOnly(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "out")
	d, err := OpenDemux(prefix, []string{"mt_1kb"}, false, true)
	require.NoError(t, err)

	// Reserved channels are silently dropped, unknown sites are an error.
	require.NoError(t, d.Route("unmapped", Record{Head: "@r1", Seq: "A", Qual: "I"}))
	require.NoError(t, d.Route("low_mapq", Record{Head: "@r2", Seq: "A", Qual: "I"}))
	require.Error(t, d.Route("no_such_site", Record{Head: "@r3", Seq: "A", Qual: "I"}))
	require.NoError(t, d.Close())

	_, err = os.Stat(prefix + "_unmapped.fastq")
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(prefix + "_mt_1kb.fastq")
	require.NoError(t, err)
}

func TestDemuxCompressedNames(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "out")
	d, err := OpenDemux(prefix, []string{"mt_1kb"}, true, true)
	require.NoError(t, err)
	require.NoError(t, d.Close())

	_, err = os.Stat(prefix + "_mt_1kb.fastq.gz")
	require.NoError(t, err)
}
