package paf

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const goodLine = "read1\t1000\t0\t990\t+\tchrM\t16000\t1010\t2000\t950\t990\t60"

func readAll(t *testing.T, in string) ([]Record, error) {
	t.Helper()
	r := NewReader(strings.NewReader(in))
	var out []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

func TestReaderParsesRecord(t *testing.T) {
	recs, err := readAll(t, goodLine+"\n")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, Record{
		ReadID: "read1", ReadLen: 1000, QStart: 0, QEnd: 990, Strand: '+',
		Target: "chrM", TLen: 16000, TStart: 1010, TEnd: 2000, Matches: 950, MapQ: 60,
	}, recs[0])
	require.True(t, recs[0].Mapped())
	require.Equal(t, 990, recs[0].Span())
}

func TestReaderSkipsBlankAndComments(t *testing.T) {
	recs, err := readAll(t, "# comment\n\n"+goodLine+"\n")
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestReaderExtraColumnsAllowed(t *testing.T) {
	recs, err := readAll(t, goodLine+"\ttp:A:P\tcm:i:100\n")
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestReaderUnmappedRecord(t *testing.T) {
	recs, err := readAll(t, "read2\t500\t0\t0\t*\t*\t0\t0\t0\t0\t0\t0\n")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.False(t, recs[0].Mapped())
	require.Equal(t, 500, recs[0].ReadLen)
}

func TestReaderRejectsMalformedLines(t *testing.T) {
	for name, in := range map[string]string{
		"short":      "read1\t1000\t0\t990\t+\tchrM\n",
		"bad strand": strings.Replace(goodLine, "\t+\t", "\tx\t", 1) + "\n",
		"bad int":    strings.Replace(goodLine, "\t16000\t", "\tNaN\t", 1) + "\n",
	} {
		_, err := readAll(t, in)
		require.Error(t, err, name)
		require.Contains(t, err.Error(), "line 1", name)
	}
}
