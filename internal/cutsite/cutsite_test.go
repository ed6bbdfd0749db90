package cutsite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func load(t *testing.T, in string) (*Index, error) {
	t.Helper()
	return Load(strings.NewReader(in))
}

func TestLoadCatalogue(t *testing.T) {
	idx, err := load(t, strings.Join([]string{
		"# expected cuts",
		"chrM\t1006\tmt_1kb\tSampleA\ttrue",
		"chrM\t8000\tmt_8kb\tSampleB\ttrue",
		"chr1\t500\tnuclear\tSampleA\tfalse",
		"",
	}, "\n"))
	require.NoError(t, err)

	require.Equal(t, []string{"chrM", "chr1"}, idx.Chroms())
	require.Equal(t, []string{"mt_1kb", "mt_8kb", "nuclear"}, idx.SiteNames())

	m := idx.Chrom("chrM")
	require.NotNil(t, m)
	require.True(t, m.Circular)
	require.Len(t, m.Sites, 2)
	require.Equal(t, 1006, m.Sites[0].Pos)
	require.Equal(t, "SampleA", m.Sites[0].Sample)

	require.False(t, idx.Chrom("chr1").Circular)
	require.Nil(t, idx.Chrom("chrX"))
}

func TestLoadCircularFlagSpellings(t *testing.T) {
	idx, err := load(t, "a\t10\ts1\tx\tYES\nb\t10\ts2\tx\t0\n")
	require.NoError(t, err)
	require.True(t, idx.Chrom("a").Circular)
	require.False(t, idx.Chrom("b").Circular)
}

func TestLoadRejectsInconsistentCircularFlag(t *testing.T) {
	_, err := load(t, "chrM\t100\ta\tx\ttrue\nchrM\t200\tb\tx\tfalse\n")
	require.Error(t, err)
	require.Contains(t, err.Error(), "inconsistent circular flag")
}

func TestLoadRejectsReservedNames(t *testing.T) {
	for _, name := range []string{Unmapped, Unmatched, LowMapQ} {
		_, err := load(t, "chrM\t100\t"+name+"\tx\ttrue\n")
		require.Error(t, err, name)
		require.Contains(t, err.Error(), "reserved")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	for name, in := range map[string]string{
		"short line":   "chrM\t100\tsite\n",
		"bad position": "chrM\tzero\tsite\tx\ttrue\n",
		"zero pos":     "chrM\t0\tsite\tx\ttrue\n",
		"bad flag":     "chrM\t100\tsite\tx\tmaybe\n",
		"empty":        "\n# only comments\n",
	} {
		_, err := load(t, in)
		require.Error(t, err, name)
	}
}

func TestValidateStrategy(t *testing.T) {
	circ, err := load(t, "chrM\t100\ta\tx\ttrue\n")
	require.NoError(t, err)
	require.NoError(t, circ.ValidateStrategy("both"))
	require.NoError(t, circ.ValidateStrategy("start"))

	mixed, err := load(t, "chrM\t100\ta\tx\ttrue\nchr1\t100\tb\tx\tfalse\n")
	require.NoError(t, err)
	require.Error(t, mixed.ValidateStrategy("both"))
	require.NoError(t, mixed.ValidateStrategy("either"))
}
