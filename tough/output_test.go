package tough

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `
 @@@@@ SIMULATION RUN @@@@@

          OUTPUT DATA AFTER (   5,  6)-2-TIME STEPS    THE TIME IS  0.115741E+00 DAYS

 TOTAL TIME     KCYC  ITER  ITERC  KON
  0.100000E+05     5     6     34    2

 ELEM.  INDEX      P          T         SG
                 (PA)      (DEG-C)     (-)
 00000      1  0.10133E+06  0.25000E+02  0.00000E+00
 00001      2  0.10250E+06  0.26000E+02  0.10000E+00

          OUTPUT DATA AFTER (  10, 12)-2-TIME STEPS    THE TIME IS  0.231481E+00 DAYS

 TOTAL TIME     KCYC  ITER  ITERC  KON
  0.200000E+05    10    12     68    2

 ELEM.  INDEX      P          T         SG
                 (PA)      (DEG-C)     (-)
 00000      1  0.10140E+06  0.25400E+02  0.00000E+00
 00001      2  0.10260E+06  0.26500E+02  0.12000E+00
`

func TestReadOutput(t *testing.T) {
	steps, err := ReadOutput(strings.NewReader(sampleOutput))
	require.NoError(t, err)
	require.Len(t, steps, 2)

	s := steps[0]
	assert.InDelta(t, 1.0e4, s.Time, 1e-6)
	assert.Equal(t, []string{"P", "T", "SG"}, s.Columns)
	assert.Equal(t, []string{"00000", "00001"}, s.Labels)
	require.Len(t, s.Data["P"], 2)
	assert.InDelta(t, 1.0133e5, s.Data["P"][0], 1e-1)
	assert.InDelta(t, 25.0, s.Data["T"][0], 1e-6)
	assert.InDelta(t, 0.1, s.Data["SG"][1], 1e-9)

	s2 := steps[1]
	assert.InDelta(t, 2.0e4, s2.Time, 1e-6)
	assert.InDelta(t, 26.5, s2.Data["T"][1], 1e-6)
}

func TestReadOutputSkipsBannerLines(t *testing.T) {
	// A banner injected mid-table must not abort the parse
	corrupted := strings.Replace(sampleOutput,
		" 00001      2  0.10250E+06  0.26000E+02  0.10000E+00",
		" MESH HAS 2 ELEMENTS\n 00001      2  0.10250E+06  0.26000E+02  0.10000E+00", 1)
	steps, err := ReadOutput(strings.NewReader(corrupted))
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, []string{"00000", "00001"}, steps[0].Labels)
}

func TestReadOutputBannerMentionsTotalTime(t *testing.T) {
	// Solver summaries mention TOTAL TIME without opening a table; they must
	// be skipped without losing the real tables
	banner := " SUMMARY: TOTAL TIME SPENT IN LINEAR SOLVER\n (SEE SEPARATE REPORT)\n"
	corrupted := strings.Replace(sampleOutput,
		" TOTAL TIME     KCYC", banner+" TOTAL TIME     KCYC", 1)

	steps, err := ReadOutput(strings.NewReader(corrupted))
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.InDelta(t, 1.0e4, steps[0].Time, 1e-6)
	assert.InDelta(t, 2.0e4, steps[1].Time, 1e-6)
}

func TestReadOutputMarkerWithoutTime(t *testing.T) {
	// A lone marker with no numeric follow-up yields no table and no error
	bad := `
 TOTAL TIME     KCYC
  not-a-number    5
`
	steps, err := ReadOutput(strings.NewReader(bad))
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestReadOutputEmpty(t *testing.T) {
	steps, err := ReadOutput(strings.NewReader("no tables here\n"))
	require.NoError(t, err)
	assert.Empty(t, steps)
}
