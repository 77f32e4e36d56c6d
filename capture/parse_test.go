package capture

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func bufferOf(lines []string, stamps []float64) *Buffer {
	buf := &Buffer{}
	for i, l := range lines {
		buf.Lines = append(buf.Lines, TimestampedLine{Raw: l, Elapsed: stamps[i]})
	}
	return buf
}

func TestParse_TrimsBoundarySamples(t *testing.T) {
	buf := bufferOf(
		[]string{"1 100\n", "2 150\n", "3 200\n", "4 250\n"},
		[]float64{0.0, 0.1, 0.2, 0.3},
	)

	ds, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, Dataset{
		{Time: 0.1, Intensity: 2, ADCValue: 150},
		{Time: 0.2, Intensity: 3, ADCValue: 200},
	}, ds)
}

func TestParse_TooFewLines(t *testing.T) {
	cases := []*Buffer{
		{},
		bufferOf([]string{"1 100\n"}, []float64{0.0}),
		bufferOf([]string{"1 100\n", "2 150\n"}, []float64{0.0, 0.1}),
	}
	for _, buf := range cases {
		ds, err := Parse(buf)
		require.NoError(t, err)
		require.Empty(t, ds)
	}
}

func TestParse_SkipsShortLine(t *testing.T) {
	buf := bufferOf(
		[]string{"1 100\n", "2 150\n", "5\n", "3 200\n", "4 250\n"},
		[]float64{0.0, 0.1, 0.2, 0.3, 0.4},
	)

	ds, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, Dataset{
		{Time: 0.1, Intensity: 2, ADCValue: 150},
		{Time: 0.3, Intensity: 3, ADCValue: 200},
	}, ds)
}

func TestParse_NonNumericTokenFatal(t *testing.T) {
	buf := bufferOf(
		[]string{"1 100\n", "a b\n", "3 200\n"},
		[]float64{0.0, 0.1, 0.2},
	)

	ds, err := Parse(buf)
	require.Error(t, err)
	require.Nil(t, ds)
}

func TestParse_Idempotent(t *testing.T) {
	buf := bufferOf(
		[]string{"0 90\n", "10 300\n", "20 512\n", "30 700\n", "40 880\n"},
		[]float64{0.0, 0.05, 0.1, 0.15, 0.2},
	)

	first, err := Parse(buf)
	require.NoError(t, err)
	second, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDataset_Columns(t *testing.T) {
	ds := Dataset{
		{Time: 0.1, Intensity: 2, ADCValue: 150},
		{Time: 0.2, Intensity: 3, ADCValue: 200},
	}
	require.Equal(t, []float64{0.1, 0.2}, ds.Times())
	require.Equal(t, []int{2, 3}, ds.Intensities())
	require.Equal(t, []int{150, 200}, ds.ADCValues())
}
