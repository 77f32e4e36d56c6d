package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luhtfiimanal/photosweep/capture"
)

func TestWriteCSV_EmptyDataset(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, capture.Dataset{}))
	require.Equal(t, "Index,Time,Intensity,ADC Value\n", sb.String())
}

func TestWriteCSV_Rows(t *testing.T) {
	ds := capture.Dataset{
		{Time: 0.1, Intensity: 2, ADCValue: 150},
		{Time: 0.25, Intensity: 3, ADCValue: 200},
	}

	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, ds))
	require.Equal(t,
		"Index,Time,Intensity,ADC Value\n"+
			"0,0.1,2,150\n"+
			"1,0.25,3,200\n",
		sb.String())
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")

	require.NoError(t, WriteFile(path, capture.Dataset{
		{Time: 0.1, Intensity: 1, ADCValue: 100},
		{Time: 0.2, Intensity: 2, ADCValue: 200},
	}))
	require.NoError(t, WriteFile(path, capture.Dataset{
		{Time: 0.3, Intensity: 9, ADCValue: 900},
	}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"Index,Time,Intensity,ADC Value\n"+
			"0,0.3,9,900\n",
		string(got))
}
