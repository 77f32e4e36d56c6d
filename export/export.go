// Package export writes capture datasets to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/luhtfiimanal/photosweep/capture"
)

// Header is the CSV column layout, one row per record in dataset order.
var Header = []string{"Index", "Time", "Intensity", "ADC Value"}

// WriteCSV writes ds to w. The header row is always written, so an empty
// dataset produces a header-only file.
func WriteCSV(w io.Writer, ds capture.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range ds {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(r.Time, 'f', -1, 64),
			strconv.Itoa(r.Intensity),
			strconv.Itoa(r.ADCValue),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes ds to path as CSV, overwriting any existing file.
func WriteFile(path string, ds capture.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
