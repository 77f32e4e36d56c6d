package capture

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one fully parsed sample: LED duty cycle (0-100 percent) and raw
// ADC count at a given time offset into the capture window.
type Record struct {
	Time      float64
	Intensity int
	ADCValue  int
}

// Dataset is the ordered sequence of records derived from one capture,
// consumed read-only by the CSV exporter and the chart renderer.
type Dataset []Record

// Times returns the time column in record order.
func (ds Dataset) Times() []float64 {
	ts := make([]float64, len(ds))
	for i, r := range ds {
		ts[i] = r.Time
	}
	return ts
}

// Intensities returns the duty-cycle column in record order.
func (ds Dataset) Intensities() []int {
	vs := make([]int, len(ds))
	for i, r := range ds {
		vs[i] = r.Intensity
	}
	return vs
}

// ADCValues returns the ADC column in record order.
func (ds Dataset) ADCValues() []int {
	vs := make([]int, len(ds))
	for i, r := range ds {
		vs[i] = r.ADCValue
	}
	return vs
}

// Parse derives a Dataset from a capture buffer. The first and last lines
// are dropped unconditionally: the capture window opens and closes on the
// wall clock, so both edges are assumed to cut a record mid-transmission.
// Timestamps stay paired with their lines through the trim, so a stray
// newline inside one read can never shift the time column.
//
// Lines with fewer than two fields are skipped. A field that is present
// but not an integer aborts the parse: malformed numeric data means the
// stream itself is corrupt, not just one record.
//
// Parse is pure; calling it twice on the same buffer yields equal datasets.
func Parse(buf *Buffer) (Dataset, error) {
	if len(buf.Lines) < 3 {
		return Dataset{}, nil
	}
	body := buf.Lines[1 : len(buf.Lines)-1]

	ds := make(Dataset, 0, len(body))
	for i, tl := range body {
		fields := strings.Fields(tl.Raw)
		if len(fields) < 2 {
			continue
		}
		duty, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: duty cycle %q: %w", i+1, fields[0], err)
		}
		adc, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: adc value %q: %w", i+1, fields[1], err)
		}
		ds = append(ds, Record{Time: tl.Elapsed, Intensity: duty, ADCValue: adc})
	}
	return ds, nil
}
