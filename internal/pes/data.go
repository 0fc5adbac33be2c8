package pes

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// ReadSamples loads bond-length/energy samples from a two-column CSV file
// (bond length in angstrom, energy in eV). A non-numeric first row is
// treated as a header and skipped.
func ReadSamples(path string) (r, energy []float64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	for i, record := range records {
		if len(record) < 2 {
			return nil, nil, fmt.Errorf("pes: row %d has %d columns, want 2", i+1, len(record))
		}
		x, errX := strconv.ParseFloat(record[0], 64)
		y, errY := strconv.ParseFloat(record[1], 64)
		if errX != nil || errY != nil {
			if i == 0 {
				continue // header
			}
			return nil, nil, fmt.Errorf("pes: bad sample on row %d: %v", i+1, record)
		}
		r = append(r, x)
		energy = append(energy, y)
	}

	if len(r) == 0 {
		return nil, nil, fmt.Errorf("pes: no samples in %s", path)
	}
	return r, energy, nil
}
