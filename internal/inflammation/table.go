// Package inflammation holds the inflammation table and the per-day
// statistics computed over it.
//
// A Table is a rectangular matrix of float64 values where each row is one
// patient and each column is one day. Tables are never mutated after
// construction; every accessor returns a copy, so a Table may be shared
// freely between goroutines.
package inflammation

import "fmt"

// Table is an immutable patients × days matrix stored row-major.
type Table struct {
	patients int
	days     int
	data     []float64
}

// NewTable copies rows into a new Table. All rows must have the same length.
// An empty input yields a 0×0 table.
func NewTable(rows [][]float64) (*Table, error) {
	if len(rows) == 0 {
		return &Table{}, nil
	}
	days := len(rows[0])
	data := make([]float64, 0, len(rows)*days)
	for i, row := range rows {
		if len(row) != days {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), days, ErrRaggedRow)
		}
		data = append(data, row...)
	}
	return &Table{patients: len(rows), days: days, data: data}, nil
}

// Patients returns the number of rows. A nil table has zero patients.
func (t *Table) Patients() int {
	if t == nil {
		return 0
	}
	return t.patients
}

// Days returns the number of columns. A nil table has zero days.
func (t *Table) Days() int {
	if t == nil {
		return 0
	}
	return t.days
}

// At returns the value for one patient on one day.
func (t *Table) At(patient, day int) (float64, error) {
	if err := t.checkPatient(patient); err != nil {
		return 0, err
	}
	if day < 0 || day >= t.days {
		return 0, &IndexOutOfRangeError{Axis: "day", Index: day, Len: t.days}
	}
	return t.data[patient*t.days+day], nil
}

// Row returns a copy of one patient's daily series.
func (t *Table) Row(patient int) ([]float64, error) {
	if err := t.checkPatient(patient); err != nil {
		return nil, err
	}
	out := make([]float64, t.days)
	copy(out, t.row(patient))
	return out, nil
}

// Column returns a copy of every patient's value for one day.
func (t *Table) Column(day int) ([]float64, error) {
	if day < 0 || day >= t.Days() {
		return nil, &IndexOutOfRangeError{Axis: "day", Index: day, Len: t.Days()}
	}
	out := make([]float64, t.patients)
	for i := range out {
		out[i] = t.data[i*t.days+day]
	}
	return out, nil
}

// Rows returns a deep copy of the table as a slice of rows.
func (t *Table) Rows() [][]float64 {
	n := t.Patients()
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, t.days)
		copy(out[i], t.row(i))
	}
	return out
}

// row aliases internal storage; callers must not retain or modify it.
func (t *Table) row(patient int) []float64 {
	base := patient * t.days
	return t.data[base : base+t.days]
}

func (t *Table) checkPatient(patient int) error {
	if patient < 0 || patient >= t.Patients() {
		return &IndexOutOfRangeError{Axis: "patient", Index: patient, Len: t.Patients()}
	}
	return nil
}
