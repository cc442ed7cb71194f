package inflammation

// DailyAboveThreshold reports, for each day, whether the given patient's
// value is strictly greater than threshold.
func DailyAboveThreshold(t *Table, patient int, threshold float64) ([]bool, error) {
	if err := t.checkPatient(patient); err != nil {
		return nil, err
	}
	row := t.row(patient)
	out := make([]bool, len(row))
	for j, v := range row {
		out[j] = v > threshold
	}
	return out, nil
}
