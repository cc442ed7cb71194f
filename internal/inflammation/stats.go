package inflammation

import "math"

// DailyMean returns the arithmetic mean of each day across all patients.
func DailyMean(t *Table) ([]float64, error) {
	sums, err := columnReduce(t, 0, func(acc, v float64) float64 { return acc + v })
	if err != nil {
		return nil, err
	}
	n := float64(t.patients)
	for j := range sums {
		sums[j] /= n
	}
	return sums, nil
}

// DailyMax returns the largest value of each day across all patients.
func DailyMax(t *Table) ([]float64, error) {
	return columnReduce(t, math.Inf(-1), math.Max)
}

// DailyMin returns the smallest value of each day across all patients.
func DailyMin(t *Table) ([]float64, error) {
	return columnReduce(t, math.Inf(1), math.Min)
}

// DailyStdDev returns the population standard deviation (divisor R) of each
// day across all patients.
func DailyStdDev(t *Table) ([]float64, error) {
	means, err := DailyMean(t)
	if err != nil {
		return nil, err
	}
	out := make([]float64, t.days)
	for i := 0; i < t.patients; i++ {
		for j, v := range t.row(i) {
			d := v - means[j]
			out[j] += d * d
		}
	}
	n := float64(t.patients)
	for j := range out {
		out[j] = math.Sqrt(out[j] / n)
	}
	return out, nil
}

// columnReduce folds every column top to bottom starting from init.
func columnReduce(t *Table, init float64, fn func(acc, v float64) float64) ([]float64, error) {
	if t.Patients() == 0 {
		return nil, ErrEmptyInput
	}
	out := make([]float64, t.days)
	for j := range out {
		out[j] = init
	}
	for i := 0; i < t.patients; i++ {
		for j, v := range t.row(i) {
			out[j] = fn(out[j], v)
		}
	}
	return out, nil
}
