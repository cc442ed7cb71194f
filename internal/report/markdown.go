package report

import (
	"fmt"
	"strings"
)

const defaultPrecision = 4

// Markdown renders a compact report. precision is the number of significant
// digits printed per value; values <= 0 fall back to 4.
func (r *Report) Markdown(precision int) string {
	if precision <= 0 {
		precision = defaultPrecision
	}
	num := func(v float64) string { return fmt.Sprintf("%.*g", precision, v) }

	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", safeVal(r.Name)))
	}
	b.WriteString(fmt.Sprintf("Patients: %d\n", r.Patients))
	b.WriteString(fmt.Sprintf("Days: %d\n", r.Days))

	if r.Daily != nil {
		b.WriteString("\n[DAILY STATISTICS]\n")
		if r.Days == 0 {
			b.WriteString("(no days)\n")
		} else {
			b.WriteString("| day | mean | max | min | std |\n")
			b.WriteString("| --- | --- | --- | --- | --- |\n")
			for d := 0; d < r.Days; d++ {
				b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n", d,
					num(r.Daily.Mean[d]), num(r.Daily.Max[d]), num(r.Daily.Min[d]), num(r.Daily.StdDev[d])))
			}
		}
	}

	if th := r.Threshold; th != nil {
		b.WriteString("\n[THRESHOLD CHECK]\n")
		b.WriteString(fmt.Sprintf("Patient: %d\n", th.Patient))
		b.WriteString(fmt.Sprintf("Threshold: %s\n", num(th.Threshold)))
		b.WriteString(fmt.Sprintf("Days above: %d/%d\n", th.Count, len(th.Above)))
		if len(th.Above) > 0 {
			b.WriteString("| day | value | above |\n")
			b.WriteString("| --- | --- | --- |\n")
			for d, a := range th.Above {
				mark := "no"
				if a {
					mark = "yes"
				}
				b.WriteString(fmt.Sprintf("| %d | %s | %s |\n", d, num(th.Values[d]), mark))
			}
		}
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
