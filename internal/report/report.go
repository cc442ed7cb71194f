// Package report turns per-day inflammation statistics into a document that
// can be printed, written to disk, or attached to a study.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
)

// Supported output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// ErrUnknownFormat is returned by Render and ParseFormat for unsupported formats.
var ErrUnknownFormat = errors.New("unknown report format")

// Report is a per-day summary of one inflammation table.
type Report struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Patients    int              `json:"patients" yaml:"patients"`
	Days        int              `json:"days" yaml:"days"`
	Daily       *DailyStats      `json:"daily,omitempty" yaml:"daily,omitempty"`
	Threshold   *ThresholdResult `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// DailyStats holds the four aggregates, each indexed by day.
type DailyStats struct {
	Mean   []float64 `json:"mean" yaml:"mean"`
	Max    []float64 `json:"max" yaml:"max"`
	Min    []float64 `json:"min" yaml:"min"`
	StdDev []float64 `json:"stddev" yaml:"stddev"`
}

// ThresholdResult is the outcome of a threshold check for one patient.
type ThresholdResult struct {
	Patient   int       `json:"patient" yaml:"patient"`
	Threshold float64   `json:"threshold" yaml:"threshold"`
	Values    []float64 `json:"values" yaml:"values"`
	Above     []bool    `json:"above" yaml:"above"`
	Count     int       `json:"count" yaml:"count"`
}

// New returns an empty report describing t.
func New(name string, t *inflammation.Table) *Report {
	return &Report{
		ID:          uuid.NewString(),
		Name:        name,
		GeneratedAt: time.Now().UTC(),
		Patients:    t.Patients(),
		Days:        t.Days(),
	}
}

// Build creates a report carrying all four daily aggregates of t.
func Build(name string, t *inflammation.Table) (*Report, error) {
	r := New(name, t)
	if err := r.WithDaily(t); err != nil {
		return nil, err
	}
	return r, nil
}

// WithDaily computes and attaches the daily aggregates.
func (r *Report) WithDaily(t *inflammation.Table) error {
	var (
		ds  DailyStats
		err error
	)
	if ds.Mean, err = inflammation.DailyMean(t); err != nil {
		return fmt.Errorf("daily mean: %w", err)
	}
	if ds.Max, err = inflammation.DailyMax(t); err != nil {
		return fmt.Errorf("daily max: %w", err)
	}
	if ds.Min, err = inflammation.DailyMin(t); err != nil {
		return fmt.Errorf("daily min: %w", err)
	}
	if ds.StdDev, err = inflammation.DailyStdDev(t); err != nil {
		return fmt.Errorf("daily stddev: %w", err)
	}
	r.Daily = &ds
	return nil
}

// WithThreshold computes and attaches the threshold check for one patient.
func (r *Report) WithThreshold(t *inflammation.Table, patient int, threshold float64) error {
	above, err := inflammation.DailyAboveThreshold(t, patient, threshold)
	if err != nil {
		return fmt.Errorf("threshold check: %w", err)
	}
	values, err := t.Row(patient)
	if err != nil {
		return err
	}
	res := &ThresholdResult{Patient: patient, Threshold: threshold, Values: values, Above: above}
	for _, a := range above {
		if a {
			res.Count++
		}
	}
	r.Threshold = res
	return nil
}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s (use markdown|json|yaml)", ErrUnknownFormat, s)
	}
}

// Ext returns the file extension used when a report in format is saved.
func Ext(format string) string {
	switch format {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".md"
	}
}

// Render encodes the report in the requested format. precision applies to
// Markdown only; structured formats keep full float64 precision.
func (r *Report) Render(format string, precision int) ([]byte, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatJSON:
		return r.JSON()
	case FormatYAML:
		return r.YAML()
	default:
		return []byte(r.Markdown(precision)), nil
	}
}

// JSON encodes the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return append(b, '\n'), nil
}

// YAML encodes the report as YAML.
func (r *Report) YAML() ([]byte, error) {
	b, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return b, nil
}
