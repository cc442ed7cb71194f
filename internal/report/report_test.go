package report_test

import (
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
	"github.com/KaramelBytes/inflammation-cli/internal/report"
)

func sampleTable(t *testing.T) *inflammation.Table {
	t.Helper()
	tbl, err := inflammation.NewTable([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	return tbl
}

func TestBuild_CarriesDailyAggregates(t *testing.T) {
	rep, err := report.Build("inflammation-01.csv", sampleTable(t))
	require.NoError(t, err)

	_, err = uuid.Parse(rep.ID)
	assert.NoError(t, err, "report id should be a uuid")
	assert.Equal(t, 3, rep.Patients)
	assert.Equal(t, 2, rep.Days)
	require.NotNil(t, rep.Daily)
	assert.Equal(t, []float64{3, 4}, rep.Daily.Mean)
	assert.Equal(t, []float64{5, 6}, rep.Daily.Max)
	assert.Equal(t, []float64{1, 2}, rep.Daily.Min)
	assert.InDelta(t, 1.63299, rep.Daily.StdDev[0], 1e-5)
	assert.Nil(t, rep.Threshold)
}

func TestBuild_EmptyTable(t *testing.T) {
	empty, err := inflammation.NewTable(nil)
	require.NoError(t, err)

	rep, err := report.Build("empty.csv", empty)
	assert.Nil(t, rep)
	assert.True(t, errors.Is(err, inflammation.ErrEmptyInput))
}

func TestWithThreshold(t *testing.T) {
	tbl, err := inflammation.NewTable([][]float64{{1, 5}, {3, 2}})
	require.NoError(t, err)

	rep := report.New("t.csv", tbl)
	require.NoError(t, rep.WithThreshold(tbl, 0, 2))
	require.NotNil(t, rep.Threshold)
	assert.Equal(t, []bool{false, true}, rep.Threshold.Above)
	assert.Equal(t, []float64{1, 5}, rep.Threshold.Values)
	assert.Equal(t, 1, rep.Threshold.Count)

	err = rep.WithThreshold(tbl, 2, 2)
	assert.ErrorIs(t, err, inflammation.ErrIndexOutOfRange)
}

func TestMarkdown(t *testing.T) {
	tbl := sampleTable(t)
	rep, err := report.Build("inflammation-01.csv", tbl)
	require.NoError(t, err)
	require.NoError(t, rep.WithThreshold(tbl, 2, 5.5))

	md := rep.Markdown(4)
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: inflammation-01.csv",
		"Patients: 3",
		"Days: 2",
		"[DAILY STATISTICS]",
		"| 0 | 3 | 5 | 1 | 1.633 |",
		"| 1 | 4 | 6 | 2 | 1.633 |",
		"[THRESHOLD CHECK]",
		"Patient: 2",
		"Days above: 1/2",
		"| 0 | 5 | no |",
		"| 1 | 6 | yes |",
	} {
		assert.Contains(t, md, want)
	}
}

func TestRenderFormats(t *testing.T) {
	rep, err := report.Build("a.csv", sampleTable(t))
	require.NoError(t, err)

	b, err := rep.Render("json", 0)
	require.NoError(t, err)
	var fromJSON report.Report
	require.NoError(t, json.Unmarshal(b, &fromJSON))
	assert.Equal(t, rep.ID, fromJSON.ID)
	assert.Equal(t, rep.Daily.Mean, fromJSON.Daily.Mean)

	b, err = rep.Render("yml", 0)
	require.NoError(t, err)
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(b, &fromYAML))
	assert.Equal(t, "a.csv", fromYAML["name"])
	assert.Equal(t, 3, fromYAML["patients"])

	b, err = rep.Render("", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "[DATASET SUMMARY]"))

	_, err = rep.Render("xml", 0)
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".md", report.Ext(report.FormatMarkdown))
	assert.Equal(t, ".json", report.Ext(report.FormatJSON))
	assert.Equal(t, ".yaml", report.Ext(report.FormatYAML))
}
