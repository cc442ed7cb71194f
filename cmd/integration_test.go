package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so Changed state does not
// leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd runs the root command with args and returns stdout and the error.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper to execute the root command with args and fail on error.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeData(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write data: %v", err)
	}
	return p
}

func TestCLI_StatsMarkdown(t *testing.T) {
	home := isolateHome(t)
	data := writeData(t, home, "inflammation-01.csv", "1,2\n3,4\n5,6\n")

	out := runCmd(t, "stats", data)
	for _, want := range []string{"[DATASET SUMMARY]", "Patients: 3", "| 0 | 3 | 5 | 1 | 1.633 |"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got: %s", want, out)
		}
	}
}

func TestCLI_StatsJSONToFile(t *testing.T) {
	home := isolateHome(t)
	data := writeData(t, home, "inflammation-01.csv", "1,2\n3,4\n5,6\n")
	outPath := filepath.Join(home, "report.json")

	runCmd(t, "stats", data, "--format", "json", "-o", outPath)
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var rep struct {
		Daily struct {
			Mean []float64 `json:"mean"`
			Max  []float64 `json:"max"`
		} `json:"daily"`
	}
	if err := json.Unmarshal(b, &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rep.Daily.Mean) != 2 || rep.Daily.Mean[0] != 3 || rep.Daily.Max[1] != 6 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestCLI_StatsFailsOnRaggedFile(t *testing.T) {
	home := isolateHome(t)
	data := writeData(t, home, "ragged.csv", "1,2,3\n4,5\n")

	if _, err := execCmd(t, "stats", data); err == nil {
		t.Fatalf("expected parse error for ragged rows")
	}
}

func TestCLI_StatsFailsOnEmptyFile(t *testing.T) {
	home := isolateHome(t)
	data := writeData(t, home, "empty.csv", "")

	_, err := execCmd(t, "stats", data)
	if err == nil || !strings.Contains(err.Error(), "no patients") {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestCLI_Threshold(t *testing.T) {
	home := isolateHome(t)
	data := writeData(t, home, "t.csv", "1,5\n3,2\n")

	out := runCmd(t, "threshold", data, "--patient", "0", "--threshold", "2")
	if !strings.Contains(out, "Days above: 1/2") || !strings.Contains(out, "| 1 | 5 | yes |") {
		t.Fatalf("unexpected threshold output: %s", out)
	}

	if _, err := execCmd(t, "threshold", data, "--patient", "2", "--threshold", "2"); err == nil {
		t.Fatalf("expected out-of-range error for patient index 2")
	}
	if _, err := execCmd(t, "threshold", data); err == nil {
		t.Fatalf("expected error when --patient is missing")
	}
}

func TestCLI_ThresholdDefaultsFromConfig(t *testing.T) {
	home := isolateHome(t)
	data := writeData(t, home, "t.csv", "1,5\n3,2\n")

	runCmd(t, "config", "set", "threshold", "4")
	out := runCmd(t, "threshold", data, "-p", "0")
	if !strings.Contains(out, "Threshold: 4") || !strings.Contains(out, "Days above: 1/2") {
		t.Fatalf("expected configured threshold to apply, got: %s", out)
	}
}

func TestCLI_Study_Init_Add_List_Stats(t *testing.T) {
	home := isolateHome(t)
	data := writeData(t, home, "inflammation-02.csv", "0,1,2,3\n4,5,6,7\n8,9,10,11\n")

	runCmd(t, "init", "trial", "-d", "integration test")
	if _, err := execCmd(t, "init", "trial"); err == nil {
		t.Fatalf("expected second init to refuse")
	}
	added := runCmd(t, "add", "-s", "trial", data, "--desc", "baseline")
	if !strings.Contains(added, "3 patients × 4 days") {
		t.Fatalf("unexpected add output: %s", added)
	}

	if out := runCmd(t, "list", "--studies"); !strings.Contains(out, "- trial") {
		t.Fatalf("study missing from list: %s", out)
	}
	if out := runCmd(t, "list", "--datasets", "-s", "trial"); !strings.Contains(out, "inflammation-02.csv [3×4] (baseline)") {
		t.Fatalf("dataset missing from list: %s", out)
	}

	runCmd(t, "stats", "-s", "trial", "inflammation-02.csv")
	runCmd(t, "stats", "-s", "trial", "inflammation-02.csv", "-f", "yaml")
	runCmd(t, "threshold", "-s", "trial", "inflammation-02.csv", "-p", "1", "-t", "5")

	dir, err := resolveStudyDir("trial")
	if err != nil {
		t.Fatalf("resolve study: %v", err)
	}
	for _, name := range []string{"inflammation-02.stats.md", "inflammation-02.stats.yaml", "inflammation-02.threshold.md"} {
		if _, err := os.Stat(filepath.Join(dir, "reports", name)); err != nil {
			t.Fatalf("missing report %s: %v", name, err)
		}
	}

	if _, err := execCmd(t, "stats", "-s", "trial", "missing.csv"); err == nil {
		t.Fatalf("expected unknown dataset error")
	}
}

func TestCLI_StudyReportRemovedWhenSaveFails(t *testing.T) {
	home := isolateHome(t)
	data := writeData(t, home, "inflammation-03.csv", "1,2\n3,4\n")

	runCmd(t, "init", "trial")
	runCmd(t, "add", "-s", "trial", data)
	dir, err := resolveStudyDir("trial")
	if err != nil {
		t.Fatalf("resolve study: %v", err)
	}
	// A directory where the temp file goes makes the study save fail.
	if err := os.Mkdir(filepath.Join(dir, "study.json.tmp"), 0o755); err != nil {
		t.Fatalf("block save: %v", err)
	}

	if _, err := execCmd(t, "stats", "-s", "trial", "inflammation-03.csv"); err == nil {
		t.Fatalf("expected save error")
	}
	entries, err := os.ReadDir(filepath.Join(dir, "reports"))
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read reports: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no orphan report, found %d entries", len(entries))
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	isolateHome(t)

	runCmd(t, "config", "set", "output_format", "yml")
	runCmd(t, "config", "set", "precision", "6")
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "output_format: yaml") || !strings.Contains(out, "precision: 6") {
		t.Fatalf("unexpected config show: %s", out)
	}
	if _, err := execCmd(t, "config", "set", "bogus", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := execCmd(t, "config", "set", "output_format", "xml"); err == nil {
		t.Fatalf("expected invalid format error")
	}
}
