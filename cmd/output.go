package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
	"github.com/KaramelBytes/inflammation-cli/internal/report"
	"github.com/KaramelBytes/inflammation-cli/internal/study"
	"github.com/KaramelBytes/inflammation-cli/internal/utils"
	"github.com/spf13/cobra"
)

// source is the table a command operates on, optionally tied to a study dataset.
type source struct {
	path    string
	name    string
	study   *study.Study
	dataset *study.Dataset
}

// resolveSource treats ref as a file path, or as a dataset id/name when a
// study is given.
func resolveSource(studyName, ref string) (*source, error) {
	if studyName == "" {
		return &source{path: ref, name: filepath.Base(ref)}, nil
	}
	s, err := loadStudyByName(studyName)
	if err != nil {
		return nil, err
	}
	d, err := s.Dataset(ref)
	if err != nil {
		return nil, err
	}
	return &source{path: d.Path, name: d.Name, study: s, dataset: d}, nil
}

func (src *source) load(cmd *cobra.Command) (*inflammation.Table, error) {
	tbl, err := inflammation.LoadContext(cmd.Context(), src.path)
	if err != nil {
		return nil, err
	}
	slog.Debug("table loaded", "path", src.path, "patients", tbl.Patients(), "days", tbl.Days())
	return tbl, nil
}

type outputOptions struct {
	format    string
	precision int
	path      string
}

// resolveOutput fills unset flags from configuration.
func resolveOutput(cmd *cobra.Command, format string, precision int, path string) (outputOptions, error) {
	c := effective()
	if !cmd.Flags().Changed("format") && c.OutputFormat != "" {
		format = c.OutputFormat
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return outputOptions{}, err
	}
	if !cmd.Flags().Changed("precision") && c.Precision > 0 {
		precision = c.Precision
	}
	return outputOptions{format: f, precision: precision, path: path}, nil
}

// emit writes the rendered report to --output, to the study, or to stdout.
func emit(cmd *cobra.Command, src *source, kind string, rep *report.Report, opt outputOptions) error {
	body, err := rep.Render(opt.format, opt.precision)
	if err != nil {
		return err
	}
	slog.Debug("report rendered", "id", rep.ID, "kind", kind, "format", opt.format, "bytes", len(body))
	out := cmd.OutOrStdout()
	written := false
	if opt.path != "" {
		if err := utils.SafeWriteFile(opt.path, body); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(out, "✓ Wrote %s report to %s\n", kind, opt.path)
		written = true
	}
	if src.study != nil {
		p, err := src.study.AttachReport(src.dataset.ID, kind, body, report.Ext(opt.format))
		if err != nil {
			return err
		}
		if err := src.study.Save(); err != nil {
			_ = os.Remove(p)
			return err
		}
		fmt.Fprintf(out, "✓ Added %s report to study '%s' as %s\n", kind, src.study.Name, filepath.Base(p))
		written = true
	}
	if !written {
		_, err = out.Write(body)
		return err
	}
	return nil
}
