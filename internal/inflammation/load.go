package inflammation

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/KaramelBytes/inflammation-cli/internal/utils"
)

// Load reads a comma-separated data file into a Table.
func Load(path string) (*Table, error) {
	return LoadContext(context.Background(), path)
}

// LoadContext is Load with cancellation checked between lines.
func LoadContext(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()
	return LoadReader(ctx, f, path)
}

// maxLineBytes bounds a single data line.
const maxLineBytes = 16 << 20

// LoadReader parses comma-separated rows from r. name is used in errors only.
// Lines that are blank or start with '#' after trimming whitespace are
// skipped. Every remaining line must carry the same number of numeric fields
// as the first one.
func LoadReader(ctx context.Context, r io.Reader, name string) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)

	var (
		data     []float64
		patients int
		days     int
		line     int
	)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, ",")
		if patients == 0 {
			days = len(fields)
			data = make([]float64, 0, days*16)
		} else if len(fields) != days {
			return nil, &ParseError{
				Path: name,
				Line: line,
				Err:  fmt.Errorf("%w: got %d fields, want %d", ErrRaggedRow, len(fields), days),
			}
		}
		for j, tok := range fields {
			v, perr := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if perr != nil {
				return nil, &ParseError{
					Path:   name,
					Line:   line,
					Column: j + 1,
					Err:    fmt.Errorf("%w: %q", ErrNotNumeric, tok),
				}
			}
			data = append(data, v)
		}
		patients++
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Path: name, Line: line + 1, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if patients == 0 {
		return &Table{}, nil
	}
	return &Table{patients: patients, days: days, data: data}, nil
}

// Write serializes t as one comma-separated line per patient using the
// shortest representation that round-trips each float64.
func Write(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	rec := make([]string, t.Days())
	for i := 0; i < t.Patients(); i++ {
		for j, v := range t.row(i) {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes t to path atomically.
func Save(path string, t *Table) error {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
