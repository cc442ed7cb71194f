// Package study persists a named collection of inflammation datasets and the
// reports generated from them.
package study

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
	"github.com/KaramelBytes/inflammation-cli/internal/utils"
)

const reportsDirName = "reports"

// ErrDatasetNotFound is returned when a dataset reference matches nothing.
var ErrDatasetNotFound = errors.New("dataset not found")

// Study represents a study persisted on disk.
type Study struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Datasets    map[string]*Dataset `json:"datasets"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	// Not serialized: on-disk location of the study.json
	rootDir string `json:"-"`
}

// NewStudy constructs an in-memory study. Call Save() to persist.
func NewStudy(name, description, rootDir string) *Study {
	now := time.Now()
	return &Study{
		Name:        name,
		Description: description,
		Datasets:    make(map[string]*Dataset),
		CreatedAt:   now,
		UpdatedAt:   now,
		rootDir:     rootDir,
	}
}

// LoadStudy loads a study.json from the provided directory.
func LoadStudy(dir string) (*Study, error) {
	path := filepath.Join(dir, utils.StudyFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("study not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read study: %w", err)
	}
	var s Study
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse study: %w", err)
	}
	if s.Datasets == nil {
		s.Datasets = make(map[string]*Dataset)
	}
	s.rootDir = dir
	return &s, nil
}

// RootDir returns the on-disk study directory path.
func (s *Study) RootDir() string { return s.rootDir }

// Save writes study.json using atomic write.
func (s *Study) Save() error {
	if s.rootDir == "" {
		return errors.New("study root directory not set")
	}
	if err := utils.EnsureDir(s.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	s.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(s)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(s.rootDir, utils.StudyFileName), data)
}

// AddDataset loads path to validate it and registers it with the study.
// The file must parse as a rectangular inflammation table.
func (s *Study) AddDataset(path, description string) (*Dataset, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	tbl, err := inflammation.Load(abs)
	if err != nil {
		return nil, err
	}
	for _, d := range s.Datasets {
		if d.Path == abs {
			return nil, fmt.Errorf("dataset %s already registered as %s", abs, d.ID)
		}
	}
	d := &Dataset{
		ID:          uuid.NewString(),
		Path:        abs,
		Name:        filepath.Base(abs),
		Description: strings.TrimSpace(description),
		Patients:    tbl.Patients(),
		Days:        tbl.Days(),
		AddedAt:     time.Now(),
	}
	if s.Datasets == nil {
		s.Datasets = make(map[string]*Dataset)
	}
	s.Datasets[d.ID] = d
	s.UpdatedAt = time.Now()
	return d, nil
}

// Dataset resolves ref by ID first, then by file name.
func (s *Study) Dataset(ref string) (*Dataset, error) {
	if d, ok := s.Datasets[ref]; ok {
		return d, nil
	}
	var found *Dataset
	for _, d := range s.SortedDatasets() {
		if d.Name != ref {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("dataset name %q is ambiguous; use the id", ref)
		}
		found = d
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, ref)
	}
	return found, nil
}

// SortedDatasets returns datasets ordered by name, then ID.
func (s *Study) SortedDatasets() []*Dataset {
	out := make([]*Dataset, 0, len(s.Datasets))
	for _, d := range s.Datasets {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AttachReport writes body under the study's reports directory and records
// it on the dataset. Existing reports are never overwritten. The returned
// path is absolute.
func (s *Study) AttachReport(datasetID, kind string, body []byte, ext string) (string, error) {
	d, ok := s.Datasets[datasetID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrDatasetNotFound, datasetID)
	}
	outDir := filepath.Join(s.rootDir, reportsDirName)
	if err := utils.EnsureDir(outDir); err != nil {
		return "", err
	}
	base := strings.TrimSuffix(d.Name, filepath.Ext(d.Name)) + "." + kind
	outFile, err := utils.UniquePath(outDir, base, ext)
	if err != nil {
		return "", fmt.Errorf("choose report path: %w", err)
	}
	if err := utils.SafeWriteFile(outFile, body); err != nil {
		return "", fmt.Errorf("write study report: %w", err)
	}
	d.Reports = append(d.Reports, filepath.Base(outFile))
	s.UpdatedAt = time.Now()
	return outFile, nil
}
