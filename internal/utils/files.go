package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// StudyFileName is the metadata file that marks a study directory.
const StudyFileName = "study.json"

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// PrettyJSON marshals a value as indented JSON.
func PrettyJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return b, nil
}

// UniquePath returns path if nothing exists there, otherwise the first
// "<base>__N<ext>" (N >= 2) that is free. Stat errors other than not-exist
// are returned.
func UniquePath(dir, base, ext string) (string, error) {
	cand := filepath.Join(dir, base+ext)
	for idx := 2; ; idx++ {
		_, err := os.Stat(cand)
		if errors.Is(err, fs.ErrNotExist) {
			return cand, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", cand, err)
		}
		cand = filepath.Join(dir, fmt.Sprintf("%s__%d%s", base, idx, ext))
	}
}

// FindStudyRoot attempts to find a directory containing a study.json by walking up.
// If the input path is a file, it starts from its directory.
func FindStudyRoot(start string) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = wd
	}
	info, err := os.Stat(start)
	if err != nil {
		return "", err
	}
	dir := start
	if !info.IsDir() {
		dir = filepath.Dir(start)
	}
	for {
		candidate := filepath.Join(dir, StudyFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}
	return "", errors.New("study root not found (study.json)")
}
