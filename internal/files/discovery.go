package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered trial file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// trialExtensions lists the tabular formats accepted as trial recordings.
// CSV is the native FatigueSet format; XLSX is accepted as an equivalent.
var trialExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// Discovery provides file discovery operations rooted at a base path
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindTrialFiles finds all trial files (.csv, .xlsx) in the specified
// directory. Results are sorted lexicographically by name so the trial axis
// of the stacked output is reproducible across runs and platforms.
func (d *Discovery) FindTrialFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !trialExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		// Office lock files start with ~$ and are not readable workbooks
		if strings.HasPrefix(name, "~$") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// DirExists reports whether the given directory exists
func (d *Discovery) DirExists(dir string) bool {
	info, err := os.Stat(d.resolve(dir))
	return err == nil && info.IsDir()
}

// resolve joins dir with the base path unless it is already absolute
func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
