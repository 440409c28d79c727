package assets

import (
	"fmt"
	"os"
	"sort"

	"github.com/sourceplane/blendsubmit/internal/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FileFinder discovers the files a scene depends on
type FileFinder interface {
	FindFiles(projectPath string) ([]string, error)
}

// FileFinderFunc adapts a function to FileFinder
type FileFinderFunc func(projectPath string) ([]string, error)

func (f FileFinderFunc) FindFiles(projectPath string) ([]string, error) {
	return f(projectPath)
}

// Classifier sorts discovered paths into input files and input directories
type Classifier struct {
	fs     afero.Fs
	finder FileFinder
	logger *zap.Logger
}

// NewClassifier creates a classifier that tests paths against fs
func NewClassifier(fs afero.Fs, finder FileFinder, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{fs: fs, finder: finder, logger: logger}
}

// Classify asks the finder for candidates near projectPath and splits them
// into files and directories. Paths that do not exist are treated as files.
func (c *Classifier) Classify(projectPath string) (model.AutoDetectedAssets, error) {
	assets := model.NewAutoDetectedAssets()

	candidates, err := c.finder.FindFiles(projectPath)
	if err != nil {
		return assets, fmt.Errorf("failed to find files for %s: %w", projectPath, err)
	}

	for _, path := range candidates {
		isDir, err := afero.IsDir(c.fs, path)
		if err != nil && !os.IsNotExist(err) {
			return assets, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		if isDir {
			assets.InputDirectories[path] = true
		} else {
			assets.InputFilenames[path] = true
		}
	}

	c.logger.Debug("classified auto-detected assets",
		zap.String("project", projectPath),
		zap.Int("candidates", len(candidates)),
		zap.Int("files", len(assets.InputFilenames)),
		zap.Int("directories", len(assets.InputDirectories)),
	)

	return assets, nil
}

// Sorted returns the members of a path set in lexical order
func Sorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
