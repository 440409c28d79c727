package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"
	"github.com/moby/patternmatcher/ignorefile"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// IgnoreFileName is read from the project directory when present
const IgnoreFileName = ".submitignore"

// DefaultIgnorePatterns are never uploaded as scene inputs
var DefaultIgnorePatterns = []string{
	".git",
	"__pycache__",
	"*.blend1",
	"*.blend@",
	IgnoreFileName,
}

// DirectoryFinder lists the entries that sit next to a scene file. It stands
// in for the host's dependency walker when no Blender session is available.
type DirectoryFinder struct {
	Fs     afero.Fs
	Logger *zap.Logger
}

// NewDirectoryFinder creates a finder over fs
func NewDirectoryFinder(fs afero.Fs, logger *zap.Logger) *DirectoryFinder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryFinder{Fs: fs, Logger: logger}
}

// FindFiles returns the immediate entries of the project's directory, minus
// the project file and anything the ignore patterns match
func (f *DirectoryFinder) FindFiles(projectPath string) ([]string, error) {
	dir := filepath.Dir(projectPath)

	matcher, err := f.readIgnorePatterns(dir)
	if err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(f.Fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read project directory %s: %w", dir, err)
	}

	projectName := filepath.Base(projectPath)
	var found []string
	for _, entry := range entries {
		name := entry.Name()
		if name == projectName {
			continue
		}

		// Directories need a trailing slash for dir-only patterns to match
		rel := filepath.ToSlash(name)
		if entry.IsDir() && !strings.HasSuffix(rel, "/") {
			rel += "/"
		}

		ignored, err := matcher.MatchesOrParentMatches(rel)
		if err != nil {
			return nil, fmt.Errorf("failed to check ignore patterns for %q: %w", name, err)
		}
		if ignored {
			f.Logger.Debug("ignoring project entry", zap.String("path", name))
			continue
		}

		found = append(found, filepath.Join(dir, name))
	}

	return found, nil
}

func (f *DirectoryFinder) readIgnorePatterns(dir string) (*patternmatcher.PatternMatcher, error) {
	patterns := make([]string, len(DefaultIgnorePatterns))
	copy(patterns, DefaultIgnorePatterns)

	ignorePath := filepath.Join(dir, IgnoreFileName)
	file, err := f.Fs.Open(ignorePath)
	if err == nil {
		defer file.Close()

		filePatterns, err := ignorefile.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", ignorePath, err)
		}
		patterns = append(patterns, filePatterns...)
		f.Logger.Info("loaded ignore patterns",
			zap.String("file", ignorePath),
			zap.Int("patterns", len(filePatterns)),
		)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open %s: %w", ignorePath, err)
	}

	matcher, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to create pattern matcher: %w", err)
	}
	return matcher, nil
}
