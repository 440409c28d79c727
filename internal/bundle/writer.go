package bundle

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/sourceplane/blendsubmit/internal/assets"
	"github.com/sourceplane/blendsubmit/internal/model"
	"github.com/sourceplane/blendsubmit/internal/render"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	TemplateFile        = "template"
	ParameterValuesFile = "parameter_values.yaml"
	AssetReferencesFile = "asset_references.yaml"
)

// Bundle is everything a job submission uploads
type Bundle struct {
	Template          *model.JobTemplate
	ParameterValues   []model.ParameterValue
	Assets            model.AutoDetectedAssets
	OutputDirectories []string
}

type parameterValuesDoc struct {
	ParameterValues []model.ParameterValue `yaml:"parameterValues" json:"parameterValues"`
}

type assetReferencesDoc struct {
	AssetReferences assetReferences `yaml:"assetReferences" json:"assetReferences"`
}

type assetReferences struct {
	Inputs  assetInputs  `yaml:"inputs" json:"inputs"`
	Outputs assetOutputs `yaml:"outputs" json:"outputs"`
}

type assetInputs struct {
	Filenames   []string `yaml:"filenames" json:"filenames"`
	Directories []string `yaml:"directories" json:"directories"`
}

type assetOutputs struct {
	Directories []string `yaml:"directories" json:"directories"`
}

// Writer writes job bundles to a filesystem
type Writer struct {
	Fs       afero.Fs
	Format   render.Format
	Stdout   io.Writer
	DryRun   bool
	logger   *zap.Logger
	renderer *render.Renderer
}

// NewWriter creates a writer. The template is written in format; the
// companion documents are always YAML.
func NewWriter(fs afero.Fs, format render.Format, stdout io.Writer, dryRun bool, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		Fs:       fs,
		Format:   format,
		Stdout:   stdout,
		DryRun:   dryRun,
		logger:   logger,
		renderer: render.NewRenderer(),
	}
}

// Write renders the bundle into dir and returns the paths it wrote. In
// dry-run mode nothing touches the filesystem and the paths are printed.
func (w *Writer) Write(dir string, b Bundle) ([]string, error) {
	if b.Template == nil {
		return nil, fmt.Errorf("bundle has no job template")
	}

	files, err := w.renderFiles(b)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	if !w.DryRun {
		if err := w.Fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create bundle directory %s: %w", dir, err)
		}
	}

	written := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data := files[name]

		if w.DryRun {
			fmt.Fprintf(w.Stdout, "  - %s (%d bytes)\n", path, len(data))
			written = append(written, path)
			continue
		}

		if err := afero.WriteFile(w.Fs, path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		w.logger.Debug("wrote bundle file", zap.String("path", path), zap.Int("bytes", len(data)))
		written = append(written, path)
	}

	w.logger.Info("job bundle ready",
		zap.String("dir", dir),
		zap.Int("steps", len(b.Template.Steps)),
		zap.Bool("dryRun", w.DryRun),
	)

	return written, nil
}

func (w *Writer) renderFiles(b Bundle) (map[string][]byte, error) {
	files := make(map[string][]byte, 3)

	tmpl, err := w.renderer.Render(b.Template, w.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to render job template: %w", err)
	}
	files[TemplateFile+w.Format.Extension()] = tmpl

	values, err := w.renderer.RenderYAML(parameterValuesDoc{ParameterValues: b.ParameterValues})
	if err != nil {
		return nil, fmt.Errorf("failed to render parameter values: %w", err)
	}
	files[ParameterValuesFile] = values

	refs := assetReferencesDoc{AssetReferences: assetReferences{
		Inputs: assetInputs{
			Filenames:   assets.Sorted(b.Assets.InputFilenames),
			Directories: assets.Sorted(b.Assets.InputDirectories),
		},
		Outputs: assetOutputs{Directories: dedupe(b.OutputDirectories)},
	}}
	refsData, err := w.renderer.RenderYAML(refs)
	if err != nil {
		return nil, fmt.Errorf("failed to render asset references: %w", err)
	}
	files[AssetReferencesFile] = refsData

	return files, nil
}

// DefaultDir returns a fresh bundle directory under root named after the job
func DefaultDir(root, jobName string) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return filepath.Join(root, Slug(jobName)+"-"+suffix)
}

// Slug lowercases name and replaces runs of non-alphanumerics with one dash
func Slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(sb.String(), "-")
	if slug == "" {
		return "job"
	}
	return slug
}

// OutputDirectories collects the output directories of all layers in order
func OutputDirectories(layers []model.Layer) []string {
	var dirs []string
	for _, layer := range layers {
		dirs = append(dirs, layer.Settings.OutputDirectories...)
	}
	return dedupe(dirs)
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
