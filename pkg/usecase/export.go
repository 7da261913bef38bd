package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/interfaces"
)

// ManifestFile is written at the root of every export
const ManifestFile = "manifest.json"

// Manifest describes a static export
type Manifest struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	BasePath    string    `json:"base_path"`
	Pages       []string  `json:"pages"`
	Files       []string  `json:"files"`
}

// Exporter writes the dashboard as a static site
type Exporter struct {
	dashboard interfaces.Dashboard
	pages     interfaces.PageRenderer
	basePath  string
	static    fs.FS
	assets    fs.FS
	now       func() time.Time
}

// ExporterOption configures the exporter
type ExporterOption func(*Exporter)

// WithStaticFiles copies the stylesheet tree into static/
func WithStaticFiles(fsys fs.FS) ExporterOption {
	return func(e *Exporter) {
		e.static = fsys
	}
}

// WithAssets copies documents and images to the export root
func WithAssets(fsys fs.FS) ExporterOption {
	return func(e *Exporter) {
		e.assets = fsys
	}
}

// WithClock overrides the generation timestamp
func WithClock(now func() time.Time) ExporterOption {
	return func(e *Exporter) {
		e.now = now
	}
}

// NewExporter creates a new exporter
func NewExporter(dashboard interfaces.Dashboard, pages interfaces.PageRenderer, basePath string, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		dashboard: dashboard,
		pages:     pages,
		basePath:  basePath,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export renders every page into outDir and returns the manifest
func (e *Exporter) Export(ctx context.Context, outDir string) (*Manifest, error) {
	logger := ctxlog.From(ctx)

	if outDir == "" {
		return nil, goerr.New("output directory is required")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory", goerr.V("dir", outDir))
	}

	buildID, err := uuid.NewV7()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate build ID")
	}

	manifest := &Manifest{
		BuildID:     buildID.String(),
		GeneratedAt: e.now().UTC(),
		BasePath:    e.basePath,
		Pages:       []string{},
		Files:       []string{},
	}

	for _, sel := range e.dashboard.Pages() {
		page, err := e.dashboard.Render(ctx, sel)
		if err != nil {
			return nil, err
		}

		rel := path.Join(sel.Path(), "index.html")
		if err := writeRendered(outDir, rel, func(w io.Writer) error {
			return e.pages.RenderPage(ctx, w, page)
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to export page", goerr.V("page", rel))
		}
		manifest.Pages = append(manifest.Pages, rel)
	}

	if e.static != nil {
		files, err := copyTree(e.static, filepath.Join(outDir, "static"))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to copy static files")
		}
		for _, f := range files {
			manifest.Files = append(manifest.Files, path.Join("static", f))
		}
	}

	if e.assets != nil {
		files, err := copyTree(e.assets, outDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to copy assets")
		}
		manifest.Files = append(manifest.Files, files...)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode manifest")
	}
	if err := os.WriteFile(filepath.Join(outDir, ManifestFile), data, 0o644); err != nil {
		return nil, goerr.Wrap(err, "failed to write manifest")
	}

	logger.Info("Exported static site",
		"dir", outDir,
		"build_id", manifest.BuildID,
		"pages", len(manifest.Pages),
		"files", len(manifest.Files),
	)

	return manifest, nil
}

// writeRendered renders into memory first so a failed render leaves no partial file
func writeRendered(root, rel string, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}

	dst := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create directory", goerr.V("path", dst))
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0o644); err != nil {
		return goerr.Wrap(err, "failed to write file", goerr.V("path", dst))
	}
	return nil
}

// copyTree copies every regular file of fsys under dst and returns their slash separated paths
func copyTree(fsys fs.FS, dst string) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return goerr.Wrap(err, "failed to read file", goerr.V("path", p))
		}

		target := filepath.Join(dst, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return goerr.Wrap(err, "failed to create directory", goerr.V("path", target))
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return goerr.Wrap(err, "failed to write file", goerr.V("path", target))
		}

		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
