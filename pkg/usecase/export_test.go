package usecase_test

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
	"github.com/secmon-lab/denguescope/pkg/usecase"
)

// pathRenderer writes the page path so that tests can check which page landed where
type pathRenderer struct {
	fail bool
}

func (r *pathRenderer) RenderPage(ctx context.Context, w io.Writer, page *model.Page) error {
	if r.fail {
		return goerr.New("render failure")
	}
	_, err := io.WriteString(w, "page:"+page.Selection.Path())
	return err
}

func (r *pathRenderer) RenderNotFound(ctx context.Context, w io.Writer, page *model.Page, requested string) error {
	_, err := io.WriteString(w, "not found")
	return err
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "site")
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	exporter := usecase.NewExporter(newDashboard(t), &pathRenderer{}, "/dengue/",
		usecase.WithStaticFiles(fstest.MapFS{"dashboard.css": {Data: []byte("body{}")}}),
		usecase.WithAssets(fstest.MapFS{
			"documentations/SVIT.pdf":  {Data: []byte("%PDF")},
			"images/1734620858627.jpg": {Data: []byte("jpeg")},
		}),
		usecase.WithClock(func() time.Time { return now }),
	)

	manifest, err := exporter.Export(ctx, out)
	gt.NoError(t, err).Required()

	gt.Equal(t, len(manifest.Pages), 9)
	gt.Equal(t, manifest.Pages[0], "index.html")
	gt.Equal(t, manifest.Pages[8], "about/gallery/index.html")
	gt.Equal(t, manifest.Files, []string{
		"static/dashboard.css",
		"documentations/SVIT.pdf",
		"images/1734620858627.jpg",
	})
	gt.Equal(t, manifest.BasePath, "/dengue/")
	gt.Equal(t, manifest.GeneratedAt, now)
	gt.True(t, manifest.BuildID != "")

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	gt.NoError(t, err).Required()
	gt.Equal(t, string(index), "page:")

	research, err := os.ReadFile(filepath.Join(out, "about", "research", "index.html"))
	gt.NoError(t, err).Required()
	gt.Equal(t, string(research), "page:about/research/")

	_, err = os.Stat(filepath.Join(out, "static", "dashboard.css"))
	gt.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "documentations", "SVIT.pdf"))
	gt.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, usecase.ManifestFile))
	gt.NoError(t, err).Required()
	var decoded usecase.Manifest
	gt.NoError(t, json.Unmarshal(data, &decoded)).Required()
	gt.Equal(t, decoded.BuildID, manifest.BuildID)
	gt.Equal(t, len(decoded.Pages), 9)
}

func TestExportRenderFailure(t *testing.T) {
	out := t.TempDir()

	exporter := usecase.NewExporter(newDashboard(t), &pathRenderer{fail: true}, "/")
	_, err := exporter.Export(context.Background(), out)
	gt.Error(t, err)

	_, err = os.Stat(filepath.Join(out, "index.html"))
	gt.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, usecase.ManifestFile))
	gt.True(t, os.IsNotExist(err))
}

func TestExportRequiresOutput(t *testing.T) {
	exporter := usecase.NewExporter(newDashboard(t), &pathRenderer{}, "/")
	_, err := exporter.Export(context.Background(), "")
	gt.Error(t, err)
}
