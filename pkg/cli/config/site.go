package config

import (
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/service/page"
	"github.com/urfave/cli/v3"
)

// Site holds the public layout of the dashboard
type Site struct {
	BasePath        string
	AssetsDir       string
	ChartAssetsHost string
}

// Flags returns CLI flags for Site configuration
func (s *Site) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-path",
			Usage:       "URL path prefix the dashboard is published under",
			Category:    "Site",
			Value:       page.DefaultBasePath,
			Sources:     cli.EnvVars("DENGUESCOPE_BASE_PATH"),
			Destination: &s.BasePath,
		},
		&cli.StringFlag{
			Name:        "assets-dir",
			Usage:       "Directory holding documentations/ and images/ (optional)",
			Category:    "Site",
			Sources:     cli.EnvVars("DENGUESCOPE_ASSETS_DIR"),
			Destination: &s.AssetsDir,
		},
		&cli.StringFlag{
			Name:        "chart-assets-host",
			Usage:       "URL prefix echarts.min.js is loaded from (default: <base-path>static/)",
			Category:    "Site",
			Sources:     cli.EnvVars("DENGUESCOPE_CHART_ASSETS_HOST"),
			Destination: &s.ChartAssetsHost,
		},
	}
}

// NormalizedBasePath returns the base path with a leading and a trailing slash
func (s *Site) NormalizedBasePath() string {
	return page.NormalizeBasePath(s.BasePath)
}

// ChartHost returns the URL prefix chart frames load the ECharts bundle from.
// It defaults to the embedded static directory so pages do not depend on a third-party host.
func (s *Site) ChartHost() string {
	if s.ChartAssetsHost == "" {
		return s.NormalizedBasePath() + "static/"
	}
	if !strings.HasSuffix(s.ChartAssetsHost, "/") {
		return s.ChartAssetsHost + "/"
	}
	return s.ChartAssetsHost
}

// IsLocalChartHost reports whether the bundle is served from the embedded static directory
func (s *Site) IsLocalChartHost() bool {
	return s.ChartAssetsHost == ""
}

// Assets opens the assets directory. It returns nil when no directory is configured.
func (s *Site) Assets() (fs.FS, error) {
	if s.AssetsDir == "" {
		return nil, nil
	}

	stat, err := os.Stat(s.AssetsDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open assets directory", goerr.V("dir", s.AssetsDir))
	}
	if !stat.IsDir() {
		return nil, goerr.New("assets path is not a directory", goerr.V("dir", s.AssetsDir))
	}

	return os.DirFS(s.AssetsDir), nil
}

// LogValue returns structured log value
func (s Site) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_path", s.BasePath),
		slog.String("assets_dir", s.AssetsDir),
		slog.String("chart_assets_host", s.ChartHost()),
	)
}
