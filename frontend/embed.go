package frontend

import (
	"embed"
	"io/fs"
)

//go:generate curl -sSfL -o static/echarts.min.js https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js

// FS embeds the page templates and the static files
//
//go:embed templates/*.html.tmpl static
var FS embed.FS

const (
	// StylesheetFile is the dashboard stylesheet under static/
	StylesheetFile = "dashboard.css"
	// ChartScript is the ECharts bundle under static/ that chart frames load
	ChartScript = "echarts.min.js"
)

// Templates returns the page template tree
func Templates() fs.FS {
	sub, err := fs.Sub(FS, "templates")
	if err != nil {
		// embedded paths are fixed at build time
		panic(err)
	}
	return sub
}

// Static returns the static file tree served under static/
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// HasChartScript reports whether the ECharts bundle was fetched before the build
func HasChartScript(static fs.FS) bool {
	return hasFile(static, ChartScript)
}

func hasFile(fsys fs.FS, name string) bool {
	if _, err := fs.Stat(fsys, name); err != nil {
		return false
	}
	return true
}
