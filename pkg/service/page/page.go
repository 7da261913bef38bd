package page

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/frontend"
	"github.com/secmon-lab/denguescope/pkg/domain/interfaces"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
)

// DefaultBasePath is the public URL prefix of the dashboard
const DefaultBasePath = "/dengue-ml-forecasting/dengue-dashboard/"

var sectionTemplates = map[model.SectionKind]string{
	model.SectionOverview:     "section-overview",
	model.SectionPrediction:   "section-prediction",
	model.SectionRadar:        "section-radar",
	model.SectionArchitecture: "section-architecture",
	model.SectionArticle:      "section-article",
	model.SectionGallery:      "section-gallery",
}

var chartTitles = map[model.SectionKind]string{
	model.SectionOverview:   "Disease Pattern Analysis",
	model.SectionPrediction: "Model Predictions Comparison",
	model.SectionRadar:      "Model Performance Comparison",
}

// Renderer renders dashboard pages with html/template
type Renderer struct {
	tmpl     *template.Template
	basePath string
	charts   interfaces.ChartRenderer
}

type sectionData struct {
	Section    model.Section
	Chart      string
	ChartTitle string
}

type layoutData struct {
	Page    *model.Page
	Content template.HTML
}

// New creates a page renderer. Links are prefixed with basePath.
func New(basePath string, charts interfaces.ChartRenderer) (*Renderer, error) {
	r := &Renderer{
		basePath: NormalizeBasePath(basePath),
		charts:   charts,
	}

	tmpl, err := template.New("page").Funcs(r.funcs()).ParseFS(frontend.Templates(), "*.html.tmpl")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse page templates")
	}
	r.tmpl = tmpl

	return r, nil
}

// BasePath returns the normalized base path
func (r *Renderer) BasePath() string {
	return r.basePath
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"href":  r.href,
		"asset": r.href,
		"tone": func(t model.Tone) string {
			return "tone-" + string(t)
		},
		"cases": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 0, 64)
		},
	}
}

// href resolves a path relative to the base path
func (r *Renderer) href(p string) string {
	return r.basePath + strings.TrimPrefix(p, "/")
}

// RenderPage implements interfaces.PageRenderer
func (r *Renderer) RenderPage(ctx context.Context, w io.Writer, page *model.Page) error {
	if page == nil || page.Section == nil {
		return goerr.New("page has no section")
	}

	kind := page.Section.Kind()
	name, ok := sectionTemplates[kind]
	if !ok {
		return goerr.New("no template for section", goerr.V("kind", kind))
	}

	data := sectionData{Section: page.Section}
	if r.charts != nil && r.charts.HasChart(kind) {
		var chart bytes.Buffer
		if err := r.charts.RenderChart(ctx, &chart, page.Section); err != nil {
			return goerr.Wrap(err, "failed to render chart", goerr.V("kind", kind))
		}
		data.Chart = chart.String()
		data.ChartTitle = chartTitles[kind]
	}

	var content bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&content, name, data); err != nil {
		return goerr.Wrap(err, "failed to render section", goerr.V("kind", kind))
	}

	ctxlog.From(ctx).Debug("Rendered page",
		"tab", page.Selection.Tab,
		"sub", page.Selection.Sub,
		"has_chart", data.Chart != "",
	)

	return r.renderLayout(w, page, content.Bytes())
}

// RenderNotFound renders the not found page inside the dashboard layout
func (r *Renderer) RenderNotFound(ctx context.Context, w io.Writer, page *model.Page, requested string) error {
	var content bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&content, "notfound", requested); err != nil {
		return goerr.Wrap(err, "failed to render not found page")
	}
	return r.renderLayout(w, page, content.Bytes())
}

func (r *Renderer) renderLayout(w io.Writer, page *model.Page, content []byte) error {
	var buf bytes.Buffer
	data := layoutData{Page: page, Content: template.HTML(content)}
	if err := r.tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return goerr.Wrap(err, "failed to render layout")
	}
	if _, err := buf.WriteTo(w); err != nil {
		return goerr.Wrap(err, "failed to write page")
	}
	return nil
}

// NormalizeBasePath returns p with exactly one leading and one trailing slash
func NormalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p + "/"
}
