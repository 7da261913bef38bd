package interfaces

import (
	"context"
	"io"

	"github.com/secmon-lab/denguescope/pkg/domain/model"
)

// Dashboard builds the view model of a dashboard page
type Dashboard interface {
	// Resolve turns raw tab identifiers into a selection with defaults applied
	Resolve(tab, sub string) (model.Selection, error)

	// Render builds the page for a selection. Only the selected section is built.
	Render(ctx context.Context, sel model.Selection) (*model.Page, error)

	// Pages returns the selection of every leaf tab
	Pages() []model.Selection

	Dataset() *model.Dataset
	Tabs() *model.TabTree
}

// PageRenderer writes a page view model as HTML
type PageRenderer interface {
	RenderPage(ctx context.Context, w io.Writer, page *model.Page) error
	// RenderNotFound writes the not found page. page carries only the title and the tab bar.
	RenderNotFound(ctx context.Context, w io.Writer, page *model.Page, requested string) error
}

// ChartRenderer writes the chart of a section as a standalone HTML document.
// Pages embed the document in an iframe.
type ChartRenderer interface {
	// HasChart reports whether sections of the kind carry a chart
	HasChart(kind model.SectionKind) bool
	RenderChart(ctx context.Context, w io.Writer, section model.Section) error
}
