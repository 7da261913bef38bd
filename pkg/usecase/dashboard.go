package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/interfaces"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
	"github.com/secmon-lab/denguescope/pkg/domain/types"
)

// Dashboard builds page view models from the immutable dataset
type Dashboard struct {
	dataset *model.Dataset
	tabs    *model.TabTree
	random  model.RandomSource
}

// DashboardOption configures the dashboard use case
type DashboardOption func(*Dashboard)

// WithRandomSource sets the source of the prediction jitter
func WithRandomSource(src model.RandomSource) DashboardOption {
	return func(d *Dashboard) {
		d.random = src
	}
}

// NewDashboard creates a new dashboard use case
func NewDashboard(dataset *model.Dataset, opts ...DashboardOption) interfaces.Dashboard {
	d := &Dashboard{
		dataset: dataset,
		tabs:    model.DefaultTabTree(),
		random:  NewRandomSource(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dataset returns the dataset
func (d *Dashboard) Dataset() *model.Dataset {
	return d.dataset
}

// Tabs returns the tab layout
func (d *Dashboard) Tabs() *model.TabTree {
	return d.tabs
}

// Pages returns every leaf selection
func (d *Dashboard) Pages() []model.Selection {
	return d.tabs.Leaves()
}

// Resolve applies tab defaults
func (d *Dashboard) Resolve(tab, sub string) (model.Selection, error) {
	return d.tabs.Resolve(tab, sub)
}

// Render builds the page of a selection
func (d *Dashboard) Render(ctx context.Context, sel model.Selection) (*model.Page, error) {
	leaf, err := d.tabs.Leaf(sel)
	if err != nil {
		return nil, err
	}

	section, err := d.buildSection(leaf)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build section",
			goerr.V("tab", sel.Tab),
			goerr.V("sub", sel.Sub))
	}

	tabs, subTabs := d.tabs.Navigation(sel)

	ctxlog.From(ctx).Debug("Rendered dashboard page",
		"tab", sel.Tab,
		"sub", sel.Sub,
		"section", section.Kind(),
	)

	return &model.Page{
		Title:     d.dataset.Title,
		Subtitle:  d.dataset.Subtitle,
		Selection: sel,
		Tabs:      tabs,
		SubTabs:   subTabs,
		Section:   section,
	}, nil
}

func (d *Dashboard) buildSection(leaf *model.Tab) (model.Section, error) {
	switch leaf.Kind {
	case model.SectionOverview:
		return &model.OverviewSection{Overview: model.BuildOverview(d.dataset)}, nil

	case model.SectionPrediction:
		return &model.PredictionSection{
			Points:  model.BuildPredictions(d.dataset.Cases, types.ModelIDs(), d.random),
			Metrics: d.dataset.OrderedMetrics(),
		}, nil

	case model.SectionRadar:
		scores := make([]model.RadarScore, len(d.dataset.Radar))
		copy(scores, d.dataset.Radar)
		return &model.RadarSection{
			Scores:  scores,
			Metrics: d.dataset.OrderedMetrics(),
		}, nil

	case model.SectionArchitecture:
		return &model.ArchitectureSection{Architectures: d.dataset.OrderedArchitectures()}, nil

	case model.SectionArticle:
		return d.buildArticle(leaf.ID)

	case model.SectionGallery:
		images := make([]model.Image, len(d.dataset.About.Gallery))
		copy(images, d.dataset.About.Gallery)
		return &model.GallerySection{Images: images}, nil
	}

	return nil, goerr.New("unsupported section kind", goerr.V("kind", leaf.Kind))
}

func (d *Dashboard) buildArticle(id types.TabID) (model.Section, error) {
	about := d.dataset.About
	switch id {
	case types.TabResearch:
		docs := make([]model.Document, len(about.Documents))
		copy(docs, about.Documents)
		return &model.ArticleSection{Article: about.Research, Documents: docs}, nil
	case types.TabTechnical:
		return &model.ArticleSection{Article: about.Technical}, nil
	case types.TabImpact:
		return &model.ArticleSection{Article: about.Impact}, nil
	case types.TabAwards:
		return &model.ArticleSection{Article: about.Recognition}, nil
	}
	return nil, goerr.New("no article for tab", goerr.V("tab", id))
}
