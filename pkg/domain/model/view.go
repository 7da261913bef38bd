package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/types"
)

// SectionKind tags the content rendered by a leaf tab
type SectionKind string

const (
	SectionOverview     SectionKind = "overview"
	SectionPrediction   SectionKind = "prediction"
	SectionRadar        SectionKind = "radar"
	SectionArchitecture SectionKind = "architecture"
	SectionArticle      SectionKind = "article"
	SectionGallery      SectionKind = "gallery"
)

// Tab is a node of the tab tree. A tab either has a section kind or children, never both.
type Tab struct {
	ID       types.TabID
	Label    string
	Kind     SectionKind
	Default  types.TabID
	Children []Tab
}

// IsGroup reports whether the tab holds nested tabs
func (t *Tab) IsGroup() bool {
	return len(t.Children) > 0
}

// Child finds a nested tab
func (t *Tab) Child(id types.TabID) *Tab {
	for i := range t.Children {
		if t.Children[i].ID == id {
			return &t.Children[i]
		}
	}
	return nil
}

// TabTree is the closed set of dashboard tabs
type TabTree struct {
	Default types.TabID
	Tabs    []Tab
}

// DefaultTabTree returns the dashboard layout
func DefaultTabTree() *TabTree {
	return &TabTree{
		Default: types.TabOverview,
		Tabs: []Tab{
			{ID: types.TabOverview, Label: "Overview", Kind: SectionOverview},
			{ID: types.TabPrediction, Label: "Predictive Analytics", Kind: SectionPrediction},
			{
				ID:      types.TabModeling,
				Label:   "Model Performance",
				Default: types.TabComparison,
				Children: []Tab{
					{ID: types.TabComparison, Label: "Performance Comparison", Kind: SectionRadar},
					{ID: types.TabArchitecture, Label: "Model Architecture", Kind: SectionArchitecture},
				},
			},
			{
				ID:      types.TabAbout,
				Label:   "About",
				Default: types.TabResearch,
				Children: []Tab{
					{ID: types.TabResearch, Label: "Research", Kind: SectionArticle},
					{ID: types.TabTechnical, Label: "Technical", Kind: SectionArticle},
					{ID: types.TabImpact, Label: "Impact", Kind: SectionArticle},
					{ID: types.TabAwards, Label: "Recognition", Kind: SectionArticle},
					{ID: types.TabGallery, Label: "Gallery", Kind: SectionGallery},
				},
			},
		},
	}
}

// Find finds a top-level tab
func (t *TabTree) Find(id types.TabID) *Tab {
	for i := range t.Tabs {
		if t.Tabs[i].ID == id {
			return &t.Tabs[i]
		}
	}
	return nil
}

// Selection is the active tab and, for tab groups, the active nested tab
type Selection struct {
	Tab types.TabID
	Sub types.TabID
}

// Path returns the page path relative to the site base path. The default tab is the root.
func (s Selection) Path() string {
	if s.Tab == "" || (s.Tab == types.TabOverview && s.Sub == "") {
		return ""
	}
	if s.Sub == "" {
		return s.Tab.String() + "/"
	}
	return s.Tab.String() + "/" + s.Sub.String() + "/"
}

// Resolve turns raw tab identifiers into a selection, filling in defaults
func (t *TabTree) Resolve(tab, sub string) (Selection, error) {
	if tab == "" {
		if sub != "" {
			return Selection{}, goerr.Wrap(ErrUnknownTab, "nested tab without tab", goerr.V("sub", sub))
		}
		tab = t.Default.String()
	}

	top := t.Find(types.TabID(tab))
	if top == nil {
		return Selection{}, goerr.Wrap(ErrUnknownTab, "no such tab", goerr.V("tab", tab))
	}

	if !top.IsGroup() {
		if sub != "" {
			return Selection{}, goerr.Wrap(ErrUnknownTab, "tab has no nested tabs",
				goerr.V("tab", tab),
				goerr.V("sub", sub))
		}
		return Selection{Tab: top.ID}, nil
	}

	if sub == "" {
		return Selection{Tab: top.ID, Sub: top.Default}, nil
	}
	if top.Child(types.TabID(sub)) == nil {
		return Selection{}, goerr.Wrap(ErrUnknownTab, "no such nested tab",
			goerr.V("tab", tab),
			goerr.V("sub", sub))
	}
	return Selection{Tab: top.ID, Sub: types.TabID(sub)}, nil
}

// Leaf returns the tab that owns the section of a resolved selection
func (t *TabTree) Leaf(sel Selection) (*Tab, error) {
	top := t.Find(sel.Tab)
	if top == nil {
		return nil, goerr.Wrap(ErrUnknownTab, "no such tab", goerr.V("tab", sel.Tab))
	}
	if !top.IsGroup() {
		return top, nil
	}
	child := top.Child(sel.Sub)
	if child == nil {
		return nil, goerr.Wrap(ErrUnknownTab, "no such nested tab",
			goerr.V("tab", sel.Tab),
			goerr.V("sub", sel.Sub))
	}
	return child, nil
}

// Leaves returns the selection of every leaf tab in display order
func (t *TabTree) Leaves() []Selection {
	var result []Selection
	for _, top := range t.Tabs {
		if !top.IsGroup() {
			result = append(result, Selection{Tab: top.ID})
			continue
		}
		for _, child := range top.Children {
			result = append(result, Selection{Tab: top.ID, Sub: child.ID})
		}
	}
	return result
}

// Landing returns the selection reached by activating a top-level tab
func (t *TabTree) Landing(id types.TabID) Selection {
	top := t.Find(id)
	if top == nil || !top.IsGroup() {
		return Selection{Tab: id}
	}
	return Selection{Tab: id, Sub: top.Default}
}

// NavItem is a link in a tab bar
type NavItem struct {
	ID     types.TabID
	Label  string
	Path   string
	Active bool
}

// Navigation builds the top-level and nested tab bars for a selection
func (t *TabTree) Navigation(sel Selection) (tabs []NavItem, subTabs []NavItem) {
	for _, top := range t.Tabs {
		tabs = append(tabs, NavItem{
			ID:     top.ID,
			Label:  top.Label,
			Path:   t.Landing(top.ID).Path(),
			Active: top.ID == sel.Tab,
		})

		if top.ID != sel.Tab || !top.IsGroup() {
			continue
		}
		for _, child := range top.Children {
			subTabs = append(subTabs, NavItem{
				ID:     child.ID,
				Label:  child.Label,
				Path:   Selection{Tab: top.ID, Sub: child.ID}.Path(),
				Active: child.ID == sel.Sub,
			})
		}
	}
	return tabs, subTabs
}

// Section is the content of exactly one leaf tab
type Section interface {
	Kind() SectionKind
}

// OverviewSection holds the summary cards and the case series
type OverviewSection struct {
	Overview *Overview
}

// Kind implements Section
func (s *OverviewSection) Kind() SectionKind { return SectionOverview }

// PredictionSection holds the jittered series and the model metric cards
type PredictionSection struct {
	Points  []PredictionPoint
	Metrics []ModelMetric
}

// Kind implements Section
func (s *PredictionSection) Kind() SectionKind { return SectionPrediction }

// RadarSection holds the comparison scores
type RadarSection struct {
	Scores  []RadarScore
	Metrics []ModelMetric
}

// Kind implements Section
func (s *RadarSection) Kind() SectionKind { return SectionRadar }

// ArchitectureSection holds the hyperparameter panels
type ArchitectureSection struct {
	Architectures []ModelArchitecture
}

// Kind implements Section
func (s *ArchitectureSection) Kind() SectionKind { return SectionArchitecture }

// ArticleSection holds a static article and, for the research tab, the downloads
type ArticleSection struct {
	Article   Article
	Documents []Document
}

// Kind implements Section
func (s *ArticleSection) Kind() SectionKind { return SectionArticle }

// GallerySection holds the gallery images
type GallerySection struct {
	Images []Image
}

// Kind implements Section
func (s *GallerySection) Kind() SectionKind { return SectionGallery }

// Page is the view model of one rendered dashboard page
type Page struct {
	Title     string
	Subtitle  string
	Selection Selection
	Tabs      []NavItem
	SubTabs   []NavItem
	Section   Section
}
