package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
	"github.com/secmon-lab/denguescope/pkg/domain/types"
)

func TestTabTreeResolve(t *testing.T) {
	tree := model.DefaultTabTree()

	testCases := []struct {
		name     string
		tab      string
		sub      string
		expected model.Selection
	}{
		{"default tab", "", "", model.Selection{Tab: types.TabOverview}},
		{"overview", "overview", "", model.Selection{Tab: types.TabOverview}},
		{"prediction", "prediction", "", model.Selection{Tab: types.TabPrediction}},
		{"modeling default", "modeling", "", model.Selection{Tab: types.TabModeling, Sub: types.TabComparison}},
		{"modeling architecture", "modeling", "architecture", model.Selection{Tab: types.TabModeling, Sub: types.TabArchitecture}},
		{"about default", "about", "", model.Selection{Tab: types.TabAbout, Sub: types.TabResearch}},
		{"about gallery", "about", "gallery", model.Selection{Tab: types.TabAbout, Sub: types.TabGallery}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sel, err := tree.Resolve(tc.tab, tc.sub)
			gt.NoError(t, err).Required()
			gt.Equal(t, sel, tc.expected)

			// Resolving a resolved selection again is idempotent
			again, err := tree.Resolve(sel.Tab.String(), sel.Sub.String())
			gt.NoError(t, err).Required()
			gt.Equal(t, again, sel)
		})
	}
}

func TestTabTreeResolveUnknown(t *testing.T) {
	tree := model.DefaultTabTree()

	testCases := []struct {
		name string
		tab  string
		sub  string
	}{
		{"unknown tab", "settings", ""},
		{"unknown nested tab", "about", "contact"},
		{"nested tab of a leaf", "overview", "research"},
		{"nested tab without tab", "", "research"},
		{"nested id as tab", "gallery", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tree.Resolve(tc.tab, tc.sub)
			gt.Error(t, err)
			gt.True(t, errors.Is(err, model.ErrUnknownTab))
		})
	}
}

func TestTabTreeLeaves(t *testing.T) {
	tree := model.DefaultTabTree()
	leaves := tree.Leaves()

	gt.Equal(t, len(leaves), 9)
	gt.Equal(t, leaves[0], model.Selection{Tab: types.TabOverview})
	gt.Equal(t, leaves[8], model.Selection{Tab: types.TabAbout, Sub: types.TabGallery})

	kinds := make(map[model.SectionKind]int)
	for _, sel := range leaves {
		leaf, err := tree.Leaf(sel)
		gt.NoError(t, err).Required()
		gt.False(t, leaf.IsGroup())
		kinds[leaf.Kind]++
	}
	gt.Equal(t, kinds[model.SectionOverview], 1)
	gt.Equal(t, kinds[model.SectionPrediction], 1)
	gt.Equal(t, kinds[model.SectionRadar], 1)
	gt.Equal(t, kinds[model.SectionArchitecture], 1)
	gt.Equal(t, kinds[model.SectionArticle], 4)
	gt.Equal(t, kinds[model.SectionGallery], 1)
}

func TestSelectionPath(t *testing.T) {
	gt.Equal(t, model.Selection{Tab: types.TabOverview}.Path(), "")
	gt.Equal(t, model.Selection{}.Path(), "")
	gt.Equal(t, model.Selection{Tab: types.TabPrediction}.Path(), "prediction/")
	gt.Equal(t, model.Selection{Tab: types.TabAbout, Sub: types.TabAwards}.Path(), "about/awards/")
}

func TestTabTreeNavigation(t *testing.T) {
	tree := model.DefaultTabTree()

	t.Run("leaf tab has no nested bar", func(t *testing.T) {
		tabs, subTabs := tree.Navigation(model.Selection{Tab: types.TabPrediction})
		gt.Equal(t, len(tabs), 4)
		gt.Equal(t, len(subTabs), 0)

		active := 0
		for _, item := range tabs {
			if item.Active {
				active++
				gt.Equal(t, item.ID, types.TabPrediction)
			}
		}
		gt.Equal(t, active, 1)

		gt.Equal(t, tabs[0].Path, "")
		gt.Equal(t, tabs[2].Path, "modeling/comparison/")
		gt.Equal(t, tabs[3].Path, "about/research/")
	})

	t.Run("group tab lists nested tabs", func(t *testing.T) {
		tabs, subTabs := tree.Navigation(model.Selection{Tab: types.TabAbout, Sub: types.TabImpact})
		gt.True(t, tabs[3].Active)
		gt.Equal(t, len(subTabs), 5)
		gt.Equal(t, subTabs[2].ID, types.TabImpact)
		gt.True(t, subTabs[2].Active)
		gt.False(t, subTabs[0].Active)
		gt.Equal(t, subTabs[3].Label, "Recognition")
		gt.Equal(t, subTabs[4].Path, "about/gallery/")
	})
}
