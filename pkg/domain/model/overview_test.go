package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
)

func TestMonthlyChange(t *testing.T) {
	testCases := []struct {
		name     string
		current  *model.MonthlyCase
		previous *model.MonthlyCase
		expected float64
	}{
		{"Dec vs Nov", &model.MonthlyCase{Month: "Dec", Cases: 1436}, &model.MonthlyCase{Month: "Nov", Cases: 1793}, -19.9},
		{"increase", &model.MonthlyCase{Month: "Jul", Cases: 2005}, &model.MonthlyCase{Month: "Jun", Cases: 1156}, 73.4},
		{"no change", &model.MonthlyCase{Cases: 100}, &model.MonthlyCase{Cases: 100}, 0},
		{"missing current", nil, &model.MonthlyCase{Cases: 100}, 0},
		{"missing previous", &model.MonthlyCase{Cases: 100}, nil, 0},
		{"previous is zero", &model.MonthlyCase{Cases: 100}, &model.MonthlyCase{Cases: 0}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, model.MonthlyChange(tc.current, tc.previous), tc.expected)
		})
	}
}

func TestChangeTone(t *testing.T) {
	gt.Equal(t, model.ChangeTone(0.1), model.ToneDanger)
	gt.Equal(t, model.ChangeTone(0), model.ToneSuccess)
	gt.Equal(t, model.ChangeTone(-19.9), model.ToneSuccess)
}

func TestFormatPercent(t *testing.T) {
	gt.Equal(t, model.FormatPercent(-19.9), "-19.9%")
	gt.Equal(t, model.FormatPercent(5), "5%")
	gt.Equal(t, model.FormatPercent(0), "0%")
}

func TestBuildOverview(t *testing.T) {
	dataset := loadDataset(t)
	overview := model.BuildOverview(dataset)

	gt.Equal(t, overview.CurrentCases, 1436)
	gt.Equal(t, overview.Change, -19.9)
	gt.Equal(t, len(overview.Cases), 12)
	gt.Equal(t, len(overview.Cards), 4)

	risk := overview.Cards[0]
	gt.Equal(t, risk.Title, "Current Risk Level")
	gt.Equal(t, risk.Value, "High")
	gt.Equal(t, risk.Caption, "Dec 2023")
	gt.Equal(t, risk.Tone, model.ToneDanger)

	current := overview.Cards[1]
	gt.Equal(t, current.Title, "Current Cases")
	gt.Equal(t, current.Value, "1436")
	gt.Equal(t, current.Caption, "Total for Dec")

	change := overview.Cards[2]
	gt.Equal(t, change.Title, "Monthly Change")
	gt.Equal(t, change.Value, "-19.9%")
	gt.Equal(t, change.Caption, "vs Nov")
	gt.Equal(t, change.Tone, model.ToneSuccess)

	season := overview.Cards[3]
	gt.Equal(t, season.Title, "Season Status")
	gt.Equal(t, season.Value, "Moderate")
	gt.Equal(t, season.Caption, "Current season")
}

func TestBuildOverviewMissingMonth(t *testing.T) {
	dataset := loadDataset(t)
	dataset.CurrentMonth = "Foo"

	overview := model.BuildOverview(dataset)
	gt.Equal(t, overview.CurrentCases, 0)
	gt.Equal(t, overview.Change, 0.0)
	gt.Equal(t, overview.Cards[1].Value, "0")
	gt.Equal(t, overview.Cards[2].Value, "0%")
}

func TestBuildOverviewCopiesCases(t *testing.T) {
	dataset := loadDataset(t)
	overview := model.BuildOverview(dataset)

	overview.Cases[0].Cases = 0
	gt.Equal(t, dataset.Cases[0].Cases, 1054)
}
