package model_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
	"github.com/secmon-lab/denguescope/pkg/domain/types"
	"github.com/secmon-lab/denguescope/pkg/repository"
)

// loadDataset returns a fresh copy of the built-in dataset
func loadDataset(t *testing.T) *model.Dataset {
	t.Helper()
	dataset, err := repository.NewEmbedded().Load(context.Background())
	gt.NoError(t, err).Required()
	return dataset
}

func TestDatasetCases(t *testing.T) {
	dataset := loadDataset(t)
	months := types.Months()

	gt.Equal(t, len(dataset.Cases), 12)
	seen := make(map[types.Month]bool)
	for i, c := range dataset.Cases {
		gt.Equal(t, c.Month, months[i])
		gt.True(t, c.Cases >= 0)
		gt.False(t, seen[c.Month])
		seen[c.Month] = true
	}
}

func TestDatasetMetrics(t *testing.T) {
	dataset := loadDataset(t)

	metrics := dataset.OrderedMetrics()
	gt.Equal(t, len(metrics), 3)
	for i, id := range types.ModelIDs() {
		gt.Equal(t, metrics[i].ID, id)
		gt.True(t, metrics[i].Name != "")

		acc, err := metrics[i].AccuracyPercent()
		gt.NoError(t, err)
		gt.True(t, acc > 0 && acc <= 100)
	}

	arima, err := dataset.FindMetric(types.ModelARIMA)
	gt.NoError(t, err).Required()
	mse, err := arima.MSEValue()
	gt.NoError(t, err)
	gt.Equal(t, mse, 504046.041)
	rmse, err := arima.RMSEValue()
	gt.NoError(t, err)
	gt.Equal(t, rmse, 709.96)

	_, err = dataset.FindMetric(types.ModelID("lstm"))
	gt.Error(t, err)
}

func TestDatasetRadarScoresInRange(t *testing.T) {
	dataset := loadDataset(t)

	gt.Equal(t, len(dataset.Radar), 5)
	for _, r := range dataset.Radar {
		for _, id := range types.ModelIDs() {
			score := r.Score(id)
			gt.True(t, score >= 0 && score <= 100)
		}
	}
}

func TestDatasetOrderedArchitectures(t *testing.T) {
	dataset := loadDataset(t)
	dataset.Architectures[0], dataset.Architectures[2] = dataset.Architectures[2], dataset.Architectures[0]

	archs := dataset.OrderedArchitectures()
	gt.Equal(t, len(archs), 3)
	gt.Equal(t, archs[0].Title, "ARIMA Configuration")
	gt.Equal(t, archs[1].Title, "Random Forest Configuration")
	gt.Equal(t, archs[2].Title, "Neural Network Configuration")
	gt.Equal(t, archs[0].Details[0], model.Detail{Label: "p (AR order)", Value: "1"})
}

func TestDatasetFindCase(t *testing.T) {
	dataset := loadDataset(t)

	dec, err := dataset.FindCase("Dec")
	gt.NoError(t, err).Required()
	gt.Equal(t, dec.Cases, 1436)

	// Returned value is a copy
	dec.Cases = 0
	again, err := dataset.FindCase("Dec")
	gt.NoError(t, err).Required()
	gt.Equal(t, again.Cases, 1436)

	_, err = dataset.FindCase("Foo")
	gt.Error(t, err)
}

func TestDatasetValidate(t *testing.T) {
	t.Run("built-in dataset is valid", func(t *testing.T) {
		dataset := loadDataset(t)
		gt.NoError(t, dataset.Validate())
	})

	testCases := []struct {
		name   string
		mutate func(d *model.Dataset)
	}{
		{"missing title", func(d *model.Dataset) { d.Title = "" }},
		{"eleven months", func(d *model.Dataset) { d.Cases = d.Cases[:11] }},
		{"swapped months", func(d *model.Dataset) { d.Cases[0], d.Cases[1] = d.Cases[1], d.Cases[0] }},
		{"negative count", func(d *model.Dataset) { d.Cases[3].Cases = -1 }},
		{"invalid current month", func(d *model.Dataset) { d.CurrentMonth = "December" }},
		{"duplicate metric", func(d *model.Dataset) { d.Metrics[1] = d.Metrics[0] }},
		{"missing metric", func(d *model.Dataset) { d.Metrics = d.Metrics[:2] }},
		{"empty model name", func(d *model.Dataset) { d.Metrics[0].Name = "" }},
		{"accuracy above 100", func(d *model.Dataset) { d.Metrics[0].Accuracy = "100.5%" }},
		{"zero accuracy", func(d *model.Dataset) { d.Metrics[0].Accuracy = "0%" }},
		{"malformed accuracy", func(d *model.Dataset) { d.Metrics[0].Accuracy = "high" }},
		{"rmse mismatch", func(d *model.Dataset) { d.Metrics[2].RMSE = "600.00" }},
		{"unknown line style", func(d *model.Dataset) { d.Metrics[0].Dash = "wavy" }},
		{"missing architecture", func(d *model.Dataset) { d.Architectures = d.Architectures[1:] }},
		{"architecture without title", func(d *model.Dataset) { d.Architectures[1].Title = "" }},
		{"radar score out of range", func(d *model.Dataset) { d.Radar[0].Scores[types.ModelRandomForest] = 101 }},
		{"radar score missing", func(d *model.Dataset) { delete(d.Radar[0].Scores, types.ModelNeuralNet) }},
		{"radar duplicate criterion", func(d *model.Dataset) { d.Radar[1].Criterion = d.Radar[0].Criterion }},
		{"article without title", func(d *model.Dataset) { d.About.Impact.Title = "" }},
		{"document escaping base path", func(d *model.Dataset) { d.About.Documents[0].Path = "../secret.pdf" }},
		{"image without path", func(d *model.Dataset) { d.About.Gallery[0].Path = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dataset := loadDataset(t)
			tc.mutate(dataset)
			gt.Error(t, dataset.Validate())
		})
	}
}
