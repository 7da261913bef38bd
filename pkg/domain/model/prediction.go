package model

import (
	"github.com/secmon-lab/denguescope/pkg/domain/types"
)

// PredictionJitter is the maximum relative distance of a prediction from the actual count
const PredictionJitter = 0.1

// RandomSource draws uniformly distributed values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// PredictionPoint pairs the actual count of a month with a jittered value per model.
// The values are visual noise around the actual count, not forecasts.
type PredictionPoint struct {
	Month     types.Month
	Actual    int
	Predicted map[types.ModelID]float64
}

// Value returns the jittered value of the model
func (p *PredictionPoint) Value(id types.ModelID) float64 {
	return p.Predicted[id]
}

// JitterFactor maps a draw in [0, 1) onto a scale factor in [1-PredictionJitter, 1+PredictionJitter)
func JitterFactor(u float64) float64 {
	return 1 + (u*2*PredictionJitter - PredictionJitter)
}

// BuildPredictions derives one jittered series per model. Draws happen month by month in model order.
func BuildPredictions(cases []MonthlyCase, models []types.ModelID, src RandomSource) []PredictionPoint {
	points := make([]PredictionPoint, 0, len(cases))
	for _, c := range cases {
		p := PredictionPoint{
			Month:     c.Month,
			Actual:    c.Cases,
			Predicted: make(map[types.ModelID]float64, len(models)),
		}
		for _, id := range models {
			p.Predicted[id] = float64(c.Cases) * JitterFactor(src.Float64())
		}
		points = append(points, p)
	}
	return points
}
