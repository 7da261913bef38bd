package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/types"
)

// rmseTolerance is the allowed gap between a displayed RMSE and the square root of the displayed MSE
const rmseTolerance = 0.01

// MonthlyCase is the number of reported dengue cases in one calendar month
type MonthlyCase struct {
	Month types.Month `yaml:"month"`
	Cases int         `yaml:"cases"`
}

// ModelMetric holds the pre-computed evaluation metrics of a forecasting model
type ModelMetric struct {
	ID        types.ModelID `yaml:"id"`
	Name      string        `yaml:"name"`       // e.g. "ARIMA (1,1,0)"
	ShortName string        `yaml:"short_name"` // prefix of the prediction series label
	Family    string        `yaml:"family"`     // radar series label
	MSE       string        `yaml:"mse"`
	RMSE      string        `yaml:"rmse"`
	Accuracy  string        `yaml:"accuracy"`
	Color     string        `yaml:"color"`
	Dash      string        `yaml:"dash,omitempty"` // prediction line style: solid, dashed or dotted
}

// AccuracyPercent parses the accuracy string ("85.2%") into a percentage
func (m *ModelMetric) AccuracyPercent() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(m.Accuracy), "%"), 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid accuracy", goerr.V("model_id", m.ID), goerr.V("accuracy", m.Accuracy))
	}
	return v, nil
}

// MSEValue parses the grouped decimal MSE string ("504,046.041")
func (m *ModelMetric) MSEValue() (float64, error) {
	return parseGroupedDecimal(m.MSE)
}

// RMSEValue parses the grouped decimal RMSE string
func (m *ModelMetric) RMSEValue() (float64, error) {
	return parseGroupedDecimal(m.RMSE)
}

// Validate validates the metric
func (m *ModelMetric) Validate() error {
	if err := m.ID.Validate(); err != nil {
		return err
	}
	if m.Name == "" {
		return goerr.New("model name is required", goerr.V("model_id", m.ID))
	}
	if m.Color == "" {
		return goerr.New("model color is required", goerr.V("model_id", m.ID))
	}

	acc, err := m.AccuracyPercent()
	if err != nil {
		return err
	}
	if acc <= 0 || acc > 100 {
		return goerr.New("accuracy must be in (0, 100]", goerr.V("model_id", m.ID), goerr.V("accuracy", acc))
	}

	mse, err := m.MSEValue()
	if err != nil {
		return goerr.Wrap(err, "invalid MSE", goerr.V("model_id", m.ID))
	}
	rmse, err := m.RMSEValue()
	if err != nil {
		return goerr.Wrap(err, "invalid RMSE", goerr.V("model_id", m.ID))
	}
	if mse < 0 || math.Abs(math.Sqrt(mse)-rmse) > rmseTolerance {
		return goerr.New("RMSE does not match MSE",
			goerr.V("model_id", m.ID),
			goerr.V("mse", mse),
			goerr.V("rmse", rmse))
	}

	switch m.Dash {
	case "", "solid", "dashed", "dotted":
	default:
		return goerr.New("invalid line style", goerr.V("model_id", m.ID), goerr.V("dash", m.Dash))
	}

	return nil
}

// Detail is one label/value row of an architecture panel
type Detail struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// ModelArchitecture describes the hyperparameters of a model
type ModelArchitecture struct {
	ID      types.ModelID `yaml:"id"`
	Title   string        `yaml:"title"`
	Details []Detail      `yaml:"details"`
}

// RadarScore is one comparison criterion scored for every model
type RadarScore struct {
	Criterion string                `yaml:"criterion"`
	Scores    map[types.ModelID]int `yaml:"scores"`
}

// Score returns the score of the model, 0 if absent
func (r *RadarScore) Score(id types.ModelID) int {
	return r.Scores[id]
}

// Outlook holds the qualitative labels shown on the overview. They are not derived from data.
type Outlook struct {
	RiskLevel    string `yaml:"risk_level"`
	SeasonStatus string `yaml:"season_status"`
}

// Dataset is the immutable content of the dashboard
type Dataset struct {
	Title         string              `yaml:"title"`
	Subtitle      string              `yaml:"subtitle"`
	Year          int                 `yaml:"year"`
	CurrentMonth  types.Month         `yaml:"current_month"`
	PreviousMonth types.Month         `yaml:"previous_month"`
	Outlook       Outlook             `yaml:"outlook"`
	Cases         []MonthlyCase       `yaml:"cases"`
	Metrics       []ModelMetric       `yaml:"metrics"`
	Architectures []ModelArchitecture `yaml:"architectures"`
	Radar         []RadarScore        `yaml:"radar"`
	About         About               `yaml:"about"`
}

// Validate validates the entire dataset
func (d *Dataset) Validate() error {
	if d.Title == "" {
		return goerr.New("title is required")
	}

	if err := d.validateCases(); err != nil {
		return goerr.Wrap(err, "invalid cases")
	}
	if !d.CurrentMonth.IsValid() {
		return goerr.New("invalid current month", goerr.V("month", d.CurrentMonth))
	}
	if !d.PreviousMonth.IsValid() {
		return goerr.New("invalid previous month", goerr.V("month", d.PreviousMonth))
	}

	if err := d.validateMetrics(); err != nil {
		return goerr.Wrap(err, "invalid metrics")
	}
	if err := d.validateArchitectures(); err != nil {
		return goerr.Wrap(err, "invalid architectures")
	}
	if err := d.validateRadar(); err != nil {
		return goerr.Wrap(err, "invalid radar scores")
	}
	if err := d.About.Validate(); err != nil {
		return goerr.Wrap(err, "invalid about section")
	}

	return nil
}

func (d *Dataset) validateCases() error {
	months := types.Months()
	if len(d.Cases) != len(months) {
		return goerr.New("exactly twelve monthly cases are required", goerr.V("count", len(d.Cases)))
	}

	for i, c := range d.Cases {
		if c.Month != months[i] {
			return goerr.New("months must be in calendar order",
				goerr.V("index", i),
				goerr.V("month", c.Month),
				goerr.V("expected", months[i]))
		}
		if c.Cases < 0 {
			return goerr.New("case count must not be negative",
				goerr.V("month", c.Month),
				goerr.V("cases", c.Cases))
		}
	}
	return nil
}

func (d *Dataset) validateMetrics() error {
	seen := make(map[types.ModelID]bool)
	for i, m := range d.Metrics {
		if err := m.Validate(); err != nil {
			return goerr.Wrap(err, "invalid metric at index", goerr.V("index", i))
		}
		if seen[m.ID] {
			return goerr.New("duplicate model metric", goerr.V("model_id", m.ID))
		}
		seen[m.ID] = true
	}

	for _, id := range types.ModelIDs() {
		if !seen[id] {
			return goerr.New("missing model metric", goerr.V("model_id", id))
		}
	}
	return nil
}

func (d *Dataset) validateArchitectures() error {
	seen := make(map[types.ModelID]bool)
	for i, a := range d.Architectures {
		if err := a.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid architecture at index", goerr.V("index", i))
		}
		if a.Title == "" {
			return goerr.New("architecture title is required", goerr.V("model_id", a.ID))
		}
		if seen[a.ID] {
			return goerr.New("duplicate architecture", goerr.V("model_id", a.ID))
		}
		seen[a.ID] = true
	}

	for _, id := range types.ModelIDs() {
		if !seen[id] {
			return goerr.New("missing architecture", goerr.V("model_id", id))
		}
	}
	return nil
}

func (d *Dataset) validateRadar() error {
	if len(d.Radar) == 0 {
		return goerr.New("at least one radar criterion is required")
	}

	seen := make(map[string]bool)
	for _, r := range d.Radar {
		if r.Criterion == "" {
			return goerr.New("radar criterion is required")
		}
		if seen[r.Criterion] {
			return goerr.New("duplicate radar criterion", goerr.V("criterion", r.Criterion))
		}
		seen[r.Criterion] = true

		for _, id := range types.ModelIDs() {
			score, ok := r.Scores[id]
			if !ok {
				return goerr.New("missing radar score",
					goerr.V("criterion", r.Criterion),
					goerr.V("model_id", id))
			}
			if score < 0 || score > 100 {
				return goerr.New("radar score must be in [0, 100]",
					goerr.V("criterion", r.Criterion),
					goerr.V("model_id", id),
					goerr.V("score", score))
			}
		}
		for id := range r.Scores {
			if err := id.Validate(); err != nil {
				return goerr.Wrap(err, "invalid radar score", goerr.V("criterion", r.Criterion))
			}
		}
	}
	return nil
}

// FindCase finds the monthly case for the month label
func (d *Dataset) FindCase(month types.Month) (*MonthlyCase, error) {
	for _, c := range d.Cases {
		if c.Month == month {
			result := c
			return &result, nil
		}
	}
	return nil, goerr.Wrap(ErrMonthNotFound, "no cases for month", goerr.V("month", month))
}

// FindMetric finds the metric of a model
func (d *Dataset) FindMetric(id types.ModelID) (*ModelMetric, error) {
	for _, m := range d.Metrics {
		if m.ID == id {
			result := m
			return &result, nil
		}
	}
	return nil, goerr.Wrap(ErrUnknownModel, "no metric for model", goerr.V("model_id", id))
}

// OrderedMetrics returns the metrics in model display order
func (d *Dataset) OrderedMetrics() []ModelMetric {
	result := make([]ModelMetric, 0, len(d.Metrics))
	for _, id := range types.ModelIDs() {
		if m, err := d.FindMetric(id); err == nil {
			result = append(result, *m)
		}
	}
	return result
}

// OrderedArchitectures returns the architectures in model display order
func (d *Dataset) OrderedArchitectures() []ModelArchitecture {
	result := make([]ModelArchitecture, 0, len(d.Architectures))
	for _, id := range types.ModelIDs() {
		for _, a := range d.Architectures {
			if a.ID == id {
				result = append(result, a)
				break
			}
		}
	}
	return result
}

func parseGroupedDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid decimal", goerr.V("value", s))
	}
	return v, nil
}
