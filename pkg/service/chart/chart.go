package chart

import (
	"context"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/interfaces"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
)

const (
	casesColor  = "#8884d8"
	actualColor = "#000000"
	yAxisLabel  = "Number of Cases"
)

// Service renders section charts with go-echarts
type Service struct {
	width     string
	height    string
	assetHost string
}

// Option configures the chart service
type Option func(*Service)

// WithAssetHost loads echarts.min.js from host, e.g. "/static/". The host must end with a slash.
func WithAssetHost(host string) Option {
	return func(s *Service) {
		s.assetHost = host
	}
}

// New creates a new chart service
func New(options ...Option) interfaces.ChartRenderer {
	s := &Service{
		width:  "800px",
		height: "400px",
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// HasChart implements interfaces.ChartRenderer
func (s *Service) HasChart(kind model.SectionKind) bool {
	switch kind {
	case model.SectionOverview, model.SectionPrediction, model.SectionRadar:
		return true
	default:
		return false
	}
}

// RenderChart implements interfaces.ChartRenderer
func (s *Service) RenderChart(ctx context.Context, w io.Writer, section model.Section) error {
	switch v := section.(type) {
	case *model.OverviewSection:
		return s.renderCases(w, v.Overview.Cases)
	case *model.PredictionSection:
		return s.renderPredictions(w, v.Points, v.Metrics)
	case *model.RadarSection:
		return s.renderRadar(w, v.Scores, v.Metrics)
	}
	return goerr.New("section has no chart", goerr.V("kind", section.Kind()))
}

func (s *Service) initOpts(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle:  title,
		Width:      s.width,
		Height:     s.height,
		AssetsHost: s.assetHost,
	})
}

func (s *Service) renderCases(w io.Writer, cases []model.MonthlyCase) error {
	months := make([]string, 0, len(cases))
	data := make([]opts.LineData, 0, len(cases))
	for _, c := range cases {
		months = append(months, c.Month.String())
		data = append(data, opts.LineData{Value: c.Cases})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		s.initOpts("Disease Pattern Analysis"),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAxisLabel}),
	)
	line.SetXAxis(months).
		AddSeries("Dengue Cases", data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: casesColor, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: casesColor}),
		)

	if err := line.Render(w); err != nil {
		return goerr.Wrap(err, "failed to render cases chart")
	}
	return nil
}

func (s *Service) renderPredictions(w io.Writer, points []model.PredictionPoint, metrics []model.ModelMetric) error {
	months := make([]string, 0, len(points))
	actual := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		months = append(months, p.Month.String())
		actual = append(actual, opts.LineData{Value: p.Actual})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		s.initOpts("Model Predictions Comparison"),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAxisLabel}),
	)
	line.SetXAxis(months).
		AddSeries("Actual Cases", actual,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: actualColor, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: actualColor}),
		)

	for _, m := range metrics {
		data := make([]opts.LineData, 0, len(points))
		for _, p := range points {
			data = append(data, opts.LineData{Value: roundCases(p.Value(m.ID))})
		}
		line.AddSeries(seriesName(m), data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: m.Color, Width: 1, Type: lineType(m.Dash)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: m.Color}),
		)
	}

	if err := line.Render(w); err != nil {
		return goerr.Wrap(err, "failed to render prediction chart")
	}
	return nil
}

func (s *Service) renderRadar(w io.Writer, scores []model.RadarScore, metrics []model.ModelMetric) error {
	indicators := make([]*opts.Indicator, 0, len(scores))
	for _, r := range scores {
		indicators = append(indicators, &opts.Indicator{Name: r.Criterion, Max: 100})
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		s.initOpts("Model Performance Comparison"),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator:   indicators,
			Shape:       "polygon",
			SplitNumber: 5,
		}),
	)

	for _, m := range metrics {
		values := make([]float32, 0, len(scores))
		for _, r := range scores {
			values = append(values, float32(r.Score(m.ID)))
		}
		radar.AddSeries(familyName(m), []opts.RadarData{{Name: familyName(m), Value: values}},
			charts.WithLineStyleOpts(opts.LineStyle{Color: m.Color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: m.Color}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: m.Color}),
		)
	}

	if err := radar.Render(w); err != nil {
		return goerr.Wrap(err, "failed to render radar chart")
	}
	return nil
}

// seriesName labels a prediction line, e.g. "RF Prediction"
func seriesName(m model.ModelMetric) string {
	name := m.ShortName
	if name == "" {
		name = m.Name
	}
	return name + " Prediction"
}

// familyName labels a radar series, e.g. "Random Forest"
func familyName(m model.ModelMetric) string {
	if m.Family != "" {
		return m.Family
	}
	return m.Name
}

func lineType(dash string) string {
	if dash == "" {
		return "solid"
	}
	return dash
}

// roundCases keeps two decimals so tooltips stay readable
func roundCases(v float64) float64 {
	return math.Round(v*100) / 100
}
