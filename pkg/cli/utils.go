package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/denguescope/frontend"
	"github.com/secmon-lab/denguescope/pkg/cli/config"
	"github.com/secmon-lab/denguescope/pkg/domain/interfaces"
	"github.com/secmon-lab/denguescope/pkg/service/chart"
	"github.com/urfave/cli/v3"
)

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}

// newChartRenderer points chart frames at the configured ECharts host
func newChartRenderer(ctx context.Context, siteCfg config.Site) interfaces.ChartRenderer {
	if siteCfg.IsLocalChartHost() && !frontend.HasChartScript(frontend.Static()) {
		ctxlog.From(ctx).Warn("Chart script is not embedded; charts will stay blank. Run `go generate ./frontend` before building",
			"script", frontend.ChartScript,
		)
	}
	return chart.New(chart.WithAssetHost(siteCfg.ChartHost()))
}
