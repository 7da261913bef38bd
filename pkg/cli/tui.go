package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/denguescope/pkg/cli/config"
	"github.com/secmon-lab/denguescope/pkg/controller/tui"
	"github.com/secmon-lab/denguescope/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdTUI() *cli.Command {
	var (
		datasetCfg config.Dataset
		randomCfg  config.Random
	)

	return &cli.Command{
		Name:      "tui",
		Usage:     "Browse the dashboard interactively in the terminal",
		ArgsUsage: "[tab] [nested tab]",
		Flags:     joinFlags(datasetCfg.Flags(), randomCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctxlog.From(ctx).Debug("Starting interactive dashboard",
				slog.Any("dataset", datasetCfg),
				slog.Any("random", randomCfg),
			)

			dataset, err := datasetCfg.Configure(ctx)
			if err != nil {
				return err
			}

			dashboardUC := usecase.NewDashboard(dataset, usecase.WithRandomSource(randomCfg.Configure()))

			sel, err := dashboardUC.Resolve(c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return err
			}

			return tui.Run(ctx, dashboardUC, tui.WithSelection(sel))
		},
	}
}
