package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/cli/config"
	"github.com/secmon-lab/denguescope/pkg/service/terminal"
	"github.com/secmon-lab/denguescope/pkg/usecase"
	"github.com/secmon-lab/denguescope/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdShow() *cli.Command {
	var (
		width      int64
		datasetCfg config.Dataset
		randomCfg  config.Random
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.Int64Flag{
				Name:        "width",
				Usage:       "Line width for wrapping",
				Value:       100,
				Destination: &width,
			},
		},
		datasetCfg.Flags(),
		randomCfg.Flags(),
	)

	return &cli.Command{
		Name:      "show",
		Usage:     "Print a dashboard tab to the terminal",
		ArgsUsage: "[tab] [nested tab]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctxlog.From(ctx).Debug("Showing dashboard tab",
				slog.Any("args", c.Args().Slice()),
				slog.Any("dataset", datasetCfg),
			)

			dataset, err := datasetCfg.Configure(ctx)
			if err != nil {
				return err
			}

			dashboardUC := usecase.NewDashboard(dataset, usecase.WithRandomSource(randomCfg.Configure()))

			opts := []terminal.Option{terminal.WithWidth(int(width))}
			if !logging.IsTerminal(c.Root().Writer) {
				opts = append(opts, terminal.WithNoColor())
			}
			renderer := terminal.New(opts...)

			sel, err := dashboardUC.Resolve(c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return goerr.Wrap(err, "failed to select tab")
			}

			page, err := dashboardUC.Render(ctx, sel)
			if err != nil {
				return err
			}

			return renderer.RenderPage(ctx, c.Root().Writer, page)
		},
	}
}
