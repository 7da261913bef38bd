package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/frontend"
	"github.com/secmon-lab/denguescope/pkg/cli/config"
	"github.com/secmon-lab/denguescope/pkg/service/page"
	"github.com/secmon-lab/denguescope/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var (
		output     string
		siteCfg    config.Site
		datasetCfg config.Dataset
		randomCfg  config.Random
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Directory to write the static site into",
				Value:       "dist",
				Sources:     cli.EnvVars("DENGUESCOPE_OUTPUT"),
				Destination: &output,
			},
		},
		siteCfg.Flags(),
		datasetCfg.Flags(),
		randomCfg.Flags(),
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Write the dashboard as a static site",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctxlog.From(ctx).Info("Exporting static site",
				slog.String("output", output),
				slog.Any("site", siteCfg),
				slog.Any("dataset", datasetCfg),
				slog.Any("random", randomCfg),
			)

			dataset, err := datasetCfg.Configure(ctx)
			if err != nil {
				return err
			}

			assets, err := siteCfg.Assets()
			if err != nil {
				return err
			}

			basePath := siteCfg.NormalizedBasePath()
			renderer, err := page.New(basePath, newChartRenderer(ctx, siteCfg))
			if err != nil {
				return goerr.Wrap(err, "failed to create page renderer")
			}

			dashboardUC := usecase.NewDashboard(dataset, usecase.WithRandomSource(randomCfg.Configure()))

			opts := []usecase.ExporterOption{usecase.WithStaticFiles(frontend.Static())}
			if assets != nil {
				opts = append(opts, usecase.WithAssets(assets))
			}

			manifest, err := usecase.NewExporter(dashboardUC, renderer, basePath, opts...).Export(ctx, output)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(c.Root().Writer, "Exported %d pages and %d files to %s (build %s)\n",
				len(manifest.Pages), len(manifest.Files), output, manifest.BuildID)
			return err
		},
	}
}
