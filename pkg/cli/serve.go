package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/frontend"
	"github.com/secmon-lab/denguescope/pkg/cli/config"
	controller "github.com/secmon-lab/denguescope/pkg/controller/http"
	"github.com/secmon-lab/denguescope/pkg/service/page"
	"github.com/secmon-lab/denguescope/pkg/usecase"
	"github.com/secmon-lab/denguescope/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		siteCfg    config.Site
		datasetCfg config.Dataset
		randomCfg  config.Random
	)

	flags := joinFlags(
		serverCfg.Flags(),
		siteCfg.Flags(),
		datasetCfg.Flags(),
		randomCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting denguescope server",
				slog.Any("server", serverCfg),
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

			opts := []controller.Option{
				controller.WithBasePath(basePath),
				controller.WithStatic(frontend.Static()),
			}
			if assets != nil {
				opts = append(opts, controller.WithAssets(assets))
			} else {
				logger.Warn("No assets directory configured; document and image links will return 404")
			}

			server, err := controller.NewServer(ctx, serverCfg.Addr, dashboardUC, renderer, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in background
			errCh := async.Go(ctx, func(ctx context.Context) error {
				ctxlog.From(ctx).Info("HTTP server starting",
					slog.String("addr", serverCfg.Addr),
					slog.String("base_path", basePath),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			})

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				if err != nil {
					return goerr.Wrap(err, "HTTP server failed")
				}
				return nil
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
