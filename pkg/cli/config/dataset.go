package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/interfaces"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
	"github.com/secmon-lab/denguescope/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Dataset selects where the dashboard data comes from
type Dataset struct {
	Path string
}

// Flags returns CLI flags for Dataset configuration
func (d *Dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dataset",
			Usage:       "YAML dataset file (the built-in dataset is used if not set)",
			Category:    "Dataset",
			Sources:     cli.EnvVars("DENGUESCOPE_DATASET"),
			Destination: &d.Path,
		},
	}
}

// Source returns the configured dataset source
func (d *Dataset) Source() interfaces.DatasetSource {
	if d.Path == "" {
		return repository.NewEmbedded()
	}
	return repository.NewFile(d.Path)
}

// Configure loads and validates the dataset
func (d *Dataset) Configure(ctx context.Context) (*model.Dataset, error) {
	src := d.Source()

	dataset, err := src.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset", goerr.V("source", src.Name()))
	}

	ctxlog.From(ctx).Info("Dataset loaded",
		"source", src.Name(),
		"months", len(dataset.Cases),
		"models", len(dataset.Metrics),
	)
	return dataset, nil
}

// LogValue returns structured log value
func (d Dataset) LogValue() slog.Value {
	path := d.Path
	if path == "" {
		path = "(embedded)"
	}
	return slog.GroupValue(slog.String("path", path))
}
