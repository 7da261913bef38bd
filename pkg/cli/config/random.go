package config

import (
	"log/slog"

	"github.com/secmon-lab/denguescope/pkg/domain/model"
	"github.com/secmon-lab/denguescope/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Random configures the prediction jitter source
type Random struct {
	Seed uint64
}

// Flags returns CLI flags for Random configuration
func (r *Random) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "Seed for the prediction jitter; 0 draws fresh values on every render",
			Category:    "Prediction",
			Sources:     cli.EnvVars("DENGUESCOPE_SEED"),
			Destination: &r.Seed,
		},
	}
}

// Configure returns the random source
func (r *Random) Configure() model.RandomSource {
	if r.Seed == 0 {
		return usecase.NewRandomSource()
	}
	return usecase.NewSeededSource(r.Seed)
}

// LogValue returns structured log value
func (r Random) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("seed", r.Seed),
		slog.Bool("seeded", r.Seed != 0),
	)
}
