package repository

import (
	"context"
	_ "embed"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/denguescope/pkg/domain/interfaces"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
)

//go:embed data/dengue.yaml
var defaultDataset []byte

// DefaultDataset returns a copy of the built-in dataset YAML
func DefaultDataset() []byte {
	out := make([]byte, len(defaultDataset))
	copy(out, defaultDataset)
	return out
}

// Embedded serves the dataset compiled into the binary
type Embedded struct{}

// NewEmbedded creates the built-in dataset source
func NewEmbedded() interfaces.DatasetSource {
	return &Embedded{}
}

// Load parses the built-in dataset
func (e *Embedded) Load(ctx context.Context) (*model.Dataset, error) {
	dataset, err := Parse(defaultDataset)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("Loaded embedded dataset",
		"cases", len(dataset.Cases),
		"models", len(dataset.Metrics),
	)
	return dataset, nil
}

// Name implements interfaces.DatasetSource
func (e *Embedded) Name() string {
	return "embedded"
}
