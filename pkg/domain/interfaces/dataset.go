package interfaces

import (
	"context"

	"github.com/secmon-lab/denguescope/pkg/domain/model"
)

// DatasetSource loads the dashboard dataset. It is read once at startup.
type DatasetSource interface {
	Load(ctx context.Context) (*model.Dataset, error)
	// Name describes where the dataset comes from, for logging
	Name() string
}
